package entity

import "time"

// Address belongs to exactly one user. At most one address per user carries
// IsDefault=true; the repository enforces that inside a transaction.
type Address struct {
	ID         string    `db:"id"`
	Street     string    `db:"street"`
	City       string    `db:"city"`
	State      string    `db:"state"`
	PostalCode string    `db:"postal_code"`
	Country    string    `db:"country"`
	IsDefault  bool      `db:"is_default"`
	UserID     string    `db:"user_id"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`

	// Owning user, loaded by the repository on read paths.
	User *User `db:"-"`
}
