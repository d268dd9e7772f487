package entity

import (
	"time"
)

// User is the aggregate root for the users domain. Password holds a bcrypt
// hash and is only populated on the credential-validation read path.
type User struct {
	ID          string    `db:"id"`
	Email       string    `db:"email"`
	FirstName   string    `db:"first_name"`
	LastName    string    `db:"last_name"`
	Password    string    `db:"password"`
	IsActive    bool      `db:"is_active"`
	Avatar      string    `db:"avatar"`
	Roles       []string  `db:"roles"`
	PhoneNumber string    `db:"phone_number"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`

	// Addresses owned by this user, loaded by the repository on read paths.
	Addresses []Address `db:"-"`
}

// FullName is derived, never persisted.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// HasRole reports whether the user holds any of the given roles.
func (u *User) HasRole(roles ...string) bool {
	for _, want := range roles {
		for _, have := range u.Roles {
			if have == want {
				return true
			}
		}
	}
	return false
}
