package application

import (
	"time"

	"github.com/aldisetiawan/go-user-address-api/internal/domain/entity"
)

// UserView is the serialized shape of a user. The password hash never appears
// here; fullName is derived at projection time.
type UserView struct {
	ID          string        `json:"id"`
	Email       string        `json:"email"`
	FirstName   string        `json:"firstName"`
	LastName    string        `json:"lastName"`
	FullName    string        `json:"fullName"`
	IsActive    bool          `json:"isActive"`
	Avatar      string        `json:"avatar"`
	Roles       []string      `json:"roles"`
	PhoneNumber string        `json:"phoneNumber"`
	Addresses   []AddressView `json:"addresses,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// AddressView is the serialized shape of an address. User is populated on
// address read paths and omitted when nested under a user.
type AddressView struct {
	ID         string    `json:"id"`
	Street     string    `json:"street"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	PostalCode string    `json:"postalCode"`
	Country    string    `json:"country"`
	IsDefault  bool      `json:"isDefault"`
	UserID     string    `json:"userId"`
	User       *UserView `json:"user,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// TokenView is the login/refresh payload.
type TokenView struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
	TokenType    string `json:"tokenType"`
}

// NewUserView projects a user together with its loaded addresses.
func NewUserView(u *entity.User) *UserView {
	if u == nil {
		return nil
	}
	v := newUserView(u)
	v.Addresses = make([]AddressView, 0, len(u.Addresses))
	for i := range u.Addresses {
		v.Addresses = append(v.Addresses, *newAddressView(&u.Addresses[i]))
	}
	return v
}

func NewUserViews(users []entity.User) []UserView {
	out := make([]UserView, 0, len(users))
	for i := range users {
		out = append(out, *NewUserView(&users[i]))
	}
	return out
}

// NewAddressView projects an address together with its owning user when loaded.
func NewAddressView(a *entity.Address) *AddressView {
	if a == nil {
		return nil
	}
	v := newAddressView(a)
	if a.User != nil {
		v.User = newUserView(a.User)
	}
	return v
}

func NewAddressViews(addresses []entity.Address) []AddressView {
	out := make([]AddressView, 0, len(addresses))
	for i := range addresses {
		out = append(out, *NewAddressView(&addresses[i]))
	}
	return out
}

// newUserView projects the scalar fields only, leaving relations to callers so
// nesting never recurses.
func newUserView(u *entity.User) *UserView {
	roles := u.Roles
	if roles == nil {
		roles = []string{}
	}
	return &UserView{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		FullName:    u.FullName(),
		IsActive:    u.IsActive,
		Avatar:      u.Avatar,
		Roles:       roles,
		PhoneNumber: u.PhoneNumber,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func newAddressView(a *entity.Address) *AddressView {
	return &AddressView{
		ID:         a.ID,
		Street:     a.Street,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		Country:    a.Country,
		IsDefault:  a.IsDefault,
		UserID:     a.UserID,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}
