package application

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aldisetiawan/go-user-address-api/internal/domain/entity"
)

func TestUserViewProjection(t *testing.T) {
	u := &entity.User{
		ID:        "u1",
		Email:     "a@b.com",
		FirstName: "John",
		LastName:  "Doe",
		Password:  "$2a$10$hash",
		IsActive:  true,
		Addresses: []entity.Address{{ID: "a1", Street: "1 Main St", UserID: "u1"}},
	}

	v := NewUserView(u)
	assert.Equal(t, "John Doe", v.FullName)
	require.Len(t, v.Addresses, 1)
	assert.Nil(t, v.Addresses[0].User, "nested address must not recurse back into user")
	assert.NotNil(t, v.Roles)

	b, err := json.Marshal(v)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "password")
	assert.NotContains(t, string(b), "$2a$10$hash")
}

func TestAddressViewProjection(t *testing.T) {
	a := &entity.Address{
		ID:     "a1",
		Street: "1 Main St",
		UserID: "u1",
		User:   &entity.User{ID: "u1", FirstName: "John", LastName: "Doe"},
	}

	v := NewAddressView(a)
	require.NotNil(t, v.User)
	assert.Equal(t, "John Doe", v.User.FullName)
	assert.Nil(t, v.User.Addresses, "nested user must not carry addresses")

	b, err := json.Marshal(v)
	require.NoError(t, err)
	assert.NotContains(t, string(b), `"addresses"`)
}
