package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aldisetiawan/go-user-address-api/pkg/apperrors"
	"github.com/aldisetiawan/go-user-address-api/pkg/pagination"
)

func seedOwner(t *testing.T, users *mockUserRepo, email string) string {
	t.Helper()
	svc := newUserService(users)
	view, err := svc.Create(context.Background(), CreateUserInput{
		Email: email, FirstName: "F", LastName: "L", Password: "secret123",
	})
	require.NoError(t, err)
	return view.ID
}

func addrInput(userID string, isDefault bool) CreateAddressInput {
	return CreateAddressInput{
		Street:     "1 Main St",
		City:       "Springfield",
		State:      "IL",
		PostalCode: "62701",
		Country:    "USA",
		IsDefault:  isDefault,
		UserID:     userID,
	}
}

func defaultsFor(repo *mockAddressRepo, userID string) int {
	n := 0
	for _, a := range repo.addresses {
		if a.UserID == userID && a.IsDefault {
			n++
		}
	}
	return n
}

func TestAddressCreate(t *testing.T) {
	users := &mockUserRepo{}
	addresses := &mockAddressRepo{}
	svc := NewAddressService(addresses, users)
	ctx := context.Background()
	owner := seedOwner(t, users, "o@example.com")

	view, err := svc.Create(ctx, addrInput(owner, true))
	require.NoError(t, err)
	assert.NotEmpty(t, view.ID)
	assert.True(t, view.IsDefault)
	assert.Equal(t, owner, view.UserID)
}

func TestAddressCreateUnknownUser(t *testing.T) {
	svc := NewAddressService(&mockAddressRepo{}, &mockUserRepo{})
	_, err := svc.Create(context.Background(), addrInput("00000000-0000-0000-0000-000000000000", false))
	ae, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, 404, ae.StatusCode)
}

func TestAddressCreateDefaultDemotesSiblings(t *testing.T) {
	users := &mockUserRepo{}
	addresses := &mockAddressRepo{}
	svc := NewAddressService(addresses, users)
	ctx := context.Background()
	owner := seedOwner(t, users, "o@example.com")

	first, err := svc.Create(ctx, addrInput(owner, true))
	require.NoError(t, err)
	_, err = svc.Create(ctx, addrInput(owner, true))
	require.NoError(t, err)

	assert.Equal(t, 1, defaultsFor(addresses, owner))
	got, err := svc.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, got.IsDefault)
}

func TestAddressUpdatePartial(t *testing.T) {
	users := &mockUserRepo{}
	addresses := &mockAddressRepo{}
	svc := NewAddressService(addresses, users)
	ctx := context.Background()
	owner := seedOwner(t, users, "o@example.com")

	created, err := svc.Create(ctx, addrInput(owner, false))
	require.NoError(t, err)

	city := "Chicago"
	view, err := svc.Update(ctx, created.ID, UpdateAddressInput{City: &city})
	require.NoError(t, err)
	assert.Equal(t, "Chicago", view.City)
	assert.Equal(t, "1 Main St", view.Street)
	assert.False(t, view.IsDefault)
}

func TestAddressUpdateNotFound(t *testing.T) {
	svc := NewAddressService(&mockAddressRepo{}, &mockUserRepo{})
	city := "X"
	_, err := svc.Update(context.Background(), "00000000-0000-0000-0000-000000000000", UpdateAddressInput{City: &city})
	ae, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, 404, ae.StatusCode)
}

func TestAddressDelete(t *testing.T) {
	users := &mockUserRepo{}
	addresses := &mockAddressRepo{}
	svc := NewAddressService(addresses, users)
	ctx := context.Background()
	owner := seedOwner(t, users, "o@example.com")

	created, err := svc.Create(ctx, addrInput(owner, false))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	err = svc.Delete(ctx, created.ID)
	ae, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, 404, ae.StatusCode)
}

func TestSetAsDefault(t *testing.T) {
	users := &mockUserRepo{}
	addresses := &mockAddressRepo{}
	svc := NewAddressService(addresses, users)
	ctx := context.Background()
	owner := seedOwner(t, users, "o@example.com")

	a1, err := svc.Create(ctx, addrInput(owner, true))
	require.NoError(t, err)
	a2, err := svc.Create(ctx, addrInput(owner, false))
	require.NoError(t, err)

	view, err := svc.SetAsDefault(ctx, a2.ID, owner)
	require.NoError(t, err)
	assert.True(t, view.IsDefault)
	assert.Equal(t, 1, defaultsFor(addresses, owner))

	// flipping back and forth keeps exactly one default
	_, err = svc.SetAsDefault(ctx, a1.ID, owner)
	require.NoError(t, err)
	_, err = svc.SetAsDefault(ctx, a2.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, 1, defaultsFor(addresses, owner))
}

func TestSetAsDefaultForeignUser(t *testing.T) {
	users := &mockUserRepo{}
	addresses := &mockAddressRepo{}
	svc := NewAddressService(addresses, users)
	ctx := context.Background()
	owner := seedOwner(t, users, "o@example.com")
	stranger := seedOwner(t, users, "s@example.com")

	created, err := svc.Create(ctx, addrInput(owner, false))
	require.NoError(t, err)

	_, err = svc.SetAsDefault(ctx, created.ID, stranger)
	ae, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, 404, ae.StatusCode, "foreign address must look like a missing one")
	assert.Equal(t, 0, defaultsFor(addresses, owner))
}

func TestAddressList(t *testing.T) {
	users := &mockUserRepo{}
	addresses := &mockAddressRepo{}
	svc := NewAddressService(addresses, users)
	ctx := context.Background()
	owner := seedOwner(t, users, "o@example.com")
	other := seedOwner(t, users, "other@example.com")

	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, addrInput(owner, false))
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, addrInput(other, false))
	require.NoError(t, err)

	t.Run("filtered by user", func(t *testing.T) {
		got, meta, err := svc.List(ctx, owner, pagination.Options{})
		require.NoError(t, err)
		assert.Nil(t, meta)
		assert.Len(t, got, 3)
	})

	t.Run("paginated", func(t *testing.T) {
		got, meta, err := svc.List(ctx, "", pagination.Options{Page: 1, Limit: 2})
		require.NoError(t, err)
		require.NotNil(t, meta)
		assert.Len(t, got, 2)
		assert.Equal(t, 4, meta.TotalItems)
	})
}
