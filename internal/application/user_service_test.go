package application

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aldisetiawan/go-user-address-api/pkg/apperrors"
	"github.com/aldisetiawan/go-user-address-api/pkg/helpers"
	"github.com/aldisetiawan/go-user-address-api/pkg/pagination"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newUserService(repo *mockUserRepo) *UserService {
	return NewUserService(repo, nil, "", nil, "test-app", quietLogger())
}

func TestUserCreate(t *testing.T) {
	repo := &mockUserRepo{}
	svc := newUserService(repo)
	ctx := context.Background()

	view, err := svc.Create(ctx, CreateUserInput{
		Email:     "john@example.com",
		FirstName: "John",
		LastName:  "Doe",
		Password:  "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, view.ID)
	assert.Equal(t, "John Doe", view.FullName)
	assert.True(t, view.IsActive)
	assert.Equal(t, []string{"user"}, view.Roles)
	assert.NotNil(t, view.Addresses)

	// hash, not plaintext, lands in the store
	stored := repo.users[0]
	assert.NotEqual(t, "secret123", stored.Password)
	assert.True(t, helpers.CompareHashAndPassword(stored.Password, "secret123"))
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	svc := newUserService(&mockUserRepo{})
	ctx := context.Background()

	in := CreateUserInput{Email: "dup@example.com", FirstName: "A", LastName: "B", Password: "secret123"}
	_, err := svc.Create(ctx, in)
	require.NoError(t, err)

	_, err = svc.Create(ctx, in)
	ae, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, 409, ae.StatusCode)
	require.Len(t, ae.Errors, 1)
	assert.Equal(t, "email", ae.Errors[0].Field)
}

func TestUserUpdatePartial(t *testing.T) {
	repo := &mockUserRepo{}
	svc := newUserService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateUserInput{
		Email: "a@example.com", FirstName: "John", LastName: "Doe", Password: "secret123",
	})
	require.NoError(t, err)
	originalHash := repo.users[0].Password

	first := "Jane"
	view, err := svc.Update(ctx, created.ID, UpdateUserInput{FirstName: &first})
	require.NoError(t, err)
	assert.Equal(t, "Jane", view.FirstName)
	assert.Equal(t, "Doe", view.LastName)
	assert.Equal(t, "a@example.com", view.Email)

	// untouched password keeps the stored hash
	assert.Equal(t, originalHash, repo.users[0].Password)

	newPwd := "newsecret"
	_, err = svc.Update(ctx, created.ID, UpdateUserInput{Password: &newPwd})
	require.NoError(t, err)
	assert.NotEqual(t, originalHash, repo.users[0].Password)
	assert.True(t, helpers.CompareHashAndPassword(repo.users[0].Password, "newsecret"))
}

func TestUserUpdateNotFound(t *testing.T) {
	svc := newUserService(&mockUserRepo{})
	first := "X"
	_, err := svc.Update(context.Background(), "00000000-0000-0000-0000-000000000000", UpdateUserInput{FirstName: &first})
	ae, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, 404, ae.StatusCode)
}

func TestUserUpdateEmailConflict(t *testing.T) {
	svc := newUserService(&mockUserRepo{})
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateUserInput{Email: "taken@example.com", FirstName: "A", LastName: "B", Password: "secret123"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, CreateUserInput{Email: "second@example.com", FirstName: "C", LastName: "D", Password: "secret123"})
	require.NoError(t, err)

	taken := "taken@example.com"
	_, err = svc.Update(ctx, second.ID, UpdateUserInput{Email: &taken})
	ae, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, 409, ae.StatusCode)
}

func TestUserDelete(t *testing.T) {
	repo := &mockUserRepo{}
	svc := newUserService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateUserInput{Email: "d@example.com", FirstName: "A", LastName: "B", Password: "secret123"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.Empty(t, repo.users)

	err = svc.Delete(ctx, created.ID)
	ae, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, 404, ae.StatusCode)
}

func TestValidatePassword(t *testing.T) {
	svc := newUserService(&mockUserRepo{})
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateUserInput{Email: "v@example.com", FirstName: "A", LastName: "B", Password: "secret123"})
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		view := svc.ValidatePassword(ctx, "v@example.com", "secret123")
		require.NotNil(t, view)
		assert.Equal(t, "v@example.com", view.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		assert.Nil(t, svc.ValidatePassword(ctx, "v@example.com", "wrong"))
	})

	t.Run("unknown email", func(t *testing.T) {
		assert.Nil(t, svc.ValidatePassword(ctx, "nobody@example.com", "secret123"))
	})
}

func TestUserFindAll(t *testing.T) {
	svc := newUserService(&mockUserRepo{})
	ctx := context.Background()
	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		_, err := svc.Create(ctx, CreateUserInput{Email: email, FirstName: "F", LastName: "L", Password: "secret123"})
		require.NoError(t, err)
	}

	t.Run("unpaginated", func(t *testing.T) {
		users, meta, err := svc.FindAll(ctx, pagination.Options{})
		require.NoError(t, err)
		assert.Nil(t, meta)
		assert.Len(t, users, 3)
	})

	t.Run("paginated", func(t *testing.T) {
		users, meta, err := svc.FindAll(ctx, pagination.Options{Page: 1, Limit: 2})
		require.NoError(t, err)
		require.NotNil(t, meta)
		assert.Len(t, users, 2)
		assert.Equal(t, 3, meta.TotalItems)
		assert.Equal(t, 2, meta.TotalPages)
		assert.True(t, meta.HasNextPage)
	})
}

func TestUserSearch(t *testing.T) {
	svc := newUserService(&mockUserRepo{})
	ctx := context.Background()
	_, err := svc.Create(ctx, CreateUserInput{Email: "alice@x.com", FirstName: "Alice", LastName: "Smith", Password: "secret123"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateUserInput{Email: "bob@x.com", FirstName: "Bob", LastName: "Jones", Password: "secret123"})
	require.NoError(t, err)

	t.Run("matches substring", func(t *testing.T) {
		users, meta, err := svc.Search(ctx, "ali", pagination.Options{Page: 1, Limit: 10})
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "Alice", users[0].FirstName)
		assert.Equal(t, 1, meta.TotalItems)
	})

	t.Run("blank query falls back to pagination", func(t *testing.T) {
		users, meta, err := svc.Search(ctx, "   ", pagination.Options{Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Len(t, users, 2)
		assert.Equal(t, 2, meta.TotalItems)
	})
}
