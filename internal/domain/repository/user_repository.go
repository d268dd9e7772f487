package repository

import (
	"context"

	"github.com/aldisetiawan/go-user-address-api/internal/domain/entity"
	"github.com/aldisetiawan/go-user-address-api/pkg/pagination"
)

// UserRepository defines user persistence. Lookup methods return (nil, nil)
// when no record matches; callers decide whether absence is an error.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// GetWithPassword includes the normally-hidden password hash (login path).
	GetWithPassword(ctx context.Context, email string) (*entity.User, error)
	GetAll(ctx context.Context) ([]entity.User, error)
	Paginate(ctx context.Context, opts pagination.Options) ([]entity.User, pagination.Meta, error)
	// Search matches q case-insensitively against first name, last name,
	// email and phone number.
	Search(ctx context.Context, q string, opts pagination.Options) ([]entity.User, pagination.Meta, error)
	Create(ctx context.Context, u *entity.User) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) (*entity.User, error)
	Delete(ctx context.Context, id string) error
}
