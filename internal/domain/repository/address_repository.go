package repository

import (
	"context"

	"github.com/aldisetiawan/go-user-address-api/internal/domain/entity"
	"github.com/aldisetiawan/go-user-address-api/pkg/pagination"
)

// AddressRepository defines address persistence. Mutations that flip the
// default flag run inside a transaction so the one-default-per-user invariant
// survives partial failure.
type AddressRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Address, error)
	GetAll(ctx context.Context) ([]entity.Address, error)
	GetAllByUser(ctx context.Context, userID string) ([]entity.Address, error)
	Paginate(ctx context.Context, userID string, opts pagination.Options) ([]entity.Address, pagination.Meta, error)
	Create(ctx context.Context, a *entity.Address) (*entity.Address, error)
	Update(ctx context.Context, a *entity.Address) (*entity.Address, error)
	Delete(ctx context.Context, id string) error
	// SetDefault clears every default flag for the address's user and sets
	// this one, atomically.
	SetDefault(ctx context.Context, id string) (*entity.Address, error)
}
