package application

import (
	"context"

	"github.com/aldisetiawan/go-user-address-api/internal/domain/entity"
	"github.com/aldisetiawan/go-user-address-api/internal/domain/repository"
	"github.com/aldisetiawan/go-user-address-api/pkg/apperrors"
	"github.com/aldisetiawan/go-user-address-api/pkg/pagination"
)

// CreateAddressInput is the POST /addresses payload.
type CreateAddressInput struct {
	Street     string `json:"street" binding:"required,max=100"`
	City       string `json:"city" binding:"required,max=100"`
	State      string `json:"state" binding:"required,max=100"`
	PostalCode string `json:"postalCode" binding:"required,max=20"`
	Country    string `json:"country" binding:"required,max=100"`
	IsDefault  bool   `json:"isDefault"`
	UserID     string `json:"userId" binding:"required,uuid"`
}

// UpdateAddressInput is the PUT /addresses/:id payload; nil fields stay untouched.
type UpdateAddressInput struct {
	Street     *string `json:"street" binding:"omitempty,max=100"`
	City       *string `json:"city" binding:"omitempty,max=100"`
	State      *string `json:"state" binding:"omitempty,max=100"`
	PostalCode *string `json:"postalCode" binding:"omitempty,max=20"`
	Country    *string `json:"country" binding:"omitempty,max=100"`
	IsDefault  *bool   `json:"isDefault"`
}

// AddressService owns address lifecycle and the default-address invariant.
type AddressService struct {
	addresses repository.AddressRepository
	users     repository.UserRepository
}

func NewAddressService(addresses repository.AddressRepository, users repository.UserRepository) *AddressService {
	return &AddressService{addresses: addresses, users: users}
}

// Create stores a new address for an existing user. When the address is
// flagged default the repository demotes the user's other defaults atomically.
func (s *AddressService) Create(ctx context.Context, in CreateAddressInput) (*AddressView, error) {
	owner, err := s.users.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, apperrors.NotFound("user")
	}
	created, err := s.addresses.Create(ctx, &entity.Address{
		Street:     in.Street,
		City:       in.City,
		State:      in.State,
		PostalCode: in.PostalCode,
		Country:    in.Country,
		IsDefault:  in.IsDefault,
		UserID:     in.UserID,
	})
	if err != nil {
		return nil, err
	}
	return NewAddressView(created), nil
}

// Update applies a partial update; the address must exist.
func (s *AddressService) Update(ctx context.Context, id string, in UpdateAddressInput) (*AddressView, error) {
	a, err := s.addresses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, apperrors.NotFound("address")
	}

	if in.Street != nil {
		a.Street = *in.Street
	}
	if in.City != nil {
		a.City = *in.City
	}
	if in.State != nil {
		a.State = *in.State
	}
	if in.PostalCode != nil {
		a.PostalCode = *in.PostalCode
	}
	if in.Country != nil {
		a.Country = *in.Country
	}
	if in.IsDefault != nil {
		a.IsDefault = *in.IsDefault
	}

	updated, err := s.addresses.Update(ctx, a)
	if err != nil {
		return nil, err
	}
	return NewAddressView(updated), nil
}

func (s *AddressService) Delete(ctx context.Context, id string) error {
	a, err := s.addresses.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if a == nil {
		return apperrors.NotFound("address")
	}
	return s.addresses.Delete(ctx, id)
}

func (s *AddressService) FindByID(ctx context.Context, id string) (*AddressView, error) {
	a, err := s.addresses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, apperrors.NotFound("address")
	}
	return NewAddressView(a), nil
}

// List returns addresses, optionally scoped to one user and paginated when
// page or limit was requested.
func (s *AddressService) List(ctx context.Context, userID string, opts pagination.Options) ([]AddressView, *pagination.Meta, error) {
	if opts.Requested() {
		addresses, meta, err := s.addresses.Paginate(ctx, userID, opts)
		if err != nil {
			return nil, nil, err
		}
		return NewAddressViews(addresses), &meta, nil
	}
	var (
		addresses []entity.Address
		err       error
	)
	if userID != "" {
		addresses, err = s.addresses.GetAllByUser(ctx, userID)
	} else {
		addresses, err = s.addresses.GetAll(ctx)
	}
	if err != nil {
		return nil, nil, err
	}
	return NewAddressViews(addresses), nil, nil
}

// SetAsDefault promotes the address to the caller's default. Addresses owned
// by another user look exactly like missing ones.
func (s *AddressService) SetAsDefault(ctx context.Context, id, userID string) (*AddressView, error) {
	a, err := s.addresses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil || a.UserID != userID {
		return nil, apperrors.NotFound("address")
	}
	updated, err := s.addresses.SetDefault(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewAddressView(updated), nil
}
