package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aldisetiawan/go-user-address-api/internal/domain/entity"
	"github.com/aldisetiawan/go-user-address-api/internal/domain/repository"
	"github.com/aldisetiawan/go-user-address-api/pkg/pagination"
)

const addressColumns = "id, street, city, state, postal_code, country, is_default, user_id, created_at, updated_at"

type AddressRepository struct {
	ModelRepository[entity.Address]
	pool *pgxpool.Pool
}

func NewAddressRepository(pool *pgxpool.Pool) *AddressRepository {
	return &AddressRepository{
		ModelRepository: NewModelRepository[entity.Address](pool, "addresses", addressColumns),
		pool:            pool,
	}
}

func (r *AddressRepository) GetByID(ctx context.Context, id string) (*entity.Address, error) {
	a, err := r.Get(ctx, id)
	if err != nil || a == nil {
		return a, err
	}
	if err := r.loadUsers(ctx, []*entity.Address{a}); err != nil {
		return nil, err
	}
	return a, nil
}

func (r *AddressRepository) GetAll(ctx context.Context) ([]entity.Address, error) {
	addresses, err := r.ModelRepository.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if err := r.loadUsersSlice(ctx, addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

func (r *AddressRepository) GetAllByUser(ctx context.Context, userID string) ([]entity.Address, error) {
	addresses, err := r.GetAllBy(ctx, "user_id = $1", userID)
	if err != nil {
		return nil, err
	}
	if err := r.loadUsersSlice(ctx, addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

// Paginate pages addresses, optionally scoped to one user.
func (r *AddressRepository) Paginate(ctx context.Context, userID string, opts pagination.Options) ([]entity.Address, pagination.Meta, error) {
	var (
		addresses []entity.Address
		meta      pagination.Meta
		err       error
	)
	if userID != "" {
		addresses, meta, err = r.ModelRepository.Paginate(ctx, opts, "user_id = $1", userID)
	} else {
		addresses, meta, err = r.ModelRepository.Paginate(ctx, opts, "")
	}
	if err != nil {
		return nil, meta, err
	}
	if err := r.loadUsersSlice(ctx, addresses); err != nil {
		return nil, meta, err
	}
	return addresses, meta, nil
}

// Create inserts the address; when it is flagged default the user's other
// defaults are cleared in the same transaction.
func (r *AddressRepository) Create(ctx context.Context, a *entity.Address) (*entity.Address, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if a.IsDefault {
		if err := clearDefaults(ctx, tx, a.UserID, ""); err != nil {
			return nil, err
		}
	}
	var id string
	err = tx.QueryRow(ctx, `
		INSERT INTO addresses (street, city, state, postal_code, country, is_default, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, a.Street, a.City, a.State, a.PostalCode, a.Country, a.IsDefault, a.UserID).Scan(&id)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Update persists the merged entity; turning the default flag on demotes the
// user's other addresses inside the same transaction.
func (r *AddressRepository) Update(ctx context.Context, a *entity.Address) (*entity.Address, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if a.IsDefault {
		if err := clearDefaults(ctx, tx, a.UserID, a.ID); err != nil {
			return nil, err
		}
	}
	res, err := tx.Exec(ctx, `
		UPDATE addresses
		SET street = $1, city = $2, state = $3, postal_code = $4, country = $5,
		    is_default = $6, updated_at = $7
		WHERE id = $8
	`, a.Street, a.City, a.State, a.PostalCode, a.Country, a.IsDefault, time.Now(), a.ID)
	if err != nil {
		return nil, err
	}
	if res.RowsAffected() == 0 {
		return nil, ErrNoRecord
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, a.ID)
}

// SetDefault promotes the address to the user's single default. The clear and
// the set run in one transaction, so concurrent calls serialize on the row
// locks and the invariant holds.
func (r *AddressRepository) SetDefault(ctx context.Context, id string) (*entity.Address, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var userID string
	err = tx.QueryRow(ctx, "SELECT user_id FROM addresses WHERE id = $1", id).Scan(&userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNoRecord
		}
		return nil, err
	}
	if err := clearDefaults(ctx, tx, userID, id); err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx,
		"UPDATE addresses SET is_default = true, updated_at = $1 WHERE id = $2",
		time.Now(), id); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func clearDefaults(ctx context.Context, tx pgx.Tx, userID, exceptID string) error {
	q := "UPDATE addresses SET is_default = false, updated_at = now() WHERE user_id = $1 AND is_default = true"
	args := []any{userID}
	if exceptID != "" {
		q += " AND id <> $2"
		args = append(args, exceptID)
	}
	_, err := tx.Exec(ctx, q, args...)
	return err
}

func (r *AddressRepository) loadUsersSlice(ctx context.Context, addresses []entity.Address) error {
	ptrs := make([]*entity.Address, len(addresses))
	for i := range addresses {
		ptrs[i] = &addresses[i]
	}
	return r.loadUsers(ctx, ptrs)
}

// loadUsers eager-loads the owning user relation with one batch query.
func (r *AddressRepository) loadUsers(ctx context.Context, addresses []*entity.Address) error {
	if len(addresses) == 0 {
		return nil
	}
	ids := make([]string, 0, len(addresses))
	seen := make(map[string]bool, len(addresses))
	for _, a := range addresses {
		if !seen[a.UserID] {
			seen[a.UserID] = true
			ids = append(ids, a.UserID)
		}
	}
	rows, err := r.pool.Query(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = ANY($1)", ids)
	if err != nil {
		return err
	}
	users, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[entity.User])
	if err != nil {
		return err
	}
	byID := make(map[string]*entity.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}
	for _, a := range addresses {
		a.User = byID[a.UserID]
	}
	return nil
}

var _ repository.AddressRepository = (*AddressRepository)(nil)
