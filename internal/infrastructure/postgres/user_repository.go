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

const userColumns = "id, email, first_name, last_name, is_active, avatar, roles, phone_number, created_at, updated_at"

const userSearchWhere = "first_name ILIKE $1 OR last_name ILIKE $1 OR email ILIKE $1 OR phone_number ILIKE $1"

type UserRepository struct {
	ModelRepository[entity.User]
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		ModelRepository: NewModelRepository[entity.User](pool, "users", userColumns),
		pool:            pool,
	}
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := r.Get(ctx, id)
	if err != nil || u == nil {
		return u, err
	}
	if err := r.loadAddresses(ctx, []*entity.User{u}); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.GetBy(ctx, "email = $1", email)
}

// GetWithPassword selects the password hash explicitly; every other read path
// leaves it out of the column list.
func (r *UserRepository) GetWithPassword(ctx context.Context, email string) (*entity.User, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT "+userColumns+", password FROM users WHERE email = $1", email)
	return r.collectOne(rows, err)
}

func (r *UserRepository) GetAll(ctx context.Context) ([]entity.User, error) {
	users, err := r.ModelRepository.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if err := r.loadAddressesSlice(ctx, users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) Paginate(ctx context.Context, opts pagination.Options) ([]entity.User, pagination.Meta, error) {
	users, meta, err := r.ModelRepository.Paginate(ctx, opts, "")
	if err != nil {
		return nil, meta, err
	}
	if err := r.loadAddressesSlice(ctx, users); err != nil {
		return nil, meta, err
	}
	return users, meta, nil
}

func (r *UserRepository) Search(ctx context.Context, q string, opts pagination.Options) ([]entity.User, pagination.Meta, error) {
	users, meta, err := r.ModelRepository.Paginate(ctx, opts, userSearchWhere, "%"+q+"%")
	if err != nil {
		return nil, meta, err
	}
	if err := r.loadAddressesSlice(ctx, users); err != nil {
		return nil, meta, err
	}
	return users, meta, nil
}

// Create inserts the user and re-fetches it by the generated id so the
// returned record matches the read-path shape.
func (r *UserRepository) Create(ctx context.Context, u *entity.User) (*entity.User, error) {
	var id string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, first_name, last_name, password, is_active, avatar, roles, phone_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, u.Email, u.FirstName, u.LastName, u.Password, u.IsActive, u.Avatar, u.Roles, u.PhoneNumber).Scan(&id)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Update persists the merged entity; callers merge partial input beforehand.
// An empty Password leaves the stored hash untouched, since read paths never
// hydrate it.
func (r *UserRepository) Update(ctx context.Context, u *entity.User) (*entity.User, error) {
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET email = $1, first_name = $2, last_name = $3,
		    password = COALESCE(NULLIF($4, ''), password),
		    is_active = $5, avatar = $6, roles = $7, phone_number = $8, updated_at = $9
		WHERE id = $10
	`, u.Email, u.FirstName, u.LastName, u.Password, u.IsActive, u.Avatar, u.Roles, u.PhoneNumber, time.Now(), u.ID)
	if err != nil {
		return nil, err
	}
	if res.RowsAffected() == 0 {
		return nil, ErrNoRecord
	}
	return r.GetByID(ctx, u.ID)
}

func (r *UserRepository) loadAddressesSlice(ctx context.Context, users []entity.User) error {
	ptrs := make([]*entity.User, len(users))
	for i := range users {
		ptrs[i] = &users[i]
	}
	return r.loadAddresses(ctx, ptrs)
}

// loadAddresses eager-loads the addresses relation with one batch query.
func (r *UserRepository) loadAddresses(ctx context.Context, users []*entity.User) error {
	if len(users) == 0 {
		return nil
	}
	ids := make([]string, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	rows, err := r.pool.Query(ctx,
		"SELECT "+addressColumns+" FROM addresses WHERE user_id = ANY($1) ORDER BY created_at", ids)
	if err != nil {
		return err
	}
	addresses, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[entity.Address])
	if err != nil {
		return err
	}
	byUser := make(map[string][]entity.Address, len(users))
	for _, a := range addresses {
		byUser[a.UserID] = append(byUser[a.UserID], a)
	}
	for _, u := range users {
		u.Addresses = byUser[u.ID]
		if u.Addresses == nil {
			u.Addresses = []entity.Address{}
		}
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
