package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aldisetiawan/go-user-address-api/pkg/pagination"
)

// ErrNoRecord is returned when a mutation targets a row that does not exist.
// Lookup methods return (nil, nil) instead; services translate absence into
// their own typed errors.
var ErrNoRecord = errors.New("record not found")

// ModelRepository provides uniform get/getAll/paginate/delete over a single
// table, mapping rows onto T via pgx struct scanning. Entity-specific SQL
// (INSERT, UPDATE, relation loading) lives in the embedding repository.
type ModelRepository[T any] struct {
	pool    *pgxpool.Pool
	table   string
	columns string // select list; excludes hidden columns such as password
}

func NewModelRepository[T any](pool *pgxpool.Pool, table, columns string) ModelRepository[T] {
	return ModelRepository[T]{pool: pool, table: table, columns: columns}
}

func (r *ModelRepository[T]) collectOne(rows pgx.Rows, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	rec, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByNameLax[T])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *ModelRepository[T]) collectAll(rows pgx.Rows, err error) ([]T, error) {
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByNameLax[T])
}

// Get returns the record with the given id, or nil when absent.
func (r *ModelRepository[T]) Get(ctx context.Context, id string) (*T, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT "+r.columns+" FROM "+r.table+" WHERE id = $1", id)
	return r.collectOne(rows, err)
}

// GetOrFail returns the record with the given id or ErrNoRecord.
func (r *ModelRepository[T]) GetOrFail(ctx context.Context, id string) (*T, error) {
	rec, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNoRecord
	}
	return rec, nil
}

// GetBy returns the first record matching the where clause, or nil.
func (r *ModelRepository[T]) GetBy(ctx context.Context, where string, args ...any) (*T, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT "+r.columns+" FROM "+r.table+" WHERE "+where+" LIMIT 1", args...)
	return r.collectOne(rows, err)
}

// GetAll returns every record ordered by creation time.
func (r *ModelRepository[T]) GetAll(ctx context.Context) ([]T, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT "+r.columns+" FROM "+r.table+" ORDER BY created_at")
	return r.collectAll(rows, err)
}

// GetAllBy returns every record matching the where clause.
func (r *ModelRepository[T]) GetAllBy(ctx context.Context, where string, args ...any) ([]T, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT "+r.columns+" FROM "+r.table+" WHERE "+where+" ORDER BY created_at", args...)
	return r.collectAll(rows, err)
}

// Count returns the number of records matching the optional where clause.
func (r *ModelRepository[T]) Count(ctx context.Context, where string, args ...any) (int, error) {
	q := "SELECT COUNT(*) FROM " + r.table
	if where != "" {
		q += " WHERE " + where
	}
	var total int
	if err := r.pool.QueryRow(ctx, q, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// Paginate returns one page of records plus computed metadata. The where
// clause is optional; args feed both the count and the page query.
func (r *ModelRepository[T]) Paginate(ctx context.Context, opts pagination.Options, where string, args ...any) ([]T, pagination.Meta, error) {
	opts = opts.Normalize()

	total, err := r.Count(ctx, where, args...)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	q := "SELECT " + r.columns + " FROM " + r.table
	if where != "" {
		q += " WHERE " + where
	}
	q += fmt.Sprintf(" ORDER BY created_at LIMIT %d OFFSET %d", opts.Limit, opts.Offset())

	items, err := r.collectAll(r.pool.Query(ctx, q, args...))
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return items, pagination.NewMeta(total, opts), nil
}

// Delete removes the record with the given id; ErrNoRecord when absent.
func (r *ModelRepository[T]) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, "DELETE FROM "+r.table+" WHERE id = $1", id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNoRecord
	}
	return nil
}
