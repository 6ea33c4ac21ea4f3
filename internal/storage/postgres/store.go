// Package postgres provides a pgx-backed storage implementation that satisfies
// the repository and writer interfaces used by the services.
//
// The schema lives under db/migrations. Relation cleanup on delete is done by
// foreign key cascades; multi-row writes run inside a transaction.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tinoosan/cinerator/internal/catalog"
	"github.com/tinoosan/cinerator/internal/errs"
)

// Store holds a pgx connection pool. All methods are safe for concurrent use.
type Store struct {
	pool *pgxpool.Pool
}

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Open establishes a pgx pool using the provided connection string.
func Open(ctx context.Context, dsn string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &Store{pool: pool}, nil
}

// Close releases the underlying pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Ready pings the pool to verify connectivity.
func (s *Store) Ready(ctx context.Context) error { return s.pool.Ping(ctx) }

func (s *Store) inTx(ctx context.Context, fn func(pgx.Tx) error) error {
	return pgx.BeginFunc(ctx, s.pool, fn)
}

// translate maps driver errors onto the errs sentinels.
func translate(err error, entity string) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return errs.Conflict("%s violates unique constraint %s", entity, pgErr.ConstraintName)
		case "23503":
			return fmt.Errorf("%w: %s references a missing row (%s)", errs.ErrNotFound, entity, pgErr.ConstraintName)
		case "23514":
			return errs.Invalid("%s violates check constraint %s", entity, pgErr.ConstraintName)
		}
	}
	return err
}

// where accumulates positional SQL predicates.
type where struct {
	parts []string
	args  []any
}

// add appends expr with its single placeholder written as ?.
func (w *where) add(expr string, arg any) {
	w.args = append(w.args, arg)
	w.parts = append(w.parts, strings.Replace(expr, "?", fmt.Sprintf("$%d", len(w.args)), 1))
}

func (w *where) String() string {
	if len(w.parts) == 0 {
		return ""
	}
	return " where " + strings.Join(w.parts, " and ")
}

func likeArg(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

// pageQuery runs a count and an ordered, limited select. columns maps public
// sort field names to SQL order expressions; tie is appended to every order.
func pageQuery[T any](ctx context.Context, q querier, req catalog.PageRequest, from string, selectCols string, columns map[string]string, tie string, scan func(pgx.Rows) (T, error)) (catalog.Page[T], error) {
	field := req.SortField
	if field == "" {
		field = catalog.DefaultSortField
	}
	col, ok := columns[field]
	if !ok {
		return catalog.Page[T]{}, errs.Invalid("unknown sort field %q", field)
	}
	dir := "asc"
	if req.Direction == catalog.SortDesc {
		dir = "desc"
	}
	page := catalog.Page[T]{Number: req.Page, Size: req.Size, Items: []T{}}
	if err := q.QueryRow(ctx, "select count(*) from "+from).Scan(&page.TotalElements); err != nil {
		return catalog.Page[T]{}, err
	}
	sql := fmt.Sprintf("select %s from %s order by %s %s, %s %s limit $1 offset $2", selectCols, from, col, dir, tie, dir)
	rows, err := q.Query(ctx, sql, req.Size, req.Offset())
	if err != nil {
		return catalog.Page[T]{}, err
	}
	defer rows.Close()
	for rows.Next() {
		it, err := scan(rows)
		if err != nil {
			return catalog.Page[T]{}, err
		}
		page.Items = append(page.Items, it)
	}
	return page, rows.Err()
}

func collect[T any](rows pgx.Rows, err error, scan func(pgx.Rows) (T, error)) ([]T, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]T, 0)
	for rows.Next() {
		it, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func affected(tag pgconn.CommandTag, err error, entity string, key any) error {
	if err != nil {
		return translate(err, entity)
	}
	if tag.RowsAffected() == 0 {
		return errs.Missing(entity, key)
	}
	return nil
}
