package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tinoosan/cinerator/internal/catalog"
	"github.com/tinoosan/cinerator/internal/errs"
)

// Genres, countries and roles share the (id, name) row shape.

var (
	nameColumns = map[string]string{"id": "id", "name": "lower(name)"}
	roleColumns = map[string]string{"id": "id", "role": "lower(name)"}
)

func pageNamed[T any](ctx context.Context, q querier, table string, req catalog.PageRequest, cols map[string]string, build func(uuid.UUID, string) T) (catalog.Page[T], error) {
	return pageQuery(ctx, q, req, table, "id, name", cols, "id", func(rows pgx.Rows) (T, error) {
		var id uuid.UUID
		var name string
		err := rows.Scan(&id, &name)
		return build(id, name), err
	})
}

func getNamed(ctx context.Context, q querier, table, entity string, id uuid.UUID) (string, error) {
	var name string
	err := q.QueryRow(ctx, "select name from "+table+" where id = $1", id).Scan(&name)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", errs.Missing(entity, id)
	}
	return name, err
}

func fetchNamed(ctx context.Context, q querier, table string, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	out := map[uuid.UUID]string{}
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := q.Query(ctx, "select id, name from "+table+" where id = any($1)", ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var id uuid.UUID
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		out[id] = name
	}
	return out, rows.Err()
}

func insertNamed(ctx context.Context, q querier, table, entity string, id uuid.UUID, name string) error {
	_, err := q.Exec(ctx, "insert into "+table+" (id, name) values ($1, $2)", id, name)
	return translate(err, entity)
}

func updateNamed(ctx context.Context, q querier, table, entity string, id uuid.UUID, name string) error {
	tag, err := q.Exec(ctx, "update "+table+" set name = $2 where id = $1", id, name)
	return affected(tag, err, entity, id)
}

func deleteNamed(ctx context.Context, q querier, table, entity string, id uuid.UUID) error {
	tag, err := q.Exec(ctx, "delete from "+table+" where id = $1", id)
	return affected(tag, err, entity, id)
}

// --- Genres ---

func (s *Store) ListGenres(ctx context.Context, req catalog.PageRequest) (catalog.Page[catalog.Genre], error) {
	return pageNamed(ctx, s.pool, "genres", req, nameColumns, func(id uuid.UUID, n string) catalog.Genre { return catalog.Genre{ID: id, Name: n} })
}

func (s *Store) GetGenre(ctx context.Context, id uuid.UUID) (catalog.Genre, error) {
	name, err := getNamed(ctx, s.pool, "genres", catalog.EntityGenre, id)
	if err != nil {
		return catalog.Genre{}, err
	}
	return catalog.Genre{ID: id, Name: name}, nil
}

func (s *Store) FetchGenres(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]catalog.Genre, error) {
	names, err := fetchNamed(ctx, s.pool, "genres", ids)
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]catalog.Genre, len(names))
	for id, n := range names {
		out[id] = catalog.Genre{ID: id, Name: n}
	}
	return out, nil
}

func (s *Store) CreateGenre(ctx context.Context, g catalog.Genre) (catalog.Genre, error) {
	if err := insertNamed(ctx, s.pool, "genres", catalog.EntityGenre, g.ID, g.Name); err != nil {
		return catalog.Genre{}, err
	}
	return g, nil
}

func (s *Store) UpdateGenre(ctx context.Context, g catalog.Genre) (catalog.Genre, error) {
	if err := updateNamed(ctx, s.pool, "genres", catalog.EntityGenre, g.ID, g.Name); err != nil {
		return catalog.Genre{}, err
	}
	return g, nil
}

// DeleteGenre removes the genre; movie_genres rows go with it.
func (s *Store) DeleteGenre(ctx context.Context, id uuid.UUID) error {
	return deleteNamed(ctx, s.pool, "genres", catalog.EntityGenre, id)
}

// --- Countries ---

func (s *Store) ListCountries(ctx context.Context, req catalog.PageRequest) (catalog.Page[catalog.Country], error) {
	return pageNamed(ctx, s.pool, "countries", req, nameColumns, func(id uuid.UUID, n string) catalog.Country { return catalog.Country{ID: id, Name: n} })
}

func (s *Store) GetCountry(ctx context.Context, id uuid.UUID) (catalog.Country, error) {
	name, err := getNamed(ctx, s.pool, "countries", catalog.EntityCountry, id)
	if err != nil {
		return catalog.Country{}, err
	}
	return catalog.Country{ID: id, Name: name}, nil
}

func (s *Store) FetchCountries(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]catalog.Country, error) {
	names, err := fetchNamed(ctx, s.pool, "countries", ids)
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]catalog.Country, len(names))
	for id, n := range names {
		out[id] = catalog.Country{ID: id, Name: n}
	}
	return out, nil
}

func (s *Store) CreateCountry(ctx context.Context, c catalog.Country) (catalog.Country, error) {
	if err := insertNamed(ctx, s.pool, "countries", catalog.EntityCountry, c.ID, c.Name); err != nil {
		return catalog.Country{}, err
	}
	return c, nil
}

func (s *Store) UpdateCountry(ctx context.Context, c catalog.Country) (catalog.Country, error) {
	if err := updateNamed(ctx, s.pool, "countries", catalog.EntityCountry, c.ID, c.Name); err != nil {
		return catalog.Country{}, err
	}
	return c, nil
}

// DeleteCountry removes the country. Movie links cascade and persons'
// birth_country_id is set to null by the foreign key.
func (s *Store) DeleteCountry(ctx context.Context, id uuid.UUID) error {
	return deleteNamed(ctx, s.pool, "countries", catalog.EntityCountry, id)
}

// --- Roles ---

func (s *Store) ListRoles(ctx context.Context, req catalog.PageRequest) (catalog.Page[catalog.Role], error) {
	return pageNamed(ctx, s.pool, "roles", req, roleColumns, func(id uuid.UUID, n string) catalog.Role { return catalog.Role{ID: id, Name: n} })
}

func (s *Store) GetRole(ctx context.Context, id uuid.UUID) (catalog.Role, error) {
	name, err := getNamed(ctx, s.pool, "roles", catalog.EntityRole, id)
	if err != nil {
		return catalog.Role{}, err
	}
	return catalog.Role{ID: id, Name: name}, nil
}

func (s *Store) CreateRole(ctx context.Context, r catalog.Role) (catalog.Role, error) {
	if err := insertNamed(ctx, s.pool, "roles", catalog.EntityRole, r.ID, r.Name); err != nil {
		return catalog.Role{}, err
	}
	return r, nil
}

func (s *Store) UpdateRole(ctx context.Context, r catalog.Role) (catalog.Role, error) {
	if err := updateNamed(ctx, s.pool, "roles", catalog.EntityRole, r.ID, r.Name); err != nil {
		return catalog.Role{}, err
	}
	return r, nil
}

// DeleteRole removes the role; its cast entries cascade.
func (s *Store) DeleteRole(ctx context.Context, id uuid.UUID) error {
	return deleteNamed(ctx, s.pool, "roles", catalog.EntityRole, id)
}
