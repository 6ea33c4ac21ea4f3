package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tinoosan/cinerator/internal/catalog"
	"github.com/tinoosan/cinerator/internal/errs"
)

const movieCols = "m.id, m.title, m.release_date, m.runtime, m.imdb_id, m.poster_url"

var movieColumns = map[string]string{
	"id":          "m.id",
	"title":       "lower(m.title)",
	"releaseDate": "m.release_date",
	"runtime":     "lower(m.runtime)",
	"imdbId":      "lower(m.imdb_id)",
}

func scanMovie(row pgx.Row) (catalog.Movie, error) {
	var m catalog.Movie
	var released time.Time
	if err := row.Scan(&m.ID, &m.Title, &released, &m.Runtime, &m.ImdbID, &m.PosterURL); err != nil {
		return catalog.Movie{}, err
	}
	m.ReleaseDate = catalog.DateOf(released)
	return m, nil
}

func scanMovieRows(rows pgx.Rows) (catalog.Movie, error) { return scanMovie(rows) }

// hydrateMovies fills genres, countries and directors for every movie in ms.
// A movie may appear more than once in ms.
func hydrateMovies(ctx context.Context, q querier, ms []catalog.Movie) error {
	if len(ms) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(ms))
	index := make(map[uuid.UUID][]int, len(ms))
	for i := range ms {
		if _, ok := index[ms[i].ID]; !ok {
			ids = append(ids, ms[i].ID)
		}
		index[ms[i].ID] = append(index[ms[i].ID], i)
		ms[i].Genres = []catalog.Genre{}
		ms[i].Countries = []catalog.Country{}
		ms[i].Directors = nil
	}

	rows, err := q.Query(ctx, `
		select mg.movie_id, g.id, g.name
		from movie_genres mg join genres g on g.id = mg.genre_id
		where mg.movie_id = any($1)
		order by mg.position`, ids)
	if err != nil {
		return err
	}
	for rows.Next() {
		var mid uuid.UUID
		var g catalog.Genre
		if err := rows.Scan(&mid, &g.ID, &g.Name); err != nil {
			rows.Close()
			return err
		}
		for _, i := range index[mid] {
			ms[i].Genres = append(ms[i].Genres, g)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = q.Query(ctx, `
		select mc.movie_id, c.id, c.name
		from movie_countries mc join countries c on c.id = mc.country_id
		where mc.movie_id = any($1)
		order by mc.position`, ids)
	if err != nil {
		return err
	}
	for rows.Next() {
		var mid uuid.UUID
		var c catalog.Country
		if err := rows.Scan(&mid, &c.ID, &c.Name); err != nil {
			rows.Close()
			return err
		}
		for _, i := range index[mid] {
			ms[i].Countries = append(ms[i].Countries, c)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = q.Query(ctx, `
		select distinct on (ci.movie_id, p.id) ci.movie_id, `+personCols+`
		from cast_infos ci
		join roles r on r.id = ci.role_id
		join persons p on p.id = ci.person_id
		left join countries c on c.id = p.birth_country_id
		where ci.movie_id = any($1) and lower(r.name) = lower($2)
		order by ci.movie_id, p.id`, ids, catalog.DirectorRole)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var mid uuid.UUID
		p, err := scanPersonWith(rows, &mid)
		if err != nil {
			return err
		}
		for _, i := range index[mid] {
			ms[i].Directors = append(ms[i].Directors, p)
		}
	}
	return rows.Err()
}

func (s *Store) ListMovies(ctx context.Context, f catalog.MovieFilter) ([]catalog.Movie, error) {
	var w where
	if f.Title != "" {
		w.add("m.title ilike ?", likeArg(f.Title))
	}
	if f.ReleaseDate != nil {
		w.add("m.release_date = ?", f.ReleaseDate.Time)
	}
	if f.ReleaseYear != nil {
		w.add("extract(year from m.release_date) = ?", *f.ReleaseYear)
	}
	if f.Runtime != "" {
		w.add("m.runtime ilike ?", likeArg(f.Runtime))
	}
	if f.ImdbID != "" && f.ImdbExact {
		w.add("lower(m.imdb_id) = lower(?)", f.ImdbID)
	} else if f.ImdbID != "" {
		w.add("m.imdb_id ilike ?", likeArg(f.ImdbID))
	}
	if f.GenreID != nil {
		w.add("exists (select 1 from movie_genres x where x.movie_id = m.id and x.genre_id = ?)", *f.GenreID)
	}
	if f.CountryID != nil {
		w.add("exists (select 1 from movie_countries x where x.movie_id = m.id and x.country_id = ?)", *f.CountryID)
	}
	rows, err := s.pool.Query(ctx, "select "+movieCols+" from movies m"+w.String()+" order by lower(m.title), m.id", w.args...)
	ms, err := collect(rows, err, scanMovieRows)
	if err != nil {
		return nil, err
	}
	if err := hydrateMovies(ctx, s.pool, ms); err != nil {
		return nil, err
	}
	// Relation name predicates need the hydrated values.
	out := ms[:0]
	for _, m := range ms {
		if f.Match(m) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *Store) PageMovies(ctx context.Context, req catalog.PageRequest) (catalog.Page[catalog.Movie], error) {
	page, err := pageQuery(ctx, s.pool, req, "movies m", movieCols, movieColumns, "m.id", scanMovieRows)
	if err != nil {
		return page, err
	}
	return page, hydrateMovies(ctx, s.pool, page.Items)
}

func (s *Store) GetMovie(ctx context.Context, id uuid.UUID) (catalog.Movie, error) {
	return getMovie(ctx, s.pool, id)
}

func getMovie(ctx context.Context, q querier, id uuid.UUID) (catalog.Movie, error) {
	m, err := scanMovie(q.QueryRow(ctx, "select "+movieCols+" from movies m where m.id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return catalog.Movie{}, errs.Missing(catalog.EntityMovie, id)
	}
	if err != nil {
		return catalog.Movie{}, err
	}
	ms := []catalog.Movie{m}
	if err := hydrateMovies(ctx, q, ms); err != nil {
		return catalog.Movie{}, err
	}
	return ms[0], nil
}

// MoviesByIDs returns the movies in the order of ids, skipping unknown ones.
func (s *Store) MoviesByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Movie, error) {
	return moviesByIDs(ctx, s.pool, ids)
}

func moviesByIDs(ctx context.Context, q querier, ids []uuid.UUID) ([]catalog.Movie, error) {
	if len(ids) == 0 {
		return []catalog.Movie{}, nil
	}
	rows, err := q.Query(ctx, "select "+movieCols+" from movies m where m.id = any($1)", ids)
	found, err := collect(rows, err, scanMovieRows)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]catalog.Movie, len(found))
	for _, m := range found {
		byID[m.ID] = m
	}
	out := make([]catalog.Movie, 0, len(ids))
	for _, id := range ids {
		if m, ok := byID[id]; ok {
			out = append(out, m)
		}
	}
	return out, hydrateMovies(ctx, q, out)
}

func (s *Store) CreateMovie(ctx context.Context, m catalog.Movie) (catalog.Movie, error) {
	var out catalog.Movie
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			insert into movies (id, title, release_date, runtime, imdb_id, poster_url)
			values ($1,$2,$3,$4,$5,$6)`,
			m.ID, m.Title, m.ReleaseDate.Time, m.Runtime, m.ImdbID, m.PosterURL); err != nil {
			return translate(err, catalog.EntityMovie)
		}
		if err := writeMovieLinks(ctx, tx, m); err != nil {
			return err
		}
		var err error
		out, err = getMovie(ctx, tx, m.ID)
		return err
	})
	return out, err
}

func (s *Store) UpdateMovie(ctx context.Context, m catalog.Movie) (catalog.Movie, error) {
	var out catalog.Movie
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			update movies set title=$2, release_date=$3, runtime=$4, imdb_id=$5, poster_url=$6
			where id=$1`,
			m.ID, m.Title, m.ReleaseDate.Time, m.Runtime, m.ImdbID, m.PosterURL)
		if err := affected(tag, err, catalog.EntityMovie, m.ID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, "delete from movie_genres where movie_id = $1", m.ID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, "delete from movie_countries where movie_id = $1", m.ID); err != nil {
			return err
		}
		if err := writeMovieLinks(ctx, tx, m); err != nil {
			return err
		}
		out, err = getMovie(ctx, tx, m.ID)
		return err
	})
	return out, err
}

func writeMovieLinks(ctx context.Context, tx pgx.Tx, m catalog.Movie) error {
	for i, id := range m.GenreIDs() {
		if _, err := tx.Exec(ctx, "insert into movie_genres (movie_id, genre_id, position) values ($1,$2,$3)", m.ID, id, i); err != nil {
			return translate(err, catalog.EntityGenre)
		}
	}
	for i, id := range m.CountryIDs() {
		if _, err := tx.Exec(ctx, "insert into movie_countries (movie_id, country_id, position) values ($1,$2,$3)", m.ID, id, i); err != nil {
			return translate(err, catalog.EntityCountry)
		}
	}
	return nil
}

// DeleteMovie removes the movie; reviews, cast entries, actor links,
// watchlist and list rows cascade.
func (s *Store) DeleteMovie(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, "delete from movies where id = $1", id)
	return affected(tag, err, catalog.EntityMovie, id)
}

// --- Movie/actor links ---

func (s *Store) ActorMovies(ctx context.Context, actorID uuid.UUID) ([]catalog.Movie, error) {
	rows, err := s.pool.Query(ctx, `
		select `+movieCols+`
		from movie_actors ma join movies m on m.id = ma.movie_id
		where ma.actor_id = $1
		order by lower(m.title), m.id`, actorID)
	ms, err := collect(rows, err, scanMovieRows)
	if err != nil {
		return nil, err
	}
	return ms, hydrateMovies(ctx, s.pool, ms)
}

func (s *Store) MovieActors(ctx context.Context, movieID uuid.UUID) ([]catalog.Actor, error) {
	rows, err := s.pool.Query(ctx, `
		select `+actorCols+`
		from movie_actors ma join actors a on a.id = ma.actor_id
		where ma.movie_id = $1
		order by lower(a.name), a.id`, movieID)
	return collect(rows, err, scanActorRows)
}

func (s *Store) LinkActor(ctx context.Context, movieID, actorID uuid.UUID) error {
	return s.inTx(ctx, func(tx pgx.Tx) error {
		if err := exists(ctx, tx, "movies", catalog.EntityMovie, movieID); err != nil {
			return err
		}
		if err := exists(ctx, tx, "actors", catalog.EntityActor, actorID); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, "insert into movie_actors (movie_id, actor_id) values ($1,$2) on conflict do nothing", movieID, actorID)
		if err != nil {
			return translate(err, catalog.EntityActor)
		}
		if tag.RowsAffected() == 0 {
			return errs.Conflict("Actor with id %s is already in Movie with id %s", actorID, movieID)
		}
		return nil
	})
}

func (s *Store) UnlinkActor(ctx context.Context, movieID, actorID uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, "delete from movie_actors where movie_id = $1 and actor_id = $2", movieID, actorID)
	return affected(tag, err, catalog.EntityActor, actorID.String()+" for Movie "+movieID.String())
}

func exists(ctx context.Context, q querier, table, entity string, id uuid.UUID) error {
	var ok bool
	if err := q.QueryRow(ctx, "select exists (select 1 from "+table+" where id = $1)", id).Scan(&ok); err != nil {
		return err
	}
	if !ok {
		return errs.Missing(entity, id)
	}
	return nil
}
