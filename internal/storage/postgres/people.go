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

const (
	personCols = "p.id, p.name, p.birth_date, p.death_date, p.height, c.id, c.name"
	personFrom = "persons p left join countries c on c.id = p.birth_country_id"
	actorCols  = "a.id, a.name, a.birth_date, a.birth_country, a.age"
)

var personColumns = map[string]string{
	"id":        "p.id",
	"name":      "lower(p.name)",
	"birthDate": "p.birth_date",
	"deathDate": "p.death_date",
	"height":    "lower(p.height)",
}

var castInfoColumns = map[string]string{
	"id":            "ci.id",
	"characterName": "lower(ci.character_name)",
}

// scanPersonWith scans personCols after any leading destinations.
func scanPersonWith(row pgx.Row, lead ...any) (catalog.Person, error) {
	var p catalog.Person
	var born time.Time
	var died *time.Time
	var countryID *uuid.UUID
	var countryName *string
	dest := append(lead, &p.ID, &p.Name, &born, &died, &p.Height, &countryID, &countryName)
	if err := row.Scan(dest...); err != nil {
		return catalog.Person{}, err
	}
	p.BirthDate = catalog.DateOf(born)
	if died != nil {
		d := catalog.DateOf(*died)
		p.DeathDate = &d
	}
	if countryID != nil && countryName != nil {
		p.BirthCountry = &catalog.Country{ID: *countryID, Name: *countryName}
	}
	return p, nil
}

func scanPersonRows(rows pgx.Rows) (catalog.Person, error) { return scanPersonWith(rows) }

func personArgs(p catalog.Person) (death *time.Time, country *uuid.UUID) {
	if p.DeathDate != nil && !p.DeathDate.IsZero() {
		t := p.DeathDate.Time
		death = &t
	}
	if p.BirthCountry != nil {
		id := p.BirthCountry.ID
		country = &id
	}
	return death, country
}

// --- Persons ---

func (s *Store) ListPersons(ctx context.Context, req catalog.PageRequest) (catalog.Page[catalog.Person], error) {
	return pageQuery(ctx, s.pool, req, personFrom, personCols, personColumns, "p.id", scanPersonRows)
}

// SearchPersons pushes the column predicates to SQL; age is evaluated
// against now after the scan.
func (s *Store) SearchPersons(ctx context.Context, f catalog.PersonFilter, now time.Time) ([]catalog.Person, error) {
	var w where
	if f.Name != "" {
		w.add("p.name ilike ?", likeArg(f.Name))
	}
	if f.BirthDate != nil {
		w.add("p.birth_date = ?", f.BirthDate.Time)
	}
	if f.DeathDate != nil {
		w.add("p.death_date = ?", f.DeathDate.Time)
	}
	if f.Height != "" {
		w.add("p.height ilike ?", likeArg(f.Height))
	}
	if f.Country != "" {
		w.add("c.name ilike ?", likeArg(f.Country))
	}
	if f.CountryID != nil {
		w.add("p.birth_country_id = ?", *f.CountryID)
	}
	rows, err := s.pool.Query(ctx, "select "+personCols+" from "+personFrom+w.String()+" order by lower(p.name), p.id", w.args...)
	ps, err := collect(rows, err, scanPersonRows)
	if err != nil {
		return nil, err
	}
	out := ps[:0]
	for _, p := range ps {
		if f.Match(p, now) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Store) GetPerson(ctx context.Context, id uuid.UUID) (catalog.Person, error) {
	return getPerson(ctx, s.pool, id)
}

func getPerson(ctx context.Context, q querier, id uuid.UUID) (catalog.Person, error) {
	p, err := scanPersonWith(q.QueryRow(ctx, "select "+personCols+" from "+personFrom+" where p.id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return catalog.Person{}, errs.Missing(catalog.EntityPerson, id)
	}
	return p, err
}

func (s *Store) CreatePerson(ctx context.Context, p catalog.Person) (catalog.Person, error) {
	death, country := personArgs(p)
	if _, err := s.pool.Exec(ctx, `
		insert into persons (id, name, birth_date, death_date, height, birth_country_id)
		values ($1,$2,$3,$4,$5,$6)`,
		p.ID, p.Name, p.BirthDate.Time, death, p.Height, country); err != nil {
		return catalog.Person{}, translate(err, catalog.EntityPerson)
	}
	return s.GetPerson(ctx, p.ID)
}

func (s *Store) UpdatePerson(ctx context.Context, p catalog.Person) (catalog.Person, error) {
	death, country := personArgs(p)
	tag, err := s.pool.Exec(ctx, `
		update persons set name=$2, birth_date=$3, death_date=$4, height=$5, birth_country_id=$6
		where id=$1`,
		p.ID, p.Name, p.BirthDate.Time, death, p.Height, country)
	if err := affected(tag, err, catalog.EntityPerson, p.ID); err != nil {
		return catalog.Person{}, err
	}
	return s.GetPerson(ctx, p.ID)
}

// DeletePerson removes the person; their cast entries cascade.
func (s *Store) DeletePerson(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, "delete from persons where id = $1", id)
	return affected(tag, err, catalog.EntityPerson, id)
}

// --- Actors ---

func scanActor(row pgx.Row) (catalog.Actor, error) {
	var a catalog.Actor
	var born time.Time
	if err := row.Scan(&a.ID, &a.Name, &born, &a.BirthCountry, &a.Age); err != nil {
		return catalog.Actor{}, err
	}
	a.BirthDate = catalog.DateOf(born)
	return a, nil
}

func scanActorRows(rows pgx.Rows) (catalog.Actor, error) { return scanActor(rows) }

func (s *Store) ListActors(ctx context.Context, f catalog.ActorFilter) ([]catalog.Actor, error) {
	var w where
	if f.Name != "" && f.NameExact {
		w.add("lower(a.name) = lower(?)", f.Name)
	} else if f.Name != "" {
		w.add("a.name ilike ?", likeArg(f.Name))
	}
	if f.BirthDate != nil {
		w.add("a.birth_date = ?", f.BirthDate.Time)
	}
	if f.BirthCountry != "" {
		w.add("lower(a.birth_country) = lower(?)", f.BirthCountry)
	}
	if f.Age != nil {
		w.add("a.age = ?", *f.Age)
	}
	rows, err := s.pool.Query(ctx, "select "+actorCols+" from actors a"+w.String()+" order by lower(a.name), a.id", w.args...)
	return collect(rows, err, scanActorRows)
}

func (s *Store) GetActor(ctx context.Context, id uuid.UUID) (catalog.Actor, error) {
	a, err := scanActor(s.pool.QueryRow(ctx, "select "+actorCols+" from actors a where a.id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return catalog.Actor{}, errs.Missing(catalog.EntityActor, id)
	}
	return a, err
}

func (s *Store) CreateActor(ctx context.Context, a catalog.Actor) (catalog.Actor, error) {
	_, err := s.pool.Exec(ctx, `
		insert into actors (id, name, birth_date, birth_country, age)
		values ($1,$2,$3,$4,$5)`,
		a.ID, a.Name, a.BirthDate.Time, a.BirthCountry, a.Age)
	if err != nil {
		return catalog.Actor{}, translate(err, catalog.EntityActor)
	}
	return a, nil
}

func (s *Store) UpdateActor(ctx context.Context, a catalog.Actor) (catalog.Actor, error) {
	tag, err := s.pool.Exec(ctx, `
		update actors set name=$2, birth_date=$3, birth_country=$4, age=$5
		where id=$1`,
		a.ID, a.Name, a.BirthDate.Time, a.BirthCountry, a.Age)
	if err := affected(tag, err, catalog.EntityActor, a.ID); err != nil {
		return catalog.Actor{}, err
	}
	return a, nil
}

// DeleteActor removes the actor; movie links cascade.
func (s *Store) DeleteActor(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, "delete from actors where id = $1", id)
	return affected(tag, err, catalog.EntityActor, id)
}

// --- Cast entries ---

const (
	castInfoCols = "ci.id, ci.movie_id, ci.person_id, ci.role_id, ci.character_name, r.name, m.title, m.release_date, m.runtime, m.imdb_id, m.poster_url, " + personCols
	castInfoFrom = `cast_infos ci
		join roles r on r.id = ci.role_id
		join movies m on m.id = ci.movie_id
		join persons p on p.id = ci.person_id
		left join countries c on c.id = p.birth_country_id`
)

func scanCastInfo(row pgx.Row) (catalog.CastInfo, error) {
	var ci catalog.CastInfo
	var released time.Time
	p, err := scanPersonWith(row, &ci.ID, &ci.MovieID, &ci.PersonID, &ci.RoleID, &ci.CharacterName, &ci.Role.Name,
		&ci.Movie.Title, &released, &ci.Movie.Runtime, &ci.Movie.ImdbID, &ci.Movie.PosterURL)
	if err != nil {
		return catalog.CastInfo{}, err
	}
	ci.Role.ID = ci.RoleID
	ci.Movie.ID = ci.MovieID
	ci.Movie.ReleaseDate = catalog.DateOf(released)
	ci.Person = p
	return ci, nil
}

func scanCastInfoRows(rows pgx.Rows) (catalog.CastInfo, error) { return scanCastInfo(rows) }

// hydrateCastInfoMovies fills genres, countries and directors on the
// embedded movie of every entry in cs.
func hydrateCastInfoMovies(ctx context.Context, q querier, cs []catalog.CastInfo) error {
	ms := make([]catalog.Movie, len(cs))
	for i := range cs {
		ms[i] = cs[i].Movie
	}
	if err := hydrateMovies(ctx, q, ms); err != nil {
		return err
	}
	for i := range cs {
		cs[i].Movie = ms[i]
	}
	return nil
}

func (s *Store) ListCastInfos(ctx context.Context, f catalog.CastInfoFilter) ([]catalog.CastInfo, error) {
	var w where
	if f.MovieID != nil {
		w.add("ci.movie_id = ?", *f.MovieID)
	}
	if f.PersonID != nil {
		w.add("ci.person_id = ?", *f.PersonID)
	}
	if f.RoleID != nil {
		w.add("ci.role_id = ?", *f.RoleID)
	}
	if f.Role != "" {
		w.add("lower(r.name) = lower(?)", f.Role)
	}
	rows, err := s.pool.Query(ctx, "select "+castInfoCols+" from "+castInfoFrom+w.String()+" order by ci.id", w.args...)
	cs, err := collect(rows, err, scanCastInfoRows)
	if err != nil {
		return nil, err
	}
	return cs, hydrateCastInfoMovies(ctx, s.pool, cs)
}

func (s *Store) PageCastInfos(ctx context.Context, req catalog.PageRequest) (catalog.Page[catalog.CastInfo], error) {
	page, err := pageQuery(ctx, s.pool, req, castInfoFrom, castInfoCols, castInfoColumns, "ci.id", scanCastInfoRows)
	if err != nil {
		return page, err
	}
	return page, hydrateCastInfoMovies(ctx, s.pool, page.Items)
}

func (s *Store) GetCastInfo(ctx context.Context, id uuid.UUID) (catalog.CastInfo, error) {
	ci, err := scanCastInfo(s.pool.QueryRow(ctx, "select "+castInfoCols+" from "+castInfoFrom+" where ci.id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return catalog.CastInfo{}, errs.Missing(catalog.EntityCastInfo, id)
	}
	if err != nil {
		return catalog.CastInfo{}, err
	}
	cs := []catalog.CastInfo{ci}
	if err := hydrateCastInfoMovies(ctx, s.pool, cs); err != nil {
		return catalog.CastInfo{}, err
	}
	return cs[0], nil
}

// CreateCastInfo relies on cast_infos_credit_key for the equal-credit rule.
func (s *Store) CreateCastInfo(ctx context.Context, c catalog.CastInfo) (catalog.CastInfo, error) {
	if _, err := s.pool.Exec(ctx, `
		insert into cast_infos (id, movie_id, person_id, role_id, character_name)
		values ($1,$2,$3,$4,$5)`,
		c.ID, c.MovieID, c.PersonID, c.RoleID, c.CharacterName); err != nil {
		return catalog.CastInfo{}, translate(err, catalog.EntityCastInfo)
	}
	return s.GetCastInfo(ctx, c.ID)
}

func (s *Store) UpdateCastInfo(ctx context.Context, c catalog.CastInfo) (catalog.CastInfo, error) {
	tag, err := s.pool.Exec(ctx, `
		update cast_infos set movie_id=$2, person_id=$3, role_id=$4, character_name=$5
		where id=$1`,
		c.ID, c.MovieID, c.PersonID, c.RoleID, c.CharacterName)
	if err := affected(tag, err, catalog.EntityCastInfo, c.ID); err != nil {
		return catalog.CastInfo{}, err
	}
	return s.GetCastInfo(ctx, c.ID)
}

func (s *Store) DeleteCastInfo(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, "delete from cast_infos where id = $1", id)
	return affected(tag, err, catalog.EntityCastInfo, id)
}
