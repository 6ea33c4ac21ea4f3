// Package movie implements the movie catalogue rules: required descriptive
// fields, a unique IMDb id in tt-form, and genre/country references that
// must resolve before a movie is stored.
package movie

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tinoosan/cinerator/internal/catalog"
	"github.com/tinoosan/cinerator/internal/errs"
	"github.com/tinoosan/cinerator/internal/service/upsert"
)

type Repo interface {
	ListMovies(ctx context.Context, f catalog.MovieFilter) ([]catalog.Movie, error)
	PageMovies(ctx context.Context, req catalog.PageRequest) (catalog.Page[catalog.Movie], error)
	GetMovie(ctx context.Context, id uuid.UUID) (catalog.Movie, error)
	FetchGenres(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]catalog.Genre, error)
	FetchCountries(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]catalog.Country, error)
	ListCastInfos(ctx context.Context, f catalog.CastInfoFilter) ([]catalog.CastInfo, error)
}

type Writer interface {
	CreateMovie(ctx context.Context, m catalog.Movie) (catalog.Movie, error)
	UpdateMovie(ctx context.Context, m catalog.Movie) (catalog.Movie, error)
	// DeleteMovie removes the movie with its reviews and cast entries and
	// detaches it from actors, watchlists and user lists.
	DeleteMovie(ctx context.Context, id uuid.UUID) error
}

// Input is the client-supplied state of a movie. Relations are given by id.
type Input struct {
	Title       string
	ReleaseDate catalog.Date
	Runtime     string
	ImdbID      string
	PosterURL   string
	GenreIDs    []uuid.UUID
	CountryIDs  []uuid.UUID
}

type Service interface {
	List(ctx context.Context) ([]catalog.Movie, error)
	Page(ctx context.Context, req catalog.PageRequest) (catalog.Page[catalog.Movie], error)
	Get(ctx context.Context, id uuid.UUID) (catalog.Movie, error)
	Search(ctx context.Context, f catalog.MovieFilter) ([]catalog.Movie, error)
	ByTitle(ctx context.Context, title string) ([]catalog.Movie, error)
	Create(ctx context.Context, in Input) (catalog.Movie, error)
	Put(ctx context.Context, id uuid.UUID, in Input) (upsert.Result[catalog.Movie], error)
	Delete(ctx context.Context, id uuid.UUID) error
	Genres(ctx context.Context, id uuid.UUID) ([]catalog.Genre, error)
	Countries(ctx context.Context, id uuid.UUID) ([]catalog.Country, error)
	Credits(ctx context.Context, id uuid.UUID) ([]catalog.CastInfo, error)
	Directors(ctx context.Context, id uuid.UUID) ([]catalog.Person, error)
}

type service struct {
	repo   Repo
	writer Writer
	now    func() time.Time
}

func New(repo Repo, writer Writer) Service {
	return &service{repo: repo, writer: writer, now: time.Now}
}

// validate normalizes in and checks the field rules.
func (s *service) validate(in *Input) error {
	in.Title = strings.TrimSpace(in.Title)
	in.Runtime = strings.TrimSpace(in.Runtime)
	in.ImdbID = strings.TrimSpace(in.ImdbID)
	in.PosterURL = strings.TrimSpace(in.PosterURL)
	if in.Title == "" {
		return errs.Invalid("title is required")
	}
	if in.ReleaseDate.IsZero() {
		return errs.Invalid("releaseDate is required")
	}
	if in.ReleaseDate.After(s.now()) {
		return errs.Invalid("releaseDate must not be in the future")
	}
	if in.Runtime == "" {
		return errs.Invalid("runtime is required")
	}
	if !catalog.IsImdbID(in.ImdbID) {
		return errs.Invalid("imdbId must match tt followed by 6 to 9 digits")
	}
	if len(in.GenreIDs) == 0 {
		return errs.Invalid("at least one genre is required")
	}
	if len(in.CountryIDs) == 0 {
		return errs.Invalid("at least one country is required")
	}
	return nil
}

// build resolves the referenced genres and countries and produces the entity.
func (s *service) build(ctx context.Context, id uuid.UUID, in Input) (catalog.Movie, error) {
	genres, err := s.repo.FetchGenres(ctx, in.GenreIDs)
	if err != nil {
		return catalog.Movie{}, err
	}
	countries, err := s.repo.FetchCountries(ctx, in.CountryIDs)
	if err != nil {
		return catalog.Movie{}, err
	}
	m := catalog.Movie{
		ID:          id,
		Title:       in.Title,
		ReleaseDate: in.ReleaseDate,
		Runtime:     in.Runtime,
		ImdbID:      in.ImdbID,
		PosterURL:   in.PosterURL,
	}
	seen := make(map[uuid.UUID]struct{}, len(in.GenreIDs))
	for _, gid := range in.GenreIDs {
		g, ok := genres[gid]
		if !ok {
			return catalog.Movie{}, errs.Unresolved(catalog.EntityGenre, gid)
		}
		if _, dup := seen[gid]; dup {
			continue
		}
		seen[gid] = struct{}{}
		m.Genres = append(m.Genres, g)
	}
	seen = make(map[uuid.UUID]struct{}, len(in.CountryIDs))
	for _, cid := range in.CountryIDs {
		c, ok := countries[cid]
		if !ok {
			return catalog.Movie{}, errs.Unresolved(catalog.EntityCountry, cid)
		}
		if _, dup := seen[cid]; dup {
			continue
		}
		seen[cid] = struct{}{}
		m.Countries = append(m.Countries, c)
	}
	return m, nil
}

func (s *service) List(ctx context.Context) ([]catalog.Movie, error) {
	return s.repo.ListMovies(ctx, catalog.MovieFilter{})
}

func (s *service) Page(ctx context.Context, req catalog.PageRequest) (catalog.Page[catalog.Movie], error) {
	return s.repo.PageMovies(ctx, req)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (catalog.Movie, error) {
	return s.repo.GetMovie(ctx, id)
}

func (s *service) Search(ctx context.Context, f catalog.MovieFilter) ([]catalog.Movie, error) {
	return s.repo.ListMovies(ctx, f)
}

// ByTitle matches titles by substring; a value shaped like an IMDb id
// searches the imdbId field instead.
func (s *service) ByTitle(ctx context.Context, title string) ([]catalog.Movie, error) {
	title = strings.TrimSpace(title)
	if catalog.IsImdbID(title) {
		return s.repo.ListMovies(ctx, catalog.MovieFilter{ImdbID: title})
	}
	return s.repo.ListMovies(ctx, catalog.MovieFilter{Title: title})
}

func (s *service) Create(ctx context.Context, in Input) (catalog.Movie, error) {
	if err := s.validate(&in); err != nil {
		return catalog.Movie{}, err
	}
	m, err := s.build(ctx, uuid.New(), in)
	if err != nil {
		return catalog.Movie{}, err
	}
	return s.writer.CreateMovie(ctx, m)
}

func (s *service) Put(ctx context.Context, id uuid.UUID, in Input) (upsert.Result[catalog.Movie], error) {
	if err := s.validate(&in); err != nil {
		return upsert.Result[catalog.Movie]{}, err
	}
	m, err := s.build(ctx, id, in)
	if err != nil {
		return upsert.Result[catalog.Movie]{}, err
	}
	return upsert.Apply(ctx,
		func(ctx context.Context) error { _, err := s.repo.GetMovie(ctx, id); return err },
		func(ctx context.Context) (catalog.Movie, error) { return s.writer.UpdateMovie(ctx, m) },
		func(ctx context.Context) (catalog.Movie, error) { return s.writer.CreateMovie(ctx, m) },
	)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.writer.DeleteMovie(ctx, id)
}

func (s *service) Genres(ctx context.Context, id uuid.UUID) ([]catalog.Genre, error) {
	m, err := s.repo.GetMovie(ctx, id)
	if err != nil {
		return nil, err
	}
	return m.Genres, nil
}

func (s *service) Countries(ctx context.Context, id uuid.UUID) ([]catalog.Country, error) {
	m, err := s.repo.GetMovie(ctx, id)
	if err != nil {
		return nil, err
	}
	return m.Countries, nil
}

func (s *service) Credits(ctx context.Context, id uuid.UUID) ([]catalog.CastInfo, error) {
	if _, err := s.repo.GetMovie(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.ListCastInfos(ctx, catalog.CastInfoFilter{MovieID: &id})
}

func (s *service) Directors(ctx context.Context, id uuid.UUID) ([]catalog.Person, error) {
	m, err := s.repo.GetMovie(ctx, id)
	if err != nil {
		return nil, err
	}
	return m.Directors, nil
}
