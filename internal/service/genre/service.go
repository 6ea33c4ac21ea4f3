// Package genre implements the genre lookup rules: a non-blank, unique name.
package genre

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/tinoosan/cinerator/internal/catalog"
	"github.com/tinoosan/cinerator/internal/errs"
	"github.com/tinoosan/cinerator/internal/service/upsert"
)

type Repo interface {
	ListGenres(ctx context.Context, req catalog.PageRequest) (catalog.Page[catalog.Genre], error)
	GetGenre(ctx context.Context, id uuid.UUID) (catalog.Genre, error)
	ListMovies(ctx context.Context, f catalog.MovieFilter) ([]catalog.Movie, error)
}

type Writer interface {
	CreateGenre(ctx context.Context, g catalog.Genre) (catalog.Genre, error)
	UpdateGenre(ctx context.Context, g catalog.Genre) (catalog.Genre, error)
	// DeleteGenre removes the genre and detaches it from every movie.
	DeleteGenre(ctx context.Context, id uuid.UUID) error
}

type Service interface {
	List(ctx context.Context, req catalog.PageRequest) (catalog.Page[catalog.Genre], error)
	Get(ctx context.Context, id uuid.UUID) (catalog.Genre, error)
	Create(ctx context.Context, g catalog.Genre) (catalog.Genre, error)
	Put(ctx context.Context, id uuid.UUID, g catalog.Genre) (upsert.Result[catalog.Genre], error)
	Delete(ctx context.Context, id uuid.UUID) error
	Movies(ctx context.Context, id uuid.UUID) ([]catalog.Movie, error)
}

type service struct {
	repo   Repo
	writer Writer
}

func New(repo Repo, writer Writer) Service { return &service{repo: repo, writer: writer} }

func validate(g *catalog.Genre) error {
	g.Name = strings.TrimSpace(g.Name)
	if g.Name == "" {
		return errs.Invalid("name is required")
	}
	return nil
}

func (s *service) List(ctx context.Context, req catalog.PageRequest) (catalog.Page[catalog.Genre], error) {
	return s.repo.ListGenres(ctx, req)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (catalog.Genre, error) {
	return s.repo.GetGenre(ctx, id)
}

func (s *service) Create(ctx context.Context, g catalog.Genre) (catalog.Genre, error) {
	if err := validate(&g); err != nil {
		return catalog.Genre{}, err
	}
	g.ID = uuid.New()
	return s.writer.CreateGenre(ctx, g)
}

func (s *service) Put(ctx context.Context, id uuid.UUID, g catalog.Genre) (upsert.Result[catalog.Genre], error) {
	if err := validate(&g); err != nil {
		return upsert.Result[catalog.Genre]{}, err
	}
	g.ID = id
	return upsert.Apply(ctx,
		func(ctx context.Context) error { _, err := s.repo.GetGenre(ctx, id); return err },
		func(ctx context.Context) (catalog.Genre, error) { return s.writer.UpdateGenre(ctx, g) },
		func(ctx context.Context) (catalog.Genre, error) { return s.writer.CreateGenre(ctx, g) },
	)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.writer.DeleteGenre(ctx, id)
}

// Movies lists the movies tagged with the genre.
func (s *service) Movies(ctx context.Context, id uuid.UUID) ([]catalog.Movie, error) {
	if _, err := s.repo.GetGenre(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.ListMovies(ctx, catalog.MovieFilter{GenreID: &id})
}
