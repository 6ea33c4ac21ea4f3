// Package country implements the country lookup rules. Country names are unique;
// deleting a country detaches it from movies and clears it as a birth country.
package country

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
	ListCountries(ctx context.Context, req catalog.PageRequest) (catalog.Page[catalog.Country], error)
	GetCountry(ctx context.Context, id uuid.UUID) (catalog.Country, error)
	ListMovies(ctx context.Context, f catalog.MovieFilter) ([]catalog.Movie, error)
	SearchPersons(ctx context.Context, f catalog.PersonFilter, now time.Time) ([]catalog.Person, error)
}

type Writer interface {
	CreateCountry(ctx context.Context, c catalog.Country) (catalog.Country, error)
	UpdateCountry(ctx context.Context, c catalog.Country) (catalog.Country, error)
	DeleteCountry(ctx context.Context, id uuid.UUID) error
}

type Service interface {
	List(ctx context.Context, req catalog.PageRequest) (catalog.Page[catalog.Country], error)
	Get(ctx context.Context, id uuid.UUID) (catalog.Country, error)
	Create(ctx context.Context, c catalog.Country) (catalog.Country, error)
	Put(ctx context.Context, id uuid.UUID, c catalog.Country) (upsert.Result[catalog.Country], error)
	Delete(ctx context.Context, id uuid.UUID) error
	Movies(ctx context.Context, id uuid.UUID) ([]catalog.Movie, error)
	Persons(ctx context.Context, id uuid.UUID) ([]catalog.Person, error)
}

type service struct {
	repo   Repo
	writer Writer
}

func New(repo Repo, writer Writer) Service { return &service{repo: repo, writer: writer} }

func validate(c *catalog.Country) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return errs.Invalid("name is required")
	}
	return nil
}

func (s *service) List(ctx context.Context, req catalog.PageRequest) (catalog.Page[catalog.Country], error) {
	return s.repo.ListCountries(ctx, req)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (catalog.Country, error) {
	return s.repo.GetCountry(ctx, id)
}

func (s *service) Create(ctx context.Context, c catalog.Country) (catalog.Country, error) {
	if err := validate(&c); err != nil {
		return catalog.Country{}, err
	}
	c.ID = uuid.New()
	return s.writer.CreateCountry(ctx, c)
}

func (s *service) Put(ctx context.Context, id uuid.UUID, c catalog.Country) (upsert.Result[catalog.Country], error) {
	if err := validate(&c); err != nil {
		return upsert.Result[catalog.Country]{}, err
	}
	c.ID = id
	return upsert.Apply(ctx,
		func(ctx context.Context) error { _, err := s.repo.GetCountry(ctx, id); return err },
		func(ctx context.Context) (catalog.Country, error) { return s.writer.UpdateCountry(ctx, c) },
		func(ctx context.Context) (catalog.Country, error) { return s.writer.CreateCountry(ctx, c) },
	)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.writer.DeleteCountry(ctx, id)
}

func (s *service) Movies(ctx context.Context, id uuid.UUID) ([]catalog.Movie, error) {
	if _, err := s.repo.GetCountry(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.ListMovies(ctx, catalog.MovieFilter{CountryID: &id})
}

// Persons lists the persons born in the country.
func (s *service) Persons(ctx context.Context, id uuid.UUID) ([]catalog.Person, error) {
	if _, err := s.repo.GetCountry(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.SearchPersons(ctx, catalog.PersonFilter{CountryID: &id}, time.Now())
}
