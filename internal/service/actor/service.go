// Package actor implements the rules for actors and their movie links.
// An actor's age is fixed from the birth date each time the actor is
// written; reads return the stored value.
package actor

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
	ListActors(ctx context.Context, f catalog.ActorFilter) ([]catalog.Actor, error)
	GetActor(ctx context.Context, id uuid.UUID) (catalog.Actor, error)
	GetMovie(ctx context.Context, id uuid.UUID) (catalog.Movie, error)
	ActorMovies(ctx context.Context, actorID uuid.UUID) ([]catalog.Movie, error)
	MovieActors(ctx context.Context, movieID uuid.UUID) ([]catalog.Actor, error)
}

type Writer interface {
	CreateActor(ctx context.Context, a catalog.Actor) (catalog.Actor, error)
	UpdateActor(ctx context.Context, a catalog.Actor) (catalog.Actor, error)
	DeleteActor(ctx context.Context, id uuid.UUID) error
	// LinkActor returns errs.ErrConflict when the link already exists.
	LinkActor(ctx context.Context, movieID, actorID uuid.UUID) error
	// UnlinkActor returns errs.ErrNotFound when there is no link.
	UnlinkActor(ctx context.Context, movieID, actorID uuid.UUID) error
}

// Input is the client-supplied state of an actor.
type Input struct {
	Name         string
	BirthDate    catalog.Date
	BirthCountry string
}

type Service interface {
	List(ctx context.Context) ([]catalog.Actor, error)
	Search(ctx context.Context, f catalog.ActorFilter) ([]catalog.Actor, error)
	Get(ctx context.Context, id uuid.UUID) (catalog.Actor, error)
	Create(ctx context.Context, in Input) (catalog.Actor, error)
	Put(ctx context.Context, id uuid.UUID, in Input) (upsert.Result[catalog.Actor], error)
	Delete(ctx context.Context, id uuid.UUID) error
	Movies(ctx context.Context, actorID uuid.UUID) ([]catalog.Movie, error)
	Movie(ctx context.Context, actorID, movieID uuid.UUID) (catalog.Movie, error)
	ForMovie(ctx context.Context, movieID uuid.UUID) ([]catalog.Actor, error)
	InMovie(ctx context.Context, movieID, actorID uuid.UUID) (catalog.Actor, error)
	Link(ctx context.Context, movieID, actorID uuid.UUID) (catalog.Actor, error)
	Unlink(ctx context.Context, movieID, actorID uuid.UUID) error
}

type service struct {
	repo   Repo
	writer Writer
	now    func() time.Time
}

func New(repo Repo, writer Writer) Service {
	return &service{repo: repo, writer: writer, now: time.Now}
}

func (s *service) build(id uuid.UUID, in Input) (catalog.Actor, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.BirthCountry = strings.TrimSpace(in.BirthCountry)
	if in.Name == "" {
		return catalog.Actor{}, errs.Invalid("name is required")
	}
	if in.BirthDate.IsZero() {
		return catalog.Actor{}, errs.Invalid("birthDate is required")
	}
	now := s.now()
	if in.BirthDate.After(now) {
		return catalog.Actor{}, errs.Invalid("birthDate must be in the past")
	}
	return catalog.Actor{
		ID:           id,
		Name:         in.Name,
		BirthDate:    in.BirthDate,
		BirthCountry: in.BirthCountry,
		Age:          in.BirthDate.YearsAt(now),
	}, nil
}

func (s *service) List(ctx context.Context) ([]catalog.Actor, error) {
	return s.repo.ListActors(ctx, catalog.ActorFilter{})
}

func (s *service) Search(ctx context.Context, f catalog.ActorFilter) ([]catalog.Actor, error) {
	return s.repo.ListActors(ctx, f)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (catalog.Actor, error) {
	return s.repo.GetActor(ctx, id)
}

func (s *service) Create(ctx context.Context, in Input) (catalog.Actor, error) {
	a, err := s.build(uuid.New(), in)
	if err != nil {
		return catalog.Actor{}, err
	}
	return s.writer.CreateActor(ctx, a)
}

func (s *service) Put(ctx context.Context, id uuid.UUID, in Input) (upsert.Result[catalog.Actor], error) {
	a, err := s.build(id, in)
	if err != nil {
		return upsert.Result[catalog.Actor]{}, err
	}
	return upsert.Apply(ctx,
		func(ctx context.Context) error { _, err := s.repo.GetActor(ctx, id); return err },
		func(ctx context.Context) (catalog.Actor, error) { return s.writer.UpdateActor(ctx, a) },
		func(ctx context.Context) (catalog.Actor, error) { return s.writer.CreateActor(ctx, a) },
	)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.writer.DeleteActor(ctx, id)
}

func (s *service) Movies(ctx context.Context, actorID uuid.UUID) ([]catalog.Movie, error) {
	if _, err := s.repo.GetActor(ctx, actorID); err != nil {
		return nil, err
	}
	return s.repo.ActorMovies(ctx, actorID)
}

// Movie returns the movie only when the actor is linked to it.
func (s *service) Movie(ctx context.Context, actorID, movieID uuid.UUID) (catalog.Movie, error) {
	movies, err := s.Movies(ctx, actorID)
	if err != nil {
		return catalog.Movie{}, err
	}
	for _, m := range movies {
		if m.ID == movieID {
			return m, nil
		}
	}
	return catalog.Movie{}, errs.Missing(catalog.EntityMovie, movieID)
}

func (s *service) ForMovie(ctx context.Context, movieID uuid.UUID) ([]catalog.Actor, error) {
	if _, err := s.repo.GetMovie(ctx, movieID); err != nil {
		return nil, err
	}
	return s.repo.MovieActors(ctx, movieID)
}

// InMovie returns the actor only when linked to the movie.
func (s *service) InMovie(ctx context.Context, movieID, actorID uuid.UUID) (catalog.Actor, error) {
	actors, err := s.ForMovie(ctx, movieID)
	if err != nil {
		return catalog.Actor{}, err
	}
	for _, a := range actors {
		if a.ID == actorID {
			return a, nil
		}
	}
	return catalog.Actor{}, errs.Missing(catalog.EntityActor, actorID)
}

func (s *service) Link(ctx context.Context, movieID, actorID uuid.UUID) (catalog.Actor, error) {
	if _, err := s.repo.GetMovie(ctx, movieID); err != nil {
		return catalog.Actor{}, err
	}
	a, err := s.repo.GetActor(ctx, actorID)
	if err != nil {
		if errs.IsNotFound(err) {
			return catalog.Actor{}, errs.Unresolved(catalog.EntityActor, actorID)
		}
		return catalog.Actor{}, err
	}
	if err := s.writer.LinkActor(ctx, movieID, actorID); err != nil {
		return catalog.Actor{}, err
	}
	return a, nil
}

func (s *service) Unlink(ctx context.Context, movieID, actorID uuid.UUID) error {
	if _, err := s.repo.GetMovie(ctx, movieID); err != nil {
		return err
	}
	return s.writer.UnlinkActor(ctx, movieID, actorID)
}
