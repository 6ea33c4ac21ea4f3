// Package castinfo implements credits: a movie, a person and a role, plus an
// optional character name. The same credit may not be recorded twice.
package castinfo

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/tinoosan/cinerator/internal/catalog"
	"github.com/tinoosan/cinerator/internal/errs"
	"github.com/tinoosan/cinerator/internal/service/upsert"
)

type Repo interface {
	ListCastInfos(ctx context.Context, f catalog.CastInfoFilter) ([]catalog.CastInfo, error)
	PageCastInfos(ctx context.Context, req catalog.PageRequest) (catalog.Page[catalog.CastInfo], error)
	GetCastInfo(ctx context.Context, id uuid.UUID) (catalog.CastInfo, error)
	GetMovie(ctx context.Context, id uuid.UUID) (catalog.Movie, error)
	GetPerson(ctx context.Context, id uuid.UUID) (catalog.Person, error)
	GetRole(ctx context.Context, id uuid.UUID) (catalog.Role, error)
}

type Writer interface {
	// CreateCastInfo and UpdateCastInfo return errs.ErrConflict when an
	// equal credit already exists under another id.
	CreateCastInfo(ctx context.Context, c catalog.CastInfo) (catalog.CastInfo, error)
	UpdateCastInfo(ctx context.Context, c catalog.CastInfo) (catalog.CastInfo, error)
	DeleteCastInfo(ctx context.Context, id uuid.UUID) error
}

// Input references the credited movie, person and role by id.
type Input struct {
	MovieID       uuid.UUID
	PersonID      uuid.UUID
	RoleID        uuid.UUID
	CharacterName string
}

type Service interface {
	List(ctx context.Context, req catalog.PageRequest) (catalog.Page[catalog.CastInfo], error)
	Get(ctx context.Context, id uuid.UUID) (catalog.CastInfo, error)
	Create(ctx context.Context, in Input) (catalog.CastInfo, error)
	Put(ctx context.Context, id uuid.UUID, in Input) (upsert.Result[catalog.CastInfo], error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo   Repo
	writer Writer
}

func New(repo Repo, writer Writer) Service { return &service{repo: repo, writer: writer} }

// resolve looks up every referenced entity and fails on the first missing one.
func (s *service) resolve(ctx context.Context, id uuid.UUID, in Input) (catalog.CastInfo, error) {
	if in.MovieID == uuid.Nil || in.PersonID == uuid.Nil || in.RoleID == uuid.Nil {
		return catalog.CastInfo{}, errs.Invalid("movieId, personId and roleId are required")
	}
	m, err := s.repo.GetMovie(ctx, in.MovieID)
	if err != nil {
		return catalog.CastInfo{}, unresolved(err, catalog.EntityMovie, in.MovieID)
	}
	p, err := s.repo.GetPerson(ctx, in.PersonID)
	if err != nil {
		return catalog.CastInfo{}, unresolved(err, catalog.EntityPerson, in.PersonID)
	}
	r, err := s.repo.GetRole(ctx, in.RoleID)
	if err != nil {
		return catalog.CastInfo{}, unresolved(err, catalog.EntityRole, in.RoleID)
	}
	return catalog.CastInfo{
		ID:            id,
		MovieID:       m.ID,
		PersonID:      p.ID,
		RoleID:        r.ID,
		CharacterName: strings.TrimSpace(in.CharacterName),
		Movie:         m,
		Person:        p,
		Role:          r,
	}, nil
}

func unresolved(err error, entity string, id uuid.UUID) error {
	if errs.IsNotFound(err) {
		return errs.Unresolved(entity, id)
	}
	return err
}

func (s *service) List(ctx context.Context, req catalog.PageRequest) (catalog.Page[catalog.CastInfo], error) {
	return s.repo.PageCastInfos(ctx, req)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (catalog.CastInfo, error) {
	return s.repo.GetCastInfo(ctx, id)
}

func (s *service) Create(ctx context.Context, in Input) (catalog.CastInfo, error) {
	c, err := s.resolve(ctx, uuid.New(), in)
	if err != nil {
		return catalog.CastInfo{}, err
	}
	return s.writer.CreateCastInfo(ctx, c)
}

func (s *service) Put(ctx context.Context, id uuid.UUID, in Input) (upsert.Result[catalog.CastInfo], error) {
	c, err := s.resolve(ctx, id, in)
	if err != nil {
		return upsert.Result[catalog.CastInfo]{}, err
	}
	return upsert.Apply(ctx,
		func(ctx context.Context) error { _, err := s.repo.GetCastInfo(ctx, id); return err },
		func(ctx context.Context) (catalog.CastInfo, error) { return s.writer.UpdateCastInfo(ctx, c) },
		func(ctx context.Context) (catalog.CastInfo, error) { return s.writer.CreateCastInfo(ctx, c) },
	)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.writer.DeleteCastInfo(ctx, id)
}
