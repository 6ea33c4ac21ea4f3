package role

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/tinoosan/cinerator/internal/catalog"
	"github.com/tinoosan/cinerator/internal/errs"
	"github.com/tinoosan/cinerator/internal/service/upsert"
)

type Repo interface {
	ListRoles(ctx context.Context, req catalog.PageRequest) (catalog.Page[catalog.Role], error)
	GetRole(ctx context.Context, id uuid.UUID) (catalog.Role, error)
}

type Writer interface {
	CreateRole(ctx context.Context, r catalog.Role) (catalog.Role, error)
	UpdateRole(ctx context.Context, r catalog.Role) (catalog.Role, error)
	// DeleteRole removes the role together with every cast entry that uses it.
	DeleteRole(ctx context.Context, id uuid.UUID) error
}

type Service interface {
	List(ctx context.Context, req catalog.PageRequest) (catalog.Page[catalog.Role], error)
	Get(ctx context.Context, id uuid.UUID) (catalog.Role, error)
	Create(ctx context.Context, r catalog.Role) (catalog.Role, error)
	Put(ctx context.Context, id uuid.UUID, r catalog.Role) (upsert.Result[catalog.Role], error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo   Repo
	writer Writer
}

func New(repo Repo, writer Writer) Service { return &service{repo: repo, writer: writer} }

func validate(r *catalog.Role) error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return errs.Invalid("role is required")
	}
	return nil
}

func (s *service) List(ctx context.Context, req catalog.PageRequest) (catalog.Page[catalog.Role], error) {
	return s.repo.ListRoles(ctx, req)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (catalog.Role, error) {
	return s.repo.GetRole(ctx, id)
}

func (s *service) Create(ctx context.Context, r catalog.Role) (catalog.Role, error) {
	if err := validate(&r); err != nil {
		return catalog.Role{}, err
	}
	r.ID = uuid.New()
	return s.writer.CreateRole(ctx, r)
}

func (s *service) Put(ctx context.Context, id uuid.UUID, r catalog.Role) (upsert.Result[catalog.Role], error) {
	if err := validate(&r); err != nil {
		return upsert.Result[catalog.Role]{}, err
	}
	r.ID = id
	return upsert.Apply(ctx,
		func(ctx context.Context) error { _, err := s.repo.GetRole(ctx, id); return err },
		func(ctx context.Context) (catalog.Role, error) { return s.writer.UpdateRole(ctx, r) },
		func(ctx context.Context) (catalog.Role, error) { return s.writer.CreateRole(ctx, r) },
	)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.writer.DeleteRole(ctx, id)
}
