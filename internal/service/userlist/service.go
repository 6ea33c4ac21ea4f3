// Package userlist implements user-owned movie lists. A list's owner must
// exist, its creation time is set once, and a movie appears in it at most once.
package userlist

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
	ListUserLists(ctx context.Context, f catalog.UserListFilter) ([]catalog.UserList, error)
	PageUserLists(ctx context.Context, req catalog.PageRequest) (catalog.Page[catalog.UserList], error)
	GetUserList(ctx context.Context, id uuid.UUID) (catalog.UserList, error)
	GetUser(ctx context.Context, id uuid.UUID) (catalog.User, error)
	GetMovie(ctx context.Context, id uuid.UUID) (catalog.Movie, error)
	MoviesByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Movie, error)
}

type Writer interface {
	CreateUserList(ctx context.Context, l catalog.UserList) (catalog.UserList, error)
	UpdateUserList(ctx context.Context, l catalog.UserList) (catalog.UserList, error)
	DeleteUserList(ctx context.Context, id uuid.UUID) error
	// AddListMovie returns errs.ErrConflict when the movie is already listed.
	AddListMovie(ctx context.Context, listID, movieID uuid.UUID) error
	// RemoveListMovie returns errs.ErrNotFound when the movie is not listed.
	RemoveListMovie(ctx context.Context, listID, movieID uuid.UUID) error
}

// Input is the client-supplied state of a list.
type Input struct {
	Name        string
	Description string
	Private     bool
	UserID      uuid.UUID
}

type Service interface {
	List(ctx context.Context) ([]catalog.UserList, error)
	Page(ctx context.Context, req catalog.PageRequest) (catalog.Page[catalog.UserList], error)
	Get(ctx context.Context, id uuid.UUID) (catalog.UserList, error)
	Search(ctx context.Context, f catalog.UserListFilter) ([]catalog.UserList, error)
	Create(ctx context.Context, in Input) (catalog.UserList, error)
	Put(ctx context.Context, id uuid.UUID, in Input) (upsert.Result[catalog.UserList], error)
	Delete(ctx context.Context, id uuid.UUID) error
	User(ctx context.Context, id uuid.UUID) (catalog.User, error)
	Movies(ctx context.Context, id uuid.UUID) ([]catalog.Movie, error)
	AddMovie(ctx context.Context, id, movieID uuid.UUID) (catalog.Movie, error)
	RemoveMovie(ctx context.Context, id, movieID uuid.UUID) error
}

type service struct {
	repo   Repo
	writer Writer
	now    func() time.Time
}

func New(repo Repo, writer Writer) Service {
	return &service{repo: repo, writer: writer, now: time.Now}
}

func (s *service) validate(ctx context.Context, in *Input) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if in.Name == "" {
		return errs.Invalid("name is required")
	}
	if in.UserID == uuid.Nil {
		return errs.Invalid("userId is required")
	}
	if _, err := s.repo.GetUser(ctx, in.UserID); err != nil {
		if errs.IsNotFound(err) {
			return errs.Unresolved(catalog.EntityUser, in.UserID)
		}
		return err
	}
	return nil
}

func (s *service) List(ctx context.Context) ([]catalog.UserList, error) {
	return s.repo.ListUserLists(ctx, catalog.UserListFilter{})
}

func (s *service) Page(ctx context.Context, req catalog.PageRequest) (catalog.Page[catalog.UserList], error) {
	return s.repo.PageUserLists(ctx, req)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (catalog.UserList, error) {
	return s.repo.GetUserList(ctx, id)
}

func (s *service) Search(ctx context.Context, f catalog.UserListFilter) ([]catalog.UserList, error) {
	return s.repo.ListUserLists(ctx, f)
}

func (s *service) Create(ctx context.Context, in Input) (catalog.UserList, error) {
	if err := s.validate(ctx, &in); err != nil {
		return catalog.UserList{}, err
	}
	return s.writer.CreateUserList(ctx, catalog.UserList{
		ID:          uuid.New(),
		UserID:      in.UserID,
		Name:        in.Name,
		Description: in.Description,
		Private:     in.Private,
		CreatedAt:   s.now().UTC(),
	})
}

// Put replaces name, description, privacy and owner. The creation time and
// the listed movies are kept.
func (s *service) Put(ctx context.Context, id uuid.UUID, in Input) (upsert.Result[catalog.UserList], error) {
	if err := s.validate(ctx, &in); err != nil {
		return upsert.Result[catalog.UserList]{}, err
	}
	var existing catalog.UserList
	return upsert.Apply(ctx,
		func(ctx context.Context) error {
			l, err := s.repo.GetUserList(ctx, id)
			existing = l
			return err
		},
		func(ctx context.Context) (catalog.UserList, error) {
			existing.Name = in.Name
			existing.Description = in.Description
			existing.Private = in.Private
			existing.UserID = in.UserID
			return s.writer.UpdateUserList(ctx, existing)
		},
		func(ctx context.Context) (catalog.UserList, error) {
			return s.writer.CreateUserList(ctx, catalog.UserList{
				ID:          id,
				UserID:      in.UserID,
				Name:        in.Name,
				Description: in.Description,
				Private:     in.Private,
				CreatedAt:   s.now().UTC(),
			})
		},
	)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.writer.DeleteUserList(ctx, id)
}

func (s *service) User(ctx context.Context, id uuid.UUID) (catalog.User, error) {
	l, err := s.repo.GetUserList(ctx, id)
	if err != nil {
		return catalog.User{}, err
	}
	return s.repo.GetUser(ctx, l.UserID)
}

func (s *service) Movies(ctx context.Context, id uuid.UUID) ([]catalog.Movie, error) {
	l, err := s.repo.GetUserList(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.repo.MoviesByIDs(ctx, l.MovieIDs)
}

func (s *service) AddMovie(ctx context.Context, id, movieID uuid.UUID) (catalog.Movie, error) {
	if _, err := s.repo.GetUserList(ctx, id); err != nil {
		return catalog.Movie{}, err
	}
	m, err := s.repo.GetMovie(ctx, movieID)
	if err != nil {
		if errs.IsNotFound(err) {
			return catalog.Movie{}, errs.Unresolved(catalog.EntityMovie, movieID)
		}
		return catalog.Movie{}, err
	}
	if err := s.writer.AddListMovie(ctx, id, movieID); err != nil {
		return catalog.Movie{}, err
	}
	return m, nil
}

func (s *service) RemoveMovie(ctx context.Context, id, movieID uuid.UUID) error {
	if _, err := s.repo.GetUserList(ctx, id); err != nil {
		return err
	}
	return s.writer.RemoveListMovie(ctx, id, movieID)
}
