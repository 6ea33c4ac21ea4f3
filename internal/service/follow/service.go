// Package follow implements the directed follower graph between users.
// Self-follows are rejected and each (user, follower) pair exists at most once.
package follow

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tinoosan/cinerator/internal/catalog"
	"github.com/tinoosan/cinerator/internal/errs"
)

type Repo interface {
	PageFollows(ctx context.Context, req catalog.PageRequest) (catalog.Page[catalog.Follow], error)
	ListFollows(ctx context.Context, f catalog.FollowFilter) ([]catalog.Follow, error)
	GetFollow(ctx context.Context, userID, followerID uuid.UUID) (catalog.Follow, error)
	GetUser(ctx context.Context, id uuid.UUID) (catalog.User, error)
	UsersByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.User, error)
}

type Writer interface {
	// CreateFollow returns errs.ErrConflict when the edge exists.
	CreateFollow(ctx context.Context, f catalog.Follow) (catalog.Follow, error)
	DeleteFollow(ctx context.Context, userID, followerID uuid.UUID) error
}

type Service interface {
	List(ctx context.Context, req catalog.PageRequest) (catalog.Page[catalog.Follow], error)
	Get(ctx context.Context, userID, followerID uuid.UUID) (catalog.Follow, error)
	// Follow makes followerID a follower of userID.
	Follow(ctx context.Context, userID, followerID uuid.UUID) (catalog.Follow, error)
	Unfollow(ctx context.Context, userID, followerID uuid.UUID) error
	Followers(ctx context.Context, userID uuid.UUID) ([]catalog.User, error)
	Following(ctx context.Context, followerID uuid.UUID) ([]catalog.User, error)
}

type service struct {
	repo   Repo
	writer Writer
	now    func() time.Time
}

func New(repo Repo, writer Writer) Service {
	return &service{repo: repo, writer: writer, now: time.Now}
}

func notFollowing(userID, followerID uuid.UUID) error {
	return fmt.Errorf("%w: User with id %s is currently not following user with id %s!", errs.ErrNotFound, followerID, userID)
}

func (s *service) List(ctx context.Context, req catalog.PageRequest) (catalog.Page[catalog.Follow], error) {
	return s.repo.PageFollows(ctx, req)
}

func (s *service) Get(ctx context.Context, userID, followerID uuid.UUID) (catalog.Follow, error) {
	f, err := s.repo.GetFollow(ctx, userID, followerID)
	if err != nil {
		if errs.IsNotFound(err) {
			return catalog.Follow{}, notFollowing(userID, followerID)
		}
		return catalog.Follow{}, err
	}
	return f, nil
}

func (s *service) Follow(ctx context.Context, userID, followerID uuid.UUID) (catalog.Follow, error) {
	if userID == followerID {
		return catalog.Follow{}, errs.Invalid("a user cannot follow themselves")
	}
	if _, err := s.repo.GetUser(ctx, followerID); err != nil {
		return catalog.Follow{}, err
	}
	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		if errs.IsNotFound(err) {
			return catalog.Follow{}, errs.Unresolved(catalog.EntityUser, userID)
		}
		return catalog.Follow{}, err
	}
	return s.writer.CreateFollow(ctx, catalog.Follow{UserID: userID, FollowerID: followerID, FollowedAt: s.now().UTC()})
}

func (s *service) Unfollow(ctx context.Context, userID, followerID uuid.UUID) error {
	if _, err := s.Get(ctx, userID, followerID); err != nil {
		return err
	}
	return s.writer.DeleteFollow(ctx, userID, followerID)
}

func (s *service) Followers(ctx context.Context, userID uuid.UUID) ([]catalog.User, error) {
	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	edges, err := s.repo.ListFollows(ctx, catalog.FollowFilter{UserID: &userID})
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(edges))
	for _, e := range edges {
		ids = append(ids, e.FollowerID)
	}
	return s.repo.UsersByIDs(ctx, ids)
}

func (s *service) Following(ctx context.Context, followerID uuid.UUID) ([]catalog.User, error) {
	if _, err := s.repo.GetUser(ctx, followerID); err != nil {
		return nil, err
	}
	edges, err := s.repo.ListFollows(ctx, catalog.FollowFilter{FollowerID: &followerID})
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(edges))
	for _, e := range edges {
		ids = append(ids, e.UserID)
	}
	return s.repo.UsersByIDs(ctx, ids)
}
