// Package review implements movie reviews: a rating between 1 and 5 given by
// an existing user to an existing movie.
package review

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tinoosan/cinerator/internal/catalog"
	"github.com/tinoosan/cinerator/internal/errs"
	"github.com/tinoosan/cinerator/internal/service/upsert"
)

type Repo interface {
	ListReviews(ctx context.Context, f catalog.ReviewFilter) ([]catalog.Review, error)
	PageReviews(ctx context.Context, req catalog.PageRequest) (catalog.Page[catalog.Review], error)
	GetReview(ctx context.Context, id uuid.UUID) (catalog.Review, error)
	GetMovie(ctx context.Context, id uuid.UUID) (catalog.Movie, error)
	GetUser(ctx context.Context, id uuid.UUID) (catalog.User, error)
}

type Writer interface {
	CreateReview(ctx context.Context, r catalog.Review) (catalog.Review, error)
	UpdateReview(ctx context.Context, r catalog.Review) (catalog.Review, error)
	DeleteReview(ctx context.Context, id uuid.UUID) error
}

// Input is a full review as submitted by a client.
type Input struct {
	MovieID    uuid.UUID
	UserID     uuid.UUID
	ReviewDate catalog.Date
	Comment    string
	Rating     int
	Liked      bool
}

// Edit carries the fields a reviewer may change on an existing review.
type Edit struct {
	Comment string
	Rating  int
	Liked   bool
}

type Service interface {
	List(ctx context.Context) ([]catalog.Review, error)
	Page(ctx context.Context, req catalog.PageRequest) (catalog.Page[catalog.Review], error)
	Get(ctx context.Context, id uuid.UUID) (catalog.Review, error)
	Put(ctx context.Context, id uuid.UUID, in Input) (upsert.Result[catalog.Review], error)
	Delete(ctx context.Context, id uuid.UUID) error
	User(ctx context.Context, id uuid.UUID) (catalog.User, error)
	Movie(ctx context.Context, id uuid.UUID) (catalog.Movie, error)

	ForMovie(ctx context.Context, movieID uuid.UUID) ([]catalog.Review, error)
	GetForMovie(ctx context.Context, movieID, reviewID uuid.UUID) (catalog.Review, error)
	AddToMovie(ctx context.Context, movieID uuid.UUID, in Input) (catalog.Review, error)
	EditForMovie(ctx context.Context, movieID, reviewID uuid.UUID, e Edit) (catalog.Review, error)
	RemoveFromMovie(ctx context.Context, movieID, reviewID uuid.UUID) error
}

type service struct {
	repo   Repo
	writer Writer
	now    func() time.Time
}

func New(repo Repo, writer Writer) Service {
	return &service{repo: repo, writer: writer, now: time.Now}
}

func validRating(r int) error {
	if r < catalog.MinRating || r > catalog.MaxRating {
		return errs.Invalid("rating must be between %d and %d", catalog.MinRating, catalog.MaxRating)
	}
	return nil
}

func (s *service) validate(in *Input) error {
	in.Comment = strings.TrimSpace(in.Comment)
	if in.UserID == uuid.Nil {
		return errs.Invalid("userId is required")
	}
	if in.MovieID == uuid.Nil {
		return errs.Invalid("movieId is required")
	}
	if in.ReviewDate.IsZero() {
		return errs.Invalid("reviewDate is required")
	}
	if in.ReviewDate.After(s.now()) {
		return errs.Invalid("reviewDate must be today or in the past")
	}
	return validRating(in.Rating)
}

// build checks both owners exist. A missing movie addressed by the path is a
// plain not-found; a missing user from the body is an unresolved relation.
func (s *service) build(ctx context.Context, id uuid.UUID, in Input, movieFromPath bool) (catalog.Review, error) {
	m, err := s.repo.GetMovie(ctx, in.MovieID)
	if err != nil {
		if errs.IsNotFound(err) && !movieFromPath {
			return catalog.Review{}, errs.Unresolved(catalog.EntityMovie, in.MovieID)
		}
		return catalog.Review{}, err
	}
	u, err := s.repo.GetUser(ctx, in.UserID)
	if err != nil {
		if errs.IsNotFound(err) {
			return catalog.Review{}, errs.Unresolved(catalog.EntityUser, in.UserID)
		}
		return catalog.Review{}, err
	}
	return catalog.Review{
		ID:               id,
		MovieID:          m.ID,
		UserID:           u.ID,
		Comment:          in.Comment,
		Rating:           in.Rating,
		ReviewDate:       in.ReviewDate,
		Liked:            in.Liked,
		MovieTitle:       m.Title,
		MovieReleaseDate: m.ReleaseDate,
		Username:         u.Username,
	}, nil
}

func (s *service) List(ctx context.Context) ([]catalog.Review, error) {
	return s.repo.ListReviews(ctx, catalog.ReviewFilter{})
}

func (s *service) Page(ctx context.Context, req catalog.PageRequest) (catalog.Page[catalog.Review], error) {
	return s.repo.PageReviews(ctx, req)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (catalog.Review, error) {
	return s.repo.GetReview(ctx, id)
}

func (s *service) Put(ctx context.Context, id uuid.UUID, in Input) (upsert.Result[catalog.Review], error) {
	if err := s.validate(&in); err != nil {
		return upsert.Result[catalog.Review]{}, err
	}
	r, err := s.build(ctx, id, in, false)
	if err != nil {
		return upsert.Result[catalog.Review]{}, err
	}
	return upsert.Apply(ctx,
		func(ctx context.Context) error { _, err := s.repo.GetReview(ctx, id); return err },
		func(ctx context.Context) (catalog.Review, error) { return s.writer.UpdateReview(ctx, r) },
		func(ctx context.Context) (catalog.Review, error) { return s.writer.CreateReview(ctx, r) },
	)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.writer.DeleteReview(ctx, id)
}

func (s *service) User(ctx context.Context, id uuid.UUID) (catalog.User, error) {
	r, err := s.repo.GetReview(ctx, id)
	if err != nil {
		return catalog.User{}, err
	}
	return s.repo.GetUser(ctx, r.UserID)
}

func (s *service) Movie(ctx context.Context, id uuid.UUID) (catalog.Movie, error) {
	r, err := s.repo.GetReview(ctx, id)
	if err != nil {
		return catalog.Movie{}, err
	}
	return s.repo.GetMovie(ctx, r.MovieID)
}

func (s *service) ForMovie(ctx context.Context, movieID uuid.UUID) ([]catalog.Review, error) {
	if _, err := s.repo.GetMovie(ctx, movieID); err != nil {
		return nil, err
	}
	return s.repo.ListReviews(ctx, catalog.ReviewFilter{MovieID: &movieID})
}

func (s *service) GetForMovie(ctx context.Context, movieID, reviewID uuid.UUID) (catalog.Review, error) {
	r, err := s.repo.GetReview(ctx, reviewID)
	if err != nil {
		if errs.IsNotFound(err) {
			return catalog.Review{}, notOnMovie(reviewID, movieID)
		}
		return catalog.Review{}, err
	}
	if r.MovieID != movieID {
		return catalog.Review{}, notOnMovie(reviewID, movieID)
	}
	return r, nil
}

func notOnMovie(reviewID, movieID uuid.UUID) error {
	return &errs.NotFoundError{Entity: catalog.EntityReview, Key: fmt.Sprintf("%s for Movie %s", reviewID, movieID)}
}

func (s *service) AddToMovie(ctx context.Context, movieID uuid.UUID, in Input) (catalog.Review, error) {
	in.MovieID = movieID
	if err := s.validate(&in); err != nil {
		return catalog.Review{}, err
	}
	r, err := s.build(ctx, uuid.New(), in, true)
	if err != nil {
		return catalog.Review{}, err
	}
	return s.writer.CreateReview(ctx, r)
}

func (s *service) EditForMovie(ctx context.Context, movieID, reviewID uuid.UUID, e Edit) (catalog.Review, error) {
	if err := validRating(e.Rating); err != nil {
		return catalog.Review{}, err
	}
	r, err := s.GetForMovie(ctx, movieID, reviewID)
	if err != nil {
		return catalog.Review{}, err
	}
	r.Comment = strings.TrimSpace(e.Comment)
	r.Rating = e.Rating
	r.Liked = e.Liked
	return s.writer.UpdateReview(ctx, r)
}

func (s *service) RemoveFromMovie(ctx context.Context, movieID, reviewID uuid.UUID) error {
	if _, err := s.GetForMovie(ctx, movieID, reviewID); err != nil {
		return err
	}
	return s.writer.DeleteReview(ctx, reviewID)
}
