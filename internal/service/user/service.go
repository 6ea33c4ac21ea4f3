// Package user implements accounts: registration with a hashed password,
// profile updates, enabling, the watchlist and per-user views over reviews.
// Usernames are unique. New accounts start with role USER and disabled;
// login only succeeds for enabled accounts.
package user

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tinoosan/cinerator/internal/auth"
	"github.com/tinoosan/cinerator/internal/catalog"
	"github.com/tinoosan/cinerator/internal/errs"
	"github.com/tinoosan/cinerator/internal/service/upsert"
)

type Repo interface {
	ListUsers(ctx context.Context, f catalog.UserFilter) ([]catalog.User, error)
	PageUsers(ctx context.Context, req catalog.PageRequest) (catalog.Page[catalog.User], error)
	GetUser(ctx context.Context, id uuid.UUID) (catalog.User, error)
	GetMovie(ctx context.Context, id uuid.UUID) (catalog.Movie, error)
	MoviesByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Movie, error)
	Watchlist(ctx context.Context, userID uuid.UUID) ([]catalog.Movie, error)
	ListReviews(ctx context.Context, f catalog.ReviewFilter) ([]catalog.Review, error)
	ListUserLists(ctx context.Context, f catalog.UserListFilter) ([]catalog.UserList, error)
}

type Writer interface {
	// CreateUser and UpdateUser return errs.ErrConflict on a taken username.
	CreateUser(ctx context.Context, u catalog.User) (catalog.User, error)
	UpdateUser(ctx context.Context, u catalog.User) (catalog.User, error)
	// DeleteUser removes the user with their reviews, lists, follow edges and watchlist.
	DeleteUser(ctx context.Context, id uuid.UUID) error
	// AddToWatchlist returns errs.ErrConflict when the movie is already listed.
	AddToWatchlist(ctx context.Context, userID, movieID uuid.UUID) error
	// RemoveFromWatchlist returns errs.ErrNotFound when the movie is not listed.
	RemoveFromWatchlist(ctx context.Context, userID, movieID uuid.UUID) error
}

// Input is the client-supplied account state.
type Input struct {
	Username string
	Email    string
	Password string
	Name     string
	Bio      string
}

type Service interface {
	List(ctx context.Context) ([]catalog.User, error)
	Page(ctx context.Context, req catalog.PageRequest) (catalog.Page[catalog.User], error)
	Get(ctx context.Context, id uuid.UUID) (catalog.User, error)
	ByUsername(ctx context.Context, username string) ([]catalog.User, error)
	ByRole(ctx context.Context, role string) ([]catalog.User, error)
	Search(ctx context.Context, f catalog.UserFilter) ([]catalog.User, error)
	Create(ctx context.Context, in Input) (catalog.User, error)
	Put(ctx context.Context, id uuid.UUID, in Input) (upsert.Result[catalog.User], error)
	Delete(ctx context.Context, id uuid.UUID) error
	Enable(ctx context.Context, id uuid.UUID) (catalog.User, error)
	Authenticate(ctx context.Context, username, password string) (catalog.User, error)

	Watchlist(ctx context.Context, id uuid.UUID) ([]catalog.Movie, error)
	AddToWatchlist(ctx context.Context, id, movieID uuid.UUID) (catalog.Movie, error)
	RemoveFromWatchlist(ctx context.Context, id, movieID uuid.UUID) error
	Reviews(ctx context.Context, id uuid.UUID) ([]catalog.Review, error)
	LikedMovies(ctx context.Context, id uuid.UUID) ([]catalog.Movie, error)
	RatedMovies(ctx context.Context, id uuid.UUID, rating int) ([]catalog.Movie, error)
	Lists(ctx context.Context, id uuid.UUID) ([]catalog.UserList, error)
}

type service struct {
	repo   Repo
	writer Writer
	now    func() time.Time
	hash   func(string) (string, error)
}

func New(repo Repo, writer Writer) Service {
	return &service{repo: repo, writer: writer, now: time.Now, hash: auth.HashPassword}
}

func validate(in *Input) error {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	in.Bio = strings.TrimSpace(in.Bio)
	if in.Username == "" {
		return errs.Invalid("username is required")
	}
	if in.Email == "" {
		return errs.Invalid("email is required")
	}
	if in.Password == "" {
		return errs.Invalid("password is required")
	}
	return nil
}

func (s *service) List(ctx context.Context) ([]catalog.User, error) {
	return s.repo.ListUsers(ctx, catalog.UserFilter{})
}

func (s *service) Page(ctx context.Context, req catalog.PageRequest) (catalog.Page[catalog.User], error) {
	return s.repo.PageUsers(ctx, req)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (catalog.User, error) {
	return s.repo.GetUser(ctx, id)
}

func (s *service) ByUsername(ctx context.Context, username string) ([]catalog.User, error) {
	return s.repo.ListUsers(ctx, catalog.UserFilter{Username: strings.TrimSpace(username), UsernameExact: true})
}

func (s *service) ByRole(ctx context.Context, role string) ([]catalog.User, error) {
	return s.repo.ListUsers(ctx, catalog.UserFilter{Role: strings.TrimSpace(role)})
}

func (s *service) Search(ctx context.Context, f catalog.UserFilter) ([]catalog.User, error) {
	return s.repo.ListUsers(ctx, f)
}

func (s *service) Create(ctx context.Context, in Input) (catalog.User, error) {
	if err := validate(&in); err != nil {
		return catalog.User{}, err
	}
	hash, err := s.hash(in.Password)
	if err != nil {
		return catalog.User{}, err
	}
	return s.writer.CreateUser(ctx, catalog.User{
		ID:           uuid.New(),
		Username:     in.Username,
		Email:        in.Email,
		Name:         in.Name,
		Bio:          in.Bio,
		PasswordHash: hash,
		Role:         catalog.DefaultUserRole,
		CreatedAt:    s.now().UTC(),
	})
}

// Put replaces the profile fields and password. Role, enabled state and
// creation time are not client-controlled and survive an update.
func (s *service) Put(ctx context.Context, id uuid.UUID, in Input) (upsert.Result[catalog.User], error) {
	if err := validate(&in); err != nil {
		return upsert.Result[catalog.User]{}, err
	}
	hash, err := s.hash(in.Password)
	if err != nil {
		return upsert.Result[catalog.User]{}, err
	}
	var existing catalog.User
	return upsert.Apply(ctx,
		func(ctx context.Context) error {
			u, err := s.repo.GetUser(ctx, id)
			existing = u
			return err
		},
		func(ctx context.Context) (catalog.User, error) {
			existing.Username = in.Username
			existing.Email = in.Email
			existing.Name = in.Name
			existing.Bio = in.Bio
			existing.PasswordHash = hash
			return s.writer.UpdateUser(ctx, existing)
		},
		func(ctx context.Context) (catalog.User, error) {
			return s.writer.CreateUser(ctx, catalog.User{
				ID:           id,
				Username:     in.Username,
				Email:        in.Email,
				Name:         in.Name,
				Bio:          in.Bio,
				PasswordHash: hash,
				Role:         catalog.DefaultUserRole,
				CreatedAt:    s.now().UTC(),
			})
		},
	)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.writer.DeleteUser(ctx, id)
}

func (s *service) Enable(ctx context.Context, id uuid.UUID) (catalog.User, error) {
	u, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return catalog.User{}, err
	}
	if u.Enabled {
		return u, nil
	}
	u.Enabled = true
	return s.writer.UpdateUser(ctx, u)
}

// Authenticate returns errs.ErrUnauthenticated for an unknown username, a
// disabled account or a password mismatch alike.
func (s *service) Authenticate(ctx context.Context, username, password string) (catalog.User, error) {
	users, err := s.ByUsername(ctx, username)
	if err != nil {
		return catalog.User{}, err
	}
	for _, u := range users {
		if u.Enabled && auth.CheckPassword(u.PasswordHash, password) {
			return u, nil
		}
	}
	return catalog.User{}, errs.ErrUnauthenticated
}

func (s *service) Watchlist(ctx context.Context, id uuid.UUID) ([]catalog.Movie, error) {
	if _, err := s.repo.GetUser(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.Watchlist(ctx, id)
}

func (s *service) AddToWatchlist(ctx context.Context, id, movieID uuid.UUID) (catalog.Movie, error) {
	if _, err := s.repo.GetUser(ctx, id); err != nil {
		return catalog.Movie{}, err
	}
	m, err := s.repo.GetMovie(ctx, movieID)
	if err != nil {
		if errs.IsNotFound(err) {
			return catalog.Movie{}, errs.Unresolved(catalog.EntityMovie, movieID)
		}
		return catalog.Movie{}, err
	}
	if err := s.writer.AddToWatchlist(ctx, id, movieID); err != nil {
		return catalog.Movie{}, err
	}
	return m, nil
}

func (s *service) RemoveFromWatchlist(ctx context.Context, id, movieID uuid.UUID) error {
	if _, err := s.repo.GetUser(ctx, id); err != nil {
		return err
	}
	return s.writer.RemoveFromWatchlist(ctx, id, movieID)
}

func (s *service) Reviews(ctx context.Context, id uuid.UUID) ([]catalog.Review, error) {
	return s.reviews(ctx, catalog.ReviewFilter{UserID: &id})
}

func (s *service) LikedMovies(ctx context.Context, id uuid.UUID) ([]catalog.Movie, error) {
	liked := true
	return s.reviewedMovies(ctx, catalog.ReviewFilter{UserID: &id, Liked: &liked})
}

func (s *service) RatedMovies(ctx context.Context, id uuid.UUID, rating int) ([]catalog.Movie, error) {
	if rating < catalog.MinRating || rating > catalog.MaxRating {
		return nil, errs.Invalid("rating must be between %d and %d", catalog.MinRating, catalog.MaxRating)
	}
	return s.reviewedMovies(ctx, catalog.ReviewFilter{UserID: &id, Rating: &rating})
}

func (s *service) Lists(ctx context.Context, id uuid.UUID) ([]catalog.UserList, error) {
	if _, err := s.repo.GetUser(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.ListUserLists(ctx, catalog.UserListFilter{UserID: &id})
}

func (s *service) reviews(ctx context.Context, f catalog.ReviewFilter) ([]catalog.Review, error) {
	if _, err := s.repo.GetUser(ctx, *f.UserID); err != nil {
		return nil, err
	}
	return s.repo.ListReviews(ctx, f)
}

func (s *service) reviewedMovies(ctx context.Context, f catalog.ReviewFilter) ([]catalog.Movie, error) {
	rs, err := s.reviews(ctx, f)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(rs))
	seen := make(map[uuid.UUID]struct{}, len(rs))
	for _, r := range rs {
		if _, ok := seen[r.MovieID]; ok {
			continue
		}
		seen[r.MovieID] = struct{}{}
		ids = append(ids, r.MovieID)
	}
	return s.repo.MoviesByIDs(ctx, ids)
}
