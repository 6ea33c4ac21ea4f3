package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinoosan/cinerator/internal/catalog"
	"github.com/tinoosan/cinerator/internal/errs"
	"github.com/tinoosan/cinerator/internal/service/user"
	"github.com/tinoosan/cinerator/internal/storage/memory"
)

func setup(t *testing.T) (*memory.Store, user.Service) {
	t.Helper()
	store := memory.New()
	return store, user.New(store, store)
}

func TestCreate_DefaultsAndHash(t *testing.T) {
	_, svc := setup(t)
	u, err := svc.Create(context.Background(), user.Input{Username: " ada ", Email: "ada@example.com", Password: "difference-engine"})
	require.NoError(t, err)
	assert.Equal(t, "ada", u.Username)
	assert.Equal(t, catalog.DefaultUserRole, u.Role)
	assert.False(t, u.Enabled)
	assert.NotEqual(t, "difference-engine", u.PasswordHash)
	assert.False(t, u.CreatedAt.IsZero())
}

func TestCreate_UsernameTakenConflicts(t *testing.T) {
	_, svc := setup(t)
	ctx := context.Background()
	_, err := svc.Create(ctx, user.Input{Username: "ada", Email: "a@example.com", Password: "secret-one"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, user.Input{Username: "ADA", Email: "b@example.com", Password: "secret-two"})
	assert.ErrorIs(t, err, errs.ErrConflict)
}

func TestAuthenticate_RequiresEnabledAndPassword(t *testing.T) {
	_, svc := setup(t)
	ctx := context.Background()
	u, err := svc.Create(ctx, user.Input{Username: "ada", Email: "ada@example.com", Password: "difference-engine"})
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "ada", "difference-engine")
	assert.ErrorIs(t, err, errs.ErrUnauthenticated, "disabled accounts cannot log in")

	_, err = svc.Enable(ctx, u.ID)
	require.NoError(t, err)

	got, err := svc.Authenticate(ctx, "ADA", "difference-engine")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = svc.Authenticate(ctx, "ada", "analytical-engine")
	assert.ErrorIs(t, err, errs.ErrUnauthenticated)
	_, err = svc.Authenticate(ctx, "charles", "difference-engine")
	assert.ErrorIs(t, err, errs.ErrUnauthenticated)
}

func TestPut_KeepsServerOwnedFields(t *testing.T) {
	_, svc := setup(t)
	ctx := context.Background()
	u, err := svc.Create(ctx, user.Input{Username: "ada", Email: "ada@example.com", Password: "difference-engine"})
	require.NoError(t, err)
	u, err = svc.Enable(ctx, u.ID)
	require.NoError(t, err)

	res, err := svc.Put(ctx, u.ID, user.Input{Username: "ada", Email: "countess@example.com", Password: "analytical-engine", Bio: "Notes"})
	require.NoError(t, err)
	assert.False(t, res.Created())
	assert.True(t, res.Value.Enabled)
	assert.Equal(t, u.Role, res.Value.Role)
	assert.True(t, u.CreatedAt.Equal(res.Value.CreatedAt))
	assert.Equal(t, "countess@example.com", res.Value.Email)

	_, err = svc.Authenticate(ctx, "ada", "analytical-engine")
	assert.NoError(t, err, "password is re-hashed on update")

	res, err = svc.Put(ctx, uuid.New(), user.Input{Username: "babbage", Email: "cb@example.com", Password: "gears-and-cogs"})
	require.NoError(t, err)
	assert.True(t, res.Created())
	assert.False(t, res.Value.Enabled)
}

func TestWatchlistAndRatings(t *testing.T) {
	store, svc := setup(t)
	ctx := context.Background()
	g, err := store.CreateGenre(ctx, catalog.Genre{ID: uuid.New(), Name: "Drama"})
	require.NoError(t, err)
	m, err := store.CreateMovie(ctx, catalog.Movie{ID: uuid.New(), Title: "Mr. Nobody", ReleaseDate: catalog.NewDate(2009, time.September, 12), Runtime: "141 min", ImdbID: "tt0485947", Genres: []catalog.Genre{g}})
	require.NoError(t, err)
	u, err := svc.Create(ctx, user.Input{Username: "ada", Email: "ada@example.com", Password: "difference-engine"})
	require.NoError(t, err)

	_, err = svc.AddToWatchlist(ctx, u.ID, m.ID)
	require.NoError(t, err)
	_, err = svc.AddToWatchlist(ctx, u.ID, m.ID)
	assert.ErrorIs(t, err, errs.ErrConflict)
	_, err = svc.AddToWatchlist(ctx, u.ID, uuid.New())
	assert.True(t, errs.IsNotFound(err))

	_, err = store.CreateReview(ctx, catalog.Review{ID: uuid.New(), MovieID: m.ID, UserID: u.ID, Rating: 4, Liked: true, ReviewDate: catalog.DateOf(time.Now())})
	require.NoError(t, err)

	liked, err := svc.LikedMovies(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, liked, 1)
	rated, err := svc.RatedMovies(ctx, u.ID, 4)
	require.NoError(t, err)
	assert.Len(t, rated, 1)
	rated, err = svc.RatedMovies(ctx, u.ID, 2)
	require.NoError(t, err)
	assert.Empty(t, rated)
	_, err = svc.RatedMovies(ctx, u.ID, 7)
	assert.ErrorIs(t, err, errs.ErrInvalid)
}
