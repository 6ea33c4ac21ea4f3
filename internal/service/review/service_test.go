package review_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinoosan/cinerator/internal/catalog"
	"github.com/tinoosan/cinerator/internal/errs"
	"github.com/tinoosan/cinerator/internal/service/review"
	"github.com/tinoosan/cinerator/internal/storage/memory"
)

type fixture struct {
	svc   review.Service
	movie catalog.Movie
	user  catalog.User
}

func setup(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.New()
	m, err := store.CreateMovie(ctx, catalog.Movie{ID: uuid.New(), Title: "Mr. Nobody", ReleaseDate: catalog.NewDate(2009, time.September, 12), Runtime: "141 min", ImdbID: "tt0485947"})
	require.NoError(t, err)
	u, err := store.CreateUser(ctx, catalog.User{ID: uuid.New(), Username: "ada", Email: "ada@example.com", Role: catalog.DefaultUserRole})
	require.NoError(t, err)
	return fixture{svc: review.New(store, store), movie: m, user: u}
}

func (f fixture) input() review.Input {
	return review.Input{UserID: f.user.ID, Rating: 5, Comment: " Haunting ", Liked: true, ReviewDate: catalog.DateOf(time.Now())}
}

func TestAddToMovie_HydratesAndTrims(t *testing.T) {
	f := setup(t)
	r, err := f.svc.AddToMovie(context.Background(), f.movie.ID, f.input())
	require.NoError(t, err)
	assert.Equal(t, "Haunting", r.Comment)
	assert.Equal(t, f.movie.ID, r.MovieID)
	assert.Equal(t, "Mr. Nobody", r.MovieTitle)
	assert.Equal(t, "ada", r.Username)
}

func TestAddToMovie_Rules(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	in := f.input()
	in.Rating = 0
	_, err := f.svc.AddToMovie(ctx, f.movie.ID, in)
	assert.ErrorIs(t, err, errs.ErrInvalid)

	in = f.input()
	in.ReviewDate = catalog.DateOf(time.Now().AddDate(0, 0, 3))
	_, err = f.svc.AddToMovie(ctx, f.movie.ID, in)
	assert.ErrorIs(t, err, errs.ErrInvalid)

	in = f.input()
	in.UserID = uuid.New()
	_, err = f.svc.AddToMovie(ctx, f.movie.ID, in)
	var nf *errs.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.True(t, nf.Relation)
	assert.Equal(t, catalog.EntityUser, nf.Entity)

	_, err = f.svc.AddToMovie(ctx, uuid.New(), f.input())
	require.True(t, errors.As(err, &nf))
	assert.False(t, nf.Relation, "a missing path movie is a plain miss")
}

func TestMovieScopedReviews(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	r, err := f.svc.AddToMovie(ctx, f.movie.ID, f.input())
	require.NoError(t, err)

	_, err = f.svc.GetForMovie(ctx, uuid.New(), r.ID)
	assert.True(t, errs.IsNotFound(err), "review does not belong to that movie")

	edited, err := f.svc.EditForMovie(ctx, f.movie.ID, r.ID, review.Edit{Comment: "Still haunting", Rating: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, edited.Rating)
	assert.False(t, edited.Liked)
	assert.Equal(t, r.ReviewDate, edited.ReviewDate)

	_, err = f.svc.EditForMovie(ctx, f.movie.ID, r.ID, review.Edit{Rating: 6})
	assert.ErrorIs(t, err, errs.ErrInvalid)

	require.NoError(t, f.svc.RemoveFromMovie(ctx, f.movie.ID, r.ID))
	rs, err := f.svc.ForMovie(ctx, f.movie.ID)
	require.NoError(t, err)
	assert.Empty(t, rs)
}

func TestPut_UpsertsUnderPathID(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	id := uuid.New()
	in := f.input()
	in.MovieID = f.movie.ID

	res, err := f.svc.Put(ctx, id, in)
	require.NoError(t, err)
	assert.True(t, res.Created())
	assert.Equal(t, id, res.Value.ID)

	in.Rating = 2
	res, err = f.svc.Put(ctx, id, in)
	require.NoError(t, err)
	assert.False(t, res.Created())
	assert.Equal(t, 2, res.Value.Rating)

	u, err := f.svc.User(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, f.user.ID, u.ID)
}
