package userlist_test

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
	"github.com/tinoosan/cinerator/internal/service/userlist"
	"github.com/tinoosan/cinerator/internal/storage/memory"
)

func setup(t *testing.T) (userlist.Service, catalog.User, catalog.Movie) {
	t.Helper()
	ctx := context.Background()
	store := memory.New()
	u, err := store.CreateUser(ctx, catalog.User{ID: uuid.New(), Username: "ada", Email: "ada@example.com", Role: catalog.DefaultUserRole})
	require.NoError(t, err)
	m, err := store.CreateMovie(ctx, catalog.Movie{ID: uuid.New(), Title: "Mr. Nobody", ReleaseDate: catalog.NewDate(2009, time.September, 12), Runtime: "141 min", ImdbID: "tt0485947"})
	require.NoError(t, err)
	return userlist.New(store, store), u, m
}

func TestCreate_OwnerMustExist(t *testing.T) {
	svc, u, _ := setup(t)
	ctx := context.Background()

	l, err := svc.Create(ctx, userlist.Input{Name: " Mind benders ", UserID: u.ID, Private: true})
	require.NoError(t, err)
	assert.Equal(t, "Mind benders", l.Name)
	assert.True(t, l.Private)

	_, err = svc.Create(ctx, userlist.Input{Name: "Orphans", UserID: uuid.New()})
	var nf *errs.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.True(t, nf.Relation)
	assert.Equal(t, catalog.EntityUser, nf.Entity)

	_, err = svc.Create(ctx, userlist.Input{Name: " ", UserID: u.ID})
	assert.ErrorIs(t, err, errs.ErrInvalid)
}

func TestMovies_AddRemoveAndPutKeepsThem(t *testing.T) {
	svc, u, m := setup(t)
	ctx := context.Background()
	l, err := svc.Create(ctx, userlist.Input{Name: "Mind benders", UserID: u.ID})
	require.NoError(t, err)

	_, err = svc.AddMovie(ctx, l.ID, m.ID)
	require.NoError(t, err)
	_, err = svc.AddMovie(ctx, l.ID, m.ID)
	assert.ErrorIs(t, err, errs.ErrConflict)

	res, err := svc.Put(ctx, l.ID, userlist.Input{Name: "Puzzle films", UserID: u.ID})
	require.NoError(t, err)
	assert.False(t, res.Created())
	assert.True(t, l.CreatedAt.Equal(res.Value.CreatedAt))

	movies, err := svc.Movies(ctx, l.ID)
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, m.ID, movies[0].ID)

	require.NoError(t, svc.RemoveMovie(ctx, l.ID, m.ID))
	assert.True(t, errs.IsNotFound(svc.RemoveMovie(ctx, l.ID, m.ID)))

	owner, err := svc.User(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada", owner.Username)
}
