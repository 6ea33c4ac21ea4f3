package actor_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinoosan/cinerator/internal/catalog"
	"github.com/tinoosan/cinerator/internal/errs"
	"github.com/tinoosan/cinerator/internal/service/actor"
	"github.com/tinoosan/cinerator/internal/storage/memory"
)

func TestCreate_FixesAgeAtWrite(t *testing.T) {
	store := memory.New()
	svc := actor.New(store, store)
	ctx := context.Background()
	birth := catalog.DateOf(time.Now().AddDate(-40, 0, -1))

	a, err := svc.Create(ctx, actor.Input{Name: " Jared Leto ", BirthDate: birth, BirthCountry: "USA"})
	require.NoError(t, err)
	assert.Equal(t, "Jared Leto", a.Name)
	assert.Equal(t, 40, a.Age)

	got, err := svc.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 40, got.Age)

	_, err = svc.Create(ctx, actor.Input{Name: "Nobody", BirthDate: catalog.DateOf(time.Now().AddDate(0, 1, 0))})
	assert.ErrorIs(t, err, errs.ErrInvalid)
}

func TestLinkAndUnlink(t *testing.T) {
	store := memory.New()
	svc := actor.New(store, store)
	ctx := context.Background()
	m, err := store.CreateMovie(ctx, catalog.Movie{ID: uuid.New(), Title: "Mr. Nobody", ReleaseDate: catalog.NewDate(2009, time.September, 12), Runtime: "141 min", ImdbID: "tt0485947"})
	require.NoError(t, err)
	a, err := svc.Create(ctx, actor.Input{Name: "Jared Leto", BirthDate: catalog.NewDate(1971, time.December, 26)})
	require.NoError(t, err)

	linked, err := svc.Link(ctx, m.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, linked.ID)
	_, err = svc.Link(ctx, m.ID, a.ID)
	assert.ErrorIs(t, err, errs.ErrConflict)
	_, err = svc.Link(ctx, m.ID, uuid.New())
	assert.True(t, errs.IsNotFound(err))

	movies, err := svc.Movies(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, movies, 1)
	_, err = svc.Movie(ctx, a.ID, m.ID)
	assert.NoError(t, err)

	require.NoError(t, svc.Unlink(ctx, m.ID, a.ID))
	_, err = svc.InMovie(ctx, m.ID, a.ID)
	assert.True(t, errs.IsNotFound(err))
	assert.True(t, errs.IsNotFound(svc.Unlink(ctx, m.ID, a.ID)))
}
