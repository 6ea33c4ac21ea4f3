package castinfo_test

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
	"github.com/tinoosan/cinerator/internal/service/castinfo"
	"github.com/tinoosan/cinerator/internal/storage/memory"
)

func setup(t *testing.T) (castinfo.Service, castinfo.Input) {
	t.Helper()
	ctx := context.Background()
	store := memory.New()
	m, err := store.CreateMovie(ctx, catalog.Movie{ID: uuid.New(), Title: "Mr. Nobody", ReleaseDate: catalog.NewDate(2009, time.September, 12), Runtime: "141 min", ImdbID: "tt0485947"})
	require.NoError(t, err)
	p, err := store.CreatePerson(ctx, catalog.Person{ID: uuid.New(), Name: "Jared Leto", BirthDate: catalog.NewDate(1971, time.December, 26)})
	require.NoError(t, err)
	r, err := store.CreateRole(ctx, catalog.Role{ID: uuid.New(), Name: "Actor"})
	require.NoError(t, err)
	return castinfo.New(store, store), castinfo.Input{MovieID: m.ID, PersonID: p.ID, RoleID: r.ID, CharacterName: "Nemo Nobody"}
}

func TestCreate_Hydrates(t *testing.T) {
	svc, in := setup(t)
	c, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "Mr. Nobody", c.Movie.Title)
	assert.Equal(t, "Jared Leto", c.Person.Name)
	assert.Equal(t, "Actor", c.Role.Name)
}

func TestCreate_DuplicateCreditConflicts(t *testing.T) {
	svc, in := setup(t)
	ctx := context.Background()
	_, err := svc.Create(ctx, in)
	require.NoError(t, err)

	dup := in
	dup.CharacterName = "nemo nobody "
	_, err = svc.Create(ctx, dup)
	assert.ErrorIs(t, err, errs.ErrConflict)

	other := in
	other.CharacterName = "Old Nemo"
	_, err = svc.Create(ctx, other)
	assert.NoError(t, err, "a different character is a different credit")
}

func TestCreate_UnresolvedRelations(t *testing.T) {
	svc, in := setup(t)
	ctx := context.Background()

	bad := in
	bad.RoleID = uuid.New()
	_, err := svc.Create(ctx, bad)
	var nf *errs.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.True(t, nf.Relation)
	assert.Equal(t, catalog.EntityRole, nf.Entity)

	bad = in
	bad.PersonID = uuid.Nil
	_, err = svc.Create(ctx, bad)
	assert.ErrorIs(t, err, errs.ErrInvalid)
}
