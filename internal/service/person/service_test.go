package person_test

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
	"github.com/tinoosan/cinerator/internal/service/person"
	"github.com/tinoosan/cinerator/internal/storage/memory"
)

func TestCreate_Rules(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	c, err := store.CreateCountry(ctx, catalog.Country{ID: uuid.New(), Name: "Belgium"})
	require.NoError(t, err)
	svc := person.New(store, store)

	in := person.Input{Name: "Jaco Van Dormael", BirthDate: catalog.NewDate(1957, time.February, 9), BirthCountryID: c.ID}
	p, err := svc.Create(ctx, in)
	require.NoError(t, err)
	require.NotNil(t, p.BirthCountry)
	assert.Equal(t, "Belgium", p.BirthCountry.Name)

	bad := in
	bad.BirthDate = catalog.DateOf(time.Now())
	_, err = svc.Create(ctx, bad)
	assert.ErrorIs(t, err, errs.ErrInvalid, "birth date must be strictly in the past")

	bad = in
	death := catalog.NewDate(1950, time.January, 1)
	bad.DeathDate = &death
	_, err = svc.Create(ctx, bad)
	assert.ErrorIs(t, err, errs.ErrInvalid, "death precedes birth")

	bad = in
	bad.BirthCountryID = uuid.New()
	_, err = svc.Create(ctx, bad)
	var nf *errs.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.True(t, nf.Relation)
}

func TestAge_StopsAtDeath(t *testing.T) {
	now := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	alive := catalog.Person{BirthDate: catalog.NewDate(1957, time.February, 9)}
	assert.Equal(t, 67, alive.Age(now))

	death := catalog.NewDate(2000, time.February, 8)
	dead := catalog.Person{BirthDate: catalog.NewDate(1957, time.February, 9), DeathDate: &death}
	assert.Equal(t, 42, dead.Age(now))
}

func TestMovies_ByRole(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	director, err := store.CreateRole(ctx, catalog.Role{ID: uuid.New(), Name: catalog.DirectorRole})
	require.NoError(t, err)
	writer, err := store.CreateRole(ctx, catalog.Role{ID: uuid.New(), Name: "Writer"})
	require.NoError(t, err)
	m, err := store.CreateMovie(ctx, catalog.Movie{ID: uuid.New(), Title: "Toto le héros", ReleaseDate: catalog.NewDate(1991, time.May, 1), Runtime: "91 min", ImdbID: "tt0103105"})
	require.NoError(t, err)
	p, err := store.CreatePerson(ctx, catalog.Person{ID: uuid.New(), Name: "Jaco Van Dormael", BirthDate: catalog.NewDate(1957, time.February, 9)})
	require.NoError(t, err)
	for _, r := range []catalog.Role{director, writer} {
		_, err := store.CreateCastInfo(ctx, catalog.CastInfo{ID: uuid.New(), MovieID: m.ID, PersonID: p.ID, RoleID: r.ID})
		require.NoError(t, err)
	}
	svc := person.New(store, store)

	all, err := svc.Movies(ctx, p.ID, "")
	require.NoError(t, err)
	assert.Len(t, all, 1, "a movie is listed once across roles")

	directed, err := svc.Movies(ctx, p.ID, "director")
	require.NoError(t, err)
	assert.Len(t, directed, 1)

	acted, err := svc.Movies(ctx, p.ID, "Actor")
	require.NoError(t, err)
	assert.Empty(t, acted)

	roles, err := svc.Roles(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, roles, 2)

	_, err = svc.Country(ctx, p.ID)
	assert.True(t, errs.IsNotFound(err), "no birth country recorded")
}
