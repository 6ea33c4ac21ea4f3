package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinoosan/cinerator/internal/catalog"
	"github.com/tinoosan/cinerator/internal/devseed"
	"github.com/tinoosan/cinerator/internal/errs"
)

type fixture struct {
	store    *Store
	genre    catalog.Genre
	country  catalog.Country
	director catalog.Role
	movie    catalog.Movie
	person   catalog.Person
	user     catalog.User
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	s := New()
	g, err := s.CreateGenre(ctx, catalog.Genre{ID: uuid.New(), Name: "Drama"})
	require.NoError(t, err)
	c, err := s.CreateCountry(ctx, catalog.Country{ID: uuid.New(), Name: "Belgium"})
	require.NoError(t, err)
	r, err := s.CreateRole(ctx, catalog.Role{ID: uuid.New(), Name: catalog.DirectorRole})
	require.NoError(t, err)
	m, err := s.CreateMovie(ctx, catalog.Movie{
		ID: uuid.New(), Title: "Mr. Nobody", ReleaseDate: catalog.NewDate(2009, time.September, 12),
		Runtime: "141 min", ImdbID: "tt0485947", Genres: []catalog.Genre{g}, Countries: []catalog.Country{c},
	})
	require.NoError(t, err)
	p, err := s.CreatePerson(ctx, catalog.Person{
		ID: uuid.New(), Name: "Jaco Van Dormael", BirthDate: catalog.NewDate(1957, time.February, 9), BirthCountry: &c,
	})
	require.NoError(t, err)
	_, err = s.CreateCastInfo(ctx, catalog.CastInfo{ID: uuid.New(), MovieID: m.ID, PersonID: p.ID, RoleID: r.ID})
	require.NoError(t, err)
	u, err := s.CreateUser(ctx, catalog.User{ID: uuid.New(), Username: "nemo", Email: "nemo@example.com", Role: catalog.DefaultUserRole})
	require.NoError(t, err)
	return fixture{store: s, genre: g, country: c, director: r, movie: m, person: p, user: u}
}

func TestGetMovie_HydratesRelations(t *testing.T) {
	f := newFixture(t)
	m, err := f.store.GetMovie(context.Background(), f.movie.ID)
	require.NoError(t, err)
	require.Len(t, m.Genres, 1)
	assert.Equal(t, "Drama", m.Genres[0].Name)
	require.Len(t, m.Countries, 1)
	assert.Equal(t, "Belgium", m.Countries[0].Name)
	require.Len(t, m.Directors, 1)
	assert.Equal(t, f.person.ID, m.Directors[0].ID)
}

func TestCastInfo_EmbedsHydratedMovie(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cs, err := f.store.ListCastInfos(ctx, catalog.CastInfoFilter{MovieID: &f.movie.ID})
	require.NoError(t, err)
	require.Len(t, cs, 1)

	m := cs[0].Movie
	assert.Equal(t, []uuid.UUID{f.genre.ID}, m.GenreIDs())
	assert.Equal(t, []uuid.UUID{f.country.ID}, m.CountryIDs())
	require.Len(t, m.Directors, 1)
	assert.Equal(t, f.person.ID, m.Directors[0].ID)

	got, err := f.store.GetCastInfo(ctx, cs[0].ID)
	require.NoError(t, err)
	assert.Equal(t, m, got.Movie)
}

func TestListMovies_DirectorsPerMovie(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	other, err := f.store.CreateMovie(ctx, catalog.Movie{
		ID: uuid.New(), Title: "Toto le héros", ReleaseDate: catalog.NewDate(1991, time.May, 1),
		Runtime: "91 min", ImdbID: "tt0103105", Genres: []catalog.Genre{f.genre},
	})
	require.NoError(t, err)
	second, err := f.store.CreatePerson(ctx, catalog.Person{ID: uuid.New(), Name: "Co Director", BirthDate: catalog.NewDate(1960, time.March, 3)})
	require.NoError(t, err)
	for _, pid := range []uuid.UUID{f.person.ID, second.ID} {
		_, err := f.store.CreateCastInfo(ctx, catalog.CastInfo{ID: uuid.New(), MovieID: other.ID, PersonID: pid, RoleID: f.director.ID})
		require.NoError(t, err)
	}

	ms, err := f.store.ListMovies(ctx, catalog.MovieFilter{})
	require.NoError(t, err)
	require.Len(t, ms, 2)
	byID := map[uuid.UUID]catalog.Movie{ms[0].ID: ms[0], ms[1].ID: ms[1]}
	assert.Len(t, byID[f.movie.ID].Directors, 1)
	assert.Len(t, byID[other.ID].Directors, 2)

	// Directors of one movie are independent of another's slice.
	byID[other.ID].Directors[0].Name = "changed"
	again, err := f.store.GetMovie(ctx, other.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "changed", again.Directors[0].Name)
}

func TestDeleteGenre_DetachesFromMovies(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.DeleteGenre(ctx, f.genre.ID))

	m, err := f.store.GetMovie(ctx, f.movie.ID)
	require.NoError(t, err)
	assert.Empty(t, m.Genres)
	_, err = f.store.GetGenre(ctx, f.genre.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestDeleteCountry_ClearsPersonBirthCountry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.DeleteCountry(ctx, f.country.ID))

	p, err := f.store.GetPerson(ctx, f.person.ID)
	require.NoError(t, err)
	assert.Nil(t, p.BirthCountry)
	m, err := f.store.GetMovie(ctx, f.movie.ID)
	require.NoError(t, err)
	assert.Empty(t, m.Countries)
}

func TestDeleteRole_RemovesCastInfos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.DeleteRole(ctx, f.director.ID))

	cs, err := f.store.ListCastInfos(ctx, catalog.CastInfoFilter{})
	require.NoError(t, err)
	assert.Empty(t, cs)
}

func TestDeleteMovie_Cascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := f.store
	_, err := s.CreateReview(ctx, catalog.Review{ID: uuid.New(), MovieID: f.movie.ID, UserID: f.user.ID, Rating: 4})
	require.NoError(t, err)
	require.NoError(t, s.AddToWatchlist(ctx, f.user.ID, f.movie.ID))
	l, err := s.CreateUserList(ctx, catalog.UserList{ID: uuid.New(), UserID: f.user.ID, Name: "Mind benders"})
	require.NoError(t, err)
	require.NoError(t, s.AddListMovie(ctx, l.ID, f.movie.ID))

	require.NoError(t, s.DeleteMovie(ctx, f.movie.ID))

	rs, err := s.ListReviews(ctx, catalog.ReviewFilter{})
	require.NoError(t, err)
	assert.Empty(t, rs)
	cs, err := s.ListCastInfos(ctx, catalog.CastInfoFilter{})
	require.NoError(t, err)
	assert.Empty(t, cs)
	wl, err := s.Watchlist(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Empty(t, wl)
	got, err := s.GetUserList(ctx, l.ID)
	require.NoError(t, err)
	assert.Empty(t, got.MovieIDs)
}

func TestDeleteUser_Cascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := f.store
	other, err := s.CreateUser(ctx, catalog.User{ID: uuid.New(), Username: "anna"})
	require.NoError(t, err)
	_, err = s.CreateFollow(ctx, catalog.Follow{UserID: other.ID, FollowerID: f.user.ID, FollowedAt: time.Now()})
	require.NoError(t, err)
	_, err = s.CreateReview(ctx, catalog.Review{ID: uuid.New(), MovieID: f.movie.ID, UserID: f.user.ID, Rating: 5})
	require.NoError(t, err)

	require.NoError(t, s.DeleteUser(ctx, f.user.ID))

	edges, err := s.ListFollows(ctx, catalog.FollowFilter{})
	require.NoError(t, err)
	assert.Empty(t, edges)
	rs, err := s.ListReviews(ctx, catalog.ReviewFilter{})
	require.NoError(t, err)
	assert.Empty(t, rs)
}

func TestUniqueness(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := f.store

	_, err := s.CreateGenre(ctx, catalog.Genre{ID: uuid.New(), Name: "drama"})
	assert.ErrorIs(t, err, errs.ErrConflict)

	_, err = s.CreateUser(ctx, catalog.User{ID: uuid.New(), Username: "NEMO"})
	assert.ErrorIs(t, err, errs.ErrConflict)

	_, err = s.CreateCastInfo(ctx, catalog.CastInfo{ID: uuid.New(), MovieID: f.movie.ID, PersonID: f.person.ID, RoleID: f.director.ID, CharacterName: "  "})
	assert.ErrorIs(t, err, errs.ErrConflict)

	require.NoError(t, s.AddToWatchlist(ctx, f.user.ID, f.movie.ID))
	assert.ErrorIs(t, s.AddToWatchlist(ctx, f.user.ID, f.movie.ID), errs.ErrConflict)
}

func TestActorLinks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := f.store
	a, err := s.CreateActor(ctx, catalog.Actor{ID: uuid.New(), Name: "Jared Leto"})
	require.NoError(t, err)

	require.NoError(t, s.LinkActor(ctx, f.movie.ID, a.ID))
	assert.ErrorIs(t, s.LinkActor(ctx, f.movie.ID, a.ID), errs.ErrConflict)

	ms, err := s.ActorMovies(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, ms, 1)
	assert.Equal(t, f.movie.ID, ms[0].ID)

	require.NoError(t, s.DeleteActor(ctx, a.ID))
	as, err := s.MovieActors(ctx, f.movie.ID)
	require.NoError(t, err)
	assert.Empty(t, as)
	assert.ErrorIs(t, s.UnlinkActor(ctx, f.movie.ID, a.ID), errs.ErrNotFound)
}

func TestPageGenres_SortAndUnknownField(t *testing.T) {
	s := New()
	ctx := context.Background()
	for _, n := range []string{"Western", "Action", "Musical"} {
		_, err := s.CreateGenre(ctx, catalog.Genre{ID: uuid.New(), Name: n})
		require.NoError(t, err)
	}

	page, err := s.ListGenres(ctx, catalog.PageRequest{Page: 0, Size: 2, SortField: "name", Direction: catalog.SortDesc})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Western", page.Items[0].Name)
	assert.Equal(t, "Musical", page.Items[1].Name)
	assert.Equal(t, 3, page.TotalElements)
	assert.Equal(t, 2, page.TotalPages())

	_, err = s.ListGenres(ctx, catalog.PageRequest{Size: 2, SortField: "colour"})
	assert.ErrorIs(t, err, errs.ErrInvalid)
}

func TestDevSeed(t *testing.T) {
	s := New()
	res, err := devseed.Run(context.Background(), s, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	m, err := s.GetMovie(context.Background(), res.MovieID)
	require.NoError(t, err)
	assert.Equal(t, "Interstellar", m.Title)
	require.Len(t, m.Directors, 1)
	assert.Equal(t, res.DirectorID, m.Directors[0].ID)

	u, err := s.GetUser(context.Background(), res.UserID)
	require.NoError(t, err)
	assert.True(t, u.Enabled)
}
