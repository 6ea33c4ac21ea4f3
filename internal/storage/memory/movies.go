package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/tinoosan/cinerator/internal/catalog"
	"github.com/tinoosan/cinerator/internal/errs"
)

var movieOrder = comparators[catalog.Movie]{
	"id":          func(a, b catalog.Movie) int { return cmpID(a.ID, b.ID) },
	"title":       func(a, b catalog.Movie) int { return cmpFold(a.Title, b.Title) },
	"releaseDate": func(a, b catalog.Movie) int { return cmpDate(a.ReleaseDate, b.ReleaseDate) },
	"runtime":     func(a, b catalog.Movie) int { return cmpFold(a.Runtime, b.Runtime) },
	"imdbId":      func(a, b catalog.Movie) int { return cmpFold(a.ImdbID, b.ImdbID) },
}

// directorIndex maps a movie id to its directors in cast-entry id order.
type directorIndex map[uuid.UUID][]catalog.Person

// directorsLocked builds the director index over every cast entry once.
func (s *Store) directorsLocked() directorIndex {
	credits := make([]catalog.CastInfo, 0, len(s.castInfos))
	for _, c := range s.castInfos {
		if r, ok := s.roles[c.RoleID]; ok && strings.EqualFold(r.Name, catalog.DirectorRole) {
			credits = append(credits, c)
		}
	}
	slices.SortFunc(credits, func(a, b catalog.CastInfo) int { return cmpID(a.ID, b.ID) })
	out := directorIndex{}
	seen := map[[2]uuid.UUID]bool{}
	for _, c := range credits {
		key := [2]uuid.UUID{c.MovieID, c.PersonID}
		if seen[key] {
			continue
		}
		if p, ok := s.persons[c.PersonID]; ok {
			seen[key] = true
			out[c.MovieID] = append(out[c.MovieID], s.hydratePersonLocked(p))
		}
	}
	return out
}

// hydrateMovieLocked resolves genre, country and director values for row.
// Ids whose target no longer exists are skipped.
func (s *Store) hydrateMovieLocked(row movieRow, dirs directorIndex) catalog.Movie {
	m := row.Movie
	m.Genres = make([]catalog.Genre, 0, len(row.genreIDs))
	for _, id := range row.genreIDs {
		if g, ok := s.genres[id]; ok {
			m.Genres = append(m.Genres, g)
		}
	}
	m.Countries = make([]catalog.Country, 0, len(row.countryIDs))
	for _, id := range row.countryIDs {
		if c, ok := s.countries[id]; ok {
			m.Countries = append(m.Countries, c)
		}
	}
	m.Directors = slices.Clone(dirs[m.ID])
	return m
}

func (s *Store) moviesLocked() []catalog.Movie {
	dirs := s.directorsLocked()
	out := make([]catalog.Movie, 0, len(s.movies))
	for _, row := range s.movies {
		out = append(out, s.hydrateMovieLocked(row, dirs))
	}
	return out
}

// ListMovies returns the movies matching f ordered by title.
func (s *Store) ListMovies(_ context.Context, f catalog.MovieFilter) ([]catalog.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []catalog.Movie{}
	for _, m := range s.moviesLocked() {
		if f.Match(m) {
			out = append(out, m)
		}
	}
	slices.SortFunc(out, byTitle)
	return out, nil
}

func byTitle(a, b catalog.Movie) int {
	if c := cmpFold(a.Title, b.Title); c != 0 {
		return c
	}
	return cmpID(a.ID, b.ID)
}

func (s *Store) PageMovies(_ context.Context, req catalog.PageRequest) (catalog.Page[catalog.Movie], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortPage(s.moviesLocked(), req, movieOrder, func(m catalog.Movie) uuid.UUID { return m.ID })
}

func (s *Store) GetMovie(_ context.Context, id uuid.UUID) (catalog.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row, ok := s.movies[id]
	if !ok {
		return catalog.Movie{}, errs.Missing(catalog.EntityMovie, id)
	}
	return s.hydrateMovieLocked(row, s.directorsLocked()), nil
}

// MoviesByIDs returns the movies in the order of ids, skipping unknown ones.
func (s *Store) MoviesByIDs(_ context.Context, ids []uuid.UUID) ([]catalog.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.moviesByIDsLocked(ids), nil
}

func (s *Store) moviesByIDsLocked(ids []uuid.UUID) []catalog.Movie {
	dirs := s.directorsLocked()
	out := make([]catalog.Movie, 0, len(ids))
	for _, id := range ids {
		if row, ok := s.movies[id]; ok {
			out = append(out, s.hydrateMovieLocked(row, dirs))
		}
	}
	return out
}

func (s *Store) CreateMovie(_ context.Context, m catalog.Movie) (catalog.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.movies[m.ID]; ok {
		return catalog.Movie{}, errs.Conflict("Movie with id %s already exists", m.ID)
	}
	if err := s.imdbFreeLocked(m); err != nil {
		return catalog.Movie{}, err
	}
	s.movies[m.ID] = toMovieRow(m)
	return s.hydrateMovieLocked(s.movies[m.ID], s.directorsLocked()), nil
}

func (s *Store) UpdateMovie(_ context.Context, m catalog.Movie) (catalog.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.movies[m.ID]; !ok {
		return catalog.Movie{}, errs.Missing(catalog.EntityMovie, m.ID)
	}
	if err := s.imdbFreeLocked(m); err != nil {
		return catalog.Movie{}, err
	}
	s.movies[m.ID] = toMovieRow(m)
	return s.hydrateMovieLocked(s.movies[m.ID], s.directorsLocked()), nil
}

// DeleteMovie removes the movie with its reviews and cast entries and
// detaches it from actors, watchlists and user lists.
func (s *Store) DeleteMovie(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.movies[id]; !ok {
		return errs.Missing(catalog.EntityMovie, id)
	}
	delete(s.movies, id)
	delete(s.movieActors, id)
	for rid, r := range s.reviews {
		if r.MovieID == id {
			delete(s.reviews, rid)
		}
	}
	for cid, c := range s.castInfos {
		if c.MovieID == id {
			delete(s.castInfos, cid)
		}
	}
	for uid, ids := range s.watchlists {
		s.watchlists[uid] = without(ids, id)
	}
	for lid, l := range s.lists {
		l.MovieIDs = without(l.MovieIDs, id)
		s.lists[lid] = l
	}
	return nil
}

func (s *Store) imdbFreeLocked(m catalog.Movie) error {
	if m.ImdbID == "" {
		return nil
	}
	for _, other := range s.movies {
		if other.ID != m.ID && strings.EqualFold(other.ImdbID, m.ImdbID) {
			return errs.Conflict("Movie with imdbId %s already exists", m.ImdbID)
		}
	}
	return nil
}

func toMovieRow(m catalog.Movie) movieRow {
	row := movieRow{Movie: m, genreIDs: m.GenreIDs(), countryIDs: m.CountryIDs()}
	row.Genres, row.Countries, row.Directors = nil, nil, nil
	return row
}

// --- Movie/actor links ---

// ActorMovies returns the movies an actor is linked to, ordered by title.
func (s *Store) ActorMovies(_ context.Context, actorID uuid.UUID) ([]catalog.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	dirs := s.directorsLocked()
	out := []catalog.Movie{}
	for mid, set := range s.movieActors {
		if _, ok := set[actorID]; !ok {
			continue
		}
		if row, ok := s.movies[mid]; ok {
			out = append(out, s.hydrateMovieLocked(row, dirs))
		}
	}
	slices.SortFunc(out, byTitle)
	return out, nil
}

// MovieActors returns the actors linked to a movie, ordered by name.
func (s *Store) MovieActors(_ context.Context, movieID uuid.UUID) ([]catalog.Actor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []catalog.Actor{}
	for aid := range s.movieActors[movieID] {
		if a, ok := s.actors[aid]; ok {
			out = append(out, a)
		}
	}
	slices.SortFunc(out, byActorName)
	return out, nil
}

func (s *Store) LinkActor(_ context.Context, movieID, actorID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.movies[movieID]; !ok {
		return errs.Missing(catalog.EntityMovie, movieID)
	}
	if _, ok := s.actors[actorID]; !ok {
		return errs.Missing(catalog.EntityActor, actorID)
	}
	set := s.movieActors[movieID]
	if set == nil {
		set = map[uuid.UUID]struct{}{}
		s.movieActors[movieID] = set
	}
	if _, ok := set[actorID]; ok {
		return errs.Conflict("Actor with id %s is already in Movie with id %s", actorID, movieID)
	}
	set[actorID] = struct{}{}
	return nil
}

func (s *Store) UnlinkActor(_ context.Context, movieID, actorID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	set := s.movieActors[movieID]
	if _, ok := set[actorID]; !ok {
		return errs.Missing(catalog.EntityActor, actorID.String()+" for Movie "+movieID.String())
	}
	delete(set, actorID)
	return nil
}
