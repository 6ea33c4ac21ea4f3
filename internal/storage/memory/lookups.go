package memory

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/tinoosan/cinerator/internal/catalog"
	"github.com/tinoosan/cinerator/internal/errs"
)

var genreOrder = comparators[catalog.Genre]{
	"id":   func(a, b catalog.Genre) int { return cmpID(a.ID, b.ID) },
	"name": func(a, b catalog.Genre) int { return cmpFold(a.Name, b.Name) },
}

var countryOrder = comparators[catalog.Country]{
	"id":   func(a, b catalog.Country) int { return cmpID(a.ID, b.ID) },
	"name": func(a, b catalog.Country) int { return cmpFold(a.Name, b.Name) },
}

var roleOrder = comparators[catalog.Role]{
	"id":   func(a, b catalog.Role) int { return cmpID(a.ID, b.ID) },
	"role": func(a, b catalog.Role) int { return cmpFold(a.Name, b.Name) },
}

// --- Genres ---

func (s *Store) ListGenres(_ context.Context, req catalog.PageRequest) (catalog.Page[catalog.Genre], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortPage(valuesOf(s.genres), req, genreOrder, func(g catalog.Genre) uuid.UUID { return g.ID })
}

func (s *Store) GetGenre(_ context.Context, id uuid.UUID) (catalog.Genre, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.genres[id]
	if !ok {
		return catalog.Genre{}, errs.Missing(catalog.EntityGenre, id)
	}
	return g, nil
}

// FetchGenres returns the genres found among ids; missing ids are absent from the map.
func (s *Store) FetchGenres(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]catalog.Genre, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[uuid.UUID]catalog.Genre, len(ids))
	for _, id := range ids {
		if g, ok := s.genres[id]; ok {
			out[id] = g
		}
	}
	return out, nil
}

func (s *Store) CreateGenre(_ context.Context, g catalog.Genre) (catalog.Genre, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.genres[g.ID]; ok {
		return catalog.Genre{}, errs.Conflict("Genre with id %s already exists", g.ID)
	}
	if err := s.genreNameFreeLocked(g); err != nil {
		return catalog.Genre{}, err
	}
	s.genres[g.ID] = g
	return g, nil
}

func (s *Store) UpdateGenre(_ context.Context, g catalog.Genre) (catalog.Genre, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.genres[g.ID]; !ok {
		return catalog.Genre{}, errs.Missing(catalog.EntityGenre, g.ID)
	}
	if err := s.genreNameFreeLocked(g); err != nil {
		return catalog.Genre{}, err
	}
	s.genres[g.ID] = g
	return g, nil
}

// DeleteGenre removes the genre and detaches it from all movies.
func (s *Store) DeleteGenre(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.genres[id]; !ok {
		return errs.Missing(catalog.EntityGenre, id)
	}
	delete(s.genres, id)
	for mid, m := range s.movies {
		m.genreIDs = without(m.genreIDs, id)
		s.movies[mid] = m
	}
	return nil
}

func (s *Store) genreNameFreeLocked(g catalog.Genre) error {
	for _, other := range s.genres {
		if other.ID != g.ID && strings.EqualFold(other.Name, g.Name) {
			return errs.Conflict("Genre with name %q already exists", g.Name)
		}
	}
	return nil
}

// --- Countries ---

func (s *Store) ListCountries(_ context.Context, req catalog.PageRequest) (catalog.Page[catalog.Country], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortPage(valuesOf(s.countries), req, countryOrder, func(c catalog.Country) uuid.UUID { return c.ID })
}

func (s *Store) GetCountry(_ context.Context, id uuid.UUID) (catalog.Country, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.countries[id]
	if !ok {
		return catalog.Country{}, errs.Missing(catalog.EntityCountry, id)
	}
	return c, nil
}

func (s *Store) FetchCountries(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]catalog.Country, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[uuid.UUID]catalog.Country, len(ids))
	for _, id := range ids {
		if c, ok := s.countries[id]; ok {
			out[id] = c
		}
	}
	return out, nil
}

func (s *Store) CreateCountry(_ context.Context, c catalog.Country) (catalog.Country, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.countries[c.ID]; ok {
		return catalog.Country{}, errs.Conflict("Country with id %s already exists", c.ID)
	}
	if err := s.countryNameFreeLocked(c); err != nil {
		return catalog.Country{}, err
	}
	s.countries[c.ID] = c
	return c, nil
}

func (s *Store) UpdateCountry(_ context.Context, c catalog.Country) (catalog.Country, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.countries[c.ID]; !ok {
		return catalog.Country{}, errs.Missing(catalog.EntityCountry, c.ID)
	}
	if err := s.countryNameFreeLocked(c); err != nil {
		return catalog.Country{}, err
	}
	s.countries[c.ID] = c
	return c, nil
}

// DeleteCountry removes the country, detaches it from movies and clears it
// as the birth country of persons.
func (s *Store) DeleteCountry(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.countries[id]; !ok {
		return errs.Missing(catalog.EntityCountry, id)
	}
	delete(s.countries, id)
	for mid, m := range s.movies {
		m.countryIDs = without(m.countryIDs, id)
		s.movies[mid] = m
	}
	for pid, p := range s.persons {
		if p.countryID != nil && *p.countryID == id {
			p.countryID = nil
			s.persons[pid] = p
		}
	}
	return nil
}

func (s *Store) countryNameFreeLocked(c catalog.Country) error {
	for _, other := range s.countries {
		if other.ID != c.ID && strings.EqualFold(other.Name, c.Name) {
			return errs.Conflict("Country with name %q already exists", c.Name)
		}
	}
	return nil
}

// --- Roles ---

func (s *Store) ListRoles(_ context.Context, req catalog.PageRequest) (catalog.Page[catalog.Role], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortPage(valuesOf(s.roles), req, roleOrder, func(r catalog.Role) uuid.UUID { return r.ID })
}

func (s *Store) GetRole(_ context.Context, id uuid.UUID) (catalog.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.roles[id]
	if !ok {
		return catalog.Role{}, errs.Missing(catalog.EntityRole, id)
	}
	return r, nil
}

func (s *Store) CreateRole(_ context.Context, r catalog.Role) (catalog.Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.roles[r.ID]; ok {
		return catalog.Role{}, errs.Conflict("Role with id %s already exists", r.ID)
	}
	if err := s.roleNameFreeLocked(r); err != nil {
		return catalog.Role{}, err
	}
	s.roles[r.ID] = r
	return r, nil
}

func (s *Store) UpdateRole(_ context.Context, r catalog.Role) (catalog.Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.roles[r.ID]; !ok {
		return catalog.Role{}, errs.Missing(catalog.EntityRole, r.ID)
	}
	if err := s.roleNameFreeLocked(r); err != nil {
		return catalog.Role{}, err
	}
	s.roles[r.ID] = r
	return r, nil
}

// DeleteRole removes the role and every cast entry that uses it.
func (s *Store) DeleteRole(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.roles[id]; !ok {
		return errs.Missing(catalog.EntityRole, id)
	}
	delete(s.roles, id)
	for cid, c := range s.castInfos {
		if c.RoleID == id {
			delete(s.castInfos, cid)
		}
	}
	return nil
}

func (s *Store) roleNameFreeLocked(r catalog.Role) error {
	for _, other := range s.roles {
		if other.ID != r.ID && strings.EqualFold(other.Name, r.Name) {
			return errs.Conflict("Role %q already exists", r.Name)
		}
	}
	return nil
}

func without(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	out := ids[:0:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
