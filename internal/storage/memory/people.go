package memory

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/tinoosan/cinerator/internal/catalog"
	"github.com/tinoosan/cinerator/internal/errs"
)

var personOrder = comparators[catalog.Person]{
	"id":        func(a, b catalog.Person) int { return cmpID(a.ID, b.ID) },
	"name":      func(a, b catalog.Person) int { return cmpFold(a.Name, b.Name) },
	"birthDate": func(a, b catalog.Person) int { return cmpDate(a.BirthDate, b.BirthDate) },
	"deathDate": func(a, b catalog.Person) int { return cmpDate(derefDate(a.DeathDate), derefDate(b.DeathDate)) },
	"height":    func(a, b catalog.Person) int { return cmpFold(a.Height, b.Height) },
}

var castInfoOrder = comparators[catalog.CastInfo]{
	"id":            func(a, b catalog.CastInfo) int { return cmpID(a.ID, b.ID) },
	"characterName": func(a, b catalog.CastInfo) int { return cmpFold(a.CharacterName, b.CharacterName) },
}

func derefDate(d *catalog.Date) catalog.Date {
	if d == nil {
		return catalog.Date{}
	}
	return *d
}

// --- Persons ---

func (s *Store) hydratePersonLocked(row personRow) catalog.Person {
	p := row.Person
	p.BirthCountry = nil
	if row.countryID != nil {
		if c, ok := s.countries[*row.countryID]; ok {
			p.BirthCountry = &c
		}
	}
	return p
}

func (s *Store) personsLocked() []catalog.Person {
	out := make([]catalog.Person, 0, len(s.persons))
	for _, row := range s.persons {
		out = append(out, s.hydratePersonLocked(row))
	}
	return out
}

func (s *Store) ListPersons(_ context.Context, req catalog.PageRequest) (catalog.Page[catalog.Person], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortPage(s.personsLocked(), req, personOrder, func(p catalog.Person) uuid.UUID { return p.ID })
}

// SearchPersons returns the persons matching f ordered by name.
func (s *Store) SearchPersons(_ context.Context, f catalog.PersonFilter, now time.Time) ([]catalog.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []catalog.Person{}
	for _, p := range s.personsLocked() {
		if f.Match(p, now) {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b catalog.Person) int {
		if c := cmpFold(a.Name, b.Name); c != 0 {
			return c
		}
		return cmpID(a.ID, b.ID)
	})
	return out, nil
}

func (s *Store) GetPerson(_ context.Context, id uuid.UUID) (catalog.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row, ok := s.persons[id]
	if !ok {
		return catalog.Person{}, errs.Missing(catalog.EntityPerson, id)
	}
	return s.hydratePersonLocked(row), nil
}

func (s *Store) CreatePerson(_ context.Context, p catalog.Person) (catalog.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.persons[p.ID]; ok {
		return catalog.Person{}, errs.Conflict("Person with id %s already exists", p.ID)
	}
	s.persons[p.ID] = toPersonRow(p)
	return s.hydratePersonLocked(s.persons[p.ID]), nil
}

func (s *Store) UpdatePerson(_ context.Context, p catalog.Person) (catalog.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.persons[p.ID]; !ok {
		return catalog.Person{}, errs.Missing(catalog.EntityPerson, p.ID)
	}
	s.persons[p.ID] = toPersonRow(p)
	return s.hydratePersonLocked(s.persons[p.ID]), nil
}

// DeletePerson removes the person and every cast entry crediting them.
func (s *Store) DeletePerson(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.persons[id]; !ok {
		return errs.Missing(catalog.EntityPerson, id)
	}
	delete(s.persons, id)
	for cid, c := range s.castInfos {
		if c.PersonID == id {
			delete(s.castInfos, cid)
		}
	}
	return nil
}

func toPersonRow(p catalog.Person) personRow {
	row := personRow{Person: p}
	if p.BirthCountry != nil {
		id := p.BirthCountry.ID
		row.countryID = &id
	}
	row.BirthCountry = nil
	return row
}

// --- Actors ---

func byActorName(a, b catalog.Actor) int {
	if c := cmpFold(a.Name, b.Name); c != 0 {
		return c
	}
	return cmpID(a.ID, b.ID)
}

// ListActors returns the actors matching f ordered by name.
func (s *Store) ListActors(_ context.Context, f catalog.ActorFilter) ([]catalog.Actor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []catalog.Actor{}
	for _, a := range s.actors {
		if f.Match(a) {
			out = append(out, a)
		}
	}
	slices.SortFunc(out, byActorName)
	return out, nil
}

func (s *Store) GetActor(_ context.Context, id uuid.UUID) (catalog.Actor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.actors[id]
	if !ok {
		return catalog.Actor{}, errs.Missing(catalog.EntityActor, id)
	}
	return a, nil
}

func (s *Store) CreateActor(_ context.Context, a catalog.Actor) (catalog.Actor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.actors[a.ID]; ok {
		return catalog.Actor{}, errs.Conflict("Actor with id %s already exists", a.ID)
	}
	s.actors[a.ID] = a
	return a, nil
}

func (s *Store) UpdateActor(_ context.Context, a catalog.Actor) (catalog.Actor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.actors[a.ID]; !ok {
		return catalog.Actor{}, errs.Missing(catalog.EntityActor, a.ID)
	}
	s.actors[a.ID] = a
	return a, nil
}

// DeleteActor removes the actor and its movie links.
func (s *Store) DeleteActor(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.actors[id]; !ok {
		return errs.Missing(catalog.EntityActor, id)
	}
	delete(s.actors, id)
	for _, set := range s.movieActors {
		delete(set, id)
	}
	return nil
}

// --- Cast entries ---

func (s *Store) hydrateCastInfoLocked(c catalog.CastInfo, dirs directorIndex) catalog.CastInfo {
	if row, ok := s.movies[c.MovieID]; ok {
		c.Movie = s.hydrateMovieLocked(row, dirs)
	}
	if row, ok := s.persons[c.PersonID]; ok {
		c.Person = s.hydratePersonLocked(row)
	}
	if r, ok := s.roles[c.RoleID]; ok {
		c.Role = r
	}
	return c
}

// sortedCastInfosLocked returns hydrated cast entries ordered by id.
func (s *Store) sortedCastInfosLocked() []catalog.CastInfo {
	dirs := s.directorsLocked()
	out := make([]catalog.CastInfo, 0, len(s.castInfos))
	for _, c := range s.castInfos {
		out = append(out, s.hydrateCastInfoLocked(c, dirs))
	}
	slices.SortFunc(out, func(a, b catalog.CastInfo) int { return cmpID(a.ID, b.ID) })
	return out
}

func (s *Store) ListCastInfos(_ context.Context, f catalog.CastInfoFilter) ([]catalog.CastInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []catalog.CastInfo{}
	for _, c := range s.sortedCastInfosLocked() {
		if f.Match(c) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *Store) PageCastInfos(_ context.Context, req catalog.PageRequest) (catalog.Page[catalog.CastInfo], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortPage(s.sortedCastInfosLocked(), req, castInfoOrder, func(c catalog.CastInfo) uuid.UUID { return c.ID })
}

func (s *Store) GetCastInfo(_ context.Context, id uuid.UUID) (catalog.CastInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.castInfos[id]
	if !ok {
		return catalog.CastInfo{}, errs.Missing(catalog.EntityCastInfo, id)
	}
	return s.hydrateCastInfoLocked(c, s.directorsLocked()), nil
}

func (s *Store) CreateCastInfo(_ context.Context, c catalog.CastInfo) (catalog.CastInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.castInfos[c.ID]; ok {
		return catalog.CastInfo{}, errs.Conflict("CastInfo with id %s already exists", c.ID)
	}
	if err := s.creditFreeLocked(c); err != nil {
		return catalog.CastInfo{}, err
	}
	s.castInfos[c.ID] = stripCastInfo(c)
	return s.hydrateCastInfoLocked(s.castInfos[c.ID], s.directorsLocked()), nil
}

func (s *Store) UpdateCastInfo(_ context.Context, c catalog.CastInfo) (catalog.CastInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.castInfos[c.ID]; !ok {
		return catalog.CastInfo{}, errs.Missing(catalog.EntityCastInfo, c.ID)
	}
	if err := s.creditFreeLocked(c); err != nil {
		return catalog.CastInfo{}, err
	}
	s.castInfos[c.ID] = stripCastInfo(c)
	return s.hydrateCastInfoLocked(s.castInfos[c.ID], s.directorsLocked()), nil
}

func (s *Store) DeleteCastInfo(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.castInfos[id]; !ok {
		return errs.Missing(catalog.EntityCastInfo, id)
	}
	delete(s.castInfos, id)
	return nil
}

func (s *Store) creditFreeLocked(c catalog.CastInfo) error {
	for _, other := range s.castInfos {
		if other.ID != c.ID && other.SameCredit(c) {
			return errs.Conflict("an equal cast entry already exists with id %s", other.ID)
		}
	}
	return nil
}

func stripCastInfo(c catalog.CastInfo) catalog.CastInfo {
	c.Movie, c.Person, c.Role = catalog.Movie{}, catalog.Person{}, catalog.Role{}
	return c
}
