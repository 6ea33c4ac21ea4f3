// Package memory provides an in-memory implementation of every store
// interface used by the services. It backs local development and tests.
// Each method holds the lock for its whole read-modify-write, so cascades
// are observed atomically by concurrent requests.
package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/tinoosan/cinerator/internal/catalog"
	"github.com/tinoosan/cinerator/internal/errs"
)

type movieRow struct {
	catalog.Movie
	genreIDs   []uuid.UUID
	countryIDs []uuid.UUID
}

type personRow struct {
	catalog.Person
	countryID *uuid.UUID
}

type followKey struct {
	UserID     uuid.UUID
	FollowerID uuid.UUID
}

// Store is guarded by an RWMutex for concurrent reads/writes.
type Store struct {
	mu        sync.RWMutex
	genres    map[uuid.UUID]catalog.Genre
	countries map[uuid.UUID]catalog.Country
	roles     map[uuid.UUID]catalog.Role
	movies    map[uuid.UUID]movieRow
	persons   map[uuid.UUID]personRow
	actors    map[uuid.UUID]catalog.Actor
	// movieActors maps movie id to the set of linked actor ids.
	movieActors map[uuid.UUID]map[uuid.UUID]struct{}
	castInfos   map[uuid.UUID]catalog.CastInfo
	reviews     map[uuid.UUID]catalog.Review
	users       map[uuid.UUID]catalog.User
	// watchlists keeps movie ids per user in insertion order.
	watchlists map[uuid.UUID][]uuid.UUID
	lists      map[uuid.UUID]catalog.UserList
	follows    map[followKey]catalog.Follow
}

// New constructs an empty in-memory store.
func New() *Store {
	s := &Store{}
	s.Reset()
	return s
}

// Reset drops all data.
func (s *Store) Reset() {
	s.mu.Lock()
	s.genres = map[uuid.UUID]catalog.Genre{}
	s.countries = map[uuid.UUID]catalog.Country{}
	s.roles = map[uuid.UUID]catalog.Role{}
	s.movies = map[uuid.UUID]movieRow{}
	s.persons = map[uuid.UUID]personRow{}
	s.actors = map[uuid.UUID]catalog.Actor{}
	s.movieActors = map[uuid.UUID]map[uuid.UUID]struct{}{}
	s.castInfos = map[uuid.UUID]catalog.CastInfo{}
	s.reviews = map[uuid.UUID]catalog.Review{}
	s.users = map[uuid.UUID]catalog.User{}
	s.watchlists = map[uuid.UUID][]uuid.UUID{}
	s.lists = map[uuid.UUID]catalog.UserList{}
	s.follows = map[followKey]catalog.Follow{}
	s.mu.Unlock()
}

// Ready always succeeds for the in-memory store.
func (s *Store) Ready(context.Context) error { return nil }

// comparators maps a public sort field name to an ordering of T.
type comparators[T any] map[string]func(a, b T) int

// sortPage orders all by the requested field and cuts the page out of it.
// Ties are broken by id so pages are stable.
func sortPage[T any](all []T, req catalog.PageRequest, by comparators[T], id func(T) uuid.UUID) (catalog.Page[T], error) {
	field := req.SortField
	if field == "" {
		field = catalog.DefaultSortField
	}
	less, ok := by[field]
	if !ok {
		return catalog.Page[T]{}, errs.Invalid("unknown sort field %q", field)
	}
	desc := req.Direction == catalog.SortDesc
	slices.SortStableFunc(all, func(a, b T) int {
		c := less(a, b)
		if c == 0 {
			c = cmpID(id(a), id(b))
		}
		if desc {
			return -c
		}
		return c
	})
	return catalog.Slice(all, req), nil
}

func cmpID(a, b uuid.UUID) int { return strings.Compare(a.String(), b.String()) }

func cmpFold(a, b string) int { return cmp.Compare(strings.ToLower(a), strings.ToLower(b)) }

func cmpDate(a, b catalog.Date) int { return a.Compare(b.Time) }

func valuesOf[K comparable, V any](m map[K]V) []V {
	out := make([]V, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	return out
}
