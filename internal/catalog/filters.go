package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Empty string fields and nil pointers in a filter match everything.

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// MovieFilter selects movies by field predicates. Text predicates are
// case-insensitive substring matches unless the Exact flag says otherwise.
type MovieFilter struct {
	Title       string
	ReleaseDate *Date
	ReleaseYear *int
	Runtime     string
	ImdbID      string
	ImdbExact   bool
	Genre       string
	Country     string
	Director    string
	GenreID     *uuid.UUID
	CountryID   *uuid.UUID
}

func (f MovieFilter) Match(m Movie) bool {
	if f.Title != "" && !containsFold(m.Title, f.Title) {
		return false
	}
	if f.ReleaseDate != nil && !m.ReleaseDate.Equal(*f.ReleaseDate) {
		return false
	}
	if f.ReleaseYear != nil && m.ReleaseYear() != *f.ReleaseYear {
		return false
	}
	if f.Runtime != "" && !containsFold(m.Runtime, f.Runtime) {
		return false
	}
	if f.ImdbID != "" {
		if f.ImdbExact && !strings.EqualFold(m.ImdbID, f.ImdbID) {
			return false
		}
		if !f.ImdbExact && !containsFold(m.ImdbID, f.ImdbID) {
			return false
		}
	}
	if f.Genre != "" && !anyName(len(m.Genres), func(i int) string { return m.Genres[i].Name }, f.Genre) {
		return false
	}
	if f.Country != "" && !anyName(len(m.Countries), func(i int) string { return m.Countries[i].Name }, f.Country) {
		return false
	}
	if f.Director != "" && !anyName(len(m.Directors), func(i int) string { return m.Directors[i].Name }, f.Director) {
		return false
	}
	if f.GenreID != nil && !containsID(m.GenreIDs(), *f.GenreID) {
		return false
	}
	if f.CountryID != nil && !containsID(m.CountryIDs(), *f.CountryID) {
		return false
	}
	return true
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func anyName(n int, name func(int) string, needle string) bool {
	for i := 0; i < n; i++ {
		if containsFold(name(i), needle) {
			return true
		}
	}
	return false
}

// PersonFilter selects persons. Age is evaluated against the supplied clock.
type PersonFilter struct {
	Name      string
	BirthDate *Date
	DeathDate *Date
	Height    string
	Country   string
	CountryID *uuid.UUID
	Age       *int
}

func (f PersonFilter) Match(p Person, now time.Time) bool {
	if f.Name != "" && !containsFold(p.Name, f.Name) {
		return false
	}
	if f.BirthDate != nil && !p.BirthDate.Equal(*f.BirthDate) {
		return false
	}
	if f.DeathDate != nil && (p.DeathDate == nil || !p.DeathDate.Equal(*f.DeathDate)) {
		return false
	}
	if f.Height != "" && !containsFold(p.Height, f.Height) {
		return false
	}
	if f.Country != "" && (p.BirthCountry == nil || !containsFold(p.BirthCountry.Name, f.Country)) {
		return false
	}
	if f.CountryID != nil && (p.BirthCountry == nil || p.BirthCountry.ID != *f.CountryID) {
		return false
	}
	if f.Age != nil && p.Age(now) != *f.Age {
		return false
	}
	return true
}

// ActorFilter selects actors. NameExact switches Name to a
// case-insensitive equality check.
type ActorFilter struct {
	Name         string
	NameExact    bool
	BirthDate    *Date
	BirthCountry string
	Age          *int
}

func (f ActorFilter) Match(a Actor) bool {
	if f.Name != "" {
		if f.NameExact && !strings.EqualFold(a.Name, f.Name) {
			return false
		}
		if !f.NameExact && !containsFold(a.Name, f.Name) {
			return false
		}
	}
	if f.BirthDate != nil && !a.BirthDate.Equal(*f.BirthDate) {
		return false
	}
	if f.BirthCountry != "" && !strings.EqualFold(a.BirthCountry, f.BirthCountry) {
		return false
	}
	if f.Age != nil && a.Age != *f.Age {
		return false
	}
	return true
}

// UserFilter selects users. Role always matches case-insensitively in full;
// UsernameExact does the same for Username.
type UserFilter struct {
	Name          string
	Username      string
	UsernameExact bool
	Email         string
	Role          string
}

func (f UserFilter) Match(u User) bool {
	if f.Name != "" && !containsFold(u.Name, f.Name) {
		return false
	}
	if f.Username != "" {
		if f.UsernameExact && !strings.EqualFold(u.Username, f.Username) {
			return false
		}
		if !f.UsernameExact && !containsFold(u.Username, f.Username) {
			return false
		}
	}
	if f.Email != "" && !containsFold(u.Email, f.Email) {
		return false
	}
	if f.Role != "" && !strings.EqualFold(u.Role, f.Role) {
		return false
	}
	return true
}

// UserListFilter selects user lists.
type UserListFilter struct {
	Name        string
	Description string
	UserID      *uuid.UUID
}

func (f UserListFilter) Match(l UserList) bool {
	if f.Name != "" && !containsFold(l.Name, f.Name) {
		return false
	}
	if f.Description != "" && !containsFold(l.Description, f.Description) {
		return false
	}
	if f.UserID != nil && l.UserID != *f.UserID {
		return false
	}
	return true
}

// CastInfoFilter selects cast entries by movie, person or role name.
type CastInfoFilter struct {
	MovieID  *uuid.UUID
	PersonID *uuid.UUID
	RoleID   *uuid.UUID
	Role     string
}

func (f CastInfoFilter) Match(c CastInfo) bool {
	if f.MovieID != nil && c.MovieID != *f.MovieID {
		return false
	}
	if f.PersonID != nil && c.PersonID != *f.PersonID {
		return false
	}
	if f.RoleID != nil && c.RoleID != *f.RoleID {
		return false
	}
	if f.Role != "" && !strings.EqualFold(c.Role.Name, f.Role) {
		return false
	}
	return true
}

// ReviewFilter selects reviews.
type ReviewFilter struct {
	MovieID *uuid.UUID
	UserID  *uuid.UUID
	Liked   *bool
	Rating  *int
}

func (f ReviewFilter) Match(r Review) bool {
	if f.MovieID != nil && r.MovieID != *f.MovieID {
		return false
	}
	if f.UserID != nil && r.UserID != *f.UserID {
		return false
	}
	if f.Liked != nil && r.Liked != *f.Liked {
		return false
	}
	if f.Rating != nil && r.Rating != *f.Rating {
		return false
	}
	return true
}

// FollowFilter selects follow edges by either end.
type FollowFilter struct {
	UserID     *uuid.UUID
	FollowerID *uuid.UUID
}

func (f FollowFilter) Match(e Follow) bool {
	if f.UserID != nil && e.UserID != *f.UserID {
		return false
	}
	if f.FollowerID != nil && e.FollowerID != *f.FollowerID {
		return false
	}
	return true
}
