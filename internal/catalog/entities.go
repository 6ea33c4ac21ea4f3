// Package catalog holds the entity model of the movie catalogue.
// Relations are carried as ids on write; stores hydrate the related
// values (names, titles) on read so the mapping layer never queries.
package catalog

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Entity names used in lookups and error messages.
const (
	EntityMovie    = "Movie"
	EntityPerson   = "Person"
	EntityActor    = "Actor"
	EntityGenre    = "Genre"
	EntityCountry  = "Country"
	EntityRole     = "Role"
	EntityCastInfo = "CastInfo"
	EntityReview   = "Review"
	EntityUser     = "User"
	EntityUserList = "UserList"
	EntityFollow   = "Follow"
)

// DirectorRole is the cast role whose people are reported as a movie's directors.
const DirectorRole = "Director"

// DefaultUserRole is assigned to newly registered users.
const DefaultUserRole = "USER"

var imdbPattern = regexp.MustCompile(`^tt\d{6,9}$`)

// IsImdbID reports whether s looks like an IMDb title id (tt followed by 6-9 digits).
func IsImdbID(s string) bool { return imdbPattern.MatchString(s) }

// Movie is a catalogued film.
type Movie struct {
	ID          uuid.UUID
	Title       string
	ReleaseDate Date
	Runtime     string
	ImdbID      string
	PosterURL   string
	Genres      []Genre
	Countries   []Country
	// Directors is hydrated on read from cast entries with the Director role.
	Directors []Person
}

// GenreIDs returns the ids of the movie's genres in order.
func (m Movie) GenreIDs() []uuid.UUID {
	out := make([]uuid.UUID, 0, len(m.Genres))
	for _, g := range m.Genres {
		out = append(out, g.ID)
	}
	return out
}

// CountryIDs returns the ids of the movie's countries in order.
func (m Movie) CountryIDs() []uuid.UUID {
	out := make([]uuid.UUID, 0, len(m.Countries))
	for _, c := range m.Countries {
		out = append(out, c.ID)
	}
	return out
}

// ReleaseYear is the year of the release date, or 0 when unset.
func (m Movie) ReleaseYear() int {
	if m.ReleaseDate.IsZero() {
		return 0
	}
	return m.ReleaseDate.Year()
}

// Person is anyone credited on a movie.
type Person struct {
	ID           uuid.UUID
	Name         string
	BirthDate    Date
	DeathDate    *Date
	Height       string
	BirthCountry *Country
}

// Age is computed from the birth date up to the death date, or up to now
// while the person is alive. It is derived on every call.
func (p Person) Age(now time.Time) int {
	if p.BirthDate.IsZero() {
		return 0
	}
	end := now
	if p.DeathDate != nil && !p.DeathDate.IsZero() {
		end = p.DeathDate.Time
	}
	return p.BirthDate.YearsAt(end)
}

// Actor is a performer linked directly to movies.
// Age is fixed when the actor is written and not recomputed on read.
type Actor struct {
	ID           uuid.UUID
	Name         string
	BirthDate    Date
	BirthCountry string
	Age          int
}

// Genre is a lookup entity attached to movies.
type Genre struct {
	ID   uuid.UUID
	Name string
}

// Country is a lookup entity attached to movies and persons.
type Country struct {
	ID   uuid.UUID
	Name string
}

// Role is a credit type such as Actor or Director.
type Role struct {
	ID   uuid.UUID
	Name string
}

// CastInfo credits a person with a role on a movie.
// Movie, Person and Role are hydrated on read.
type CastInfo struct {
	ID            uuid.UUID
	MovieID       uuid.UUID
	PersonID      uuid.UUID
	RoleID        uuid.UUID
	CharacterName string

	Movie  Movie
	Person Person
	Role   Role
}

// SameCredit reports whether two cast entries describe the same credit.
func (c CastInfo) SameCredit(o CastInfo) bool {
	return c.MovieID == o.MovieID && c.PersonID == o.PersonID && c.RoleID == o.RoleID &&
		strings.EqualFold(strings.TrimSpace(c.CharacterName), strings.TrimSpace(o.CharacterName))
}

// Rating bounds of a review.
const (
	MinRating = 1
	MaxRating = 5
)

// Review is a user's rating of a movie.
// MovieTitle, MovieReleaseDate and Username are hydrated on read.
type Review struct {
	ID         uuid.UUID
	MovieID    uuid.UUID
	UserID     uuid.UUID
	Comment    string
	Rating     int
	ReviewDate Date
	Liked      bool

	MovieTitle       string
	MovieReleaseDate Date
	Username         string
}

// User is an account of the catalogue.
type User struct {
	ID           uuid.UUID
	Username     string
	Name         string
	Email        string
	Bio          string
	PasswordHash string
	Role         string
	Enabled      bool
	CreatedAt    time.Time
}

// UserList is a named, user-owned collection of movies.
type UserList struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        string
	Description string
	Private     bool
	CreatedAt   time.Time
	MovieIDs    []uuid.UUID
}

// Contains reports whether the list holds the movie.
func (l UserList) Contains(movieID uuid.UUID) bool {
	for _, id := range l.MovieIDs {
		if id == movieID {
			return true
		}
	}
	return false
}

// Follow is a directed edge: FollowerID follows UserID.
type Follow struct {
	UserID     uuid.UUID
	FollowerID uuid.UUID
	FollowedAt time.Time
}
