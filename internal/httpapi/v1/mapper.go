package v1

import (
	"strings"
	"time"

	"github.com/tinoosan/cinerator/internal/catalog"
	"github.com/tinoosan/cinerator/internal/service/actor"
	"github.com/tinoosan/cinerator/internal/service/castinfo"
	"github.com/tinoosan/cinerator/internal/service/movie"
	"github.com/tinoosan/cinerator/internal/service/person"
	"github.com/tinoosan/cinerator/internal/service/review"
	"github.com/tinoosan/cinerator/internal/service/user"
	"github.com/tinoosan/cinerator/internal/service/userlist"
)

func joinNames[T any](items []T, name func(T) string) string {
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, name(it))
	}
	return strings.Join(names, ", ")
}

func mapAll[T, U any](items []T, fn func(T) U) []U {
	out := make([]U, 0, len(items))
	for _, it := range items {
		out = append(out, fn(it))
	}
	return out
}

func toMovieDTO(m catalog.Movie) movieDTO {
	return movieDTO{
		ID:          m.ID,
		Title:       m.Title,
		ReleaseDate: m.ReleaseDate,
		Runtime:     m.Runtime,
		Director:    joinNames(m.Directors, func(p catalog.Person) string { return p.Name }),
		Genre:       joinNames(m.Genres, func(g catalog.Genre) string { return g.Name }),
		Country:     joinNames(m.Countries, func(c catalog.Country) string { return c.Name }),
		ImdbID:      m.ImdbID,
		PosterURL:   m.PosterURL,
		GenreIDs:    m.GenreIDs(),
		CountryIDs:  m.CountryIDs(),
	}
}

func toPersonDTO(p catalog.Person, now time.Time) personDTO {
	out := personDTO{
		ID:        p.ID,
		Name:      p.Name,
		BirthDate: p.BirthDate,
		DeathDate: p.DeathDate,
		Height:    p.Height,
		Age:       p.Age(now),
	}
	if p.BirthCountry != nil {
		c := toCountryDTO(*p.BirthCountry)
		out.BirthCountry = &c
	}
	return out
}

func toActorDTO(a catalog.Actor) actorDTO {
	return actorDTO{ID: a.ID, Name: a.Name, BirthDate: a.BirthDate, BirthCountry: a.BirthCountry, Age: a.Age}
}

func toGenreDTO(g catalog.Genre) genreDTO       { return genreDTO{ID: g.ID, Name: g.Name} }
func toCountryDTO(c catalog.Country) countryDTO { return countryDTO{ID: c.ID, Name: c.Name} }
func toRoleDTO(r catalog.Role) roleDTO          { return roleDTO{ID: r.ID, Role: r.Name} }

func toCastInfoDTO(c catalog.CastInfo, now time.Time) castInfoDTO {
	return castInfoDTO{
		ID:            c.ID,
		Movie:         toMovieDTO(c.Movie),
		Person:        toPersonDTO(c.Person, now),
		Role:          toRoleDTO(c.Role),
		CharacterName: c.CharacterName,
	}
}

func toReviewDTO(r catalog.Review) reviewDTO {
	out := reviewDTO{
		ID:         r.ID,
		MovieID:    r.MovieID,
		MovieTitle: r.MovieTitle,
		UserID:     r.UserID,
		Username:   r.Username,
		Rating:     r.Rating,
		Liked:      r.Liked,
		ReviewDate: r.ReviewDate,
		Comment:    r.Comment,
	}
	if !r.MovieReleaseDate.IsZero() {
		out.MovieReleaseYear = r.MovieReleaseDate.Year()
	}
	return out
}

// toUserDTO leaves the password hash behind.
func toUserDTO(u catalog.User) userDTO {
	return userDTO{
		ID:        u.ID,
		Username:  u.Username,
		Name:      u.Name,
		Email:     u.Email,
		Bio:       u.Bio,
		Role:      u.Role,
		Enabled:   u.Enabled,
		CreatedAt: u.CreatedAt,
	}
}

func toUserListDTO(l catalog.UserList) userListDTO {
	return userListDTO{
		ID:          l.ID,
		Name:        l.Name,
		Description: l.Description,
		Private:     l.Private,
		UserID:      l.UserID,
		CreatedAt:   l.CreatedAt,
	}
}

func toFollowDTO(f catalog.Follow) followDTO {
	return followDTO{UserID: f.UserID, FollowerID: f.FollowerID, FollowedAt: f.FollowedAt}
}

// Request DTO to service input.

func (b movieRequest) input() movie.Input {
	return movie.Input{
		Title:       b.Title,
		ReleaseDate: b.ReleaseDate,
		Runtime:     b.Runtime,
		ImdbID:      b.ImdbID,
		PosterURL:   b.PosterURL,
		GenreIDs:    b.GenreIDs,
		CountryIDs:  b.CountryIDs,
	}
}

func (b personRequest) input() person.Input {
	return person.Input{
		Name:           b.Name,
		BirthDate:      b.BirthDate,
		DeathDate:      b.DeathDate,
		Height:         b.Height,
		BirthCountryID: b.BirthCountryID,
	}
}

func (b actorRequest) input() actor.Input {
	return actor.Input{Name: b.Name, BirthDate: b.BirthDate, BirthCountry: b.BirthCountry}
}

func (b castInfoRequest) input() castinfo.Input {
	return castinfo.Input{MovieID: b.MovieID, PersonID: b.PersonID, RoleID: b.RoleID, CharacterName: b.CharacterName}
}

// input defaults an omitted review date to today.
func (b reviewRequest) input(now time.Time) review.Input {
	date := b.ReviewDate
	if date.IsZero() {
		date = catalog.DateOf(now)
	}
	return review.Input{
		MovieID:    b.MovieID,
		UserID:     b.UserID,
		ReviewDate: date,
		Comment:    b.Comment,
		Rating:     b.Rating,
		Liked:      b.Liked,
	}
}

func (b reviewEditRequest) edit() review.Edit {
	return review.Edit{Comment: b.Comment, Rating: b.Rating, Liked: b.Liked}
}

func (b userRequest) input() user.Input {
	return user.Input{Username: b.Username, Email: b.Email, Password: b.Password, Name: b.Name, Bio: b.Bio}
}

func (b userListRequest) input() userlist.Input {
	return userlist.Input{Name: b.Name, Description: b.Description, Private: b.Private, UserID: b.UserID}
}
