package v1

import (
	"github.com/google/uuid"

	h "github.com/tinoosan/cinerator/internal/hypermedia"
)

func path(parts ...string) string {
	out := ""
	for _, p := range parts {
		out += "/" + p
	}
	return out
}

func idPath(collection string, id uuid.UUID, sub ...string) string {
	return path(append([]string{collection, id.String()}, sub...)...)
}

func fixed[T any](p string) func(T) string { return func(T) string { return p } }

// assemblers holds one link assembler per resource type.
type assemblers struct {
	movies    *h.Assembler[movieDTO]
	persons   *h.Assembler[personDTO]
	actors    *h.Assembler[actorDTO]
	genres    *h.Assembler[genreDTO]
	countries *h.Assembler[countryDTO]
	roles     *h.Assembler[roleDTO]
	castInfos *h.Assembler[castInfoDTO]
	reviews   *h.Assembler[reviewDTO]
	users     *h.Assembler[userDTO]
	lists     *h.Assembler[userListDTO]
	follows   *h.Assembler[followDTO]
}

func newAssemblers(base string) assemblers {
	return assemblers{
		movies: h.New(base,
			h.Rel("self", func(m movieDTO) string { return idPath("movies", m.ID) }),
			h.Rel("reviews", func(m movieDTO) string { return idPath("movies", m.ID, "reviews") }),
			h.Rel("actors", func(m movieDTO) string { return idPath("movies", m.ID, "actors") }),
			h.Rel("genres", func(m movieDTO) string { return idPath("movies", m.ID, "genres") }),
			h.Rel("countries", func(m movieDTO) string { return idPath("movies", m.ID, "countries") }),
			h.Rel("credits", func(m movieDTO) string { return idPath("movies", m.ID, "credits") }),
			h.Rel("movies", fixed[movieDTO]("/movies")),
		),
		persons: h.New(base,
			h.Rel("self", func(p personDTO) string { return idPath("persons", p.ID) }),
			h.Rel("country", func(p personDTO) string { return idPath("persons", p.ID, "country") }),
			h.Rel("movies", func(p personDTO) string { return idPath("persons", p.ID, "movies") }),
			h.Rel("credits", func(p personDTO) string { return idPath("persons", p.ID, "credits") }),
			h.Rel("roles", func(p personDTO) string { return idPath("persons", p.ID, "roles") }),
		),
		actors: h.New(base,
			h.Rel("self", func(a actorDTO) string { return idPath("actors", a.ID) }),
			h.Rel("movies", func(a actorDTO) string { return idPath("actors", a.ID, "movies") }),
			h.Rel("actors", fixed[actorDTO]("/actors")),
		),
		genres: h.New(base,
			h.Rel("self", func(g genreDTO) string { return idPath("genres", g.ID) }),
			h.Rel("genres", fixed[genreDTO]("/genres")),
		),
		countries: h.New(base,
			h.Rel("self", func(c countryDTO) string { return idPath("countries", c.ID) }),
			h.Rel("countries", fixed[countryDTO]("/countries")),
		),
		roles: h.New(base,
			h.Rel("self", func(r roleDTO) string { return idPath("roles", r.ID) }),
			h.Rel("roles", fixed[roleDTO]("/roles")),
		),
		castInfos: h.New(base,
			h.Rel("self", func(c castInfoDTO) string { return idPath("castinfo", c.ID) }),
			h.Rel("movie", func(c castInfoDTO) string { return idPath("movies", c.Movie.ID) }),
			h.Rel("person", func(c castInfoDTO) string { return idPath("persons", c.Person.ID) }),
			h.Rel("role", func(c castInfoDTO) string { return idPath("roles", c.Role.ID) }),
		),
		reviews: h.New(base,
			h.Rel("self", func(r reviewDTO) string { return idPath("reviews", r.ID) }),
			h.Rel("movie", func(r reviewDTO) string { return idPath("movies", r.MovieID) }),
			h.Rel("user", func(r reviewDTO) string { return idPath("users", r.UserID) }),
			h.Rel("remove", func(r reviewDTO) string { return idPath("movies", r.MovieID, "reviews", r.ID.String()) }),
		),
		users: h.New(base,
			h.Rel("self", func(u userDTO) string { return idPath("users", u.ID) }),
			h.Rel("watchlist", func(u userDTO) string { return idPath("users", u.ID, "watchlist") }),
			h.Rel("reviews", func(u userDTO) string { return idPath("users", u.ID, "reviews") }),
			h.Rel("likedMovies", func(u userDTO) string { return idPath("users", u.ID, "likedMovies") }),
			h.Rel("followers", func(u userDTO) string { return idPath("users", u.ID, "followers") }),
			h.Rel("following", func(u userDTO) string { return idPath("users", u.ID, "following") }),
			h.Rel("lists", func(u userDTO) string { return idPath("users", u.ID, "lists") }),
		),
		lists: h.New(base,
			h.Rel("self", func(l userListDTO) string { return idPath("lists", l.ID) }),
			h.Rel("user", func(l userListDTO) string { return idPath("users", l.UserID) }),
			h.Rel("movies", func(l userListDTO) string { return idPath("lists", l.ID, "movies") }),
		),
		follows: h.New(base,
			h.Rel("self", func(f followDTO) string { return idPath("follows", f.UserID, "followers", f.FollowerID.String()) }),
			h.Rel("user", func(f followDTO) string { return idPath("users", f.UserID) }),
			h.Rel("follower", func(f followDTO) string { return idPath("users", f.FollowerID) }),
		),
	}
}
