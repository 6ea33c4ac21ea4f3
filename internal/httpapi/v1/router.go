// Package v1 wires the HTTP surface of the movie catalogue.
// Handlers stay thin and delegate business rules to the service layer.
package v1

import (
	"log/slog"
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/tinoosan/cinerator/internal/auth"
	"github.com/tinoosan/cinerator/internal/service/actor"
	"github.com/tinoosan/cinerator/internal/service/castinfo"
	"github.com/tinoosan/cinerator/internal/service/country"
	"github.com/tinoosan/cinerator/internal/service/follow"
	"github.com/tinoosan/cinerator/internal/service/genre"
	"github.com/tinoosan/cinerator/internal/service/movie"
	"github.com/tinoosan/cinerator/internal/service/person"
	"github.com/tinoosan/cinerator/internal/service/review"
	"github.com/tinoosan/cinerator/internal/service/role"
	"github.com/tinoosan/cinerator/internal/service/user"
	"github.com/tinoosan/cinerator/internal/service/userlist"
)

// Config carries the HTTP-level settings read at startup.
type Config struct {
	// BaseURL prefixes every link href. Empty yields relative links.
	BaseURL string
	// Tokens signs login tokens. Nil makes login return an empty token.
	Tokens *auth.Tokens
	// AuthRequired enforces bearer tokens when Tokens is set.
	AuthRequired bool
	// CORSOrigins enables CORS for the listed origins.
	CORSOrigins []string
}

// Server wires handlers and middleware using Chi.
type Server struct {
	movies    movie.Service
	persons   person.Service
	actors    actor.Service
	genres    genre.Service
	countries country.Service
	roles     role.Service
	castInfos castinfo.Service
	reviews   review.Service
	users     user.Service
	lists     userlist.Service
	follows   follow.Service

	links  assemblers
	valid  *bodyValidator
	tokens *auth.Tokens
	ready  Readier
	now    func() time.Time
	log    *slog.Logger
	rt     *chi.Mux
}

// New constructs the HTTP server with routes and middleware.
// The logger is used by request logging, panic recovery and writeError.
func New(store Store, cfg Config, logger *slog.Logger) *Server {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(requestLogger(logger))
	r.Use(recoverer(logger))
	r.Use(metricsMiddleware)
	if len(cfg.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders: []string{"Location"},
			MaxAge:         300,
		}))
	}
	if cfg.AuthRequired && cfg.Tokens != nil {
		r.Use(requireBearer(cfg.Tokens))
	}

	s := &Server{
		movies:    movie.New(store, store),
		persons:   person.New(store, store),
		actors:    actor.New(store, store),
		genres:    genre.New(store, store),
		countries: country.New(store, store),
		roles:     role.New(store, store),
		castInfos: castinfo.New(store, store),
		reviews:   review.New(store, store),
		users:     user.New(store, store),
		lists:     userlist.New(store, store),
		follows:   follow.New(store, store),
		links:     newAssemblers(cfg.BaseURL),
		tokens:    cfg.Tokens,
		ready:     store,
		now:       time.Now,
		log:       logger,
		rt:        r,
	}
	s.valid = newBodyValidator(func() time.Time { return s.now() })
	s.routes()
	return s
}

// Handler exposes the configured http.Handler.
func (s *Server) Handler() http.Handler { return s.rt }

// routes declares the public HTTP API endpoints and attaches any per-route middleware.
func (s *Server) routes() {
	v := s.valid

	s.rt.Route("/movies", func(r chi.Router) {
		r.Get("/", s.listMovies)
		r.Get("/all", s.pageMovies)
		r.With(bind[movieRequest](v)).Post("/", s.createMovie)
		r.Get("/search", s.searchMovies)
		r.Get("/title/{title}", s.moviesByTitle)
		r.Get("/imdbId/{imdbId}", s.moviesByImdbID)
		r.Get("/genre/{genre}", s.moviesByGenre)
		r.Get("/country/{country}", s.moviesByCountry)
		r.Get("/year/{year}", s.moviesByYear)
		r.Get("/director/{director}", s.moviesByDirector)
		r.Get("/{id}", s.getMovie)
		r.With(bind[movieRequest](v)).Put("/{id}", s.putMovie)
		r.Delete("/{id}", s.deleteMovie)
		r.Get("/{id}/genres", s.movieGenres)
		r.Get("/{id}/countries", s.movieCountries)
		r.Get("/{id}/credits", s.movieCredits)
		r.Get("/{id}/directors", s.movieDirectors)
		r.Get("/{id}/reviews", s.movieReviews)
		r.With(bind[reviewRequest](v)).Post("/{id}/reviews", s.addMovieReview)
		r.Get("/{id}/reviews/{reviewId}", s.getMovieReview)
		r.With(bind[reviewEditRequest](v)).Put("/{id}/reviews/{reviewId}", s.editMovieReview)
		r.Delete("/{id}/reviews/{reviewId}", s.deleteMovieReview)
		r.Get("/{id}/actors", s.movieActors)
		r.With(bind[actorRef](v)).Put("/{id}/actors", s.linkMovieActor)
		r.Get("/{id}/actors/{actorId}", s.getMovieActor)
		r.Delete("/{id}/actors/{actorId}", s.unlinkMovieActor)
	})

	s.rt.Route("/persons", func(r chi.Router) {
		r.Get("/", s.listPersons)
		r.With(bind[personRequest](v)).Post("/", s.createPerson)
		r.Get("/search", s.searchPersons)
		r.Get("/{id}", s.getPerson)
		r.With(bind[personRequest](v)).Put("/{id}", s.putPerson)
		r.Delete("/{id}", s.deletePerson)
		r.Get("/{id}/country", s.personCountry)
		r.Get("/{id}/movies", s.personMovies)
		r.Get("/{id}/credits", s.personCredits)
		r.Get("/{id}/roles", s.personRoles)
	})

	s.rt.Route("/actors", func(r chi.Router) {
		r.Get("/", s.listActors)
		r.With(bind[actorRequest](v)).Post("/", s.createActor)
		r.Get("/search", s.searchActors)
		r.Get("/name/{name}", s.actorsByName)
		r.Get("/birthDate/{date}", s.actorsByBirthDate)
		r.Get("/birthCountry/{country}", s.actorsByBirthCountry)
		r.Get("/age/{age}", s.actorsByAge)
		r.Get("/{id}", s.getActor)
		r.With(bind[actorRequest](v)).Put("/{id}", s.putActor)
		r.Delete("/{id}", s.deleteActor)
		r.Get("/{id}/movies", s.actorMovies)
		r.Get("/{id}/movies/{movieId}", s.actorMovie)
	})

	s.rt.Route("/genres", func(r chi.Router) {
		r.Get("/", s.listGenres)
		r.With(bind[namedRequest](v)).Post("/", s.createGenre)
		r.Get("/{id}", s.getGenre)
		r.With(bind[namedRequest](v)).Put("/{id}", s.putGenre)
		r.Delete("/{id}", s.deleteGenre)
		r.Get("/{id}/movies", s.genreMovies)
	})

	s.rt.Route("/countries", func(r chi.Router) {
		r.Get("/", s.listCountries)
		r.With(bind[namedRequest](v)).Post("/", s.createCountry)
		r.Get("/{id}", s.getCountry)
		r.With(bind[namedRequest](v)).Put("/{id}", s.putCountry)
		r.Delete("/{id}", s.deleteCountry)
		r.Get("/{id}/movies", s.countryMovies)
		r.Get("/{id}/persons", s.countryPersons)
	})

	s.rt.Route("/roles", func(r chi.Router) {
		r.Get("/", s.listRoles)
		r.With(bind[roleRequest](v)).Post("/", s.createRole)
		r.Get("/{id}", s.getRole)
		r.With(bind[roleRequest](v)).Put("/{id}", s.putRole)
		r.Delete("/{id}", s.deleteRole)
	})

	s.rt.Route("/castinfo", func(r chi.Router) {
		r.Get("/", s.listCastInfos)
		r.With(bind[castInfoRequest](v)).Post("/", s.createCastInfo)
		r.Get("/{id}", s.getCastInfo)
		r.With(bind[castInfoRequest](v)).Put("/{id}", s.putCastInfo)
		r.Delete("/{id}", s.deleteCastInfo)
	})

	s.rt.Route("/reviews", func(r chi.Router) {
		r.Get("/", s.listReviews)
		r.Get("/all", s.pageReviews)
		r.Get("/{id}", s.getReview)
		r.With(bind[reviewRequest](v)).Put("/{id}", s.putReview)
		r.Delete("/{id}", s.deleteReview)
		r.Get("/{id}/user", s.reviewUser)
		r.Get("/{id}/movie", s.reviewMovie)
	})

	s.rt.Route("/users", func(r chi.Router) {
		r.Get("/", s.listUsers)
		r.Get("/all", s.pageUsers)
		r.With(bind[userRequest](v)).Post("/", s.createUser)
		r.Get("/search", s.searchUsers)
		r.Get("/username/{username}", s.usersByUsername)
		r.Get("/role/{role}", s.usersByRole)
		r.Get("/{id}", s.getUser)
		r.With(bind[userRequest](v)).Put("/{id}", s.putUser)
		r.Delete("/{id}", s.deleteUser)
		r.Put("/{id}/enable", s.enableUser)
		r.Get("/{id}/watchlist", s.watchlist)
		r.With(bind[movieRef](v)).Put("/{id}/watchlist", s.addToWatchlist)
		r.Delete("/{id}/watchlist/{movieId}", s.removeFromWatchlist)
		r.Get("/{id}/reviews", s.userReviews)
		r.Get("/{id}/likedMovies", s.likedMovies)
		r.Get("/{id}/ratedMovies", s.ratedMovies)
		r.Get("/{id}/lists", s.userLists)
		r.Get("/{id}/followers", s.followers)
		r.Get("/{id}/followers/{followerId}", s.getFollow)
		r.Get("/{id}/following", s.following)
		r.With(bind[userRef](v)).Put("/{id}/following", s.followUser)
		r.Delete("/{id}/following/{userId}", s.unfollowUser)
	})

	s.rt.Route("/lists", func(r chi.Router) {
		r.Get("/", s.listLists)
		r.Get("/all", s.pageLists)
		r.With(bind[userListRequest](v)).Post("/", s.createList)
		r.Get("/search", s.searchLists)
		r.Get("/{id}", s.getList)
		r.With(bind[userListRequest](v)).Put("/{id}", s.putList)
		r.Delete("/{id}", s.deleteList)
		r.Get("/{id}/user", s.listOwner)
		r.Get("/{id}/movies", s.listMovieEntries)
		r.With(bind[movieRef](v)).Put("/{id}/movies", s.addListMovie)
		r.Delete("/{id}/movies/{movieId}", s.removeListMovie)
	})

	s.rt.Get("/follows", s.listFollows)
	s.rt.Get("/follows/{id}/followers/{followerId}", s.getFollow)

	s.rt.With(bind[loginRequest](v)).Post("/login", s.login)

	// Health and metrics (unauthenticated)
	s.rt.Get("/healthz", s.healthz)
	s.rt.Get("/readyz", s.readyz)
	s.rt.Method(http.MethodGet, "/metrics", metricsHandler())
}
