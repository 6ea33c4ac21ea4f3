package v1

import (
	"net/http"
	"strconv"

	"github.com/tinoosan/cinerator/internal/catalog"
	"github.com/tinoosan/cinerator/internal/errs"
)

func (s *Server) writeMovies(w http.ResponseWriter, r *http.Request, ms []catalog.Movie, err error) {
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeCollection(w, r, s.links.movies, "movies", mapAll(ms, toMovieDTO))
}

func (s *Server) listMovies(w http.ResponseWriter, r *http.Request) {
	ms, err := s.movies.List(r.Context())
	s.writeMovies(w, r, ms, err)
}

func (s *Server) pageMovies(w http.ResponseWriter, r *http.Request) {
	req, err := pageRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := s.movies.Page(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writePage(w, r, s.links.movies, "movies", catalog.MapPage(p, toMovieDTO), req)
}

func (s *Server) getMovie(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	m, err := s.movies.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeResource(w, s.links.movies, toMovieDTO(m))
}

func (s *Server) createMovie(w http.ResponseWriter, r *http.Request) {
	body := bodyFrom[movieRequest](r)
	m, err := s.movies.Create(r.Context(), body.input())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeCreated(w, s.links.movies, toMovieDTO(m))
}

func (s *Server) putMovie(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	body := bodyFrom[movieRequest](r)
	res, err := s.movies.Put(r.Context(), id, body.input())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeUpsert(w, s.links.movies, res.Created(), toMovieDTO(res.Value))
}

func (s *Server) deleteMovie(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.movies.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	noContent(w)
}

func (s *Server) searchMovies(w http.ResponseWriter, r *http.Request) {
	q := newQueryParser(r)
	f := catalog.MovieFilter{
		Title:       q.text("title"),
		ReleaseDate: q.date("releaseDate"),
		ReleaseYear: q.integer("releaseYear"),
		Runtime:     q.text("runtime"),
		ImdbID:      q.text("imdbId"),
		Genre:       q.text("genre"),
		Country:     q.text("country"),
	}
	if q.err != nil {
		s.writeError(w, r, q.err)
		return
	}
	ms, err := s.movies.Search(r.Context(), f)
	s.writeMovies(w, r, ms, err)
}

func (s *Server) moviesByTitle(w http.ResponseWriter, r *http.Request) {
	ms, err := s.movies.ByTitle(r.Context(), pathText(r, "title"))
	s.writeMovies(w, r, ms, err)
}

func (s *Server) moviesByImdbID(w http.ResponseWriter, r *http.Request) {
	ms, err := s.movies.Search(r.Context(), catalog.MovieFilter{ImdbID: pathText(r, "imdbId"), ImdbExact: true})
	s.writeMovies(w, r, ms, err)
}

func (s *Server) moviesByGenre(w http.ResponseWriter, r *http.Request) {
	ms, err := s.movies.Search(r.Context(), catalog.MovieFilter{Genre: pathText(r, "genre")})
	s.writeMovies(w, r, ms, err)
}

func (s *Server) moviesByCountry(w http.ResponseWriter, r *http.Request) {
	ms, err := s.movies.Search(r.Context(), catalog.MovieFilter{Country: pathText(r, "country")})
	s.writeMovies(w, r, ms, err)
}

func (s *Server) moviesByYear(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(pathText(r, "year"))
	if err != nil {
		s.writeError(w, r, errs.Invalid("year must be an integer"))
		return
	}
	ms, err := s.movies.Search(r.Context(), catalog.MovieFilter{ReleaseYear: &year})
	s.writeMovies(w, r, ms, err)
}

func (s *Server) moviesByDirector(w http.ResponseWriter, r *http.Request) {
	ms, err := s.movies.Search(r.Context(), catalog.MovieFilter{Director: pathText(r, "director")})
	s.writeMovies(w, r, ms, err)
}

func (s *Server) movieGenres(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	gs, err := s.movies.Genres(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeCollection(w, r, s.links.genres, "genres", mapAll(gs, toGenreDTO))
}

func (s *Server) movieCountries(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	cs, err := s.movies.Countries(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeCollection(w, r, s.links.countries, "countries", mapAll(cs, toCountryDTO))
}

func (s *Server) movieCredits(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	cs, err := s.movies.Credits(r.Context(), id)
	s.writeCastInfos(w, r, cs, err)
}

func (s *Server) movieDirectors(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	ps, err := s.movies.Directors(r.Context(), id)
	s.writePersons(w, r, ps, err)
}

func (s *Server) movieReviews(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	rs, err := s.reviews.ForMovie(r.Context(), id)
	s.writeReviews(w, r, rs, err)
}

func (s *Server) addMovieReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	body := bodyFrom[reviewRequest](r)
	body.UserID = orCaller(r, body.UserID)
	rv, err := s.reviews.AddToMovie(r.Context(), id, body.input(s.now()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeCreated(w, s.links.reviews, toReviewDTO(rv))
}

func (s *Server) getMovieReview(w http.ResponseWriter, r *http.Request) {
	ids, err := pathIDs(r, "id", "reviewId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	rv, err := s.reviews.GetForMovie(r.Context(), ids[0], ids[1])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeResource(w, s.links.reviews, toReviewDTO(rv))
}

// editMovieReview only updates; a review missing under the movie is 404.
func (s *Server) editMovieReview(w http.ResponseWriter, r *http.Request) {
	ids, err := pathIDs(r, "id", "reviewId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	body := bodyFrom[reviewEditRequest](r)
	rv, err := s.reviews.EditForMovie(r.Context(), ids[0], ids[1], body.edit())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeUpsert(w, s.links.reviews, false, toReviewDTO(rv))
}

func (s *Server) deleteMovieReview(w http.ResponseWriter, r *http.Request) {
	ids, err := pathIDs(r, "id", "reviewId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.reviews.RemoveFromMovie(r.Context(), ids[0], ids[1]); err != nil {
		s.writeError(w, r, err)
		return
	}
	noContent(w)
}

func (s *Server) movieActors(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	as, err := s.actors.ForMovie(r.Context(), id)
	s.writeActors(w, r, as, err)
}

func (s *Server) linkMovieActor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	body := bodyFrom[actorRef](r)
	a, err := s.actors.Link(r.Context(), id, body.ActorID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeResource(w, s.links.actors, toActorDTO(a))
}

func (s *Server) getMovieActor(w http.ResponseWriter, r *http.Request) {
	ids, err := pathIDs(r, "id", "actorId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	a, err := s.actors.InMovie(r.Context(), ids[0], ids[1])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeResource(w, s.links.actors, toActorDTO(a))
}

func (s *Server) unlinkMovieActor(w http.ResponseWriter, r *http.Request) {
	ids, err := pathIDs(r, "id", "actorId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.actors.Unlink(r.Context(), ids[0], ids[1]); err != nil {
		s.writeError(w, r, err)
		return
	}
	noContent(w)
}
