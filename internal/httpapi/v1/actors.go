package v1

import (
	"net/http"

	"github.com/tinoosan/cinerator/internal/catalog"
	"github.com/tinoosan/cinerator/internal/errs"
)

func (s *Server) writeActors(w http.ResponseWriter, r *http.Request, as []catalog.Actor, err error) {
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeCollection(w, r, s.links.actors, "actors", mapAll(as, toActorDTO))
}

func (s *Server) listActors(w http.ResponseWriter, r *http.Request) {
	as, err := s.actors.List(r.Context())
	s.writeActors(w, r, as, err)
}

func (s *Server) searchActors(w http.ResponseWriter, r *http.Request) {
	q := newQueryParser(r)
	f := catalog.ActorFilter{
		Name:         q.text("name"),
		BirthDate:    q.date("birthDate"),
		BirthCountry: q.text("birthCountry"),
		Age:          q.integer("age"),
	}
	if q.err != nil {
		s.writeError(w, r, q.err)
		return
	}
	as, err := s.actors.Search(r.Context(), f)
	s.writeActors(w, r, as, err)
}

func (s *Server) actorsByName(w http.ResponseWriter, r *http.Request) {
	as, err := s.actors.Search(r.Context(), catalog.ActorFilter{Name: pathText(r, "name"), NameExact: true})
	s.writeActors(w, r, as, err)
}

func (s *Server) actorsByBirthDate(w http.ResponseWriter, r *http.Request) {
	d, err := parseDate("birthDate", pathText(r, "date"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if d == nil {
		s.writeError(w, r, errs.Invalid("birthDate is required"))
		return
	}
	as, err := s.actors.Search(r.Context(), catalog.ActorFilter{BirthDate: d})
	s.writeActors(w, r, as, err)
}

func (s *Server) actorsByBirthCountry(w http.ResponseWriter, r *http.Request) {
	as, err := s.actors.Search(r.Context(), catalog.ActorFilter{BirthCountry: pathText(r, "country")})
	s.writeActors(w, r, as, err)
}

func (s *Server) actorsByAge(w http.ResponseWriter, r *http.Request) {
	age, err := parseInt("age", pathText(r, "age"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if age == nil {
		s.writeError(w, r, errs.Invalid("age is required"))
		return
	}
	as, err := s.actors.Search(r.Context(), catalog.ActorFilter{Age: age})
	s.writeActors(w, r, as, err)
}

func (s *Server) getActor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	a, err := s.actors.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeResource(w, s.links.actors, toActorDTO(a))
}

func (s *Server) createActor(w http.ResponseWriter, r *http.Request) {
	body := bodyFrom[actorRequest](r)
	a, err := s.actors.Create(r.Context(), body.input())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeCreated(w, s.links.actors, toActorDTO(a))
}

func (s *Server) putActor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	body := bodyFrom[actorRequest](r)
	res, err := s.actors.Put(r.Context(), id, body.input())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeUpsert(w, s.links.actors, res.Created(), toActorDTO(res.Value))
}

func (s *Server) deleteActor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.actors.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	noContent(w)
}

func (s *Server) actorMovies(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	ms, err := s.actors.Movies(r.Context(), id)
	s.writeMovies(w, r, ms, err)
}

func (s *Server) actorMovie(w http.ResponseWriter, r *http.Request) {
	ids, err := pathIDs(r, "id", "movieId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	m, err := s.actors.Movie(r.Context(), ids[0], ids[1])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeResource(w, s.links.movies, toMovieDTO(m))
}
