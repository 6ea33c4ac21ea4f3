package v1

import (
	"net/http"

	"github.com/tinoosan/cinerator/internal/catalog"
)

func (s *Server) toPerson(p catalog.Person) personDTO { return toPersonDTO(p, s.persons.Now()) }

func (s *Server) writePersons(w http.ResponseWriter, r *http.Request, ps []catalog.Person, err error) {
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeCollection(w, r, s.links.persons, "persons", mapAll(ps, s.toPerson))
}

func (s *Server) listPersons(w http.ResponseWriter, r *http.Request) {
	req, err := pageRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := s.persons.List(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writePage(w, r, s.links.persons, "persons", catalog.MapPage(p, s.toPerson), req)
}

func (s *Server) searchPersons(w http.ResponseWriter, r *http.Request) {
	q := newQueryParser(r)
	f := catalog.PersonFilter{
		Name:      q.text("name"),
		BirthDate: q.date("birthDate"),
		DeathDate: q.date("deathDate"),
		Height:    q.text("height"),
		Country:   q.text("country"),
		Age:       q.integer("age"),
	}
	if q.err != nil {
		s.writeError(w, r, q.err)
		return
	}
	ps, err := s.persons.Search(r.Context(), f)
	s.writePersons(w, r, ps, err)
}

func (s *Server) getPerson(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := s.persons.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeResource(w, s.links.persons, s.toPerson(p))
}

func (s *Server) createPerson(w http.ResponseWriter, r *http.Request) {
	body := bodyFrom[personRequest](r)
	p, err := s.persons.Create(r.Context(), body.input())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeCreated(w, s.links.persons, s.toPerson(p))
}

func (s *Server) putPerson(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	body := bodyFrom[personRequest](r)
	res, err := s.persons.Put(r.Context(), id, body.input())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeUpsert(w, s.links.persons, res.Created(), s.toPerson(res.Value))
}

func (s *Server) deletePerson(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.persons.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	noContent(w)
}

func (s *Server) personCountry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	c, err := s.persons.Country(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeResource(w, s.links.countries, toCountryDTO(c))
}

// personMovies narrows to one credit role when ?role= is given.
func (s *Server) personMovies(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	ms, err := s.persons.Movies(r.Context(), id, newQueryParser(r).text("role"))
	s.writeMovies(w, r, ms, err)
}

func (s *Server) personCredits(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	cs, err := s.persons.Credits(r.Context(), id)
	s.writeCastInfos(w, r, cs, err)
}

func (s *Server) personRoles(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	rs, err := s.persons.Roles(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeCollection(w, r, s.links.roles, "roles", mapAll(rs, toRoleDTO))
}
