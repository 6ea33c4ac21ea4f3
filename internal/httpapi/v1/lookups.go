package v1

import (
	"net/http"

	"github.com/tinoosan/cinerator/internal/catalog"
)

// Genres

func (s *Server) listGenres(w http.ResponseWriter, r *http.Request) {
	req, err := pageRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := s.genres.List(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writePage(w, r, s.links.genres, "genres", catalog.MapPage(p, toGenreDTO), req)
}

func (s *Server) getGenre(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	g, err := s.genres.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeResource(w, s.links.genres, toGenreDTO(g))
}

func (s *Server) createGenre(w http.ResponseWriter, r *http.Request) {
	body := bodyFrom[namedRequest](r)
	g, err := s.genres.Create(r.Context(), catalog.Genre{Name: body.Name})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeCreated(w, s.links.genres, toGenreDTO(g))
}

func (s *Server) putGenre(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	body := bodyFrom[namedRequest](r)
	res, err := s.genres.Put(r.Context(), id, catalog.Genre{Name: body.Name})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeUpsert(w, s.links.genres, res.Created(), toGenreDTO(res.Value))
}

func (s *Server) deleteGenre(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.genres.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	noContent(w)
}

func (s *Server) genreMovies(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	ms, err := s.genres.Movies(r.Context(), id)
	s.writeMovies(w, r, ms, err)
}

// Countries

func (s *Server) listCountries(w http.ResponseWriter, r *http.Request) {
	req, err := pageRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := s.countries.List(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writePage(w, r, s.links.countries, "countries", catalog.MapPage(p, toCountryDTO), req)
}

func (s *Server) getCountry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	c, err := s.countries.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeResource(w, s.links.countries, toCountryDTO(c))
}

func (s *Server) createCountry(w http.ResponseWriter, r *http.Request) {
	body := bodyFrom[namedRequest](r)
	c, err := s.countries.Create(r.Context(), catalog.Country{Name: body.Name})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeCreated(w, s.links.countries, toCountryDTO(c))
}

func (s *Server) putCountry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	body := bodyFrom[namedRequest](r)
	res, err := s.countries.Put(r.Context(), id, catalog.Country{Name: body.Name})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeUpsert(w, s.links.countries, res.Created(), toCountryDTO(res.Value))
}

func (s *Server) deleteCountry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.countries.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	noContent(w)
}

func (s *Server) countryMovies(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	ms, err := s.countries.Movies(r.Context(), id)
	s.writeMovies(w, r, ms, err)
}

func (s *Server) countryPersons(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	ps, err := s.countries.Persons(r.Context(), id)
	s.writePersons(w, r, ps, err)
}

// Roles

func (s *Server) listRoles(w http.ResponseWriter, r *http.Request) {
	req, err := pageRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := s.roles.List(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writePage(w, r, s.links.roles, "roles", catalog.MapPage(p, toRoleDTO), req)
}

func (s *Server) getRole(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	rl, err := s.roles.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeResource(w, s.links.roles, toRoleDTO(rl))
}

func (s *Server) createRole(w http.ResponseWriter, r *http.Request) {
	body := bodyFrom[roleRequest](r)
	rl, err := s.roles.Create(r.Context(), catalog.Role{Name: body.Role})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeCreated(w, s.links.roles, toRoleDTO(rl))
}

func (s *Server) putRole(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	body := bodyFrom[roleRequest](r)
	res, err := s.roles.Put(r.Context(), id, catalog.Role{Name: body.Role})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeUpsert(w, s.links.roles, res.Created(), toRoleDTO(res.Value))
}

func (s *Server) deleteRole(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.roles.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	noContent(w)
}
