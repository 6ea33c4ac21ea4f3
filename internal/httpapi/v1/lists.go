package v1

import (
	"net/http"

	"github.com/tinoosan/cinerator/internal/catalog"
)

func (s *Server) writeLists(w http.ResponseWriter, r *http.Request, ls []catalog.UserList, err error) {
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeCollection(w, r, s.links.lists, "lists", mapAll(ls, toUserListDTO))
}

func (s *Server) listLists(w http.ResponseWriter, r *http.Request) {
	ls, err := s.lists.List(r.Context())
	s.writeLists(w, r, ls, err)
}

func (s *Server) pageLists(w http.ResponseWriter, r *http.Request) {
	req, err := pageRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := s.lists.Page(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writePage(w, r, s.links.lists, "lists", catalog.MapPage(p, toUserListDTO), req)
}

func (s *Server) searchLists(w http.ResponseWriter, r *http.Request) {
	q := newQueryParser(r)
	f := catalog.UserListFilter{
		Name:        q.text("name"),
		Description: q.text("description"),
		UserID:      q.id("userId"),
	}
	if q.err != nil {
		s.writeError(w, r, q.err)
		return
	}
	ls, err := s.lists.Search(r.Context(), f)
	s.writeLists(w, r, ls, err)
}

func (s *Server) getList(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	l, err := s.lists.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeResource(w, s.links.lists, toUserListDTO(l))
}

func (s *Server) createList(w http.ResponseWriter, r *http.Request) {
	body := bodyFrom[userListRequest](r)
	l, err := s.lists.Create(r.Context(), body.input())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeCreated(w, s.links.lists, toUserListDTO(l))
}

func (s *Server) putList(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	body := bodyFrom[userListRequest](r)
	res, err := s.lists.Put(r.Context(), id, body.input())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeUpsert(w, s.links.lists, res.Created(), toUserListDTO(res.Value))
}

func (s *Server) deleteList(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.lists.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	noContent(w)
}

func (s *Server) listOwner(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	u, err := s.lists.User(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeResource(w, s.links.users, toUserDTO(u))
}

func (s *Server) listMovieEntries(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	ms, err := s.lists.Movies(r.Context(), id)
	s.writeMovies(w, r, ms, err)
}

func (s *Server) addListMovie(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	body := bodyFrom[movieRef](r)
	m, err := s.lists.AddMovie(r.Context(), id, body.MovieID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeResource(w, s.links.movies, toMovieDTO(m))
}

func (s *Server) removeListMovie(w http.ResponseWriter, r *http.Request) {
	ids, err := pathIDs(r, "id", "movieId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.lists.RemoveMovie(r.Context(), ids[0], ids[1]); err != nil {
		s.writeError(w, r, err)
		return
	}
	noContent(w)
}
