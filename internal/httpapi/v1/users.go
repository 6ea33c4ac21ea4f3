package v1

import (
	"net/http"

	"github.com/tinoosan/cinerator/internal/catalog"
	"github.com/tinoosan/cinerator/internal/errs"
)

func (s *Server) writeUsers(w http.ResponseWriter, r *http.Request, us []catalog.User, err error) {
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeCollection(w, r, s.links.users, "users", mapAll(us, toUserDTO))
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	us, err := s.users.List(r.Context())
	s.writeUsers(w, r, us, err)
}

func (s *Server) pageUsers(w http.ResponseWriter, r *http.Request) {
	req, err := pageRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := s.users.Page(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writePage(w, r, s.links.users, "users", catalog.MapPage(p, toUserDTO), req)
}

func (s *Server) searchUsers(w http.ResponseWriter, r *http.Request) {
	q := newQueryParser(r)
	us, err := s.users.Search(r.Context(), catalog.UserFilter{
		Name:     q.text("name"),
		Username: q.text("username"),
		Email:    q.text("email"),
		Role:     q.text("role"),
	})
	s.writeUsers(w, r, us, err)
}

func (s *Server) usersByUsername(w http.ResponseWriter, r *http.Request) {
	us, err := s.users.ByUsername(r.Context(), pathText(r, "username"))
	s.writeUsers(w, r, us, err)
}

func (s *Server) usersByRole(w http.ResponseWriter, r *http.Request) {
	us, err := s.users.ByRole(r.Context(), pathText(r, "role"))
	s.writeUsers(w, r, us, err)
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	u, err := s.users.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeResource(w, s.links.users, toUserDTO(u))
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	body := bodyFrom[userRequest](r)
	u, err := s.users.Create(r.Context(), body.input())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeCreated(w, s.links.users, toUserDTO(u))
}

func (s *Server) putUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	body := bodyFrom[userRequest](r)
	res, err := s.users.Put(r.Context(), id, body.input())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeUpsert(w, s.links.users, res.Created(), toUserDTO(res.Value))
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.users.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	noContent(w)
}

func (s *Server) enableUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if _, err := s.users.Enable(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	noContent(w)
}

// Watchlist

func (s *Server) watchlist(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	ms, err := s.users.Watchlist(r.Context(), id)
	s.writeMovies(w, r, ms, err)
}

func (s *Server) addToWatchlist(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	body := bodyFrom[movieRef](r)
	m, err := s.users.AddToWatchlist(r.Context(), id, body.MovieID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeResource(w, s.links.movies, toMovieDTO(m))
}

func (s *Server) removeFromWatchlist(w http.ResponseWriter, r *http.Request) {
	ids, err := pathIDs(r, "id", "movieId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.users.RemoveFromWatchlist(r.Context(), ids[0], ids[1]); err != nil {
		s.writeError(w, r, err)
		return
	}
	noContent(w)
}

// Activity

func (s *Server) userReviews(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	rs, err := s.users.Reviews(r.Context(), id)
	s.writeReviews(w, r, rs, err)
}

func (s *Server) likedMovies(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	ms, err := s.users.LikedMovies(r.Context(), id)
	s.writeMovies(w, r, ms, err)
}

func (s *Server) ratedMovies(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	q := newQueryParser(r)
	rating := q.integer("rating")
	if q.err != nil {
		s.writeError(w, r, q.err)
		return
	}
	if rating == nil {
		s.writeError(w, r, errs.Invalid("rating is required"))
		return
	}
	ms, err := s.users.RatedMovies(r.Context(), id, *rating)
	s.writeMovies(w, r, ms, err)
}

func (s *Server) userLists(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	ls, err := s.users.Lists(r.Context(), id)
	s.writeLists(w, r, ls, err)
}
