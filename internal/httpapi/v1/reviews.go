package v1

import (
	"net/http"

	"github.com/tinoosan/cinerator/internal/catalog"
)

func (s *Server) writeReviews(w http.ResponseWriter, r *http.Request, rs []catalog.Review, err error) {
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeCollection(w, r, s.links.reviews, "reviews", mapAll(rs, toReviewDTO))
}

func (s *Server) listReviews(w http.ResponseWriter, r *http.Request) {
	rs, err := s.reviews.List(r.Context())
	s.writeReviews(w, r, rs, err)
}

func (s *Server) pageReviews(w http.ResponseWriter, r *http.Request) {
	req, err := pageRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := s.reviews.Page(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writePage(w, r, s.links.reviews, "reviews", catalog.MapPage(p, toReviewDTO), req)
}

func (s *Server) getReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	rv, err := s.reviews.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeResource(w, s.links.reviews, toReviewDTO(rv))
}

// putReview upserts; the body names both the movie and the user.
func (s *Server) putReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	body := bodyFrom[reviewRequest](r)
	body.UserID = orCaller(r, body.UserID)
	res, err := s.reviews.Put(r.Context(), id, body.input(s.now()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeUpsert(w, s.links.reviews, res.Created(), toReviewDTO(res.Value))
}

func (s *Server) deleteReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.reviews.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	noContent(w)
}

func (s *Server) reviewUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	u, err := s.reviews.User(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeResource(w, s.links.users, toUserDTO(u))
}

func (s *Server) reviewMovie(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	m, err := s.reviews.Movie(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeResource(w, s.links.movies, toMovieDTO(m))
}
