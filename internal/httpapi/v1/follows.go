package v1

import (
	"net/http"

	"github.com/tinoosan/cinerator/internal/catalog"
)

func (s *Server) listFollows(w http.ResponseWriter, r *http.Request) {
	req, err := pageRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := s.follows.List(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writePage(w, r, s.links.follows, "follows", catalog.MapPage(p, toFollowDTO), req)
}

// getFollow serves both /follows/{id}/followers/{followerId} and its
// /users alias.
func (s *Server) getFollow(w http.ResponseWriter, r *http.Request) {
	ids, err := pathIDs(r, "id", "followerId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	f, err := s.follows.Get(r.Context(), ids[0], ids[1])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeResource(w, s.links.follows, toFollowDTO(f))
}

func (s *Server) followers(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	us, err := s.follows.Followers(r.Context(), id)
	s.writeUsers(w, r, us, err)
}

func (s *Server) following(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	us, err := s.follows.Following(r.Context(), id)
	s.writeUsers(w, r, us, err)
}

// followUser makes {id} a follower of the user named in the body.
func (s *Server) followUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	body := bodyFrom[userRef](r)
	f, err := s.follows.Follow(r.Context(), body.UserID, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeCreated(w, s.links.follows, toFollowDTO(f))
}

func (s *Server) unfollowUser(w http.ResponseWriter, r *http.Request) {
	ids, err := pathIDs(r, "id", "userId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.follows.Unfollow(r.Context(), ids[1], ids[0]); err != nil {
		s.writeError(w, r, err)
		return
	}
	noContent(w)
}
