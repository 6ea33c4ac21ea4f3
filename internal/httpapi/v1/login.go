package v1

import (
	"net/http"
)

// login answers 404 for any failed attempt, matching an unknown user.
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	body := bodyFrom[loginRequest](r)
	u, err := s.users.Authenticate(r.Context(), body.Username, body.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := tokenDTO{}
	if s.tokens != nil {
		tok, err := s.tokens.Issue(u.ID.String(), u.Username, u.Role)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		out.Token = tok
	}
	s.log.Info("user logged in", "req_id", reqID(r), "user_id", u.ID)
	toJSON(w, http.StatusOK, out)
}
