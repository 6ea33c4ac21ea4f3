package v1

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/tinoosan/cinerator/internal/errs"
)

// problem is the error body of every non-2xx response.
type problem struct {
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func writeProblem(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(problem{Title: http.StatusText(status), Status: status, Detail: detail})
}

var sentinelPrefixes = []string{
	errs.ErrInvalid.Error() + ": ",
	errs.ErrNotFound.Error() + ": ",
	errs.ErrConflict.Error() + ": ",
	errs.ErrForbidden.Error() + ": ",
	errs.ErrUnauthenticated.Error() + ": ",
}

func detailOf(err error) string {
	msg := err.Error()
	for _, p := range sentinelPrefixes {
		msg = strings.TrimPrefix(msg, p)
	}
	return msg
}

// writeError is the single translation point from service errors to HTTP.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		writeProblem(w, http.StatusNotFound, detailOf(err))
	case errors.Is(err, errs.ErrUnauthenticated):
		// Login failures answer 404 like an unknown user.
		writeProblem(w, http.StatusNotFound, detailOf(err))
	case errors.Is(err, errs.ErrInvalid):
		writeProblem(w, http.StatusBadRequest, detailOf(err))
	case errors.Is(err, errs.ErrConflict):
		writeProblem(w, http.StatusConflict, detailOf(err))
	case errors.Is(err, errs.ErrForbidden):
		writeProblem(w, http.StatusForbidden, detailOf(err))
	default:
		s.log.Error("request failed", "req_id", reqID(r), "method", r.Method, "path", r.URL.Path, "err", err)
		writeProblem(w, http.StatusInternalServerError, "an unexpected error occurred")
	}
}
