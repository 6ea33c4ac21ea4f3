package v1

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

type ctxKey string

const ctxKeyBody ctxKey = "requestBody"

const maxBodyBytes = 1 << 20

// bind decodes the JSON body into T, validates it and stores it in the
// request context for bodyFrom.
func bind[T any](v *bodyValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !requireJSON(w, r) {
				return
			}
			var body T
			dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
			dec.DisallowUnknownFields()
			if err := dec.Decode(&body); err != nil {
				writeProblem(w, http.StatusBadRequest, decodeDetail(err))
				return
			}
			if dec.More() {
				writeProblem(w, http.StatusBadRequest, "request body must hold a single JSON object")
				return
			}
			if err := v.Validate(body); err != nil {
				writeProblem(w, http.StatusBadRequest, detailOf(err))
				return
			}
			ctx := context.WithValue(r.Context(), ctxKeyBody, body)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bodyFrom returns the value stored by bind.
func bodyFrom[T any](r *http.Request) T {
	v, _ := r.Context().Value(ctxKeyBody).(T)
	return v
}

func decodeDetail(err error) string {
	var syntax *json.SyntaxError
	var typ *json.UnmarshalTypeError
	var tooLarge *http.MaxBytesError
	switch {
	case errors.Is(err, io.EOF):
		return "request body must not be empty"
	case errors.As(err, &syntax):
		return fmt.Sprintf("malformed JSON at offset %d", syntax.Offset)
	case errors.As(err, &typ):
		return fmt.Sprintf("field %s must be of type %s", typ.Field, typ.Type)
	case errors.As(err, &tooLarge):
		return "request body is too large"
	default:
		return "malformed JSON body: " + err.Error()
	}
}
