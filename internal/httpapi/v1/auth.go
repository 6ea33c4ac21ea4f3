package v1

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/tinoosan/cinerator/internal/auth"
)

const ctxKeyClaims ctxKey = "authClaims"

func parseBearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return "", false
	}
	if !strings.HasPrefix(h, "Bearer ") && !strings.HasPrefix(h, "bearer ") {
		return "", false
	}
	return strings.TrimSpace(h[len("Bearer "):]), true
}

// publicPaths stay reachable without a token when auth is enforced.
var publicPaths = map[string]bool{
	"/login":   true,
	"/healthz": true,
	"/readyz":  true,
	"/metrics": true,
}

// requireBearer enforces Authorization: Bearer <JWT> on every non-public path.
func requireBearer(tokens *auth.Tokens) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if publicPaths[r.URL.Path] || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}
			tok, ok := parseBearerToken(r)
			if !ok {
				writeProblem(w, http.StatusUnauthorized, "missing bearer token")
				return
			}
			claims, err := tokens.Verify(tok)
			if err != nil {
				writeProblem(w, http.StatusUnauthorized, "invalid bearer token")
				return
			}
			ctx := context.WithValue(r.Context(), ctxKeyClaims, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// claimsFrom returns the verified token claims stored by requireBearer.
func claimsFrom(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(ctxKeyClaims).(*auth.Claims)
	return c, ok && c != nil
}

// orCaller returns id, or the user id of the bearer token when id is unset.
func orCaller(r *http.Request, id uuid.UUID) uuid.UUID {
	if id != uuid.Nil {
		return id
	}
	c, ok := claimsFrom(r.Context())
	if !ok {
		return uuid.Nil
	}
	sub, err := uuid.Parse(c.Subject)
	if err != nil {
		return uuid.Nil
	}
	return sub
}
