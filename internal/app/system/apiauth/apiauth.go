// Package apiauth guards the JSON API with a single bearer token.
// The token itself is never configured in plain text; config carries a
// bcrypt hash of it, so a leaked config file does not leak the token.
package apiauth

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Middleware returns a chi-compatible middleware that rejects requests
// whose Authorization header does not carry the expected bearer token.
// An empty tokenHash disables auth entirely (dev mode); that choice is
// logged loudly at construction so it cannot happen silently in prod.
func Middleware(tokenHash string, logger *zap.Logger) func(http.Handler) http.Handler {
	if tokenHash == "" {
		logger.Warn("api auth disabled: no api_token_hash configured")
		return func(next http.Handler) http.Handler { return next }
	}

	hash := []byte(tokenHash)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				w.Header().Set("WWW-Authenticate", "Bearer")
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}
			if err := bcrypt.CompareHashAndPassword(hash, []byte(token)); err != nil {
				logger.Warn("rejected api request with bad token",
					zap.String("remote_addr", r.RemoteAddr))
				http.Error(w, "invalid token", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(h, prefix) {
		return "", false
	}
	token := strings.TrimSpace(h[len(prefix):])
	return token, token != ""
}
