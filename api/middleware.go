package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/rafaelcosta/card-bin-api/models"
)

// Middleware carries the auth and rate limiting dependencies injected into
// the protected routes
type Middleware struct {
	Auth    *TokenAuthority
	Limiter *RateLimiter
	Metrics *Metrics
}

// BearerToken extracts the bearer credential from the Authorization header,
// or returns empty when none is supplied
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// Authenticate verifies the bearer token signature before passing the
// request on. Missing credential is 401, failed verification is 403.
func (m Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		token := BearerToken(r)
		email, err := m.Auth.Verify(token)
		if err == ErrTokenMissing {
			zap.S().Errorw("token missing", "url", r.URL)
			m.Metrics.AuthFailures.WithLabelValues("missing").Inc()
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(models.ErrorResponse{Error: "token missing"})
			return
		}
		if err != nil {
			zap.S().Errorw("token verification failed", "url", r.URL)
			m.Metrics.AuthFailures.WithLabelValues("invalid").Inc()
			w.WriteHeader(http.StatusForbidden)
			_ = json.NewEncoder(w).Encode(models.ErrorResponse{Error: "token verification failed"})
			return
		}

		zap.S().Debugf("token for %s authenticated", email)
		next.ServeHTTP(w, r)
	})
}

// RateLimit reserves one daily lookup slot for the presented token and
// rejects with 429 once the ceiling is reached. Must run after Authenticate
// so the token is known to be well formed.
func (m Middleware) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := BearerToken(r)
		if err := m.Limiter.Reserve(token); err != nil {
			zap.S().Warnw("daily quota exceeded", "url", r.URL)
			m.Metrics.QuotaRejections.Inc()
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(models.ErrorResponse{Error: "too many requests for today"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
