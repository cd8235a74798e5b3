package middleware

import (
	"net/http"

	"golang.org/x/time/rate"
)

// NewRateLimit rejects requests with 429 once the shared limiter is
// exhausted. The limiter is process-wide, not per-client.
func NewRateLimit(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
