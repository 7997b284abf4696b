// Package requesttime captures one instant per request so every date derived
// while answering (the birth-year ceiling, the print date) agrees.
package requesttime

import (
	"net/http"
	"time"

	"crsc/pkg/requestcontext"
)

// Middleware stores the current time in the request context.
func Middleware(next http.Handler) http.Handler {
	return Clocked(time.Now)(next)
}

// Clocked is Middleware with an explicit clock, for tests that pin "today".
func Clocked(clock func() time.Time) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := requestcontext.WithTime(r.Context(), clock())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
