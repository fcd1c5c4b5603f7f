// Package requestmeta stamps each request with an ID and arrival time so
// handlers and services share one view of both.
package requestmeta

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Sattwik999/Trust-Score-Module/pkg/requestcontext"
)

// Middleware injects a request ID (honoring an inbound X-Request-ID) and the
// request arrival time into the context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		ctx = requestcontext.WithTime(ctx, time.Now())

		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
