// Package admin gates administrative endpoints behind a bearer token check.
package admin

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/Sattwik999/Trust-Score-Module/internal/jwttoken"
	dErrors "github.com/Sattwik999/Trust-Score-Module/pkg/domain-errors"
	"github.com/Sattwik999/Trust-Score-Module/pkg/platform/httputil"
	"github.com/Sattwik999/Trust-Score-Module/pkg/requestcontext"
)

// RequireAdminToken validates the Authorization bearer token and injects the
// admin subject into the request context.
func RequireAdminToken(tokens *jwttoken.Service, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "admin token required"))
				return
			}

			claims, err := tokens.ValidateAdminToken(token)
			if err != nil {
				if logger != nil {
					logger.WarnContext(ctx, "admin token rejected",
						"request_id", requestcontext.RequestID(ctx),
						"error", err,
					)
				}
				httputil.WriteError(w, err)
				return
			}

			ctx = requestcontext.WithAdminSubject(ctx, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
