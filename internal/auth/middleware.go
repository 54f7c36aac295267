package auth

import (
	"log/slog"
	"net/http"
	"strings"

	dErrors "regportal/pkg/domain-errors"
	"regportal/pkg/httputil"
	"regportal/pkg/requestcontext"
)

// Validator validates a session token. Satisfied by *Service.
type Validator interface {
	Validate(tokenString string) (*Claims, error)
}

// RequireAdmin guards write, statistics, and export routes. Requests without
// a valid Bearer token are rejected; there is no lockout or throttling.
func RequireAdmin(validator Validator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				logger.WarnContext(ctx, "admin access without token",
					"request_id", requestcontext.RequestID(ctx),
					"path", r.URL.Path,
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "missing or invalid Authorization header"))
				return
			}

			claims, err := validator.Validate(token)
			if err != nil {
				logger.WarnContext(ctx, "admin access with invalid token",
					"request_id", requestcontext.RequestID(ctx),
					"path", r.URL.Path,
					"error", err,
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid session token"))
				return
			}

			next.ServeHTTP(w, r.WithContext(requestcontext.WithAdminUser(ctx, claims.Username)))
		})
	}
}
