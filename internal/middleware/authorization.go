package middleware

import (
	"net/http"

	"go.uber.org/zap"
)

// RequireAdmin rejects any request whose authenticated identity does not
// carry the admin flag. It must run inside RequireUser; a missing identity
// is treated as non-admin, never as a pass.
func RequireAdmin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := GetUserID(r.Context())
			if !ok {
				logger.Warn("Identity not found in context")
				RespondWithError(w, http.StatusForbidden, NameForbidden, "insufficient permissions")
				return
			}

			if !GetIsAdmin(r.Context()) {
				logger.Warn("Non-admin user attempted to access admin endpoint",
					zap.String("user_id", userID.String()),
				)
				RespondWithError(w, http.StatusForbidden, NameForbidden, "insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
