package middleware

import (
	"net/http"

	"github.com/ndewijer/Investment-Admin-Console/internal/api/response"
	apperrors "github.com/ndewijer/Investment-Admin-Console/internal/errors"
)

// SessionChecker reports whether the admin console is currently unlocked.
type SessionChecker interface {
	Authenticated() bool
}

// RequireSession rejects requests with 401 Unauthorized while no admin session
// is open. The gate is process-wide: once unlocked it stays unlocked until logout.
func RequireSession(sessions SessionChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !sessions.Authenticated() {
				response.RespondError(w, http.StatusUnauthorized, "authentication required", apperrors.ErrNotAuthenticated.Error())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
