package session

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// CookieName is the browser cookie carrying the opaque session token.
const CookieName = "uh_session"

// Context key for the resolved user id, preventing collisions with other packages.
type contextKey string

const contextUserIDKey contextKey = "session_user_id"

// TokenFromRequest extracts the raw session token from the request cookie.
// It returns "" when the cookie is absent or empty.
func TokenFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// IdentityExtractorMiddleware resolves the session cookie against the Manager
// and injects the bound user id into the request context. It does NOT interrupt
// the request on a missing or invalid token; the user is simply anonymous and
// the per-route gate decides what that means.
func IdentityExtractorMiddleware(m *Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromRequest(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID, ok := m.Current(token)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), contextUserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext safely extracts the authenticated user id from the request
// context. The second return value is false for anonymous requests.
func UserIDFromContext(r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(contextUserIDKey).(uuid.UUID)
	return userID, ok
}

// RequireUser gates a protected route: anonymous requests are redirected to the
// login entry point instead of failing loudly.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserIDFromContext(r); !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
