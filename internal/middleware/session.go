package middleware

import (
	"context"
	"net/http"

	"otakufest/internal/models"
	"otakufest/internal/store"
)

type contextKey string

const sessionContextKey contextKey = "session"

// SessionMiddleware loads the visitor's session into the request
// context so handlers and templates can read it without touching the
// cookie store themselves.
type SessionMiddleware struct {
	sessions store.SessionStore
}

// NewSessionMiddleware creates a session loading middleware
func NewSessionMiddleware(sessions store.SessionStore) *SessionMiddleware {
	return &SessionMiddleware{sessions: sessions}
}

// LoadSession adds the session to the context when the visitor is
// logged in. An invalid or absent cookie just means anonymous.
func (m *SessionMiddleware) LoadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if session := m.sessions.Get(r); session != nil {
			r = r.WithContext(WithSession(r.Context(), session))
		}
		next.ServeHTTP(w, r)
	})
}

// WithSession returns a context carrying the given session
func WithSession(ctx context.Context, session *models.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, session)
}

// GetSessionFromContext returns the loaded session, or nil for an
// anonymous visitor
func GetSessionFromContext(ctx context.Context) *models.Session {
	session, _ := ctx.Value(sessionContextKey).(*models.Session)
	return session
}
