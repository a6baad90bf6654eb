package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"

	"otakufest/internal/store"

	"github.com/gorilla/sessions"
)

const csrfTokenKey = "csrf_token"

// CSRFMiddleware guards the form posts (login, register, buy, checkout)
// with a per-session token rendered as a hidden field.
type CSRFMiddleware struct {
	sessions sessions.Store
}

func NewCSRFMiddleware(sessions sessions.Store) *CSRFMiddleware {
	return &CSRFMiddleware{sessions: sessions}
}

// EnsureToken makes sure the session carries a CSRF token, generating
// one on first sight, and returns the handler chain unchanged otherwise.
func (m *CSRFMiddleware) EnsureToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, _ := m.sessions.Get(r, store.SessionName)
		if _, ok := sess.Values[csrfTokenKey].(string); !ok {
			token, err := generateCSRFToken()
			if err != nil {
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}
			sess.Values[csrfTokenKey] = token
			if err := sess.Save(r, w); err != nil {
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// Protect rejects state-changing requests whose csrf_token form value
// does not match the session token.
func (m *CSRFMiddleware) Protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}

		sess, _ := m.sessions.Get(r, store.SessionName)
		expected, ok := sess.Values[csrfTokenKey].(string)
		if !ok || expected == "" {
			http.Error(w, "Invalid CSRF token", http.StatusForbidden)
			return
		}

		got := r.FormValue(csrfTokenKey)
		if got == "" {
			got = r.Header.Get("X-CSRF-Token")
		}
		if subtle.ConstantTimeCompare([]byte(expected), []byte(got)) != 1 {
			http.Error(w, "Invalid CSRF token", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// TokenFromSession returns the current CSRF token for rendering into
// forms. Empty until EnsureToken has run for this session.
func (m *CSRFMiddleware) TokenFromSession(r *http.Request) string {
	sess, _ := m.sessions.Get(r, store.SessionName)
	token, _ := sess.Values[csrfTokenKey].(string)
	return token
}

func generateCSRFToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
