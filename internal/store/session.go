// Package store holds the storefront's client-local state: the
// authenticated session, the pending order draft, and the single-use
// order record. Each is a typed single-writer slot over one cookie
// session, injected into the workflows that read it rather than held
// in a global.
package store

import (
	"net/http"

	"otakufest/internal/models"

	"github.com/gorilla/sessions"
)

// SessionName is the cookie session shared by all three slots
const SessionName = "session"

const (
	authKey  = "auth"
	draftKey = "ticket_order"
	orderKey = "order_success"
)

// SessionStore holds the authentication token and user profile.
// Written only at login, cleared only by logout.
type SessionStore interface {
	Get(r *http.Request) *models.Session
	Set(w http.ResponseWriter, r *http.Request, session *models.Session) error
	Clear(w http.ResponseWriter, r *http.Request) error
}

type cookieSessionStore struct {
	store sessions.Store
}

// NewSessionStore creates a session slot over the given cookie store
func NewSessionStore(store sessions.Store) SessionStore {
	return &cookieSessionStore{store: store}
}

// Get returns the stored session, or nil when the visitor is not
// logged in. A corrupt cookie reads as logged out rather than erroring.
func (s *cookieSessionStore) Get(r *http.Request) *models.Session {
	sess, err := s.store.Get(r, SessionName)
	if err != nil {
		return nil
	}
	auth, ok := sess.Values[authKey].(*models.Session)
	if !ok || auth.Token == "" {
		return nil
	}
	return auth
}

func (s *cookieSessionStore) Set(w http.ResponseWriter, r *http.Request, session *models.Session) error {
	sess, _ := s.store.Get(r, SessionName)
	sess.Values[authKey] = session
	return sess.Save(r, w)
}

func (s *cookieSessionStore) Clear(w http.ResponseWriter, r *http.Request) error {
	sess, _ := s.store.Get(r, SessionName)
	delete(sess.Values, authKey)
	return sess.Save(r, w)
}
