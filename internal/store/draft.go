package store

import (
	"net/http"

	"otakufest/internal/models"

	"github.com/gorilla/sessions"
)

// DraftStore holds the single pending order draft between the event
// detail page and checkout. Set has one writer (the buy handler);
// Consume reads and removes in one step so the draft is used at most
// once.
type DraftStore interface {
	Set(w http.ResponseWriter, r *http.Request, draft *models.OrderDraft) error
	Consume(w http.ResponseWriter, r *http.Request) (*models.OrderDraft, error)
}

type cookieDraftStore struct {
	store sessions.Store
}

// NewDraftStore creates a draft slot over the given cookie store
func NewDraftStore(store sessions.Store) DraftStore {
	return &cookieDraftStore{store: store}
}

func (s *cookieDraftStore) Set(w http.ResponseWriter, r *http.Request, draft *models.OrderDraft) error {
	sess, _ := s.store.Get(r, SessionName)
	sess.Values[draftKey] = draft
	return sess.Save(r, w)
}

// Consume returns the draft and deletes it. Absence is
// models.ErrNoDraft; the caller redirects to the catalog and never
// fabricates a zero-value order.
func (s *cookieDraftStore) Consume(w http.ResponseWriter, r *http.Request) (*models.OrderDraft, error) {
	sess, err := s.store.Get(r, SessionName)
	if err != nil {
		return nil, models.ErrNoDraft
	}
	draft, ok := sess.Values[draftKey].(*models.OrderDraft)
	if !ok {
		return nil, models.ErrNoDraft
	}

	delete(sess.Values, draftKey)
	if err := sess.Save(r, w); err != nil {
		return nil, err
	}
	return draft, nil
}
