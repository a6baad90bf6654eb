package store

import (
	"net/http"

	"otakufest/internal/models"

	"github.com/gorilla/sessions"
)

// OrderStore holds the short-lived order record written at checkout
// success. Write-once, read-once-then-delete: the confirmation screen
// is not reachable twice for the same order.
type OrderStore interface {
	Set(w http.ResponseWriter, r *http.Request, order *models.Order) error
	Consume(w http.ResponseWriter, r *http.Request) (*models.Order, error)
}

type cookieOrderStore struct {
	store sessions.Store
}

// NewOrderStore creates an order slot over the given cookie store
func NewOrderStore(store sessions.Store) OrderStore {
	return &cookieOrderStore{store: store}
}

func (s *cookieOrderStore) Set(w http.ResponseWriter, r *http.Request, order *models.Order) error {
	sess, _ := s.store.Get(r, SessionName)
	sess.Values[orderKey] = order
	return sess.Save(r, w)
}

// Consume returns the order record and deletes it. Absence is
// models.ErrNoOrder; the caller redirects to the catalog.
func (s *cookieOrderStore) Consume(w http.ResponseWriter, r *http.Request) (*models.Order, error) {
	sess, err := s.store.Get(r, SessionName)
	if err != nil {
		return nil, models.ErrNoOrder
	}
	order, ok := sess.Values[orderKey].(*models.Order)
	if !ok {
		return nil, models.ErrNoOrder
	}

	delete(sess.Values, orderKey)
	if err := sess.Save(r, w); err != nil {
		return nil, err
	}
	return order, nil
}
