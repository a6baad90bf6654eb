package store

import (
	"encoding/gob"
	"net/http"
	"net/http/httptest"
	"testing"

	"otakufest/internal/models"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gob.Register(&models.Session{})
	gob.Register(&models.OrderDraft{})
	gob.Register(&models.Order{})
}

func newCookieStore() sessions.Store {
	return sessions.NewCookieStore([]byte("test-secret"))
}

// roundTrip builds the next request carrying the cookies the previous
// response set, simulating the browser between page loads.
func roundTrip(t *testing.T, rec *httptest.ResponseRecorder) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestDraftStore_SetThenConsume(t *testing.T) {
	cookies := newCookieStore()
	drafts := NewDraftStore(cookies)

	draft := &models.OrderDraft{
		EventID:    "ev-1",
		EventTitle: "Anime Festival Jakarta",
		Quantity:   3,
		UnitPrice:  25000,
		TotalPrice: 75000,
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/events/anime-festival/buy", nil)
	require.NoError(t, drafts.Set(rec, req, draft))

	rec2 := httptest.NewRecorder()
	got, err := drafts.Consume(rec2, roundTrip(t, rec))
	require.NoError(t, err)
	assert.Equal(t, draft, got)
}

func TestDraftStore_ConsumeTwice(t *testing.T) {
	cookies := newCookieStore()
	drafts := NewDraftStore(cookies)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	require.NoError(t, drafts.Set(rec, req, &models.OrderDraft{
		EventID: "ev-1", Quantity: 1, UnitPrice: 50000, TotalPrice: 50000,
	}))

	rec2 := httptest.NewRecorder()
	first, err := drafts.Consume(rec2, roundTrip(t, rec))
	require.NoError(t, err)
	require.NotNil(t, first)

	// The second consume sees the cookie the first one rewrote.
	rec3 := httptest.NewRecorder()
	second, err := drafts.Consume(rec3, roundTrip(t, rec2))
	assert.ErrorIs(t, err, models.ErrNoDraft)
	assert.Nil(t, second)
}

func TestDraftStore_ConsumeWithoutDraft(t *testing.T) {
	drafts := NewDraftStore(newCookieStore())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/tickets/checkout", nil)
	_, err := drafts.Consume(rec, req)
	assert.ErrorIs(t, err, models.ErrNoDraft)
}

func TestOrderStore_SingleUse(t *testing.T) {
	cookies := newCookieStore()
	orders := NewOrderStore(cookies)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	require.NoError(t, orders.Set(rec, req, &models.Order{OrderNumber: "ORD12345678"}))

	rec2 := httptest.NewRecorder()
	order, err := orders.Consume(rec2, roundTrip(t, rec))
	require.NoError(t, err)
	assert.Equal(t, "ORD12345678", order.OrderNumber)

	rec3 := httptest.NewRecorder()
	_, err = orders.Consume(rec3, roundTrip(t, rec2))
	assert.ErrorIs(t, err, models.ErrNoOrder)
}

func TestSessionStore_RoundTrip(t *testing.T) {
	cookies := newCookieStore()
	auth := NewSessionStore(cookies)

	session := &models.Session{
		Token: "tok-123",
		User: models.User{
			Username:  "rina",
			Email:     "rina@example.com",
			FirstName: "Rina",
			LastName:  "Aulia",
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	require.NoError(t, auth.Set(rec, req, session))

	got := auth.Get(roundTrip(t, rec))
	require.NotNil(t, got)
	assert.Equal(t, "tok-123", got.Token)
	assert.Equal(t, "Rina Aulia", got.User.FullName())
}

func TestSessionStore_GetWithoutLogin(t *testing.T) {
	auth := NewSessionStore(newCookieStore())
	req := httptest.NewRequest(http.MethodGet, "/tickets", nil)
	assert.Nil(t, auth.Get(req))
}

func TestSessionStore_Clear(t *testing.T) {
	cookies := newCookieStore()
	auth := NewSessionStore(cookies)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	require.NoError(t, auth.Set(rec, req, &models.Session{Token: "tok-123"}))

	rec2 := httptest.NewRecorder()
	require.NoError(t, auth.Clear(rec2, roundTrip(t, rec)))

	assert.Nil(t, auth.Get(roundTrip(t, rec2)))
}

func TestStores_ShareOneCookieSession(t *testing.T) {
	cookies := newCookieStore()
	auth := NewSessionStore(cookies)
	drafts := NewDraftStore(cookies)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	require.NoError(t, auth.Set(rec, req, &models.Session{Token: "tok-123"}))

	rec2 := httptest.NewRecorder()
	require.NoError(t, drafts.Set(rec2, roundTrip(t, rec), &models.OrderDraft{
		EventID: "ev-1", Quantity: 1, UnitPrice: 50000, TotalPrice: 50000,
	}))

	// Consuming the draft must not log the visitor out.
	rec3 := httptest.NewRecorder()
	req3 := roundTrip(t, rec2)
	_, err := drafts.Consume(rec3, req3)
	require.NoError(t, err)
	assert.NotNil(t, auth.Get(roundTrip(t, rec3)))
}
