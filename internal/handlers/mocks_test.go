package handlers

import (
	"context"
	"encoding/gob"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"otakufest/internal/api"
	"otakufest/internal/middleware"
	"otakufest/internal/models"
	"otakufest/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gob.Register(&models.Session{})
	gob.Register(&models.OrderDraft{})
	gob.Register(&models.Order{})
}

// MockEventsAPI is a mock of the backend catalog endpoints
type MockEventsAPI struct {
	mock.Mock
}

func (m *MockEventsAPI) ListEvents(ctx context.Context, filters api.EventFilters) ([]models.EventSummary, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.EventSummary), args.Error(1)
}

func (m *MockEventsAPI) GetEvent(ctx context.Context, slug string) (*models.Event, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockEventsAPI) FeaturedEvents(ctx context.Context) ([]models.EventSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.EventSummary), args.Error(1)
}

func (m *MockEventsAPI) UpcomingEvents(ctx context.Context) ([]models.EventSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.EventSummary), args.Error(1)
}

// MockAuthAPI is a mock of the backend account endpoints
type MockAuthAPI struct {
	mock.Mock
}

func (m *MockAuthAPI) Login(ctx context.Context, username, password string) (*models.Session, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockAuthAPI) Register(ctx context.Context, req api.RegisterRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockAuthAPI) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// MockTicketsAPI is a mock of the backend order endpoints
type MockTicketsAPI struct {
	mock.Mock
}

func (m *MockTicketsAPI) CreateOrder(ctx context.Context, token string, req api.CreateOrderRequest) (*models.Order, error) {
	args := m.Called(ctx, token, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockTicketsAPI) MyTickets(ctx context.Context, token string) ([]models.Ticket, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Ticket), args.Error(1)
}

// testStores bundles the cookie-backed slots over one shared session
type testStores struct {
	cookies  sessions.Store
	sessions store.SessionStore
	drafts   store.DraftStore
	orders   store.OrderStore
	csrf     *middleware.CSRFMiddleware
}

func newTestStores(t *testing.T) *testStores {
	t.Helper()
	cookies := sessions.NewCookieStore([]byte("test-secret"))
	return &testStores{
		cookies:  cookies,
		sessions: store.NewSessionStore(cookies),
		drafts:   store.NewDraftStore(cookies),
		orders:   store.NewOrderStore(cookies),
		csrf:     middleware.NewCSRFMiddleware(cookies),
	}
}

// carryCookies moves the set cookies from a response onto the next
// request, like a browser would
func carryCookies(w *httptest.ResponseRecorder, r *http.Request) {
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
}

// withChiParam injects a URL parameter the way the router would
func withChiParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func asUser(r *http.Request, session *models.Session) *http.Request {
	return r.WithContext(middleware.WithSession(r.Context(), session))
}

func testSession() *models.Session {
	return &models.Session{
		Token: "tok-abc",
		User:  models.User{ID: 7, Username: "misaki", FirstName: "Misaki"},
	}
}

func sampleEvent() *models.Event {
	return &models.Event{
		ID:           "ev-1",
		Title:        "Anisong Night",
		Description:  "Konser anisong semalam suntuk",
		Category:     models.CategoryConcert,
		Status:       models.EventUpcoming,
		StartDate:    time.Date(2026, 10, 10, 19, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 10, 10, 23, 0, 0, 0, time.UTC),
		Venue:        "JIExpo Hall B",
		Location:     "Jakarta",
		Price:        50000,
		CurrentPrice: 50000,
		Slug:         "anisong-night",
	}
}

func sampleSummaries() []models.EventSummary {
	return []models.EventSummary{
		{
			ID:           "ev-1",
			Title:        "Anisong Night",
			Category:     models.CategoryConcert,
			StartDate:    time.Date(2026, 10, 10, 19, 0, 0, 0, time.UTC),
			Venue:        "JIExpo Hall B",
			Location:     "Jakarta",
			Price:        50000,
			CurrentPrice: 50000,
			Slug:         "anisong-night",
		},
		{
			ID:           "ev-2",
			Title:        "Cosplay Grand Prix",
			Category:     models.CategoryCosplay,
			StartDate:    time.Date(2026, 11, 1, 10, 0, 0, 0, time.UTC),
			Venue:        "ICE BSD",
			Location:     "Tangerang",
			Price:        75000,
			CurrentPrice: 60000,
			Slug:         "cosplay-grand-prix",
		},
	}
}

// parkDraft stores a draft and returns the cookies carrying it
func parkDraft(t *testing.T, stores *testStores, draft *models.OrderDraft) []*http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/events/anisong-night/buy", nil)
	require.NoError(t, stores.drafts.Set(w, r, draft))
	return w.Result().Cookies()
}
