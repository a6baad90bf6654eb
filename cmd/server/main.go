package main

import (
	"encoding/gob"
	"fmt"
	"log"
	"net/http"
	"time"

	"otakufest/internal/api"
	"otakufest/internal/catalog"
	"otakufest/internal/checkout"
	"otakufest/internal/config"
	"otakufest/internal/handlers"
	"otakufest/internal/middleware"
	"otakufest/internal/models"
	"otakufest/internal/store"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
)

func main() {
	// Register types for session serialization
	gob.Register(&models.Session{})
	gob.Register(&models.OrderDraft{})
	gob.Register(&models.Order{})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Create session store
	sessionStore := sessions.NewCookieStore([]byte(cfg.Session.Secret))
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   cfg.Session.MaxAge,
		HttpOnly: true,
		Secure:   cfg.Server.Env == "production",
		SameSite: http.SameSiteLaxMode,
	}

	// Backend API client
	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout)

	// Cookie-backed state slots
	authSessions := store.NewSessionStore(sessionStore)
	drafts := store.NewDraftStore(sessionStore)
	orders := store.NewOrderStore(sessionStore)

	// Workflows
	checkoutService := checkout.NewService(client, drafts, orders, cfg.Checkout.AdminFee)
	searcher := catalog.NewSearcher(client)

	// Middleware
	sessionMiddleware := middleware.NewSessionMiddleware(authSessions)
	csrfMiddleware := middleware.NewCSRFMiddleware(sessionStore)
	loginLimiter := middleware.NewLoginRateLimiter(5, 15*time.Minute)

	// Handlers
	publicHandler := handlers.NewPublicHandler(client, searcher, csrfMiddleware)
	authHandler := handlers.NewAuthHandler(client, authSessions, csrfMiddleware)
	checkoutHandler := handlers.NewCheckoutHandler(client, checkoutService, drafts, orders, csrfMiddleware)
	ticketsHandler := handlers.NewTicketsHandler(client, csrfMiddleware)

	// Router
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(sessionMiddleware.LoadSession)
	r.Use(middleware.LoggingMiddleware)
	r.Use(csrfMiddleware.EnsureToken)
	r.Use(csrfMiddleware.Protect)

	// Static files
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("web/static/"))))

	// Public routes
	r.Get("/", publicHandler.HomePage)
	r.Get("/events", publicHandler.EventsListPage)
	r.Get("/events/search", publicHandler.EventsSearch)
	r.Get("/events/{slug}", publicHandler.EventDetailPage)

	// Account routes
	r.With(middleware.LoginRateLimit(loginLimiter)).Get("/login", authHandler.LoginPage)
	r.With(middleware.LoginRateLimit(loginLimiter)).Post("/login", authHandler.Login)
	r.Get("/register", authHandler.RegisterPage)
	r.Post("/register", authHandler.Register)
	r.Post("/logout", authHandler.Logout)

	// Purchase flow; open to anonymous buyers, the backend ties
	// tickets to an account only when a token rides along
	r.Post("/events/{slug}/buy", checkoutHandler.BuyTicket)
	r.Get("/tickets/checkout", checkoutHandler.CheckoutPage)
	r.Post("/tickets/checkout", checkoutHandler.SubmitOrder)
	r.Get("/tickets/success", checkoutHandler.SuccessPage)

	// Renders the logged-out empty view on its own, no gate needed
	r.Get("/tickets", ticketsHandler.MyTicketsPage)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Starting server on %s (backend: %s)", addr, cfg.API.BaseURL)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal("Server failed:", err)
	}
}
