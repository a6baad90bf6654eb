package api

import (
	"context"

	"otakufest/internal/models"
)

// EventsAPI defines the catalog operations consumed by the storefront
type EventsAPI interface {
	ListEvents(ctx context.Context, filters EventFilters) ([]models.EventSummary, error)
	GetEvent(ctx context.Context, slug string) (*models.Event, error)
	FeaturedEvents(ctx context.Context) ([]models.EventSummary, error)
	UpcomingEvents(ctx context.Context) ([]models.EventSummary, error)
}

// AuthAPI defines the account operations consumed by the storefront
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (*models.Session, error)
	Register(ctx context.Context, req RegisterRequest) error
	Logout(ctx context.Context, token string) error
}

// TicketsAPI defines the order and ticket operations consumed by the
// storefront
type TicketsAPI interface {
	CreateOrder(ctx context.Context, token string, req CreateOrderRequest) (*models.Order, error)
	MyTickets(ctx context.Context, token string) ([]models.Ticket, error)
}

var (
	_ EventsAPI  = (*Client)(nil)
	_ AuthAPI    = (*Client)(nil)
	_ TicketsAPI = (*Client)(nil)
)
