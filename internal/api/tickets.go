package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"otakufest/internal/models"

	"github.com/google/uuid"
)

// CreateOrderRequest is the order submission payload. IdempotencyKey
// travels as a header, not in the body; the backend uses it to
// collapse duplicate submissions of the same attempt into one order.
type CreateOrderRequest struct {
	IdempotencyKey string               `json:"-"`
	EventID        string               `json:"event_id"`
	Quantity       int                  `json:"quantity"`
	CustomerName   string               `json:"customer_name"`
	CustomerEmail  string               `json:"customer_email"`
	CustomerPhone  string               `json:"customer_phone"`
	PaymentMethod  models.PaymentMethod `json:"payment_method"`
	Notes          string               `json:"notes"`
}

// CreateOrder submits an order. The token is attached when present so
// the backend can tie the tickets to the account; anonymous orders
// are accepted too. The caller's idempotency key is forwarded so a
// resubmission of the same attempt reuses it; a fresh key is minted
// only when the caller has none.
func (c *Client) CreateOrder(ctx context.Context, token string, req CreateOrderRequest) (*models.Order, error) {
	key := req.IdempotencyKey
	if key == "" {
		key = uuid.NewString()
	}
	headers := map[string]string{
		"Idempotency-Key": key,
	}

	body, err := c.do(ctx, http.MethodPost, "/tickets/create-order/", token, req, headers)
	if err != nil {
		return nil, err
	}

	var order models.Order
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, fmt.Errorf("failed to decode order response: %w", err)
	}
	if order.OrderNumber == "" {
		return nil, fmt.Errorf("order response carries no order number")
	}
	return &order, nil
}

// MyTickets fetches the authenticated user's tickets. The token is
// required; callers gate the fetch on having one.
func (c *Client) MyTickets(ctx context.Context, token string) ([]models.Ticket, error) {
	body, err := c.do(ctx, http.MethodGet, "/tickets/my-tickets/", token, nil, nil)
	if err != nil {
		return nil, err
	}

	var tickets []models.Ticket
	if err := unmarshalList(body, &tickets); err != nil {
		return nil, fmt.Errorf("failed to decode tickets: %w", err)
	}
	return tickets, nil
}
