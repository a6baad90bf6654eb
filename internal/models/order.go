package models

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// PaymentMethod is one of the checkout payment options
type PaymentMethod string

const (
	PaymentGopay        PaymentMethod = "gopay"
	PaymentOvo          PaymentMethod = "ovo"
	PaymentDana         PaymentMethod = "dana"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
)

// DefaultPaymentMethod is preselected on the checkout form
const DefaultPaymentMethod = PaymentGopay

// ValidPaymentMethod reports whether m is a recognized payment option
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentGopay, PaymentOvo, PaymentDana, PaymentBankTransfer:
		return true
	}
	return false
}

// OrderDraft is the buyer's pending ticket selection, created on the
// event detail page and consumed exactly once by checkout. Amounts
// are in whole rupiah. AttemptID is the idempotency key for this
// selection: minted once at draft creation and reused on every
// submission of it, so a replayed or retried checkout POST cannot
// create a second order.
type OrderDraft struct {
	AttemptID  string `json:"attempt_id"`
	EventID    string `json:"event_id"`
	EventTitle string `json:"event_title"`
	Quantity   int    `json:"quantity"`
	UnitPrice  int    `json:"unit_price"`
	TotalPrice int    `json:"total_price"`
}

// NewOrderDraft builds a draft for the given event and quantity.
// Quantity is clamped to a minimum of 1 and the total is recomputed
// from the clamped value, so TotalPrice == UnitPrice*Quantity always
// holds on a constructed draft.
func NewOrderDraft(event *Event, quantity int) *OrderDraft {
	if quantity < 1 {
		quantity = 1
	}
	return &OrderDraft{
		AttemptID:  uuid.NewString(),
		EventID:    event.ID,
		EventTitle: event.Title,
		Quantity:   quantity,
		UnitPrice:  event.CurrentPrice,
		TotalPrice: event.CurrentPrice * quantity,
	}
}

// Validate checks the draft invariants
func (d *OrderDraft) Validate() error {
	if d.EventID == "" {
		return errors.New("draft event id is required")
	}
	if d.Quantity < 1 {
		return errors.New("draft quantity must be at least 1")
	}
	if d.UnitPrice < 0 {
		return errors.New("draft unit price cannot be negative")
	}
	if d.TotalPrice != d.UnitPrice*d.Quantity {
		return errors.New("draft total price does not match unit price and quantity")
	}
	return nil
}

// CustomerInfo is the checkout form state. Required fields are
// enforced at submission time only, not per keystroke.
type CustomerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Notes string `json:"notes"`
}

// Validate enforces the required customer fields. Notes is optional.
func (c *CustomerInfo) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("customer name is required")
	}
	if strings.TrimSpace(c.Email) == "" {
		return errors.New("customer email is required")
	}
	if strings.TrimSpace(c.Phone) == "" {
		return errors.New("customer phone is required")
	}
	return nil
}

// Order is the backend's echo of an accepted order, held as a
// single-use handoff for the confirmation screen.
type Order struct {
	OrderNumber string `json:"order_number"`
	TotalAmount int    `json:"total_amount"`
	Message     string `json:"message"`
}
