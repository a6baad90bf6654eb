// Package checkout drives the order submission workflow: consume the
// pending draft, collect customer info, submit to the backend, and
// land on a success or failure outcome.
package checkout

import (
	"context"
	"errors"
	"net/http"

	"otakufest/internal/api"
	"otakufest/internal/models"
	"otakufest/internal/store"
)

// State is a checkout workflow state
type State string

const (
	StateLoading       State = "loading"
	StateAwaitingInput State = "awaiting_input"
	StateSubmitting    State = "submitting"
	StateSucceeded     State = "succeeded"
	StateFailed        State = "failed"

	// StateRedirect is the terminal outcome when checkout is opened
	// with no draft present: back to the catalog, no implicit order.
	StateRedirect State = "redirect"
)

// DefaultAdminFee is the flat order surcharge in rupiah
const DefaultAdminFee = 5000

var (
	// ErrSubmitInFlight rejects a second submission while one is running
	ErrSubmitInFlight = errors.New("order submission already in progress")
	// ErrNotAwaitingInput rejects a submission from a terminal state
	ErrNotAwaitingInput = errors.New("checkout is not awaiting input")
)

// Service builds checkout workflows. One service per process; one
// workflow per checkout attempt.
type Service struct {
	tickets  api.TicketsAPI
	drafts   store.DraftStore
	orders   store.OrderStore
	adminFee int
}

// NewService creates a checkout service. adminFee <= 0 selects the
// default surcharge.
func NewService(tickets api.TicketsAPI, drafts store.DraftStore, orders store.OrderStore, adminFee int) *Service {
	if adminFee <= 0 {
		adminFee = DefaultAdminFee
	}
	return &Service{
		tickets:  tickets,
		drafts:   drafts,
		orders:   orders,
		adminFee: adminFee,
	}
}

// AdminFee returns the configured surcharge
func (s *Service) AdminFee() int {
	return s.adminFee
}

// Workflow is a single checkout attempt. It starts in Loading, holds
// the consumed draft in memory, and moves through the submission
// states. Not safe for concurrent use; a workflow belongs to one
// request.
type Workflow struct {
	service *Service
	state   State
	draft   *models.OrderDraft
	lastErr error
}

// Begin opens checkout: the draft is consumed (removed from its slot)
// and held in memory for the rest of the attempt. With no draft
// present the workflow lands in StateRedirect instead of
// AwaitingInput.
func (s *Service) Begin(w http.ResponseWriter, r *http.Request) *Workflow {
	wf := &Workflow{service: s, state: StateLoading}

	draft, err := s.drafts.Consume(w, r)
	if err != nil {
		wf.state = StateRedirect
		return wf
	}
	if err := draft.Validate(); err != nil {
		wf.state = StateRedirect
		return wf
	}

	wf.draft = draft
	wf.state = StateAwaitingInput
	return wf
}

// Resume rebuilds a workflow around a draft the form carried through
// the submission round trip. The stored draft was already consumed at
// Begin; the captured fields are trusted only after revalidation.
func (s *Service) Resume(draft *models.OrderDraft) (*Workflow, error) {
	if draft == nil {
		return &Workflow{service: s, state: StateRedirect}, models.ErrNoDraft
	}
	if err := draft.Validate(); err != nil {
		return &Workflow{service: s, state: StateRedirect}, err
	}
	return &Workflow{service: s, state: StateAwaitingInput, draft: draft}, nil
}

// State returns the current workflow state
func (wf *Workflow) State() State {
	return wf.state
}

// Draft returns the consumed draft held by this attempt
func (wf *Workflow) Draft() *models.OrderDraft {
	return wf.draft
}

// Err returns the error that moved the workflow to Failed
func (wf *Workflow) Err() error {
	return wf.lastErr
}

// Total is the amount shown to the buyer and sent with the order:
// draft total plus the admin fee. Displayed only, never persisted.
func (wf *Workflow) Total() int {
	if wf.draft == nil {
		return 0
	}
	return wf.draft.TotalPrice + wf.service.adminFee
}

// Submit validates the customer info and sends the order. Required
// fields must be non-empty to leave AwaitingInput; a submission
// already in flight is rejected rather than doubled.
//
// On backend rejection or network failure the draft is re-persisted
// before the workflow lands in Failed, so a page reload during the
// failure state does not lose the buyer's selection.
func (wf *Workflow) Submit(ctx context.Context, w http.ResponseWriter, r *http.Request, token string, info models.CustomerInfo, method models.PaymentMethod) (*models.Order, error) {
	switch wf.state {
	case StateSubmitting:
		return nil, ErrSubmitInFlight
	case StateAwaitingInput:
	default:
		return nil, ErrNotAwaitingInput
	}

	if err := info.Validate(); err != nil {
		// Validation failures keep the form open; they never consume
		// the attempt.
		return nil, err
	}
	if method == "" {
		method = models.DefaultPaymentMethod
	}
	if !models.ValidPaymentMethod(method) {
		return nil, models.ErrInvalidInput
	}

	wf.state = StateSubmitting

	order, err := wf.service.tickets.CreateOrder(ctx, token, api.CreateOrderRequest{
		IdempotencyKey: wf.draft.AttemptID,
		EventID:        wf.draft.EventID,
		Quantity:       wf.draft.Quantity,
		CustomerName:   info.Name,
		CustomerEmail:  info.Email,
		CustomerPhone:  info.Phone,
		PaymentMethod:  method,
		Notes:          info.Notes,
	})
	if err != nil {
		wf.state = StateFailed
		wf.lastErr = err
		if setErr := wf.service.drafts.Set(w, r, wf.draft); setErr != nil {
			// The buyer can still retry from the form fields held in
			// the failed page; only the reload path is degraded.
			wf.lastErr = errors.Join(err, setErr)
		}
		return nil, err
	}

	if err := wf.service.orders.Set(w, r, order); err != nil {
		wf.state = StateFailed
		wf.lastErr = err
		return nil, err
	}

	wf.state = StateSucceeded
	return order, nil
}

// Retry reopens a failed attempt for another submission with the same
// in-memory draft
func (wf *Workflow) Retry() error {
	if wf.state != StateFailed {
		return ErrNotAwaitingInput
	}
	wf.state = StateAwaitingInput
	wf.lastErr = nil
	return nil
}
