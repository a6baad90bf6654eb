package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"otakufest/internal/api"
	"otakufest/internal/checkout"
	"otakufest/internal/middleware"
	"otakufest/internal/models"
	"otakufest/internal/store"

	"github.com/go-chi/chi/v5"
)

// CheckoutHandler drives the purchase flow: buy button, checkout form,
// order submission, and the confirmation page
type CheckoutHandler struct {
	events  api.EventsAPI
	service *checkout.Service
	drafts  store.DraftStore
	orders  store.OrderStore
	csrf    *middleware.CSRFMiddleware
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(events api.EventsAPI, service *checkout.Service, drafts store.DraftStore, orders store.OrderStore, csrf *middleware.CSRFMiddleware) *CheckoutHandler {
	return &CheckoutHandler{
		events:  events,
		service: service,
		drafts:  drafts,
		orders:  orders,
		csrf:    csrf,
	}
}

// BuyTicket creates an order draft from the event page and sends the
// buyer to checkout. A repeat purchase simply overwrites the previous
// draft; only one selection is pending at a time.
func (h *CheckoutHandler) BuyTicket(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	slug := chi.URLParam(r, "slug")
	event, err := h.events.GetEvent(r.Context(), slug)
	if err != nil {
		if errors.Is(err, models.ErrEventNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "Failed to load event", http.StatusInternalServerError)
		return
	}

	// Atoi failure falls through as 0 and the constructor clamps it
	quantity, _ := strconv.Atoi(r.FormValue("quantity"))
	draft := models.NewOrderDraft(event, quantity)

	if err := h.drafts.Set(w, r, draft); err != nil {
		http.Error(w, "Failed to save order", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/tickets/checkout", http.StatusSeeOther)
}

// CheckoutPage opens a checkout attempt. The draft is consumed here;
// the form's hidden fields carry it through the submission round trip.
func (h *CheckoutHandler) CheckoutPage(w http.ResponseWriter, r *http.Request) {
	wf := h.service.Begin(w, r)
	if wf.State() == checkout.StateRedirect {
		http.Redirect(w, r, "/events", http.StatusSeeOther)
		return
	}

	// Prefill buyer fields from the logged-in profile
	info := models.CustomerInfo{}
	if session := middleware.GetSessionFromContext(r.Context()); session.Authenticated() {
		info.Name = session.User.FullName()
		info.Email = session.User.Email
	}

	h.renderCheckoutPage(w, r, wf, info, models.DefaultPaymentMethod, "")
}

// SubmitOrder handles the checkout form submission. The draft comes
// from the store when a failed attempt re-parked it, otherwise from
// the form's hidden fields.
func (h *CheckoutHandler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	// Anonymous orders are accepted; the token only ties the tickets
	// to an account when the buyer is logged in
	token := ""
	if session := middleware.GetSessionFromContext(r.Context()); session.Authenticated() {
		token = session.Token
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	wf := h.service.Begin(w, r)
	if wf.State() == checkout.StateRedirect {
		var err error
		wf, err = h.service.Resume(draftFromForm(r))
		if err != nil {
			http.Redirect(w, r, "/events", http.StatusSeeOther)
			return
		}
	}

	info := models.CustomerInfo{
		Name:  r.FormValue("customer_name"),
		Email: r.FormValue("customer_email"),
		Phone: r.FormValue("customer_phone"),
		Notes: r.FormValue("notes"),
	}
	method := models.PaymentMethod(r.FormValue("payment_method"))

	_, err := wf.Submit(r.Context(), w, r, token, info, method)
	if err != nil {
		if wf.State() == checkout.StateAwaitingInput {
			// Validation failure; nothing was sent
			w.Header().Set("Content-Type", "text/html")
			w.WriteHeader(http.StatusUnprocessableEntity)
			h.renderCheckoutPage(w, r, wf, info, method, "Lengkapi data pembeli terlebih dahulu.")
			return
		}
		log.Printf("order submission failed: %v", err)
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		h.renderCheckoutPage(w, r, wf, info, method, "Pembayaran gagal diproses. Pesananmu masih tersimpan, silakan coba lagi.")
		return
	}

	http.Redirect(w, r, "/tickets/success", http.StatusSeeOther)
}

// draftFromForm rebuilds the draft from the hidden checkout fields.
// Returns nil when the fields are absent so Resume can reject it.
func draftFromForm(r *http.Request) *models.OrderDraft {
	eventID := r.FormValue("event_id")
	if eventID == "" {
		return nil
	}
	quantity, _ := strconv.Atoi(r.FormValue("quantity"))
	unitPrice, _ := strconv.Atoi(r.FormValue("unit_price"))
	totalPrice, _ := strconv.Atoi(r.FormValue("total_price"))
	return &models.OrderDraft{
		AttemptID:  r.FormValue("attempt_id"),
		EventID:    eventID,
		EventTitle: r.FormValue("event_title"),
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		TotalPrice: totalPrice,
	}
}

func (h *CheckoutHandler) renderCheckoutPage(w http.ResponseWriter, r *http.Request, wf *checkout.Workflow, info models.CustomerInfo, method models.PaymentMethod, errMsg string) {
	session := middleware.GetSessionFromContext(r.Context())
	draft := wf.Draft()

	errorBlock := ""
	if errMsg != "" {
		errorBlock = fmt.Sprintf(`<div class="bg-red-50 border border-red-200 text-red-700 px-4 py-3 rounded mb-4">%s</div>`, esc(errMsg))
	}

	main := fmt.Sprintf(`
		<div class="max-w-3xl mx-auto px-4 py-8">
			<h1 class="text-3xl font-bold text-gray-900 mb-8">Checkout</h1>
			%s
			<div class="grid grid-cols-1 md:grid-cols-2 gap-8">
				<div class="bg-white rounded-lg shadow-sm border border-gray-200 p-6">
					<h3 class="text-lg font-semibold text-gray-900 mb-4">Ringkasan Pesanan</h3>
					<p class="text-gray-900 font-medium mb-2">%s</p>
					<div class="text-sm text-gray-600 space-y-1">
						<div class="flex justify-between"><span>Harga tiket</span><span>%s</span></div>
						<div class="flex justify-between"><span>Jumlah</span><span>%d</span></div>
						<div class="flex justify-between"><span>Subtotal</span><span>%s</span></div>
						<div class="flex justify-between"><span>Biaya admin</span><span>%s</span></div>
					</div>
					<div class="flex justify-between font-bold text-gray-900 border-t border-gray-200 mt-4 pt-4">
						<span>Total</span><span>%s</span>
					</div>
				</div>
				<div class="bg-white rounded-lg shadow-sm border border-gray-200 p-6">
					<h3 class="text-lg font-semibold text-gray-900 mb-4">Data Pembeli</h3>
					<form method="POST" action="/tickets/checkout">
						<input type="hidden" name="csrf_token" value="%s">
						<input type="hidden" name="attempt_id" value="%s">
						<input type="hidden" name="event_id" value="%s">
						<input type="hidden" name="event_title" value="%s">
						<input type="hidden" name="quantity" value="%d">
						<input type="hidden" name="unit_price" value="%d">
						<input type="hidden" name="total_price" value="%d">
						<label class="block text-sm text-gray-700 mb-1">Nama lengkap</label>
						<input type="text" name="customer_name" value="%s" class="form-input w-full mb-4" required>
						<label class="block text-sm text-gray-700 mb-1">Email</label>
						<input type="email" name="customer_email" value="%s" class="form-input w-full mb-4" required>
						<label class="block text-sm text-gray-700 mb-1">Nomor HP</label>
						<input type="tel" name="customer_phone" value="%s" class="form-input w-full mb-4" required>
						<label class="block text-sm text-gray-700 mb-1">Catatan (opsional)</label>
						<textarea name="notes" class="form-input w-full mb-4">%s</textarea>
						<fieldset class="mb-6">
							<legend class="text-sm text-gray-700 mb-2">Metode pembayaran</legend>
							%s
						</fieldset>
						<button type="submit" class="w-full bg-pink-600 hover:bg-pink-700 text-white px-4 py-2 rounded-lg">
							Bayar %s
						</button>
					</form>
				</div>
			</div>
		</div>`,
		errorBlock,
		esc(draft.EventTitle),
		formatPrice(draft.UnitPrice),
		draft.Quantity,
		formatPrice(draft.TotalPrice),
		formatPrice(h.service.AdminFee()),
		formatPrice(wf.Total()),
		esc(h.csrf.TokenFromSession(r)),
		esc(draft.AttemptID),
		esc(draft.EventID),
		esc(draft.EventTitle),
		draft.Quantity,
		draft.UnitPrice,
		draft.TotalPrice,
		esc(info.Name),
		esc(info.Email),
		esc(info.Phone),
		esc(info.Notes),
		renderPaymentOptions(method),
		formatPrice(wf.Total()))

	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, renderPage("Checkout", renderUserNav(session, h.csrf.TokenFromSession(r)), main))
}

func renderPaymentOptions(selected models.PaymentMethod) string {
	options := []struct {
		method models.PaymentMethod
		label  string
	}{
		{models.PaymentGopay, "GoPay"},
		{models.PaymentOvo, "OVO"},
		{models.PaymentDana, "DANA"},
		{models.PaymentBankTransfer, "Transfer Bank"},
	}
	if !models.ValidPaymentMethod(selected) {
		selected = models.DefaultPaymentMethod
	}

	html := ""
	for _, o := range options {
		checked := ""
		if o.method == selected {
			checked = " checked"
		}
		html += fmt.Sprintf(`
			<label class="flex items-center space-x-2 mb-2">
				<input type="radio" name="payment_method" value="%s"%s>
				<span class="text-gray-700">%s</span>
			</label>`, o.method, checked, o.label)
	}
	return html
}

// SuccessPage renders the order confirmation. The order record is
// single use; a reload after the first view goes back to the catalog.
func (h *CheckoutHandler) SuccessPage(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSessionFromContext(r.Context())

	order, err := h.orders.Consume(w, r)
	if err != nil {
		http.Redirect(w, r, "/events", http.StatusSeeOther)
		return
	}

	message := order.Message
	if message == "" {
		message = "Pesananmu sudah kami terima. Selesaikan pembayaran sesuai instruksi yang dikirim ke emailmu."
	}

	main := fmt.Sprintf(`
		<div class="max-w-md mx-auto px-4 py-16 text-center">
			<div class="bg-white rounded-lg shadow-sm border border-gray-200 p-8">
				<h1 class="text-2xl font-bold text-green-600 mb-4">Pesanan Berhasil!</h1>
				<p class="text-gray-700 mb-2">Nomor pesanan</p>
				<p class="text-xl font-mono font-bold text-gray-900 mb-4">%s</p>
				<p class="text-gray-700 mb-2">Total pembayaran</p>
				<p class="text-xl font-bold text-pink-600 mb-6">%s</p>
				<p class="text-gray-600 text-sm mb-8">%s</p>
				<a href="/tickets" class="block bg-pink-600 hover:bg-pink-700 text-white px-4 py-2 rounded-lg">Lihat Tiket Saya</a>
			</div>
		</div>`,
		esc(order.OrderNumber),
		formatPrice(order.TotalAmount),
		esc(message))

	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, renderPage("Pesanan Berhasil", renderUserNav(session, h.csrf.TokenFromSession(r)), main))
}
