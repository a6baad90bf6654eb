package handlers

import (
	"fmt"
	"log"
	"net/http"

	"otakufest/internal/api"
	"otakufest/internal/middleware"
	"otakufest/internal/models"
)

// TicketsHandler serves the buyer's ticket list
type TicketsHandler struct {
	tickets api.TicketsAPI
	csrf    *middleware.CSRFMiddleware
}

// NewTicketsHandler creates a new tickets handler
func NewTicketsHandler(tickets api.TicketsAPI, csrf *middleware.CSRFMiddleware) *TicketsHandler {
	return &TicketsHandler{tickets: tickets, csrf: csrf}
}

// MyTicketsPage renders the visitor's tickets split into the active
// and history tabs. Anonymous visitors get the empty view with no
// backend call; a fetch failure degrades to the empty view with a
// notice instead of an error page.
func (h *TicketsHandler) MyTicketsPage(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSessionFromContext(r.Context())

	var tickets []models.Ticket
	fetchNotice := ""
	if session.Authenticated() {
		fetched, err := h.tickets.MyTickets(r.Context(), session.Token)
		if err != nil {
			log.Printf("my tickets fetch failed for %s: %v", session.User.Username, err)
			fetchNotice = `<div class="bg-red-50 border border-red-200 text-red-700 px-4 py-3 rounded mb-6">Gagal memuat tiket. Coba muat ulang halaman.</div>`
		} else {
			tickets = fetched
		}
	}

	active, history, unknown := models.PartitionTickets(tickets)
	if unknown > 0 {
		log.Printf("my tickets: %d ticket(s) with unrecognized status hidden for %s", unknown, session.User.Username)
	}

	tab := r.URL.Query().Get("tab")
	if tab != "history" {
		tab = "active"
	}

	shown := active
	emptyMsg := "Belum ada tiket aktif. Yuk cari event!"
	if tab == "history" {
		shown = history
		emptyMsg = "Belum ada riwayat tiket."
	}

	main := fmt.Sprintf(`
		<div class="max-w-5xl mx-auto px-4 py-8">
			<h1 class="text-3xl font-bold text-gray-900 mb-8">Tiket Saya</h1>
			%s
			<div class="flex space-x-4 border-b border-gray-200 mb-6">
				<a href="/tickets" class="%s">Tiket Aktif (%d)</a>
				<a href="/tickets?tab=history" class="%s">Riwayat (%d)</a>
			</div>
			%s
		</div>`,
		fetchNotice,
		tabClass(tab == "active"), len(active),
		tabClass(tab == "history"), len(history),
		renderTicketList(shown, emptyMsg))

	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, renderPage("Tiket Saya", renderUserNav(session, h.csrf.TokenFromSession(r)), main))
}

func tabClass(selected bool) string {
	if selected {
		return "pb-2 border-b-2 border-pink-600 text-pink-600 font-medium"
	}
	return "pb-2 text-gray-600 hover:text-pink-600"
}

func renderTicketList(tickets []models.Ticket, emptyMsg string) string {
	if len(tickets) == 0 {
		return fmt.Sprintf(`
			<div class="bg-white rounded-lg shadow-sm border border-gray-200 p-8 text-center">
				<p class="text-gray-600 mb-4">%s</p>
				<a href="/events" class="inline-block bg-pink-600 hover:bg-pink-700 text-white px-4 py-2 rounded-lg">Jelajahi Event</a>
			</div>`, esc(emptyMsg))
	}

	html := ""
	for _, ticket := range tickets {
		qr := ""
		if ticket.Status.IsActive() && ticket.QRCode != "" {
			qr = fmt.Sprintf(`<img src="%s" alt="QR code" class="w-24 h-24">`, esc(ticket.QRCode))
		}
		html += fmt.Sprintf(`
			<div class="bg-white rounded-lg shadow-sm border border-gray-200 p-6 mb-4">
				<div class="flex justify-between items-start">
					<div>
						%s
						<h3 class="text-lg font-semibold text-gray-900 mt-2">%s</h3>
						<p class="text-sm text-gray-600">%s &middot; %s, %s</p>
						<p class="text-sm text-gray-600 mt-2">Nomor tiket: <span class="font-mono">%s</span></p>
						<p class="text-sm text-gray-600">%d tiket &middot; %s</p>
					</div>
					<div class="text-right">
						%s
						%s
					</div>
				</div>
			</div>`,
			renderCategoryBadge(ticket.Event.Category),
			esc(ticket.Event.Title),
			formatDate(ticket.Event.StartDate),
			esc(ticket.Event.Venue), esc(ticket.Event.Location),
			esc(ticket.TicketNumber),
			ticket.Quantity,
			formatPrice(ticket.TotalPrice),
			renderStatusBadge(ticket.Status),
			qr)
	}
	return html
}
