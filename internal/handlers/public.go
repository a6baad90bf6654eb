package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"otakufest/internal/api"
	"otakufest/internal/catalog"
	"otakufest/internal/middleware"
	"otakufest/internal/models"

	"github.com/go-chi/chi/v5"
)

// PublicHandler serves the browse pages: home, event listing, and
// event detail
type PublicHandler struct {
	events   api.EventsAPI
	searcher *catalog.Searcher
	csrf     *middleware.CSRFMiddleware
}

// NewPublicHandler creates a new public pages handler
func NewPublicHandler(events api.EventsAPI, searcher *catalog.Searcher, csrf *middleware.CSRFMiddleware) *PublicHandler {
	return &PublicHandler{
		events:   events,
		searcher: searcher,
		csrf:     csrf,
	}
}

// HomePage renders the landing page with featured and upcoming events
func (h *PublicHandler) HomePage(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSessionFromContext(r.Context())

	featured, err := h.events.FeaturedEvents(r.Context())
	if err != nil {
		http.Error(w, "Failed to load featured events", http.StatusInternalServerError)
		return
	}

	upcoming, err := h.events.UpcomingEvents(r.Context())
	if err != nil {
		http.Error(w, "Failed to load upcoming events", http.StatusInternalServerError)
		return
	}

	main := fmt.Sprintf(`
        <section class="bg-gradient-to-r from-pink-600 to-purple-700 text-white">
            <div class="max-w-7xl mx-auto px-4 sm:px-6 lg:px-8 py-20 text-center">
                <h1 class="text-4xl md:text-6xl font-bold mb-6">Festival Anime Terbesar</h1>
                <p class="text-xl md:text-2xl mb-8 text-pink-100">
                    Temukan konser anisong, kompetisi cosplay, workshop, dan screening favoritmu
                </p>
                <a href="/events" class="bg-white text-pink-600 font-semibold px-8 py-3 rounded-lg">Jelajahi Event</a>
            </div>
        </section>
        <section class="py-16 bg-white">
            <div class="max-w-7xl mx-auto px-4 sm:px-6 lg:px-8">
                <h2 class="text-3xl font-bold text-gray-900 mb-8">Event Unggulan</h2>
                <div class="grid grid-cols-1 md:grid-cols-2 lg:grid-cols-3 gap-8">%s</div>
            </div>
        </section>
        <section class="py-16 bg-gray-50">
            <div class="max-w-7xl mx-auto px-4 sm:px-6 lg:px-8">
                <h2 class="text-3xl font-bold text-gray-900 mb-8">Event Mendatang</h2>
                <div class="grid grid-cols-1 md:grid-cols-2 lg:grid-cols-4 gap-6">%s</div>
            </div>
        </section>`,
		renderEventCards(featured),
		renderEventCards(upcoming))

	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, renderPage("Beranda", renderUserNav(session, h.csrf.TokenFromSession(r)), main))
}

// EventsListPage renders the catalog with search and category filters.
// HTMX requests get just the grid so typed searches swap in place.
func (h *PublicHandler) EventsListPage(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSessionFromContext(r.Context())

	filters := api.EventFilters{
		Search:   strings.TrimSpace(r.URL.Query().Get("q")),
		Category: r.URL.Query().Get("category"),
		Location: strings.TrimSpace(r.URL.Query().Get("location")),
	}

	events, err := h.searcher.Search(r.Context(), filters)
	notice := ""
	if err != nil {
		// Keep the last good grid on screen instead of an error page;
		// searches racing each other should not flash an error either
		events = h.searcher.Results()
		if r.Header.Get("HX-Request") == "true" {
			w.Header().Set("Content-Type", "text/html")
			fmt.Fprintf(w, `<div class="grid grid-cols-1 md:grid-cols-2 lg:grid-cols-3 gap-8">%s</div>`,
				renderEventCards(events))
			return
		}
		notice = `<div class="bg-red-50 border border-red-200 text-red-700 px-4 py-3 rounded mb-6">Gagal memuat hasil pencarian. Coba lagi sebentar lagi.</div>`
	}

	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintf(w, `<div class="grid grid-cols-1 md:grid-cols-2 lg:grid-cols-3 gap-8">%s</div>`,
			renderEventCards(events))
		return
	}

	main := fmt.Sprintf(`
		<div class="max-w-7xl mx-auto px-4 sm:px-6 lg:px-8 py-8">
			<h1 class="text-3xl font-bold text-gray-900 mb-8">Jelajahi Event</h1>
			%s
			<div class="bg-white rounded-lg shadow-sm border border-gray-200 p-6 mb-6">
				<form hx-get="/events" hx-target="#events-list" hx-trigger="submit, input delay:300ms from:input[name='q']"
					class="grid grid-cols-1 md:grid-cols-4 gap-4">
					<input type="text" name="q" value="%s" placeholder="Cari event..." class="form-input">
					<select name="category" class="form-input">
						%s
					</select>
					<input type="text" name="location" value="%s" placeholder="Lokasi" class="form-input">
					<button type="submit" class="bg-pink-600 hover:bg-pink-700 text-white px-4 py-2 rounded-lg">Cari</button>
				</form>
			</div>
			<div id="events-list">
				<div class="grid grid-cols-1 md:grid-cols-2 lg:grid-cols-3 gap-8">%s</div>
			</div>
		</div>`,
		notice,
		esc(filters.Search),
		renderCategoryOptions(filters.Category),
		esc(filters.Location),
		renderEventCards(events))

	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, renderPage("Jelajahi Event", renderUserNav(session, h.csrf.TokenFromSession(r)), main))
}

func renderCategoryOptions(selected string) string {
	categories := []models.EventCategory{
		models.CategoryFestival,
		models.CategoryCosplay,
		models.CategoryConcert,
		models.CategoryWorkshop,
		models.CategoryScreening,
	}

	html := `<option value="all">Semua Kategori</option>`
	for _, c := range categories {
		attr := ""
		if string(c) == selected {
			attr = " selected"
		}
		html += fmt.Sprintf(`<option value="%s"%s>%s</option>`, c, attr, categoryLabel(c))
	}
	return html
}

// EventsSearch serves the typeahead dropdown partial. Responses go
// through the searcher so a slow query can never replace a newer
// result's grid with stale rows.
func (h *PublicHandler) EventsSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	w.Header().Set("Content-Type", "text/html")
	if query == "" {
		fmt.Fprint(w, `<div class="text-center py-4"><p class="text-gray-600">Ketik untuk mencari event.</p></div>`)
		return
	}

	events, err := h.searcher.Search(r.Context(), api.EventFilters{Search: query})
	if err != nil {
		events = h.searcher.Results()
	}

	if len(events) == 0 {
		fmt.Fprintf(w, `<div class="text-center py-4"><p class="text-gray-600">Tidak ada event untuk "%s".</p></div>`, esc(query))
		return
	}

	html := `<div class="divide-y divide-gray-200">`
	for _, event := range events {
		html += fmt.Sprintf(`
			<a href="/events/%s" class="block p-4 hover:bg-gray-50 transition-colors">
				<div class="flex items-center justify-between">
					<div class="flex-1 min-w-0">
						<h4 class="text-sm font-medium text-gray-900 truncate">%s</h4>
						<p class="text-sm text-gray-500">%s &middot; %s</p>
					</div>
					%s
				</div>
			</a>
		`, esc(event.Slug), esc(event.Title), formatDate(event.StartDate), esc(event.Location), renderCategoryBadge(event.Category))
	}
	html += `</div>`

	fmt.Fprint(w, html)
}

// EventDetailPage renders a single event with its category-specific
// block and the buy form
func (h *PublicHandler) EventDetailPage(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSessionFromContext(r.Context())
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

	main := fmt.Sprintf(`
		<div class="max-w-7xl mx-auto px-4 sm:px-6 lg:px-8 py-8">
			<div class="grid grid-cols-1 lg:grid-cols-3 gap-8">
				<div class="lg:col-span-2">
					<div class="bg-white rounded-lg shadow-sm border border-gray-200 p-6">
						%s
						<h1 class="text-3xl font-bold text-gray-900 mt-2 mb-4">%s</h1>
						<p class="text-gray-700 mb-4">%s</p>
						<p class="text-gray-600">Tempat: %s, %s</p>
						<p class="text-gray-600">Mulai: %s</p>
						<p class="text-gray-600">Selesai: %s</p>
						%s
					</div>
					%s
				</div>
				<div class="lg:col-span-1">
					<div class="bg-white rounded-lg shadow-sm border border-gray-200 p-6">
						<h3 class="text-lg font-semibold text-gray-900 mb-4">Beli Tiket</h3>
						%s
						%s
					</div>
				</div>
			</div>
		</div>`,
		renderCategoryBadge(event.Category),
		esc(event.Title),
		esc(event.Description),
		esc(event.Venue), esc(event.Location),
		formatDateTime(event.StartDate),
		formatDateTime(event.EndDate),
		renderRequirements(event),
		renderDetailsBlock(event),
		renderPriceBlock(event),
		h.renderBuyForm(r, event))

	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, renderPage(event.Title, renderUserNav(session, h.csrf.TokenFromSession(r)), main))
}

func renderRequirements(event *models.Event) string {
	html := ""
	if event.Requirements != "" {
		html += fmt.Sprintf(`<p class="text-gray-600">Persyaratan: %s</p>`, esc(event.Requirements))
	}
	if event.AgeRestriction != "" {
		html += fmt.Sprintf(`<p class="text-gray-600">Batas usia: %s</p>`, esc(event.AgeRestriction))
	}
	return html
}

// renderDetailsBlock renders whichever category-specific section the
// event carries; events without one get nothing extra
func renderDetailsBlock(event *models.Event) string {
	switch d := event.Details().(type) {
	case *models.CosplayCompetition:
		return fmt.Sprintf(`
			<div class="bg-white rounded-lg shadow-sm border border-gray-200 p-6 mt-6">
				<h3 class="text-lg font-semibold text-gray-900 mb-4">Kompetisi Cosplay</h3>
				<p class="text-gray-700 mb-2">Tema: %s</p>
				<p class="text-gray-700 mb-2">Total hadiah: %s</p>
				<p class="text-gray-600 text-sm">Juara 1: %s &middot; Juara 2: %s &middot; Juara 3: %s</p>
				<p class="text-gray-600 text-sm">Pendaftaran ditutup: %s</p>
				<p class="text-gray-600 text-sm">Maksimal peserta: %d</p>
			</div>`,
			esc(d.Theme),
			formatPrice(d.PrizePool),
			formatPrice(d.FirstPrize), formatPrice(d.SecondPrize), formatPrice(d.ThirdPrize),
			formatDate(d.RegistrationDeadline),
			d.MaxParticipants)
	case *models.AnisongConcert:
		setlist := ""
		for _, song := range d.Setlist {
			setlist += fmt.Sprintf(`<li class="text-gray-600 text-sm">%s</li>`, esc(song))
		}
		extras := ""
		if d.MeetAndGreet {
			extras += `<p class="text-gray-600 text-sm">Termasuk meet and greet</p>`
		}
		if d.MerchandiseAvailable {
			extras += `<p class="text-gray-600 text-sm">Merchandise tersedia</p>`
		}
		return fmt.Sprintf(`
			<div class="bg-white rounded-lg shadow-sm border border-gray-200 p-6 mt-6">
				<h3 class="text-lg font-semibold text-gray-900 mb-4">Konser Anisong</h3>
				<p class="text-gray-700 mb-2">Artis: %s</p>
				<p class="text-gray-600 mb-2">%s</p>
				<p class="text-gray-600 text-sm mb-2">Durasi: %d menit</p>
				<ul class="list-disc list-inside mb-2">%s</ul>
				%s
			</div>`,
			esc(d.ArtistName),
			esc(d.ArtistBio),
			d.DurationMinutes,
			setlist,
			extras)
	}
	return ""
}

func renderPriceBlock(event *models.Event) string {
	if event.IsEarlyBirdActive && event.CurrentPrice < event.Price {
		return fmt.Sprintf(`
			<p class="mb-4">
				<s class="text-gray-400">%s</s>
				<span class="text-2xl font-bold text-pink-600">%s</span>
				<span class="bg-yellow-400 text-yellow-900 text-xs font-semibold px-2 py-1 rounded ml-2">Early Bird</span>
			</p>`,
			formatPrice(event.Price), formatPrice(event.CurrentPrice))
	}
	return fmt.Sprintf(`<p class="text-2xl font-bold text-pink-600 mb-4">%s</p>`,
		formatPrice(event.CurrentPrice))
}

// renderBuyForm renders the quantity selector posting to the buy
// endpoint. Sales are closed outside the upcoming/ongoing statuses.
// Logging in is not required to buy; tickets are delivered to the
// email entered at checkout.
func (h *PublicHandler) renderBuyForm(r *http.Request, event *models.Event) string {
	switch event.Status {
	case models.EventUpcoming, models.EventOngoing:
	default:
		return `<p class="text-red-600 font-medium">Penjualan tiket ditutup.</p>`
	}

	return fmt.Sprintf(`
		<form method="POST" action="/events/%s/buy">
			<input type="hidden" name="csrf_token" value="%s">
			<label class="block text-sm text-gray-700 mb-1">Jumlah tiket</label>
			<input type="number" name="quantity" value="1" min="1" class="form-input w-full mb-4">
			<button type="submit" class="w-full bg-pink-600 hover:bg-pink-700 text-white px-4 py-2 rounded-lg">
				Beli Tiket
			</button>
		</form>`,
		esc(event.Slug), esc(h.csrf.TokenFromSession(r)))
}
