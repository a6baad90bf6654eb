package handlers

import (
	"fmt"
	"html"
	"strconv"
	"time"

	"otakufest/internal/models"
)

// formatPrice renders a rupiah amount with dot thousand grouping,
// e.g. 105000 -> "Rp 105.000"
func formatPrice(amount int) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	digits := strconv.Itoa(amount)
	var grouped []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped = append(grouped, '.')
		}
		grouped = append(grouped, d)
	}
	return fmt.Sprintf("Rp %s%s", sign, grouped)
}

// formatDate renders an event date for listings
func formatDate(t time.Time) string {
	return t.Format("2 January 2006")
}

// formatDateTime renders a full timestamp for the detail page
func formatDateTime(t time.Time) string {
	return t.Format("2 January 2006, 15:04")
}

func esc(s string) string {
	return html.EscapeString(s)
}

// categoryLabel is the display name for an event category
func categoryLabel(c models.EventCategory) string {
	switch c {
	case models.CategoryFestival:
		return "Festival"
	case models.CategoryCosplay:
		return "Cosplay"
	case models.CategoryConcert:
		return "Concert"
	case models.CategoryWorkshop:
		return "Workshop"
	case models.CategoryScreening:
		return "Screening"
	}
	return string(c)
}

// renderCategoryBadge renders the colored category pill
func renderCategoryBadge(c models.EventCategory) string {
	return fmt.Sprintf(`<span class="%s text-white text-xs font-semibold px-2 py-1 rounded">%s</span>`,
		models.CategoryColor(c), esc(categoryLabel(c)))
}

// renderStatusBadge renders a ticket status pill
func renderStatusBadge(s models.TicketStatus) string {
	return fmt.Sprintf(`<span class="%s text-white text-xs font-semibold px-2 py-1 rounded">%s</span>`,
		s.Color(), esc(s.Label()))
}

// renderUserNav renders the right side of the navbar depending on
// whether the visitor is logged in. Logout is a POST form so it goes
// through the usual token check; a GET link would let any third-party
// page log the visitor out.
func renderUserNav(session *models.Session, csrfToken string) string {
	if session.Authenticated() {
		return fmt.Sprintf(`
			<span class="text-gray-700">Halo, %s</span>
			<a href="/tickets" class="text-gray-700 hover:text-pink-600">Tiket Saya</a>
			<form method="POST" action="/logout" class="inline">
				<input type="hidden" name="csrf_token" value="%s">
				<button type="submit" class="text-gray-700 hover:text-pink-600">Logout</button>
			</form>
		`, esc(session.User.FirstName), esc(csrfToken))
	}
	return `
		<a href="/login" class="text-gray-700 hover:text-pink-600">Login</a>
		<a href="/register" class="bg-pink-600 hover:bg-pink-700 text-white px-4 py-2 rounded-lg">Daftar</a>
	`
}

// renderPage wraps page content in the shared document shell
func renderPage(title, nav, main string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="id">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s - OtakuFest</title>
    <link href="/static/css/output.css" rel="stylesheet">
    <script src="https://unpkg.com/htmx.org@1.9.10"></script>
</head>
<body class="bg-gray-50">
    <nav class="bg-white shadow-sm border-b border-gray-200">
        <div class="max-w-7xl mx-auto px-4 sm:px-6 lg:px-8">
            <div class="flex justify-between h-16">
                <div class="flex items-center">
                    <a href="/" class="text-2xl font-bold text-pink-600">OtakuFest</a>
                    <a href="/events" class="ml-8 text-gray-700 hover:text-pink-600">Jelajahi Event</a>
                </div>
                <div class="flex items-center space-x-4">
                    %s
                </div>
            </div>
        </div>
    </nav>
    <main>%s</main>
</body>
</html>`, esc(title), nav, main)
}

// renderEventCards renders the event grid cells shared by the home,
// listing, and search views
func renderEventCards(events []models.EventSummary) string {
	if len(events) == 0 {
		return `<p class="text-gray-600">Tidak ada event ditemukan.</p>`
	}

	html := ""
	for _, event := range events {
		price := formatPrice(event.CurrentPrice)
		if event.IsEarlyBirdActive && event.CurrentPrice < event.Price {
			price = fmt.Sprintf(`<s class="text-gray-400">%s</s> %s`,
				formatPrice(event.Price), formatPrice(event.CurrentPrice))
		}
		html += fmt.Sprintf(`
			<div class="bg-white rounded-lg shadow-md overflow-hidden hover:shadow-lg transition-shadow">
				<div class="p-6">
					%s
					<h3 class="text-lg font-semibold text-gray-900 mt-2 mb-2">
						<a href="/events/%s" class="hover:text-pink-600">%s</a>
					</h3>
					<p class="text-gray-600 text-sm mb-1">%s</p>
					<p class="text-gray-600 text-sm mb-4">%s, %s</p>
					<div class="flex items-center justify-between">
						<span class="text-pink-600 font-bold">%s</span>
						<a href="/events/%s" class="bg-pink-600 hover:bg-pink-700 text-white px-4 py-2 rounded-lg text-sm">
							Lihat Detail
						</a>
					</div>
				</div>
			</div>
		`, renderCategoryBadge(event.Category),
			esc(event.Slug), esc(event.Title),
			formatDate(event.StartDate),
			esc(event.Venue), esc(event.Location),
			price,
			esc(event.Slug))
	}
	return html
}
