package models

import "time"

// TicketStatus represents the lifecycle status of a purchased ticket
type TicketStatus string

const (
	TicketPending   TicketStatus = "pending"
	TicketPaid      TicketStatus = "paid"
	TicketUsed      TicketStatus = "used"
	TicketCancelled TicketStatus = "cancelled"
	TicketRefunded  TicketStatus = "refunded"
)

// Ticket is a server-owned ticket record. The storefront never
// mutates tickets; it only partitions the fetched set for display.
type Ticket struct {
	ID           string       `json:"id"`
	Event        EventSummary `json:"event"`
	TicketNumber string       `json:"ticket_number"`
	Quantity     int          `json:"quantity"`
	TotalPrice   int          `json:"total_price"`
	Status       TicketStatus `json:"status"`
	CreatedAt    time.Time    `json:"created_at"`
	QRCode       string       `json:"qr_code"`
}

// IsActive reports whether the ticket belongs in the active view
func (s TicketStatus) IsActive() bool {
	return s == TicketPending || s == TicketPaid
}

// IsHistory reports whether the ticket belongs in the history view
func (s TicketStatus) IsHistory() bool {
	return s == TicketUsed || s == TicketCancelled || s == TicketRefunded
}

// Label returns the display label for a ticket status. Statuses
// outside the known set fall back to the raw value rather than
// failing.
func (s TicketStatus) Label() string {
	labels := map[TicketStatus]string{
		TicketPending:   "Menunggu Pembayaran",
		TicketPaid:      "Sudah Dibayar",
		TicketUsed:      "Sudah Digunakan",
		TicketCancelled: "Dibatalkan",
		TicketRefunded:  "Dikembalikan",
	}
	if l, ok := labels[s]; ok {
		return l
	}
	return string(s)
}

// Color returns the badge color class for a ticket status, with a
// neutral fallback for unknown statuses.
func (s TicketStatus) Color() string {
	colors := map[TicketStatus]string{
		TicketPending:   "bg-yellow-500",
		TicketPaid:      "bg-green-500",
		TicketUsed:      "bg-blue-500",
		TicketCancelled: "bg-red-500",
		TicketRefunded:  "bg-gray-500",
	}
	if c, ok := colors[s]; ok {
		return c
	}
	return "bg-gray-500"
}

// PartitionTickets splits a fetched ticket set into the active and
// history views. Tickets with a status outside the known set land in
// neither slice; the unknown count is returned so callers can log the
// discrepancy.
func PartitionTickets(tickets []Ticket) (active, history []Ticket, unknown int) {
	for _, t := range tickets {
		switch {
		case t.Status.IsActive():
			active = append(active, t)
		case t.Status.IsHistory():
			history = append(history, t)
		default:
			unknown++
		}
	}
	return active, history, unknown
}
