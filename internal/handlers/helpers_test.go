package handlers

import (
	"strings"
	"testing"
	"time"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		amount int
		want   string
	}{
		{0, "Rp 0"},
		{500, "Rp 500"},
		{5000, "Rp 5.000"},
		{50000, "Rp 50.000"},
		{105000, "Rp 105.000"},
		{1250000, "Rp 1.250.000"},
		{-5000, "Rp -5.000"},
	}

	for _, tt := range tests {
		if got := formatPrice(tt.amount); got != tt.want {
			t.Errorf("formatPrice(%d) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2026, 10, 10, 19, 0, 0, 0, time.UTC)
	if got := formatDate(d); got != "10 October 2026" {
		t.Errorf("formatDate = %q", got)
	}
	if got := formatDateTime(d); got != "10 October 2026, 19:00" {
		t.Errorf("formatDateTime = %q", got)
	}
}

func TestRenderUserNav_LogoutIsPostForm(t *testing.T) {
	nav := renderUserNav(testSession(), "csrf-xyz")

	// Logout changes state, so it must go through a POST with the
	// token rather than a plain link
	if !strings.Contains(nav, `<form method="POST" action="/logout"`) {
		t.Errorf("logged-in nav has no logout form: %s", nav)
	}
	if !strings.Contains(nav, `name="csrf_token" value="csrf-xyz"`) {
		t.Errorf("logout form carries no token: %s", nav)
	}
	if strings.Contains(nav, `href="/logout"`) {
		t.Errorf("logout must not be a link: %s", nav)
	}
}

func TestRenderUserNav_Anonymous(t *testing.T) {
	nav := renderUserNav(nil, "")
	if !strings.Contains(nav, `href="/login"`) {
		t.Errorf("anonymous nav has no login link: %s", nav)
	}
	if strings.Contains(nav, "/logout") {
		t.Errorf("anonymous nav mentions logout: %s", nav)
	}
}
