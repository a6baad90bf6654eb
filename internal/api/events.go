package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"otakufest/internal/models"
)

// EventFilters are the optional catalog filters. Empty values and the
// "all" category mean unconstrained; the backend's response is
// authoritative and rendered as-is.
type EventFilters struct {
	Search   string
	Category string
	Location string
}

// query builds the filter query string, omitting unconstrained filters
func (f EventFilters) query() string {
	params := url.Values{}
	if f.Search != "" {
		params.Set("search", f.Search)
	}
	if f.Category != "" && f.Category != "all" {
		params.Set("category", f.Category)
	}
	if f.Location != "" {
		params.Set("location", f.Location)
	}
	if len(params) == 0 {
		return ""
	}
	return "?" + params.Encode()
}

// ListEvents fetches the event catalog with the given filters
func (c *Client) ListEvents(ctx context.Context, filters EventFilters) ([]models.EventSummary, error) {
	body, err := c.do(ctx, http.MethodGet, "/events/"+filters.query(), "", nil, nil)
	if err != nil {
		return nil, err
	}

	var events []models.EventSummary
	if err := unmarshalList(body, &events); err != nil {
		return nil, fmt.Errorf("failed to decode events: %w", err)
	}
	return events, nil
}

// GetEvent fetches a single event detail record by slug. A backend
// 404 maps to models.ErrEventNotFound.
func (c *Client) GetEvent(ctx context.Context, slug string) (*models.Event, error) {
	body, err := c.do(ctx, http.MethodGet, "/events/"+url.PathEscape(slug)+"/", "", nil, nil)
	if err != nil {
		if IsNotFound(err) {
			return nil, models.ErrEventNotFound
		}
		return nil, err
	}

	var event models.Event
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("failed to decode event: %w", err)
	}
	return &event, nil
}

// FeaturedEvents fetches the curated events for the home page
func (c *Client) FeaturedEvents(ctx context.Context) ([]models.EventSummary, error) {
	body, err := c.do(ctx, http.MethodGet, "/events/featured/", "", nil, nil)
	if err != nil {
		return nil, err
	}

	var events []models.EventSummary
	if err := unmarshalList(body, &events); err != nil {
		return nil, fmt.Errorf("failed to decode featured events: %w", err)
	}
	return events, nil
}

// UpcomingEvents fetches events ordered by start date
func (c *Client) UpcomingEvents(ctx context.Context) ([]models.EventSummary, error) {
	body, err := c.do(ctx, http.MethodGet, "/events/upcoming/", "", nil, nil)
	if err != nil {
		return nil, err
	}

	var events []models.EventSummary
	if err := unmarshalList(body, &events); err != nil {
		return nil, fmt.Errorf("failed to decode upcoming events: %w", err)
	}
	return events, nil
}
