// Package catalog wraps the events API for the live-search grid.
// Filter edits fire a fetch per change with no debounce, so responses
// can come back out of order; each fetch carries a sequence number
// and only the newest response may replace the shown result set.
package catalog

import (
	"context"
	"sync"
	"sync/atomic"

	"otakufest/internal/api"
	"otakufest/internal/models"
)

// Searcher serializes result application for the event grid
type Searcher struct {
	events api.EventsAPI
	seq    atomic.Uint64

	mu       sync.Mutex
	applied  uint64
	snapshot []models.EventSummary
}

// NewSearcher creates a searcher over the given catalog API
func NewSearcher(events api.EventsAPI) *Searcher {
	return &Searcher{events: events}
}

// Search issues a catalog fetch for the given filters and returns the
// result set to display. A response that lost the race to a
// later-issued fetch is discarded and the newer snapshot returned
// instead. On fetch failure the prior result set is returned
// unchanged alongside the error, so the grid keeps its last good
// contents.
func (s *Searcher) Search(ctx context.Context, filters api.EventFilters) ([]models.EventSummary, error) {
	seq := s.seq.Add(1)

	events, err := s.events.ListEvents(ctx, filters)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		return s.snapshot, err
	}
	if seq <= s.applied {
		// A later-issued fetch already applied; this response is stale.
		return s.snapshot, nil
	}

	s.applied = seq
	s.snapshot = events
	return events, nil
}

// Results returns the currently applied result set
func (s *Searcher) Results() []models.EventSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}
