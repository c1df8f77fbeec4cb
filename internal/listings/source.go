// Package listings adapts the listing collection endpoint to the generic
// page fetcher.
package listings

import (
	"context"
	"fmt"
	"sync"

	"internmatch-client/internal/common/errors"
	"internmatch-client/internal/common/logger"
	"internmatch-client/internal/models"
	"internmatch-client/internal/pagination"
)

type API interface {
	ListInternships(ctx context.Context, page, perPage int) (*models.ListingsResponse, error)
}

// Source fetches listing pages and remembers the collection-wide counters
// from the most recent response.
type Source struct {
	api API

	mu    sync.RWMutex
	stats models.ListingStats
}

func NewSource(api API) *Source {
	return &Source{api: api}
}

// Fetch implements pagination.FetchFunc. A page past the last one is an
// error rather than being relabelled as the last page.
func (s *Source) Fetch(ctx context.Context, page, perPage int) (models.Page[models.Listing], error) {
	resp, err := s.api.ListInternships(ctx, page, perPage)
	if err != nil {
		return models.Page[models.Listing]{}, err
	}

	s.mu.Lock()
	s.stats = resp.Stats()
	s.mu.Unlock()

	current := resp.Page
	if current < 1 {
		current = page
	}
	last := resp.TotalPages
	if last < 1 {
		last = 1
	}
	if current > last {
		return models.Page[models.Listing]{}, errors.NewInvalidTransitionError(fmt.Sprintf("page %d is outside 1..%d", current, last))
	}
	return models.NewPage(resp.Internships, current, resp.TotalPages, resp.TotalCount()), nil
}

func (s *Source) Stats() models.ListingStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

func ID(l models.Listing) int {
	return l.ID
}

// NewBrowser builds a listing fetcher. perPage 0 uses the service default.
func NewBrowser(api API, perPage int, log logger.Logger) (*pagination.Fetcher[models.Listing], *Source) {
	src := NewSource(api)
	f := pagination.New(src.Fetch, ID,
		pagination.WithName("listings"),
		pagination.WithPerPage(perPage),
		pagination.WithLogger(log),
	)
	return f, src
}
