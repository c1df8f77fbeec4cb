// Package dashboard implements the operator views: listing management for
// admins and applicant review for companies.
package dashboard

import (
	"context"

	"internmatch-client/internal/common/logger"
	"internmatch-client/internal/common/validation"
	"internmatch-client/internal/listings"
	"internmatch-client/internal/models"
	"internmatch-client/internal/pagination"
)

type ListingAPI interface {
	listings.API
	CreateInternship(ctx context.Context, listing models.ListingCreate) (*models.Listing, error)
	DeleteInternship(ctx context.Context, id int) error
	DeleteExpired(ctx context.Context) (*models.DeleteExpiredResponse, error)
}

// ListingManager is the admin listing table: one page of listings plus the
// collection counters.
type ListingManager struct {
	api     ListingAPI
	fetcher *pagination.Fetcher[models.Listing]
	source  *listings.Source
	logger  logger.Logger
}

func NewListingManager(api ListingAPI, perPage int, log logger.Logger) *ListingManager {
	log = logger.OrNop(log)
	f, src := listings.NewBrowser(api, perPage, log)
	return &ListingManager{api: api, fetcher: f, source: src, logger: log}
}

// Open loads the first page.
func (m *ListingManager) Open(ctx context.Context) error {
	return m.fetcher.Load(ctx, 1)
}

func (m *ListingManager) Fetcher() *pagination.Fetcher[models.Listing] {
	return m.fetcher
}

func (m *ListingManager) State() pagination.State[models.Listing] {
	return m.fetcher.State()
}

func (m *ListingManager) Stats() models.ListingStats {
	return m.source.Stats()
}

// Create validates the form locally, posts it and goes back to page 1 so
// the new listing is visible.
func (m *ListingManager) Create(ctx context.Context, form models.ListingForm) (*models.Listing, error) {
	if err := validation.ValidateListing(form); err != nil {
		return nil, err
	}
	created, err := m.api.CreateInternship(ctx, form.Payload())
	if err != nil {
		return nil, err
	}
	m.logger.Info("listing created", map[string]interface{}{"id": created.ID, "title": created.Title})
	if err := m.fetcher.Load(ctx, 1); err != nil {
		return created, err
	}
	return created, nil
}

// Delete removes one listing and refetches the current page.
func (m *ListingManager) Delete(ctx context.Context, id int) error {
	err := m.fetcher.Remove(ctx, id, func(ctx context.Context) error {
		return m.api.DeleteInternship(ctx, id)
	})
	if err == nil {
		m.logger.Info("listing deleted", map[string]interface{}{"id": id})
	}
	return err
}

// DeleteExpired asks the service to purge expired listings and reloads page 1.
// It returns how many were deleted.
func (m *ListingManager) DeleteExpired(ctx context.Context) (int, error) {
	resp, err := m.api.DeleteExpired(ctx)
	if err != nil {
		return 0, err
	}
	m.logger.Info("expired listings deleted", map[string]interface{}{"deletedCount": resp.DeletedCount})
	if err := m.fetcher.Load(ctx, 1); err != nil {
		return resp.DeletedCount, err
	}
	return resp.DeletedCount, nil
}

func (m *ListingManager) Close() {
	m.fetcher.Close()
}
