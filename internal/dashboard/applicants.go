package dashboard

import (
	"context"
	"sync"

	"internmatch-client/internal/common/logger"
	"internmatch-client/internal/models"

	"golang.org/x/sync/errgroup"
)

type ApplicantAPI interface {
	ListUsers(ctx context.Context) ([]models.Profile, error)
	ListInternships(ctx context.Context, page, perPage int) (*models.ListingsResponse, error)
	ListApplications(ctx context.Context) ([]models.Application, error)
}

// ApplicantReview joins students, listings and applications for the
// company view. All three are loaded together and replaced together.
type ApplicantReview struct {
	api     ApplicantAPI
	perPage int
	logger  logger.Logger

	mu           sync.RWMutex
	users        []models.Profile
	listings     []models.Listing
	applications []models.Application
	loaded       bool
}

func NewApplicantReview(api ApplicantAPI, perPage int, log logger.Logger) *ApplicantReview {
	return &ApplicantReview{api: api, perPage: perPage, logger: logger.OrNop(log)}
}

// Load fetches the three collections concurrently. If any call fails the
// previous data is kept.
func (r *ApplicantReview) Load(ctx context.Context) error {
	var (
		users []models.Profile
		page  *models.ListingsResponse
		apps  []models.Application
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = r.api.ListUsers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		page, err = r.api.ListInternships(gctx, 1, r.perPage)
		return err
	})
	g.Go(func() error {
		var err error
		apps, err = r.api.ListApplications(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	r.mu.Lock()
	r.users, r.listings, r.applications = users, page.Internships, apps
	r.loaded = true
	r.mu.Unlock()

	r.logger.Info("applicant data loaded", map[string]interface{}{
		"users":        len(users),
		"internships":  len(page.Internships),
		"applications": len(apps),
	})
	return nil
}

func (r *ApplicantReview) Loaded() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loaded
}

// ApplicantsFor returns the students with an application for listingID, in
// application order. Applications whose student is unknown are skipped.
func (r *ApplicantReview) ApplicantsFor(listingID int) []models.Applicant {
	r.mu.RLock()
	defer r.mu.RUnlock()
	byID := r.usersByIDLocked()
	out := []models.Applicant{}
	for _, app := range r.applications {
		if app.InternshipID != listingID {
			continue
		}
		if u, ok := byID[app.UserID]; ok {
			out = append(out, models.Applicant{Profile: u, Application: app})
		}
	}
	return out
}

// AllApplicants returns every student with at least one application.
func (r *ApplicantReview) AllApplicants() []models.Profile {
	r.mu.RLock()
	defer r.mu.RUnlock()
	applied := make(map[int]bool, len(r.applications))
	for _, app := range r.applications {
		applied[app.UserID] = true
	}
	out := []models.Profile{}
	for _, u := range r.users {
		if applied[u.ID] {
			out = append(out, u)
		}
	}
	return out
}

func (r *ApplicantReview) ApplicationsOf(userID int) []models.Application {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.Application{}
	for _, app := range r.applications {
		if app.UserID == userID {
			out = append(out, app)
		}
	}
	return out
}

func (r *ApplicantReview) ActiveListings() []models.Listing {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.Listing{}
	for _, l := range r.listings {
		if l.IsActive {
			out = append(out, l)
		}
	}
	return out
}

// Listing looks up a loaded listing by id.
func (r *ApplicantReview) Listing(id int) (models.Listing, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, l := range r.listings {
		if l.ID == id {
			return l, true
		}
	}
	return models.Listing{}, false
}

func (r *ApplicantReview) Users() []models.Profile {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Profile(nil), r.users...)
}

func (r *ApplicantReview) usersByIDLocked() map[int]models.Profile {
	m := make(map[int]models.Profile, len(r.users))
	for _, u := range r.users {
		m[u.ID] = u
	}
	return m
}
