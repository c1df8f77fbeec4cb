// Package recommend caches the ranked recommendation list for the signed-in
// student and tracks which listings they applied to or saved.
package recommend

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"internmatch-client/internal/common/errors"
	"internmatch-client/internal/common/logger"
	"internmatch-client/internal/common/metrics"
	"internmatch-client/internal/models"
)

type API interface {
	Recommendations(ctx context.Context, token string, userID int) ([]models.RecommendationItem, error)
	RecordApplication(ctx context.Context, token string, req models.ApplicationRequest) (*models.Application, error)
}

// SessionReader is the part of the session the workflow depends on.
type SessionReader interface {
	Snapshot() models.SessionSnapshot
	ExpireOnUnauthorized(ctx context.Context, err error) bool
}

type Dependencies struct {
	API     API
	Session SessionReader
	Logger  logger.Logger
}

// Workflow owns the recommendation cache and the status overlay. The overlay
// is kept apart from the cache and merged only when reading. Both belong to
// owner and are dropped as soon as a different user is signed in.
type Workflow struct {
	api     API
	session SessionReader
	logger  logger.Logger

	mu       sync.RWMutex
	owner    int
	items    []models.Recommendation
	loading  bool
	err      error
	seq      uint64
	overlay  map[int]models.ApplicationStatus
	inflight map[int]bool
}

func New(deps Dependencies) *Workflow {
	return &Workflow{
		api:      deps.API,
		session:  deps.Session,
		logger:   logger.OrNop(deps.Logger),
		overlay:  make(map[int]models.ApplicationStatus),
		inflight: make(map[int]bool),
	}
}

// Request fetches a fresh list and replaces the cache on success. On failure
// the previous cache is kept and the error returned.
func (w *Workflow) Request(ctx context.Context) ([]models.Recommendation, error) {
	snap := w.session.Snapshot()
	if !snap.Authenticated() {
		return nil, errors.NewNotAuthenticatedError("recommendations")
	}

	w.mu.Lock()
	w.adoptLocked(snap.User.ID)
	w.seq++
	seq := w.seq
	w.loading = true
	w.mu.Unlock()

	raw, err := w.api.Recommendations(ctx, snap.Token, snap.User.ID)

	w.mu.Lock()
	if seq != w.seq {
		w.mu.Unlock()
		return nil, errors.NewStaleResponseError("recommendations superseded")
	}
	w.loading = false
	if err != nil {
		w.err = err
		w.mu.Unlock()
		w.session.ExpireOnUnauthorized(ctx, err)
		return nil, err
	}
	w.items = Normalize(raw)
	w.err = nil
	out := cloneRecs(w.items)
	w.mu.Unlock()

	w.logger.Info("recommendations loaded", map[string]interface{}{
		"userId": snap.User.ID,
		"count":  len(out),
	})
	return out, nil
}

// Ensure returns the cached list when there is one and fetches otherwise.
func (w *Workflow) Ensure(ctx context.Context) ([]models.Recommendation, error) {
	w.mu.RLock()
	if w.ownedBy(w.session.Snapshot()) && len(w.items) > 0 {
		out := cloneRecs(w.items)
		w.mu.RUnlock()
		return out, nil
	}
	w.mu.RUnlock()
	return w.Request(ctx)
}

// Mark records status for a listing and, once the service accepts it,
// updates the overlay. A listing already applied to is not sent again.
func (w *Workflow) Mark(ctx context.Context, listingID int, status models.ApplicationStatus) error {
	if status != models.ApplicationApplied && status != models.ApplicationSaved {
		return errors.NewValidationError(fmt.Sprintf("unsupported status %q", status), "status")
	}
	snap := w.session.Snapshot()
	if !snap.Authenticated() {
		return errors.NewNotAuthenticatedError("record application")
	}

	w.mu.Lock()
	w.adoptLocked(snap.User.ID)
	if w.overlay[listingID] == models.ApplicationApplied {
		w.mu.Unlock()
		return errors.NewAlreadyAppliedError(listingID)
	}
	if w.inflight[listingID] {
		w.mu.Unlock()
		return errors.NewInvalidTransitionError(fmt.Sprintf("internship %d already has a request in flight", listingID))
	}
	w.inflight[listingID] = true
	w.mu.Unlock()

	_, err := w.api.RecordApplication(ctx, snap.Token, models.ApplicationRequest{
		UserID:       snap.User.ID,
		InternshipID: listingID,
		Status:       status,
	})

	w.mu.Lock()
	if w.owner == snap.User.ID {
		delete(w.inflight, listingID)
		if err == nil {
			w.overlay[listingID] = status
		}
	}
	w.mu.Unlock()

	if err != nil {
		w.session.ExpireOnUnauthorized(ctx, err)
		return err
	}
	metrics.ApplicationMarks.WithLabelValues(string(status)).Inc()
	w.logger.Info("application status recorded", map[string]interface{}{
		"internshipId": listingID,
		"status":       string(status),
	})
	return nil
}

// StatusOf returns the overlay entry for a listing, or "".
func (w *Workflow) StatusOf(listingID int) models.ApplicationStatus {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if !w.ownedBy(w.session.Snapshot()) {
		return ""
	}
	return w.overlay[listingID]
}

// View merges the cache with the overlay. The cache itself is not modified.
func (w *Workflow) View() []models.RecommendationView {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if !w.ownedBy(w.session.Snapshot()) {
		return []models.RecommendationView{}
	}
	out := make([]models.RecommendationView, len(w.items))
	for i, rec := range w.items {
		out[i] = models.RecommendationView{
			Recommendation: rec,
			Status:         w.overlay[rec.Internship.ID],
			Band:           Band(rec.MatchScore),
		}
	}
	return out
}

// Count is the number of cached recommendations.
func (w *Workflow) Count() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if !w.ownedBy(w.session.Snapshot()) {
		return 0
	}
	return len(w.items)
}

func (w *Workflow) Loading() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.loading
}

func (w *Workflow) Err() error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.err
}

// adoptLocked hands the workflow to userID. Switching users drops everything
// cached for the previous one and bumps seq so their in-flight fetch is
// discarded when it lands.
func (w *Workflow) adoptLocked(userID int) {
	if w.owner == userID {
		return
	}
	if w.owner != 0 {
		w.logger.Info("recommendation state reset for new user", map[string]interface{}{
			"previousUserId": w.owner,
			"userId":         userID,
		})
	}
	w.owner = userID
	w.items = nil
	w.err = nil
	w.loading = false
	w.seq++
	w.overlay = make(map[int]models.ApplicationStatus)
	w.inflight = make(map[int]bool)
}

// ownedBy reports whether the cached state belongs to the user in snap.
func (w *Workflow) ownedBy(snap models.SessionSnapshot) bool {
	return snap.Authenticated() && snap.User.ID == w.owner
}

// ApplySearchURL is where the student is sent to find the employer's own
// application page.
func ApplySearchURL(l models.Listing) string {
	q := fmt.Sprintf("%s %s internship apply India", l.Company, l.Title)
	return "https://www.google.com/search?q=" + url.QueryEscape(q)
}

func cloneRecs(in []models.Recommendation) []models.Recommendation {
	return append([]models.Recommendation(nil), in...)
}
