package dashboard

import (
	"context"
	"sync"
	"testing"

	"internmatch-client/internal/common/errors"
	"internmatch-client/internal/common/logger"
	"internmatch-client/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Fake Service
// ==========================

// fakeService keeps listings, users and applications in memory and pages
// listings the way the real endpoint does.
type fakeService struct {
	mu           sync.Mutex
	listings     []models.Listing
	users        []models.Profile
	applications []models.Application
	nextID       int
	defaultPage  int
	failUsers    error
	listCalls    int
}

func createTestService(n int) *fakeService {
	s := &fakeService{nextID: n + 1, defaultPage: 10}
	for i := 1; i <= n; i++ {
		s.listings = append(s.listings, models.Listing{ID: i, Title: "Listing", IsActive: i%5 != 0})
	}
	return s
}

func (s *fakeService) ListInternships(_ context.Context, page, perPage int) (*models.ListingsResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	if perPage <= 0 {
		perPage = s.defaultPage
	}
	total := len(s.listings)
	start, end := (page-1)*perPage, page*perPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	active := 0
	for _, l := range s.listings {
		if l.IsActive {
			active++
		}
	}
	return &models.ListingsResponse{
		Page:               page,
		PerPage:            perPage,
		TotalPages:         (total + perPage - 1) / perPage,
		Internships:        append([]models.Listing(nil), s.listings[start:end]...),
		TotalInternships:   total,
		ActiveInternships:  active,
		ExpiredInternships: total - active,
	}, nil
}

func (s *fakeService) CreateInternship(_ context.Context, l models.ListingCreate) (*models.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	created := models.Listing{ID: s.nextID, Company: l.Company, Title: l.Title, IsActive: true}
	s.nextID++
	s.listings = append([]models.Listing{created}, s.listings...)
	return &created, nil
}

func (s *fakeService) DeleteInternship(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.listings {
		if l.ID == id {
			s.listings = append(s.listings[:i], s.listings[i+1:]...)
			return nil
		}
	}
	return errors.NewRejectedError("DELETE /api/internships/{id}", 404, "Internship not found")
}

func (s *fakeService) DeleteExpired(_ context.Context) (*models.DeleteExpiredResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.listings[:0]
	deleted := 0
	for _, l := range s.listings {
		if l.IsActive {
			kept = append(kept, l)
		} else {
			deleted++
		}
	}
	s.listings = kept
	return &models.DeleteExpiredResponse{DeletedCount: deleted}, nil
}

func (s *fakeService) ListUsers(_ context.Context) ([]models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failUsers != nil {
		return nil, s.failUsers
	}
	return append([]models.Profile(nil), s.users...), nil
}

func (s *fakeService) ListApplications(_ context.Context) ([]models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Application(nil), s.applications...), nil
}

func createValidListingForm() models.ListingForm {
	return models.ListingForm{
		Company:        "Acme",
		Title:          "Platform Intern",
		Description:    "Work on the platform team",
		RequiredSkills: "Go, Kubernetes",
		Location:       "Bangalore",
		Deadline:       "2026-12-31",
	}
}

// ==========================
// ListingManager Tests
// ==========================

func TestListingManager_Open(t *testing.T) {
	svc := createTestService(25)
	m := NewListingManager(svc, 0, logger.NewTestLogger(t))
	defer m.Close()

	require.NoError(t, m.Open(context.Background()))

	st := m.State()
	assert.Equal(t, 1, st.Page.Page)
	assert.Equal(t, 3, st.Page.TotalPages)
	assert.Len(t, st.Page.Items, 10)
	assert.Equal(t, models.ListingStats{Total: 25, Active: 20, Expired: 5}, m.Stats())
}

func TestListingManager_Create(t *testing.T) {
	svc := createTestService(25)
	m := NewListingManager(svc, 10, logger.NewTestLogger(t))
	defer m.Close()
	require.NoError(t, m.Open(context.Background()))
	require.NoError(t, m.Fetcher().GoTo(context.Background(), 3))

	created, err := m.Create(context.Background(), createValidListingForm())

	require.NoError(t, err)
	assert.Equal(t, 26, created.ID)
	st := m.State()
	assert.Equal(t, 1, st.Page.Page, "create returns to the first page")
	assert.Equal(t, 26, st.Page.Items[0].ID)
	assert.Equal(t, 26, st.Page.TotalCount)
}

func TestListingManager_Create_ValidatesLocally(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *models.ListingForm)
	}{
		{name: "missing company", mutate: func(f *models.ListingForm) { f.Company = "" }},
		{name: "blank title", mutate: func(f *models.ListingForm) { f.Title = "   " }},
		{name: "missing skills", mutate: func(f *models.ListingForm) { f.RequiredSkills = "" }},
		{name: "bad deadline", mutate: func(f *models.ListingForm) { f.Deadline = "next week" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := createTestService(3)
			m := NewListingManager(svc, 10, logger.NewTestLogger(t))
			defer m.Close()
			form := createValidListingForm()
			tt.mutate(&form)

			_, err := m.Create(context.Background(), form)

			assert.True(t, errors.HasCode(err, errors.ErrCodeValidationFailed))
			assert.Equal(t, 4, svc.nextID, "nothing should be created")
			assert.Equal(t, 0, svc.listCalls)
		})
	}
}

func TestListingManager_Delete(t *testing.T) {
	svc := createTestService(21)
	m := NewListingManager(svc, 10, logger.NewTestLogger(t))
	defer m.Close()
	require.NoError(t, m.Open(context.Background()))
	require.NoError(t, m.Fetcher().GoTo(context.Background(), 3))

	require.NoError(t, m.Delete(context.Background(), 21))

	st := m.State()
	assert.Equal(t, 2, st.Page.Page)
	assert.Equal(t, 20, st.Page.TotalCount)
	assert.Equal(t, 20, m.Stats().Total)
}

func TestListingManager_Delete_NotFound(t *testing.T) {
	svc := createTestService(5)
	m := NewListingManager(svc, 10, logger.NewTestLogger(t))
	defer m.Close()
	require.NoError(t, m.Open(context.Background()))

	err := m.Delete(context.Background(), 99)

	assert.True(t, errors.HasCode(err, errors.ErrCodeRequestRejected))
	assert.Equal(t, 5, m.State().Page.TotalCount)
}

func TestListingManager_DeleteExpired(t *testing.T) {
	svc := createTestService(25)
	m := NewListingManager(svc, 10, logger.NewTestLogger(t))
	defer m.Close()
	require.NoError(t, m.Open(context.Background()))
	require.NoError(t, m.Fetcher().Next(context.Background()))

	n, err := m.DeleteExpired(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 5, n)
	st := m.State()
	assert.Equal(t, 1, st.Page.Page)
	assert.Equal(t, 20, st.Page.TotalCount)
	assert.Equal(t, models.ListingStats{Total: 20, Active: 20, Expired: 0}, m.Stats())
}

// ==========================
// ApplicantReview Tests
// ==========================

func createTestReviewService() *fakeService {
	svc := createTestService(3)
	svc.users = []models.Profile{
		{ID: 1, Name: "Asha"},
		{ID: 2, Name: "Ravi"},
		{ID: 3, Name: "Meera"},
	}
	svc.applications = []models.Application{
		{ID: 10, UserID: 2, InternshipID: 1, Status: models.ApplicationApplied},
		{ID: 11, UserID: 1, InternshipID: 1, Status: models.ApplicationSaved},
		{ID: 12, UserID: 99, InternshipID: 1, Status: models.ApplicationApplied},
		{ID: 13, UserID: 2, InternshipID: 3, Status: models.ApplicationApplied},
	}
	return svc
}

func TestApplicantReview_Load(t *testing.T) {
	r := NewApplicantReview(createTestReviewService(), 0, logger.NewTestLogger(t))
	assert.False(t, r.Loaded())

	require.NoError(t, r.Load(context.Background()))

	assert.True(t, r.Loaded())
	assert.Len(t, r.Users(), 3)
	assert.Len(t, r.ActiveListings(), 3)
	l, ok := r.Listing(3)
	assert.True(t, ok)
	assert.Equal(t, 3, l.ID)
	_, ok = r.Listing(42)
	assert.False(t, ok)
}

func TestApplicantReview_ApplicantsFor(t *testing.T) {
	r := NewApplicantReview(createTestReviewService(), 0, logger.NewTestLogger(t))
	require.NoError(t, r.Load(context.Background()))

	got := r.ApplicantsFor(1)

	require.Len(t, got, 2, "unknown students are skipped")
	assert.Equal(t, "Ravi", got[0].Profile.Name)
	assert.Equal(t, models.ApplicationApplied, got[0].Application.Status)
	assert.Equal(t, "Asha", got[1].Profile.Name)
	assert.Empty(t, r.ApplicantsFor(2))
}

func TestApplicantReview_AllApplicants(t *testing.T) {
	r := NewApplicantReview(createTestReviewService(), 0, logger.NewTestLogger(t))
	require.NoError(t, r.Load(context.Background()))

	all := r.AllApplicants()

	require.Len(t, all, 2)
	assert.Equal(t, []int{1, 2}, []int{all[0].ID, all[1].ID})
	assert.Len(t, r.ApplicationsOf(2), 2)
	assert.Empty(t, r.ApplicationsOf(3))
}

func TestApplicantReview_FailureKeepsPreviousData(t *testing.T) {
	svc := createTestReviewService()
	r := NewApplicantReview(svc, 0, logger.NewTestLogger(t))
	require.NoError(t, r.Load(context.Background()))

	svc.failUsers = errors.NewRejectedError("GET /api/users/all", 500, "")
	svc.users = nil

	err := r.Load(context.Background())

	assert.True(t, errors.IsRejected(err))
	assert.Len(t, r.Users(), 3)
	assert.Len(t, r.ApplicantsFor(1), 2)
}
