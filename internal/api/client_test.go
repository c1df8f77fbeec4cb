package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"internmatch-client/internal/common/errors"
	httpclient "internmatch-client/internal/common/http"
	"internmatch-client/internal/common/logger"
	"internmatch-client/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestAPI(t *testing.T, mux *http.ServeMux) *Client {
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return NewClient(httpclient.NewClient(srv.URL, 2*time.Second, httpclient.WithLogger(logger.NewTestLogger(t))))
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func createTestUser() models.Profile {
	return models.Profile{ID: 3, Name: "Meera", Email: "meera@example.com", GPA: 8.1, LocationPref: "Delhi, Remote"}
}

// ==========================
// Internships
// ==========================

func TestListInternships(t *testing.T) {
	tests := []struct {
		name        string
		perPage     int
		wantPerPage string
	}{
		{name: "explicit page size", perPage: 100, wantPerPage: "100"},
		{name: "service default", perPage: 0, wantPerPage: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPage, gotPerPage string
			mux := http.NewServeMux()
			mux.HandleFunc("GET /api/internships", func(w http.ResponseWriter, r *http.Request) {
				gotPage = r.URL.Query().Get("page")
				gotPerPage = r.URL.Query().Get("per_page")
				writeJSON(w, http.StatusOK, map[string]interface{}{
					"page":                2,
					"per_page":            100,
					"total_pages":         3,
					"total_internships":   250,
					"active_internships":  240,
					"expired_internships": 10,
					"internships":         []models.Listing{{ID: 101, Title: "Go Intern", Deadline: "Rolling"}},
				})
			})
			api := createTestAPI(t, mux)

			resp, err := api.ListInternships(context.Background(), 2, tt.perPage)

			require.NoError(t, err)
			assert.Equal(t, "2", gotPage)
			assert.Equal(t, tt.wantPerPage, gotPerPage)
			assert.Equal(t, 3, resp.TotalPages)
			assert.Equal(t, 250, resp.TotalCount())
			assert.Equal(t, models.ListingStats{Total: 250, Active: 240, Expired: 10}, resp.Stats())
			require.Len(t, resp.Internships, 1)
			assert.True(t, resp.Internships[0].IsRolling())
		})
	}
}

func TestListInternships_PrefersPageCount(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/internships", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{"total_internships": 250, "count": 42, "total_pages": 1})
	})
	api := createTestAPI(t, mux)

	resp, err := api.ListInternships(context.Background(), 1, 0)

	require.NoError(t, err)
	assert.Equal(t, 42, resp.TotalCount())
	assert.NotNil(t, resp.Internships)
}

func TestCreateInternship(t *testing.T) {
	var got models.ListingCreate
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/internships", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusCreated, models.Listing{ID: 77, Title: got.Title, Company: got.Company, IsActive: true})
	})
	api := createTestAPI(t, mux)

	created, err := api.CreateInternship(context.Background(), models.ListingCreate{
		Company: "Acme", Title: "Go Intern", Description: "Build things", RequiredSkills: "Go", Location: "Remote",
	})

	require.NoError(t, err)
	assert.Equal(t, 77, created.ID)
	assert.Equal(t, "Acme", got.Company)
}

func TestDeleteInternship(t *testing.T) {
	var gotID string
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /api/internships/{id}", func(w http.ResponseWriter, r *http.Request) {
		gotID = r.PathValue("id")
		if gotID == "404" {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Internship not found"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Internship deleted"})
	})
	api := createTestAPI(t, mux)

	require.NoError(t, api.DeleteInternship(context.Background(), 12))
	assert.Equal(t, "12", gotID)

	err := api.DeleteInternship(context.Background(), 404)
	assert.True(t, errors.HasCode(err, errors.ErrCodeRequestRejected))
	assert.Equal(t, "Internship not found", errors.Normalize(err).Message)
}

func TestDeleteExpired(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /api/internships/delete_expired", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.DeleteExpiredResponse{Message: "Deleted 4 expired internships", DeletedCount: 4})
	})
	api := createTestAPI(t, mux)

	resp, err := api.DeleteExpired(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 4, resp.DeletedCount)
}

// ==========================
// Auth
// ==========================

func TestLogin(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     interface{}
		wantCode errors.ErrorCode
	}{
		{
			name:   "success",
			status: http.StatusOK,
			body:   models.AuthResponse{Message: "Login successful", AccessToken: "tok-1", User: createTestUser()},
		},
		{
			name:     "bad credentials",
			status:   http.StatusUnauthorized,
			body:     map[string]string{"error": "Invalid email or password"},
			wantCode: errors.ErrCodeUnauthorized,
		},
		{
			name:     "missing token in 2xx",
			status:   http.StatusOK,
			body:     map[string]interface{}{"user": createTestUser()},
			wantCode: errors.ErrCodeDecodeFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
				var req models.LoginRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, "meera@example.com", req.Email)
				writeJSON(w, tt.status, tt.body)
			})
			api := createTestAPI(t, mux)

			resp, err := api.Login(context.Background(), models.LoginRequest{Email: "meera@example.com", Password: "secret1"})

			if tt.wantCode != "" {
				assert.True(t, errors.HasCode(err, tt.wantCode), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "tok-1", resp.AccessToken)
			assert.Equal(t, 3, resp.User.ID)
		})
	}
}

func TestSignup(t *testing.T) {
	var got models.SignupRequest
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/signup", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusCreated, models.AuthResponse{AccessToken: "tok-new", User: createTestUser()})
	})
	api := createTestAPI(t, mux)

	resp, err := api.Signup(context.Background(), models.SignupRequest{
		Name: "Meera", Email: "meera@example.com", Password: "secret1", Major: "CS", GPA: 3.0, LocationPref: "Delhi, Remote",
	})

	require.NoError(t, err)
	assert.Equal(t, "tok-new", resp.AccessToken)
	assert.Equal(t, "CS", got.Major)
	assert.Equal(t, "Delhi, Remote", got.LocationPref)
}

func TestCurrentUser(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good-token" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"msg": "Token has expired"})
			return
		}
		writeJSON(w, http.StatusOK, createTestUser())
	})
	api := createTestAPI(t, mux)

	user, err := api.CurrentUser(context.Background(), "good-token")
	require.NoError(t, err)
	assert.Equal(t, createTestUser(), *user)

	_, err = api.CurrentUser(context.Background(), "old-token")
	assert.True(t, errors.HasCode(err, errors.ErrCodeUnauthorized))

	_, err = api.CurrentUser(context.Background(), "")
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotAuthenticated))
}

// ==========================
// Users, Recommendations, Applications
// ==========================

func TestUpdateProfile(t *testing.T) {
	var got models.ProfileUpdate
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /api/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "3", r.PathValue("id"))
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		u := createTestUser()
		u.Skills = got.Skills
		writeJSON(w, http.StatusOK, models.ProfileUpdateResponse{Message: "Profile updated", User: u})
	})
	api := createTestAPI(t, mux)

	user, err := api.UpdateProfile(context.Background(), "tok-1", 3, models.ProfileUpdate{Skills: "Go, SQL"})

	require.NoError(t, err)
	assert.Equal(t, "Go, SQL", user.Skills)
	assert.Equal(t, "Go, SQL", got.Skills)
}

func TestListUsers(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/users/all", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.UsersResponse{Users: []models.Profile{createTestUser()}})
	})
	api := createTestAPI(t, mux)

	users, err := api.ListUsers(context.Background())

	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestRecommendations(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/recommendations/{userId}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "3", r.PathValue("userId"))
		_, _ = w.Write([]byte(`{"user_id":3,"count":2,"recommendations":[
			{"id":5,"title":"ML Intern","company":null,"match_score":91.5},
			{"id":9,"match_score":40}
		]}`))
	})
	api := createTestAPI(t, mux)

	items, err := api.Recommendations(context.Background(), "tok-1", 3)

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 5, items[0].ID)
	require.NotNil(t, items[0].Title)
	assert.Equal(t, "ML Intern", *items[0].Title)
	assert.Nil(t, items[0].Company)
	assert.InDelta(t, 91.5, items[0].MatchScore, 1e-9)
}

func TestRecommendations_EmptyMessage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/recommendations/{userId}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{"recommendations": []interface{}{}, "message": "No internships available"})
	})
	api := createTestAPI(t, mux)

	items, err := api.Recommendations(context.Background(), "tok-1", 3)

	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestRecordApplication(t *testing.T) {
	var got models.ApplicationRequest
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/applications", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusCreated, models.ApplicationResponse{
			Message:     "Application recorded",
			Application: models.Application{ID: 1, UserID: got.UserID, InternshipID: got.InternshipID, Status: got.Status},
		})
	})
	api := createTestAPI(t, mux)

	app, err := api.RecordApplication(context.Background(), "tok-1", models.ApplicationRequest{
		UserID: 3, InternshipID: 5, Status: models.ApplicationApplied,
	})

	require.NoError(t, err)
	assert.Equal(t, models.ApplicationApplied, got.Status)
	assert.Equal(t, 5, app.InternshipID)

	_, err = api.RecordApplication(context.Background(), "", models.ApplicationRequest{})
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotAuthenticated))
}

func TestListApplications(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/applications/all", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{"applications": nil})
	})
	api := createTestAPI(t, mux)

	apps, err := api.ListApplications(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, apps)
	assert.Empty(t, apps)
}
