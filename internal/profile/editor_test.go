package profile

import (
	"context"
	"testing"

	"internmatch-client/internal/common/errors"
	"internmatch-client/internal/common/logger"
	"internmatch-client/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ==========================
// Mock Implementations
// ==========================

type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) UpdateProfile(ctx context.Context, token string, userID int, update models.ProfileUpdate) (*models.Profile, error) {
	args := m.Called(ctx, token, userID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

type stubSession struct {
	snap    models.SessionSnapshot
	patched []models.Profile
}

func (s *stubSession) Snapshot() models.SessionSnapshot {
	out := s.snap
	if s.snap.User != nil {
		u := *s.snap.User
		out.User = &u
	}
	return out
}

func (s *stubSession) PatchUser(p models.Profile) error {
	if !s.snap.Authenticated() {
		return errors.NewNotAuthenticatedError("patch user")
	}
	s.patched = append(s.patched, p)
	s.snap.User = &p
	return nil
}

func (s *stubSession) ExpireOnUnauthorized(_ context.Context, err error) bool {
	if !errors.HasCode(err, errors.ErrCodeUnauthorized) {
		return false
	}
	s.snap = models.SessionSnapshot{Status: models.SessionAnonymous}
	return true
}

// ==========================
// Test Helper Functions
// ==========================

const testToken = "tok-profile-123"

func createTestProfile() models.Profile {
	return models.Profile{
		ID:           9,
		Name:         "Ravi Kumar",
		Email:        "ravi@example.com",
		Major:        "Electronics",
		Year:         "2nd",
		Skills:       "C, Verilog",
		Interests:    "Embedded",
		GPA:          7.9,
		LocationPref: "Chennai,Remote",
	}
}

func createTestSession() *stubSession {
	p := createTestProfile()
	return &stubSession{snap: models.SessionSnapshot{
		Status: models.SessionAuthenticated,
		Token:  testToken,
		User:   &p,
	}}
}

func createTestEditor(t *testing.T, api API, sess SessionHandle) *Editor {
	return NewEditor(Dependencies{API: api, Session: sess, Logger: logger.NewTestLogger(t)})
}

// ==========================
// Draft Tests
// ==========================

func TestFromProfile_SplitsLocations(t *testing.T) {
	d := FromProfile(models.Profile{LocationPref: " Chennai , ,Remote"})
	assert.Equal(t, []string{"Chennai", "Remote"}, d.LocationPref)

	d = FromProfile(models.Profile{})
	assert.Empty(t, d.LocationPref)
}

func TestDraft_Set(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		value   string
		check   func(t *testing.T, d Draft)
		wantErr bool
	}{
		{
			name:  "skills",
			field: FieldSkills,
			value: "Go, Rust",
			check: func(t *testing.T, d Draft) { assert.Equal(t, "Go, Rust", d.Skills) },
		},
		{
			name:  "gpa",
			field: FieldGPA,
			value: " 9.1 ",
			check: func(t *testing.T, d Draft) { assert.InDelta(t, 9.1, d.GPA, 1e-9) },
		},
		{
			name:  "locations",
			field: FieldLocationPref,
			value: "Pune, Remote,",
			check: func(t *testing.T, d Draft) { assert.Equal(t, []string{"Pune", "Remote"}, d.LocationPref) },
		},
		{name: "gpa not a number", field: FieldGPA, value: "high", wantErr: true},
		{name: "gpa out of range", field: FieldGPA, value: "10.5", wantErr: true},
		{name: "email is not editable", field: "email", value: "x@example.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := FromProfile(createTestProfile())
			err := d.Set(tt.field, tt.value)
			if tt.wantErr {
				assert.True(t, errors.HasCode(err, errors.ErrCodeValidationFailed))
				return
			}
			require.NoError(t, err)
			tt.check(t, d)
		})
	}
}

func TestDraft_Update_JoinsLocations(t *testing.T) {
	d := FromProfile(createTestProfile())
	d.LocationPref = []string{"Chennai", " Remote", ""}

	u := d.Update()

	assert.Equal(t, "Chennai, Remote", u.LocationPref)
	assert.Equal(t, "Ravi Kumar", u.Name)
	assert.InDelta(t, 7.9, u.GPA, 1e-9)
}

func TestDraft_Diff_IgnoresLocationSpacing(t *testing.T) {
	p := createTestProfile()
	d := FromProfile(p)

	assert.Empty(t, d.diff(p))

	d.Name = "Ravi K"
	d.LocationPref = []string{"Remote"}
	assert.Equal(t, []string{FieldName, FieldLocationPref}, d.diff(p))
}

// ==========================
// Editor Tests
// ==========================

func TestEditor_Begin(t *testing.T) {
	t.Run("clones the session profile", func(t *testing.T) {
		e := createTestEditor(t, new(MockAPI), createTestSession())

		d, err := e.Begin()

		require.NoError(t, err)
		assert.True(t, e.Editing())
		assert.Equal(t, "Ravi Kumar", d.Name)
		assert.Equal(t, []string{"Chennai", "Remote"}, d.LocationPref)

		d.LocationPref[0] = "Mumbai"
		assert.Equal(t, "Chennai", e.Draft().LocationPref[0])
	})

	t.Run("requires a session", func(t *testing.T) {
		e := createTestEditor(t, new(MockAPI), &stubSession{snap: models.SessionSnapshot{Status: models.SessionAnonymous}})

		_, err := e.Begin()

		assert.True(t, errors.HasCode(err, errors.ErrCodeNotAuthenticated))
		assert.False(t, e.Editing())
	})
}

func TestEditor_SetRequiresEditing(t *testing.T) {
	e := createTestEditor(t, new(MockAPI), createTestSession())

	err := e.Set(FieldName, "x")

	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidTransition))
}

func TestEditor_Submit(t *testing.T) {
	sess := createTestSession()
	saved := createTestProfile()
	saved.Skills = "Go, Rust"
	saved.LocationPref = "Chennai, Remote, Pune"

	api := new(MockAPI)
	api.On("UpdateProfile", mock.Anything, testToken, 9, mock.MatchedBy(func(u models.ProfileUpdate) bool {
		return u.Skills == "Go, Rust" && u.LocationPref == "Chennai, Remote, Pune" && u.Name == "Ravi Kumar"
	})).Return(&saved, nil).Once()
	e := createTestEditor(t, api, sess)

	_, err := e.Begin()
	require.NoError(t, err)
	require.NoError(t, e.Set(FieldSkills, "Go, Rust"))
	require.NoError(t, e.Update(func(d *Draft) { d.LocationPref = append(d.LocationPref, "Pune") }))
	assert.Equal(t, []string{FieldSkills, FieldLocationPref}, e.Changes())

	got, err := e.Submit(context.Background())

	require.NoError(t, err)
	assert.Equal(t, saved, *got)
	assert.False(t, e.Editing())
	assert.NoError(t, e.Err())
	require.Len(t, sess.patched, 1)
	assert.Equal(t, saved, sess.patched[0])
	assert.Equal(t, testToken, sess.snap.Token)
	api.AssertExpectations(t)
}

func TestEditor_Submit_UsesServerProfile(t *testing.T) {
	sess := createTestSession()
	saved := createTestProfile()
	saved.Interests = "Embedded, Robotics (normalized)"

	api := new(MockAPI)
	api.On("UpdateProfile", mock.Anything, testToken, 9, mock.Anything).Return(&saved, nil).Once()
	e := createTestEditor(t, api, sess)
	_, _ = e.Begin()
	require.NoError(t, e.Set(FieldInterests, "Embedded, Robotics"))

	_, err := e.Submit(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Embedded, Robotics (normalized)", sess.snap.User.Interests)
	assert.Equal(t, "Embedded, Robotics (normalized)", e.Draft().Interests)
}

func TestEditor_Submit_FailureKeepsDraft(t *testing.T) {
	sess := createTestSession()
	rejected := errors.NewRejectedError("PUT /api/users/9", 400, "Invalid data")
	api := new(MockAPI)
	api.On("UpdateProfile", mock.Anything, testToken, 9, mock.Anything).Return(nil, rejected).Once()
	e := createTestEditor(t, api, sess)
	_, _ = e.Begin()
	require.NoError(t, e.Set(FieldSkills, "Go"))

	_, err := e.Submit(context.Background())

	assert.ErrorIs(t, err, rejected)
	assert.True(t, e.Editing())
	assert.Equal(t, "Go", e.Draft().Skills)
	assert.Equal(t, rejected, e.Err())
	assert.Empty(t, sess.patched)
	assert.Equal(t, "C, Verilog", sess.snap.User.Skills)
}

func TestEditor_Submit_UnauthorizedExpiresSession(t *testing.T) {
	sess := createTestSession()
	api := new(MockAPI)
	api.On("UpdateProfile", mock.Anything, testToken, 9, mock.Anything).
		Return(nil, errors.NewRejectedError("PUT /api/users/9", 401, "Token has expired")).Once()
	e := createTestEditor(t, api, sess)
	_, _ = e.Begin()

	_, err := e.Submit(context.Background())

	assert.True(t, errors.HasCode(err, errors.ErrCodeUnauthorized))
	assert.Equal(t, models.SessionAnonymous, sess.snap.Status)
}

func TestEditor_Submit_NotEditing(t *testing.T) {
	api := new(MockAPI)
	e := createTestEditor(t, api, createTestSession())

	_, err := e.Submit(context.Background())

	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidTransition))
	api.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEditor_Cancel_RestoresFromSession(t *testing.T) {
	sess := createTestSession()
	e := createTestEditor(t, new(MockAPI), sess)
	_, _ = e.Begin()
	require.NoError(t, e.Set(FieldName, "Someone Else"))

	// The session changed after editing began.
	updated := createTestProfile()
	updated.Name = "Ravi K."
	require.NoError(t, sess.PatchUser(updated))

	d, err := e.Cancel()

	require.NoError(t, err)
	assert.False(t, e.Editing())
	assert.Equal(t, "Ravi K.", d.Name)
	assert.Empty(t, e.Changes())
}
