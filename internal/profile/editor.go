// Package profile manages an edit session over the signed-in student's
// profile: a local draft that is reconciled with the service's answer.
package profile

import (
	"context"
	"sync"

	"internmatch-client/internal/common/errors"
	"internmatch-client/internal/common/logger"
	"internmatch-client/internal/models"
)

type API interface {
	UpdateProfile(ctx context.Context, token string, userID int, update models.ProfileUpdate) (*models.Profile, error)
}

// SessionHandle is the part of the session store the editor reads and patches.
type SessionHandle interface {
	Snapshot() models.SessionSnapshot
	PatchUser(profile models.Profile) error
	ExpireOnUnauthorized(ctx context.Context, err error) bool
}

type Dependencies struct {
	API     API
	Session SessionHandle
	Logger  logger.Logger
}

type Editor struct {
	api     API
	session SessionHandle
	logger  logger.Logger

	mu         sync.Mutex
	editing    bool
	submitting bool
	draft      Draft
	err        error
}

func NewEditor(deps Dependencies) *Editor {
	return &Editor{
		api:     deps.API,
		session: deps.Session,
		logger:  logger.OrNop(deps.Logger),
	}
}

// Begin starts editing with a fresh copy of the session's profile.
func (e *Editor) Begin() (Draft, error) {
	p, err := e.current()
	if err != nil {
		return Draft{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.editing = true
	e.err = nil
	e.draft = FromProfile(p)
	return e.draft.clone(), nil
}

// Set changes one draft field. See Draft.Set for field names.
func (e *Editor) Set(field, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.editing {
		return errors.NewInvalidTransitionError("not editing")
	}
	return e.draft.Set(field, value)
}

// Update applies fn to the draft.
func (e *Editor) Update(fn func(d *Draft)) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.editing {
		return errors.NewInvalidTransitionError("not editing")
	}
	fn(&e.draft)
	return nil
}

func (e *Editor) Draft() Draft {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draft.clone()
}

func (e *Editor) Editing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.editing
}

// Err is the last submit failure.
func (e *Editor) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

// Changes lists the fields where the draft differs from the session's profile.
func (e *Editor) Changes() []string {
	p, err := e.current()
	if err != nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.editing {
		return nil
	}
	return e.draft.diff(p)
}

// Cancel ends editing and resets the draft from the session's current
// profile, not from the copy taken at Begin.
func (e *Editor) Cancel() (Draft, error) {
	p, err := e.current()
	e.mu.Lock()
	defer e.mu.Unlock()
	e.editing = false
	e.err = nil
	if err != nil {
		e.draft = Draft{}
		return Draft{}, err
	}
	e.draft = FromProfile(p)
	return e.draft.clone(), nil
}

// Submit sends the draft. On success the session takes the profile the
// service returned and editing ends. On failure the draft is kept.
func (e *Editor) Submit(ctx context.Context) (*models.Profile, error) {
	snap := e.session.Snapshot()
	if !snap.Authenticated() {
		return nil, errors.NewNotAuthenticatedError("update profile")
	}

	e.mu.Lock()
	if !e.editing {
		e.mu.Unlock()
		return nil, errors.NewInvalidTransitionError("not editing")
	}
	if e.submitting {
		e.mu.Unlock()
		return nil, errors.NewInvalidTransitionError("update already in flight")
	}
	e.submitting = true
	update := e.draft.Update()
	changed := e.draft.diff(*snap.User)
	e.mu.Unlock()

	saved, err := e.api.UpdateProfile(ctx, snap.Token, snap.User.ID, update)

	e.mu.Lock()
	e.submitting = false
	if err != nil {
		e.err = err
		e.mu.Unlock()
		e.logger.Warn("profile update failed", map[string]interface{}{
			"userId":    snap.User.ID,
			"errorCode": string(errors.CodeOf(err)),
		})
		e.session.ExpireOnUnauthorized(ctx, err)
		return nil, err
	}
	e.err = nil
	e.editing = false
	e.draft = FromProfile(*saved)
	e.mu.Unlock()

	if perr := e.session.PatchUser(*saved); perr != nil {
		return nil, perr
	}
	e.logger.Info("profile updated", map[string]interface{}{
		"userId":  saved.ID,
		"changed": changed,
	})
	out := *saved
	return &out, nil
}

func (e *Editor) current() (models.Profile, error) {
	snap := e.session.Snapshot()
	if !snap.Authenticated() {
		return models.Profile{}, errors.NewNotAuthenticatedError("edit profile")
	}
	return *snap.User, nil
}
