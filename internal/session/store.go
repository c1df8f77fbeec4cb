// Package session holds the client's authentication state: the durable token,
// the cached profile and the hydration lifecycle.
package session

import (
	"context"
	"sync"

	"internmatch-client/internal/common/errors"
	"internmatch-client/internal/common/logger"
	"internmatch-client/internal/common/metrics"
	"internmatch-client/internal/common/validation"
	"internmatch-client/internal/keystore"
	"internmatch-client/internal/models"
)

// AuthAPI is the subset of the remote service the session needs.
type AuthAPI interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Signup(ctx context.Context, req models.SignupRequest) (*models.AuthResponse, error)
	CurrentUser(ctx context.Context, token string) (*models.Profile, error)
}

type Dependencies struct {
	API      AuthAPI
	Keystore keystore.Keystore
	Logger   logger.Logger
}

// Store is the single writer of session state. Readers take snapshots.
type Store struct {
	api    AuthAPI
	keys   keystore.Keystore
	logger logger.Logger

	mu     sync.RWMutex
	status models.SessionStatus
	token  string
	user   *models.Profile
	// epoch advances on every login and logout so a hydration that started
	// earlier cannot overwrite their outcome.
	epoch uint64

	hydrateMu sync.Mutex
	started   bool
	done      chan struct{}
}

func NewStore(deps Dependencies) *Store {
	return &Store{
		api:    deps.API,
		keys:   deps.Keystore,
		logger: logger.OrNop(deps.Logger),
		status: models.SessionUninitialized,
		done:   make(chan struct{}),
	}
}

// Hydrate restores the session from the persisted token. It runs once per
// Store: concurrent callers wait for the first run, later callers get the
// resolved status immediately. Without a persisted token no request is made.
// Any failure to validate the token is treated as a logout.
func (s *Store) Hydrate(ctx context.Context) (models.SessionStatus, error) {
	s.hydrateMu.Lock()
	if s.started {
		s.hydrateMu.Unlock()
		select {
		case <-s.done:
			return s.Status(), nil
		case <-ctx.Done():
			return s.Status(), ctx.Err()
		}
	}
	s.started = true
	s.hydrateMu.Unlock()
	defer close(s.done)

	s.mu.Lock()
	if s.status != models.SessionUninitialized {
		// Login or logout got here first.
		status := s.status
		s.mu.Unlock()
		return status, nil
	}
	epoch := s.epoch
	s.setStatusLocked(models.SessionLoading)
	s.mu.Unlock()

	token, ok, err := s.keys.Get(ctx, keystore.KeyToken)
	if err != nil {
		s.logger.Warn("failed to read persisted token", map[string]interface{}{"error": err.Error()})
	}
	if !ok || token == "" || err != nil {
		s.commitHydrate(epoch, "", nil)
		return s.Status(), nil
	}

	profile, err := s.api.CurrentUser(ctx, token)
	if err != nil {
		s.logger.Info("persisted token rejected, signing out", map[string]interface{}{
			"token":     logger.MaskToken(token),
			"errorCode": string(errors.CodeOf(err)),
		})
		s.clearStaleToken(ctx, epoch)
		s.commitHydrate(epoch, "", nil)
		return s.Status(), nil
	}

	s.commitHydrate(epoch, token, profile)
	return s.Status(), nil
}

func (s *Store) commitHydrate(epoch uint64, token string, profile *models.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		// A login or logout landed while validating; it already decided the state.
		return
	}
	if token != "" && profile != nil {
		p := *profile
		s.token, s.user = token, &p
		s.setStatusLocked(models.SessionAuthenticated)
		s.logger.Info("session restored", map[string]interface{}{"userId": p.ID})
		return
	}
	s.token, s.user = "", nil
	s.setStatusLocked(models.SessionAnonymous)
}

// clearStaleToken drops the rejected token from the keystore unless a login
// or logout has happened since hydration began. The epoch check and the delete
// run under s.mu so a login cannot persist its token in between.
func (s *Store) clearStaleToken(ctx context.Context, epoch uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		return
	}
	if err := s.keys.Delete(context.WithoutCancel(ctx), keystore.KeyToken); err != nil {
		s.logger.Warn("failed to clear persisted token", map[string]interface{}{"error": err.Error()})
	}
}

// resolveHydrate marks hydration finished when a login or logout happens
// before it was ever started, so waiters are not stranded.
func (s *Store) resolveHydrate() {
	s.hydrateMu.Lock()
	defer s.hydrateMu.Unlock()
	if !s.started {
		s.started = true
		close(s.done)
	}
}

// Login installs a token and profile obtained from a login or signup
// response. There is no round trip. The in-memory session is authenticated
// even when persisting the token fails; the storage error is returned.
func (s *Store) Login(ctx context.Context, token string, profile models.Profile) error {
	if token == "" || profile.ID == 0 {
		return errors.NewValidationError("Login requires a token and a user")
	}

	s.mu.Lock()
	s.epoch++
	s.token, s.user = token, &profile
	s.setStatusLocked(models.SessionAuthenticated)
	s.mu.Unlock()
	s.resolveHydrate()

	s.logger.Info("session authenticated", map[string]interface{}{
		"userId": profile.ID,
		"token":  logger.MaskToken(token),
	})

	if err := s.keys.Set(ctx, keystore.KeyToken, token); err != nil {
		s.logger.Warn("failed to persist token", map[string]interface{}{"error": err.Error()})
		return err
	}
	return nil
}

// Logout clears the token and profile. Calling it again is harmless.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.epoch++
	wasAuthenticated := s.status == models.SessionAuthenticated
	s.token, s.user = "", nil
	s.setStatusLocked(models.SessionAnonymous)
	s.mu.Unlock()
	s.resolveHydrate()

	if wasAuthenticated {
		s.logger.Info("session signed out", nil)
	}
	return s.keys.Delete(ctx, keystore.KeyToken)
}

// PatchUser replaces the cached profile. The token is untouched and the
// profile is not re-validated.
func (s *Store) PatchUser(profile models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != models.SessionAuthenticated {
		return errors.NewNotAuthenticatedError("patch user")
	}
	s.user = &profile
	return nil
}

// Authenticate signs in with email and password.
func (s *Store) Authenticate(ctx context.Context, email, password string) (*models.Profile, error) {
	req := models.LoginRequest{Email: email, Password: password}
	if err := validation.ValidateLogin(req); err != nil {
		return nil, err
	}
	resp, err := s.api.Login(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.Login(ctx, resp.AccessToken, resp.User); err != nil && !errors.HasCode(err, errors.ErrCodeStorageFailed) {
		return nil, err
	}
	return &resp.User, nil
}

// Register validates the form locally, creates the account and signs in.
// Invalid forms never reach the network.
func (s *Store) Register(ctx context.Context, form models.SignupForm) (*models.Profile, error) {
	req, err := validation.SignupRequest(form)
	if err != nil {
		return nil, err
	}
	resp, err := s.api.Signup(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.Login(ctx, resp.AccessToken, resp.User); err != nil && !errors.HasCode(err, errors.ErrCodeStorageFailed) {
		return nil, err
	}
	return &resp.User, nil
}

// ExpireOnUnauthorized logs the session out when err is an authorization
// rejection, and reports whether it did.
func (s *Store) ExpireOnUnauthorized(ctx context.Context, err error) bool {
	if !errors.HasCode(err, errors.ErrCodeUnauthorized) {
		return false
	}
	s.logger.Warn("token rejected by service, signing out", nil)
	if lerr := s.Logout(ctx); lerr != nil {
		s.logger.Warn("failed to clear persisted token", map[string]interface{}{"error": lerr.Error()})
	}
	return true
}

func (s *Store) setStatusLocked(status models.SessionStatus) {
	if s.status == status {
		return
	}
	s.status = status
	metrics.SessionTransitions.WithLabelValues(string(status)).Inc()
}
