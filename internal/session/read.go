package session

import "internmatch-client/internal/models"

// Snapshot returns a copy of the current state. The profile is copied so
// callers may keep it.
func (s *Store) Snapshot() models.SessionSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := models.SessionSnapshot{Status: s.status, Token: s.token}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	return snap
}

func (s *Store) Status() models.SessionStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the cached profile, or nil when not authenticated.
func (s *Store) User() *models.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Done is closed once hydration has resolved.
func (s *Store) Done() <-chan struct{} {
	return s.done
}
