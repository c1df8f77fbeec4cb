package models

// SessionStatus is the lifecycle state of the client session.
type SessionStatus string

const (
	SessionUninitialized SessionStatus = "uninitialized"
	SessionLoading       SessionStatus = "loading"
	SessionAuthenticated SessionStatus = "authenticated"
	SessionAnonymous     SessionStatus = "anonymous"
)

// Resolved reports whether hydration has finished.
func (s SessionStatus) Resolved() bool {
	return s == SessionAuthenticated || s == SessionAnonymous
}

// SessionSnapshot is a point-in-time copy of the session for readers.
// User is nil unless Status is SessionAuthenticated.
type SessionSnapshot struct {
	Status SessionStatus `json:"status"`
	Token  string        `json:"-"`
	User   *Profile      `json:"user,omitempty"`
}

func (s SessionSnapshot) Authenticated() bool {
	return s.Status == SessionAuthenticated && s.Token != "" && s.User != nil
}
