// Package guard decides whether a role-scoped view may be shown.
//
// The student gate follows the session. The admin and company gates only
// compare a persisted marker against configured constants; they are a
// placeholder for a server-verified operator session and authorize nothing
// on the service side.
package guard

import (
	"context"
	"fmt"

	"internmatch-client/internal/common/config"
	"internmatch-client/internal/common/errors"
	"internmatch-client/internal/common/logger"
	"internmatch-client/internal/common/metrics"
	"internmatch-client/internal/common/validation"
	"internmatch-client/internal/keystore"
	"internmatch-client/internal/models"
)

type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
	RoleCompany Role = "company"
)

type Decision string

const (
	Admit   Decision = "admit"
	Deny    Decision = "deny"
	Pending Decision = "pending"
)

// Result is a guard decision. Redirect is set only on Deny.
type Result struct {
	Role     Role     `json:"role"`
	Decision Decision `json:"decision"`
	Redirect string   `json:"redirect,omitempty"`
}

// SessionReader is the read side of the session store.
type SessionReader interface {
	Status() models.SessionStatus
	Done() <-chan struct{}
}

type Dependencies struct {
	Session  SessionReader
	Keystore keystore.Keystore
	Logger   logger.Logger
}

type Guard struct {
	session SessionReader
	keys    keystore.Keystore
	roles   config.RolesConfig
	logger  logger.Logger
}

func New(deps Dependencies, roles config.RolesConfig) *Guard {
	if roles.Redirect == "" {
		roles.Redirect = "/"
	}
	return &Guard{
		session: deps.Session,
		keys:    deps.Keystore,
		roles:   roles,
		logger:  logger.OrNop(deps.Logger),
	}
}

// Student decides from the current session status without blocking.
func (g *Guard) Student() Result {
	var d Decision
	switch g.session.Status() {
	case models.SessionAuthenticated:
		d = Admit
	case models.SessionUninitialized, models.SessionLoading:
		d = Pending
	default:
		d = Deny
	}
	return g.result(RoleStudent, d)
}

// AwaitStudent waits for hydration to resolve, then decides.
func (g *Guard) AwaitStudent(ctx context.Context) (Result, error) {
	select {
	case <-g.session.Done():
		return g.Student(), nil
	case <-ctx.Done():
		return g.result(RoleStudent, Pending), ctx.Err()
	}
}

// Check dispatches to the gate for role. The student gate waits for hydration.
func (g *Guard) Check(ctx context.Context, role Role) (Result, error) {
	switch role {
	case RoleStudent:
		return g.AwaitStudent(ctx)
	case RoleAdmin, RoleCompany:
		return g.Operator(ctx, role)
	default:
		return Result{}, errors.NewValidationError(fmt.Sprintf("unknown role %q", role))
	}
}

// Operator admits when the persisted marker and role token match the
// configured pair for role.
func (g *Guard) Operator(ctx context.Context, role Role) (Result, error) {
	cred, tokenKey, err := g.static(role)
	if err != nil {
		return Result{}, err
	}

	marker, _, err := g.keys.Get(ctx, keystore.KeyUserType)
	if err != nil {
		return g.result(role, Deny), err
	}
	token, _, err := g.keys.Get(ctx, tokenKey)
	if err != nil {
		return g.result(role, Deny), err
	}

	if marker == cred.Marker && token == cred.Token {
		g.logger.Warn("operator view admitted by static client-side flag", map[string]interface{}{"role": string(role)})
		return g.result(role, Admit), nil
	}
	return g.result(role, Deny), nil
}

// SignIn compares the credentials against the configured static pair and,
// on a match, persists the role marker.
func (g *Guard) SignIn(ctx context.Context, role Role, email, password string) error {
	cred, tokenKey, err := g.static(role)
	if err != nil {
		return err
	}
	if !validation.ValidateEmail(email) {
		return errors.NewValidationError("Please enter a valid email address", "email")
	}
	if email != cred.Email || password != cred.Password {
		g.logger.Warn("operator sign-in refused", map[string]interface{}{"role": string(role)})
		return errors.NewAccessDeniedError(string(role))
	}

	if err := g.keys.Set(ctx, keystore.KeyUserType, cred.Marker); err != nil {
		return err
	}
	if err := g.keys.Set(ctx, tokenKey, cred.Token); err != nil {
		return err
	}
	g.logger.Warn("operator signed in with static credentials", map[string]interface{}{"role": string(role)})
	return nil
}

// SignOut clears the role token and, if it belongs to role, the marker.
func (g *Guard) SignOut(ctx context.Context, role Role) error {
	cred, tokenKey, err := g.static(role)
	if err != nil {
		return err
	}
	keys := []string{tokenKey}
	if marker, _, err := g.keys.Get(ctx, keystore.KeyUserType); err == nil && marker == cred.Marker {
		keys = append(keys, keystore.KeyUserType)
	}
	return g.keys.Delete(ctx, keys...)
}

func (g *Guard) static(role Role) (config.StaticRole, string, error) {
	switch role {
	case RoleAdmin:
		return g.roles.Admin, keystore.KeyAdminToken, nil
	case RoleCompany:
		return g.roles.Company, keystore.KeyCompanyToken, nil
	default:
		return config.StaticRole{}, "", errors.NewInvalidTransitionError(fmt.Sprintf("role %q has no static gate", role))
	}
}

func (g *Guard) result(role Role, d Decision) Result {
	metrics.GuardDecisions.WithLabelValues(string(role), string(d)).Inc()
	r := Result{Role: role, Decision: d}
	if d == Deny {
		r.Redirect = g.roles.Redirect
	}
	return r
}
