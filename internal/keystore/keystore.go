// Package keystore persists the small amount of client state that must
// survive a restart: the session token and the static role markers.
package keystore

import "context"

// Well-known keys.
const (
	KeyToken        = "token"
	KeyUserType     = "userType"
	KeyAdminToken   = "adminToken"
	KeyCompanyToken = "companyToken"
)

// Keystore is a durable string map. Get reports ok=false for a missing key.
type Keystore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}
