// Package api is the typed client for the remote matching service.
package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"internmatch-client/internal/common/errors"
	httpclient "internmatch-client/internal/common/http"
)

// Endpoint labels, also used as metric label values.
const (
	EndpointListInternships   = "GET /api/internships"
	EndpointCreateInternship  = "POST /api/internships"
	EndpointDeleteInternship  = "DELETE /api/internships/{id}"
	EndpointDeleteExpired     = "DELETE /api/internships/delete_expired"
	EndpointLogin             = "POST /api/auth/login"
	EndpointSignup            = "POST /api/auth/signup"
	EndpointCurrentUser       = "GET /api/auth/me"
	EndpointUpdateProfile     = "PUT /api/users/{id}"
	EndpointListUsers         = "GET /api/users/all"
	EndpointRecommendations   = "GET /api/recommendations/{userId}"
	EndpointRecordApplication = "POST /api/applications"
	EndpointListApplications  = "GET /api/applications/all"
)

// Client exposes one method per service call. Calls that need a bearer
// credential take it explicitly; the client itself holds no session state.
type Client struct {
	http *httpclient.Client
}

func NewClient(transport *httpclient.Client) *Client {
	return &Client{http: transport}
}

func (c *Client) do(ctx context.Context, req httpclient.Request, out interface{}) error {
	return c.http.DoJSON(ctx, req, out)
}

func pathID(format string, id int) string {
	return fmt.Sprintf(format, url.PathEscape(strconv.Itoa(id)))
}

func requireToken(endpoint, token string) error {
	if token == "" {
		return errors.NewNotAuthenticatedError(endpoint)
	}
	return nil
}
