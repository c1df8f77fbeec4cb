package api

import (
	"context"
	"net/http"

	"internmatch-client/internal/common/errors"
	httpclient "internmatch-client/internal/common/http"
	"internmatch-client/internal/models"
)

func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	return c.authenticate(ctx, "/api/auth/login", EndpointLogin, req)
}

func (c *Client) Signup(ctx context.Context, req models.SignupRequest) (*models.AuthResponse, error) {
	return c.authenticate(ctx, "/api/auth/signup", EndpointSignup, req)
}

// authenticate treats a 2xx without both a token and a user as undecodable.
func (c *Client) authenticate(ctx context.Context, path, endpoint string, body interface{}) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.do(ctx, httpclient.Request{
		Method:   http.MethodPost,
		Path:     path,
		Body:     body,
		Endpoint: endpoint,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.AccessToken == "" || resp.User.ID == 0 {
		return nil, errors.NewDecodeError(endpoint, errMissingCredentials)
	}
	return &resp, nil
}

// CurrentUser validates token by asking the service who it belongs to.
func (c *Client) CurrentUser(ctx context.Context, token string) (*models.Profile, error) {
	if err := requireToken(EndpointCurrentUser, token); err != nil {
		return nil, err
	}
	var profile models.Profile
	err := c.do(ctx, httpclient.Request{
		Method:   http.MethodGet,
		Path:     "/api/auth/me",
		Token:    token,
		Endpoint: EndpointCurrentUser,
	}, &profile)
	if err != nil {
		return nil, err
	}
	if profile.ID == 0 {
		return nil, errors.NewDecodeError(EndpointCurrentUser, errMissingProfile)
	}
	return &profile, nil
}
