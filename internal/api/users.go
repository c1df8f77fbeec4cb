package api

import (
	"context"
	stderrors "errors"
	"net/http"

	"internmatch-client/internal/common/errors"
	httpclient "internmatch-client/internal/common/http"
	"internmatch-client/internal/models"
)

var (
	errMissingCredentials = stderrors.New("response has no access_token or user")
	errMissingProfile     = stderrors.New("response has no user")
)

// UpdateProfile returns the user as the service stored it.
func (c *Client) UpdateProfile(ctx context.Context, token string, userID int, update models.ProfileUpdate) (*models.Profile, error) {
	if err := requireToken(EndpointUpdateProfile, token); err != nil {
		return nil, err
	}
	var resp models.ProfileUpdateResponse
	err := c.do(ctx, httpclient.Request{
		Method:   http.MethodPut,
		Path:     pathID("/api/users/%s", userID),
		Token:    token,
		Body:     update,
		Endpoint: EndpointUpdateProfile,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.User.ID == 0 {
		return nil, errors.NewDecodeError(EndpointUpdateProfile, errMissingProfile)
	}
	return &resp.User, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]models.Profile, error) {
	var resp models.UsersResponse
	err := c.do(ctx, httpclient.Request{
		Method:   http.MethodGet,
		Path:     "/api/users/all",
		Endpoint: EndpointListUsers,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Users == nil {
		resp.Users = []models.Profile{}
	}
	return resp.Users, nil
}
