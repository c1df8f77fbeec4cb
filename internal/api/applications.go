package api

import (
	"context"
	"net/http"

	httpclient "internmatch-client/internal/common/http"
	"internmatch-client/internal/models"
)

// RecordApplication creates or updates the status for a user and listing.
func (c *Client) RecordApplication(ctx context.Context, token string, req models.ApplicationRequest) (*models.Application, error) {
	if err := requireToken(EndpointRecordApplication, token); err != nil {
		return nil, err
	}
	var resp models.ApplicationResponse
	err := c.do(ctx, httpclient.Request{
		Method:   http.MethodPost,
		Path:     "/api/applications",
		Token:    token,
		Body:     req,
		Endpoint: EndpointRecordApplication,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Application, nil
}

func (c *Client) ListApplications(ctx context.Context) ([]models.Application, error) {
	var resp models.ApplicationsResponse
	err := c.do(ctx, httpclient.Request{
		Method:   http.MethodGet,
		Path:     "/api/applications/all",
		Endpoint: EndpointListApplications,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Applications == nil {
		resp.Applications = []models.Application{}
	}
	return resp.Applications, nil
}
