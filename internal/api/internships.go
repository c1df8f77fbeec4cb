package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	httpclient "internmatch-client/internal/common/http"
	"internmatch-client/internal/models"
)

// ListInternships fetches one page. perPage <= 0 leaves the page size to the service.
func (c *Client) ListInternships(ctx context.Context, page, perPage int) (*models.ListingsResponse, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	if perPage > 0 {
		q.Set("per_page", strconv.Itoa(perPage))
	}
	var resp models.ListingsResponse
	err := c.do(ctx, httpclient.Request{
		Method:   http.MethodGet,
		Path:     "/api/internships",
		Query:    q,
		Endpoint: EndpointListInternships,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Internships == nil {
		resp.Internships = []models.Listing{}
	}
	return &resp, nil
}

func (c *Client) CreateInternship(ctx context.Context, listing models.ListingCreate) (*models.Listing, error) {
	var created models.Listing
	err := c.do(ctx, httpclient.Request{
		Method:   http.MethodPost,
		Path:     "/api/internships",
		Body:     listing,
		Endpoint: EndpointCreateInternship,
	}, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) DeleteInternship(ctx context.Context, id int) error {
	return c.do(ctx, httpclient.Request{
		Method:   http.MethodDelete,
		Path:     pathID("/api/internships/%s", id),
		Endpoint: EndpointDeleteInternship,
	}, nil)
}

func (c *Client) DeleteExpired(ctx context.Context) (*models.DeleteExpiredResponse, error) {
	var resp models.DeleteExpiredResponse
	err := c.do(ctx, httpclient.Request{
		Method:   http.MethodDelete,
		Path:     "/api/internships/delete_expired",
		Endpoint: EndpointDeleteExpired,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
