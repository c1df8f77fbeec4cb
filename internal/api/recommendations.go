package api

import (
	"context"
	"net/http"

	httpclient "internmatch-client/internal/common/http"
	"internmatch-client/internal/models"
)

// Recommendations returns the ranked entries in service order, unnormalized.
func (c *Client) Recommendations(ctx context.Context, token string, userID int) ([]models.RecommendationItem, error) {
	if err := requireToken(EndpointRecommendations, token); err != nil {
		return nil, err
	}
	var resp models.RecommendationsResponse
	err := c.do(ctx, httpclient.Request{
		Method:   http.MethodGet,
		Path:     pathID("/api/recommendations/%s", userID),
		Token:    token,
		Endpoint: EndpointRecommendations,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Recommendations == nil {
		resp.Recommendations = []models.RecommendationItem{}
	}
	return resp.Recommendations, nil
}
