package models

// RecommendationItem is one entry as the service sends it: listing fields
// flattened next to a 0-100 score. Missing fields decode as nil.
type RecommendationItem struct {
	ID             int     `json:"id"`
	Company        *string `json:"company"`
	Title          *string `json:"title"`
	Description    *string `json:"description"`
	RequiredSkills *string `json:"required_skills"`
	Location       *string `json:"location"`
	Duration       *string `json:"duration"`
	Stipend        *string `json:"stipend"`
	Industry       *string `json:"industry"`
	MatchScore     float64 `json:"match_score"`
	MatchReason    *string `json:"match_reason"`
}

type RecommendationsResponse struct {
	UserID          int                  `json:"user_id"`
	Count           int                  `json:"count"`
	Recommendations []RecommendationItem `json:"recommendations"`
	Message         string               `json:"message,omitempty"`
}

// Recommendation is a normalized entry. Rank is the 1-based position in the
// service's order; MatchScore is in [0,1].
type Recommendation struct {
	Rank        int     `json:"rank"`
	Internship  Listing `json:"internship"`
	MatchScore  float64 `json:"matchScore"`
	MatchReason string  `json:"matchReason"`
}

// RecommendationView is a recommendation merged with the local status overlay.
type RecommendationView struct {
	Recommendation
	Status ApplicationStatus `json:"status,omitempty"`
	Band   string            `json:"band"`
}
