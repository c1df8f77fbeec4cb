package recommend

import (
	"math"
	"strings"

	"internmatch-client/internal/models"
)

// Placeholders for fields the service left empty.
const (
	DefaultTitle    = "Untitled"
	DefaultCompany  = "Unknown Company"
	DefaultField    = "Not specified"
	DefaultIndustry = "Technology"
	DefaultReason   = "Good fit for your profile"
)

// Score bands.
const (
	BandExcellent = "Excellent Match"
	BandGood      = "Good Match"
	BandFair      = "Fair Match"

	excellentThreshold = 0.75
	goodThreshold      = 0.60
)

// Normalize converts service entries into ranked recommendations. Order is
// preserved: rank is position + 1. Scores arrive on a 0-100 scale and may
// exceed 100 after location boosts; they are scaled and clamped to [0,1].
func Normalize(items []models.RecommendationItem) []models.Recommendation {
	out := make([]models.Recommendation, len(items))
	for i, it := range items {
		out[i] = models.Recommendation{
			Rank: i + 1,
			Internship: models.Listing{
				ID:             it.ID,
				Title:          orDefault(it.Title, DefaultTitle),
				Company:        orDefault(it.Company, DefaultCompany),
				Description:    orDefault(it.Description, ""),
				Location:       orDefault(it.Location, DefaultField),
				Duration:       orDefault(it.Duration, DefaultField),
				Stipend:        orDefault(it.Stipend, DefaultField),
				Industry:       orDefault(it.Industry, DefaultIndustry),
				RequiredSkills: orDefault(it.RequiredSkills, DefaultField),
				IsActive:       true,
			},
			MatchScore:  NormalizeScore(it.MatchScore),
			MatchReason: orDefault(it.MatchReason, DefaultReason),
		}
	}
	return out
}

func NormalizeScore(raw float64) float64 {
	s := raw / 100
	switch {
	case math.IsNaN(s), s < 0:
		return 0
	case s > 1:
		return 1
	}
	return s
}

// Band labels a normalized score.
func Band(score float64) string {
	switch {
	case score >= excellentThreshold:
		return BandExcellent
	case score >= goodThreshold:
		return BandGood
	default:
		return BandFair
	}
}

func orDefault(p *string, def string) string {
	if p == nil || strings.TrimSpace(*p) == "" {
		return def
	}
	return *p
}
