package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartacademy/academy/store"
)

// FrequencyResponse is one bar of a frequency chart.
type FrequencyResponse struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

func toFrequencyResponses(frequencies []*store.Frequency) []FrequencyResponse {
	out := make([]FrequencyResponse, 0, len(frequencies))
	for _, frequency := range frequencies {
		out = append(out, FrequencyResponse{Label: frequency.Label, Count: frequency.Count})
	}
	return out
}

// GetInterestStats reports interest text frequency across all users.
// GET /api/v1/stats/interests
func (s *APIV1Service) GetInterestStats(c echo.Context) error {
	frequencies, err := s.Reporter.InterestFrequency(c.Request().Context())
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, toFrequencyResponses(frequencies))
}

// GetRecommendationStats reports how many users each course is recommended
// to.
// GET /api/v1/stats/recommendations
func (s *APIV1Service) GetRecommendationStats(c echo.Context) error {
	frequencies, err := s.Reporter.RecommendationFrequency(c.Request().Context())
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, toFrequencyResponses(frequencies))
}

// GetStatsSnapshot returns both reports at once.
// GET /api/v1/stats
func (s *APIV1Service) GetStatsSnapshot(c echo.Context) error {
	snapshot, err := s.Reporter.Snapshot(c.Request().Context())
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"interests":       toFrequencyResponses(snapshot.Interests),
		"recommendations": toFrequencyResponses(snapshot.Recommendations),
		"generated_at":    snapshot.GeneratedAt,
	})
}
