package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartacademy/academy/store"
)

// InterestResponse is the public view of one interest.
type InterestResponse struct {
	ID   int32  `json:"id"`
	Text string `json:"text"`
}

func toInterestResponses(interests []*store.Interest) []InterestResponse {
	out := make([]InterestResponse, 0, len(interests))
	for _, interest := range interests {
		out = append(out, InterestResponse{ID: interest.ID, Text: interest.Text})
	}
	return out
}

// ReplaceInterestsRequest is the body of PUT /interests.
type ReplaceInterestsRequest struct {
	Interests []string `json:"interests"`
}

// ReplaceInterestsResponse returns the new interests and the freshly
// recomputed recommendations.
type ReplaceInterestsResponse struct {
	Interests       []InterestResponse       `json:"interests"`
	Recommendations []RecommendationResponse `json:"recommendations"`
}

// ReplaceInterests swaps the caller's interest set and recomputes their
// recommendations.
// PUT /api/v1/interests
func (s *APIV1Service) ReplaceInterests(c echo.Context) error {
	var req ReplaceInterestsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
	}

	user := currentUser(c)
	interests, recommendations, err := s.Interests.Replace(c.Request().Context(), user.ID, req.Interests)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, ReplaceInterestsResponse{
		Interests:       toInterestResponses(interests),
		Recommendations: s.toRecommendationResponses(c, recommendations),
	})
}

// ListInterests returns the caller's current interests.
// GET /api/v1/interests
func (s *APIV1Service) ListInterests(c echo.Context) error {
	user := currentUser(c)
	interests, err := s.Interests.List(c.Request().Context(), user.ID)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, toInterestResponses(interests))
}
