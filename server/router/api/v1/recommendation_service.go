package v1

import (
	"math"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartacademy/academy/store"
)

// RecommendationResponse is one recommended course with its match score,
// rounded to two decimals for display.
type RecommendationResponse struct {
	CourseID        int32   `json:"course_id"`
	Title           string  `json:"title"`
	Category        string  `json:"category"`
	Description     string  `json:"description"`
	Schedule        string  `json:"schedule,omitempty"`
	SimilarityScore float64 `json:"similarity_score"`
}

func roundScore(score float64) float64 {
	return math.Round(score*100) / 100
}

func (s *APIV1Service) toRecommendationResponses(c echo.Context, recommendations []*store.Recommendation) []RecommendationResponse {
	ctx := c.Request().Context()
	coursesByID := make(map[int32]*store.Course)
	if courses, err := s.Store.ListCourses(ctx, &store.FindCourse{}); err == nil {
		for _, course := range courses {
			coursesByID[course.ID] = course
		}
	}

	out := make([]RecommendationResponse, 0, len(recommendations))
	for _, recommendation := range recommendations {
		response := RecommendationResponse{
			CourseID:        recommendation.CourseID,
			SimilarityScore: roundScore(recommendation.SimilarityScore),
		}
		if course, ok := coursesByID[recommendation.CourseID]; ok {
			response.Title = course.Title
			response.Category = course.Category
			response.Description = course.Description
			response.Schedule = course.Schedule
		}
		out = append(out, response)
	}
	return out
}

// ListRecommendations returns the caller's current recommendation set,
// best match first.
// GET /api/v1/recommendations
func (s *APIV1Service) ListRecommendations(c echo.Context) error {
	user := currentUser(c)
	recommendations, err := s.Store.ListRecommendations(c.Request().Context(), &store.FindRecommendation{UserID: &user.ID})
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, s.toRecommendationResponses(c, recommendations))
}
