package store

import (
	"context"
)

// Recommendation is one (user, course) pair annotated with a similarity
// score in [0,1]. Rows exist only as output of the recomputation engine and
// are a point-in-time materialization, not a live view.
type Recommendation struct {
	ID              int32
	UserID          int32
	CourseID        int32
	SimilarityScore float64
	CreatedTs       int64
}

// FindRecommendation is the find condition for recommendations.
type FindRecommendation struct {
	UserID   *int32
	CourseID *int32
}

// ListRecommendations lists recommendations ordered by similarity score
// descending; ties are broken by course id ascending.
func (s *Store) ListRecommendations(ctx context.Context, find *FindRecommendation) ([]*Recommendation, error) {
	return s.driver.ListRecommendations(ctx, find)
}

// ReplaceUserRecommendations atomically replaces the user's recommendation
// set: prior rows are deleted and the given rows inserted within one
// transaction. On failure the prior set remains visible, untouched.
func (s *Store) ReplaceUserRecommendations(ctx context.Context, userID int32, rows []*Recommendation) error {
	return s.driver.ReplaceUserRecommendations(ctx, userID, rows)
}

// DeleteUserRecommendations removes all recommendations of a user.
func (s *Store) DeleteUserRecommendations(ctx context.Context, userID int32) error {
	return s.driver.DeleteUserRecommendations(ctx, userID)
}
