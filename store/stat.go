package store

import "context"

// Frequency is one bar-chart-ready label/count pair.
type Frequency struct {
	Label string
	Count int64
}

// GetInterestFrequency groups all interest rows across all users by exact
// text and counts them. Grouping is case-sensitive as stored; normalization
// is the caller's concern.
func (s *Store) GetInterestFrequency(ctx context.Context) ([]*Frequency, error) {
	return s.driver.GetInterestFrequency(ctx)
}

// GetRecommendationFrequency groups all recommendation rows by the joined
// course title and counts how many users each course was recommended to.
// Courses without recommendations are absent from the result.
func (s *Store) GetRecommendationFrequency(ctx context.Context) ([]*Frequency, error) {
	return s.driver.GetRecommendationFrequency(ctx)
}
