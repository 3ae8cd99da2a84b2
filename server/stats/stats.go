// Package stats provides aggregate reporting over interests and
// recommendations, shaped for simple bar charts.
package stats

import (
	"context"
	"sync"
	"time"

	"github.com/smartacademy/academy/store"
)

// cacheTTL bounds how stale a cached report may get.
const cacheTTL = time.Minute

// Report is a snapshot of both frequency reports.
type Report struct {
	Interests       []*store.Frequency
	Recommendations []*store.Frequency
	GeneratedAt     time.Time
}

// Reporter computes frequency reports, caching them briefly so dashboard
// polling does not hammer the database.
type Reporter struct {
	store *store.Store

	mu     sync.Mutex
	cached *Report
}

// NewReporter creates a reporter over the given store.
func NewReporter(st *store.Store) *Reporter {
	return &Reporter{store: st}
}

// InterestFrequency reports how many times each exact interest text occurs
// across all users, most frequent first.
func (r *Reporter) InterestFrequency(ctx context.Context) ([]*store.Frequency, error) {
	return r.store.GetInterestFrequency(ctx)
}

// RecommendationFrequency reports how many users each course is currently
// recommended to, by course title, most frequent first. Courses nobody is
// recommended do not appear.
func (r *Reporter) RecommendationFrequency(ctx context.Context) ([]*store.Frequency, error) {
	return r.store.GetRecommendationFrequency(ctx)
}

// Snapshot returns both reports, reusing a recent cached result when
// available.
func (r *Reporter) Snapshot(ctx context.Context) (*Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cached != nil && time.Since(r.cached.GeneratedAt) < cacheTTL {
		return r.cached, nil
	}

	interests, err := r.store.GetInterestFrequency(ctx)
	if err != nil {
		return nil, err
	}
	recommendations, err := r.store.GetRecommendationFrequency(ctx)
	if err != nil {
		return nil, err
	}

	r.cached = &Report{
		Interests:       interests,
		Recommendations: recommendations,
		GeneratedAt:     time.Now(),
	}
	return r.cached, nil
}

// Invalidate drops the cached snapshot.
func (r *Reporter) Invalidate() {
	r.mu.Lock()
	r.cached = nil
	r.mu.Unlock()
}
