// Package interest handles interest replacement and the recompute it
// triggers.
package interest

import (
	"context"

	"github.com/smartacademy/academy/server/service/recommend"
	"github.com/smartacademy/academy/store"
)

// Service replaces a user's interest set and recomputes recommendations.
type Service struct {
	store  *store.Store
	engine *recommend.Engine
}

// NewService creates an interest service.
func NewService(st *store.Store, engine *recommend.Engine) *Service {
	return &Service{store: st, engine: engine}
}

// Replace swaps the user's interests for the given texts and recomputes the
// recommendation set. The returned recommendations reflect the new
// interests.
func (s *Service) Replace(ctx context.Context, userID int32, texts []string) ([]*store.Interest, []*store.Recommendation, error) {
	if _, err := s.store.GetUser(ctx, &store.FindUser{ID: &userID}); err != nil {
		return nil, nil, err
	}

	interests, err := s.store.ReplaceUserInterests(ctx, userID, texts)
	if err != nil {
		return nil, nil, err
	}

	recommendations, err := s.engine.Recompute(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return interests, recommendations, nil
}

// List returns the user's current interests.
func (s *Service) List(ctx context.Context, userID int32) ([]*store.Interest, error) {
	return s.store.ListInterests(ctx, &store.FindInterest{UserID: &userID})
}
