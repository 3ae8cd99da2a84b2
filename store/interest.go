package store

import (
	"context"
	"strings"

	"github.com/smartacademy/academy/internal/errors"
)

// Interest is a single free-text interest owned by exactly one user.
// Interests are never edited individually; the whole set is replaced.
type Interest struct {
	ID     int32
	UserID int32
	Text   string
}

// FindInterest is the find condition for interests.
type FindInterest struct {
	UserID *int32
}

func (s *Store) ListInterests(ctx context.Context, find *FindInterest) ([]*Interest, error) {
	return s.driver.ListInterests(ctx, find)
}

// ReplaceUserInterests deletes all of the user's interests and inserts the
// given texts in a single transaction. There is no partial update.
func (s *Store) ReplaceUserInterests(ctx context.Context, userID int32, texts []string) ([]*Interest, error) {
	cleaned := make([]string, 0, len(texts))
	for _, text := range texts {
		text = strings.TrimSpace(text)
		if text == "" {
			return nil, errors.InvalidArgument("interest text must not be empty")
		}
		cleaned = append(cleaned, text)
	}
	return s.driver.ReplaceUserInterests(ctx, userID, cleaned)
}
