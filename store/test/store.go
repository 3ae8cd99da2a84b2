// Package test provides a ready-to-use store backed by a throwaway SQLite
// database for package level tests.
package test

import (
	"context"
	"testing"

	"github.com/smartacademy/academy/internal/profile"
	"github.com/smartacademy/academy/store"
	"github.com/smartacademy/academy/store/db/sqlite"
)

// NewTestingStore opens a fresh SQLite-backed store in a temp directory and
// runs migrations. The database is removed with the test's temp dir.
func NewTestingStore(ctx context.Context, t *testing.T) *store.Store {
	p := &profile.Profile{
		Mode:                "test",
		Driver:              "sqlite",
		Data:                t.TempDir(),
		ScoringField:        profile.ScoringFieldTitleDescription,
		SimilarityThreshold: profile.DefaultSimilarityThreshold,
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("failed to validate test profile: %v", err)
	}

	driver, err := sqlite.NewDB(p)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		_ = driver.Close()
	})

	st := store.New(driver, p)
	if err := st.Migrate(ctx); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return st
}
