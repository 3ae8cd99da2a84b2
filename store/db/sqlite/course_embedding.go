package sqlite

import (
	"context"

	"github.com/smartacademy/academy/store"
)

// SQLite has no pgvector equivalent, so course embeddings are not persisted.
// The recommendation engine treats the unsupported errors below as "compute
// in-process" and works off the embedding provider directly.

// UpsertCourseEmbedding is NOT supported for SQLite.
func (d *DB) UpsertCourseEmbedding(ctx context.Context, upsert *store.CourseEmbedding) (*store.CourseEmbedding, error) {
	return nil, store.ErrVectorStorageUnsupported
}

// ListCourseEmbeddings is NOT supported for SQLite.
func (d *DB) ListCourseEmbeddings(ctx context.Context, find *store.FindCourseEmbedding) ([]*store.CourseEmbedding, error) {
	return nil, store.ErrVectorStorageUnsupported
}

// DeleteCourseEmbedding is NOT supported for SQLite.
// Returns nil (success) so course deletion still succeeds.
func (d *DB) DeleteCourseEmbedding(ctx context.Context, courseID int32) error {
	return nil
}
