package store

import (
	"context"

	"github.com/pkg/errors"
)

// ErrVectorStorageUnsupported is returned by drivers that cannot persist
// embeddings. Callers fall back to computing embeddings in-process.
var ErrVectorStorageUnsupported = errors.New("course embedding storage requires PostgreSQL with pgvector extension")

// CourseEmbedding is the persisted vector of a course's representative
// text, keyed by (course, model, scoring field). Only the postgres driver
// stores vectors; on sqlite the engine computes embeddings in-process.
type CourseEmbedding struct {
	ID           int32
	CourseID     int32
	ScoringField string
	Model        string
	Embedding    []float32
	CreatedTs    int64
	UpdatedTs    int64
}

// FindCourseEmbedding is the find condition for course embeddings.
type FindCourseEmbedding struct {
	CourseID     *int32
	ScoringField *string
	Model        *string
}

// UpsertCourseEmbedding inserts or updates a course embedding.
func (s *Store) UpsertCourseEmbedding(ctx context.Context, upsert *CourseEmbedding) (*CourseEmbedding, error) {
	return s.driver.UpsertCourseEmbedding(ctx, upsert)
}

// ListCourseEmbeddings lists course embeddings.
func (s *Store) ListCourseEmbeddings(ctx context.Context, find *FindCourseEmbedding) ([]*CourseEmbedding, error) {
	return s.driver.ListCourseEmbeddings(ctx, find)
}

// DeleteCourseEmbedding deletes the embeddings of a course.
func (s *Store) DeleteCourseEmbedding(ctx context.Context, courseID int32) error {
	return s.driver.DeleteCourseEmbedding(ctx, courseID)
}
