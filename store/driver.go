package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for store driver.
// It contains all methods that store database driver should implement.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	IsInitialized(ctx context.Context) (bool, error)

	// User model related methods.
	CreateUser(ctx context.Context, create *User) (*User, error)
	ListUsers(ctx context.Context, find *FindUser) ([]*User, error)
	DeleteUser(ctx context.Context, delete *DeleteUser) error

	// Course model related methods. Courses are immutable: no update.
	CreateCourse(ctx context.Context, create *Course) (*Course, error)
	ListCourses(ctx context.Context, find *FindCourse) ([]*Course, error)
	DeleteCourse(ctx context.Context, delete *DeleteCourse) error

	// Interest model related methods. The interest set is only ever
	// replaced wholesale, inside one transaction.
	ListInterests(ctx context.Context, find *FindInterest) ([]*Interest, error)
	ReplaceUserInterests(ctx context.Context, userID int32, texts []string) ([]*Interest, error)

	// Recommendation model related methods. ReplaceUserRecommendations is
	// the transactional delete-then-insert backing the recomputation
	// engine's all-or-nothing invariant.
	ListRecommendations(ctx context.Context, find *FindRecommendation) ([]*Recommendation, error)
	ReplaceUserRecommendations(ctx context.Context, userID int32, rows []*Recommendation) error
	DeleteUserRecommendations(ctx context.Context, userID int32) error

	// CourseEmbedding model related methods.
	UpsertCourseEmbedding(ctx context.Context, upsert *CourseEmbedding) (*CourseEmbedding, error)
	ListCourseEmbeddings(ctx context.Context, find *FindCourseEmbedding) ([]*CourseEmbedding, error)
	DeleteCourseEmbedding(ctx context.Context, courseID int32) error

	// Aggregate reporting methods.
	GetInterestFrequency(ctx context.Context) ([]*Frequency, error)
	GetRecommendationFrequency(ctx context.Context) ([]*Frequency, error)
}
