package store

import (
	"context"
	"strings"

	"github.com/lithammer/shortuuid/v4"

	"github.com/smartacademy/academy/internal/errors"
)

// Course is one entry of the course catalog. Courses are immutable once
// created; the only mutation is deletion.
type Course struct {
	ID          int32
	UID         string
	Title       string
	Category    string
	Description string
	Schedule    string
	CreatedTs   int64
}

// FindCourse is the find condition for courses.
type FindCourse struct {
	ID     *int32
	UID    *string
	Limit  *int
	Offset *int
}

// DeleteCourse is the delete condition for courses.
type DeleteCourse struct {
	ID int32
}

func (s *Store) CreateCourse(ctx context.Context, create *Course) (*Course, error) {
	if strings.TrimSpace(create.Title) == "" {
		return nil, errors.InvalidArgument("course title is required")
	}
	if create.UID == "" {
		create.UID = shortuuid.New()
	}
	return s.driver.CreateCourse(ctx, create)
}

func (s *Store) ListCourses(ctx context.Context, find *FindCourse) ([]*Course, error) {
	return s.driver.ListCourses(ctx, find)
}

// GetCourse returns a single course matching the find condition, or a
// NotFound error when no course matches.
func (s *Store) GetCourse(ctx context.Context, find *FindCourse) (*Course, error) {
	list, err := s.driver.ListCourses(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, errors.NotFound("course not found")
	}
	return list[0], nil
}

// DeleteCourse removes a course. Recommendations and stored embeddings
// referencing it are removed by the schema's cascade rules.
func (s *Store) DeleteCourse(ctx context.Context, delete *DeleteCourse) error {
	return s.driver.DeleteCourse(ctx, delete)
}
