package catalog

import (
	"context"
	"log/slog"

	"github.com/smartacademy/academy/store"
)

// Service exposes catalog operations over the store.
type Service struct {
	store *store.Store
}

// NewService creates a catalog service.
func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// IngestText parses the extracted text of a course sheet and stores the
// resulting course.
func (s *Service) IngestText(ctx context.Context, text, schedule string) (*store.Course, error) {
	info := ParseCourseInfo(text)
	course, err := s.store.CreateCourse(ctx, &store.Course{
		Title:       info.Title,
		Category:    info.Category,
		Description: info.Description,
		Schedule:    schedule,
	})
	if err != nil {
		return nil, err
	}
	slog.Info("course ingested",
		slog.Int("course_id", int(course.ID)),
		slog.String("title", course.Title))
	return course, nil
}

// Create stores a course given directly, without parsing.
func (s *Service) Create(ctx context.Context, course *store.Course) (*store.Course, error) {
	return s.store.CreateCourse(ctx, course)
}

// List returns the full catalog.
func (s *Service) List(ctx context.Context) ([]*store.Course, error) {
	return s.store.ListCourses(ctx, &store.FindCourse{})
}

// Get returns a single course by id.
func (s *Service) Get(ctx context.Context, id int32) (*store.Course, error) {
	return s.store.GetCourse(ctx, &store.FindCourse{ID: &id})
}

// Delete removes a course. Its recommendations and stored embeddings go
// with it through the schema cascades.
func (s *Service) Delete(ctx context.Context, id int32) (*store.Course, error) {
	course, err := s.store.GetCourse(ctx, &store.FindCourse{ID: &id})
	if err != nil {
		return nil, err
	}
	if err := s.store.DeleteCourse(ctx, &store.DeleteCourse{ID: id}); err != nil {
		return nil, err
	}
	return course, nil
}
