package v1

import (
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/smartacademy/academy/store"
)

// CourseResponse is the public view of a course.
type CourseResponse struct {
	ID          int32  `json:"id"`
	UID         string `json:"uid"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Schedule    string `json:"schedule,omitempty"`
}

func toCourseResponse(course *store.Course) CourseResponse {
	return CourseResponse{
		ID:          course.ID,
		UID:         course.UID,
		Title:       course.Title,
		Category:    course.Category,
		Description: course.Description,
		Schedule:    course.Schedule,
	}
}

// CreateCourseRequest is the body of POST /courses.
type CreateCourseRequest struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Schedule    string `json:"schedule"`
}

// CreateCourse stores a course given as structured fields.
// POST /api/v1/courses
func (s *APIV1Service) CreateCourse(c echo.Context) error {
	var req CreateCourseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
	}

	course, err := s.Catalog.Create(c.Request().Context(), &store.Course{
		Title:       req.Title,
		Category:    req.Category,
		Description: req.Description,
		Schedule:    req.Schedule,
	})
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, toCourseResponse(course))
}

// IngestCourseRequest carries the extracted first-page text of a course
// sheet.
type IngestCourseRequest struct {
	Text     string `json:"text"`
	Schedule string `json:"schedule"`
}

// IngestCourse parses an extracted course sheet and stores the result.
// POST /api/v1/courses/ingest
func (s *APIV1Service) IngestCourse(c echo.Context) error {
	var req IngestCourseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
	}

	course, err := s.Catalog.IngestText(c.Request().Context(), req.Text, req.Schedule)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, toCourseResponse(course))
}

// UploadCourse accepts a course sheet document, extracts its text through
// the configured extractor and stores the parsed course.
// POST /api/v1/courses/upload
func (s *APIV1Service) UploadCourse(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("file is required"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("failed to open uploaded file"))
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("failed to read uploaded file"))
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !s.Extractor.IsSupported(contentType) {
		return c.JSON(http.StatusBadRequest, errorBody("unsupported file type"))
	}

	text, err := s.Extractor.ExtractText(c.Request().Context(), data, contentType)
	if err != nil {
		return c.JSON(http.StatusBadGateway, errorBody("failed to extract text: "+err.Error()))
	}

	course, err := s.Catalog.IngestText(c.Request().Context(), text, c.FormValue("schedule"))
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, toCourseResponse(course))
}

// ListCourses returns the full catalog.
// GET /api/v1/courses
func (s *APIV1Service) ListCourses(c echo.Context) error {
	courses, err := s.Catalog.List(c.Request().Context())
	if err != nil {
		return s.writeError(c, err)
	}

	out := make([]CourseResponse, 0, len(courses))
	for _, course := range courses {
		out = append(out, toCourseResponse(course))
	}
	return c.JSON(http.StatusOK, out)
}

// DeleteCourse removes a course and everything hanging off it.
// DELETE /api/v1/courses/:id
func (s *APIV1Service) DeleteCourse(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid course id"))
	}

	course, err := s.Catalog.Delete(c.Request().Context(), int32(id))
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "course '" + course.Title + "' deleted",
	})
}
