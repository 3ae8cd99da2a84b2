// Package v1 exposes the HTTP API: auth, interests, recommendations,
// catalog management and reporting.
package v1

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/smartacademy/academy/internal/errors"
	"github.com/smartacademy/academy/internal/profile"
	"github.com/smartacademy/academy/plugin/textextract"
	"github.com/smartacademy/academy/server/service/auth"
	"github.com/smartacademy/academy/server/service/catalog"
	"github.com/smartacademy/academy/server/service/interest"
	"github.com/smartacademy/academy/server/service/recommend"
	"github.com/smartacademy/academy/server/stats"
	"github.com/smartacademy/academy/store"
)

const userContextKey = "academy/user"

// APIV1Service wires the domain services into echo routes.
type APIV1Service struct {
	Profile   *profile.Profile
	Store     *store.Store
	Auth      *auth.Service
	Catalog   *catalog.Service
	Interests *interest.Service
	Engine    *recommend.Engine
	Reporter  *stats.Reporter
	Extractor *textextract.Client
}

// NewAPIV1Service creates the API service over already-built domain
// services.
func NewAPIV1Service(p *profile.Profile, st *store.Store, authSvc *auth.Service, catalogSvc *catalog.Service, interestSvc *interest.Service, engine *recommend.Engine, reporter *stats.Reporter) *APIV1Service {
	return &APIV1Service{
		Profile:   p,
		Store:     st,
		Auth:      authSvc,
		Catalog:   catalogSvc,
		Interests: interestSvc,
		Engine:    engine,
		Reporter:  reporter,
		Extractor: textextract.NewClient(textextract.ConfigFromEnv()),
	}
}

// RegisterRoutes mounts all v1 routes on e.
func (s *APIV1Service) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1")

	g.POST("/auth/register", s.Register)
	g.POST("/auth/login", s.Login)

	authed := g.Group("", s.authMiddleware)
	authed.GET("/users/me", s.GetMe)
	authed.PUT("/interests", s.ReplaceInterests)
	authed.GET("/interests", s.ListInterests)
	authed.GET("/recommendations", s.ListRecommendations)
	authed.GET("/courses", s.ListCourses)

	admin := authed.Group("", s.requireAdmin)
	admin.POST("/courses", s.CreateCourse)
	admin.POST("/courses/ingest", s.IngestCourse)
	admin.POST("/courses/upload", s.UploadCourse)
	admin.DELETE("/courses/:id", s.DeleteCourse)
	admin.GET("/stats/interests", s.GetInterestStats)
	admin.GET("/stats/recommendations", s.GetRecommendationStats)
	admin.GET("/stats", s.GetStatsSnapshot)
}

// authMiddleware resolves the bearer token and stores the user in the
// request context.
func (s *APIV1Service) authMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return c.JSON(http.StatusUnauthorized, errorBody("missing bearer token"))
		}

		user, err := s.Auth.Authenticate(c.Request().Context(), token)
		if err != nil {
			return s.writeError(c, err)
		}
		c.Set(userContextKey, user)
		return next(c)
	}
}

func (s *APIV1Service) requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if currentUser(c).Role != store.RoleAdmin {
			return c.JSON(http.StatusForbidden, errorBody("admin role required"))
		}
		return next(c)
	}
}

func currentUser(c echo.Context) *store.User {
	user, _ := c.Get(userContextKey).(*store.User)
	return user
}

func errorBody(message string) map[string]string {
	return map[string]string{"error": message}
}

// writeError maps coded errors onto HTTP statuses.
func (s *APIV1Service) writeError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch errors.GetCodeFromError(err, errors.ErrCodeStorageFailure) {
	case errors.ErrCodeNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeInvalidArgument:
		status = http.StatusBadRequest
	case errors.ErrCodeUnauthorized:
		status = http.StatusUnauthorized
	case errors.ErrCodeScoringUnavailable:
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, errorBody(err.Error()))
}
