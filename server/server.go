// Package server assembles the domain services and serves the HTTP API.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/smartacademy/academy/internal/observability"
	"github.com/smartacademy/academy/internal/profile"
	"github.com/smartacademy/academy/plugin/notify"
	"github.com/smartacademy/academy/server/ai"
	academymw "github.com/smartacademy/academy/server/middleware"
	apiv1 "github.com/smartacademy/academy/server/router/api/v1"
	"github.com/smartacademy/academy/server/service/auth"
	"github.com/smartacademy/academy/server/service/catalog"
	"github.com/smartacademy/academy/server/service/interest"
	"github.com/smartacademy/academy/server/service/recommend"
	"github.com/smartacademy/academy/server/stats"
	"github.com/smartacademy/academy/store"
)

// Server is the assembled application.
type Server struct {
	Profile *profile.Profile
	Store   *store.Store

	echoServer *echo.Echo
}

// NewServer builds the full service graph from a profile and store.
func NewServer(ctx context.Context, p *profile.Profile, st *store.Store) (*Server, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(academymw.NewRateLimiter(10, 20).Middleware())
	e.Use(requestLogger())

	embedder, err := ai.NewEmbeddingService(&ai.EmbeddingConfig{
		APIKey:  p.AIAPIKey,
		BaseURL: p.AIBaseURL,
		Model:   p.AIEmbeddingModel,
	})
	if err != nil {
		return nil, err
	}
	scorer := ai.NewCachingScorer(embedder)

	notifier, err := buildNotifier(p)
	if err != nil {
		return nil, err
	}

	engine := recommend.NewEngine(st, scorer, notifier, p)
	api := apiv1.NewAPIV1Service(
		p,
		st,
		auth.NewService(st, p.JWTSecret),
		catalog.NewService(st),
		interest.NewService(st, engine),
		engine,
		stats.NewReporter(st),
	)
	api.RegisterRoutes(e)

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	return &Server{
		Profile:    p,
		Store:      st,
		echoServer: e,
	}, nil
}

// requestLogger attaches a RequestContext to every request and logs its
// outcome with the generated request id.
func requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			reqCtx := observability.NewRequestContext(slog.Default(), 0)
			ctx := observability.WithRequestContext(c.Request().Context(), reqCtx)
			c.SetRequest(c.Request().WithContext(ctx))

			err := next(c)

			reqCtx.Info("request",
				slog.String("method", c.Request().Method),
				slog.String("uri", c.Request().RequestURI),
				slog.Int("status", c.Response().Status),
				slog.Int64(observability.LogFieldDuration, reqCtx.DurationMs()))
			return err
		}
	}
}

func buildNotifier(p *profile.Profile) (notify.Notifier, error) {
	if !p.NotifyEnabled || p.SendGridAPIKey == "" {
		return notify.NoopNotifier{}, nil
	}
	return notify.NewSendGridNotifier(p.SendGridAPIKey, p.NotifyFromName, p.NotifyFromEmail)
}

// Start serves HTTP until the context is canceled.
func (s *Server) Start(ctx context.Context) error {
	address := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)
	slog.Info("start HTTP server",
		slog.String("address", address),
		slog.String("mode", s.Profile.Mode),
		slog.String("version", s.Profile.Version))

	if err := s.echoServer.Start(address); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and closes the store.
func (s *Server) Shutdown(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := s.echoServer.Shutdown(ctx); err != nil {
		slog.Error("failed to shut down server", slog.String("error", err.Error()))
	}
	if err := s.Store.Close(); err != nil {
		slog.Error("failed to close store", slog.String("error", err.Error()))
	}
	slog.Info("server shut down")
}
