package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ehr/nhcx-viewer/internal/config"
	"github.com/ehr/nhcx-viewer/internal/domain/bundles"
	"github.com/ehr/nhcx-viewer/internal/platform/auth"
	"github.com/ehr/nhcx-viewer/internal/platform/db"
	"github.com/ehr/nhcx-viewer/internal/platform/fhir"
	"github.com/ehr/nhcx-viewer/internal/platform/middleware"
	"github.com/ehr/nhcx-viewer/internal/platform/openapi"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the bundle viewer API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
}

// healthFunc reports backing store details for /health. A non-nil error
// marks the server degraded.
type healthFunc func(ctx context.Context) (interface{}, error)

func runServer(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := newLogger(nil, os.Stdout)

	cfg, err := loadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	logger = newLogger(cfg, os.Stdout)

	src, err := openSource(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Str("source", cfg.DataSource).Msg("failed to open bundle source")
	}
	defer src.Close()
	logger.Info().Str("source", cfg.DataSource).Int("candidates", len(src.ids)).Msg("bundle source ready")

	var health healthFunc
	if src.pool != nil {
		pool := src.pool
		health = func(ctx context.Context) (interface{}, error) {
			return db.Check(ctx, pool)
		}
	}

	e := newServer(cfg, newService(src, logger), health, logger)

	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}

func newServer(cfg *config.Config, svc *bundles.Service, health healthFunc, logger zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = outcomeErrorHandler(logger)

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowHeaders: []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
	}))
	e.Use(middleware.RequestTimeout(cfg.RequestTimeout, "/health"))

	e.GET("/health", func(c echo.Context) error {
		body := map[string]interface{}{
			"status":  "ok",
			"version": version,
			"source":  cfg.DataSource,
		}
		if health == nil {
			return c.JSON(http.StatusOK, body)
		}
		details, err := health(c.Request().Context())
		body["database"] = details
		if err != nil {
			body["status"] = "degraded"
			body["error"] = err.Error()
			return c.JSON(http.StatusServiceUnavailable, body)
		}
		return c.JSON(http.StatusOK, body)
	})

	openapi.NewGenerator(version, "http://localhost:"+cfg.Port, cfg.AuthEnabled()).
		RegisterRoutes(e.Group("/api"))

	apiV1 := e.Group("/api/v1")
	apiV1.Use(middleware.RateLimit(middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}))
	if cfg.AuthEnabled() {
		apiV1.Use(auth.JWTMiddleware(auth.JWTConfig{
			SigningKey: []byte(cfg.AuthSigningKey),
			Leeway:     30 * time.Second,
			Skipper:    auth.AuthSkipper,
		}))
	} else {
		logger.Warn().Msg("AUTH_SIGNING_KEY not set; bundle API is unauthenticated")
	}

	bundles.NewHandler(svc, logger).RegisterRoutes(apiV1)
	return e
}

// outcomeErrorHandler renders echo errors as OperationOutcome bodies.
func outcomeErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		msg := "internal server error"
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if m, ok := he.Message.(string); ok {
				msg = m
			}
		} else {
			logger.Error().Err(err).Str("path", c.Request().URL.Path).Msg("unhandled error")
		}

		var outcome *fhir.OperationOutcome
		switch code {
		case http.StatusNotFound:
			outcome = fhir.NewOperationOutcome(fhir.IssueSeverityError, fhir.IssueTypeNotFound, msg)
		case http.StatusMethodNotAllowed:
			outcome = fhir.NewOperationOutcome(fhir.IssueSeverityError, fhir.IssueTypeNotSupported, msg)
		case http.StatusUnauthorized:
			outcome = fhir.UnauthorizedOutcome(msg)
		case http.StatusInternalServerError:
			outcome = fhir.InternalErrorOutcome(msg)
		default:
			outcome = fhir.ErrorOutcome(msg)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, outcome)
		}
		if err != nil {
			logger.Error().Err(err).Msg("failed to write error response")
		}
	}
}
