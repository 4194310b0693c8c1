package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/damacus/snapsplit/internal/config"
	"github.com/damacus/snapsplit/internal/handlers"
	"github.com/damacus/snapsplit/internal/logger"
	"github.com/damacus/snapsplit/internal/metrics"
	customMiddleware "github.com/damacus/snapsplit/internal/middleware"
	"github.com/damacus/snapsplit/internal/models"
	"github.com/damacus/snapsplit/internal/renderer"
	"github.com/damacus/snapsplit/internal/services"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "snapsplit",
		Version:      version,
		Short:        "Snap Split website and photo gallery server",
		SilenceUsage: true,
		RunE:         runServe,
	}

	cmd.Flags().String("config", "", "config file path (default: ./config.yaml)")
	cmd.Flags().Int("port", 8080, "HTTP server port (env: SNAPSPLIT_SERVER_PORT)")
	cmd.Flags().String("log-level", "info", "log level: debug, info, warn, error (env: SNAPSPLIT_LOG_LEVEL)")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return err
	}

	log := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     os.Stdout,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})

	minioStore, err := services.NewMinioStore(services.StoreConfig{
		Endpoint:        cfg.Storage.Endpoint,
		Region:          cfg.Storage.Region,
		AccessKeyID:     cfg.Storage.AccessKeyID,
		SecretAccessKey: cfg.Storage.SecretAccessKey,
		Bucket:          cfg.Storage.Bucket,
		UseSSL:          cfg.Storage.UseSSL,
	})
	if err != nil {
		return fmt.Errorf("create object store: %w", err)
	}
	log.Info().
		Str("endpoint", cfg.Storage.Endpoint).
		Str("bucket", minioStore.Bucket()).
		Str("prefix", services.GalleryPrefix).
		Msg("object store configured")

	var store services.ObjectStore = minioStore
	if b := cfg.Storage.Breaker; b.Enabled {
		store = services.NewBreakerStore(minioStore, services.BreakerSettings{
			MinRequests: b.MinRequests,
			FailureRate: b.FailureRate,
			Interval:    time.Duration(b.IntervalSeconds) * time.Second,
			Timeout:     time.Duration(b.TimeoutSeconds) * time.Second,
			MaxHalfOpen: b.MaxHalfOpen,
		}, log)
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	e := newServer(cfg, store, log, m)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		log.Info().Str("addr", addr).Str("version", version).Msg("starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

// newServer wires the middleware chain and routes. m may be nil, in which
// case no request metrics are recorded and /metrics is not mounted.
func newServer(cfg *config.Config, store services.ObjectStore, log zerolog.Logger, m *metrics.Metrics) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Services
	sessions := services.NewSessionService(cfg.Auth.Username, cfg.Auth.Password)
	gallery := services.NewGalleryService(store, log, m)
	authHandler := handlers.NewAuthHandler(sessions, cfg.Auth.SecureCookie, log)
	galleryHandler := handlers.NewGalleryHandler(gallery, log)
	pagesHandler := handlers.NewPagesHandler(cfg.Share.AppStoreURL)

	// Middleware
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			event := log.Info()
			if v.Error != nil {
				event = log.Error().Err(v.Error)
			}
			event.
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(customMiddleware.HostRedirect(cfg.Redirect.HostPrefix, cfg.Redirect.Target))
	e.Use(customMiddleware.SecurityHeaders())
	e.Use(middleware.BodyLimit("1M"))
	if m != nil {
		e.Use(customMiddleware.Metrics(m))
	}

	// Template Renderer
	e.Renderer = renderer.New()

	// Pages
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})
	e.GET("/", pagesHandler.Page("home"))
	e.GET("/privacy", pagesHandler.Page("privacy"))
	e.GET("/terms", pagesHandler.Page("terms"))
	e.GET("/data-deletion", pagesHandler.Page("data_deletion"))
	e.GET("/share", pagesHandler.Share)
	e.GET("/gallery", pagesHandler.Page("gallery"))
	if m != nil {
		e.GET("/metrics", echo.WrapHandler(m.Handler()))
	}

	// API
	api := e.Group("/api")
	api.POST("/auth", authHandler.Login, loginRateLimiter(cfg.Auth.LoginRatePerMinute))
	api.GET("/auth", authHandler.Status)
	api.DELETE("/auth", authHandler.Logout)
	api.GET("/download", galleryHandler.DownloadImage)

	requireSession := customMiddleware.RequireSession(sessions)
	api.GET("/gallery", galleryHandler.ListImages, requireSession)
	api.GET("/gallery/recent", galleryHandler.RecentImages, requireSession)
	api.DELETE("/delete-image", galleryHandler.DeleteImage, requireSession)

	return e
}

// loginRateLimiter limits login attempts per client IP. A non-positive
// perMinute disables the limit.
func loginRateLimiter(perMinute int) echo.MiddlewareFunc {
	if perMinute <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	tooMany := func(c echo.Context) error {
		return c.JSON(http.StatusTooManyRequests, models.Result{Success: false, Error: "Too many login attempts"})
	}

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(float64(perMinute) / 60),
			Burst:     perMinute,
			ExpiresIn: 3 * time.Minute,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, _ error) error {
			return tooMany(c)
		},
		DenyHandler: func(c echo.Context, _ string, _ error) error {
			return tooMany(c)
		},
	})
}
