// Package internal contains core application wiring
package internal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"shopmetrics/internal/analytics"
	"shopmetrics/internal/config"
	"shopmetrics/internal/database"
	"shopmetrics/internal/datasource"
	apphttp "shopmetrics/internal/http"
	"shopmetrics/internal/logging"
	"shopmetrics/internal/realtime"
	"shopmetrics/internal/reportcache"
)

// Application wires configuration, storage, the engine and the HTTP surface.
type Application struct {
	Config    *config.Config
	Logger    *slog.Logger
	DBManager *database.DBManager
	Engine    *analytics.Engine
	Hub       *realtime.Hub
	Cache     *reportcache.Cache

	server *fiber.App
}

// NewApp creates a new application instance from the ambient configuration.
func NewApp() (*Application, error) {
	cfg := config.GetConfig()
	return NewAppWithConfig(cfg)
}

// NewAppWithConfig creates a new application with the provided config.
func NewAppWithConfig(cfg *config.Config) (*Application, error) {
	logger := logging.NewLogger(cfg)

	dbManager := database.NewDBManager(cfg, logger)
	if err := dbManager.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	source := datasource.WithTimeout(
		datasource.NewGormSource(dbManager.GetConnection()),
		time.Duration(cfg.FetchTimeoutSeconds)*time.Second,
	)

	engine := analytics.NewEngine(source, analytics.AssumptionsFromConfig(cfg), logger)
	hub := realtime.NewHub(source, time.Duration(cfg.RealtimeIntervalSeconds)*time.Second, logger)

	cache, err := reportcache.New(cfg.RedisAddr, time.Duration(cfg.ReportCacheTTLSeconds)*time.Second, logger)
	if err != nil {
		// The cache is an optimization; a missing redis must not take the
		// service down.
		logger.Warn("Report cache unavailable, continuing without memoization", slog.Any("error", err))
		cache = nil
	}

	health := datasource.NewHealthTracker(func(ctx context.Context) error {
		_, err := source.FetchProducts(ctx, 1)
		return err
	}, time.Duration(cfg.SourceRetestAfterSeconds)*time.Second)

	server := fiber.New(fiber.Config{
		AppName:               cfg.AppName,
		DisableStartupMessage: cfg.IsProduction(),
	})

	handler := &apphttp.Handler{
		DB:     dbManager.GetConnection(),
		Engine: engine,
		Cache:  cache,
		Hub:    hub,
		Logger: logger,
	}
	apphttp.MountRoutes(server, handler, &apphttp.HealthHandler{Health: health})

	return &Application{
		Config:    cfg,
		Logger:    logger,
		DBManager: dbManager,
		Engine:    engine,
		Hub:       hub,
		Cache:     cache,
		server:    server,
	}, nil
}

// Server exposes the fiber app, mainly for tests.
func (a *Application) Server() *fiber.App {
	return a.server
}

// Start listens on the configured port and blocks until shutdown.
func (a *Application) Start() error {
	a.Logger.Info("Starting server", slog.String("port", a.Config.AppPort))
	return a.server.Listen(":" + a.Config.AppPort)
}

// Shutdown stops the HTTP server, the realtime pollers and closes storage.
func (a *Application) Shutdown(ctx context.Context) error {
	a.Hub.Stop()

	if err := a.server.ShutdownWithContext(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	if err := a.Cache.Close(); err != nil {
		a.Logger.Warn("Report cache close failed", slog.Any("error", err))
	}
	return a.DBManager.Close()
}
