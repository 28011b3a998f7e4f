package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/okarhu/daylight-api/internal/api/http"
	"github.com/okarhu/daylight-api/internal/config"
	"github.com/okarhu/daylight-api/internal/gazetteer"
	"github.com/okarhu/daylight-api/internal/scheduler"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound artifact downloads.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Gazetteer index with the configured ranking preference, populated from
	// the artifact built by the offline import job.
	index := gazetteer.NewIndex(cfg.PreferredCountry)
	loader := gazetteer.NewLoader(cfg.GazetteerPath, cfg.GazetteerURL, httpClient)

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 2*time.Minute)
	cities, err := loader.Load(loadCtx)
	cancelLoad()
	if err != nil {
		// Search degrades to empty results until a reload succeeds.
		log.Printf("WARN: initial gazetteer load failed: %v", err)
	} else {
		index.Replace(cities)
		log.Printf("INFO: gazetteer ready with %d records", index.Len())
	}

	// Scheduler that periodically reloads and republishes the index.
	sched := scheduler.New(loader, index, cfg.ReloadInterval)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "daylight-api",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "daylight-api",
			"cities":  index.Len(),
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, index)

	// Start server with graceful shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
