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

	httpapi "github.com/kasiv/weather-lookup/internal/api/http"
	"github.com/kasiv/weather-lookup/internal/config"
	"github.com/kasiv/weather-lookup/internal/scheduler"
	"github.com/kasiv/weather-lookup/internal/store"
	"github.com/kasiv/weather-lookup/internal/weather"
	"github.com/kasiv/weather-lookup/internal/weather/providers"
)

func main() {
	// Load configuration (including .env).
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls. Its timeout is the
	// per-request bound; a timed-out call routes the lookup to fallback.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Result cache: only provider-sourced results land here.
	cache := store.NewMemoryCache(cfg.CacheTTL)

	google := providers.NewGoogleWeatherProvider(httpClient, cfg.GoogleAPIKey)

	// Core service with the full provider cascade injected.
	service := weather.NewService(weather.ServiceConfig{
		Conditions:   google,
		Forecast:     google,
		Geocoder:     providers.NewGoogleGeocoder(cfg.GoogleAPIKey),
		Inference:    providers.NewWttrProvider(httpClient),
		Cache:        cache,
		DefaultUnits: cfg.DefaultUnits,
		Configured:   cfg.GoogleAPIKey != "",
	})

	// Scheduler that keeps configured locations warm in the cache.
	sched := scheduler.New(cfg.WarmLocations, cfg.WarmInterval, service)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weather-lookup",
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
			"service": "weather-lookup",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service)

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
