package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	httpapi "spotboard/internal/api/http"
	"spotboard/internal/config"
	"spotboard/internal/price"
	"spotboard/internal/scheduler"
	"spotboard/internal/storage"
	"spotboard/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound storage calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Storage client fetching per-day documents.
	fetcher := storage.NewClient(httpClient, cfg.PriceAPIBaseURL)

	// In-memory board store with configured retention.
	memStore := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge)

	// Core service assembling the price board.
	service := price.NewService(fetcher, memStore, price.Options{
		TaxMultiplier: cfg.TaxMultiplier,
		CutoffHourUTC: cfg.PublishCutoffHourUTC,
		Location:      cfg.Location,
	})

	// Assemble an initial board so the API has something to serve right
	// away. DataUnavailable here is not fatal; the scheduler retries.
	initCtx, initCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if _, err := service.Rebuild(initCtx, time.Now()); err != nil {
		if errors.Is(err, price.ErrDataUnavailable) {
			log.Printf("ERROR: initial rebuild produced no data: %v", err)
		} else {
			log.Printf("ERROR: initial rebuild failed: %v", err)
		}
	}
	initCancel()

	// Scheduler driving periodic rebuilds and view refreshes.
	sched := scheduler.New(service, cfg.RebuildInterval, cfg.ViewInterval)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "spotboard",
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
			"service": "spotboard",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service)

	// Start server with graceful shutdown
	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
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
