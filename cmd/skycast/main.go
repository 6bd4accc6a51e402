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

	httpapi "github.com/skycast-io/skycast/internal/api/http"
	"github.com/skycast-io/skycast/internal/config"
	"github.com/skycast-io/skycast/internal/notify"
	"github.com/skycast-io/skycast/internal/scheduler"
	"github.com/skycast-io/skycast/internal/service"
	"github.com/skycast-io/skycast/internal/store"
	"github.com/skycast-io/skycast/internal/weather/providers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider and sink calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Caller-side cache: the alert engine itself holds no state.
	cache := store.NewMemoryCache(cfg.CacheMaxAge)

	// Open-Meteo provider with backoff + circuit breaker built in.
	provider := providers.NewOpenMeteo(httpClient)

	// Dispatch to the configured sink, or to the log when none is set.
	var dispatcher notify.Dispatcher
	if cfg.NotifySinkURL != "" {
		dispatcher = notify.NewWebhookDispatcher(httpClient, cfg.NotifySinkURL, notify.DefaultChannels())
	} else {
		log.Println("INFO: NOTIFY_SINK_URL not set; notifications go to the log")
		dispatcher = notify.NewLogDispatcher()
	}

	opts := []service.Option{service.WithAlertDelay(cfg.AlertDelay)}
	if cfg.GoogleGeocoderAPIKey != "" {
		opts = append(opts, service.WithFallbackSearch(providers.NewGoogleGeocoder(cfg.GoogleGeocoderAPIKey)))
	}

	svc := service.New(provider, cache, dispatcher, opts...)

	// Periodic refresh + morning summaries for tracked locations.
	sched := scheduler.New(cfg.Locations, cfg.FetchInterval, cfg.DailySummaryAt, svc)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "skycast",
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

	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "skycast",
		})
	})

	httpapi.RegisterRoutes(app, svc)

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
