package main

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	zlog "github.com/rs/zerolog/log"

	"catalogseed/internal/handlers"
	"catalogseed/internal/middleware"
	"catalogseed/internal/services"
)

// NewApp wires the HTTP surface around the seeding service.
func NewApp(seedService *services.SeedService, authService *services.AuthService, defaultCount int) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})

	app.Use(logger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	apiV1 := app.Group("/api/v1")

	handlers.NewAuthHandler(authService).RegisterRoutes(apiV1)

	protectedRoutes := apiV1.Group("", middleware.AuthRequired(authService))
	handlers.NewSeedHandler(seedService, defaultCount).RegisterRoutes(protectedRoutes)

	return app
}

// serve runs app until ctx is cancelled.
func serve(ctx context.Context, app *fiber.App, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		zlog.Info().Str("addr", addr).Msg("starting server")
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zlog.Info().Msg("shutting down server")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		zlog.Error().Err(err).Msg("error during Fiber shutdown")
		return err
	}
	zlog.Info().Msg("server gracefully stopped")
	return nil
}
