package main

import (
	"log/slog"
	"os"

	"github.com/crestline/huddle/backend/internal/broadcast"
	"github.com/crestline/huddle/backend/internal/router"
	"github.com/crestline/huddle/backend/pkg/config"
	"github.com/crestline/huddle/backend/pkg/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()

	db, err := config.InitDB(logger)
	if err != nil {
		logger.Error("Failed to initialize databases", "error", err.Error())
		os.Exit(1)
	}
	defer db.CloseDB(logger)

	// Broadcast stays a no-op unless the Redis publisher is switched on.
	var notifier broadcast.Notifier = broadcast.Noop{}
	if cfg.BroadcastRedis {
		notifier = broadcast.NewRedis(db.Redis, logger)
	}

	e := echo.New()
	e.Validator = validators.NewValidator()

	router.SetupMiddleware(e)
	if err := router.SetupRoutes(e, router.Deps{
		Postgres: db.Postgres,
		Mongo:    db.Mongo,
		Redis:    db.Redis,
		Notifier: notifier,
		Logger:   logger,
	}); err != nil {
		logger.Error("Failed to set up routes", "error", err.Error())
		os.Exit(1)
	}

	logger.Info("Starting server", "port", cfg.Port, "env", cfg.Env)
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
