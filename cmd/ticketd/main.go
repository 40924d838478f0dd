package main

import (
	"context"
	"log/slog"
	"os"

	_ "github.com/avein/ticketd/docs"
	"github.com/avein/ticketd/internal/app"
	"github.com/avein/ticketd/internal/config"
)

// @title ticketd API
// @version 1.0
// @description Event ticketing backend: events, ticket types, orders, QR check-in.
// @host localhost:8000
// @BasePath /
func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.New()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	application := app.New(cfg, logger)

	if err := application.Run(context.Background()); err != nil {
		logger.Error("application finished with error", "error", err)
		os.Exit(1)
	}
}
