package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"support-widget/handler"
	"support-widget/internal/app"
	"support-widget/internal/config"
	"support-widget/internal/logging"
)

func main() {
	ctx := context.Background()

	// ---- Configuration (read only here) ----
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	logger := logging.Setup(cfg.LogOptions())

	// ---- Services ----
	a, err := app.Build(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to build app", "err", err)
		os.Exit(1)
	}
	a.Start(ctx)

	// ---- Handler ----
	h, err := handler.NewHandler(a.Chat, a.Leads, logger, handler.WithCORSOrigins(cfg.CORSAllowedOrigins))
	if err != nil {
		logger.Error("failed to create handler", "err", err)
		os.Exit(1)
	}

	lambda.Start(h.Handle)
}
