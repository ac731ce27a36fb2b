package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"support-widget/internal/app"
	"support-widget/internal/config"
	"support-widget/internal/logging"
)

// NewRootCmd builds the widget command tree.
func NewRootCmd() *cobra.Command {
	var envFile string
	root := &cobra.Command{
		Use:           "widget",
		Short:         "Customer-support chat widget backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	root.AddCommand(
		newServeCmd(&envFile),
		newChatCmd(&envFile),
	)
	return root
}

// bootstrap loads configuration and wires the application.
func bootstrap(ctx context.Context, envFile string) (*app.App, *slog.Logger, error) {
	if err := config.LoadDotEnv(envFile); err != nil {
		return nil, nil, fmt.Errorf("loading %s: %w", envFile, err)
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger := logging.Setup(cfg.LogOptions())
	a, err := app.Build(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return a, logger, nil
}
