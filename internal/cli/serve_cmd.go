package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"support-widget/internal/httpapi"
)

func newServeCmd(envFile *string) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, *envFile, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :$PORT)")
	return cmd
}

func runServe(ctx context.Context, envFile, addr string) error {
	a, logger, err := bootstrap(ctx, envFile)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	a.Start(ctx)
	router, err := a.Router()
	if err != nil {
		return err
	}
	if addr == "" {
		addr = ":" + a.Config.Port
	}
	return httpapi.Serve(ctx, addr, router, httpapi.WriteTimeoutFor(a.Config.GenerateTimeout), logger)
}
