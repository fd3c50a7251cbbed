package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"komunumo/internal/app/bootstrap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the admin console HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.BuildAPI(ctx, cfg, slog.Default())
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			slog.Warn("close api app failed",
				"event", "bootstrap_api_close_failed",
				"module", "cmd/api",
				"layer", "platform",
				"error", err,
			)
		}
	}()
	return app.Run(ctx)
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
