package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"komunumo/internal/app/bootstrap"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert demo speakers, events, members and sponsors into empty tables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := bootstrap.BuildSeed(cmd.Context(), cfg, slog.Default())
		if err != nil {
			return err
		}
		defer app.Close()
		return app.Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
