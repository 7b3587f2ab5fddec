package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/calc/config"
	"github.com/dhamidi/calc/telemetry"
	"github.com/dhamidi/calc/workspace"
)

func newLSPCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server for .calc files",
		RunE: func(cmd *cobra.Command, args []string) error {
			shutdown, err := telemetry.Setup(cmd.Context(), "calc-lsp", cfg.OTelEndpoint, cfg.OTelEnabled)
			if err != nil {
				return fmt.Errorf("setup telemetry: %w", err)
			}
			defer flushTelemetry(shutdown)

			server := workspace.NewLSPServer(version, cfg.EvalOptions()...)
			return server.RunStdio()
		},
	}
}
