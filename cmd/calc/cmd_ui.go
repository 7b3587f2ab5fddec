package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/calc/config"
	"github.com/dhamidi/calc/telemetry"
	"github.com/dhamidi/calc/ui"
)

const shutdownTimeout = 5 * time.Second

func newUICmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Start the web calculator",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			shutdownTelemetry, err := telemetry.Setup(ctx, "calc-ui", cfg.OTelEndpoint, cfg.OTelEnabled)
			if err != nil {
				return fmt.Errorf("setup telemetry: %w", err)
			}
			defer flushTelemetry(shutdownTelemetry)

			editorOpts, err := cfg.EditorOptions()
			if err != nil {
				return err
			}
			server, err := ui.NewServer(
				ui.WithEditorOptions(editorOpts...),
				ui.WithEvalOptions(cfg.EvalOptions()...),
				ui.WithRejectPulse(cfg.RejectPulse),
			)
			if err != nil {
				return fmt.Errorf("create server: %w", err)
			}

			displayAddr := cfg.Addr
			if strings.HasPrefix(cfg.Addr, ":") {
				displayAddr = "localhost" + cfg.Addr
			}
			fmt.Printf("Starting server at http://%s\n", displayAddr)

			srv := &http.Server{Addr: cfg.Addr, Handler: server}
			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("shutdown: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&cfg.Addr, "addr", "a", cfg.Addr, "address to listen on")
	cmd.Flags().DurationVar(&cfg.RejectPulse, "reject-pulse", cfg.RejectPulse, "how long a rejected key is highlighted")

	return cmd
}

func flushTelemetry(shutdown func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		commonlog.GetLogger("calc").Errorf("otel shutdown: %s", err)
	}
}
