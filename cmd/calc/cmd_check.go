package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/dhamidi/calc/config"
	"github.com/dhamidi/calc/format"
	"github.com/dhamidi/calc/workspace"
)

func newCheckCmd(cfg *config.Config) *cobra.Command {
	var outputFormat string
	var locale string
	var watch bool
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "check <file.calc|dir>",
		Short: "Evaluate every line of .calc files",
		Long: `Evaluate .calc files, one expression per line.

Blank lines and lines starting with # are skipped. With a directory, every
.calc file below it is checked. Use --watch to re-check files when they change.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := args[0]
			if info, err := os.Stat(root); err != nil {
				return fmt.Errorf("check: %w", err)
			} else if !info.IsDir() && filepath.Ext(root) != workspace.Extension {
				return fmt.Errorf("expected %s file, got %s", workspace.Extension, filepath.Ext(root))
			}

			encoder, err := format.New(outputFormat, locale, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			ws := workspace.New(root, cfg.EvalOptions()...)
			failed := 0
			report := func(doc *workspace.Document) {
				if doc == nil {
					return
				}
				if outputFormat != "json" {
					fmt.Fprintf(cmd.OutOrStdout(), "%s:\n", doc.Path)
				}
				if err := encoder.Encode(doc); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "encode %s: %v\n", doc.Path, err)
				}
				failed += len(doc.Errors())
			}

			watcher := workspace.NewFileWatcher(ws,
				workspace.WithPollInterval(interval),
				workspace.OnChange(report),
				workspace.OnRemove(func(path string) {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: removed\n", path)
				}),
			)

			if !watch {
				watcher.Scan()
				if failed > 0 {
					return fmt.Errorf("%d expressions failed", failed)
				}
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			watcher.Start()
			<-ctx.Done()
			watcher.Stop()
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, json)")
	cmd.Flags().StringVar(&locale, "locale", "", "print results for this locale")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-check files when they change")
	cmd.Flags().DurationVar(&interval, "interval", time.Second, "polling interval for --watch")

	return cmd
}
