package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/calc/config"
	"github.com/dhamidi/calc/editor"
)

const version = "0.1.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "calc: %v\n", err)
		os.Exit(1)
	}

	if err := newRootCmd(&cfg).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "calc",
		Short:   "An arithmetic calculator for the browser, the terminal and your editor",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := editor.ParseVariant(cfg.Variant); err != nil {
				return err
			}
			commonlog.Configure(cfg.LogVerbosity, cfg.LogPath())
			return nil
		},
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.IntVarP(&cfg.LogVerbosity, "verbosity", "v", cfg.LogVerbosity, "log verbosity (0 disables logging)")
	flags.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "write logs to this file instead of stderr")
	flags.StringVar(&cfg.Variant, "variant", cfg.Variant, "input rules: validated or baseline")
	flags.BoolVar(&cfg.DivisionHeuristic, "division-heuristic", cfg.DivisionHeuristic, `reject any expression containing "/0"`)

	rootCmd.AddCommand(newEvalCmd(cfg))
	rootCmd.AddCommand(newCheckCmd(cfg))
	rootCmd.AddCommand(newUICmd(cfg))
	rootCmd.AddCommand(newKeypadCmd(cfg))
	rootCmd.AddCommand(newLSPCmd(cfg))

	return rootCmd
}
