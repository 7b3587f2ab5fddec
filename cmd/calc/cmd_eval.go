package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/calc/config"
	"github.com/dhamidi/calc/format"
	"github.com/dhamidi/calc/workspace"
)

func newEvalCmd(cfg *config.Config) *cobra.Command {
	var outputFormat string
	var locale string

	cmd := &cobra.Command{
		Use:   "eval <expression>...",
		Short: "Evaluate expressions and print their results",
		Long: `Evaluate each argument as an arithmetic expression.

Expressions may use + - * / × ÷, parentheses and decimal numbers.
Results are rounded to 8 fractional digits; any failure prints Error.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			encoder, err := format.New(outputFormat, locale, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			doc := workspace.EvaluateDocument("", []byte(strings.Join(args, "\n")), cfg.EvalOptions()...)
			if err := encoder.Encode(doc); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			if n := len(doc.Errors()); n > 0 {
				return fmt.Errorf("%d of %d expressions failed", n, len(doc.Lines))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, json)")
	cmd.Flags().StringVar(&locale, "locale", "", "print results for this locale, e.g. de or en-IN")

	return cmd
}
