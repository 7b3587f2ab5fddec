package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dhamidi/calc/config"
	"github.com/dhamidi/calc/keypad"
)

func newKeypadCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "keypad",
		Short: "Run the calculator in the terminal",
		Long: `Run the calculator on the terminal, reading one key at a time.

Digits, + - * / and . edit the display. Enter or = evaluates, Escape, Delete
or c clears, Backspace deletes the last character. Press q or Ctrl-C to quit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			editorOpts, err := cfg.EditorOptions()
			if err != nil {
				return err
			}

			fd := int(os.Stdin.Fd())
			if term.IsTerminal(fd) {
				oldState, err := term.MakeRaw(fd)
				if err != nil {
					return fmt.Errorf("raw mode: %w", err)
				}
				defer term.Restore(fd, oldState)
			}

			return keypad.New(os.Stdin, os.Stdout, editorOpts...).Run()
		},
	}
}
