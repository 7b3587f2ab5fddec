// Package config loads calc settings from CALC_* environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/dhamidi/calc/editor"
	"github.com/dhamidi/calc/expr"
)

type Config struct {
	// Addr is the listen address of the web UI.
	Addr string `env:"CALC_ADDR" envDefault:":8080"`
	// Variant selects the editor rules, "validated" or "baseline".
	Variant string `env:"CALC_VARIANT" envDefault:"validated"`
	// DivisionHeuristic rejects any expression containing "/0" before
	// evaluating it. When false, only an actual division by zero fails.
	DivisionHeuristic bool `env:"CALC_DIVISION_HEURISTIC" envDefault:"true"`
	// RejectPulse is how long displays show a rejected token.
	RejectPulse time.Duration `env:"CALC_REJECT_PULSE" envDefault:"400ms"`

	LogVerbosity int    `env:"CALC_LOG_VERBOSITY" envDefault:"0"`
	LogFile      string `env:"CALC_LOG_FILE"`

	OTelEnabled  bool   `env:"CALC_OTEL_ENABLED" envDefault:"true"`
	OTelEndpoint string `env:"CALC_OTEL_ENDPOINT"`
}

// Load parses the environment into a Config with defaults applied.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if _, err := editor.ParseVariant(cfg.Variant); err != nil {
		return Config{}, fmt.Errorf("CALC_VARIANT: %w", err)
	}
	if cfg.RejectPulse < 0 {
		return Config{}, fmt.Errorf("CALC_REJECT_PULSE must not be negative, got %s", cfg.RejectPulse)
	}
	return cfg, nil
}

func (c Config) EvalOptions() []expr.Option {
	return []expr.Option{expr.WithDivisionHeuristic(c.DivisionHeuristic)}
}

// EditorOptions returns the options for editors built from this config.
func (c Config) EditorOptions() ([]editor.Option, error) {
	variant, err := editor.ParseVariant(c.Variant)
	if err != nil {
		return nil, err
	}
	return []editor.Option{
		editor.WithVariant(variant),
		editor.WithEvalOptions(c.EvalOptions()...),
	}, nil
}

// LogPath returns the log file for commonlog.Configure, nil meaning stderr.
func (c Config) LogPath() *string {
	if c.LogFile == "" {
		return nil
	}
	path := c.LogFile
	return &path
}
