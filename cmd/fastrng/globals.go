package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/fastrng/cmd/fastrng/shared"
	"github.com/lox/fastrng/internal/config"
	"github.com/lox/fastrng/internal/runid"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
)

// Globals are flags shared by every command
type Globals struct {
	Config  string `kong:"default='fastrng.hcl',type='path',help='HCL configuration file (ignored if missing)'"`
	Debug   bool   `kong:"help='Enable debug logging'"`
	LogJSON bool   `kong:"name='log-json',help='Log structured JSON instead of console output'"`
	NoColor bool   `kong:"help='Disable colour in tables'"`

	runID string
}

// setup loads configuration and builds the logger for a command run.
func (g *Globals) setup() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("failed to load config: %w", err)
	}

	level := shared.ParseLevel(cfg.LogLevel, g.Debug)
	var logger zerolog.Logger
	if g.LogJSON {
		logger = shared.SetupStructuredLogger(level)
	} else {
		logger = shared.SetupLogger(level)
	}

	id, err := runid.New()
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	g.runID = id
	logger = logger.With().Str("run_id", id).Logger()

	if g.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	return cfg, logger, nil
}

// resolveSeed picks the flag value, then the configured seed, then the clock.
func resolveSeed(flag *uint64, cfg *config.Config, logger zerolog.Logger) uint64 {
	switch {
	case flag != nil:
		logger.Debug().Uint64("seed", *flag).Msg("Using seed from flag")
		return *flag
	case cfg.Generator.Seed != nil:
		logger.Debug().Uint64("seed", *cfg.Generator.Seed).Msg("Using seed from config")
		return *cfg.Generator.Seed
	default:
		seed := uint64(time.Now().UnixNano())
		logger.Info().Uint64("seed", seed).Msg("Using random seed")
		return seed
	}
}

// valueOr returns *p when the flag was given and fallback otherwise.
func valueOr[T any](p *T, fallback T) T {
	if p != nil {
		return *p
	}
	return fallback
}

// firstNonZero returns the first non-zero value, for flags that fall back to
// configuration.
func firstNonZero[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}
