package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/kuis/internal/app"
	"github.com/abhisek/kuis/internal/config"
	"github.com/abhisek/kuis/internal/engine"
	"github.com/abhisek/kuis/internal/session"
)

// runApp opens the store and launches the TUI. A positive startCount skips
// the start menu; the bank is then loaded up front so an impossible count
// is reported before the terminal is taken over.
func runApp(cmd *cobra.Command, startCount int) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, logFile, err := app.OpenLogFile(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

	backend, err := app.OpenBackend(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer backend.Close()

	load := func(ctx context.Context) (*engine.Engine, error) {
		return app.LoadEngine(ctx, cfg, backend, logger)
	}
	if startCount > 0 {
		e, err := load(cmd.Context())
		if err != nil {
			return err
		}
		if avail := e.Available(); startCount > avail {
			return fmt.Errorf("%w: %d questions requested, %d available", session.ErrInvalidRequest, startCount, avail)
		}
		load = func(context.Context) (*engine.Engine, error) { return e, nil }
	}

	return app.Run(app.Options{
		Load:       load,
		StartCount: startCount,
		Logger:     logger,
	})
}

// withBackend opens the configured store for a non-interactive command.
func withBackend(cmd *cobra.Command, fn func(cfg config.Config, b *app.Backend, logger *slog.Logger) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := stderrLogger(cfg)

	backend, err := app.OpenBackend(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer backend.Close()

	return fn(cfg, backend, logger)
}
