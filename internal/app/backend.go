package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/abhisek/kuis/internal/config"
	"github.com/abhisek/kuis/internal/engine"
	"github.com/abhisek/kuis/internal/store"
)

// Backend is the opened persistence layer for one process.
type Backend struct {
	Slots  store.SlotRepo
	Events store.EventRepo
	closer io.Closer
}

// Close releases the underlying store, if any.
func (b *Backend) Close() error {
	if b == nil || b.closer == nil {
		return nil
	}
	return b.closer.Close()
}

// OpenBackend opens the store selected by cfg. The event log is only
// available with sqlite; other backends get a no-op event repo.
func OpenBackend(ctx context.Context, cfg config.Config) (*Backend, error) {
	switch cfg.Store.Backend {
	case config.BackendSQLite:
		dbPath := cfg.Store.Path
		if dbPath == "" {
			p, err := store.DefaultDBPath()
			if err != nil {
				return nil, fmt.Errorf("resolve DB path: %w", err)
			}
			dbPath = p
		} else if err := store.EnsureDir(dbPath); err != nil {
			return nil, fmt.Errorf("create DB dir: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		return &Backend{Slots: st.SlotRepo(), Events: st.EventRepo(), closer: st}, nil

	case config.BackendFile:
		dir := cfg.Store.Dir
		if dir == "" {
			data, err := store.DataDir()
			if err != nil {
				return nil, err
			}
			dir = filepath.Join(data, "slots")
		}
		repo, err := store.NewFileSlotRepo(dir)
		if err != nil {
			return nil, fmt.Errorf("open file store: %w", err)
		}
		return &Backend{Slots: repo, Events: store.NopEventRepo{}}, nil

	case config.BackendRedis:
		repo, err := store.OpenRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, fmt.Errorf("open redis store: %w", err)
		}
		return &Backend{Slots: repo, Events: store.NopEventRepo{}, closer: repo}, nil

	case config.BackendMemory:
		return &Backend{Slots: store.NewMemorySlotRepo(), Events: store.NopEventRepo{}}, nil
	}
	return nil, fmt.Errorf("%w: unknown store backend %q", config.ErrInvalid, cfg.Store.Backend)
}

// LoadEngine loads the bank, history and mastery described by cfg from b.
func LoadEngine(ctx context.Context, cfg config.Config, b *Backend, logger *slog.Logger) (*engine.Engine, error) {
	return engine.Load(ctx, engine.LoadOptions{
		BankPath:       cfg.Bank.Path,
		Slots:          b.Slots,
		Events:         b.Events,
		PersistMastery: cfg.Mastery.Persist,
		Logger:         logger,
	})
}

// OpenLogFile returns a text logger writing to the configured log file.
// The TUI owns the terminal, so it never logs to stderr.
func OpenLogFile(cfg config.Config) (*slog.Logger, io.Closer, error) {
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, nil, err
	}
	path := cfg.Log.Path
	if path == "" {
		if path, err = config.DefaultLogPath(); err != nil {
			return nil, nil, err
		}
	}
	if err := store.EnsureDir(path); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})), f, nil
}
