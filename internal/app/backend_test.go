package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/kuis/internal/config"
	"github.com/abhisek/kuis/internal/history"
	"github.com/abhisek/kuis/internal/store"
)

func TestOpenBackend_Backends(t *testing.T) {
	mr := miniredis.RunT(t)
	dir := t.TempDir()

	tests := []struct {
		name   string
		mutate func(*config.Config)
		events bool
	}{
		{"sqlite", func(c *config.Config) { c.Store.Path = filepath.Join(dir, "db", "kuis.db") }, true},
		{"file", func(c *config.Config) {
			c.Store.Backend = config.BackendFile
			c.Store.Dir = filepath.Join(dir, "slots")
		}, false},
		{"redis", func(c *config.Config) {
			c.Store.Backend = config.BackendRedis
			c.Redis.Addr = mr.Addr()
		}, false},
		{"memory", func(c *config.Config) { c.Store.Backend = config.BackendMemory }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			tt.mutate(&cfg)

			b, err := OpenBackend(context.Background(), cfg)
			require.NoError(t, err)
			defer b.Close()

			ctx := context.Background()
			require.NoError(t, b.Slots.Put(ctx, "probe", []byte("1")))
			got, err := b.Slots.Get(ctx, "probe")
			require.NoError(t, err)
			assert.Equal(t, []byte("1"), got)

			_, isNop := b.Events.(store.NopEventRepo)
			assert.Equal(t, !tt.events, isNop)
		})
	}
}

func TestOpenBackend_Unknown(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Store.Backend = "postgres"
	_, err := OpenBackend(context.Background(), cfg)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestLoadEngine(t *testing.T) {
	bankPath := filepath.Join(t.TempDir(), "bank.yaml")
	require.NoError(t, os.WriteFile(bankPath, []byte(`questions:
  - question: "1 + 1 = ?"
    options: ["1", "2"]
    correct: "2"
`), 0o644))

	cfg := config.DefaultConfig()
	cfg.Bank.Path = bankPath
	cfg.Store.Backend = config.BackendMemory
	b, err := OpenBackend(context.Background(), cfg)
	require.NoError(t, err)
	require.NoError(t, b.Slots.Put(context.Background(), history.SlotName,
		[]byte(`[{"date":"2026-01-01T10:00:00Z","score":1,"totalQuestions":1,"percentage":100}]`)))

	e, err := LoadEngine(context.Background(), cfg, b, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, e.Bank().Len())
	assert.Equal(t, 1, e.History().Len())
}

func TestOpenLogFile(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Log.Path = filepath.Join(t.TempDir(), "logs", "kuis.log")

	logger, closer, err := OpenLogFile(cfg)
	require.NoError(t, err)
	logger.Info("hello", "k", "v")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(cfg.Log.Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=hello")
}
