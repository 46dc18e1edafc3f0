// Package config resolves kuis settings from defaults, a YAML file, the
// environment and command-line flags, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all kuis settings.
type Config struct {
	Bank    BankConfig    `yaml:"bank"`
	Store   StoreConfig   `yaml:"store"`
	Redis   RedisConfig   `yaml:"redis"`
	Mastery MasteryConfig `yaml:"mastery"`
	Log     LogConfig     `yaml:"log"`
}

// BankConfig locates the question bank.
type BankConfig struct {
	Path string `yaml:"path"`
}

// StoreConfig selects where history (and optionally mastery) is persisted.
type StoreConfig struct {
	Backend string `yaml:"backend"` // sqlite, file, redis or memory
	Path    string `yaml:"path"`    // sqlite database file; empty means the XDG default
	Dir     string `yaml:"dir"`     // file backend directory; empty means the XDG default
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// MasteryConfig controls whether the mastered set outlives the process.
type MasteryConfig struct {
	Persist bool `yaml:"persist"`
}

// LogConfig configures the log file.
type LogConfig struct {
	Path  string `yaml:"path"` // empty means the XDG state default
	Level string `yaml:"level"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Bank:  BankConfig{Path: "questions.json"},
		Store: StoreConfig{Backend: BackendSQLite},
		Log:   LogConfig{Level: "info"},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/kuis/config.yaml, falling back to
// ~/.config/kuis/config.yaml.
func DefaultPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "kuis", "config.yaml"), nil
}

// DefaultLogPath returns $XDG_STATE_HOME/kuis/kuis.log, falling back to
// ~/.local/state/kuis/kuis.log.
func DefaultLogPath() (string, error) {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "kuis", "kuis.log"), nil
}

// LoadDotEnv loads .env files into the environment without overriding
// variables that are already set. Missing files are ignored; a file that
// cannot be parsed is an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Load builds the effective config from defaults, the YAML file and the
// environment. When path is empty, KUIS_CONFIG and then DefaultPath are
// tried and a missing file is fine. An explicitly given path must exist.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	required := path != ""
	if path == "" {
		path = os.Getenv("KUIS_CONFIG")
		required = path != ""
	}
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	if err := cfg.mergeFile(path, required); err != nil {
		return cfg, err
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// mergeFile overlays the YAML document at path onto cfg.
func (c *Config) mergeFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// applyEnv overrides fields from KUIS_* environment variables.
func (c *Config) applyEnv() error {
	if v := os.Getenv("KUIS_BANK"); v != "" {
		c.Bank.Path = v
	}
	if v := os.Getenv("KUIS_STORE"); v != "" {
		c.Store.Backend = v
	}
	if v := os.Getenv("KUIS_DB"); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv("KUIS_STORE_DIR"); v != "" {
		c.Store.Dir = v
	}
	if v := os.Getenv("KUIS_REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("KUIS_REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("KUIS_REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("KUIS_REDIS_DB=%q: %w", v, err)
		}
		c.Redis.DB = db
	}
	if v := os.Getenv("KUIS_PERSIST_MASTERY"); v != "" {
		persist, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("KUIS_PERSIST_MASTERY=%q: %w", v, err)
		}
		c.Mastery.Persist = persist
	}
	if v := os.Getenv("KUIS_LOG"); v != "" {
		c.Log.Path = v
	}
	if v := os.Getenv("KUIS_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	return nil
}

// Validate checks that the config can be used to open a store.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case BackendSQLite, BackendFile, BackendMemory:
	case BackendRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("%w: redis backend needs redis.addr", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown store backend %q", ErrInvalid, c.Store.Backend)
	}
	if c.Bank.Path == "" {
		return fmt.Errorf("%w: bank.path is empty", ErrInvalid)
	}
	if _, err := c.LogLevel(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// LogLevel parses Log.Level. Empty means info.
func (c Config) LogLevel() (slog.Level, error) {
	var lvl slog.Level
	if strings.TrimSpace(c.Log.Level) == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level %q: %w", c.Log.Level, err)
	}
	return lvl, nil
}
