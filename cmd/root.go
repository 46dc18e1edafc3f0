package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/kuis/internal/config"
)

var rootCmd = &cobra.Command{
	Use:           "kuis",
	Short:         "Terminal quiz trainer",
	Long:          "Kuis runs timed multiple-choice quizzes from a question bank and tracks which questions you have mastered.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, 0)
	},
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Path to config file (overrides KUIS_CONFIG env var)")
	flags.String("bank", "", "Path to question bank, JSON or YAML (overrides KUIS_BANK env var)")
	flags.String("db", "", "Path to SQLite database file (overrides KUIS_DB env var)")
	flags.String("store", "", "Storage backend: sqlite, file, redis or memory (overrides KUIS_STORE env var)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(bankCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves the effective config: flags override the
// environment, which overrides the YAML file.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return config.Config{}, err
	}

	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}

	if v, _ := cmd.Flags().GetString("bank"); v != "" {
		cfg.Bank.Path = v
	}
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		cfg.Store.Path = v
	}
	if v, _ := cmd.Flags().GetString("store"); v != "" {
		cfg.Store.Backend = v
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// stderrLogger is the logger for non-interactive commands.
func stderrLogger(cfg config.Config) *slog.Logger {
	level, _ := cfg.LogLevel()
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
