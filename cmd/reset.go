package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/kuis/internal/app"
	"github.com/abhisek/kuis/internal/config"
	"github.com/abhisek/kuis/internal/history"
	"github.com/abhisek/kuis/internal/mastery"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear saved history and mastery",
	Long:  "Clear the saved result history and the persisted mastered set. With neither flag, both are cleared.",
	RunE: func(cmd *cobra.Command, args []string) error {
		clearMastery, _ := cmd.Flags().GetBool("mastery")
		clearHistory, _ := cmd.Flags().GetBool("history")
		if !clearMastery && !clearHistory {
			clearMastery, clearHistory = true, true
		}

		return withBackend(cmd, func(_ config.Config, b *app.Backend, logger *slog.Logger) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			if clearHistory {
				if err := history.New(b.Slots, logger).Reset(ctx); err != nil {
					return fmt.Errorf("reset history: %w", err)
				}
				fmt.Fprintln(out, "History cleared.")
			}
			if clearMastery {
				if err := mastery.Clear(ctx, b.Slots); err != nil {
					return fmt.Errorf("reset mastery: %w", err)
				}
				fmt.Fprintln(out, "Mastered questions cleared.")
			}
			return nil
		})
	},
}

func init() {
	resetCmd.Flags().Bool("mastery", false, "Clear the persisted mastered set")
	resetCmd.Flags().Bool("history", false, "Clear the result history")
}
