package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/kuis/internal/session"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a quiz right away",
	Long:  "Start a quiz of -n questions, skipping the start menu.",
	RunE: func(cmd *cobra.Command, args []string) error {
		n, _ := cmd.Flags().GetInt("questions")
		if n < 1 {
			return fmt.Errorf("%w: -n must be at least 1", session.ErrInvalidRequest)
		}
		return runApp(cmd, n)
	},
}

func init() {
	playCmd.Flags().IntP("questions", "n", 5, "Number of questions")
}
