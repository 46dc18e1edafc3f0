package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/kuis/internal/bank"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Inspect the question bank",
}

var bankValidateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Check that a question bank loads",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := bankPath(cmd, args)
		if err != nil {
			return err
		}
		b, err := bank.Load(path)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: %d questions\n", path, b.Len())
		for _, q := range b.Questions() {
			if q.CorrectIndex() < 0 {
				fmt.Fprintf(out, "warning: question %d: correct answer %q is not one of its options\n", q.ID, q.Correct)
			}
		}
		return nil
	},
}

var bankListCmd = &cobra.Command{
	Use:   "list [path]",
	Short: "List the questions in a bank",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		path, err := bankPath(cmd, args)
		if err != nil {
			return err
		}
		b, err := bank.Load(path)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-4s  %-50s  %-7s  %s\n", "ID", "Question", "Options", "Correct")
		fmt.Fprintln(out, strings.Repeat("─", 80))
		for i, q := range b.Questions() {
			if limit > 0 && i >= limit {
				break
			}
			fmt.Fprintf(out, "%-4d  %-50s  %-7d  %s\n", q.ID, truncate(q.Prompt, 50), len(q.Options), q.Correct)
		}
		return nil
	},
}

func init() {
	bankListCmd.Flags().Int("limit", 0, "Maximum number of questions (0 lists all)")
	bankCmd.AddCommand(bankValidateCmd)
	bankCmd.AddCommand(bankListCmd)
}

// bankPath returns the explicit argument or the configured bank path.
func bankPath(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return "", err
	}
	return cfg.Bank.Path, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
