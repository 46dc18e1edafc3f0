package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/kuis/internal/analytics"
	"github.com/abhisek/kuis/internal/app"
	"github.com/abhisek/kuis/internal/config"
	"github.com/abhisek/kuis/internal/history"
	"github.com/abhisek/kuis/internal/session"
	"github.com/abhisek/kuis/internal/store"
)

// trendWidth is the widest bar of the text trend.
const trendWidth = 40

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show quiz history and statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		sessions, _ := cmd.Flags().GetBool("sessions")

		return withBackend(cmd, func(_ config.Config, b *app.Backend, logger *slog.Logger) error {
			out := cmd.OutOrStdout()
			if sessions {
				events, err := b.Events.QuerySessionEvents(cmd.Context(), store.QueryOpts{Limit: limit})
				if err != nil {
					return fmt.Errorf("query events: %w", err)
				}
				printSessionEvents(out, events)
				return nil
			}

			h := history.New(b.Slots, logger)
			printHistory(out, h.Load(cmd.Context()), limit)
			return nil
		})
	},
}

func init() {
	statsCmd.Flags().Bool("sessions", false, "List session events instead of results (sqlite only)")
	statsCmd.Flags().Int("limit", 20, "Maximum number of rows")
}

func printHistory(w io.Writer, results []session.Result, limit int) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No results yet.")
		return
	}

	shown := results
	if limit > 0 && len(shown) > limit {
		shown = shown[len(shown)-limit:]
	}

	fmt.Fprintf(w, "%-19s  %-9s  %s\n", "Date", "Correct", "Score")
	fmt.Fprintln(w, strings.Repeat("─", 42))
	for _, r := range shown {
		date := "unknown"
		if !r.Timestamp.IsZero() {
			date = r.Timestamp.Local().Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(w, "%-19s  %-9s  %.2f%%\n", date, fmt.Sprintf("%d/%d", r.CorrectCount, r.TotalCount), r.Percentage)
	}

	st := analytics.Summarize(results)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Sessions: %d\n", st.Sessions)
	fmt.Fprintf(w, "Best:     %.2f%%\n", st.Best)
	fmt.Fprintf(w, "Average:  %.2f%%\n", st.Average)
	fmt.Fprintf(w, "Latest:   %.2f%%\n", st.Latest)
	fmt.Fprintf(w, "Correct:  %d of %d\n", st.TotalCorrect, st.TotalQuestions)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Trend")
	for _, p := range analytics.Trend(shown) {
		n := int(p.Percentage / 100 * trendWidth)
		fmt.Fprintf(w, "%s  %-*s  %.2f%%\n", p.Label, trendWidth, strings.Repeat("█", n), p.Percentage)
	}
}

func printSessionEvents(w io.Writer, events []store.SessionEventRecord) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No session events found.")
		return
	}
	fmt.Fprintf(w, "%-5s  %-19s  %-36s  %-7s  %-9s  %-7s  %s\n",
		"Seq", "Timestamp", "Session", "Action", "Questions", "Correct", "Secs")
	fmt.Fprintln(w, strings.Repeat("─", 104))
	for _, e := range events {
		fmt.Fprintf(w, "%-5d  %-19s  %-36s  %-7s  %-9d  %-7d  %d\n",
			e.Sequence,
			e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			e.SessionID,
			e.Action,
			e.Questions,
			e.Correct,
			e.DurationSecs,
		)
	}
}
