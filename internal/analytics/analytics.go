// Package analytics derives display statistics from a finished session and
// from the result history. All functions are pure.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/abhisek/kuis/internal/session"
)

// Extreme identifies the fastest or slowest entry of a duration list.
// Position is -1 when the list is empty.
type Extreme struct {
	Position int
	Seconds  float64
}

// AverageDuration returns the mean of durations, or 0 for an empty list.
func AverageDuration(durations []float64) float64 {
	if len(durations) == 0 {
		return 0
	}
	total := 0.0
	for _, d := range durations {
		total += d
	}
	return total / float64(len(durations))
}

// Fastest returns the smallest duration. Ties keep the first occurrence.
func Fastest(durations []float64) Extreme {
	e := Extreme{Position: -1, Seconds: math.Inf(1)}
	for i, d := range durations {
		if d < e.Seconds {
			e = Extreme{Position: i, Seconds: d}
		}
	}
	if e.Position < 0 {
		e.Seconds = 0
	}
	return e
}

// Slowest returns the largest duration. Ties keep the first occurrence.
func Slowest(durations []float64) Extreme {
	e := Extreme{Position: -1, Seconds: math.Inf(-1)}
	for i, d := range durations {
		if d > e.Seconds {
			e = Extreme{Position: i, Seconds: d}
		}
	}
	if e.Position < 0 {
		e.Seconds = 0
	}
	return e
}

// DurationPoint is the recorded duration of one session position.
type DurationPoint struct {
	Position int
	Seconds  float64
}

// DurationSeries returns the recorded durations ordered by position.
// Positions that were never answered have no duration and are omitted.
func DurationSeries(s *session.Session) []DurationPoint {
	ds := s.Durations()
	out := make([]DurationPoint, 0, len(ds))
	for p, d := range ds {
		out = append(out, DurationPoint{Position: p, Seconds: d})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

// Seconds extracts the durations from points, preserving order.
func Seconds(points []DurationPoint) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Seconds
	}
	return out
}

// TrendPoint is one historical result on the score trend chart.
type TrendPoint struct {
	Label      string // HH:MM in local time
	Percentage float64
}

// Trend maps results, oldest first, to chart points.
func Trend(results []session.Result) []TrendPoint {
	out := make([]TrendPoint, len(results))
	for i, r := range results {
		out[i] = TrendPoint{Label: clockLabel(r.Timestamp), Percentage: r.Percentage}
	}
	return out
}

func clockLabel(t time.Time) string {
	if t.IsZero() {
		return "--:--"
	}
	return t.Local().Format("15:04")
}

// HistoryStats summarizes a result history.
type HistoryStats struct {
	Sessions       int
	Best           float64
	Average        float64
	Latest         float64
	TotalCorrect   int
	TotalQuestions int
}

// Summarize aggregates results. An empty history yields zero stats.
func Summarize(results []session.Result) HistoryStats {
	var st HistoryStats
	if len(results) == 0 {
		return st
	}
	sum := 0.0
	for i, r := range results {
		if i == 0 || r.Percentage > st.Best {
			st.Best = r.Percentage
		}
		sum += r.Percentage
		st.TotalCorrect += r.CorrectCount
		st.TotalQuestions += r.TotalCount
	}
	st.Sessions = len(results)
	st.Average = sum / float64(len(results))
	st.Latest = results[len(results)-1].Percentage
	return st
}
