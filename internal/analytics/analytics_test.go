package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/kuis/internal/bank"
	"github.com/abhisek/kuis/internal/session"
)

func TestEmptySentinels(t *testing.T) {
	assert.Equal(t, 0.0, AverageDuration(nil))
	assert.Equal(t, Extreme{Position: -1}, Fastest(nil))
	assert.Equal(t, Extreme{Position: -1}, Slowest([]float64{}))
	assert.Equal(t, HistoryStats{}, Summarize(nil))
	assert.Empty(t, Trend(nil))
}

func TestDurationStats(t *testing.T) {
	ds := []float64{4.5, 2, 9, 2, 9}

	assert.InDelta(t, 5.3, AverageDuration(ds), 1e-9)
	assert.Equal(t, Extreme{Position: 1, Seconds: 2}, Fastest(ds))
	assert.Equal(t, Extreme{Position: 2, Seconds: 9}, Slowest(ds))
}

func TestDurationStats_Single(t *testing.T) {
	ds := []float64{3}
	assert.Equal(t, Extreme{Position: 0, Seconds: 3}, Fastest(ds))
	assert.Equal(t, Extreme{Position: 0, Seconds: 3}, Slowest(ds))
}

func TestDurationSeries(t *testing.T) {
	clock := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	now := func() time.Time { return clock }

	b := bank.New("t", []bank.Record{
		{Question: "a", Options: []string{"x", "y"}, Correct: "x"},
		{Question: "b", Options: []string{"x", "y"}, Correct: "x"},
		{Question: "c", Options: []string{"x", "y"}, Correct: "x"},
	})
	var sel []session.SelectedQuestion
	for i, q := range b.Questions() {
		sel = append(sel, session.SelectedQuestion{Position: i, Question: q})
	}
	s := session.New(sel, session.WithClock(now))
	s.Start()

	s.NavigateTo(2)
	clock = clock.Add(6 * time.Second)
	s.RecordAnswer(0)
	s.NavigateTo(0)
	clock = clock.Add(2 * time.Second)
	s.RecordAnswer(1)

	points := DurationSeries(s)
	require.Equal(t, []DurationPoint{
		{Position: 0, Seconds: 2},
		{Position: 2, Seconds: 6},
	}, points)
	assert.Equal(t, []float64{2, 6}, Seconds(points))

	slowest := Slowest(Seconds(points))
	assert.Equal(t, 2, points[slowest.Position].Position)
}

func TestTrend(t *testing.T) {
	ts := time.Date(2026, 6, 2, 14, 7, 0, 0, time.UTC)
	results := []session.Result{
		{Timestamp: ts, Percentage: 40},
		{Percentage: 100},
	}

	got := Trend(results)
	require.Len(t, got, 2)
	assert.Equal(t, TrendPoint{Label: ts.Local().Format("15:04"), Percentage: 40}, got[0])
	assert.Equal(t, TrendPoint{Label: "--:--", Percentage: 100}, got[1])
}

func TestSummarize(t *testing.T) {
	results := []session.Result{
		{CorrectCount: 3, TotalCount: 5, Percentage: 60},
		{CorrectCount: 9, TotalCount: 10, Percentage: 90},
		{CorrectCount: 0, TotalCount: 5, Percentage: 0},
	}
	assert.Equal(t, HistoryStats{
		Sessions:       3,
		Best:           90,
		Average:        50,
		Latest:         0,
		TotalCorrect:   12,
		TotalQuestions: 20,
	}, Summarize(results))
}
