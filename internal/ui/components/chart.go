package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/kuis/internal/ui/theme"
)

// Bar is one row of a BarChart.
type Bar struct {
	Label string
	Value float64
	Color color.Color // nil uses the secondary color
}

// BarChart is a horizontal bar chart.
type BarChart struct {
	Bars   []Bar
	Max    float64 // scale; values above are clipped, 0 means the largest value
	Format string  // value format, e.g. "%.1fs"
}

// View renders the chart within width columns.
func (c BarChart) View(width int) string {
	if len(c.Bars) == 0 {
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render("no data")
	}

	format := c.Format
	if format == "" {
		format = "%.1f"
	}
	max := c.Max
	labelWidth, valueWidth := 0, 0
	for _, b := range c.Bars {
		if c.Max == 0 && b.Value > max {
			max = b.Value
		}
		labelWidth = maxInt(labelWidth, lipgloss.Width(b.Label))
		valueWidth = maxInt(valueWidth, len(fmt.Sprintf(format, b.Value)))
	}

	barWidth := width - labelWidth - valueWidth - 4
	if barWidth < 4 {
		barWidth = 4
	}

	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	fill := lipgloss.NewStyle().Foreground(theme.Secondary)

	lines := make([]string, len(c.Bars))
	for i, b := range c.Bars {
		n := 0
		if max > 0 {
			n = int(b.Value / max * float64(barWidth))
		}
		if n > barWidth {
			n = barWidth
		}
		if n < 0 {
			n = 0
		}
		if n == 0 && b.Value > 0 {
			n = 1
		}
		style := fill
		if b.Color != nil {
			style = lipgloss.NewStyle().Foreground(b.Color)
		}
		lines[i] = dim.Render(padRight(b.Label, labelWidth)) + "  " +
			style.Render(strings.Repeat("█", n)) +
			strings.Repeat(" ", barWidth-n) + "  " +
			fmt.Sprintf(format, b.Value)
	}
	return strings.Join(lines, "\n")
}

func padRight(s string, w int) string {
	if gap := w - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
