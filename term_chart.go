package main

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"asciigrid/grid"
)

const sparkRunes = "▁▂▃▄▅▆▇█"

// SetChart keeps the chart for Draw. Texts reports its summary.
func (c *termCell) SetChart(chart grid.Chart) error {
	if err := chart.Validate(); err != nil {
		return err
	}
	c.chart = &chart
	c.text = chart.Summary()
	return nil
}

// termChart draws a chart into a width x height block of characters.
func termChart(c grid.Chart, width, height int) string {
	if len(c.Data) == 0 {
		return labelStyle.Render("no data")
	}
	ink := lipgloss.NewStyle().Foreground(lipgloss.Color(c.MarkColor()))
	if c.Kind == grid.ScatterChart {
		return ink.Render(scatterCanvas(c, width, height))
	}
	if len(c.Data) > height {
		return ink.Render(sparkline(c, width))
	}

	labelWidth := min(6, width/3)
	barWidth := width - labelWidth - 1
	label := lipgloss.NewStyle().Width(labelWidth)

	lines := make([]string, len(c.Data))
	for i := range c.Data {
		n := int(math.Round(c.BarShare(i) * float64(barWidth)))
		lines[i] = label.Render(truncate(c.BarLabel(i), labelWidth)) + " " + ink.Render(strings.Repeat("█", n))
	}
	return strings.Join(lines, "\n")
}

// sparkline draws one rune per bar, trimmed to width.
func sparkline(c grid.Chart, width int) string {
	levels := []rune(sparkRunes)
	var b strings.Builder
	for i := range c.Data {
		if i == width {
			break
		}
		b.WriteRune(levels[int(math.Round(c.BarShare(i)*float64(len(levels)-1)))])
	}
	return b.String()
}

func scatterCanvas(c grid.Chart, width, height int) string {
	canvas := make([][]rune, height)
	for y := range canvas {
		canvas[y] = []rune(strings.Repeat(" ", width))
	}
	dom := c.ScatterDomain()
	for _, p := range c.Data {
		fx, fy := dom.Position(p)
		col := clampIndex(int(math.Round(fx*float64(width-1))), width)
		row := clampIndex(height-1-int(math.Round(fy*float64(height-1))), height)
		canvas[row][col] = '•'
	}

	lines := make([]string, height)
	for y, r := range canvas {
		lines[y] = string(r)
	}
	return strings.Join(lines, "\n")
}

func clampIndex(i, n int) int {
	return max(0, min(i, n-1))
}
