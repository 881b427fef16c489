package main

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"

	"asciigrid/grid"
)

// SymbolCount is how often a symbol occurs in a layout.
type SymbolCount struct {
	Symbol string
	Count  int
	Mapped bool
}

// BoardStats summarises a layout against its mapping.
type BoardStats struct {
	Rows         int
	Columns      int
	Cells        int
	MappedCells  int
	LiteralCells int
	Symbols      []SymbolCount // sorted by count desc, then symbol
}

// CalculateBoardStats counts cells per symbol and how many resolve through
// the mapping.
func CalculateBoardStats(layout grid.Layout, mapping grid.Mapping) BoardStats {
	stats := BoardStats{
		Rows:    layout.Rows(),
		Columns: layout.Columns(),
	}

	counts := make(map[string]int)
	for _, s := range layout.Symbols() {
		counts[s]++
		stats.Cells++
		if _, ok := mapping[s]; ok {
			stats.MappedCells++
		} else {
			stats.LiteralCells++
		}
	}

	for s, n := range counts {
		_, mapped := mapping[s]
		stats.Symbols = append(stats.Symbols, SymbolCount{Symbol: s, Count: n, Mapped: mapped})
	}
	sort.Slice(stats.Symbols, func(i, j int) bool {
		if stats.Symbols[i].Count != stats.Symbols[j].Count {
			return stats.Symbols[i].Count > stats.Symbols[j].Count
		}
		return stats.Symbols[i].Symbol < stats.Symbols[j].Symbol
	})

	return stats
}

// String returns a one-line summary.
func (s BoardStats) String() string {
	return fmt.Sprintf("%dx%d grid | %d cells | %d mapped | %d literal | %d symbols",
		s.Columns, s.Rows, s.Cells, s.MappedCells, s.LiteralCells, len(s.Symbols))
}

// displaySymbol makes whitespace symbols visible in the stats panel.
func displaySymbol(s string) string {
	switch s {
	case " ":
		return "␠"
	case "\t":
		return "⇥"
	}
	return s
}

// renderStats draws the top symbols as proportional bars.
func renderStats(s BoardStats, width, limit int) string {
	title := titleStyle.Render("Symbols")
	if s.Cells == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, "", labelStyle.Render("No cells"))
	}

	maxBarWidth := width - 16 // Reserve space for labels
	if maxBarWidth < 10 {
		maxBarWidth = 10
	}

	lines := []string{title, ""}
	shown := s.Symbols
	if len(shown) > limit {
		shown = shown[:limit]
	}

	colorIndex := 0
	for _, sc := range shown {
		share := float64(sc.Count) / float64(s.Cells)
		kind := "literal"
		color := CurrentTheme.Gray
		if sc.Mapped {
			kind = "mapped"
			color = CurrentTheme.SymbolColor(colorIndex)
			colorIndex++
		}
		label := fmt.Sprintf("%-2s %4d  %-7s %5.1f%%", displaySymbol(sc.Symbol), sc.Count, kind, share*100)
		lines = append(lines, baseStyle.Render(label), barStyle(share, maxBarWidth, color).Render(" "))
	}

	lines = append(lines, "", labelStyle.Render(s.String()))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
