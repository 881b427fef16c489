package main

import (
	"strings"
	"testing"

	"asciigrid/grid"
)

func TestCalculateBoardStats(t *testing.T) {
	layout := grid.ParseLayout("AAB\nACC")
	mapping := grid.Mapping{"A": "sales", "C": "<i>chart</i>"}

	stats := CalculateBoardStats(layout, mapping)

	if stats.Rows != 2 || stats.Columns != 3 {
		t.Errorf("dimensions = %dx%d, want 3x2", stats.Columns, stats.Rows)
	}
	if stats.Cells != 6 {
		t.Errorf("Cells = %d, want 6", stats.Cells)
	}
	if stats.MappedCells != 5 {
		t.Errorf("MappedCells = %d, want 5", stats.MappedCells)
	}
	if stats.LiteralCells != 1 {
		t.Errorf("LiteralCells = %d, want 1", stats.LiteralCells)
	}

	want := []SymbolCount{
		{Symbol: "A", Count: 3, Mapped: true},
		{Symbol: "C", Count: 2, Mapped: true},
		{Symbol: "B", Count: 1, Mapped: false},
	}
	if len(stats.Symbols) != len(want) {
		t.Fatalf("got %d symbols, want %d", len(stats.Symbols), len(want))
	}
	for i, w := range want {
		if stats.Symbols[i] != w {
			t.Errorf("Symbols[%d] = %+v, want %+v", i, stats.Symbols[i], w)
		}
	}
}

func TestCalculateBoardStats_TiesSortBySymbol(t *testing.T) {
	stats := CalculateBoardStats(grid.ParseLayout("ZYX"), nil)

	var got []string
	for _, s := range stats.Symbols {
		got = append(got, s.Symbol)
	}
	if strings.Join(got, "") != "XYZ" {
		t.Errorf("symbol order = %v, want [X Y Z]", got)
	}
}

func TestBoardStatsString(t *testing.T) {
	stats := CalculateBoardStats(grid.ParseLayout("AB\nCD"), grid.Mapping{"A": "1"})
	want := "2x2 grid | 4 cells | 1 mapped | 3 literal | 4 symbols"
	if got := stats.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestRenderStats(t *testing.T) {
	InitTheme("")
	stats := CalculateBoardStats(grid.ParseLayout("A B"), grid.Mapping{"A": "x"})

	out := renderStats(stats, 40, 5)
	for _, want := range []string{"Symbols", "mapped", "literal", "␠"} {
		if !strings.Contains(out, want) {
			t.Errorf("renderStats output missing %q:\n%s", want, out)
		}
	}
}
