// Package grid turns an ASCII layout into a grid of content cells inside a
// host container. A layout such as
//
//	AAB
//	CCB
//
// becomes a 3x2 grid with one cell per symbol, in row-major order. Each cell
// shows either the literal symbol or the replacement found in a Mapping.
//
// The host is abstracted behind Container and Document so the same renderer
// drives an HTML node tree (see HTMLDocument) or any other DOM-like target.
package grid

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rivo/uniseg"
)

// ErrEmptyLayout is returned when a layout has no symbols after trimming.
var ErrEmptyLayout = errors.New("layout is empty")

// RaggedRowError reports a row whose width differs from the first row.
type RaggedRowError struct {
	Row      int
	Expected int
	Actual   int
}

func (e *RaggedRowError) Error() string {
	return fmt.Sprintf("layout row %d has %d symbols, want %d (all rows must match the first row)",
		e.Row+1, e.Actual, e.Expected)
}

// Layout is a parsed ASCII layout. Each row holds its symbols in reading order.
type Layout struct {
	rows [][]string
}

// ParseLayout trims the text and splits it into rows on newlines. Symbols are
// grapheme clusters, so "é" or an emoji counts as a single cell.
func ParseLayout(text string) Layout {
	text = strings.TrimSpace(text)
	lines := strings.Split(text, "\n")

	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		rows = append(rows, splitSymbols(line))
	}
	return Layout{rows: rows}
}

// splitSymbols breaks a row into grapheme clusters.
func splitSymbols(row string) []string {
	var symbols []string
	g := uniseg.NewGraphemes(row)
	for g.Next() {
		symbols = append(symbols, g.Str())
	}
	return symbols
}

// Rows returns the number of rows.
func (l Layout) Rows() int {
	return len(l.rows)
}

// Columns returns the width of the first row, which is authoritative for the
// grid's column template.
func (l Layout) Columns() int {
	if len(l.rows) == 0 {
		return 0
	}
	return len(l.rows[0])
}

// Row returns the symbols of row i.
func (l Layout) Row(i int) []string {
	return l.rows[i]
}

// Cells returns the number of symbols across all rows.
func (l Layout) Cells() int {
	n := 0
	for _, row := range l.rows {
		n += len(row)
	}
	return n
}

// Symbols returns every symbol in row-major order.
func (l Layout) Symbols() []string {
	symbols := make([]string, 0, l.Cells())
	for _, row := range l.rows {
		symbols = append(symbols, row...)
	}
	return symbols
}

// Validate checks that the layout is non-empty and rectangular.
func (l Layout) Validate() error {
	if l.Cells() == 0 {
		return ErrEmptyLayout
	}
	width := l.Columns()
	for i, row := range l.rows {
		if len(row) != width {
			return &RaggedRowError{Row: i, Expected: width, Actual: len(row)}
		}
	}
	return nil
}

// String renders the layout back to text, one row per line.
func (l Layout) String() string {
	lines := make([]string, len(l.rows))
	for i, row := range l.rows {
		lines[i] = strings.Join(row, "")
	}
	return strings.Join(lines, "\n")
}
