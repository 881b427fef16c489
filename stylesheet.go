package main

import (
	"fmt"
	"strings"
)

// Stylesheet returns the page CSS for a theme. A zero Theme yields a neutral
// light stylesheet.
func Stylesheet(t Theme) string {
	bg, fg := t.Background, t.Foreground
	if bg == "" {
		bg = "#ffffff"
	}
	if fg == "" {
		fg = "#1f2328"
	}
	cellBg := t.CellBackground
	if cellBg == "" {
		cellBg = "#f6f8fa"
	}
	border := t.CellBorder
	if border == "" {
		border = "#d0d7de"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "body { margin: 0; padding: 16px; background: %s; color: %s; font-family: system-ui, sans-serif; }\n", bg, fg)
	b.WriteString(".matrix-layout { box-sizing: border-box; width: 100%; }\n")
	fmt.Fprintf(&b, ".matrix-cell { display: flex; align-items: center; justify-content: center; overflow: hidden; "+
		"padding: var(--cell-padding, 8px); border: 1px solid %s; border-radius: 8px; background: %s; }\n", border, cellBg)
	b.WriteString(".matrix-chart { width: 100%; height: 100%; }\n")
	if accent := t.Blue; accent != "" {
		fmt.Fprintf(&b, ".matrix-cell a { color: %s; }\n", accent)
	}
	return b.String()
}
