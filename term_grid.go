package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/net/html"

	"asciigrid/grid"
)

// Terminal geometry used to translate CSS metrics into character cells.
const (
	pxPerLine      = 35 // 140px rows become 4 content lines
	pxPerColumn    = 8  // 8px gaps become 1 blank column
	minCellWidth   = 3
	borderOverhead = 2 // left+right or top+bottom border
)

// TermGrid is a grid.Container that draws its cells as lipgloss boxes.
type TermGrid struct {
	width    int
	styles   map[string]string
	children []*termCell
}

// NewTermGrid creates an empty terminal grid that fits in width columns.
func NewTermGrid(width int) *TermGrid {
	return &TermGrid{width: width, styles: make(map[string]string)}
}

type termCell struct {
	class string
	text  string
	chart *grid.Chart
}

func (c *termCell) SetClass(name string) { c.class = name }
func (c *termCell) SetText(text string)  { c.text, c.chart = text, nil }

// SetMarkup flattens markup to its visible text; terminals cannot show tags.
func (c *termCell) SetMarkup(markup string) error {
	c.text, c.chart = markupText(markup), nil
	return nil
}

func (g *TermGrid) SetStyle(property, value string) { g.styles[property] = value }
func (g *TermGrid) CreateCell() grid.Cell            { return &termCell{} }
func (g *TermGrid) ClearChildren()                   { g.children = nil }

func (g *TermGrid) AppendChild(c grid.Cell) {
	if tc, ok := c.(*termCell); ok {
		g.children = append(g.children, tc)
	}
}

// Len returns the number of cells appended so far.
func (g *TermGrid) Len() int {
	return len(g.children)
}

// Texts returns the cell contents in insertion order.
func (g *TermGrid) Texts() []string {
	out := make([]string, len(g.children))
	for i, c := range g.children {
		out[i] = c.text
	}
	return out
}

// RenderBoard renders a board into a fresh terminal grid and draws it.
func RenderBoard(board *Board, width int) (string, error) {
	opts, err := board.Options()
	if err != nil {
		return "", err
	}
	opts.ClearMount = true

	tg := NewTermGrid(width)
	if err := grid.NewRenderer(opts).Render(tg, board.Layout, board.GridMapping()); err != nil {
		return "", err
	}
	return tg.Draw(grid.ParseLayout(board.Layout), board.GridMapping()), nil
}

// Draw lays the cells out row-major, wrapping every column-count cells the
// way CSS grid auto-placement does. layout and mapping color the cells:
// each distinct mapped symbol gets its own palette color.
func (g *TermGrid) Draw(layout grid.Layout, mapping grid.Mapping) string {
	cols := trackCount(g.styles["grid-template-columns"])
	if cols == 0 || len(g.children) == 0 {
		return ""
	}

	gap := cssLength(g.styles["gap"]) / pxPerColumn
	if gap < 1 {
		gap = 1
	}

	cellWidth := (g.width-gap*(cols-1))/cols - borderOverhead
	if cellWidth < minCellWidth {
		return renderWidthWarning(g.width, cols*(minCellWidth+borderOverhead)+gap*(cols-1))
	}

	heights := rowHeights(g.styles["grid-template-rows"])
	symbols := layout.Symbols()
	colors := symbolColors(symbols, mapping)

	var rows []string
	for start, row := 0, 0; start < len(g.children); start, row = start+cols, row+1 {
		end := start + cols
		if end > len(g.children) {
			end = len(g.children)
		}

		height := 1
		if row < len(heights) {
			height = heights[row]
		} else if len(heights) > 0 {
			height = heights[len(heights)-1]
		}

		var boxes []string
		for i := start; i < end; i++ {
			color, mapped := "", false
			if i < len(symbols) {
				color, mapped = colors[symbols[i]]
			}
			content := truncate(g.children[i].text, cellWidth*height)
			if chart := g.children[i].chart; chart != nil {
				content = termChart(*chart, cellWidth, height)
			}
			box := GetCellStyle(color, mapped).
				Width(cellWidth).
				Height(height).
				Render(content)
			if i < end-1 {
				box = lipgloss.NewStyle().PaddingRight(gap).Render(box)
			}
			boxes = append(boxes, box)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// symbolColors assigns palette colors to mapped symbols in order of first
// appearance.
func symbolColors(symbols []string, mapping grid.Mapping) map[string]string {
	colors := make(map[string]string)
	next := 0
	for _, s := range symbols {
		if _, seen := colors[s]; seen {
			continue
		}
		if _, ok := mapping[s]; !ok {
			continue
		}
		colors[s] = CurrentTheme.SymbolColor(next)
		next++
	}
	return colors
}

// trackCount returns the number of tracks in a grid template, understanding
// "repeat(N, size)" and explicit space-separated track lists.
func trackCount(template string) int {
	template = strings.TrimSpace(template)
	if template == "" {
		return 0
	}
	if inner, ok := strings.CutPrefix(template, "repeat("); ok {
		n, _, _ := strings.Cut(inner, ",")
		count, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0
		}
		return count
	}
	return len(strings.Fields(template))
}

// rowHeights converts a row template into content line counts per row.
func rowHeights(template string) []int {
	template = strings.TrimSpace(template)
	if inner, ok := strings.CutPrefix(template, "repeat("); ok {
		n, size, _ := strings.Cut(strings.TrimSuffix(inner, ")"), ",")
		count, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return nil
		}
		heights := make([]int, count)
		for i := range heights {
			heights[i] = linesFor(size)
		}
		return heights
	}

	var heights []int
	for _, size := range strings.Fields(template) {
		heights = append(heights, linesFor(size))
	}
	return heights
}

func linesFor(size string) int {
	lines := cssLength(size)/pxPerLine - borderOverhead/2
	if lines < 1 {
		return 1
	}
	return lines
}

// cssLength parses a pixel length such as "140px". Other units count as 0.
func cssLength(v string) int {
	v = strings.TrimSpace(v)
	num, ok := strings.CutSuffix(v, "px")
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(num))
	if err != nil {
		return 0
	}
	return n
}

// markupText extracts the visible text of an HTML fragment.
func markupText(markup string) string {
	z := html.NewTokenizer(strings.NewReader(markup))
	var parts []string
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(parts, " ")
		case html.TextToken:
			if text := strings.Join(strings.Fields(string(z.Text())), " "); text != "" {
				parts = append(parts, text)
			}
		}
	}
}

// truncate shortens text to at most n visible characters.
func truncate(text string, n int) string {
	if lipgloss.Width(text) <= n {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > n {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

// renderWidthWarning displays a helpful message when the terminal is too narrow.
// The message adapts to the available width.
func renderWidthWarning(currentWidth, minWidth int) string {
	maxBoxWidth := currentWidth - 4 // Leave margin for box border
	if maxBoxWidth < 1 {
		maxBoxWidth = 1
	}

	message := "Increase terminal width to view the grid"
	detail := fmt.Sprintf("Need %d columns, have %d", minWidth, currentWidth)

	if maxBoxWidth < len(message) {
		if maxBoxWidth < 30 {
			message = "Terminal too narrow"
			detail = ""
		} else {
			message = "Increase width for grid"
			detail = ""
		}
	}

	style := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(CurrentTheme.Blue)).
		Padding(1, 2).
		Width(maxBoxWidth).
		Align(lipgloss.Center)

	content := labelStyle.Bold(true).Render(message)
	if detail != "" {
		content = lipgloss.JoinVertical(lipgloss.Center, content, "", labelStyle.Render(detail))
	}

	return style.Render(content)
}
