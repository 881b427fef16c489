package grid

import (
	"errors"
	"fmt"
	"strings"
)

// Default grid metrics.
const (
	DefaultRowHeight = "140px"
	DefaultGap       = "8px"
	CellClass        = "matrix-cell"
)

// Options configures a Renderer. The zero value renders literal text with
// the default metrics and rejects ragged layouts.
type Options struct {
	RowHeight   string   // height of every row, e.g. "140px"
	Gap         string   // gap between cells, e.g. "8px"
	RowHeights  []string // per-row heights; overrides RowHeight when set
	ColWidths   []string // per-column widths; overrides the 1fr columns when set
	CellPadding string
	MaxWidth    string

	ContentMode ContentMode

	// AllowRagged accepts rows of unequal width. The first row still
	// decides the column count and every symbol is rendered.
	AllowRagged bool

	// ClearMount removes existing children before rendering. Without it
	// repeated renders accumulate cells.
	ClearMount bool

	// Charts draws these symbols as charts. A chart takes precedence over
	// the mapping and ignores ContentMode.
	Charts map[string]Chart
}

// GridTemplate is the grid configuration applied to a container.
type GridTemplate struct {
	Columns int
	Rows    int

	ColumnTemplate string
	RowTemplate    string
	Gap            string
}

// Renderer renders layouts into containers.
type Renderer struct {
	opts Options
}

// NewRenderer creates a Renderer, filling unset metrics with defaults.
func NewRenderer(opts Options) *Renderer {
	if opts.RowHeight == "" {
		opts.RowHeight = DefaultRowHeight
	}
	if opts.Gap == "" {
		opts.Gap = DefaultGap
	}
	return &Renderer{opts: opts}
}

// Options returns the renderer's effective options.
func (r *Renderer) Options() Options {
	return r.opts
}

// RenderByID looks the mount point up in doc and renders into it. A mount
// id that does not resolve is not an error: nothing is rendered.
func (r *Renderer) RenderByID(doc Document, mountID, layout string, mapping Mapping) error {
	mount, ok := doc.ElementByID(mountID)
	if !ok {
		return nil
	}
	return r.Render(mount, layout, mapping)
}

// Render configures mount as a grid and appends one cell per layout symbol
// in row-major order. The layout is validated and every cell filled before
// mount is touched, so a failure leaves mount unchanged.
func (r *Renderer) Render(mount Container, layout string, mapping Mapping) error {
	l := ParseLayout(layout)
	if err := r.check(l); err != nil {
		return err
	}

	cells := make([]Cell, 0, l.Cells())
	for i := 0; i < l.Rows(); i++ {
		for _, symbol := range l.Row(i) {
			cell := mount.CreateCell()
			cell.SetClass(CellClass)
			if err := r.fill(cell, symbol, mapping); err != nil {
				return fmt.Errorf("cell %q at row %d: %w", symbol, i+1, err)
			}
			cells = append(cells, cell)
		}
	}

	if r.opts.ClearMount {
		mount.ClearChildren()
	}
	r.applyTemplate(mount, r.Template(l))
	for _, cell := range cells {
		mount.AppendChild(cell)
	}
	return nil
}

func (r *Renderer) check(l Layout) error {
	err := l.Validate()
	if err == nil {
		return nil
	}
	var ragged *RaggedRowError
	if errors.As(err, &ragged) && r.opts.AllowRagged {
		return nil
	}
	return err
}

func (r *Renderer) fill(cell Cell, symbol string, mapping Mapping) error {
	if chart, ok := r.opts.Charts[symbol]; ok {
		if err := chart.Validate(); err != nil {
			return err
		}
		if cc, ok := cell.(ChartCell); ok {
			return cc.SetChart(chart)
		}
		cell.SetText(chart.Summary())
		return nil
	}
	content, mapped := mapping.Lookup(symbol)
	if mapped && r.opts.ContentMode == TrustedMarkup {
		return cell.SetMarkup(content)
	}
	cell.SetText(content)
	return nil
}

// Template computes the grid configuration for a layout.
func (r *Renderer) Template(l Layout) GridTemplate {
	t := GridTemplate{
		Columns: l.Columns(),
		Rows:    l.Rows(),
		Gap:     r.opts.Gap,
	}

	if len(r.opts.ColWidths) > 0 {
		t.ColumnTemplate = expandTracks(r.opts.ColWidths, t.Columns, "1fr")
	} else {
		t.ColumnTemplate = fmt.Sprintf("repeat(%d, 1fr)", t.Columns)
	}

	if len(r.opts.RowHeights) > 0 {
		t.RowTemplate = expandTracks(r.opts.RowHeights, t.Rows, r.opts.RowHeight)
	} else {
		t.RowTemplate = fmt.Sprintf("repeat(%d, %s)", t.Rows, r.opts.RowHeight)
	}
	return t
}

// expandTracks lists n track sizes, padding missing entries with fallback
// and dropping extras.
func expandTracks(sizes []string, n int, fallback string) string {
	tracks := make([]string, n)
	for i := range tracks {
		if i < len(sizes) && sizes[i] != "" {
			tracks[i] = sizes[i]
		} else {
			tracks[i] = fallback
		}
	}
	return strings.Join(tracks, " ")
}

func (r *Renderer) applyTemplate(mount Container, t GridTemplate) {
	mount.SetStyle("display", "grid")
	mount.SetStyle("grid-template-columns", t.ColumnTemplate)
	mount.SetStyle("grid-template-rows", t.RowTemplate)
	mount.SetStyle("gap", t.Gap)
	if r.opts.CellPadding != "" {
		mount.SetStyle("--cell-padding", r.opts.CellPadding)
	}
	if r.opts.MaxWidth != "" {
		mount.SetStyle("max-width", r.opts.MaxWidth)
	}
}
