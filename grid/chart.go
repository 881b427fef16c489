package grid

import (
	"errors"
	"fmt"
	"math"
)

// ChartKind selects how a Chart is drawn.
type ChartKind string

const (
	BarChart     ChartKind = "bar"
	ScatterChart ChartKind = "scatter"
)

// Default chart colors and point size.
const (
	DefaultBarColor     = "#4a90e2"
	DefaultScatterColor = "#e24a4a"
	DefaultPointRadius  = 4.0
)

// ErrUnknownChartKind is returned for a chart whose kind is not bar or scatter.
var ErrUnknownChartKind = errors.New("unknown chart kind")

// Datum is one chart data point. Bar charts read Category and Value;
// scatter charts read X, Y, Label and Color.
type Datum struct {
	Category string
	Value    float64
	X, Y     float64
	Label    string
	Color    string
}

// Chart is a cell that draws data instead of showing content. Hosts that
// cannot draw charts show Summary as text.
type Chart struct {
	Kind        ChartKind
	Data        []Datum
	Color       string
	PointRadius float64
	HideAxes    bool
}

// ChartCell is implemented by cells that can draw a Chart.
type ChartCell interface {
	Cell
	SetChart(c Chart) error
}

// Validate checks the chart kind.
func (c Chart) Validate() error {
	switch c.Kind {
	case BarChart, ScatterChart:
		return nil
	default:
		return fmt.Errorf("%w %q: must be 'bar' or 'scatter'", ErrUnknownChartKind, c.Kind)
	}
}

// Summary describes the chart in one line of text.
func (c Chart) Summary() string {
	switch c.Kind {
	case BarChart:
		return fmt.Sprintf("bar chart (%d bars)", len(c.Data))
	case ScatterChart:
		return fmt.Sprintf("scatter plot (%d points)", len(c.Data))
	default:
		return fmt.Sprintf("%s chart", c.Kind)
	}
}

// MarkColor returns the chart's fill color, or the default for its kind.
func (c Chart) MarkColor() string {
	if c.Color != "" {
		return c.Color
	}
	if c.Kind == ScatterChart {
		return DefaultScatterColor
	}
	return DefaultBarColor
}

// Radius returns the scatter point radius.
func (c Chart) Radius() float64 {
	if c.PointRadius > 0 {
		return c.PointRadius
	}
	return DefaultPointRadius
}

// BarLabel returns the category of the i-th bar, or its index when unset.
func (c Chart) BarLabel(i int) string {
	if c.Data[i].Category != "" {
		return c.Data[i].Category
	}
	return fmt.Sprint(i)
}

// MaxValue is the top of a bar chart's value axis. Negative values count
// as zero.
func (c Chart) MaxValue() float64 {
	max := 0.0
	for _, d := range c.Data {
		max = math.Max(max, d.Value)
	}
	return max
}

// BarShare returns the i-th bar's height as a fraction of MaxValue.
func (c Chart) BarShare(i int) float64 {
	max := c.MaxValue()
	if max == 0 {
		return 0
	}
	return math.Max(0, c.Data[i].Value) / max
}

// Domain is a scatter chart's axis range.
type Domain struct {
	MinX, MaxX, MinY, MaxY float64
}

// ScatterDomain spans the data with 10% padding on each side. A single
// value on an axis is widened by one unit each way.
func (c Chart) ScatterDomain() Domain {
	if len(c.Data) == 0 {
		return Domain{MinX: 0, MaxX: 1, MinY: 0, MaxY: 1}
	}
	d := Domain{
		MinX: math.Inf(1), MaxX: math.Inf(-1),
		MinY: math.Inf(1), MaxY: math.Inf(-1),
	}
	for _, p := range c.Data {
		d.MinX, d.MaxX = math.Min(d.MinX, p.X), math.Max(d.MaxX, p.X)
		d.MinY, d.MaxY = math.Min(d.MinY, p.Y), math.Max(d.MaxY, p.Y)
	}
	d.MinX, d.MaxX = padRange(d.MinX, d.MaxX)
	d.MinY, d.MaxY = padRange(d.MinY, d.MaxY)
	return d
}

func padRange(lo, hi float64) (float64, float64) {
	span := hi - lo
	if span == 0 {
		return lo - 1, hi + 1
	}
	return lo - span*0.1, hi + span*0.1
}

// Position maps a point into the unit square of the domain, y growing up.
func (d Domain) Position(p Datum) (fx, fy float64) {
	return (p.X - d.MinX) / (d.MaxX - d.MinX), (p.Y - d.MinY) / (d.MaxY - d.MinY)
}
