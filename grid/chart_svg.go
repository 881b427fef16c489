package grid

import (
	"fmt"
	"math"
	"strconv"

	"golang.org/x/net/html"
)

// Chart drawing area in SVG user units. The svg scales to its cell through
// its viewBox.
const (
	chartWidth   = 260
	chartHeight  = 160
	marginTop    = 10
	marginRight  = 10
	marginBottom = 30
	marginLeft   = 35
	innerWidth   = chartWidth - marginLeft - marginRight
	innerHeight  = chartHeight - marginTop - marginBottom

	// bandPadding is the share of each bar slot left empty.
	bandPadding = 0.2
)

// ChartClass is the class of the svg element drawn for a chart cell.
const ChartClass = "matrix-chart"

// SetChart replaces the cell content with an inline SVG drawing of c.
func (c *HTMLCell) SetChart(chart Chart) error {
	if err := chart.Validate(); err != nil {
		return err
	}
	c.clear()
	c.node.AppendChild(chartSVG(chart))
	return nil
}

func chartSVG(c Chart) *html.Node {
	svg := svgElement("svg",
		"xmlns", "http://www.w3.org/2000/svg",
		"class", ChartClass,
		"viewBox", fmt.Sprintf("0 0 %d %d", chartWidth, chartHeight),
		"preserveAspectRatio", "xMidYMid meet",
		"role", "img",
		"aria-label", c.Summary(),
	)
	plot := svgElement("g", "transform", fmt.Sprintf("translate(%d,%d)", marginLeft, marginTop))
	svg.AppendChild(plot)

	switch c.Kind {
	case BarChart:
		drawBars(plot, c)
	case ScatterChart:
		drawPoints(plot, c)
	}
	return svg
}

func drawBars(plot *html.Node, c Chart) {
	n := len(c.Data)
	step := innerWidth / (float64(n) + bandPadding)
	band := step * (1 - bandPadding)

	for i, d := range c.Data {
		h := c.BarShare(i) * innerHeight
		x := step*bandPadding + float64(i)*step
		rect := svgElement("rect",
			"class", "bar",
			"x", num(x),
			"y", num(innerHeight-h),
			"width", num(band),
			"height", num(h),
			"fill", c.MarkColor(),
		)
		rect.AppendChild(svgTitle(fmt.Sprintf("%s: %s", c.BarLabel(i), num(d.Value))))
		plot.AppendChild(rect)
	}

	if c.HideAxes {
		return
	}
	axes := drawAxes(plot)
	for i := range c.Data {
		x := step*bandPadding + float64(i)*step + band/2
		axes.AppendChild(svgText(c.BarLabel(i), x, innerHeight+14, "middle"))
	}
	axes.AppendChild(svgText("0", -4, innerHeight, "end"))
	axes.AppendChild(svgText(num(c.MaxValue()), -4, 8, "end"))
}

func drawPoints(plot *html.Node, c Chart) {
	dom := c.ScatterDomain()

	for _, p := range c.Data {
		fx, fy := dom.Position(p)
		fill := p.Color
		if fill == "" {
			fill = c.MarkColor()
		}
		circle := svgElement("circle",
			"class", "scatter-point",
			"cx", num(fx*innerWidth),
			"cy", num((1-fy)*innerHeight),
			"r", num(c.Radius()),
			"fill", fill,
			"opacity", "0.7",
		)
		tip := fmt.Sprintf("X: %.2f, Y: %.2f", p.X, p.Y)
		if p.Label != "" {
			tip = p.Label + " " + tip
		}
		circle.AppendChild(svgTitle(tip))
		plot.AppendChild(circle)
	}

	if c.HideAxes {
		return
	}
	axes := drawAxes(plot)
	axes.AppendChild(svgText(num(dom.MinX), 0, innerHeight+14, "start"))
	axes.AppendChild(svgText(num(dom.MaxX), innerWidth, innerHeight+14, "end"))
	axes.AppendChild(svgText(num(dom.MinY), -4, innerHeight, "end"))
	axes.AppendChild(svgText(num(dom.MaxY), -4, 8, "end"))
}

// drawAxes draws the x and y axis lines and returns their group for labels.
func drawAxes(plot *html.Node) *html.Node {
	axes := svgElement("g", "class", "axis", "font-size", "10", "fill", "currentColor")
	axes.AppendChild(svgElement("line",
		"x1", "0", "y1", num(innerHeight), "x2", num(innerWidth), "y2", num(innerHeight),
		"stroke", "currentColor"))
	axes.AppendChild(svgElement("line",
		"x1", "0", "y1", "0", "x2", "0", "y2", num(innerHeight),
		"stroke", "currentColor"))
	plot.AppendChild(axes)
	return axes
}

func svgElement(name string, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: name, Namespace: "svg"}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func svgTitle(text string) *html.Node {
	t := svgElement("title")
	t.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return t
}

func svgText(text string, x, y float64, anchor string) *html.Node {
	t := svgElement("text", "x", num(x), "y", num(y), "text-anchor", anchor)
	t.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return t
}

// num formats a coordinate with at most two decimals.
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
