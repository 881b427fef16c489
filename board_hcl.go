package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// hclBoard is the HCL schema of a board file.
type hclBoard struct {
	Title       string            `hcl:"title,optional"`
	Layout      string            `hcl:"layout"`
	Mapping     map[string]string `hcl:"mapping,optional"`
	ContentMode string            `hcl:"content_mode,optional"`
	RowHeight   string            `hcl:"row_height,optional"`
	Gap         string            `hcl:"gap,optional"`
	RowHeights  []string          `hcl:"row_heights,optional"`
	ColWidths   []string          `hcl:"col_widths,optional"`
	CellPadding string            `hcl:"cell_padding,optional"`
	MaxWidth    string            `hcl:"max_width,optional"`
	AllowRagged bool              `hcl:"allow_ragged,optional"`
	Clear       bool              `hcl:"clear,optional"`
	Theme       string            `hcl:"theme,optional"`
	Charts      []hclChart        `hcl:"chart,block"`
}

// hclChart is a `chart "<symbol>" { ... }` block with bar or point blocks.
type hclChart struct {
	Symbol      string     `hcl:"symbol,label"`
	Type        string     `hcl:"type"`
	Color       string     `hcl:"color,optional"`
	PointRadius float64    `hcl:"point_radius,optional"`
	HideAxes    bool       `hcl:"hide_axes,optional"`
	Bars        []hclBar   `hcl:"bar,block"`
	Points      []hclPoint `hcl:"point,block"`
}

type hclBar struct {
	Category string  `hcl:"category,optional"`
	Value    float64 `hcl:"value"`
}

type hclPoint struct {
	X     float64 `hcl:"x"`
	Y     float64 `hcl:"y"`
	Label string  `hcl:"label,optional"`
	Color string  `hcl:"color,optional"`
}

// boardFunctions are callable from HCL board expressions.
var boardFunctions = map[string]function.Function{
	"upper":     stdlib.UpperFunc,
	"lower":     stdlib.LowerFunc,
	"format":    stdlib.FormatFunc,
	"join":      stdlib.JoinFunc,
	"trimspace": stdlib.TrimSpaceFunc,
}

// boardEvalContext exposes the functions above and the process environment
// as env.<NAME>.
func boardEvalContext(environ []string) *hcl.EvalContext {
	vars := make(map[string]cty.Value)
	for _, kv := range environ {
		name, val, ok := strings.Cut(kv, "=")
		if !ok || !hclsyntax.ValidIdentifier(name) {
			continue
		}
		vars[name] = cty.StringVal(val)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": cty.ObjectVal(vars)},
		Functions: boardFunctions,
	}
}

func decodeHCLBoard(data []byte, name string) (*Board, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, name)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL board %s: %w", name, diags)
	}

	var hb hclBoard
	diags = gohcl.DecodeBody(file.Body, boardEvalContext(os.Environ()), &hb)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL board %s: %w", name, diags)
	}

	charts, err := hclCharts(hb.Charts, name)
	if err != nil {
		return nil, err
	}

	return &Board{
		Title:       hb.Title,
		Layout:      hb.Layout,
		Mapping:     hb.Mapping,
		ContentMode: hb.ContentMode,
		RowHeight:   hb.RowHeight,
		Gap:         hb.Gap,
		RowHeights:  hb.RowHeights,
		ColWidths:   hb.ColWidths,
		CellPadding: hb.CellPadding,
		MaxWidth:    hb.MaxWidth,
		AllowRagged: hb.AllowRagged,
		Clear:       hb.Clear,
		Theme:       hb.Theme,
		Charts:      charts,
	}, nil
}

func hclCharts(blocks []hclChart, name string) (map[string]ChartConfig, error) {
	if len(blocks) == 0 {
		return nil, nil
	}
	charts := make(map[string]ChartConfig, len(blocks))
	for _, hc := range blocks {
		if _, dup := charts[hc.Symbol]; dup {
			return nil, fmt.Errorf("duplicate chart %q in HCL board %s", hc.Symbol, name)
		}
		cfg := ChartConfig{
			Type:        hc.Type,
			Color:       hc.Color,
			PointRadius: hc.PointRadius,
			HideAxes:    hc.HideAxes,
		}
		for _, bar := range hc.Bars {
			cfg.Data = append(cfg.Data, ChartDatum{Category: bar.Category, Value: bar.Value})
		}
		for _, p := range hc.Points {
			cfg.Data = append(cfg.Data, ChartDatum{X: p.X, Y: p.Y, Label: p.Label, Color: p.Color})
		}
		charts[hc.Symbol] = cfg
	}
	return charts, nil
}
