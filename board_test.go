package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asciigrid/grid"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeBoardFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const yamlBoard = `title: Sales
layout: |
  AAB
  CDD
mapping:
  A: "<b>Revenue</b>"
  B: Users
content_mode: markup
row_heights: [200px, 100px]
gap: 12px
theme: Nord
`

func TestLoadYAMLBoard(t *testing.T) {
	path := writeBoardFile(t, "board.yaml", yamlBoard)
	loader := NewBoardLoader(discardLogger(), nil, nil)

	board, err := loader.Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "Sales", board.Title)
	assert.Equal(t, "AAB\nCDD\n", board.Layout)
	assert.Equal(t, map[string]string{"A": "<b>Revenue</b>", "B": "Users"}, board.Mapping)
	assert.Equal(t, []string{"200px", "100px"}, board.RowHeights)
	assert.Equal(t, "Nord", board.Theme)

	opts, err := board.Options()
	require.NoError(t, err)
	assert.Equal(t, grid.TrustedMarkup, opts.ContentMode)
	assert.Equal(t, "12px", opts.Gap)
}

func TestLoadBoardFromStdin(t *testing.T) {
	loader := NewBoardLoader(discardLogger(), strings.NewReader("layout: XY\n"), nil)

	board, err := loader.Load(context.Background(), "-")
	require.NoError(t, err)
	assert.Equal(t, "XY", board.Layout)
}

func TestLoadBoardFromStdinTwice(t *testing.T) {
	loader := NewBoardLoader(discardLogger(), strings.NewReader("layout: XY\n"), nil)

	for i := 0; i < 2; i++ {
		board, err := loader.Load(context.Background(), "-")
		require.NoError(t, err, "load %d", i+1)
		assert.Equal(t, "XY", board.Layout)
	}
}

func TestLoadBoardWithoutStdin(t *testing.T) {
	loader := NewBoardLoader(discardLogger(), nil, nil)

	_, err := loader.Load(context.Background(), "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no stdin")
}

const hclBoardSource = `
title  = upper("ops ${env.BOARD_TEAM}")
layout = <<EOT
AB
CC
EOT
mapping = {
  "A" = format("<em>%s</em>", "alerts")
  "C" = join(", ", ["cpu", "mem"])
}
row_height   = "90px"
allow_ragged = true
`

func TestLoadHCLBoard(t *testing.T) {
	t.Setenv("BOARD_TEAM", "infra")
	path := writeBoardFile(t, "board.hcl", hclBoardSource)
	loader := NewBoardLoader(discardLogger(), nil, nil)

	board, err := loader.Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "OPS INFRA", board.Title)
	assert.Equal(t, "AB\nCC\n", board.Layout)
	assert.Equal(t, "<em>alerts</em>", board.Mapping["A"])
	assert.Equal(t, "cpu, mem", board.Mapping["C"])
	assert.Equal(t, "90px", board.RowHeight)
	assert.True(t, board.AllowRagged)
}

func TestLoadHCLBoardRejectsUnknownAttribute(t *testing.T) {
	path := writeBoardFile(t, "board.hcl", "layout = \"AB\"\ncolour = \"red\"\n")
	loader := NewBoardLoader(discardLogger(), nil, nil)

	_, err := loader.Load(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "colour")
}

func TestLoadHCLBoardRequiresLayout(t *testing.T) {
	path := writeBoardFile(t, "board.hcl", "title = \"x\"\n")
	loader := NewBoardLoader(discardLogger(), nil, nil)

	_, err := loader.Load(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "layout")
}

func TestLoadBoardErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{"no layout", "empty.yaml", "title: nothing\n", "board has no layout"},
		{"blank layout", "blank.yaml", "layout: \"  \\n \"\n", "board has no layout"},
		{"bad content mode", "mode.yaml", "layout: AB\ncontent_mode: rich\n", "invalid content_mode"},
		{"multi-symbol key", "key.yaml", "layout: AB\nmapping:\n  AB: both\n", "single symbol"},
		{"unsupported format", "board.json", "{}", "unsupported board format"},
		{"bad yaml", "broken.yaml", "layout: [\n", "failed to parse YAML"},
		{"bad chart type", "pie.yaml", "layout: AB\ncharts:\n  A:\n    type: pie\n", "unknown chart kind"},
		{"multi-symbol chart key", "ck.yaml", "layout: AB\ncharts:\n  AB:\n    type: bar\n", "chart key"},
		{"mapped and charted", "both.yaml", "layout: AB\nmapping:\n  A: x\ncharts:\n  A:\n    type: bar\n", "both mapped and charted"},
	}

	loader := NewBoardLoader(discardLogger(), nil, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeBoardFile(t, tt.file, tt.content)
			_, err := loader.Load(context.Background(), path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadBoardMissingFile(t *testing.T) {
	loader := NewBoardLoader(discardLogger(), nil, nil)
	_, err := loader.Load(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestBoardValidateAllowsSpaceKey(t *testing.T) {
	b := &Board{Layout: "A A", Mapping: map[string]string{" ": "gap"}}
	assert.NoError(t, b.Validate())
}

func TestBoardEvalContextSkipsInvalidNames(t *testing.T) {
	ctx := boardEvalContext([]string{"GOOD=1", "DASHED-NAME=2", "1BAD=3", "BAD.NAME=4", "NOEQUALS", "=empty"})
	env := ctx.Variables["env"]

	assert.True(t, env.Type().HasAttribute("GOOD"))
	assert.True(t, env.Type().HasAttribute("DASHED-NAME"))
	assert.False(t, env.Type().HasAttribute("1BAD"))
	assert.False(t, env.Type().HasAttribute("BAD.NAME"))
	assert.Equal(t, 2, len(env.Type().AttributeTypes()))
}

func TestSupportedBoardFile(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"board.yaml", true},
		{"board.YML", true},
		{"board.hcl", true},
		{"README.md", false},
		{"yaml", false},
	}
	for _, tt := range tests {
		if got := supportedBoardFile(tt.name); got != tt.want {
			t.Errorf("supportedBoardFile(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestSampleBoardsRender(t *testing.T) {
	loader := NewBoardLoader(discardLogger(), nil, nil)
	pages := NewPageBuilder(discardLogger())

	for _, path := range []string{"boards/dashboard.yaml", "boards/team.hcl"} {
		t.Run(path, func(t *testing.T) {
			board, err := loader.Load(context.Background(), path)
			require.NoError(t, err)

			doc, err := pages.Build(board, PageOptions{MountID: "sample"})
			require.NoError(t, err)
			mount, ok := doc.ElementByID("sample")
			require.True(t, ok)
			assert.Len(t, mount.(*grid.HTMLContainer).Children(), grid.ParseLayout(board.Layout).Cells())

			var buf strings.Builder
			require.NoError(t, doc.Render(&buf))
			assert.Contains(t, buf.String(), `class="matrix-chart"`)
		})
	}
}

const yamlChartBoard = `layout: |
  AB
charts:
  B:
    type: Bar
    color: "#336699"
    data:
      - {category: web, value: 3}
      - {category: db, value: 6}
  A:
    type: scatter
    hide_axes: true
    point_radius: 2
    data:
      - {x: 1, y: 2, label: first}
      - {x: 3, y: 4, color: "#ff0000"}
`

func TestLoadYAMLBoardCharts(t *testing.T) {
	path := writeBoardFile(t, "charts.yaml", yamlChartBoard)
	board, err := NewBoardLoader(discardLogger(), nil, nil).Load(context.Background(), path)
	require.NoError(t, err)

	opts, err := board.Options()
	require.NoError(t, err)
	require.Len(t, opts.Charts, 2)

	bar := opts.Charts["B"]
	assert.Equal(t, grid.BarChart, bar.Kind)
	assert.Equal(t, "#336699", bar.Color)
	assert.Equal(t, []grid.Datum{{Category: "web", Value: 3}, {Category: "db", Value: 6}}, bar.Data)

	scatter := opts.Charts["A"]
	assert.Equal(t, grid.ScatterChart, scatter.Kind)
	assert.True(t, scatter.HideAxes)
	assert.Equal(t, 2.0, scatter.PointRadius)
	assert.Equal(t, grid.Datum{X: 3, Y: 4, Color: "#ff0000"}, scatter.Data[1])

	assert.Equal(t, grid.Mapping{"A": "scatter plot (2 points)", "B": "bar chart (2 bars)"}, board.GridMapping())
}

const hclChartBoard = `
layout = "AB"

mapping = {
  "A" = "alpha"
}

chart "B" {
  type = "bar"

  bar {
    category = "mon"
    value    = 2
  }
  bar {
    value = 5
  }
}
`

func TestLoadHCLBoardCharts(t *testing.T) {
	path := writeBoardFile(t, "charts.hcl", hclChartBoard)
	board, err := NewBoardLoader(discardLogger(), nil, nil).Load(context.Background(), path)
	require.NoError(t, err)

	require.Contains(t, board.Charts, "B")
	chart := board.Charts["B"].Chart()
	assert.Equal(t, grid.BarChart, chart.Kind)
	assert.Equal(t, []grid.Datum{{Category: "mon", Value: 2}, {Value: 5}}, chart.Data)
	assert.Equal(t, "alpha", board.GridMapping()["A"])
	assert.Equal(t, map[string]string{"A": "alpha"}, board.Mapping)
}

func TestLoadHCLBoardDuplicateChart(t *testing.T) {
	path := writeBoardFile(t, "dup.hcl", `
layout = "AB"
chart "B" {
  type = "bar"
}
chart "B" {
  type = "scatter"
}
`)
	_, err := NewBoardLoader(discardLogger(), nil, nil).Load(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate chart "B"`)
}
