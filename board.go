package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rivo/uniseg"
	"gopkg.in/yaml.v3"

	"asciigrid/grid"
)

// ErrNoLayout is returned when a board file has no layout.
var ErrNoLayout = errors.New("board has no layout")

// Board bundles a layout, its symbol mapping and presentation options.
type Board struct {
	Title       string            `yaml:"title"`
	Layout      string            `yaml:"layout"`
	Mapping     map[string]string `yaml:"mapping"`
	ContentMode string            `yaml:"content_mode"`
	RowHeight   string            `yaml:"row_height"`
	Gap         string            `yaml:"gap"`
	RowHeights  []string          `yaml:"row_heights"`
	ColWidths   []string          `yaml:"col_widths"`
	CellPadding string            `yaml:"cell_padding"`
	MaxWidth    string            `yaml:"max_width"`
	AllowRagged bool              `yaml:"allow_ragged"`
	Clear       bool              `yaml:"clear"`
	Theme       string            `yaml:"theme"`

	Charts map[string]ChartConfig `yaml:"charts"`
}

// ChartConfig draws a symbol as a bar or scatter chart instead of mapping
// it to content.
type ChartConfig struct {
	Type        string       `yaml:"type"`
	Color       string       `yaml:"color"`
	PointRadius float64      `yaml:"point_radius"`
	HideAxes    bool         `yaml:"hide_axes"`
	Data        []ChartDatum `yaml:"data"`
}

// ChartDatum is a bar (category, value) or a scatter point (x, y).
type ChartDatum struct {
	Category string  `yaml:"category"`
	Value    float64 `yaml:"value"`
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Label    string  `yaml:"label"`
	Color    string  `yaml:"color"`
}

// Chart converts the config to a grid.Chart.
func (c ChartConfig) Chart() grid.Chart {
	data := make([]grid.Datum, len(c.Data))
	for i, d := range c.Data {
		data[i] = grid.Datum{
			Category: d.Category,
			Value:    d.Value,
			X:        d.X,
			Y:        d.Y,
			Label:    d.Label,
			Color:    d.Color,
		}
	}
	return grid.Chart{
		Kind:        grid.ChartKind(strings.ToLower(strings.TrimSpace(c.Type))),
		Data:        data,
		Color:       c.Color,
		PointRadius: c.PointRadius,
		HideAxes:    c.HideAxes,
	}
}

// Options converts the board's presentation fields to renderer options.
func (b *Board) Options() (grid.Options, error) {
	mode, ok := grid.ParseContentMode(b.ContentMode)
	if !ok {
		return grid.Options{}, fmt.Errorf("invalid content_mode %q: must be 'text' or 'markup'", b.ContentMode)
	}
	return grid.Options{
		RowHeight:   b.RowHeight,
		Gap:         b.Gap,
		RowHeights:  b.RowHeights,
		ColWidths:   b.ColWidths,
		CellPadding: b.CellPadding,
		MaxWidth:    b.MaxWidth,
		ContentMode: mode,
		AllowRagged: b.AllowRagged,
		ClearMount:  b.Clear,
		Charts:      b.gridCharts(),
	}, nil
}

func (b *Board) gridCharts() map[string]grid.Chart {
	if len(b.Charts) == 0 {
		return nil
	}
	charts := make(map[string]grid.Chart, len(b.Charts))
	for symbol, c := range b.Charts {
		charts[symbol] = c.Chart()
	}
	return charts
}

// Validate checks the fields a renderer cannot recover from.
func (b *Board) Validate() error {
	if strings.TrimSpace(b.Layout) == "" {
		return ErrNoLayout
	}
	if _, err := b.Options(); err != nil {
		return err
	}
	for symbol := range b.Mapping {
		if n := uniseg.GraphemeClusterCount(symbol); n != 1 {
			return fmt.Errorf("mapping key %q must be a single symbol", symbol)
		}
	}
	for symbol, c := range b.Charts {
		if n := uniseg.GraphemeClusterCount(symbol); n != 1 {
			return fmt.Errorf("chart key %q must be a single symbol", symbol)
		}
		if _, ok := b.Mapping[symbol]; ok {
			return fmt.Errorf("symbol %q is both mapped and charted", symbol)
		}
		if err := c.Chart().Validate(); err != nil {
			return fmt.Errorf("chart %q: %w", symbol, err)
		}
	}
	return nil
}

// GridMapping returns the board's mapping as a grid.Mapping. Charted
// symbols map to their summary so they count as mapped.
func (b *Board) GridMapping() grid.Mapping {
	if len(b.Charts) == 0 {
		return grid.Mapping(b.Mapping)
	}
	m := make(grid.Mapping, len(b.Mapping)+len(b.Charts))
	for k, v := range b.Mapping {
		m[k] = v
	}
	for symbol, c := range b.Charts {
		m[symbol] = c.Chart().Summary()
	}
	return m
}

// BoardLoader resolves board sources: a file path, "-" for stdin, or
// "gist:<id>[/<file>]".
type BoardLoader struct {
	logger *slog.Logger
	stdin  io.Reader
	gists  *GistClient

	// stdin can only be read once; reloads of "-" decode the saved bytes.
	stdinOnce sync.Once
	stdinData []byte
	stdinErr  error
}

// NewBoardLoader creates a loader. gists may be nil when gist sources are
// not needed; it is created lazily on first use.
func NewBoardLoader(logger *slog.Logger, stdin io.Reader, gists *GistClient) *BoardLoader {
	return &BoardLoader{logger: logger, stdin: stdin, gists: gists}
}

// Load reads and validates a board from source.
func (l *BoardLoader) Load(ctx context.Context, source string) (*Board, error) {
	l.logger.Debug("Loading board.", "source", source)

	var (
		board *Board
		err   error
	)
	switch {
	case source == "-":
		board, err = l.loadStdin()
	case strings.HasPrefix(source, gistPrefix):
		board, err = l.loadGist(ctx, strings.TrimPrefix(source, gistPrefix))
	default:
		board, err = l.loadFile(source)
	}
	if err != nil {
		return nil, err
	}

	if err := board.Validate(); err != nil {
		return nil, fmt.Errorf("invalid board %s: %w", source, err)
	}
	l.logger.Debug("Board loaded.", "source", source, "title", board.Title, "symbols", len(board.Mapping))
	return board, nil
}

func (l *BoardLoader) loadFile(path string) (*Board, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open board: %w", err)
	}
	defer f.Close()
	return l.loadReader(f, filepath.Ext(path), path)
}

func (l *BoardLoader) loadStdin() (*Board, error) {
	l.stdinOnce.Do(func() {
		if l.stdin == nil {
			l.stdinErr = errors.New("no stdin available")
			return
		}
		l.stdinData, l.stdinErr = io.ReadAll(l.stdin)
	})
	if l.stdinErr != nil {
		return nil, fmt.Errorf("failed to read board stdin: %w", l.stdinErr)
	}
	return decodeBoard(l.stdinData, ".yaml", "stdin")
}

func (l *BoardLoader) loadReader(r io.Reader, ext, name string) (*Board, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read board %s: %w", name, err)
	}
	return decodeBoard(data, ext, name)
}

func (l *BoardLoader) loadGist(ctx context.Context, ref string) (*Board, error) {
	if l.gists == nil {
		client, err := NewGistClient()
		if err != nil {
			return nil, err
		}
		l.gists = client
	}

	id, file, _ := strings.Cut(ref, "/")
	gf, err := l.gists.FetchBoardFile(ctx, id, file)
	if err != nil {
		return nil, err
	}
	l.logger.Debug("Fetched board from gist.", "gist", id, "file", gf.Filename)
	return decodeBoard([]byte(gf.Content), filepath.Ext(gf.Filename), gistPrefix+ref)
}

// boardExtensions lists the file extensions decodeBoard understands.
var boardExtensions = []string{".yaml", ".yml", ".hcl"}

func supportedBoardFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range boardExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

// decodeBoard picks the decoder by file extension.
func decodeBoard(data []byte, ext, name string) (*Board, error) {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		var b Board
		if err := yaml.Unmarshal(data, &b); err != nil {
			return nil, fmt.Errorf("failed to parse YAML board %s: %w", name, err)
		}
		return &b, nil
	case ".hcl":
		return decodeHCLBoard(data, name)
	default:
		return nil, fmt.Errorf("unsupported board format %q for %s (want .yaml, .yml or .hcl)", ext, name)
	}
}
