package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"asciigrid/grid"
)

// defaultPreviewWidth is used when the terminal width cannot be detected.
const defaultPreviewWidth = 100

// App wires the board loader, page builder and terminal views together.
type App struct {
	out    io.Writer
	logger *slog.Logger
	loader *BoardLoader
	pages  *PageBuilder
}

// NewApp creates an App writing results to out and logs to logW.
func NewApp(out, logW io.Writer, stdin io.Reader, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	return &App{
		out:    out,
		logger: logger,
		loader: NewBoardLoader(logger, stdin, nil),
		pages:  NewPageBuilder(logger),
	}
}

// Run executes the configured command.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	if err := a.loadThemes(cfg.ThemesDir); err != nil {
		return err
	}

	if cfg.Command == cmdThemes {
		InitTheme(cfg.Theme)
		return a.listThemes()
	}

	board, err := a.loader.Load(ctx, cfg.Source)
	if err != nil {
		return err
	}
	a.activateTheme(cfg.Theme, board)

	switch cfg.Command {
	case cmdRender:
		return a.render(board, cfg)
	case cmdPreview:
		return a.preview(board, cfg)
	case cmdView:
		return a.view(ctx, board, cfg)
	case cmdServe:
		return a.serve(ctx, board, cfg)
	default:
		return &ExitError{Code: 2, Message: fmt.Sprintf("unknown command %q", cfg.Command)}
	}
}

func (a *App) loadThemes(dir string) error {
	if dir == "" {
		return nil
	}
	extra, err := LoadAllThemes(a.logger, dir)
	if err != nil {
		return err
	}
	InitTheme("")
	RegisterThemes(extra)
	return nil
}

// activateTheme picks the flag theme over the board theme.
func (a *App) activateTheme(flagTheme string, board *Board) {
	name := flagTheme
	if name == "" {
		name = board.Theme
	}
	InitTheme(name)
	if _, ok := LookupTheme(name); name != "" && !ok {
		a.logger.Warn("Unknown theme, using fallback.", "theme", name, "using", GetCurrentThemeName())
	}
	a.logger.Debug("Theme selected.", "theme", GetCurrentThemeName())
}

func (a *App) listThemes() error {
	current := GetCurrentThemeName()
	for _, name := range ThemeNames() {
		marker := "  "
		if name == current {
			marker = "* "
		}
		if _, err := fmt.Fprintln(a.out, marker+name); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) render(board *Board, cfg *Config) error {
	opts := PageOptions{Theme: CurrentTheme, ContentMode: cfg.contentModeOverride()}

	if cfg.Output == "" {
		return a.pages.Write(a.out, board, opts)
	}

	f, err := os.Create(cfg.Output)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := a.pages.Write(f, board, opts); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	a.logger.Info("Page written.", "path", cfg.Output)
	return nil
}

func (a *App) preview(board *Board, cfg *Config) error {
	width := cfg.Width
	if width == 0 {
		width = terminalWidth()
	}
	if mode := cfg.contentModeOverride(); mode != nil {
		board.ContentMode = mode.String()
	}

	out, err := renderPreview(board, width)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.out, out)
	return err
}

// renderPreview stacks the title banner, the grid and the symbol stats.
func renderPreview(board *Board, width int) (string, error) {
	gridView, err := RenderBoard(board, width)
	if err != nil {
		return "", err
	}

	var sections []string
	if board.Title != "" {
		sections = append(sections, bannerStyle.Render(RenderBanner(board.Title)), "")
	}
	sections = append(sections, gridView, "")

	stats := CalculateBoardStats(grid.ParseLayout(board.Layout), board.GridMapping())
	sections = append(sections, renderStats(stats, width, 5))

	return lipgloss.JoinVertical(lipgloss.Left, sections...), nil
}

func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return defaultPreviewWidth
}
