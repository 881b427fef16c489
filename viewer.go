package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"asciigrid/grid"
)

// statsPanelWidth is the width reserved for the symbol stats column.
const statsPanelWidth = 36

// Model is the interactive board viewer following the Elm architecture.
type Model struct {
	ctx      context.Context
	source   string
	loader   *BoardLoader
	board    *Board
	mode     grid.ContentMode
	override *grid.ContentMode
	viewport viewport.Model
	spinner  spinner.Model
	loading  bool
	err      error
	ready    bool
	width    int
	height   int
}

// Messages for async board loading
type boardMsg *Board
type errMsg error

// NewModel creates a viewer for source. override, when set, replaces the
// board's content mode.
func NewModel(ctx context.Context, loader *BoardLoader, source string, override *grid.ContentMode) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = loadingStyle

	return Model{
		ctx:      ctx,
		source:   source,
		loader:   loader,
		override: override,
		spinner:  s,
		loading:  true,
	}
}

// Init kicks off the spinner and the first board load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadBoard(m.ctx, m.loader, m.source))
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Ignore all keys except quit while loading
		if m.loading && msg.String() != "q" && msg.String() != "ctrl+c" {
			return m, nil
		}

		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.err = nil
			return m, tea.Batch(m.spinner.Tick, loadBoard(m.ctx, m.loader, m.source))
		case "t":
			NextTheme()
			m.refreshGrid()
			return m, nil
		case "m":
			if m.board == nil {
				return m, nil
			}
			if m.mode == grid.TrustedMarkup {
				m.mode = grid.LiteralText
			} else {
				m.mode = grid.TrustedMarkup
			}
			m.refreshGrid()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Header and status bar heights are subtracted in View
		if !m.ready {
			m.viewport = viewport.New(m.gridWidth(), m.height)
			m.ready = true
		} else {
			m.viewport.Width = m.gridWidth()
		}
		m.refreshGrid()

	case boardMsg:
		m.board = msg
		m.loading = false
		if m.override != nil {
			m.mode = *m.override
		} else {
			m.mode, _ = grid.ParseContentMode(m.board.ContentMode)
		}
		m.refreshGrid()
		m.viewport.GotoTop()
		return m, nil

	case errMsg:
		m.err = msg
		m.loading = false
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// gridWidth is the space left for the grid next to the stats panel.
func (m Model) gridWidth() int {
	w := m.width - statsPanelWidth - 4
	if w < 20 {
		return m.width
	}
	return w
}

// refreshGrid re-renders the board into the viewport.
func (m *Model) refreshGrid() {
	if m.board == nil || !m.ready {
		return
	}

	board := *m.board
	board.ContentMode = m.mode.String()

	content, err := RenderBoard(&board, m.gridWidth())
	if err != nil {
		m.err = err
		return
	}
	m.viewport.SetContent(content)
}

// View renders the TUI
func (m Model) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n" +
			labelStyle.Render("r: retry | q: quit")
	}

	if m.loading || m.board == nil {
		return m.renderLoading()
	}

	var sections []string

	header := m.renderHeader()
	sections = append(sections, header)

	statusBar := m.renderStatusBar()

	// Give the viewport whatever height remains
	m.viewport.Height = m.height - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if m.viewport.Height < 3 {
		m.viewport.Height = 3
	}

	body := m.viewport.View()
	if m.width-m.gridWidth() >= statsPanelWidth {
		stats := CalculateBoardStats(grid.ParseLayout(m.board.Layout), m.board.GridMapping())
		panel := lipgloss.NewStyle().
			PaddingLeft(2).
			Width(statsPanelWidth).
			Render(renderStats(stats, statsPanelWidth-2, 6))
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, panel)
	}
	sections = append(sections, body, statusBar)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderLoading shows the spinner while the board loads
func (m Model) renderLoading() string {
	msg := fmt.Sprintf("%s Loading %s...", m.spinner.View(), m.source)

	loadingBox := lipgloss.NewStyle().
		Width(80).
		Align(lipgloss.Center).
		Padding(2).
		Render(msg)

	return loadingStyle.Render(loadingBox)
}

// renderHeader renders the banner title, or the source when untitled.
func (m Model) renderHeader() string {
	if m.board.Title == "" {
		return titleStyle.Render(m.source) + "\n"
	}

	banner := RenderBanner(m.board.Title)
	if lipgloss.Width(banner) > m.width {
		return titleStyle.Render(m.board.Title) + "\n"
	}
	return bannerStyle.Render(banner) + "\n"
}

// renderStatusBar renders the bottom status bar with keybindings
func (m Model) renderStatusBar() string {
	help := []string{
		"q: quit",
		"r: reload",
		fmt.Sprintf("t: theme [%s]", GetCurrentThemeName()),
		fmt.Sprintf("m: content [%s]", m.mode),
		"↑↓: scroll",
	}

	return statusBarStyle.
		Width(m.width).
		Render(strings.Join(help, " | "))
}

func loadBoard(ctx context.Context, loader *BoardLoader, source string) tea.Cmd {
	return func() tea.Msg {
		board, err := loader.Load(ctx, source)
		if err != nil {
			return errMsg(err)
		}
		return boardMsg(board)
	}
}

// view runs the interactive viewer until the user quits.
func (a *App) view(ctx context.Context, board *Board, cfg *Config) error {
	m := NewModel(ctx, a.loader, cfg.Source, cfg.contentModeOverride())
	m.board = board
	m.loading = false
	if m.override != nil {
		m.mode = *m.override
	} else {
		m.mode, _ = grid.ParseContentMode(board.ContentMode)
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("viewer failed: %w", err)
	}
	return nil
}
