package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"asciigrid/grid"
)

// ExitError carries a specific process exit code.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// Commands understood by the CLI.
const (
	cmdRender  = "render"
	cmdPreview = "preview"
	cmdView    = "view"
	cmdServe   = "serve"
	cmdThemes  = "themes"
)

// Config is the parsed command line.
type Config struct {
	Command string
	Source  string

	Output string // render: output file, "" for stdout
	Addr   string // serve: listen address
	Width  int    // preview: columns, 0 detects the terminal width

	Theme       string
	ThemesDir   string
	ContentMode string // overrides the board when set

	LogLevel  string
	LogFormat string
}

const usageText = `
asciigrid - render ASCII layouts as grids of content cells.

Usage:
  asciigrid <command> [options] BOARD

Commands:
  render    Write the board as a standalone HTML page
  preview   Print the board as a terminal grid
  view      Browse the board interactively
  serve     Serve the rendered page over HTTP
  themes    List available themes

BOARD is a .yaml, .yml or .hcl file, "-" for YAML on stdin, or gist:<id>[/<file>].

Run 'asciigrid <command> -h' for command options.
`

// Parse processes command-line arguments. It returns the config, whether the
// program should exit cleanly (help was shown), or an *ExitError.
func Parse(args []string, output io.Writer) (*Config, bool, error) {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		fmt.Fprint(output, usageText)
		return nil, true, nil
	}

	cfg := &Config{Command: args[0]}
	switch cfg.Command {
	case cmdRender, cmdPreview, cmdView, cmdServe, cmdThemes:
	default:
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unknown command %q (run 'asciigrid help')", cfg.Command)}
	}

	flagSet := flag.NewFlagSet("asciigrid "+cfg.Command, flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprintf(output, "Usage:\n  asciigrid %s [options]", cfg.Command)
		if cfg.Command != cmdThemes {
			fmt.Fprint(output, " BOARD")
		}
		fmt.Fprint(output, "\n\nOptions:\n")
		flagSet.PrintDefaults()
	}

	flagSet.StringVar(&cfg.Theme, "theme", "", "Theme name (default: board theme, $ASCIIGRID_THEME, then Dracula).")
	flagSet.StringVar(&cfg.ThemesDir, "themes-dir", "", "Directory of extra YAML theme files.")
	flagSet.StringVar(&cfg.LogLevel, "log-level", "warn", "Logging level: 'debug', 'info', 'warn', 'error'.")
	flagSet.StringVar(&cfg.LogFormat, "log-format", "text", "Log output format: 'text' or 'json'.")

	switch cfg.Command {
	case cmdRender:
		flagSet.StringVar(&cfg.Output, "o", "", "Write the page to this file instead of stdout.")
		flagSet.StringVar(&cfg.ContentMode, "content-mode", "", "Override the board content mode: 'text' or 'markup'.")
	case cmdPreview:
		flagSet.IntVar(&cfg.Width, "width", 0, "Grid width in columns (default: terminal width).")
		flagSet.StringVar(&cfg.ContentMode, "content-mode", "", "Override the board content mode: 'text' or 'markup'.")
	case cmdView:
		flagSet.StringVar(&cfg.ContentMode, "content-mode", "", "Override the board content mode: 'text' or 'markup'.")
	case cmdServe:
		flagSet.StringVar(&cfg.Addr, "addr", ":8080", "Listen address.")
		flagSet.StringVar(&cfg.ContentMode, "content-mode", "", "Override the board content mode: 'text' or 'markup'.")
	}

	if err := flagSet.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	if cfg.Command != cmdThemes {
		if flagSet.NArg() != 1 {
			flagSet.Usage()
			return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("%s needs exactly one BOARD argument", cfg.Command)}
		}
		cfg.Source = flagSet.Arg(0)
	}

	if err := cfg.validate(); err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	return cfg, false, nil
}

func (c *Config) validate() error {
	c.LogFormat = strings.ToLower(c.LogFormat)
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return errors.New("invalid log-format: must be 'text' or 'json'")
	}

	c.LogLevel = strings.ToLower(c.LogLevel)
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return errors.New("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}

	if c.ContentMode != "" {
		if _, ok := grid.ParseContentMode(c.ContentMode); !ok {
			return fmt.Errorf("invalid content-mode %q: must be 'text' or 'markup'", c.ContentMode)
		}
	}
	if c.Width < 0 {
		return errors.New("invalid width: must not be negative")
	}
	return nil
}

// contentModeOverride returns the -content-mode flag as a grid mode, or nil.
func (c *Config) contentModeOverride() *grid.ContentMode {
	if c.ContentMode == "" {
		return nil
	}
	mode, _ := grid.ParseContentMode(c.ContentMode)
	return &mode
}
