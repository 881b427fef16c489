package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	if err := run(os.Stdout, os.Stderr, os.Stdin, os.Args[1:]); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run parses args and executes the command; it never calls os.Exit.
func run(outW, errW io.Writer, stdin io.Reader, args []string) error {
	cfg, shouldExit, err := Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	return NewApp(outW, errW, stdin, cfg).Run(context.Background(), cfg)
}
