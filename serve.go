package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"asciigrid/grid"
)

const (
	pageCacheSize   = 64
	shutdownTimeout = 5 * time.Second
)

// boardServer serves one board as an HTML page, one cached page per
// theme and content mode.
type boardServer struct {
	logger *slog.Logger
	pages  *PageBuilder
	board  *Board
	theme  Theme
	mode   *grid.ContentMode
	cache  *lru.Cache[string, []byte]
}

func newBoardServer(logger *slog.Logger, pages *PageBuilder, board *Board, theme Theme, mode *grid.ContentMode) (*boardServer, error) {
	cache, err := lru.New[string, []byte](pageCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create page cache: %w", err)
	}
	return &boardServer{
		logger: logger,
		pages:  pages,
		board:  board,
		theme:  theme,
		mode:   mode,
		cache:  cache,
	}, nil
}

func (s *boardServer) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.healthHandler)
	mux.HandleFunc("/", s.pageHandler)
	return mux
}

func (s *boardServer) healthHandler(w http.ResponseWriter, r *http.Request) {
	s.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

func (s *boardServer) pageHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	theme := s.theme
	if name := r.URL.Query().Get("theme"); name != "" {
		t, ok := LookupTheme(name)
		if !ok {
			http.Error(w, fmt.Sprintf("unknown theme %q", name), http.StatusBadRequest)
			return
		}
		theme = t
	}

	mode := s.mode
	if q := r.URL.Query().Get("mode"); q != "" {
		m, ok := grid.ParseContentMode(q)
		if !ok {
			http.Error(w, fmt.Sprintf("invalid mode %q", q), http.StatusBadRequest)
			return
		}
		mode = &m
	}

	page, err := s.page(theme, mode)
	if err != nil {
		s.logger.Error("Failed to render page.", "error", err)
		http.Error(w, "failed to render board", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

// page returns the cached page for theme and mode, building it on a miss.
func (s *boardServer) page(theme Theme, mode *grid.ContentMode) ([]byte, error) {
	key := cacheKey(theme.Name, mode)
	if page, ok := s.cache.Get(key); ok {
		s.logger.Debug("Page cache hit.", "key", key)
		return page, nil
	}

	var buf bytes.Buffer
	if err := s.pages.Write(&buf, s.board, PageOptions{Theme: theme, ContentMode: mode}); err != nil {
		return nil, err
	}
	page := buf.Bytes()
	s.cache.Add(key, page)
	s.logger.Debug("Page cached.", "key", key, "bytes", len(page))
	return page, nil
}

func cacheKey(theme string, mode *grid.ContentMode) string {
	if mode == nil {
		return theme + "|board"
	}
	return theme + "|" + mode.String()
}

// serve runs the HTTP server until ctx is done or the process is signalled.
func (a *App) serve(ctx context.Context, board *Board, cfg *Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := newBoardServer(a.logger, a.pages, board, CurrentTheme, cfg.contentModeOverride())
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Board server starting.", "address", cfg.Addr, "source", cfg.Source, "theme", CurrentTheme.Name)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("board server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	a.logger.Info("Shutting down board server...")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("board server shutdown failed: %w", err)
	}
	a.logger.Debug("Board server shut down gracefully.")
	return nil
}
