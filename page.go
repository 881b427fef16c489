package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"asciigrid/grid"
)

// PageBuilder renders boards as standalone HTML documents.
type PageBuilder struct {
	logger *slog.Logger
}

// NewPageBuilder creates a page builder.
func NewPageBuilder(logger *slog.Logger) *PageBuilder {
	return &PageBuilder{logger: logger}
}

// PageOptions tweaks a single page build.
type PageOptions struct {
	MountID     string // generated when empty
	Theme       Theme
	ContentMode *grid.ContentMode // overrides the board's mode when set
}

// Build assembles the page skeleton and renders the board into its mount
// point by id.
func (p *PageBuilder) Build(board *Board, opts PageOptions) (*grid.HTMLDocument, error) {
	gridOpts, err := board.Options()
	if err != nil {
		return nil, err
	}
	if opts.ContentMode != nil {
		gridOpts.ContentMode = *opts.ContentMode
	}

	mountID := opts.MountID
	if mountID == "" {
		mountID = newMountID()
	}

	title := board.Title
	if title == "" {
		title = "asciigrid"
	}

	doc := grid.NewHTMLDocument(newPageSkeleton(title, Stylesheet(opts.Theme), mountID, board.MaxWidth))

	renderer := grid.NewRenderer(gridOpts)
	if err := renderer.RenderByID(doc, mountID, board.Layout, board.GridMapping()); err != nil {
		return nil, fmt.Errorf("failed to render board: %w", err)
	}

	l := grid.ParseLayout(board.Layout)
	p.logger.Debug("Rendered page.", "mount", mountID, "rows", l.Rows(), "columns", l.Columns(),
		"theme", opts.Theme.Name, "content_mode", gridOpts.ContentMode.String())
	return doc, nil
}

// Write builds the page and writes it to w with a doctype.
func (p *PageBuilder) Write(w io.Writer, board *Board, opts PageOptions) error {
	doc, err := p.Build(board, opts)
	if err != nil {
		return err
	}
	if err := doc.Render(w); err != nil {
		return fmt.Errorf("failed to write page: %w", err)
	}
	_, err = io.WriteString(w, "\n")
	return err
}

// newMountID returns "matrix-" followed by 16 random hex digits.
func newMountID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "matrix-grid"
	}
	return "matrix-" + hex.EncodeToString(b[:])
}

// newPageSkeleton builds
//
//	<!DOCTYPE html><html><head>…</head><body><div id=… class="matrix-layout"></div></body></html>
func newPageSkeleton(title, css, mountID, maxWidth string) *html.Node {
	root := &html.Node{Type: html.DocumentNode}
	root.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	htmlEl := element(atom.Html)
	root.AppendChild(htmlEl)

	head := element(atom.Head)
	htmlEl.AppendChild(head)

	meta := element(atom.Meta)
	meta.Attr = []html.Attribute{{Key: "charset", Val: "utf-8"}}
	head.AppendChild(meta)

	titleEl := element(atom.Title)
	titleEl.AppendChild(&html.Node{Type: html.TextNode, Data: title})
	head.AppendChild(titleEl)

	style := element(atom.Style)
	style.AppendChild(&html.Node{Type: html.TextNode, Data: css})
	head.AppendChild(style)

	body := element(atom.Body)
	htmlEl.AppendChild(body)

	mount := element(atom.Div)
	mount.Attr = []html.Attribute{
		{Key: "id", Val: mountID},
		{Key: "class", Val: "matrix-layout"},
	}
	if maxWidth != "" {
		mount.Attr = append(mount.Attr, html.Attribute{
			Key: "style",
			Val: "max-width: " + maxWidth + "; margin: 0 auto; box-sizing: border-box",
		})
	}
	body.AppendChild(mount)

	return root
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}
