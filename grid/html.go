package grid

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTMLDocument is a Document backed by an x/net/html node tree.
type HTMLDocument struct {
	root *html.Node
}

// NewHTMLDocument wraps an existing node tree.
func NewHTMLDocument(root *html.Node) *HTMLDocument {
	return &HTMLDocument{root: root}
}

// ParseHTMLDocument parses a full HTML document.
func ParseHTMLDocument(r io.Reader) (*HTMLDocument, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return &HTMLDocument{root: root}, nil
}

// Root returns the underlying node tree.
func (d *HTMLDocument) Root() *html.Node {
	return d.root
}

// ElementByID returns the first element whose id attribute equals id.
func (d *HTMLDocument) ElementByID(id string) (Container, bool) {
	n := findByID(d.root, id)
	if n == nil {
		return nil, false
	}
	return NewHTMLContainer(n), true
}

// Render writes the document as HTML.
func (d *HTMLDocument) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

func findByID(n *html.Node, id string) *html.Node {
	if n == nil {
		return nil
	}
	if n.Type == html.ElementNode && attr(n, "id") == id {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

// HTMLContainer adapts an element node to Container. Style properties are
// kept in the element's style attribute.
type HTMLContainer struct {
	node *html.Node
}

// NewHTMLContainer wraps an element node.
func NewHTMLContainer(n *html.Node) *HTMLContainer {
	return &HTMLContainer{node: n}
}

// Node returns the wrapped element.
func (c *HTMLContainer) Node() *html.Node {
	return c.node
}

// SetStyle sets one inline style property, replacing any previous value.
func (c *HTMLContainer) SetStyle(property, value string) {
	decls := parseStyle(attr(c.node, "style"))
	replaced := false
	for i := range decls {
		if decls[i][0] == property {
			decls[i][1] = value
			replaced = true
		}
	}
	if !replaced {
		decls = append(decls, [2]string{property, value})
	}
	setAttr(c.node, "style", formatStyle(decls))
}

// Style returns the value of an inline style property.
func (c *HTMLContainer) Style(property string) string {
	for _, d := range parseStyle(attr(c.node, "style")) {
		if d[0] == property {
			return d[1]
		}
	}
	return ""
}

// CreateCell returns a detached div element.
func (c *HTMLContainer) CreateCell() Cell {
	return &HTMLCell{node: &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Div,
		Data:     "div",
	}}
}

// AppendChild appends a cell created by CreateCell.
func (c *HTMLContainer) AppendChild(cell Cell) {
	hc, ok := cell.(*HTMLCell)
	if !ok {
		return
	}
	c.node.AppendChild(hc.node)
}

// ClearChildren removes every child node.
func (c *HTMLContainer) ClearChildren() {
	for c.node.FirstChild != nil {
		c.node.RemoveChild(c.node.FirstChild)
	}
}

// Children returns the element children in document order.
func (c *HTMLContainer) Children() []*html.Node {
	var children []*html.Node
	for n := c.node.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == html.ElementNode {
			children = append(children, n)
		}
	}
	return children
}

// HTMLCell is a div element produced by HTMLContainer.
type HTMLCell struct {
	node *html.Node
}

func (c *HTMLCell) SetClass(name string) {
	setAttr(c.node, "class", name)
}

func (c *HTMLCell) SetText(text string) {
	c.clear()
	c.node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// SetMarkup parses markup as a fragment in a div context and adopts the
// resulting nodes.
func (c *HTMLCell) SetMarkup(markup string) error {
	nodes, err := html.ParseFragment(strings.NewReader(markup), &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Div,
		Data:     "div",
	})
	if err != nil {
		return fmt.Errorf("failed to parse cell markup: %w", err)
	}
	c.clear()
	for _, n := range nodes {
		c.node.AppendChild(n)
	}
	return nil
}

func (c *HTMLCell) clear() {
	for c.node.FirstChild != nil {
		c.node.RemoveChild(c.node.FirstChild)
	}
}

// InnerHTML serialises the children of n.
func InnerHTML(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&b, c)
	}
	return b.String()
}

// TextContent concatenates the text nodes under n.
func TextContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// parseStyle splits "a: b; c: d" into ordered declarations. Semicolons
// inside quotes or parentheses, as in url(data:...;base64,...), belong to
// the value.
func parseStyle(style string) [][2]string {
	var decls [][2]string
	for _, part := range splitDeclarations(style) {
		prop, val, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		prop = strings.TrimSpace(prop)
		if prop == "" {
			continue
		}
		decls = append(decls, [2]string{prop, strings.TrimSpace(val)})
	}
	return decls
}

func splitDeclarations(style string) []string {
	var (
		parts []string
		depth int
		quote rune
		start int
	)
	for i, r := range style {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '(':
			depth++
		case r == ')' && depth > 0:
			depth--
		case r == ';' && depth == 0:
			parts = append(parts, style[start:i])
			start = i + 1
		}
	}
	return append(parts, style[start:])
}

func formatStyle(decls [][2]string) string {
	parts := make([]string, len(decls))
	for i, d := range decls {
		parts[i] = d[0] + ": " + d[1]
	}
	return strings.Join(parts, "; ")
}
