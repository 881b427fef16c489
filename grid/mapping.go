package grid

// Mapping translates a layout symbol into the content shown in its cell.
// The renderer only reads from it.
type Mapping map[string]string

// Lookup returns the content for symbol, falling back to the symbol itself.
// The boolean reports whether the mapping had an entry.
func (m Mapping) Lookup(symbol string) (string, bool) {
	if content, ok := m[symbol]; ok {
		return content, true
	}
	return symbol, false
}

// ContentMode controls how cell content is inserted into the host.
type ContentMode int

const (
	// LiteralText inserts content as plain text. Markup in mapping values
	// is shown verbatim.
	LiteralText ContentMode = iota
	// TrustedMarkup inserts content as markup. The caller is responsible for
	// mapping values being well-formed and safe.
	TrustedMarkup
)

// String returns the config name for a content mode.
func (m ContentMode) String() string {
	switch m {
	case LiteralText:
		return "text"
	case TrustedMarkup:
		return "markup"
	default:
		return "unknown"
	}
}

// ParseContentMode accepts "text" or "markup". An empty string means text.
func ParseContentMode(s string) (ContentMode, bool) {
	switch s {
	case "", "text":
		return LiteralText, true
	case "markup":
		return TrustedMarkup, true
	default:
		return LiteralText, false
	}
}
