package grid

// Cell is one generated grid entry.
type Cell interface {
	SetClass(name string)
	// SetText sets the cell's content as literal text.
	SetText(text string)
	// SetMarkup sets the cell's content as markup. Hosts that cannot
	// interpret markup may degrade it to text.
	SetMarkup(markup string) error
}

// Container is a mount point that can be configured as a grid and receive
// cells. It mirrors the handful of DOM operations the renderer needs.
type Container interface {
	SetStyle(property, value string)
	CreateCell() Cell
	AppendChild(c Cell)
	// ClearChildren removes every existing child.
	ClearChildren()
}

// Document resolves mount points by identifier.
type Document interface {
	ElementByID(id string) (Container, bool)
}
