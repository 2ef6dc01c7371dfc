package model

// Writer applies mutations to the model tree. Converters receive a
// Writer from the conversion engine rather than mutating nodes directly.
type Writer struct{}

// NewWriter creates a writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Insert inserts the node at the position and returns the range covering
// it. The caller's position is not advanced; use the returned range's End.
func (w *Writer) Insert(n Node, pos Position) Range {
	parent := pos.Parent
	offset := pos.Offset
	if offset > len(parent.children) {
		offset = len(parent.children)
	}
	parent.children = append(parent.children, nil)
	copy(parent.children[offset+1:], parent.children[offset:])
	parent.children[offset] = n
	return Range{
		Start: Position{Parent: parent, Offset: offset},
		End:   Position{Parent: parent, Offset: offset + 1},
	}
}

// Append inserts the node at the end of the parent.
func (w *Writer) Append(n Node, parent *Element) Range {
	return w.Insert(n, Position{Parent: parent, Offset: len(parent.children)})
}

// SetAttribute sets the attribute on the element.
func (w *Writer) SetAttribute(key string, value Value, e *Element) {
	e.setAttribute(key, value)
}

// RemoveAttribute removes the attribute if present.
func (w *Writer) RemoveAttribute(key string, e *Element) {
	e.removeAttribute(key)
}
