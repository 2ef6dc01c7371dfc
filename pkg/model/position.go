package model

// Position is a place in the model tree: before the child at Offset of
// Parent. Offset may equal the child count, addressing the end of the
// parent.
type Position struct {
	Parent *Element
	Offset int
}

// NodeAfter returns the node immediately after the position, or nil at
// the end of the parent.
func (p Position) NodeAfter() Node {
	if p.Parent == nil || p.Offset >= len(p.Parent.children) {
		return nil
	}
	return p.Parent.children[p.Offset]
}

// Range is an ordered pair of positions within one parent, delimiting
// nodes produced by a conversion step.
type Range struct {
	Start Position
	End   Position
}

// IsCollapsed reports whether the range spans no nodes.
func (r Range) IsCollapsed() bool {
	return r.Start.Parent == r.End.Parent && r.Start.Offset == r.End.Offset
}

// FirstNode returns the first node inside the range, or nil when the
// range is collapsed.
func (r Range) FirstNode() Node {
	if r.IsCollapsed() {
		return nil
	}
	return r.Start.NodeAfter()
}
