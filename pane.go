package kterm

// PaneKind distinguishes a leaf pane (backed by one session) from a
// split container (§3 pane tree).
type PaneKind int

const (
	PaneLeaf PaneKind = iota
	PaneSplitHorizontal
	PaneSplitVertical
)

// Pane is one node of the session multiplexer's binary pane tree. A
// leaf pane owns a session index; a split pane owns exactly two
// children and a fractional divider position.
type Pane struct {
	Kind PaneKind

	SessionIndex int // valid only when Kind == PaneLeaf

	Parent   *Pane
	First    *Pane
	Second   *Pane
	SplitFrac float64 // 0 < SplitFrac < 1, fraction of space given to First

	Left, Top, Cols, Rows int // last geometry assigned by layout
}

// Split replaces a leaf pane with a split container holding the
// original session in one child and newSession in the other (§4.8).
// It is a no-op on a non-leaf pane.
func (p *Pane) Split(horizontal bool, newSession int, newFirst bool) *Pane {
	if p.Kind != PaneLeaf {
		return nil
	}
	existing := &Pane{Kind: PaneLeaf, SessionIndex: p.SessionIndex, Parent: p}
	fresh := &Pane{Kind: PaneLeaf, SessionIndex: newSession, Parent: p}

	if horizontal {
		p.Kind = PaneSplitHorizontal
	} else {
		p.Kind = PaneSplitVertical
	}
	if newFirst {
		p.First, p.Second = fresh, existing
	} else {
		p.First, p.Second = existing, fresh
	}
	p.SplitFrac = 0.5
	return fresh
}

// Close collapses a leaf pane into its sibling, promoting the
// sibling's contents into the parent's place (§4.8). Closing the root
// leaf is a no-op — at least one pane always remains.
func (p *Pane) Close() *Pane {
	parent := p.Parent
	if parent == nil {
		return p
	}
	var sibling *Pane
	if parent.First == p {
		sibling = parent.Second
	} else {
		sibling = parent.First
	}
	grandparent := parent.Parent
	*parent = *sibling
	parent.Parent = grandparent
	reparentChildren(parent)
	return parent
}

func reparentChildren(p *Pane) {
	if p.Kind == PaneLeaf {
		return
	}
	if p.First != nil {
		p.First.Parent = p
	}
	if p.Second != nil {
		p.Second.Parent = p
	}
}

// Layout assigns Left/Top/Cols/Rows recursively from an origin and
// overall size, splitting proportionally to SplitFrac and rounding the
// first child down so the two children's columns/rows always sum to
// the parent's exactly (§4.8 "panes always tile the full terminal
// area with no gaps or overlaps").
func (p *Pane) Layout(left, top, cols, rows int) {
	p.Left, p.Top, p.Cols, p.Rows = left, top, cols, rows
	switch p.Kind {
	case PaneLeaf:
		return
	case PaneSplitHorizontal:
		firstRows := int(float64(rows) * p.SplitFrac)
		if firstRows < 1 {
			firstRows = 1
		}
		if firstRows > rows-1 {
			firstRows = rows - 1
		}
		p.First.Layout(left, top, cols, firstRows)
		p.Second.Layout(left, top+firstRows, cols, rows-firstRows)
	case PaneSplitVertical:
		firstCols := int(float64(cols) * p.SplitFrac)
		if firstCols < 1 {
			firstCols = 1
		}
		if firstCols > cols-1 {
			firstCols = cols - 1
		}
		p.First.Layout(left, top, firstCols, rows)
		p.Second.Layout(left+firstCols, top, cols-firstCols, rows)
	}
}

// Leaves appends every leaf pane reachable from p, in tree order.
func (p *Pane) Leaves(out []*Pane) []*Pane {
	if p.Kind == PaneLeaf {
		return append(out, p)
	}
	out = p.First.Leaves(out)
	out = p.Second.Leaves(out)
	return out
}

// FindSession returns the leaf pane showing session index i, or nil.
func (p *Pane) FindSession(i int) *Pane {
	if p.Kind == PaneLeaf {
		if p.SessionIndex == i {
			return p
		}
		return nil
	}
	if f := p.First.FindSession(i); f != nil {
		return f
	}
	return p.Second.FindSession(i)
}
