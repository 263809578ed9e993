package kterm

// flush drains every pending Op and applies it to the owning session's
// active grid (§4.3). Cell writes, fills, copies, attribute changes,
// scrolls and resizes from dispatch handlers go through the queue, so a
// whole dispatch cycle's edits land together from an embedder's point
// of view even when several CSI sequences arrive in the same Update
// call. A few whole-grid operations act directly at dispatch time
// instead: ED 3 clears scrollback, DECCOLM and alternate-screen entry
// clear the screen, a Gateway resize resizes the inactive grid, and RIS
// replaces the session.
func (t *Terminal) flush(s *Session) {
	for {
		op, ok := t.Ops.Dequeue()
		if !ok {
			return
		}
		target := t.Session(op.Session)
		if target == nil {
			continue
		}
		t.applyOp(target, op)
	}
}

func (t *Terminal) applyOp(s *Session, op Op) {
	g := s.Active
	switch op.Kind {
	case OpSetCell:
		c := g.At(op.Rect.Left, op.Rect.Top)
		if c == nil {
			return
		}
		*c = op.Cell
		g.MarkRowDirty(op.Rect.Top)

	case OpScrollRegion:
		t.applyScrollRegion(g, op)

	case OpCopyRect:
		t.applyCopyRect(g, op)

	case OpFillRect:
		t.applyFillRect(g, op)

	case OpSetAttrRect:
		t.applySetAttrRect(g, op)

	case OpInsertLines:
		t.applyInsertLines(s, g, op)

	case OpDeleteLines:
		t.applyDeleteLines(s, g, op)

	case OpResizeGrid:
		g.Resize(op.Cols, op.Rows)
		s.ClampCursor()
	}
}

// applyScrollRegion moves rows [Rect.Top, Rect.Bottom] x [Rect.Left,
// Rect.Right] by DY rows (positive = scroll up / content moves toward
// row 0). When the region spans the whole grid it takes the zero-copy
// AdvanceHead path (§4.3); otherwise it falls back to an explicit
// row-range copy plus fill of the rows vacated at the trailing edge.
func (t *Terminal) applyScrollRegion(g *Grid, op Op) {
	r := op.Rect
	dy := op.DY
	if dy == 0 {
		return
	}
	region := ScrollRegion{Top: r.Top, Bottom: r.Bottom, Left: r.Left, Right: r.Right}
	if dy > 0 && region.FullScreen(g) {
		g.AdvanceHead(dy)
		return
	}
	height := r.Bottom - r.Top + 1
	if dy > height {
		dy = height
	}
	if dy < -height {
		dy = -height
	}
	if dy > 0 {
		g.MoveRowsRange(r.Top+dy, r.Top, height-dy, r.Left, r.Right)
		for y := r.Bottom - dy + 1; y <= r.Bottom; y++ {
			g.FillRow(y, r.Left, r.Right, op.Cell)
		}
	} else {
		n := -dy
		g.MoveRowsRange(r.Top, r.Top+n, height-n, r.Left, r.Right)
		for y := r.Top; y < r.Top+n; y++ {
			g.FillRow(y, r.Left, r.Right, op.Cell)
		}
	}
}

func (t *Terminal) applyCopyRect(g *Grid, op Op) {
	src := op.SrcRect
	dst := op.Rect
	rows := src.Bottom - src.Top + 1
	cols := src.Right - src.Left + 1
	down := dst.Top > src.Top
	right := dst.Left > src.Left
	for i := 0; i < rows; i++ {
		yi := i
		if down {
			yi = rows - 1 - i
		}
		srcY := src.Top + yi
		dstY := dst.Top + yi
		for x := 0; x < cols; x++ {
			xi := x
			if right {
				xi = cols - 1 - x
			}
			sc := g.At(src.Left+xi, srcY)
			dc := g.At(dst.Left+xi, dstY)
			if sc == nil || dc == nil {
				continue
			}
			*dc = *sc
		}
		g.MarkRowDirty(dstY)
	}
}

func (t *Terminal) applyFillRect(g *Grid, op Op) {
	r := op.Rect
	for y := r.Top; y <= r.Bottom; y++ {
		for x := r.Left; x <= r.Right; x++ {
			c := g.At(x, y)
			if c == nil {
				continue
			}
			if op.RespectProtected && c.HasFlag(FlagProtected) {
				continue
			}
			*c = op.Cell
		}
		g.MarkRowDirty(y)
	}
}

// applySetAttrRect implements DECCARA (AttrApply) / DECRARA (AttrToggle):
// Apply ORs the requested attribute bits in (and assigns colors when
// SetForeground/SetBackground are set); Toggle XORs the attribute bits
// and leaves colors untouched, matching the two sequences' documented
// semantics.
func (t *Terminal) applySetAttrRect(g *Grid, op Op) {
	r := op.Rect
	for y := r.Top; y <= r.Bottom; y++ {
		for x := r.Left; x <= r.Right; x++ {
			c := g.At(x, y)
			if c == nil {
				continue
			}
			if op.RespectProtected && c.HasFlag(FlagProtected) {
				continue
			}
			switch op.AttrMode {
			case AttrApply:
				c.Flags |= op.Attr
				if op.SetForeground {
					c.Foreground = op.Foreground
				}
				if op.SetBackground {
					c.Background = op.Background
				}
			case AttrToggle:
				c.Flags ^= op.Attr
			}
		}
		g.MarkRowDirty(y)
	}
}

func (t *Terminal) applyInsertLines(s *Session, g *Grid, op Op) {
	r := op.Rect
	count := op.DY
	if count <= 0 {
		return
	}
	height := r.Bottom - r.Top + 1
	if count > height {
		count = height
	}
	g.MoveRowsRange(r.Top, r.Top+count, height-count, r.Left, r.Right)
	for y := r.Top; y < r.Top+count; y++ {
		g.FillRow(y, r.Left, r.Right, op.Cell)
	}
}

func (t *Terminal) applyDeleteLines(s *Session, g *Grid, op Op) {
	r := op.Rect
	count := op.DY
	if count <= 0 {
		return
	}
	height := r.Bottom - r.Top + 1
	if count > height {
		count = height
	}
	g.MoveRowsRange(r.Top+count, r.Top, height-count, r.Left, r.Right)
	for y := r.Bottom - count + 1; y <= r.Bottom; y++ {
		g.FillRow(y, r.Left, r.Right, op.Cell)
	}
}
