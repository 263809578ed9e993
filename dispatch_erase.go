package kterm

// dispatchEraseDisplay implements ED/DECSED (CSI Ps J / CSI ? Ps J):
// Ps=0 cursor-to-end, Ps=1 start-to-cursor, Ps=2 whole screen, Ps=3
// whole screen plus scrollback (xterm extension). DECSED additionally
// respects FlagProtected on cells (§4.2 "selective erase").
func (t *Terminal) dispatchEraseDisplay(s *Session) {
	ps := t.csiParamRaw(s, 0)
	respectProtected := s.Parse.CSIPrivate == '?'
	g := s.Active
	cols, rows := g.Cols, g.Rows

	fillRect := func(top, left, bottom, right int) {
		t.Ops.Enqueue(Op{
			Kind:             OpFillRect,
			Session:          s.Index,
			Rect:             Rect{Top: top, Left: left, Bottom: bottom, Right: right},
			Cell:             BlankCell,
			RespectProtected: respectProtected,
		})
	}

	switch ps {
	case 0:
		fillRect(s.Cursor.Y, s.Cursor.X, s.Cursor.Y, cols-1)
		if s.Cursor.Y+1 <= rows-1 {
			fillRect(s.Cursor.Y+1, 0, rows-1, cols-1)
		}
	case 1:
		fillRect(0, 0, s.Cursor.Y-1, cols-1)
		fillRect(s.Cursor.Y, 0, s.Cursor.Y, s.Cursor.X)
	case 2:
		fillRect(0, 0, rows-1, cols-1)
	case 3:
		fillRect(0, 0, rows-1, cols-1)
		g.ClearScrollback()
	}
}

// dispatchEraseLine implements EL/DECSEL (CSI Ps K / CSI ? Ps K).
func (t *Terminal) dispatchEraseLine(s *Session) {
	ps := t.csiParamRaw(s, 0)
	respectProtected := s.Parse.CSIPrivate == '?'
	cols := s.Cols()

	fillRow := func(left, right int) {
		t.Ops.Enqueue(Op{
			Kind:             OpFillRect,
			Session:          s.Index,
			Rect:             Rect{Top: s.Cursor.Y, Left: left, Bottom: s.Cursor.Y, Right: right},
			Cell:             BlankCell,
			RespectProtected: respectProtected,
		})
	}

	switch ps {
	case 0:
		fillRow(s.Cursor.X, cols-1)
	case 1:
		fillRow(0, s.Cursor.X)
	case 2:
		fillRow(0, cols-1)
	}
}

// dispatchInsertChars implements ICH (CSI Ps @): shift the remainder of
// the current row right by Ps, dropping characters that fall off the
// right margin.
func (t *Terminal) dispatchInsertChars(s *Session) {
	n := t.csiParam(s, 0, 1)
	margins := s.EffectiveMargins()
	right := margins.Right
	if n > right-s.Cursor.X+1 {
		n = right - s.Cursor.X + 1
	}
	if n <= 0 {
		return
	}
	t.Ops.Enqueue(Op{
		Kind:    OpCopyRect,
		Session: s.Index,
		SrcRect: Rect{Top: s.Cursor.Y, Left: s.Cursor.X, Bottom: s.Cursor.Y, Right: right - n},
		Rect:    Rect{Top: s.Cursor.Y, Left: s.Cursor.X + n, Bottom: s.Cursor.Y, Right: right},
	})
	t.Ops.Enqueue(Op{
		Kind:    OpFillRect,
		Session: s.Index,
		Rect:    Rect{Top: s.Cursor.Y, Left: s.Cursor.X, Bottom: s.Cursor.Y, Right: s.Cursor.X + n - 1},
		Cell:    BlankCell,
	})
}

// dispatchDeleteChars implements DCH (CSI Ps P): shift the remainder of
// the row left by Ps, blanking the vacated columns at the margin.
func (t *Terminal) dispatchDeleteChars(s *Session) {
	n := t.csiParam(s, 0, 1)
	margins := s.EffectiveMargins()
	right := margins.Right
	if n > right-s.Cursor.X+1 {
		n = right - s.Cursor.X + 1
	}
	if n <= 0 {
		return
	}
	t.Ops.Enqueue(Op{
		Kind:    OpCopyRect,
		Session: s.Index,
		SrcRect: Rect{Top: s.Cursor.Y, Left: s.Cursor.X + n, Bottom: s.Cursor.Y, Right: right},
		Rect:    Rect{Top: s.Cursor.Y, Left: s.Cursor.X, Bottom: s.Cursor.Y, Right: right - n},
	})
	t.Ops.Enqueue(Op{
		Kind:    OpFillRect,
		Session: s.Index,
		Rect:    Rect{Top: s.Cursor.Y, Left: right - n + 1, Bottom: s.Cursor.Y, Right: right},
		Cell:    BlankCell,
	})
}

// dispatchEraseChars implements ECH (CSI Ps X): blank Ps characters
// starting at the cursor without shifting anything.
func (t *Terminal) dispatchEraseChars(s *Session) {
	n := t.csiParam(s, 0, 1)
	right := s.Cols() - 1
	end := s.Cursor.X + n - 1
	if end > right {
		end = right
	}
	t.Ops.Enqueue(Op{
		Kind:    OpFillRect,
		Session: s.Index,
		Rect:    Rect{Top: s.Cursor.Y, Left: s.Cursor.X, Bottom: s.Cursor.Y, Right: end},
		Cell:    BlankCell,
	})
}
