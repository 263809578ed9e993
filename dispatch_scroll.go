package kterm

// dispatchScrollUp implements SU (CSI Ps S): scroll the scrolling
// region up by Ps without moving the cursor.
func (t *Terminal) dispatchScrollUp(s *Session) {
	n := t.csiParam(s, 0, 1)
	t.scrollUp(s, s.EffectiveMargins(), n)
}

// dispatchScrollDown implements SD (CSI Ps T).
func (t *Terminal) dispatchScrollDown(s *Session) {
	n := t.csiParam(s, 0, 1)
	t.scrollDown(s, s.EffectiveMargins(), n)
}

// dispatchInsertLines implements IL (CSI Ps L): insert Ps blank lines
// at the cursor row, pushing the rest of the region down, only when the
// cursor is within the scrolling region (§4.2).
func (t *Terminal) dispatchInsertLines(s *Session) {
	margins := s.EffectiveMargins()
	if s.Cursor.Y < margins.Top || s.Cursor.Y > margins.Bottom {
		return
	}
	n := t.csiParam(s, 0, 1)
	t.Ops.Enqueue(Op{
		Kind:    OpInsertLines,
		Session: s.Index,
		Rect:    Rect{Top: s.Cursor.Y, Left: margins.Left, Bottom: margins.Bottom, Right: margins.Right},
		DY:      n,
		Cell:    BlankCell,
	})
}

// dispatchDeleteLines implements DL (CSI Ps M).
func (t *Terminal) dispatchDeleteLines(s *Session) {
	margins := s.EffectiveMargins()
	if s.Cursor.Y < margins.Top || s.Cursor.Y > margins.Bottom {
		return
	}
	n := t.csiParam(s, 0, 1)
	t.Ops.Enqueue(Op{
		Kind:    OpDeleteLines,
		Session: s.Index,
		Rect:    Rect{Top: s.Cursor.Y, Left: margins.Left, Bottom: margins.Bottom, Right: margins.Right},
		DY:      n,
		Cell:    BlankCell,
	})
}

// dispatchSetTopBottomMargins implements DECSTBM (CSI Pt;Pb r).
func (t *Terminal) dispatchSetTopBottomMargins(s *Session) {
	rows := s.Rows()
	top := t.csiParam(s, 0, 1) - 1
	bottom := t.csiParam(s, 1, rows) - 1
	if top < 0 {
		top = 0
	}
	if bottom > rows-1 {
		bottom = rows - 1
	}
	if top >= bottom {
		top, bottom = 0, rows-1
	}
	s.Region.Top, s.Region.Bottom = top, bottom
	s.Cursor.X, s.Cursor.Y = 0, 0
	if s.Modes.DECOM {
		s.Cursor.Y = top
	}
}

// dispatchSetLeftRightMarginsOrSave implements DECSLRM (CSI Pl;Pr s)
// when DECLRMM is enabled, else falls back to ANSI.SYS-style cursor
// save (the two share a final byte and are disambiguated by mode).
func (t *Terminal) dispatchSetLeftRightMarginsOrSave(s *Session) {
	if !s.Modes.DECLRMM {
		s.SaveCursor()
		return
	}
	cols := s.Cols()
	left := t.csiParam(s, 0, 1) - 1
	right := t.csiParam(s, 1, cols) - 1
	if left < 0 {
		left = 0
	}
	if right > cols-1 {
		right = cols - 1
	}
	if left >= right {
		left, right = 0, cols-1
	}
	s.Region.Left, s.Region.Right = left, right
	s.Cursor.X, s.Cursor.Y = 0, 0
	if s.Modes.DECOM {
		s.Cursor.X = left
	}
}
