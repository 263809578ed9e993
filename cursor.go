package kterm

// writeRune places r at the cursor position honoring DECAWM wrap and
// combining-mark attachment (§4.2), then advances the cursor. Combining
// marks never consume their own column: invariant 4 in §8.
func (t *Terminal) writeRune(s *Session, r rune) {
	if IsCombiningMark(r) && s.Cursor.X > 0 {
		prevX := s.Cursor.X - 1
		if s.Cursor.WrapPending {
			prevX = s.Cols() - 1
		}
		if c := s.Active.At(prevX, s.Cursor.Y); c != nil {
			c.AppendCombining(r)
			s.Active.MarkRowDirty(s.Cursor.Y)
		}
		return
	}

	cell := Cell{
		Char:              r,
		Flags:             s.Attrs.Flags,
		Foreground:        s.Attrs.Foreground,
		Background:        s.Attrs.Background,
		UnderlineColor:    s.Attrs.UnderlineColor,
		HasUnderlineColor: s.Attrs.HasUnderlineColor,
	}
	width := cell.Width()

	if s.Cursor.WrapPending {
		t.wrapCursor(s)
	}

	margins := s.EffectiveMargins()
	if s.Cursor.X+width-1 > margins.Right {
		t.wrapCursor(s)
	}

	t.enqueueSetCell(s, s.Cursor.X, s.Cursor.Y, cell)
	if width == 2 {
		t.enqueueSetCell(s, s.Cursor.X+1, s.Cursor.Y, Cell{Char: 0, Flags: FlagWrapContinuation, Foreground: s.Attrs.Foreground, Background: s.Attrs.Background})
	}

	s.Cursor.X += width
	if s.Cursor.X > margins.Right {
		if s.Modes.DECAWM {
			s.Cursor.X = margins.Right
			s.Cursor.WrapPending = true
		} else {
			s.Cursor.X = margins.Right
		}
	}
}

func (t *Terminal) enqueueSetCell(s *Session, x, y int, c Cell) {
	if x < 0 || x >= s.Cols() || y < 0 || y >= s.Rows() {
		return
	}
	ok := t.Ops.Enqueue(Op{
		Kind:    OpSetCell,
		Session: s.Index,
		Rect:    Rect{Top: y, Left: x, Bottom: y, Right: x},
		Cell:    c,
	})
	if !ok {
		t.reportError(LevelWarning, SourceParser, "op queue full: dropped cell write")
	}
}

// wrapCursor moves the cursor to the start of the next row, scrolling
// the active region if already on its bottom row (§4.2 autowrap).
func (t *Terminal) wrapCursor(s *Session) {
	s.Cursor.WrapPending = false
	margins := s.EffectiveMargins()
	s.Cursor.X = margins.Left
	if s.Cursor.Y == margins.Bottom {
		t.scrollUp(s, margins, 1)
	} else {
		s.Cursor.Y++
	}
}

// scrollUp moves n rows of content out the top of region, enqueuing a
// ScrollRegion op that flush() applies as a zero-copy head bump when
// region spans the whole grid (§4.3).
func (t *Terminal) scrollUp(s *Session, region ScrollRegion, n int) {
	t.Ops.Enqueue(Op{
		Kind:    OpScrollRegion,
		Session: s.Index,
		Rect:    Rect{Top: region.Top, Left: region.Left, Bottom: region.Bottom, Right: region.Right},
		DY:      n,
		Cell:    BlankCell,
	})
}

// scrollDown moves n rows of content out the bottom of region.
func (t *Terminal) scrollDown(s *Session, region ScrollRegion, n int) {
	t.Ops.Enqueue(Op{
		Kind:    OpScrollRegion,
		Session: s.Index,
		Rect:    Rect{Top: region.Top, Left: region.Left, Bottom: region.Bottom, Right: region.Right},
		DY:      -n,
		Cell:    BlankCell,
	})
}

func (t *Terminal) handleBEL(s *Session) {
	t.emitResponse(s, nil) // BEL has no response payload; hook kept for embedders that want to observe it
}

func (t *Terminal) cursorBackspace(s *Session) {
	margins := s.EffectiveMargins()
	if s.Cursor.X > margins.Left {
		s.Cursor.X--
	}
	s.Cursor.WrapPending = false
}

func (t *Terminal) cursorTab(s *Session) {
	cols := s.Cols()
	x := s.Cursor.X + 1
	for x < cols && !s.TabStops[x] {
		x++
	}
	if x >= cols {
		x = cols - 1
	}
	s.Cursor.X = x
}

// lineFeed implements LF/VT/FF: move down one row, scrolling at the
// bottom margin (§4.2). DECOM/origin mode does not affect LF.
func (t *Terminal) lineFeed(s *Session) {
	margins := s.EffectiveMargins()
	s.Cursor.WrapPending = false
	if s.Cursor.Y == margins.Bottom {
		t.scrollUp(s, margins, 1)
	} else if s.Cursor.Y < s.Rows()-1 {
		s.Cursor.Y++
	}
}

func (t *Terminal) carriageReturn(s *Session) {
	margins := s.EffectiveMargins()
	s.Cursor.X = margins.Left
	s.Cursor.WrapPending = false
}

// index implements ESC D (IND): same as lineFeed.
func (t *Terminal) index(s *Session) {
	t.lineFeed(s)
}

// reverseIndex implements ESC M (RI): move up one row, scrolling down
// at the top margin.
func (t *Terminal) reverseIndex(s *Session) {
	margins := s.EffectiveMargins()
	s.Cursor.WrapPending = false
	if s.Cursor.Y == margins.Top {
		t.scrollDown(s, margins, 1)
	} else if s.Cursor.Y > 0 {
		s.Cursor.Y--
	}
}

// nextLine implements ESC E (NEL): CR followed by IND.
func (t *Terminal) nextLine(s *Session) {
	t.carriageReturn(s)
	t.index(s)
}

// setTabStop implements ESC H (HTS): set a tab stop at the cursor column.
func (t *Terminal) setTabStop(s *Session) {
	if s.Cursor.X >= 0 && s.Cursor.X < len(s.TabStops) {
		s.TabStops[s.Cursor.X] = true
	}
}

// hardReset implements RIS (ESC c): reinitialize the session to its
// power-on state, matching NewSession's defaults but preserving the
// session's index and scrollback capacity (§4.2).
func (t *Terminal) hardReset(s *Session) {
	cols, rows, scrollback := s.Active.Cols, s.Active.Rows, s.Active.ScrollbackCapacity
	idx := s.Index
	*s = *NewSession(idx, cols, rows, scrollback)
}
