package kterm

// dispatchCursorMotion handles the plain (no private-marker) cursor
// positioning finals: CUU/CUD/CUF/CUB/CNL/CPL/CHA/CUP/HVP/VPA/HPR/VPR/
// HPA (§4.2). DECOM (origin mode) makes CUP/HVP coordinates relative to
// the scrolling region rather than the whole screen.
func (t *Terminal) dispatchCursorMotion(s *Session, final byte) {
	n := t.csiParam(s, 0, 1)
	margins := s.EffectiveMargins()

	switch final {
	case 'A': // CUU
		s.Cursor.Y -= n
		if s.Cursor.Y < margins.Top {
			s.Cursor.Y = margins.Top
		}
	case 'B', 'e': // CUD / VPR
		s.Cursor.Y += n
		if s.Cursor.Y > margins.Bottom {
			s.Cursor.Y = margins.Bottom
		}
	case 'C', 'a': // CUF / HPR
		s.Cursor.X += n
		if s.Cursor.X > margins.Right {
			s.Cursor.X = margins.Right
		}
	case 'D': // CUB
		s.Cursor.X -= n
		if s.Cursor.X < margins.Left {
			s.Cursor.X = margins.Left
		}
	case 'E': // CNL
		t.carriageReturn(s)
		s.Cursor.Y += n
	case 'F': // CPL
		t.carriageReturn(s)
		s.Cursor.Y -= n
	case 'G', '`': // CHA / HPA
		s.Cursor.X = n - 1
	case 'd': // VPA
		s.Cursor.Y = n - 1
		if s.Modes.DECOM {
			s.Cursor.Y += margins.Top
		}
	case 'H', 'f': // CUP / HVP
		row := t.csiParam(s, 0, 1) - 1
		col := t.csiParam(s, 1, 1) - 1
		if s.Modes.DECOM {
			row += margins.Top
			col += margins.Left
		}
		s.Cursor.Y = row
		s.Cursor.X = col
	}
	s.Cursor.WrapPending = false
	s.ClampCursor()
}

// dispatchTabClear implements TBC (CSI Ps g): clear a single tab stop
// at the cursor (Ps=0, default) or all tab stops (Ps=3).
func (t *Terminal) dispatchTabClear(s *Session) {
	ps := t.csiParamRaw(s, 0)
	switch ps {
	case 3:
		for i := range s.TabStops {
			s.TabStops[i] = false
		}
	default:
		if s.Cursor.X >= 0 && s.Cursor.X < len(s.TabStops) {
			s.TabStops[s.Cursor.X] = false
		}
	}
}

// dispatchCursorStyle implements DECSCUSR (CSI Ps SP q).
func (t *Terminal) dispatchCursorStyle(s *Session) {
	style := t.csiParam(s, 0, 1)
	s.Cursor.Style = style
	s.Cursor.Blink = style%2 == 1
}
