package kterm

// dispatchModeSet implements SM/RM (CSI Ps h / CSI Ps l) and their DEC
// private-mode counterparts (CSI ? Ps h / CSI ? Ps l), §4.2. Unknown
// mode numbers are reported at Info level and otherwise ignored — an
// unrecognized mode is not a parser error, just a capability gap.
func (t *Terminal) dispatchModeSet(s *Session, private byte, enable bool) {
	ps := &s.Parse
	for _, p := range ps.CSIParams {
		if private == '?' {
			t.setDECMode(s, p, enable)
		} else {
			t.setANSIMode(s, p, enable)
		}
	}
}

func (t *Terminal) setANSIMode(s *Session, mode int, enable bool) {
	switch mode {
	case 4: // IRM insert/replace — accepted but not tracked; writes always replace
	case 20: // LNM automatic newline
	default:
		t.reportError(LevelInfo, SourceParser, "unhandled ANSI mode")
	}
}

func (t *Terminal) setDECMode(s *Session, mode int, enable bool) {
	switch mode {
	case 1:
		s.Modes.DECCKM = enable
	case 3:
		t.setDECCOLM(s, enable)
	case 5:
		s.Modes.DECSCNM = enable
	case 6:
		s.Modes.DECOM = enable
		s.Cursor.X, s.Cursor.Y = 0, 0
		if enable {
			s.Cursor.Y = s.Region.Top
			s.Cursor.X = s.Region.Left
		}
	case 7:
		s.Modes.DECAWM = enable
	case 8:
		s.Modes.DECARM = enable
	case 9, 1000, 1002, 1003:
		if enable {
			s.Modes.MouseTracking = mode
		} else if s.Modes.MouseTracking == mode {
			s.Modes.MouseTracking = 0
		}
	case 12:
		s.Cursor.Blink = enable
	case 25:
		s.Modes.DECTCEM = enable
		s.Cursor.Visible = enable
	case 47:
		t.setAltScreen(s, enable, false)
	case 69:
		s.Modes.DECLRMM = enable
		if !enable {
			s.Region.Left, s.Region.Right = 0, s.Cols()-1
		}
	case 88:
		s.Modes.DECXRLM = enable
	case 95:
		s.Modes.DECNCSM = enable
	case 1047:
		t.setAltScreen(s, enable, true)
	case 1048:
		if enable {
			s.SaveCursor()
		} else {
			s.RestoreCursor()
		}
	case 1049:
		if enable {
			s.SaveCursor()
			t.setAltScreen(s, true, true)
		} else {
			t.setAltScreen(s, false, true)
			s.RestoreCursor()
		}
	case 2004:
		s.Modes.BracketedPaste = enable
	default:
		t.reportError(LevelInfo, SourceParser, "unhandled DEC private mode")
	}
}

// setDECCOLM implements mode 3: resize the grid to 132 columns (set) or
// 80 columns (reset), keeping rows fixed, and clear the grid unless
// DECNCSM (mode 95) suppresses the clear (§4.2).
func (t *Terminal) setDECCOLM(s *Session, enable bool) {
	s.Modes.DECCOLM = enable
	cols := 80
	if enable {
		cols = 132
	}
	t.Ops.Enqueue(Op{Kind: OpResizeGrid, Session: s.Index, Cols: cols, Rows: s.Active.Rows})
	if !s.Modes.DECNCSM {
		s.clearActiveScreen()
	}
	s.Cursor.X, s.Cursor.Y = 0, 0
}

// setAltScreen implements the alternate-screen mode family (47, 1047,
// 1049), all of which share the same primary<->alternate swap but
// differ in whether the screen clears on entry (§4.2).
func (t *Terminal) setAltScreen(s *Session, enable, clearOnEnter bool) {
	if enable {
		s.SwitchToAlternate(clearOnEnter)
	} else {
		s.SwitchToPrimary()
	}
}
