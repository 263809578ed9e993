package kterm

// dispatchEscapeFinal handles escape sequences with intermediate bytes
// collected in StateEscapeIntermediate: charset designation (ESC ( /
// ESC ) / ESC * / ESC +) and DECALN (ESC # 8). Charset designation is
// accepted and silently dropped — this engine always renders UTF-8 and
// never switches G0/G1 glyph sets.
func (t *Terminal) dispatchEscapeFinal(s *Session, final byte, intermediates []byte) {
	if len(intermediates) == 0 {
		return
	}
	switch intermediates[0] {
	case '#':
		if final == '8' {
			t.decAlignmentTest(s)
		}
	case '(', ')', '*', '+':
		// charset designation: accepted, no-op (UTF-8 only).
	}
}

// decAlignmentTest implements DECALN: fill the whole screen with 'E'
// and reset margins/cursor, used by terminal test suites.
func (t *Terminal) decAlignmentTest(s *Session) {
	g := s.Active
	fill := Cell{Char: 'E', Foreground: DefaultColor(), Background: DefaultColor()}
	t.Ops.Enqueue(Op{
		Kind:    OpFillRect,
		Session: s.Index,
		Rect:    Rect{Top: 0, Left: 0, Bottom: g.Rows - 1, Right: g.Cols - 1},
		Cell:    fill,
	})
	s.Region = ScrollRegion{Top: 0, Bottom: g.Rows - 1, Left: 0, Right: g.Cols - 1}
	s.Cursor.X, s.Cursor.Y = 0, 0
}

// dispatchCSI is the final-byte dispatch table for CSI sequences (§4.1,
// §4.2). Private-marker prefixes ('?', '>', '<', '=') select the DEC
// private-mode family of a given final byte; everything else follows
// ECMA-48/xterm numbering.
func (t *Terminal) dispatchCSI(s *Session, final byte) {
	ps := &s.Parse
	private := ps.CSIPrivate

	switch final {
	case 'm':
		t.dispatchSGR(s)
		return
	case 'h':
		t.dispatchModeSet(s, private, true)
		return
	case 'l':
		t.dispatchModeSet(s, private, false)
		return
	}

	if private == '?' {
		t.dispatchCSIPrivate(s, final)
		return
	}
	if private != 0 {
		// '>', '<', '=' private CSI (e.g. DA2/DA3 style queries) — handled
		// in dispatch_report.go where relevant, otherwise ignored.
		t.dispatchCSIAngle(s, private, final)
		return
	}

	// '$', ' ', '"' and '*' intermediates retarget an otherwise-plain
	// final byte to the DEC rectangular-operation / cursor-style / DECSCA
	// / DECRQCRA family; check that before the plain-ECMA-48 table below.
	if len(ps.CSIIntermediates) > 0 {
		switch ps.CSIIntermediates[0] {
		case '$', ' ', '"', '*':
			t.dispatchRectOrReport(s, final)
			return
		}
	}

	switch final {
	case 'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'f', 'd', 'e', 'a', '`':
		t.dispatchCursorMotion(s, final)
	case 'J':
		t.dispatchEraseDisplay(s)
	case 'K':
		t.dispatchEraseLine(s)
	case 'L':
		t.dispatchInsertLines(s)
	case 'M':
		t.dispatchDeleteLines(s)
	case 'P':
		t.dispatchDeleteChars(s)
	case '@':
		t.dispatchInsertChars(s)
	case 'X':
		t.dispatchEraseChars(s)
	case 'S':
		t.dispatchScrollUp(s)
	case 'T':
		t.dispatchScrollDown(s)
	case 'r':
		t.dispatchSetTopBottomMargins(s)
	case 's':
		t.dispatchSetLeftRightMarginsOrSave(s)
	case 'u':
		s.RestoreCursor()
	case 'g':
		t.dispatchTabClear(s)
	case 'n':
		t.dispatchDSR(s)
	case 'c':
		t.dispatchDA1(s)
	case 't':
		t.dispatchWindowOp(s)
	default:
		t.reportError(LevelInfo, SourceParser, "unhandled CSI final byte")
	}
}

func (t *Terminal) dispatchCSIPrivate(s *Session, final byte) {
	switch final {
	case 'J':
		t.dispatchEraseDisplay(s) // DECSED shares the same op semantics here
	case 'K':
		t.dispatchEraseLine(s)
	default:
		t.reportError(LevelInfo, SourceParser, "unhandled private CSI final byte")
	}
}

func (t *Terminal) dispatchCSIAngle(s *Session, private byte, final byte) {
	switch {
	case private == '>' && final == 'c':
		t.dispatchDA2(s)
	default:
		t.reportError(LevelInfo, SourceParser, "unhandled angle-private CSI")
	}
}

// dispatchRectOrReport handles the '$'-intermediate DEC rectangular
// operations plus DECSCUSR (' q'), DECSCA ('" q') and DECRQCRA ('* y'),
// which in this parser arrive as ordinary CSI finals because
// intermediates are tracked separately from the final byte (the
// rectangular operations are '$t'/'$r'/'$u'/'$v'/'$x'/'$z'/'${' style:
// the intermediate is '$' and the final is the letter below).
func (t *Terminal) dispatchRectOrReport(s *Session, final byte) {
	ps := &s.Parse
	if len(ps.CSIIntermediates) == 0 {
		return
	}
	switch ps.CSIIntermediates[0] {
	case '$':
		t.dispatchDECRect(s, final)
	case ' ':
		// DECSCUSR and friends (space intermediate) — cursor style only.
		if final == 'q' {
			t.dispatchCursorStyle(s)
		}
	case '"':
		if final == 'q' {
			t.dispatchDECSCA(s)
		}
	case '*':
		if final == 'y' {
			t.dispatchDECRQCRA(s)
		}
	}
}
