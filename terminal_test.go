package kterm

import "testing"

func feed(t *Terminal, s string) {
	t.WriteString(s)
	t.Update()
}

func newTestTerminal(cols, rows int) *Terminal {
	return NewTerminal(Options{Width: cols, Height: rows})
}

func TestAttributeInheritance(t *testing.T) {
	term := newTestTerminal(10, 5)
	feed(term, "\x1b[0m\x1b[1m\x1b[3m\x1b[22mA")

	s := term.GetSession()
	cell := s.Active.At(0, 0)
	if cell == nil || cell.Char != 'A' {
		t.Fatalf("expected cell (0,0) to hold 'A', got %+v", cell)
	}
	if cell.Flags&FlagItalic == 0 {
		t.Errorf("expected ITALIC set")
	}
	if cell.Flags&FlagBold != 0 {
		t.Errorf("expected BOLD clear after SGR 22")
	}
}

func TestDSRCursorPosition(t *testing.T) {
	term := newTestTerminal(10, 10)
	var got []byte
	term.opts.ResponseCallback = func(t *Terminal, session int, data []byte) {
		got = append(got, data...)
	}
	s := term.GetSession()
	s.Cursor.X, s.Cursor.Y = 4, 4
	feed(term, "\x1b[6n")

	want := "\x1b[5;5R"
	if string(got) != want {
		t.Fatalf("DSR reply = %q, want %q", got, want)
	}
}

func TestDECRQSSSGR(t *testing.T) {
	term := newTestTerminal(10, 10)
	var got []byte
	term.opts.ResponseCallback = func(t *Terminal, session int, data []byte) {
		got = append(got, data...)
	}
	s := term.GetSession()
	s.Attrs.Flags |= FlagBold
	s.Attrs.Foreground = Indexed16(1)
	feed(term, "\x1bP$qm\x1b\\")

	want := "\x1bP1$r0;1;31m\x1b\\"
	if string(got) != want {
		t.Fatalf("DECRQSS reply = %q, want %q", got, want)
	}
}

func TestGatewayResizeClamp(t *testing.T) {
	term := newTestTerminal(80, 24)
	feed(term, "\x1bPGATE;KTERM;1;SET;WIDTH;3000\x1b\\")

	s := term.GetSession()
	if got := s.Alternate.Cols; got != 2048 {
		t.Errorf("resized cols = %d, want 2048 (clamped)", got)
	}
	if got := s.Alternate.Rows; got != 24 {
		t.Errorf("resized rows = %d, want 24 (unchanged)", got)
	}
}

func TestSGR5SetsClassicAndBGBlinkAfterSGR6(t *testing.T) {
	term := newTestTerminal(10, 5)
	feed(term, "\x1b[6m\x1b[5mA")

	s := term.GetSession()
	if s.Attrs.Flags&FlagBlinkSlow != 0 {
		t.Errorf("expected BLINK_SLOW cleared after SGR 5")
	}
	if s.Attrs.Flags&FlagBlinkClassic == 0 || s.Attrs.Flags&FlagBlinkBG == 0 {
		t.Errorf("expected BLINK | BLINK_BG set after SGR 5, got %v", s.Attrs.Flags)
	}
}

func TestSGR25ClearsAllBlinkFlags(t *testing.T) {
	term := newTestTerminal(10, 5)
	feed(term, "\x1b[5m\x1b[25mA")

	s := term.GetSession()
	if s.Attrs.Flags&(FlagBlinkSlow|FlagBlinkClassic|FlagBlinkBG) != 0 {
		t.Errorf("expected all blink flags clear after SGR 25, got %v", s.Attrs.Flags)
	}
}

func TestDECCOLMResizesAndClears(t *testing.T) {
	term := newTestTerminal(80, 24)
	feed(term, "ABC")
	feed(term, "\x1b[?3h")

	s := term.GetSession()
	if !s.Modes.DECCOLM {
		t.Fatalf("expected DECCOLM mode bit set")
	}
	if s.Active.Cols != 132 {
		t.Errorf("cols after DECCOLM set = %d, want 132", s.Active.Cols)
	}
	if cell := s.Active.At(0, 0); cell != nil && cell.Char == 'A' {
		t.Errorf("expected grid cleared on DECCOLM unless DECNCSM set, found leftover %+v", cell)
	}
}

func TestDECCOLMSkipsClearUnderDECNCSM(t *testing.T) {
	term := newTestTerminal(80, 24)
	feed(term, "\x1b[?95h")
	feed(term, "ABC")
	feed(term, "\x1b[?3h")

	s := term.GetSession()
	if cell := s.Active.At(0, 0); cell == nil || cell.Char != 'A' {
		t.Errorf("expected grid preserved under DECNCSM, cell(0,0)=%+v", cell)
	}
}

func TestDECSCAMarksCellsProtected(t *testing.T) {
	term := newTestTerminal(10, 5)
	feed(term, "\x1b[1\"qA\x1b[0\"qB")

	s := term.GetSession()
	a := s.Active.At(0, 0)
	b := s.Active.At(1, 0)
	if a == nil || a.Flags&FlagProtected == 0 {
		t.Errorf("expected cell written under DECSCA=1 to be protected, got %+v", a)
	}
	if b == nil || b.Flags&FlagProtected != 0 {
		t.Errorf("expected cell written under DECSCA=0 to be unprotected, got %+v", b)
	}
}

func TestDECRQSSReportsProtectedAttribute(t *testing.T) {
	term := newTestTerminal(10, 5)
	var got []byte
	term.opts.ResponseCallback = func(t *Terminal, session int, data []byte) {
		got = append(got, data...)
	}
	s := term.GetSession()
	s.Attrs.Flags |= FlagProtected
	feed(term, "\x1bP$q\"q\x1b\\")

	want := "\x1bP1$r1\"q\x1b\\"
	if string(got) != want {
		t.Fatalf("DECRQSS DECSCA reply = %q, want %q", got, want)
	}
}

func TestDECRQCRAChecksum(t *testing.T) {
	term := newTestTerminal(10, 5)
	var got []byte
	term.opts.ResponseCallback = func(t *Terminal, session int, data []byte) {
		got = append(got, data...)
	}
	feed(term, "AB")
	feed(term, "\x1b[1;1;1;1;1;2*y")

	want := "\x1bP1!~" + "0083" + "\x1b\\" // 'A'(0x41) + 'B'(0x42) = 0x83
	if string(got) != want {
		t.Fatalf("DECRQCRA reply = %q, want %q", got, want)
	}
}

func TestCSIBufferOverflow(t *testing.T) {
	term := newTestTerminal(10, 5)
	payload := "\x1b["
	for i := 0; i < 4200; i++ {
		payload += "0"
	}
	feed(term, payload)

	s := term.GetSession()
	if s.Parse.State != StateGround {
		t.Fatalf("parser state after overflow = %v, want StateGround", s.Parse.State)
	}
	if len(s.Parse.CSIParams) != 0 {
		t.Errorf("CSIParams not cleared after overflow, len=%d", len(s.Parse.CSIParams))
	}
}

func TestSaveRestoreCursorIsolatedPerSession(t *testing.T) {
	term := newTestTerminal(10, 10)
	term.InitSession(1)
	a := term.Session(0)
	b := term.Session(1)

	a.Cursor.X, a.Cursor.Y = 3, 3
	a.SaveCursor()
	b.Cursor.X, b.Cursor.Y = 7, 7
	b.SaveCursor()

	a.Cursor.X, a.Cursor.Y = 0, 0
	a.RestoreCursor()

	if a.Cursor.X != 3 || a.Cursor.Y != 3 {
		t.Errorf("session A cursor after restore = (%d,%d), want (3,3)", a.Cursor.X, a.Cursor.Y)
	}
	if b.SavedCursor.X != 7 || b.SavedCursor.Y != 7 {
		t.Errorf("session B saved cursor clobbered: %+v", b.SavedCursor)
	}
}

func TestRISResetsToFreshState(t *testing.T) {
	term := newTestTerminal(10, 5)
	feed(term, "\x1b[1mABC\x1b[2;2H")
	feed(term, "\x1bc")

	s := term.GetSession()
	if s.Cursor.X != 0 || s.Cursor.Y != 0 {
		t.Errorf("cursor after RIS = (%d,%d), want (0,0)", s.Cursor.X, s.Cursor.Y)
	}
	if s.Attrs.Flags != 0 {
		t.Errorf("attrs after RIS = %v, want 0", s.Attrs.Flags)
	}
	cell := s.Active.At(0, 0)
	if cell != nil && cell.Char != 0 && cell.Char != ' ' {
		t.Errorf("grid not cleared after RIS, cell(0,0) = %+v", cell)
	}
}
