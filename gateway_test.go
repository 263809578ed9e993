package kterm

import "testing"

func TestGatewayPipeRawRoundTrip(t *testing.T) {
	term := newTestTerminal(10, 5)
	term.InitSession(1)
	feed(term, "\x1bPGATE;KTERM;0;SET;SESSION;1\x1b\\")
	feed(term, "\x1bPGATE;KTERM;0;PIPE;VT;RAW;hi\x1b\\")

	s := term.Session(1)
	cell := s.Active.At(0, 0)
	if cell == nil || cell.Char != 'h' {
		t.Fatalf("expected session 1 to receive piped bytes, cell(0,0)=%+v", cell)
	}
}

func TestGatewayPipeHexRoundTrip(t *testing.T) {
	term := newTestTerminal(10, 5)
	term.InitSession(1)
	feed(term, "\x1bPGATE;KTERM;0;SET;SESSION;1\x1b\\")
	// "hi" as hex
	feed(term, "\x1bPGATE;KTERM;0;PIPE;VT;HEX;6869\x1b\\")

	s := term.Session(1)
	cell := s.Active.At(0, 0)
	if cell == nil || cell.Char != 'h' {
		t.Fatalf("expected session 1 to receive decoded hex bytes, cell(0,0)=%+v", cell)
	}
}

func TestGatewaySetSessionIsSticky(t *testing.T) {
	term := newTestTerminal(10, 5)
	term.InitSession(1)
	feed(term, "\x1bPGATE;KTERM;0;SET;SESSION;1\x1b\\")
	if term.GatewayTargetSession != 1 {
		t.Fatalf("GatewayTargetSession = %d, want 1", term.GatewayTargetSession)
	}
	feed(term, "\x1bPGATE;KTERM;0;RESET;SESSION\x1b\\")
	if term.GatewayTargetSession != -1 {
		t.Fatalf("GatewayTargetSession after RESET = %d, want -1", term.GatewayTargetSession)
	}
}

func TestGatewaySetWidthResizesTargetAndClamps(t *testing.T) {
	term := newTestTerminal(10, 5)
	feed(term, "\x1bPGATE;KTERM;0;SET;WIDTH;3000\x1b\\")

	s := term.GetSession()
	if s.Alternate.Cols != 2048 {
		t.Fatalf("Alternate.Cols = %d, want clamped to 2048", s.Alternate.Cols)
	}
}

func TestGatewaySetAttrEditsSGRState(t *testing.T) {
	term := newTestTerminal(10, 5)
	feed(term, "\x1bPGATE;KTERM;0;SET;ATTR;BOLD=ON;REVERSE=on\x1b\\")

	s := term.GetSession()
	if s.Attrs.Flags&FlagBold == 0 || s.Attrs.Flags&FlagReverse == 0 {
		t.Fatalf("expected BOLD and REVERSE set, got flags=%v", s.Attrs.Flags)
	}
}

func TestGatewayUnknownClassFallsBackToCallback(t *testing.T) {
	term := newTestTerminal(10, 5)
	var gotClass, gotCmd string
	term.opts.GatewayCallback = func(t *Terminal, class, id, command string, params []string) {
		gotClass, gotCmd = class, command
	}
	feed(term, "\x1bPGATE;CUSTOM;0;PING;hello\x1b\\")

	if gotClass != "CUSTOM" || gotCmd != "PING" {
		t.Errorf("GatewayCallback got class=%q command=%q", gotClass, gotCmd)
	}
}

func TestGatewayPipeBannerGradient(t *testing.T) {
	term := newTestTerminal(40, 5)
	feed(term, "\x1bPGATE;KTERM;0;PIPE;BANNER;TEXT=hi;GRADIENT=#000000|#FFFFFF\x1b\\")

	s := term.GetSession()
	cell := s.Active.At(0, 0)
	if cell == nil || cell.Char != 'h' {
		t.Fatalf("expected banner text written to active session, cell(0,0)=%+v", cell)
	}
}

func TestScannerPrimitives(t *testing.T) {
	sc := NewScanner([]byte("foo 42 0x2a 3.5 true"))
	id := sc.NextIdentifier()
	if id != "foo" {
		t.Fatalf("NextIdentifier = %q", id)
	}
	n, ok := sc.NextInt()
	if !ok || n != 42 {
		t.Fatalf("NextInt = %d, %v", n, ok)
	}
	h, ok := sc.NextHex()
	if !ok || h != 0x2a {
		t.Fatalf("NextHex = %d, %v", h, ok)
	}
	f, ok := sc.NextFloat()
	if !ok || f != 3.5 {
		t.Fatalf("NextFloat = %v, %v", f, ok)
	}
	b, ok := sc.NextBool()
	if !ok || !b {
		t.Fatalf("NextBool = %v, %v", b, ok)
	}
}

func TestScannerNextBoolAcceptsOnOffCaseInsensitive(t *testing.T) {
	cases := map[string]bool{"ON": true, "off": false, "On": true, "OFF": false}
	for tok, want := range cases {
		v, ok := NewScanner([]byte(tok)).NextBool()
		if !ok || v != want {
			t.Errorf("NextBool(%q) = %v, %v; want %v, true", tok, v, ok, want)
		}
	}
}
