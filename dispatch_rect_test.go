package kterm

import "testing"

func TestRectangularDECCARA(t *testing.T) {
	term := newTestTerminal(10, 5)
	feed(term, "ABCDE\r\n")
	feed(term, "FGHIJ\r\n")
	feed(term, "\x1b[1;2;2;4;1$t")

	s := term.GetSession()
	for y := 0; y < 2; y++ {
		for x := 0; x < s.Cols(); x++ {
			cell := s.Active.At(x, y)
			want := x >= 1 && x <= 3
			got := cell != nil && cell.Flags&FlagBold != 0
			if got != want {
				t.Errorf("cell(%d,%d) bold=%v, want %v", x, y, got, want)
			}
		}
	}
}

func TestSixelRouting(t *testing.T) {
	term := newTestTerminal(20, 10)
	term.InitSession(1)
	term.SixelTargetSession = 1
	term.ActiveSession = 0

	feed(term, "\x1bPq#0;2;100;100;100~\x1b\\")

	a := term.Session(0)
	b := term.Session(1)
	if a.Sixel.Width != 0 {
		t.Errorf("session 0 sixel state should be untouched, width=%d", a.Sixel.Width)
	}
	if cell := b.Active.At(0, 0); cell == nil || cell.Char != ' ' || cell.Background.Kind == ColorDefault {
		t.Errorf("session 1 (sixel target) should have received rendered sixel output, cell=%+v", cell)
	}
}
