package kterm

import "testing"

func TestRegisPointClampsCoordinates(t *testing.T) {
	term := newTestTerminal(40, 20)
	feed(term, "\x1bPpP[5000,-10]\x1b\\")

	s := term.GetSession()
	if s.Regis.CurX != regisCoordLimit {
		t.Errorf("CurX = %d, want clamped to %d", s.Regis.CurX, regisCoordLimit)
	}
	if s.Regis.CurY != 0 {
		t.Errorf("CurY = %d, want clamped to 0", s.Regis.CurY)
	}
}

func TestRegisDrawVectorPaintsCells(t *testing.T) {
	term := newTestTerminal(40, 20)
	feed(term, "\x1bPpP[0,0]V[10,0]\x1b\\")

	s := term.GetSession()
	if s.Regis.CurX != 10 || s.Regis.CurY != 0 {
		t.Errorf("position after vector = (%d,%d), want (10,0)", s.Regis.CurX, s.Regis.CurY)
	}
	// x 0..10 on an 800-wide canvas scales to column 0 of a 40-column grid
	if c := s.Active.At(0, 0); c == nil || c.Char != '*' {
		t.Errorf("cell (0,0) after vector = %+v, want '*'", c)
	}
}
