package kterm

import "testing"

func TestPalette256RGBRanges(t *testing.T) {
	r, g, b := Palette256RGB(1) // standard red
	if r != 170 || g != 0 || b != 0 {
		t.Errorf("Palette256RGB(1) = (%d,%d,%d), want (170,0,0)", r, g, b)
	}
	r, g, b = Palette256RGB(255) // last grayscale step
	if r != g || g != b {
		t.Errorf("Palette256RGB(255) not gray: (%d,%d,%d)", r, g, b)
	}
}

func TestNearestPaletteIndexExactMatch(t *testing.T) {
	p := NewPalette256()
	idx := NearestPaletteIndex(&p, 170, 0, 0)
	if idx != 1 {
		t.Errorf("NearestPaletteIndex(170,0,0) = %d, want 1", idx)
	}
}

func TestColorSGR(t *testing.T) {
	if got := Indexed16(1).SGR(true); got != "31" {
		t.Errorf("Indexed16(1).SGR(fg) = %q, want 31", got)
	}
	if got := Indexed16(9).SGR(true); got != "91" {
		t.Errorf("Indexed16(9).SGR(fg) = %q, want 91", got)
	}
	if got := DefaultColor().SGR(false); got != "49" {
		t.Errorf("DefaultColor().SGR(bg) = %q, want 49", got)
	}
	if got := Indexed256(200).SGR(true); got != "38;5;200" {
		t.Errorf("Indexed256(200).SGR(fg) = %q, want 38;5;200", got)
	}
}

func TestColorClampsOutOfRangeIndex(t *testing.T) {
	if c := Indexed16(99); c.Index != 7 {
		t.Errorf("Indexed16(99).Index = %d, want 7 (clamped)", c.Index)
	}
	if c := Indexed256(-1); c.Index != 7 {
		t.Errorf("Indexed256(-1).Index = %d, want 7 (clamped)", c.Index)
	}
}
