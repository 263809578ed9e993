package kterm

import "testing"

func TestCellFlagHelpers(t *testing.T) {
	var c Cell
	c.SetFlag(FlagBold)
	if !c.HasFlag(FlagBold) {
		t.Errorf("expected FlagBold set")
	}
	c.ClearFlag(FlagBold)
	if c.HasFlag(FlagBold) {
		t.Errorf("expected FlagBold cleared")
	}
}

func TestUnderlineStylePacking(t *testing.T) {
	var f CellFlags
	f = f.withUnderlineStyle(UnderlineCurly)
	if f.UnderlineStyle() != UnderlineCurly {
		t.Errorf("UnderlineStyle() = %v, want UnderlineCurly", f.UnderlineStyle())
	}
	if !f.HasUnderlineStyle() {
		t.Errorf("expected HasUnderlineStyle true")
	}
	if f&FlagUnderline == 0 {
		t.Errorf("expected FlagUnderline set alongside a non-none style")
	}
	f = f.withUnderlineStyle(UnderlineNone)
	if f.HasUnderlineStyle() {
		t.Errorf("expected HasUnderlineStyle false after resetting to UnderlineNone")
	}
	if f&FlagUnderline != 0 {
		t.Errorf("expected FlagUnderline cleared after resetting to UnderlineNone")
	}
}

func TestCellWidth(t *testing.T) {
	c := Cell{Char: 'A'}
	if c.Width() != 1 {
		t.Errorf("ASCII width = %d, want 1", c.Width())
	}
	wide := Cell{Char: '中'} // CJK character, East Asian wide
	if wide.Width() != 2 {
		t.Errorf("CJK width = %d, want 2", wide.Width())
	}
}

func TestCellReset(t *testing.T) {
	c := Cell{Char: 'X', Flags: FlagBold, CombiningMarks: []rune{'́'}}
	c.Reset()
	if c.Char != ' ' || c.Flags != 0 || c.CombiningMarks != nil {
		t.Errorf("Reset() left %+v, want blank cell", c)
	}
}
