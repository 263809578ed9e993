package kterm

import "testing"

func TestGridAdvanceHeadScrollsToScrollback(t *testing.T) {
	g := NewGrid(5, 3, 10)
	g.At(0, 0).Char = 'X'

	g.AdvanceHead(1)

	if cell := g.At(0, 0); cell.Char == 'X' {
		t.Errorf("row 0 should now show the old row 1, not the scrolled-off row")
	}
	if row := g.ScrollbackRow(0, 0); row == nil || row.Char != 'X' {
		t.Errorf("scrolled-off row should be retrievable via ScrollbackRow, got %+v", row)
	}
}

func TestGridClearScrollbackLeavesVisibleRowsIntact(t *testing.T) {
	g := NewGrid(5, 3, 10)
	g.At(0, 0).Char = 'A'
	g.AdvanceHead(1) // row 'A' becomes scrollback

	g.ClearScrollback()

	if row := g.ScrollbackRow(0, 0); row != nil && row.Char == 'A' {
		t.Errorf("ClearScrollback should have blanked scrollback row, got %+v", row)
	}
	// visible rows (now blank from the scroll) must remain readable
	if cell := g.At(0, 0); cell == nil {
		t.Errorf("visible row must remain addressable after ClearScrollback")
	}
}

func TestGridResizePreservesTopLeftContent(t *testing.T) {
	g := NewGrid(5, 3, 10)
	g.At(0, 0).Char = 'Z'

	g.Resize(8, 5)

	if g.Cols != 8 || g.Rows != 5 {
		t.Fatalf("Resize() = (%d,%d), want (8,5)", g.Cols, g.Rows)
	}
	if c := g.At(0, 0); c == nil || c.Char != 'Z' {
		t.Errorf("cell (0,0) after Resize = %+v, want 'Z'", c)
	}
}
