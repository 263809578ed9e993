package kterm

// Grid is one of a Session's two screens (primary or alternate): a ring
// of rows sized cols x (rows + scrollbackCapacity), addressed through
// ScreenHead the way §4.3 specifies so that scrolling the full screen
// with no margins set is a zero-copy head bump instead of a row copy.
type Grid struct {
	Cols, Rows         int
	ScrollbackCapacity int
	BufferHeight       int // Rows + ScrollbackCapacity
	Cells              []Cell
	ScreenHead         int
	RowDirty           []bool // indexed by visible row 0..Rows-1
}

// NewGrid allocates a blank grid of the given visible size with the
// given scrollback capacity.
func NewGrid(cols, rows, scrollbackCapacity int) *Grid {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	if scrollbackCapacity < 0 {
		scrollbackCapacity = 0
	}
	bh := rows + scrollbackCapacity
	g := &Grid{
		Cols:               cols,
		Rows:               rows,
		ScrollbackCapacity: scrollbackCapacity,
		BufferHeight:       bh,
		Cells:              make([]Cell, bh*cols),
		RowDirty:           make([]bool, rows),
	}
	for i := range g.Cells {
		g.Cells[i] = BlankCell
	}
	return g
}

// index computes the flat cell offset for visible row y, column x,
// exactly as §4.3's get_screen_cell does.
func (g *Grid) index(y, x int) int {
	row := (g.ScreenHead + y) % g.BufferHeight
	if row < 0 {
		row += g.BufferHeight
	}
	return row*g.Cols + x
}

// At returns a pointer to the cell at visible (x, y), or nil if out of
// bounds.
func (g *Grid) At(x, y int) *Cell {
	if x < 0 || x >= g.Cols || y < 0 || y >= g.Rows {
		return nil
	}
	return &g.Cells[g.index(y, x)]
}

// MarkRowDirty flags visible row y as needing redraw.
func (g *Grid) MarkRowDirty(y int) {
	if y >= 0 && y < g.Rows {
		g.RowDirty[y] = true
	}
}

// ClearDirty resets every row's dirty flag (called once per flush by
// an embedder after it has drained the dirty rows it needs).
func (g *Grid) ClearDirty() {
	for i := range g.RowDirty {
		g.RowDirty[i] = false
	}
}

// ScrollbackRow returns the cell at (x, logical row above the visible
// screen, 0 = immediately above row 0), or nil if x or rowsAbove is
// out of range. A row that has not yet received history reads back as
// blank cells.
func (g *Grid) ScrollbackRow(x, rowsAbove int) *Cell {
	if rowsAbove < 0 || rowsAbove >= g.ScrollbackCapacity || x < 0 || x >= g.Cols {
		return nil
	}
	row := (g.ScreenHead - 1 - rowsAbove) % g.BufferHeight
	if row < 0 {
		row += g.BufferHeight
	}
	return &g.Cells[row*g.Cols+x]
}

// AdvanceHead bumps ScreenHead by dy (mod BufferHeight), the zero-copy
// scrollback path: the rows that scroll off the top become scrollback
// automatically because they are simply no longer addressed by index().
// Newly exposed rows at the bottom are blanked.
func (g *Grid) AdvanceHead(dy int) {
	if dy <= 0 {
		return
	}
	g.ScreenHead = (g.ScreenHead + dy) % g.BufferHeight
	for y := g.Rows - dy; y < g.Rows; y++ {
		if y < 0 {
			continue
		}
		g.blankRow(y)
	}
	for i := range g.RowDirty {
		g.RowDirty[i] = true
	}
}

// ClearScrollback blanks every row of history outside the visible
// screen (the ED3/xterm "erase saved lines" extension), without
// touching ScreenHead or the currently visible rows.
func (g *Grid) ClearScrollback() {
	for above := 0; above < g.ScrollbackCapacity; above++ {
		row := (g.ScreenHead - 1 - above) % g.BufferHeight
		if row < 0 {
			row += g.BufferHeight
		}
		base := row * g.Cols
		for x := 0; x < g.Cols; x++ {
			g.Cells[base+x] = BlankCell
		}
	}
}

func (g *Grid) blankRow(y int) {
	base := g.index(y, 0)
	for x := 0; x < g.Cols; x++ {
		g.Cells[base+x] = BlankCell
	}
}

// MoveRowsRange explicitly copies count rows starting at srcStart to the
// rows starting at dstStart, columns left..right, within the visible
// screen (used when a scrolling region has margins, so the zero-copy
// head bump can't apply uniformly), preserving content when the ranges
// overlap by choosing iteration order from the sign of dst-src.
func (g *Grid) MoveRowsRange(srcStart, dstStart, count, left, right int) {
	if count <= 0 {
		return
	}
	down := dstStart > srcStart
	for i := 0; i < count; i++ {
		idx := i
		if down {
			idx = count - 1 - i
		}
		srcY := srcStart + idx
		dstY := dstStart + idx
		srcBase := g.index(srcY, 0)
		dstBase := g.index(dstY, 0)
		for x := left; x <= right; x++ {
			g.Cells[dstBase+x] = g.Cells[srcBase+x]
		}
		g.MarkRowDirty(dstY)
	}
}

// FillRow blanks columns [left, right] of row y with the given cell.
func (g *Grid) FillRow(y, left, right int, cell Cell) {
	if y < 0 || y >= g.Rows {
		return
	}
	base := g.index(y, 0)
	for x := left; x <= right; x++ {
		if x < 0 || x >= g.Cols {
			continue
		}
		g.Cells[base+x] = cell
	}
	g.MarkRowDirty(y)
}

// Resize reallocates the grid to newCols x newRows, preserving
// top-left content the way §4.4's resize_session_internal does.
func (g *Grid) Resize(newCols, newRows int) {
	if newCols < 1 {
		newCols = 1
	}
	if newRows < 1 {
		newRows = 1
	}
	old := g
	replacement := NewGrid(newCols, newRows, g.ScrollbackCapacity)
	copyCols := newCols
	if old.Cols < copyCols {
		copyCols = old.Cols
	}
	copyRows := newRows
	if old.Rows < copyRows {
		copyRows = old.Rows
	}
	for y := 0; y < copyRows; y++ {
		for x := 0; x < copyCols; x++ {
			*replacement.At(x, y) = *old.At(x, y)
		}
	}
	*g = *replacement
}

// ScrollRegion is the DECSTBM/DECSLRM scrolling region: top/bottom are
// always meaningful, left/right only when DECLRMM is enabled.
type ScrollRegion struct {
	Top, Bottom, Left, Right int
}

// FullScreen reports whether the region spans the entire grid (the
// condition required for the zero-copy AdvanceHead scrollback path).
func (r ScrollRegion) FullScreen(g *Grid) bool {
	return r.Top == 0 && r.Bottom == g.Rows-1 && r.Left == 0 && r.Right == g.Cols-1
}

// Cursor is a session's visible-cursor state.
type Cursor struct {
	X, Y        int
	Visible     bool
	Style       int // DECSCUSR shape
	Blink       bool
	WrapPending bool
}

// SavedCursorState is the DECSC/DECRC snapshot: cursor position,
// current SGR attributes/colors, and origin mode, captured as one unit
// per §3/§8 invariant 2.
type SavedCursorState struct {
	Valid      bool
	X, Y       int
	Flags      CellFlags
	Foreground Color
	Background Color
	OriginMode bool
}
