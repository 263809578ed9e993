package kterm

// SixelState accumulates one DCS sixel graphics sequence. Sixel encodes
// an image six vertical pixels per byte; this engine rasterizes the
// decoded register colors directly into a grid cell's true-color
// background rather than quantizing onto the indexed palette, since a
// cell's Color can already hold a full 24-bit RGB value.
type SixelState struct {
	Registers   map[int][3]uint8 // color register index -> RGB (0-100 scale converted to 0-255 on set)
	CurrentReg  int
	X, Y        int // pixel cursor within the sixel image, Y in units of 6-row bands
	Width       int // widest row seen so far, in pixels
	repeatCount int
	params      []int
	paramBuf    int
	haveParam   bool
	rows        [][]byte // one byte per pixel column per sixel band; each entry 0-63 sixel bitmask... simplified to per-pixel register index
	pixelRows   [][]int  // resolved palette index per pixel, row-major, grown as needed
}

const sixelMaxDimension = 4096

// beginSixel resets Sixel state at the start of a new DCS q sequence.
// The image accumulates in the sixel target session's state, not in
// the state of the session that received the DCS.
func (t *Terminal) beginSixel(s *Session) {
	s.Parse.State = StateSixel
	sx := &t.sixelTarget(s).Sixel
	sx.Registers = make(map[int][3]uint8)
	sx.CurrentReg = 0
	sx.X, sx.Y = 0, 0
	sx.Width = 0
	sx.repeatCount = 1
	sx.params = sx.params[:0]
	sx.paramBuf = 0
	sx.haveParam = false
	sx.pixelRows = nil
}

// parseSixelByte consumes one byte of sixel body data. Sixel data bytes
// are 0x3F-0x7E ("?" through "~"), each encoding a 6-pixel vertical
// column; '!' introduces a repeat count, '#' selects/defines a color
// register, '$' returns to the start of the line (graphics carriage
// return), '-' advances to the next 6-row band.
func (t *Terminal) parseSixelByte(s *Session, b byte) {
	ps := &s.Parse
	if b == 0x1B {
		ps.pendingSixelOnST = true
		ps.State = StateEscape
		return
	}
	if b == 0x07 {
		t.completeSixel(s)
		ps.State = StateGround
		return
	}

	sx := &t.sixelTarget(s).Sixel
	switch {
	case b == '!':
		sx.params = sx.params[:0]
		sx.paramBuf = 0
		sx.haveParam = false
	case b == '#':
		t.sixelFlushRepeatParams(sx)
		sx.params = sx.params[:0]
		sx.paramBuf = 0
		sx.haveParam = false
	case b == '$':
		sx.X = 0
	case b == '-':
		sx.X = 0
		sx.Y++
	case b >= '0' && b <= '9':
		sx.paramBuf = sx.paramBuf*10 + int(b-'0')
		sx.haveParam = true
	case b == ';':
		sx.params = append(sx.params, sx.paramBuf)
		sx.paramBuf = 0
		sx.haveParam = false
	case b >= '?' && b <= '~':
		t.sixelPlotColumn(sx, b)
	}
}

// sixelFlushRepeatParams interprets accumulated numeric params as
// either a repeat count ("!Pn") or a color-register definition
// ("#Pc;Pu;Px;Py;Pz"), depending on how many params were collected
// before the '#'/'!' that triggered the flush.
func (t *Terminal) sixelFlushRepeatParams(sx *SixelState) {
	if sx.haveParam {
		sx.params = append(sx.params, sx.paramBuf)
	}
	switch len(sx.params) {
	case 1:
		sx.CurrentReg = sx.params[0]
	case 5:
		reg := sx.params[0]
		colorSpace := sx.params[1]
		p1, p2, p3 := sx.params[2], sx.params[3], sx.params[4]
		sx.CurrentReg = reg
		sx.Registers[reg] = sixelColorFromParams(colorSpace, p1, p2, p3)
	}
}

func sixelColorFromParams(colorSpace, p1, p2, p3 int) [3]uint8 {
	clamp := func(v int) uint8 {
		if v < 0 {
			v = 0
		}
		if v > 100 {
			v = 100
		}
		return uint8(v * 255 / 100)
	}
	if colorSpace == 1 { // HLS: hue/lightness/saturation — approximated as grayscale by lightness
		l := clamp(p2)
		return [3]uint8{l, l, l}
	}
	return [3]uint8{clamp(p1), clamp(p2), clamp(p3)}
}

// sixelPlotColumn renders one data byte as up to 6 vertical pixels in
// the current register's color, honoring any pending repeat count.
func (t *Terminal) sixelPlotColumn(sx *SixelState, b byte) {
	if sx.haveParam || len(sx.params) > 0 {
		t.sixelFlushRepeatParams(sx)
	}
	repeat := 1
	if len(sx.params) == 1 {
		repeat = sx.params[0]
		if repeat < 1 {
			repeat = 1
		}
	}
	sx.params = sx.params[:0]
	sx.paramBuf = 0
	sx.haveParam = false

	bits := b - '?'
	for r := 0; r < repeat; r++ {
		t.sixelSetPixelColumn(sx, sx.X, bits)
		sx.X++
		if sx.X > sx.Width {
			sx.Width = sx.X
		}
		if sx.X > sixelMaxDimension {
			break
		}
	}
}

func (t *Terminal) sixelSetPixelColumn(sx *SixelState, x int, bits byte) {
	baseRow := sx.Y * 6
	for i := 0; i < 6; i++ {
		if bits&(1<<uint(i)) == 0 {
			continue
		}
		row := baseRow + i
		t.sixelEnsureRow(sx, row, x)
		sx.pixelRows[row][x] = sx.CurrentReg
	}
}

func (t *Terminal) sixelEnsureRow(sx *SixelState, row, col int) {
	if row >= sixelMaxDimension || col >= sixelMaxDimension {
		return
	}
	for len(sx.pixelRows) <= row {
		sx.pixelRows = append(sx.pixelRows, nil)
	}
	for len(sx.pixelRows[row]) <= col {
		sx.pixelRows[row] = append(sx.pixelRows[row], -1)
	}
}

// completeSixel rasterizes the accumulated sixel image into the target
// session's active grid, one terminal cell per (up to) 2x4-pixel block
// collapsed to its dominant color — this engine renders sixels as
// colored block cells rather than a separate pixel plane, since Cell
// has no per-pixel backing store (§4.6 sixel routing: painted into
// whichever session SixelTargetSession names, not necessarily the one
// that received the DCS).
func (t *Terminal) completeSixel(s *Session) {
	target := t.sixelTarget(s)
	sx := &target.Sixel
	if len(sx.pixelRows) == 0 {
		return
	}
	cellW, cellH := 2, 4
	cols := (sx.Width + cellW - 1) / cellW
	rows := (len(sx.pixelRows) + cellH - 1) / cellH
	startY := target.Cursor.Y
	startX := target.Cursor.X
	for cy := 0; cy < rows && startY+cy < target.Rows(); cy++ {
		for cx := 0; cx < cols && startX+cx < target.Cols(); cx++ {
			reg, ok := t.sixelDominantRegister(sx, cx*cellW, cy*cellH, cellW, cellH)
			if !ok {
				continue
			}
			rgb := sx.Registers[reg]
			color := RGBColor(rgb[0], rgb[1], rgb[2])
			t.Ops.Enqueue(Op{
				Kind:    OpSetCell,
				Session: target.Index,
				Rect:    Rect{Top: startY + cy, Left: startX + cx, Bottom: startY + cy, Right: startX + cx},
				Cell:    Cell{Char: ' ', Background: color, Foreground: color},
			})
		}
	}
}

func (t *Terminal) sixelDominantRegister(sx *SixelState, px, py, w, h int) (int, bool) {
	counts := make(map[int]int)
	for y := py; y < py+h && y < len(sx.pixelRows); y++ {
		row := sx.pixelRows[y]
		for x := px; x < px+w && x < len(row); x++ {
			if row[x] >= 0 {
				counts[row[x]]++
			}
		}
	}
	best, bestCount := -1, 0
	for reg, c := range counts {
		if c > bestCount {
			best, bestCount = reg, c
		}
	}
	return best, best >= 0
}
