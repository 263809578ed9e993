package kterm

import "strconv"

// regisCoordLimit is the maximum addressable ReGIS coordinate on either
// axis; anything beyond this saturates rather than wrapping or
// panicking (SPEC_FULL graphics-plane bound).
const regisCoordLimit = 799

// regisIntLimit bounds any single parsed ReGIS integer literal to avoid
// overflow from a pathological command stream.
const regisIntLimit = 100_000_000

// regisMaxMacros is a macro-count bound that nothing references:
// completeRegis does not interpret '@' macro definitions, so
// RegisState.Macros stays empty.
const regisMaxMacros = 64

// RegisState accumulates one DCS ReGIS sequence and the small amount of
// persistent state (current position, current color, macro space) that
// survives across sequences within a session.
type RegisState struct {
	Buf []byte

	CurX, CurY int
	ColorIndex int

	Macros map[string][]byte
}

func (t *Terminal) beginRegis(s *Session) {
	s.Parse.State = StateRegis
	rg := &s.Regis
	rg.Buf = rg.Buf[:0]
	if rg.Macros == nil {
		rg.Macros = make(map[string][]byte)
	}
}

// parseRegisByte accumulates the ReGIS command text; the grammar is
// line-oriented free text rather than a byte-level state machine, so
// interpretation happens once in completeRegis (mirroring how this
// engine treats Gateway/DECRQSS bodies: accumulate to the terminator,
// parse as a whole).
func (t *Terminal) parseRegisByte(s *Session, b byte) {
	ps := &s.Parse
	if b == 0x1B {
		ps.pendingRegisOnST = true
		ps.State = StateEscape
		return
	}
	if b == 0x07 {
		t.completeRegis(s)
		ps.State = StateGround
		return
	}
	rg := &s.Regis
	rg.Buf = append(rg.Buf, b)
	if t.overflowed(s, len(rg.Buf)) {
		ps.State = StateGround
	}
}

type regisScanner struct {
	data []byte
	pos  int
}

func (r *regisScanner) peek() byte {
	if r.pos >= len(r.data) {
		return 0
	}
	return r.data[r.pos]
}

func (r *regisScanner) skipSpace() {
	for r.pos < len(r.data) && (r.data[r.pos] == ' ' || r.data[r.pos] == '\n' || r.data[r.pos] == '\r' || r.data[r.pos] == '\t') {
		r.pos++
	}
}

// int parses a ReGIS signed integer literal, saturating at regisIntLimit.
func (r *regisScanner) int() (int, bool) {
	r.skipSpace()
	start := r.pos
	neg := false
	if r.peek() == '+' || r.peek() == '-' {
		neg = r.peek() == '-'
		r.pos++
	}
	digitsStart := r.pos
	for r.pos < len(r.data) && r.data[r.pos] >= '0' && r.data[r.pos] <= '9' {
		r.pos++
	}
	if r.pos == digitsStart {
		r.pos = start
		return 0, false
	}
	n, err := strconv.Atoi(string(r.data[digitsStart:r.pos]))
	if err != nil {
		return 0, false
	}
	if n > regisIntLimit {
		n = regisIntLimit
	}
	if neg {
		n = -n
	}
	return n, true
}

func clampRegisCoord(v int) int {
	if v < 0 {
		return 0
	}
	if v > regisCoordLimit {
		return regisCoordLimit
	}
	return v
}

// completeRegis interprets the accumulated command text: P[x,y]
// repositions, V[x,y...] draws connected vectors from the current
// position, W(I(n)) sets the color index. Anything unrecognized is
// skipped to the next command letter rather than aborting the whole
// sequence (§7: a malformed graphics command degrades gracefully).
func (t *Terminal) completeRegis(s *Session) {
	rg := &s.Regis
	target := t.sixelTarget(s)
	sc := &regisScanner{data: rg.Buf}

	for sc.pos < len(sc.data) {
		sc.skipSpace()
		if sc.pos >= len(sc.data) {
			break
		}
		cmd := sc.data[sc.pos]
		sc.pos++
		switch cmd {
		case 'P':
			x, y, ok := regisReadPoint(sc)
			if ok {
				rg.CurX, rg.CurY = clampRegisCoord(x), clampRegisCoord(y)
			}
		case 'V':
			t.regisDrawVectors(target, rg, sc)
		case 'W':
			if idx, ok := regisReadParenInt(sc); ok {
				rg.ColorIndex = idx & 0xFF
			}
		case 'C':
			if idx, ok := regisReadParenInt(sc); ok {
				rg.ColorIndex = idx & 0xFF
			}
		default:
			// unrecognized command letter: skip to the next recognized one
			// by consuming a balanced parenthesis/bracket group if present.
			regisSkipParenGroup(sc)
			regisSkipBracketGroup(sc)
		}
	}
}

func regisReadPoint(sc *regisScanner) (int, int, bool) {
	sc.skipSpace()
	if sc.peek() != '[' {
		return 0, 0, false
	}
	sc.pos++
	x, ok1 := sc.int()
	sc.skipSpace()
	if sc.peek() == ',' {
		sc.pos++
	}
	y, ok2 := sc.int()
	sc.skipSpace()
	if sc.peek() == ']' {
		sc.pos++
	}
	return x, y, ok1 && ok2
}

func regisSkipBracketGroup(sc *regisScanner) {
	sc.skipSpace()
	if sc.peek() != '[' {
		return
	}
	depth := 0
	for sc.pos < len(sc.data) {
		c := sc.data[sc.pos]
		sc.pos++
		if c == '[' {
			depth++
		} else if c == ']' {
			depth--
			if depth == 0 {
				return
			}
		}
	}
}

func regisSkipParenGroup(sc *regisScanner) {
	sc.skipSpace()
	if sc.peek() != '(' {
		return
	}
	depth := 0
	for sc.pos < len(sc.data) {
		c := sc.data[sc.pos]
		sc.pos++
		if c == '(' {
			depth++
		} else if c == ')' {
			depth--
			if depth == 0 {
				return
			}
		}
	}
}

func regisReadParenInt(sc *regisScanner) (int, bool) {
	sc.skipSpace()
	if sc.peek() != '(' {
		return 0, false
	}
	sc.pos++
	// accept an optional leading identifier like "I" in "W(I(3))"
	for sc.pos < len(sc.data) && sc.data[sc.pos] != '(' && sc.data[sc.pos] != ')' {
		sc.pos++
	}
	if sc.peek() == '(' {
		sc.pos++
		n, ok := sc.int()
		for sc.pos < len(sc.data) && sc.data[sc.pos] != ')' {
			sc.pos++
		}
		if sc.peek() == ')' {
			sc.pos++
		}
		if sc.peek() == ')' {
			sc.pos++
		}
		return n, ok
	}
	return 0, false
}

// regisDrawVectors draws a connected polyline starting from the
// session's current position, enqueuing one SetCell per visited cell
// using a simple Bresenham walk quantized to the terminal's character
// grid (ReGIS addresses an 800x800 pixel canvas; regisPlotCell scales
// it onto the active grid, x*cols/800 and y*rows/800, rather than
// maintaining a separate pixel framebuffer).
func (t *Terminal) regisDrawVectors(target *Session, rg *RegisState, sc *regisScanner) {
	color := RGBColor(Palette256RGBWrap(rg.ColorIndex))
	for {
		x, y, ok := regisReadPoint(sc)
		if !ok {
			return
		}
		x, y = clampRegisCoord(x), clampRegisCoord(y)
		regisPlotLine(t, target, rg.CurX, rg.CurY, x, y, color)
		rg.CurX, rg.CurY = x, y
		sc.skipSpace()
		if sc.peek() != '[' {
			return
		}
	}
}

// Palette256RGBWrap adapts Palette256RGB's multi-value return into the
// 3-argument form RGBColor expects.
func Palette256RGBWrap(idx int) (uint8, uint8, uint8) {
	return Palette256RGB(idx)
}

func regisPlotLine(t *Terminal, target *Session, x0, y0, x1, y1 int, color Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	x, y := x0, y0
	for {
		t.regisPlotCell(target, x, y, color)
		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func (t *Terminal) regisPlotCell(target *Session, px, py int, color Color) {
	cols, rows := target.Cols(), target.Rows()
	if cols == 0 || rows == 0 {
		return
	}
	cellX := px * cols / (regisCoordLimit + 1)
	cellY := py * rows / (regisCoordLimit + 1)
	if cellX < 0 || cellX >= cols || cellY < 0 || cellY >= rows {
		return
	}
	t.Ops.Enqueue(Op{
		Kind:    OpSetCell,
		Session: target.Index,
		Rect:    Rect{Top: cellY, Left: cellX, Bottom: cellY, Right: cellX},
		Cell:    Cell{Char: '*', Foreground: color, Background: DefaultColor()},
	})
}
