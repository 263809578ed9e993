package kterm

import (
	"fmt"
)

// dispatchDSR implements DSR (CSI Ps n): Ps=5 device status ("OK"),
// Ps=6 cursor position report (§4.2, §8 invariant: DSR reflects
// DECOM-relative coordinates when origin mode is set).
func (t *Terminal) dispatchDSR(s *Session) {
	ps := t.csiParam(s, 0, 0)
	switch ps {
	case 5:
		t.emitResponse(s, []byte("\x1b[0n"))
	case 6:
		row, col := s.Cursor.Y+1, s.Cursor.X+1
		if s.Modes.DECOM {
			row -= s.Region.Top
			col -= s.Region.Left
		}
		t.emitResponse(s, []byte(fmt.Sprintf("\x1b[%d;%dR", row, col)))
	}
}

// dispatchDA1 implements Primary Device Attributes (CSI c / CSI 0 c),
// advertising VT420-class conformance (64) with 132 columns (1),
// national replacement character sets (9), technical characters (15),
// horizontal scrolling (21) and ANSI color (22).
func (t *Terminal) dispatchDA1(s *Session) {
	t.emitResponse(s, []byte("\x1b[?64;1;9;15;21;22c"))
}

// dispatchDA2 implements Secondary Device Attributes (CSI > c),
// reporting a terminal type/firmware/cartridge triple.
func (t *Terminal) dispatchDA2(s *Session) {
	t.emitResponse(s, []byte("\x1b[>41;1;0c"))
}

// dispatchWindowOp implements a narrow slice of xterm's window-ops
// (CSI Ps t): only the report-only operations that don't require pixel
// geometry from an actual display are answered; resize-style ops are
// the Gateway's job (§4.6), not a host-issued escape sequence.
func (t *Terminal) dispatchWindowOp(s *Session) {
	ps := t.csiParam(s, 0, 0)
	switch ps {
	case 18: // report text area size in characters
		t.emitResponse(s, []byte(fmt.Sprintf("\x1b[8;%d;%dt", s.Rows(), s.Cols())))
	case 21: // report window title — no title tracked, answer empty
		t.emitResponse(s, []byte("\x1b]l\x1b\\"))
	}
}

// dispatchDECRect handles the '$'-intermediate DEC rectangular
// extensions: DECCRA ('v'), DECFRA ('x'), DECERA ('z'), DECSERA ('{'),
// DECCARA ('t', also accepted as 'r') and DECRARA ('u'). DECRQSS is a
// DCS sequence (DCS $ q) and is handled by completeDCS, not here.
func (t *Terminal) dispatchDECRect(s *Session, final byte) {
	switch final {
	case 'r', 't':
		t.decCARA(s, AttrApply)
	case 'u':
		t.decCARA(s, AttrToggle)
	case 'v':
		t.decCRA(s)
	case 'x':
		t.decFRA(s)
	case 'z':
		t.decERA(s)
	case '{':
		t.decSERA(s)
	}
}

func clampRect(s *Session, top, left, bottom, right int) (int, int, int, int) {
	if top < 0 {
		top = 0
	}
	if left < 0 {
		left = 0
	}
	if bottom > s.Rows()-1 {
		bottom = s.Rows() - 1
	}
	if right > s.Cols()-1 {
		right = s.Cols() - 1
	}
	return top, left, bottom, right
}

// decCARA/decRARA share structure: Pt;Pl;Pb;Pr;Ps...$t / $u.
func (t *Terminal) decCARA(s *Session, mode AttrOpMode) {
	top := t.csiParam(s, 0, 1) - 1
	left := t.csiParam(s, 1, 1) - 1
	bottom := t.csiParam(s, 2, s.Rows()) - 1
	right := t.csiParam(s, 3, s.Cols()) - 1
	top, left, bottom, right = clampRect(s, top, left, bottom, right)

	var attr CellFlags
	ps := &s.Parse
	for i := 4; i < len(ps.CSIParams); i++ {
		attr |= sgrCodeToFlag(ps.CSIParams[i])
	}
	t.Ops.Enqueue(Op{
		Kind:     OpSetAttrRect,
		Session:  s.Index,
		Rect:     Rect{Top: top, Left: left, Bottom: bottom, Right: right},
		Attr:     attr,
		AttrMode: mode,
	})
}

func sgrCodeToFlag(code int) CellFlags {
	switch code {
	case 1:
		return FlagBold
	case 4:
		return FlagUnderline
	case 5:
		return FlagBlinkSlow
	case 7:
		return FlagReverse
	case 8:
		return FlagHidden
	default:
		return 0
	}
}

// decCRA implements DECCRA: copy a rectangle within the session's own
// active grid. The source and destination page parameters (Ps5, Ps8)
// are ignored; pages are not modeled and no copy crosses sessions.
func (t *Terminal) decCRA(s *Session) {
	top := t.csiParam(s, 0, 1) - 1
	left := t.csiParam(s, 1, 1) - 1
	bottom := t.csiParam(s, 2, s.Rows()) - 1
	right := t.csiParam(s, 3, s.Cols()) - 1
	dstTop := t.csiParam(s, 5, 1) - 1
	dstLeft := t.csiParam(s, 6, 1) - 1
	top, left, bottom, right = clampRect(s, top, left, bottom, right)

	height := bottom - top + 1
	width := right - left + 1
	dstBottom := dstTop + height - 1
	dstRight := dstLeft + width - 1
	_, _, dstBottom, dstRight = clampRect(s, dstTop, dstLeft, dstBottom, dstRight)

	t.Ops.Enqueue(Op{
		Kind:    OpCopyRect,
		Session: s.Index,
		SrcRect: Rect{Top: top, Left: left, Bottom: bottom, Right: right},
		Rect:    Rect{Top: dstTop, Left: dstLeft, Bottom: dstBottom, Right: dstRight},
	})
}

// decFRA implements DECFRA: fill a rectangle with a single character.
func (t *Terminal) decFRA(s *Session) {
	ch := rune(t.csiParam(s, 0, ' '))
	top := t.csiParam(s, 1, 1) - 1
	left := t.csiParam(s, 2, 1) - 1
	bottom := t.csiParam(s, 3, s.Rows()) - 1
	right := t.csiParam(s, 4, s.Cols()) - 1
	top, left, bottom, right = clampRect(s, top, left, bottom, right)

	t.Ops.Enqueue(Op{
		Kind:    OpFillRect,
		Session: s.Index,
		Rect:    Rect{Top: top, Left: left, Bottom: bottom, Right: right},
		Cell:    Cell{Char: ch, Flags: s.Attrs.Flags, Foreground: s.Attrs.Foreground, Background: s.Attrs.Background},
	})
}

// decERA implements DECERA: erase a rectangle to blanks.
func (t *Terminal) decERA(s *Session) {
	top := t.csiParam(s, 0, 1) - 1
	left := t.csiParam(s, 1, 1) - 1
	bottom := t.csiParam(s, 2, s.Rows()) - 1
	right := t.csiParam(s, 3, s.Cols()) - 1
	top, left, bottom, right = clampRect(s, top, left, bottom, right)
	t.Ops.Enqueue(Op{
		Kind:    OpFillRect,
		Session: s.Index,
		Rect:    Rect{Top: top, Left: left, Bottom: bottom, Right: right},
		Cell:    BlankCell,
	})
}

// dispatchDECSCA implements DECSCA (CSI Ps " q): Ps=1 marks subsequent
// writes protected (FlagProtected carried in the current SGR attribute
// state, same as any other attribute), Ps=0/2 clears it (§3 protected
// invariant).
func (t *Terminal) dispatchDECSCA(s *Session) {
	ps := t.csiParam(s, 0, 0)
	if ps == 1 {
		s.Attrs.Flags |= FlagProtected
	} else {
		s.Attrs.Flags &^= FlagProtected
	}
}

// dispatchDECRQCRA implements DECRQCRA (CSI Pid ; Pg ; Pt ; Pl ; Pb ; Pr
// * y): reports a 16-bit additive checksum over the requested rectangle
// as "DCS Pid ! ~ hhhh ST" (§4.2).
func (t *Terminal) dispatchDECRQCRA(s *Session) {
	id := t.csiParam(s, 0, 0)
	top := t.csiParam(s, 2, 1) - 1
	left := t.csiParam(s, 3, 1) - 1
	bottom := t.csiParam(s, 4, s.Rows()) - 1
	right := t.csiParam(s, 5, s.Cols()) - 1
	top, left, bottom, right = clampRect(s, top, left, bottom, right)

	var sum uint16
	for y := top; y <= bottom; y++ {
		for x := left; x <= right; x++ {
			if c := s.Active.At(x, y); c != nil {
				sum += uint16(c.Char)
			}
		}
	}
	t.emitResponse(s, []byte(fmt.Sprintf("\x1bP%d!~%04X\x1b\\", id, sum)))
}

// decSERA implements DECSERA: selective erase, respecting FlagProtected.
func (t *Terminal) decSERA(s *Session) {
	top := t.csiParam(s, 0, 1) - 1
	left := t.csiParam(s, 1, 1) - 1
	bottom := t.csiParam(s, 2, s.Rows()) - 1
	right := t.csiParam(s, 3, s.Cols()) - 1
	top, left, bottom, right = clampRect(s, top, left, bottom, right)
	t.Ops.Enqueue(Op{
		Kind:             OpFillRect,
		Session:          s.Index,
		Rect:             Rect{Top: top, Left: left, Bottom: bottom, Right: right},
		Cell:             BlankCell,
		RespectProtected: true,
	})
}

// handleDECRQSS answers "DCS $ q <name> ST" by reporting the current
// value of the requested setting as "DCS 1 $ r <reply> ST" (valid
// request) or "DCS 0 $ r ST" (unsupported), per §4.2. Only the settings
// this engine actually models are answered as valid.
func (t *Terminal) handleDECRQSS(s *Session, name []byte) {
	switch string(name) {
	case "m":
		reply := "0"
		if s.Attrs.Flags&FlagBold != 0 {
			reply += ";1"
		}
		if s.Attrs.Flags.HasUnderlineStyle() {
			reply += ";4"
		}
		if s.Attrs.Foreground.Kind != ColorDefault {
			reply += ";" + s.Attrs.Foreground.SGR(true)
		}
		if s.Attrs.Background.Kind != ColorDefault {
			reply += ";" + s.Attrs.Background.SGR(false)
		}
		t.emitResponse(s, []byte(fmt.Sprintf("\x1bP1$r%sm\x1b\\", reply)))
	case "r":
		t.emitResponse(s, []byte(fmt.Sprintf("\x1bP1$r%d;%dr\x1b\\", s.Region.Top+1, s.Region.Bottom+1)))
	case " q":
		t.emitResponse(s, []byte(fmt.Sprintf("\x1bP1$r%d q\x1b\\", s.Cursor.Style)))
	case "\"q":
		protect := 0
		if s.Attrs.Flags&FlagProtected != 0 {
			protect = 1
		}
		t.emitResponse(s, []byte(fmt.Sprintf("\x1bP1$r%d\"q\x1b\\", protect)))
	default:
		t.emitResponse(s, []byte("\x1bP0$r\x1b\\"))
	}
}
