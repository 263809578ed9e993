package main

import (
	"github.com/gdamore/tcell/v2"

	"kterm"
)

// renderer draws one session's active grid onto a tcell.Screen,
// differentially: only rows flagged dirty by the engine get redrawn,
// matching the "differential rendering for efficiency" approach the
// pack's CLI adapters use, ported from a raw-ANSI diff onto tcell's
// own cell buffer.
type renderer struct {
	screen tcell.Screen
}

func newRenderer() (*renderer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	return &renderer{screen: screen}, nil
}

func (r *renderer) Close() {
	r.screen.Fini()
}

func (r *renderer) Size() (cols, rows int) {
	return r.screen.Size()
}

// Draw paints every dirty row of s's active grid and positions the
// cursor, then clears the dirty flags it consumed.
func (r *renderer) Draw(s *kterm.Session) {
	g := s.Active
	for y := 0; y < g.Rows; y++ {
		if !g.RowDirty[y] {
			continue
		}
		for x := 0; x < g.Cols; x++ {
			cell := g.At(x, y)
			if cell == nil {
				continue
			}
			r.screen.SetContent(x, y, cell.Char, cell.CombiningMarks, cellStyle(cell))
		}
	}
	g.ClearDirty()
	if s.Cursor.Visible {
		r.screen.ShowCursor(s.Cursor.X, s.Cursor.Y)
	} else {
		r.screen.HideCursor()
	}
	r.screen.Show()
}

func cellStyle(c *kterm.Cell) tcell.Style {
	style := tcell.StyleDefault
	if c.Foreground.Kind != kterm.ColorDefault {
		fr, fg, fb := colorRGB(c.Foreground)
		style = style.Foreground(tcell.NewRGBColor(int32(fr), int32(fg), int32(fb)))
	}
	if c.Background.Kind != kterm.ColorDefault {
		br, bg, bb := colorRGB(c.Background)
		style = style.Background(tcell.NewRGBColor(int32(br), int32(bg), int32(bb)))
	}
	if c.HasFlag(kterm.FlagBold) {
		style = style.Bold(true)
	}
	if c.HasFlag(kterm.FlagItalic) {
		style = style.Italic(true)
	}
	if c.HasFlag(kterm.FlagUnderline) {
		style = style.Underline(true)
	}
	if c.HasFlag(kterm.FlagReverse) {
		style = style.Reverse(true)
	}
	if c.HasFlag(kterm.FlagStrikethrough) {
		style = style.StrikeThrough(true)
	}
	if c.HasFlag(kterm.FlagBlinkSlow) || c.HasFlag(kterm.FlagBlinkClassic) {
		style = style.Blink(true)
	}
	return style
}

func colorRGB(c kterm.Color) (uint8, uint8, uint8) {
	switch c.Kind {
	case kterm.ColorDefault:
		return 0, 0, 0
	case kterm.ColorIndexed16, kterm.ColorIndexed256:
		return kterm.Palette256RGB(int(c.Index))
	default:
		return c.R, c.G, c.B
	}
}
