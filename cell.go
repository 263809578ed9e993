package kterm

import "github.com/mattn/go-runewidth"

// CellFlags is a bitmask of per-cell rendering attributes.
type CellFlags uint32

const (
	FlagBold CellFlags = 1 << iota
	FlagFaint
	FlagItalic
	FlagUnderline // presence of any underline; style lives in UnderlineStyle()
	FlagBlinkClassic
	FlagBlinkSlow
	FlagBlinkBG
	FlagReverse
	FlagHidden
	FlagStrikethrough
	FlagFramed
	FlagEncircled
	FlagOverline
	FlagSuperscript
	FlagSubscript
	FlagProtected
	FlagSoftHyphen
	FlagWrapContinuation
	FlagDirty
)

// UnderlineStyle enumerates the colon-extended SGR 4:n underline styles.
type UnderlineStyle uint8

const (
	UnderlineNone UnderlineStyle = iota
	UnderlineSingle
	UnderlineDouble
	UnderlineCurly
	UnderlineDotted
	UnderlineDashed
)

// underlineShift packs UnderlineStyle into the top bits of CellFlags so
// a single uint32 still carries the full attribute set a VT420-class
// cell needs; FlagUnderline mirrors "style != UnderlineNone" for callers
// that only care whether underline is active at all.
const underlineShift = 24

func (f CellFlags) UnderlineStyle() UnderlineStyle {
	return UnderlineStyle((f >> underlineShift) & 0x7)
}

// HasUnderlineStyle reports whether any underline style is active.
func (f CellFlags) HasUnderlineStyle() bool {
	return f.UnderlineStyle() != UnderlineNone
}

func (f CellFlags) withUnderlineStyle(s UnderlineStyle) CellFlags {
	f &^= CellFlags(0x7) << underlineShift
	f |= CellFlags(s) << underlineShift
	if s == UnderlineNone {
		f &^= FlagUnderline
	} else {
		f |= FlagUnderline
	}
	return f
}

// Cell is a single grid position: a scalar value, its attributes, and
// its resolved foreground/background colors. CombiningMarks holds any
// combining characters that attach to Char without occupying their own
// column, per Unicode grapheme-cluster rules.
type Cell struct {
	Char              rune
	CombiningMarks    []rune
	Flags             CellFlags
	Foreground        Color
	Background        Color
	UnderlineColor    Color
	HasUnderlineColor bool
}

// BlankCell is the zero-attribute space cell new rows are filled with.
var BlankCell = Cell{
	Char:       ' ',
	Foreground: DefaultColor(),
	Background: DefaultColor(),
}

// Reset restores c to BlankCell in place, dropping any combining marks.
func (c *Cell) Reset() {
	c.Char = ' '
	c.CombiningMarks = nil
	c.Flags = 0
	c.Foreground = DefaultColor()
	c.Background = DefaultColor()
	c.UnderlineColor = Color{}
	c.HasUnderlineColor = false
}

func (c *Cell) HasFlag(f CellFlags) bool { return c.Flags&f != 0 }
func (c *Cell) SetFlag(f CellFlags)      { c.Flags |= f }
func (c *Cell) ClearFlag(f CellFlags)    { c.Flags &^= f }

// Width reports how many grid columns c's rune occupies: 2 for runes
// go-runewidth reports as wide (East-Asian wide/fullwidth), 1
// otherwise.
func (c *Cell) Width() int {
	if c.Char == 0 {
		return 1
	}
	w := runewidth.RuneWidth(c.Char)
	if w <= 0 {
		return 1
	}
	return w
}

// AppendCombining attaches a combining mark to the cell's base rune
// without consuming an additional column.
func (c *Cell) AppendCombining(r rune) {
	c.CombiningMarks = append(c.CombiningMarks, r)
}

// IsCombiningMark reports whether r is a Unicode combining character
// that should attach to the previous cell instead of starting a new one.
func IsCombiningMark(r rune) bool {
	return runewidth.RuneWidth(r) == 0 && r != 0
}
