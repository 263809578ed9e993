package kterm

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// ColorKind tags which of the four encodings a Color carries, matching
// the tagged-union the data model calls for: default, indexed-16,
// indexed-256, or RGB.
type ColorKind uint8

const (
	ColorDefault ColorKind = iota
	ColorIndexed16
	ColorIndexed256
	ColorRGB
)

// Color is a tagged union over the four ways a VT sequence can specify
// a foreground or background color.
type Color struct {
	Kind       ColorKind
	Index      uint8 // ColorIndexed16 (0-15) or ColorIndexed256 (0-255)
	R, G, B    uint8 // ColorRGB
}

// DefaultColor returns the "use the session/terminal default" color.
func DefaultColor() Color { return Color{Kind: ColorDefault} }

// Indexed16 builds a standard 16-color ANSI color, clamping out-of-range
// indices to white the way terminals conventionally do for bad input.
func Indexed16(idx int) Color {
	if idx < 0 || idx > 15 {
		idx = 7
	}
	return Color{Kind: ColorIndexed16, Index: uint8(idx)}
}

// Indexed256 builds a 256-color palette reference.
func Indexed256(idx int) Color {
	if idx < 0 || idx > 255 {
		idx = 7
	}
	return Color{Kind: ColorIndexed256, Index: uint8(idx)}
}

// RGBColor builds a 24-bit true color.
func RGBColor(r, g, b uint8) Color {
	return Color{Kind: ColorRGB, R: r, G: g, B: b}
}

// ANSI16RGB is the standard 16-color ANSI palette, in ANSI order, used
// both to resolve ColorIndexed16 cells and to seed the first 16 entries
// of Palette256.
var ANSI16RGB = [16][3]uint8{
	{0, 0, 0}, {170, 0, 0}, {0, 170, 0}, {170, 85, 0},
	{0, 0, 170}, {170, 0, 170}, {0, 170, 170}, {170, 170, 170},
	{85, 85, 85}, {255, 85, 85}, {85, 255, 85}, {255, 255, 85},
	{85, 85, 255}, {255, 85, 255}, {85, 255, 255}, {255, 255, 255},
}

// Palette256RGB computes the RGB value for any 256-color palette index:
// 0-15 the standard ANSI colors, 16-231 a 6x6x6 color cube, 232-255 a
// 24-step grayscale ramp.
func Palette256RGB(idx int) (r, g, b uint8) {
	if idx < 0 {
		idx = 0
	} else if idx > 255 {
		idx = 255
	}
	if idx < 16 {
		c := ANSI16RGB[idx]
		return c[0], c[1], c[2]
	}
	if idx < 232 {
		idx -= 16
		bv := idx % 6
		gv := (idx / 6) % 6
		rv := idx / 36
		return uint8(rv * 51), uint8(gv * 51), uint8(bv * 51)
	}
	gray := uint8((idx-232)*10 + 8)
	return gray, gray, gray
}

// NewPalette256 builds the shared 256-entry terminal color palette
// described in the data model: a Terminal owns exactly one, and
// Gateway/ReGIS/Sixel commands may overwrite individual entries.
func NewPalette256() [256]Color {
	var p [256]Color
	for i := 0; i < 256; i++ {
		r, g, b := Palette256RGB(i)
		p[i] = RGBColor(r, g, b)
	}
	return p
}

// RGB resolves c to concrete 24-bit components against the given
// 256-entry palette (used for ColorIndexed16/256) and default fg/bg
// (used for ColorDefault).
func (c Color) RGB(palette *[256]Color, defaultColor Color) (r, g, b uint8) {
	switch c.Kind {
	case ColorDefault:
		return defaultColor.R, defaultColor.G, defaultColor.B
	case ColorIndexed16, ColorIndexed256:
		resolved := palette[c.Index]
		return resolved.R, resolved.G, resolved.B
	default:
		return c.R, c.G, c.B
	}
}

// colorfulOf converts c to a go-colorful.Color for the perceptual
// distance comparisons in NearestPaletteIndex.
func (c Color) colorfulOf() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

// NearestPaletteIndex returns the palette entry whose RGB value is
// perceptually closest to (r, g, b), using CIE76 Lab distance via
// github.com/lucasb-eyer/go-colorful. This replaces the naive
// nearest-Euclidean-RGB search a hand-rolled quantizer would use.
func NearestPaletteIndex(palette *[256]Color, r, g, b uint8) int {
	target := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	best := 0
	bestDist := -1.0
	for i := 0; i < 256; i++ {
		d := palette[i].colorfulOf().DistanceLab(target)
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

// SGR returns the SGR parameter sequence (without the final 'm') that
// would reproduce c as a foreground (isFg) or background color, used by
// DECRQSS's SGR reply.
func (c Color) SGR(isFg bool) string {
	switch c.Kind {
	case ColorDefault:
		if isFg {
			return "39"
		}
		return "49"
	case ColorIndexed16:
		idx := int(c.Index)
		if idx < 8 {
			if isFg {
				return fmt.Sprintf("%d", 30+idx)
			}
			return fmt.Sprintf("%d", 40+idx)
		}
		if isFg {
			return fmt.Sprintf("%d", 90+idx-8)
		}
		return fmt.Sprintf("%d", 100+idx-8)
	case ColorIndexed256:
		if isFg {
			return fmt.Sprintf("38;5;%d", c.Index)
		}
		return fmt.Sprintf("48;5;%d", c.Index)
	default:
		if isFg {
			return fmt.Sprintf("38;2;%d;%d;%d", c.R, c.G, c.B)
		}
		return fmt.Sprintf("48;2;%d;%d;%d", c.R, c.G, c.B)
	}
}
