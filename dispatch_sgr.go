package kterm

// dispatchSGR applies CSI ... m (Select Graphic Rendition), including
// the colon-extended 256/true-color and underline-style forms (§4.2).
// An empty parameter list means "SGR 0" (reset), matching ECMA-48.
func (t *Terminal) dispatchSGR(s *Session) {
	ps := &s.Parse
	if len(ps.CSIParams) == 0 {
		s.Attrs = defaultSGRAttrs()
		return
	}

	i := 0
	for i < len(ps.CSIParams) {
		p := ps.CSIParams[i]
		switch {
		case p == 0:
			s.Attrs = defaultSGRAttrs()
		case p == 1:
			s.Attrs.Flags |= FlagBold
		case p == 2:
			s.Attrs.Flags |= FlagFaint
		case p == 3:
			s.Attrs.Flags |= FlagItalic
		case p == 4:
			style := UnderlineSingle
			if t.csiColonAt(s, i+1) && i+1 < len(ps.CSIParams) {
				i++
				style = UnderlineStyle(ps.CSIParams[i])
			}
			s.Attrs.Flags = s.Attrs.Flags.withUnderlineStyle(style)
		case p == 5:
			s.Attrs.Flags |= FlagBlinkClassic | FlagBlinkBG
			s.Attrs.Flags &^= FlagBlinkSlow
		case p == 6:
			s.Attrs.Flags |= FlagBlinkSlow
		case p == 7:
			s.Attrs.Flags |= FlagReverse
		case p == 8:
			s.Attrs.Flags |= FlagHidden
		case p == 9:
			s.Attrs.Flags |= FlagStrikethrough
		case p == 21:
			s.Attrs.Flags = s.Attrs.Flags.withUnderlineStyle(UnderlineDouble)
		case p == 22:
			s.Attrs.Flags &^= FlagBold | FlagFaint
		case p == 23:
			s.Attrs.Flags &^= FlagItalic
		case p == 24:
			s.Attrs.Flags = s.Attrs.Flags.withUnderlineStyle(UnderlineNone)
		case p == 25:
			s.Attrs.Flags &^= FlagBlinkSlow | FlagBlinkClassic | FlagBlinkBG
		case p == 27:
			s.Attrs.Flags &^= FlagReverse
		case p == 28:
			s.Attrs.Flags &^= FlagHidden
		case p == 29:
			s.Attrs.Flags &^= FlagStrikethrough
		case p >= 30 && p <= 37:
			s.Attrs.Foreground = Indexed16(p - 30)
		case p == 38:
			consumed, c := t.parseExtendedColor(s, i)
			s.Attrs.Foreground = c
			i += consumed
		case p == 39:
			s.Attrs.Foreground = DefaultColor()
		case p >= 40 && p <= 47:
			s.Attrs.Background = Indexed16(p - 40)
		case p == 48:
			consumed, c := t.parseExtendedColor(s, i)
			s.Attrs.Background = c
			i += consumed
		case p == 49:
			s.Attrs.Background = DefaultColor()
		case p == 51:
			s.Attrs.Flags |= FlagFramed
		case p == 52:
			s.Attrs.Flags |= FlagEncircled
		case p == 53:
			s.Attrs.Flags |= FlagOverline
		case p == 54:
			s.Attrs.Flags &^= FlagFramed | FlagEncircled
		case p == 55:
			s.Attrs.Flags &^= FlagOverline
		case p == 58:
			consumed, c := t.parseExtendedColor(s, i)
			s.Attrs.UnderlineColor = c
			s.Attrs.HasUnderlineColor = true
			i += consumed
		case p == 59:
			s.Attrs.HasUnderlineColor = false
		case p == 73:
			s.Attrs.Flags |= FlagSuperscript
			s.Attrs.Flags &^= FlagSubscript
		case p == 74:
			s.Attrs.Flags |= FlagSubscript
			s.Attrs.Flags &^= FlagSuperscript
		case p == 75:
			s.Attrs.Flags &^= FlagSuperscript | FlagSubscript
		case p >= 90 && p <= 97:
			s.Attrs.Foreground = Indexed16(p - 90 + 8)
		case p >= 100 && p <= 107:
			s.Attrs.Background = Indexed16(p - 100 + 8)
		}
		i++
	}
}

// parseExtendedColor handles the 38/48/58 extended-color forms in both
// the colon-subparameter style (38:2:r:g:b, 38:5:idx) and the legacy
// semicolon style (38;2;r;g;b, 38;5;idx). It returns how many
// additional parameters beyond index i it consumed.
func (t *Terminal) parseExtendedColor(s *Session, i int) (int, Color) {
	ps := &s.Parse
	if i+1 >= len(ps.CSIParams) {
		return 0, DefaultColor()
	}
	mode := ps.CSIParams[i+1]
	switch mode {
	case 5:
		if i+2 < len(ps.CSIParams) {
			return 2, Indexed256(ps.CSIParams[i+2])
		}
		return 1, DefaultColor()
	case 2:
		// true-color: "38;2;r;g;b", "38:2:r:g:b" (no colorspace id) or
		// "38:2:cs:r:g:b"; the colorspace form is recognized only when a
		// fourth colon-separated component follows the 2, so a semicolon
		// form followed by further SGR parameters is still read as r;g;b.
		remaining := len(ps.CSIParams) - (i + 2)
		if remaining >= 4 && t.csiColonAt(s, i+5) {
			r := ps.CSIParams[i+3]
			g := ps.CSIParams[i+4]
			b := ps.CSIParams[i+5]
			return 5, RGBColor(uint8(r), uint8(g), uint8(b))
		}
		if remaining >= 3 {
			r := ps.CSIParams[i+2]
			g := ps.CSIParams[i+3]
			b := ps.CSIParams[i+4]
			return 4, RGBColor(uint8(r), uint8(g), uint8(b))
		}
		return 1, DefaultColor()
	default:
		return 1, DefaultColor()
	}
}
