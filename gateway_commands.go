package kterm

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"
)

// resolveGatewaySession turns a Gateway session-index argument into a
// concrete session index: "ACTIVE" means the terminal's current active
// session, anything else must parse as a decimal index (§4.5).
func (t *Terminal) resolveGatewaySession(id string) (int, bool) {
	if id == "ACTIVE" {
		return t.ActiveSession, true
	}
	n, ok := atoiIndex(id)
	if !ok || n < 0 || n >= MaxSessions {
		return 0, false
	}
	return n, true
}

func clampSessionIndex(n int) int {
	if n < 0 {
		return 0
	}
	if n >= MaxSessions {
		return MaxSessions - 1
	}
	return n
}

func gatewayIntArg(tok []string, idx int) (int, bool) {
	if idx >= len(tok) {
		return 0, false
	}
	return atoiIndex(tok[idx])
}

func parseGatewayBool(tok string) (bool, bool) {
	return NewScanner([]byte(tok)).NextBool()
}

// gatewaySet implements the SET command's subcommands: SESSION, WIDTH,
// HEIGHT, SIZE, DEBUG, ATTR, SIXEL_SESSION (§4.5). Subcommand words are
// case-sensitive; an unparseable numeric field leaves the target
// untouched rather than zeroing it.
func (t *Terminal) gatewaySet(tok []string) {
	if len(tok) == 0 {
		return
	}
	switch tok[0] {
	case "SESSION":
		if n, ok := gatewayIntArg(tok, 1); ok {
			t.GatewayTargetSession = clampSessionIndex(n)
		}
	case "WIDTH":
		if n, ok := gatewayIntArg(tok, 1); ok {
			t.gatewayResizeTarget(clampDim(n), -1)
		}
	case "HEIGHT":
		if n, ok := gatewayIntArg(tok, 1); ok {
			t.gatewayResizeTarget(-1, clampDim(n))
		}
	case "SIZE":
		w, ok1 := gatewayIntArg(tok, 1)
		h, ok2 := gatewayIntArg(tok, 2)
		if ok1 && ok2 {
			t.gatewayResizeTarget(clampDim(w), clampDim(h))
		}
	case "DEBUG":
		if len(tok) > 1 {
			if v, ok := parseGatewayBool(tok[1]); ok {
				t.gatewayTarget().Status.Debugging = v
			}
		}
	case "ATTR":
		t.gatewaySetAttr(tok[1:])
	case "SIXEL_SESSION":
		if n, ok := gatewayIntArg(tok, 1); ok {
			t.SixelTargetSession = clampSessionIndex(n)
		}
	default:
		t.reportError(LevelInfo, SourceGateway, "unrecognized SET subcommand")
	}
}

// gatewayResetCmd implements RESET's subcommands: SESSION clears the
// sticky gateway target, SIXEL_SESSION clears the sixel routing
// override, SIXEL reinitializes the target's sixel sub-state (§4.5).
func (t *Terminal) gatewayResetCmd(tok []string) {
	if len(tok) == 0 {
		return
	}
	switch tok[0] {
	case "SESSION":
		t.GatewayTargetSession = -1
	case "SIXEL_SESSION":
		t.SixelTargetSession = -1
	case "SIXEL":
		t.gatewayTarget().Sixel = SixelState{}
	default:
		t.reportError(LevelInfo, SourceGateway, "unrecognized RESET subcommand")
	}
}

// gatewayInit implements INIT's subcommands: SIXEL_SESSION reinitializes
// the sixel sub-state of the session named by its argument, or the
// current gateway target if omitted (§4.5).
func (t *Terminal) gatewayInit(tok []string) {
	if len(tok) == 0 {
		return
	}
	switch tok[0] {
	case "SIXEL_SESSION":
		target := t.gatewayTarget()
		if n, ok := gatewayIntArg(tok, 1); ok {
			if s := t.Session(clampSessionIndex(n)); s != nil {
				target = s
			}
		}
		target.Sixel = SixelState{}
	default:
		t.reportError(LevelInfo, SourceGateway, "unrecognized INIT subcommand")
	}
}

// gatewaySetAttr implements SET ATTR KEY=VAL[;KEY=VAL...], editing the
// target session's current SGR state directly (§4.5). Unrecognized keys
// and malformed values are ignored field-by-field.
func (t *Terminal) gatewaySetAttr(pairs []string) {
	s := t.gatewayTarget()
	for _, pair := range pairs {
		key, val, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		switch key {
		case "BOLD":
			if v, ok := parseGatewayBool(val); ok {
				setFlagBool(&s.Attrs.Flags, FlagBold, v)
			}
		case "ITALIC":
			if v, ok := parseGatewayBool(val); ok {
				setFlagBool(&s.Attrs.Flags, FlagItalic, v)
			}
		case "UNDERLINE":
			if v, ok := parseGatewayBool(val); ok {
				style := UnderlineNone
				if v {
					style = UnderlineSingle
				}
				s.Attrs.Flags = s.Attrs.Flags.withUnderlineStyle(style)
			}
		case "REVERSE":
			if v, ok := parseGatewayBool(val); ok {
				setFlagBool(&s.Attrs.Flags, FlagReverse, v)
			}
		case "FG":
			if n, ok := atoiIndex(val); ok {
				s.Attrs.Foreground = Indexed256(n)
			}
		case "BG":
			if n, ok := atoiIndex(val); ok {
				s.Attrs.Background = Indexed256(n)
			}
		}
	}
}

func setFlagBool(f *CellFlags, bit CellFlags, v bool) {
	if v {
		*f |= bit
	} else {
		*f &^= bit
	}
}

// gatewayResizeTarget resizes the current gateway target session,
// bypassing any pane-tree resize throttle since the Gateway is an
// explicit administrative channel (§4.4, §4.5). cols/rows of -1 keep
// that axis unchanged.
func (t *Terminal) gatewayResizeTarget(cols, rows int) {
	s := t.gatewayTarget()
	if cols < 0 {
		cols = s.Active.Cols
	}
	if rows < 0 {
		rows = s.Active.Rows
	}
	t.Ops.Enqueue(Op{Kind: OpResizeGrid, Session: s.Index, Cols: cols, Rows: rows})
	if s.Modes.AltScreen {
		s.Primary.Resize(cols, rows)
	} else {
		s.Alternate.Resize(cols, rows)
	}
	s.resetTabStops()
	if t.opts.SessionResizeCallback != nil {
		t.opts.SessionResizeCallback(t, s.Index, cols, rows)
	}
}

// handleGatewayPipe implements the PIPE command: VT injects raw bytes
// into the target session's input pipeline as if the host itself had
// written them, in RAW/HEX/B64 encoding; BANNER renders an SGR-colored
// banner line from the given options (§4.5). The VT payload is sliced
// out of the raw params rather than a semicolon-split token list so a
// RAW/HEX/B64 payload may itself contain ';' bytes.
func (t *Terminal) handleGatewayPipe(receivedBy *Session, params []byte) {
	s := t.gatewayTarget()
	semi := bytes.IndexByte(params, ';')
	var command string
	var rest []byte
	if semi < 0 {
		command = string(params)
	} else {
		command = string(params[:semi])
		rest = params[semi+1:]
	}

	switch command {
	case "VT":
		semi2 := bytes.IndexByte(rest, ';')
		if semi2 < 0 {
			t.reportError(LevelWarning, SourceGateway, "PIPE VT: expected encoding;payload")
			return
		}
		encoding := string(rest[:semi2])
		payload := rest[semi2+1:]
		data, err := decodePipePayload(encoding, payload)
		if err != nil {
			t.reportError(LevelWarning, SourceGateway, "PIPE VT: malformed payload")
			return
		}
		t.WriteToSession(s.Index, data)
	case "BANNER":
		t.WriteToSession(s.Index, renderGatewayBanner(splitParams(rest), s.Cols()))
	default:
		t.reportError(LevelInfo, SourceGateway, "unrecognized PIPE command")
	}
}

func decodePipePayload(encoding string, payload []byte) ([]byte, error) {
	switch encoding {
	case "RAW":
		return payload, nil
	case "HEX":
		out := make([]byte, hex.DecodedLen(len(payload)))
		n, err := hex.Decode(out, payload)
		if err != nil {
			return nil, err
		}
		return out[:n], nil
	case "B64":
		return base64Decode(payload)
	default:
		return payload, nil
	}
}

// renderGatewayBanner builds the PIPE BANNER payload: optional ALIGN
// padding against the session's column count and an optional two-color
// GRADIENT applied per character via truecolor SGR, matching the option
// set {FIXED, FONT=name, ALIGN={LEFT,CENTER,RIGHT}, GRADIENT=#RRGGBB|
// #RRGGBB, TEXT=…} (§4.5). FONT and FIXED are accepted and otherwise
// have no effect — this engine has no font atlas to select into.
func renderGatewayBanner(opts []string, cols int) []byte {
	var text, align string
	var gradient bool
	var start, end [3]uint8
	for _, opt := range opts {
		key, val, ok := strings.Cut(opt, "=")
		if !ok {
			key = opt
		}
		switch key {
		case "TEXT":
			text = val
		case "ALIGN":
			align = val
		case "GRADIENT":
			if c1, c2, ok := parseGradient(val); ok {
				start, end, gradient = c1, c2, true
			}
		}
	}
	if text == "" {
		return nil
	}
	if cols > 0 {
		text = alignBannerText(text, align, cols)
	}

	var buf bytes.Buffer
	runes := []rune(text)
	for i, r := range runes {
		if gradient {
			c := lerpColor(start, end, float64(i)/float64(max(1, len(runes)-1)))
			fmt.Fprintf(&buf, "\x1b[38;2;%d;%d;%dm", c[0], c[1], c[2])
		}
		buf.WriteRune(r)
	}
	if gradient {
		buf.WriteString("\x1b[39m")
	}
	return buf.Bytes()
}

func alignBannerText(text, align string, cols int) string {
	pad := cols - len([]rune(text))
	if pad <= 0 {
		return text
	}
	switch align {
	case "RIGHT":
		return strings.Repeat(" ", pad) + text
	case "CENTER":
		left := pad / 2
		return strings.Repeat(" ", left) + text + strings.Repeat(" ", pad-left)
	default: // "LEFT" or unspecified
		return text
	}
}

func parseGradient(v string) ([3]uint8, [3]uint8, bool) {
	parts := strings.SplitN(v, "|", 2)
	if len(parts) != 2 {
		return [3]uint8{}, [3]uint8{}, false
	}
	c1, ok1 := parseHexColor(parts[0])
	c2, ok2 := parseHexColor(parts[1])
	if !ok1 || !ok2 {
		return [3]uint8{}, [3]uint8{}, false
	}
	return c1, c2, true
}

func parseHexColor(s string) ([3]uint8, bool) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return [3]uint8{}, false
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return [3]uint8{}, false
	}
	return [3]uint8{raw[0], raw[1], raw[2]}, true
}

func lerpColor(a, b [3]uint8, t float64) [3]uint8 {
	lerp := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return [3]uint8{lerp(a[0], b[0]), lerp(a[1], b[1]), lerp(a[2], b[2])}
}
