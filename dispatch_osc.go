package kterm

import (
	"bytes"
	"encoding/base64"
	"strconv"

	"github.com/aymanbagabas/go-osc52/v2"
)

func base64Decode(payload []byte) ([]byte, error) {
	return base64.StdEncoding.DecodeString(string(payload))
}

// completeOSC parses the accumulated OSC body ("Ps;Pt...") once its
// terminator (BEL or ST) arrives and dispatches by Ps (§4.2, SPEC_FULL
// shell-integration supplement).
func (t *Terminal) completeOSC(s *Session) {
	body := s.Parse.OSCBuf
	semi := bytes.IndexByte(body, ';')
	var ps string
	var pt []byte
	if semi < 0 {
		ps = string(body)
	} else {
		ps = string(body[:semi])
		pt = body[semi+1:]
	}
	num, err := strconv.Atoi(ps)
	if err != nil {
		return
	}
	switch num {
	case 0, 1, 2:
		// window/icon title — no title state tracked by the core; an
		// embedder that cares can watch for this through a future hook.
	case 52:
		t.handleOSC52(s, pt)
	case 133:
		t.handleOSC133(s, pt)
	}
}

// handleOSC52 implements the clipboard get/set extension: "Pc;Pd"
// where Pc is one or more selection letters and Pd is base64 payload or
// "?" for a query. The set payload is decoded with encoding/base64;
// the query reply is built with github.com/aymanbagabas/go-osc52/v2.
func (t *Terminal) handleOSC52(s *Session, pt []byte) {
	semi := bytes.IndexByte(pt, ';')
	if semi < 0 {
		return
	}
	selections := string(pt[:semi])
	payload := pt[semi+1:]
	if len(selections) == 0 {
		selections = "c"
	}

	if string(payload) == "?" {
		sel := selections[0]
		data := s.ClipboardSelection[sel]
		builder := osc52.New(data)
		if sel == 'p' {
			builder = builder.Primary()
		} else {
			builder = builder.Clipboard()
		}
		t.emitResponse(s, []byte(builder.String()))
		return
	}

	decoded, err := base64Decode(payload)
	if err != nil {
		t.reportError(LevelWarning, SourceParser, "OSC 52: malformed base64 payload")
		return
	}
	for i := 0; i < len(selections); i++ {
		s.ClipboardSelection[selections[i]] = string(decoded)
	}
}

// handleOSC133 implements the shell-integration prompt-marker supplement:
// "A" prompt start, "B" command start, "C" command end (SPEC_FULL.md
// supplemented feature). Marks are appended to a bounded ring so a
// long-running session doesn't grow this slice without limit.
const maxPromptMarks = 1000

func (t *Terminal) handleOSC133(s *Session, pt []byte) {
	if len(pt) == 0 {
		return
	}
	kind := pt[0]
	switch kind {
	case 'A', 'B', 'C':
		s.PromptMarks = append(s.PromptMarks, PromptMark{Row: s.Cursor.Y, Kind: kind})
		if len(s.PromptMarks) > maxPromptMarks {
			s.PromptMarks = s.PromptMarks[len(s.PromptMarks)-maxPromptMarks:]
		}
	}
}

// completeDCS handles the passthrough-style DCS bodies: DECRQSS
// ("$q<name>"), and the Gateway protocol's "GATE;class;id;command;..."
// framing (§4.6). Sixel/ReGIS bodies never reach here — they complete
// through their own sub-parsers' ST handling instead.
func (t *Terminal) completeDCS(s *Session) {
	ps := &s.Parse
	if len(ps.DCSIntermediates) == 1 && ps.DCSIntermediates[0] == '$' && ps.DCSFinal == 'q' {
		t.handleDECRQSS(s, ps.DCSBuf)
		return
	}
	if bytes.HasPrefix(ps.DCSBuf, []byte("GATE")) {
		t.handleGateway(s, ps.DCSBuf)
		return
	}
	if s.Printer.ControllerActive {
		t.handlePrinterData(s, ps.DCSBuf)
	}
}

// completeAPC dispatches a completed SOS/PM/APC string: Kitty's image
// protocol starts with "_G" immediately inside the APC introducer, the
// rest are silently absorbed (§4.1 scope: SOS/PM have no behavior
// defined by this engine beyond being parsed and discarded).
func (t *Terminal) completeAPC(s *Session) {
	buf := s.Parse.APCBuf
	if bytes.HasPrefix(buf, []byte("G")) {
		t.handleKittyAPC(s, buf[1:])
	}
}

// handlePrinterData forwards MC passthrough bytes to the embedder's
// PrinterCallback, matching the "Available" printer-controller status
// bit (§3 StatusBits).
func (t *Terminal) handlePrinterData(s *Session, data []byte) {
	if t.opts.PrinterCallback != nil {
		t.opts.PrinterCallback(t, s.Index, data)
	}
}
