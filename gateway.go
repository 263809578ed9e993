package kterm

import "bytes"

// handleGateway parses a completed Gateway DCS body of the form
// "GATE;class;id;command;params" and dispatches it (§4.5). The Gateway
// is a side channel distinct from the VT byte stream: it lets a
// multiplexing host address/configure sessions and the sixel target
// without those control messages ever reaching a session's own parser.
// "KTERM" is the only class this engine dispatches itself — COMMAND is
// then one of SET/RESET/INIT/PIPE, each carrying its own subcommand as
// the first semicolon-delimited param. Any other class is handed to
// the embedder's GatewayCallback verbatim.
func (t *Terminal) handleGateway(receivedBy *Session, buf []byte) {
	fields := bytes.SplitN(buf, []byte(";"), 5)
	if len(fields) < 4 {
		t.reportError(LevelWarning, SourceGateway, "malformed Gateway frame: too few fields")
		return
	}
	class := string(fields[1])
	id := string(fields[2])
	command := string(fields[3])
	var params []byte
	if len(fields) == 5 {
		params = fields[4]
	}

	if class != "KTERM" {
		if t.opts.GatewayCallback != nil {
			t.opts.GatewayCallback(t, class, id, command, splitParams(params))
		} else {
			t.reportError(LevelInfo, SourceGateway, "unrecognized Gateway class")
		}
		return
	}

	switch command {
	case "SET":
		t.gatewaySet(splitParams(params))
	case "RESET":
		t.gatewayResetCmd(splitParams(params))
	case "INIT":
		t.gatewayInit(splitParams(params))
	case "PIPE":
		t.handleGatewayPipe(receivedBy, params)
	default:
		t.reportError(LevelInfo, SourceGateway, "unrecognized Gateway command")
	}
}

func splitParams(params []byte) []string {
	if len(params) == 0 {
		return nil
	}
	parts := bytes.Split(params, []byte(";"))
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = string(p)
	}
	return out
}

func atoiIndex(tok string) (int, bool) {
	sc := NewScanner([]byte(tok))
	return sc.NextInt()
}
