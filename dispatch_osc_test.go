package kterm

import (
	"encoding/base64"
	"testing"
)

func TestOSC52ClipboardSetAndQuery(t *testing.T) {
	term := newTestTerminal(10, 5)
	payload := base64.StdEncoding.EncodeToString([]byte("copied text"))
	feed(term, "\x1b]52;c;"+payload+"\x07")

	s := term.GetSession()
	if got := s.ClipboardSelection['c']; got != "copied text" {
		t.Fatalf("ClipboardSelection['c'] = %q, want %q", got, "copied text")
	}

	var got []byte
	term.opts.ResponseCallback = func(t *Terminal, session int, data []byte) {
		got = append(got, data...)
	}
	feed(term, "\x1b]52;c;?\x07")
	if len(got) == 0 {
		t.Errorf("expected a clipboard query reply, got none")
	}
}

func TestOSC133PromptMarks(t *testing.T) {
	term := newTestTerminal(10, 5)
	s := term.GetSession()
	s.Cursor.Y = 2
	feed(term, "\x1b]133;A\x07")

	if len(s.PromptMarks) != 1 || s.PromptMarks[0].Kind != 'A' || s.PromptMarks[0].Row != 2 {
		t.Fatalf("PromptMarks = %+v", s.PromptMarks)
	}
}
