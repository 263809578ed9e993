package kterm

import (
	"encoding/base64"
	"testing"
)

func TestKittyAPCFallsBackToPlaceholderOnBadImage(t *testing.T) {
	term := newTestTerminal(20, 10)
	payload := base64.StdEncoding.EncodeToString([]byte("not a real png"))
	feed(term, "\x1b_Gf=100,m=0;"+payload+"\x1b\\")

	s := term.GetSession()
	cell := s.Active.At(s.Cursor.X, s.Cursor.Y)
	if cell == nil || cell.Char != '▒' {
		t.Fatalf("expected placeholder cell at cursor, got %+v", cell)
	}
}

func TestKittyAPCMultiChunkReassembly(t *testing.T) {
	term := newTestTerminal(20, 10)
	part1 := base64.StdEncoding.EncodeToString([]byte("AAAA"))
	part2 := base64.StdEncoding.EncodeToString([]byte("BBBB"))
	feed(term, "\x1b_Gf=100,m=1;"+part1+"\x1b\\")

	s := term.GetSession()
	if !s.Kitty.pending {
		t.Fatalf("expected transmission to stay pending after m=1 chunk")
	}

	feed(term, "\x1b_Gm=0;"+part2+"\x1b\\")
	if s.Kitty.pending {
		t.Fatalf("expected transmission to complete after m=0 chunk")
	}
}
