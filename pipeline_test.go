package kterm

import "testing"

func TestPipelineWriteReadRoundTrip(t *testing.T) {
	var p Pipeline
	n := p.Write([]byte("hello"))
	if n != 5 {
		t.Fatalf("Write() = %d, want 5", n)
	}
	for _, want := range []byte("hello") {
		b, ok := p.ReadByte()
		if !ok || b != want {
			t.Fatalf("ReadByte() = %q,%v want %q", b, ok, want)
		}
	}
	if _, ok := p.ReadByte(); ok {
		t.Errorf("expected empty pipeline after draining")
	}
}

func TestPipelineWriteTruncatesWhenFull(t *testing.T) {
	var p Pipeline
	big := make([]byte, p.Cap()+10)
	n := p.Write(big)
	if n != p.Cap() {
		t.Errorf("Write() on a full buffer = %d, want %d (capacity)", n, p.Cap())
	}
	second := p.Write([]byte{1, 2, 3})
	if second != 0 {
		t.Errorf("Write() on an already-full pipeline = %d, want 0", second)
	}
}

func TestFlowControlEdgeTriggered(t *testing.T) {
	term := newTestTerminal(10, 5)
	s := term.GetSession()
	s.Modes.DECXRLM = true

	filler := make([]byte, s.Pipeline.Cap()*80/100)
	s.Pipeline.Write(filler)
	term.checkFlowControl(s)
	term.checkFlowControl(s) // repeated call while still high must not re-emit

	if len(s.ResponseBuf) != 1 || s.ResponseBuf[0] != xoffByte {
		t.Fatalf("ResponseBuf = %v, want exactly one XOFF byte", s.ResponseBuf)
	}
}
