package kterm

import "github.com/google/uuid"

// MaxSessions is the fixed capacity of a Terminal's session array (§3).
const MaxSessions = 16

// DefaultScrollbackCapacity is the extra rows per session allocated
// when Options.ScrollbackCapacity is left at zero.
const DefaultScrollbackCapacity = 500

// ResponseCallback is how the engine writes bytes back toward the host
// (§6): DSR replies, DECRQSS answers, XON/XOFF, gateway acknowledgements.
type ResponseCallback func(t *Terminal, session int, data []byte)

// SessionResizeCallback fires after a resize commits for one session.
type SessionResizeCallback func(t *Terminal, session, cols, rows int)

// GatewayCallback fires for a Gateway class/command the core doesn't
// recognize, handing the embedder the raw tokens.
type GatewayCallback func(t *Terminal, class, id, command string, params []string)

// PrinterCallback receives Media-Copy / printer-controller output.
type PrinterCallback func(t *Terminal, session int, data []byte)

// ErrorLevel is the severity passed to ErrorCallback (§7).
type ErrorLevel int

const (
	LevelInfo ErrorLevel = iota
	LevelWarning
	LevelError
)

// ErrorSource identifies which subsystem raised an error (§7).
type ErrorSource int

const (
	SourceParser ErrorSource = iota
	SourceGateway
	SourceSystem
	SourceGraphics
)

// ErrorCallback receives a formatted diagnostic plus a per-update-cycle
// correlation id (DOMAIN STACK: github.com/google/uuid), so an embedder
// can group a burst of WARNINGs raised while parsing a single host
// write.
type ErrorCallback func(t *Terminal, level ErrorLevel, source ErrorSource, cycleID string, message string)

// Options configures a Terminal at creation time (§6).
type Options struct {
	Width, Height        int
	ScrollbackCapacity   int
	ResponseCallback     ResponseCallback
	PrinterCallback      PrinterCallback
	GatewayCallback      GatewayCallback
	ErrorCallback        ErrorCallback
	SessionResizeCallback SessionResizeCallback
	UserData             any
}

func clampDim(v int) int {
	if v < 1 {
		return 1
	}
	if v > 2048 {
		return 2048
	}
	return v
}

// Terminal is the process-wide owner of every session, the pane tree,
// the shared palette, the op queue, and the registered collaborator
// callbacks (§3). All mutation happens on the single logical thread
// that drives Update (§5) — nothing here needs interior-mutability
// synchronization beyond the Pipeline's producer/consumer handoff.
type Terminal struct {
	Sessions      [MaxSessions]*Session
	ActiveSession int

	Root         *Pane
	FocusedPane  *Pane

	GatewayTargetSession int // -1 = route to active
	SixelTargetSession   int // -1 = route to active

	Palette [256]Color

	Ops OpQueue

	opts Options

	Debug bool

	width, height int

	lastResizeTime int64 // monotonic-ish counter; 0 is the "never resized" sentinel

	currentCycleID string
}

// NewTerminal constructs a Terminal per Options and opens session 0.
// It never returns nil: width and height are clamped to 1..2048 rather
// than rejected.
func NewTerminal(opts Options) *Terminal {
	t := &Terminal{
		opts:                 opts,
		GatewayTargetSession: -1,
		SixelTargetSession:   -1,
		Palette:              NewPalette256(),
		ActiveSession:        0,
	}
	t.width = clampDim(opts.Width)
	t.height = clampDim(opts.Height)
	if t.opts.ScrollbackCapacity <= 0 {
		t.opts.ScrollbackCapacity = DefaultScrollbackCapacity
	}
	t.InitSession(0)
	t.Root = &Pane{Kind: PaneLeaf, SessionIndex: 0}
	t.FocusedPane = t.Root
	return t
}

// InitSession opens session i with the terminal's current geometry
// (§4.4). It is a no-op if the index is out of range.
func (t *Terminal) InitSession(i int) {
	if i < 0 || i >= MaxSessions {
		return
	}
	t.Sessions[i] = NewSession(i, t.width, t.height, t.opts.ScrollbackCapacity)
}

// CloseSession marks a session closed; it is never reused by the
// session array until the terminal is destroyed (matching §3's
// lifecycle: sessions live until explicit close or terminal teardown).
func (t *Terminal) CloseSession(i int) {
	if i < 0 || i >= MaxSessions || t.Sessions[i] == nil {
		return
	}
	t.Sessions[i].SessionOpen = false
}

// GetSession resolves to the active session, matching GET_SESSION(term).
func (t *Terminal) GetSession() *Session {
	return t.Sessions[t.ActiveSession]
}

// Session returns session i, or nil if unopened/out of range.
func (t *Terminal) Session(i int) *Session {
	if i < 0 || i >= MaxSessions {
		return nil
	}
	return t.Sessions[i]
}

// SetActiveSession updates ActiveSession (§4.4); a no-op when i is
// already active or the session isn't open.
func (t *Terminal) SetActiveSession(i int) {
	if i < 0 || i >= MaxSessions || i == t.ActiveSession {
		return
	}
	if t.Sessions[i] == nil || !t.Sessions[i].SessionOpen {
		return
	}
	t.ActiveSession = i
}

// SetResponseCallback, SetGatewayCallback, SetErrorCallback and
// SetSessionResizeCallback replace the matching Options callback.
func (t *Terminal) SetResponseCallback(cb ResponseCallback) { t.opts.ResponseCallback = cb }

func (t *Terminal) SetGatewayCallback(cb GatewayCallback) { t.opts.GatewayCallback = cb }

func (t *Terminal) SetErrorCallback(cb ErrorCallback) { t.opts.ErrorCallback = cb }

func (t *Terminal) SetSessionResizeCallback(cb SessionResizeCallback) {
	t.opts.SessionResizeCallback = cb
}

// gatewayTarget resolves the session a Gateway operation should affect:
// the explicit target if set, else the active session (§4.5).
// sixelTarget does the same for sixel, ReGIS and Kitty images, falling
// back to the receiving session (§4.6).
func (t *Terminal) gatewayTarget() *Session {
	if t.GatewayTargetSession >= 0 {
		if s := t.Session(t.GatewayTargetSession); s != nil {
			return s
		}
	}
	return t.GetSession()
}

func (t *Terminal) sixelTarget(receivedBy *Session) *Session {
	if t.SixelTargetSession >= 0 {
		if s := t.Session(t.SixelTargetSession); s != nil {
			return s
		}
	}
	return receivedBy
}

// WriteString pushes host bytes into the active session's pipeline,
// the simplest form of the imperative write API (§6 write_string).
func (t *Terminal) WriteString(str string) int {
	return t.GetSession().Pipeline.Write([]byte(str))
}

// WriteToSession pushes bytes into a specific session's pipeline
// (used by an embedder's host-read loop and by Gateway PIPE commands).
func (t *Terminal) WriteToSession(session int, data []byte) int {
	s := t.Session(session)
	if s == nil {
		return 0
	}
	return s.Pipeline.Write(data)
}

// parseBudgetPerSession bounds how many pipeline bytes Update consumes
// per session per call (§5: "update() does bounded work").
const parseBudgetPerSession = 4096

// Update drains each open session's pipeline (bounded), runs its bytes
// through the parser/dispatcher, flushes the op queue, checks flow
// control, and drains the response buffer through ResponseCallback.
// Sessions are visited in index order; no ordering is defined across
// sessions (§5).
func (t *Terminal) Update() {
	cycleID := uuid.NewString()
	t.currentCycleID = cycleID
	for i := 0; i < MaxSessions; i++ {
		s := t.Sessions[i]
		if s == nil || !s.SessionOpen {
			continue
		}
		for n := 0; n < parseBudgetPerSession; n++ {
			b, ok := s.Pipeline.ReadByte()
			if !ok {
				break
			}
			t.ParseByte(s, b)
		}
		t.flush(s)
		t.checkFlowControl(s)
		if len(s.ResponseBuf) > 0 {
			buf := s.ResponseBuf
			s.ResponseBuf = nil
			if t.opts.ResponseCallback != nil {
				t.opts.ResponseCallback(t, s.Index, buf)
			}
		}
	}
}

// emitResponse appends data to a session's response buffer, draining to
// ResponseCallback at the end of the current Update cycle. Collecting
// into ResponseBuf instead of calling back immediately lets a single
// dispatched operation make several replies (e.g. DECRQSS followed by
// a DSR) without forcing the embedder to handle interleaved partial
// writes.
func (t *Terminal) emitResponse(s *Session, data []byte) {
	s.ResponseBuf = append(s.ResponseBuf, data...)
}

// reportError routes a diagnostic to ErrorCallback, tagged with the
// cycle id of the Update call currently in progress (§7). It never
// panics and never aborts parsing — malformed input degrades to a
// best-effort interpretation, exactly as §7 requires.
func (t *Terminal) reportError(level ErrorLevel, source ErrorSource, message string) {
	if t.opts.ErrorCallback == nil {
		return
	}
	t.opts.ErrorCallback(t, level, source, t.currentCycleID, message)
}
