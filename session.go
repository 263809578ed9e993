package kterm

// ConformanceLevel selects which VT/xterm feature set a session
// advertises and enforces (§3).
type ConformanceLevel int

const (
	LevelANSISys ConformanceLevel = iota
	LevelVT100
	LevelVT220
	LevelVT420
	LevelVT525
	LevelXTerm
)

// Modes holds the DEC private mode bits a session tracks (§4.2).
type Modes struct {
	DECCKM   bool // cursor keys application mode
	DECCOLM  bool // 80/132 column mode (mode 3)
	DECSCLM  bool // smooth scroll
	DECOM    bool // origin mode
	DECAWM   bool // autowrap
	DECARM   bool // autorepeat
	DECTCEM  bool // text cursor enable (mode 25)
	DECLRMM  bool // left/right margin mode (69)
	DECNCSM  bool // no clear screen on column change (95)
	DECXRLM  bool // XON/XOFF flow control (88)
	AltScreen bool
	BracketedPaste bool
	MouseTracking  int // 0 = off, else protocol id (9,1000,1002,1003,...)
	DECSCNM  bool // screen reversed (black on white)
}

// SGRAttrs is the current SGR text-attribute state a session applies
// to the next written cell.
type SGRAttrs struct {
	Flags             CellFlags
	Foreground        Color
	Background        Color
	UnderlineColor    Color
	HasUnderlineColor bool
}

func defaultSGRAttrs() SGRAttrs {
	return SGRAttrs{Foreground: DefaultColor(), Background: DefaultColor()}
}

// ParseState is the parser's accumulator state for the sequence
// currently in flight, carried on Session so per-session isolation
// holds even if an embedder interleaves update() across sessions.
type ParseState struct {
	State ParserState

	CSIParams     []int
	CSISeparators []byte // ';' or ':' preceding each param; 0 for the first
	CSIIntermediates []byte
	CSIPrivate    byte

	OSCBuf []byte
	DCSBuf []byte
	APCBuf []byte
	DCSFinal byte
	DCSIntermediates []byte
	DCSPrivate byte

	utf8Buf  []byte
	utf8Need int

	pendingOSCOnST   bool
	pendingAPCOnST   bool
	pendingDCSOnST   bool
	pendingSixelOnST bool
	pendingRegisOnST bool
}

// PrinterState models the MC (Media Copy) / printer-controller mode bits.
type PrinterState struct {
	AutoPrint        bool
	ControllerActive bool
	Available        bool
}

// LocatorState is the DECRQLP/locator-event mask: tracked and reported,
// without a full locator device behind it.
type LocatorState struct {
	EventMask int
}

// StatusBits mirrors the session debugging/status flags §3 names.
type StatusBits struct {
	Debugging       bool
	PrinterAvailable bool
}

// PromptMark records a shell-integration OSC 133 boundary (supplemented
// feature, SPEC_FULL.md "Shell-integration"), kept as a passive ring an
// embedder may query; nothing else in the engine depends on it.
type PromptMark struct {
	Row  int
	Kind byte // 'A' prompt start, 'B' command start, 'C' command end
}

// Session is one independently-addressable terminal session (§3).
type Session struct {
	Index      int
	SessionOpen bool

	Primary   *Grid
	Alternate *Grid
	Active    *Grid // points at Primary or Alternate

	Cursor       Cursor
	SavedCursor  SavedCursorState
	AltSavedCursor SavedCursorState

	Attrs  SGRAttrs
	Region ScrollRegion

	TabStops []bool

	Modes            Modes
	Conformance      ConformanceLevel

	Pipeline     Pipeline
	ResponseBuf  []byte

	Parse ParseState

	Sixel  SixelState
	Regis  RegisState
	Kitty  KittyState

	SoftFonts map[byte]*SoftFont
	ProgKeys  map[int]string

	Printer  PrinterState
	Locator  LocatorState
	Status   StatusBits

	GatewayTarget bool // not maintained by the engine; Terminal.GatewayTargetSession holds the gateway target

	PromptMarks []PromptMark

	ClipboardSelection map[byte]string // OSC 52 selection buffers, keyed by selection letter
}

// SoftFont is a DECDLD-defined glyph slot; the bitmap payload itself is
// opaque to the core (it is handed to the embedder's atlas collaborator
// unchanged).
type SoftFont struct {
	Slot   byte
	Bitmap []byte
}

// NewSession allocates and opens session at index i with the given
// geometry, matching init_session(i) (§4.4).
func NewSession(index, cols, rows, scrollback int) *Session {
	s := &Session{
		Index:       index,
		SessionOpen: true,
		Primary:     NewGrid(cols, rows, scrollback),
		Alternate:   NewGrid(cols, rows, scrollback),
		Attrs:       defaultSGRAttrs(),
		Conformance: LevelXTerm,
		SoftFonts:   make(map[byte]*SoftFont),
		ProgKeys:    make(map[int]string),
		ClipboardSelection: make(map[byte]string),
	}
	s.Active = s.Primary
	s.Cursor.Visible = true
	s.Modes.DECAWM = true
	s.Modes.DECTCEM = true
	s.Region = ScrollRegion{Top: 0, Bottom: rows - 1, Left: 0, Right: cols - 1}
	s.resetTabStops()
	return s
}

func (s *Session) resetTabStops() {
	cols := s.Active.Cols
	s.TabStops = make([]bool, cols)
	for x := 0; x < cols; x += 8 {
		s.TabStops[x] = true
	}
}

// Cols/Rows report the active grid's visible geometry.
func (s *Session) Cols() int { return s.Active.Cols }
func (s *Session) Rows() int { return s.Active.Rows }

// ClampCursor enforces invariant 1: 0 <= cursor.x < cols, 0 <= cursor.y < rows.
func (s *Session) ClampCursor() {
	if s.Cursor.X < 0 {
		s.Cursor.X = 0
	}
	if s.Cursor.X >= s.Cols() {
		s.Cursor.X = s.Cols() - 1
	}
	if s.Cursor.Y < 0 {
		s.Cursor.Y = 0
	}
	if s.Cursor.Y >= s.Rows() {
		s.Cursor.Y = s.Rows() - 1
	}
	if s.Cursor.X != s.Cols()-1 {
		s.Cursor.WrapPending = false
	}
}

// EffectiveMargins returns the region to respect for cursor motion and
// scrolling: full row/column range when DECLRMM is off for the
// left/right axis, matching §3's "observed only when DECLRMM enabled".
func (s *Session) EffectiveMargins() ScrollRegion {
	r := s.Region
	if !s.Modes.DECLRMM {
		r.Left = 0
		r.Right = s.Cols() - 1
	}
	return r
}

// SaveCursor implements DECSC: snapshot cursor + attributes + origin
// mode into this session's saved-cursor slot (§4.2 soft reset, §8
// invariant 2). Per §5's shared-resource policy this never touches
// another session's state.
func (s *Session) SaveCursor() {
	s.SavedCursor = SavedCursorState{
		Valid:      true,
		X:          s.Cursor.X,
		Y:          s.Cursor.Y,
		Flags:      s.Attrs.Flags,
		Foreground: s.Attrs.Foreground,
		Background: s.Attrs.Background,
		OriginMode: s.Modes.DECOM,
	}
}

// RestoreCursor implements DECRC.
func (s *Session) RestoreCursor() {
	if !s.SavedCursor.Valid {
		s.Cursor.X, s.Cursor.Y = 0, 0
		return
	}
	snap := s.SavedCursor
	s.Cursor.X, s.Cursor.Y = snap.X, snap.Y
	s.Attrs.Flags = snap.Flags
	s.Attrs.Foreground = snap.Foreground
	s.Attrs.Background = snap.Background
	s.Modes.DECOM = snap.OriginMode
	s.ClampCursor()
}

// SwitchToAlternate enters the alternate screen (modes 47/1047/1049),
// capturing/restoring an independent saved-cursor snapshot per buffer.
func (s *Session) SwitchToAlternate(clearOnEnter bool) {
	if s.Modes.AltScreen {
		return
	}
	s.AltSavedCursor = s.SavedCursor
	s.SaveCursor()
	s.Modes.AltScreen = true
	s.Active = s.Alternate
	if clearOnEnter {
		s.clearActiveScreen()
	}
}

// SwitchToPrimary leaves the alternate screen.
func (s *Session) SwitchToPrimary() {
	if !s.Modes.AltScreen {
		return
	}
	s.Modes.AltScreen = false
	s.Active = s.Primary
	s.RestoreCursor()
	s.SavedCursor = s.AltSavedCursor
}

func (s *Session) clearActiveScreen() {
	g := s.Active
	for y := 0; y < g.Rows; y++ {
		g.FillRow(y, 0, g.Cols-1, BlankCell)
	}
}
