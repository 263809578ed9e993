package kterm

// OpKind identifies which structured grid-mutation an Op carries.
type OpKind uint8

const (
	OpSetCell OpKind = iota
	OpScrollRegion
	OpCopyRect
	OpFillRect
	OpSetAttrRect
	OpInsertLines
	OpDeleteLines
	OpResizeGrid
)

// Rect is an inclusive rectangle in screen coordinates (top/left/bottom/right).
type Rect struct {
	Top, Left, Bottom, Right int
}

// Op is one structured cell-modifying operation enqueued by a dispatch
// handler and later applied by flush (§4.3): this separation is what
// lets one dispatch cycle observe a consistent grid even if a later
// handler in the same cycle overflows or aborts. The whole-grid
// operations listed on flush act on the grid directly instead.
type Op struct {
	Kind            OpKind
	Session         int
	Rect            Rect
	Cell            Cell
	DX, DY          int  // SCROLL_REGION / COPY_RECT displacement
	SrcRect         Rect // COPY_RECT source
	Attr            CellFlags
	AttrMode        AttrOpMode
	Foreground      Color
	Background      Color
	SetForeground   bool
	SetBackground   bool
	RespectProtected bool
	Cols, Rows      int // RESIZE_GRID
}

// AttrOpMode distinguishes DECCARA-style "apply" from DECRARA-style "toggle".
type AttrOpMode uint8

const (
	AttrApply AttrOpMode = iota
	AttrToggle
)

// opQueueCapacity must be a power of two (§3 invariants); 4096 structured
// ops comfortably covers a burst of DCS rectangular operations between
// two flush() calls.
const opQueueCapacity = 4096

// OpQueue is the bounded, single-producer FIFO ring that sits between
// the dispatcher and the screen model. On overflow Enqueue returns
// false and the producer drops the op (§4.3, §7 capacity saturation).
type OpQueue struct {
	buf        [opQueueCapacity]Op
	head, tail uint32 // head: next write slot; tail: next read slot
}

func (q *OpQueue) mask(i uint32) uint32 { return i & (opQueueCapacity - 1) }

// Len reports the number of pending ops.
func (q *OpQueue) Len() int { return int(q.head - q.tail) }

// Full reports whether the queue has no room for another op.
func (q *OpQueue) Full() bool { return q.Len() == opQueueCapacity }

// Enqueue appends op to the queue. It returns false without mutating
// state when the queue is full.
func (q *OpQueue) Enqueue(op Op) bool {
	if q.Full() {
		return false
	}
	q.buf[q.mask(q.head)] = op
	q.head++
	return true
}

// Dequeue removes and returns the oldest op, if any.
func (q *OpQueue) Dequeue() (Op, bool) {
	if q.head == q.tail {
		return Op{}, false
	}
	op := q.buf[q.mask(q.tail)]
	q.tail++
	return op, true
}
