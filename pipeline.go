package kterm

import "sync/atomic"

// pipelineCapacity is the per-session input pipeline size: at least
// 64 KiB and a power of two (§3), so index math can use a bitmask
// instead of a modulo.
const pipelineCapacity = 1 << 17 // 128 KiB

// Pipeline is the per-session SPSC byte ring carrying host-to-core
// bytes (§2, §5, §9). The host writer is the producer; update()'s
// parse step is the sole consumer. Both sides only ever touch their
// own index with a read-modify-write; the other side's index is read
// with an atomic load, giving the acquire/release handoff the design
// notes call for without needing a mutex on the hot path.
type Pipeline struct {
	buf        [pipelineCapacity]byte
	head       atomic.Uint64 // next write offset; producer-owned
	tail       atomic.Uint64 // next read offset; consumer-owned
	xonAsserted bool
	xoffAsserted bool
}

func (p *Pipeline) mask(i uint64) uint64 { return i & (pipelineCapacity - 1) }

// Len is a relaxed size estimate, good enough for the XON/XOFF
// watermark check (§4.7, §9) but not for anything requiring a
// linearizable count.
func (p *Pipeline) Len() int {
	return int(p.head.Load() - p.tail.Load())
}

// Cap reports the pipeline's fixed capacity.
func (p *Pipeline) Cap() int { return pipelineCapacity }

// Write appends as many bytes of data as fit and returns the count
// written; a full pipeline silently truncates the write (§7 capacity
// saturation — the caller, typically the gateway's PIPE command or an
// embedder's host-read loop, is expected to retry later).
func (p *Pipeline) Write(data []byte) int {
	head := p.head.Load()
	tail := p.tail.Load()
	free := pipelineCapacity - int(head-tail)
	n := len(data)
	if n > free {
		n = free
	}
	for i := 0; i < n; i++ {
		p.buf[p.mask(head+uint64(i))] = data[i]
	}
	p.head.Store(head + uint64(n))
	return n
}

// ReadByte consumes and returns the next byte, or (0, false) if empty.
func (p *Pipeline) ReadByte() (byte, bool) {
	tail := p.tail.Load()
	head := p.head.Load()
	if tail == head {
		return 0, false
	}
	b := p.buf[p.mask(tail)]
	p.tail.Store(tail + 1)
	return b, true
}

// UsagePercent is the relaxed fill-ratio used by flow control.
func (p *Pipeline) UsagePercent() int {
	return p.Len() * 100 / pipelineCapacity
}
