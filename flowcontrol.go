package kterm

const (
	xoffByte = 0x13
	xonByte  = 0x11

	flowHighWatermark = 75
	flowLowWatermark  = 25
)

// checkFlowControl implements §4.7: when DECXRLM (mode 88) is enabled,
// pipeline usage crossing 75% emits one XOFF and crossing back below
// 25% emits one XON. It is edge-triggered — state is tracked on the
// Pipeline itself so repeated calls while usage stays high don't spam
// the response channel.
func (t *Terminal) checkFlowControl(s *Session) {
	if !s.Modes.DECXRLM {
		return
	}
	usage := s.Pipeline.UsagePercent()
	p := &s.Pipeline
	if usage > flowHighWatermark && !p.xoffAsserted {
		p.xoffAsserted = true
		p.xonAsserted = false
		t.emitResponse(s, []byte{xoffByte})
	} else if usage < flowLowWatermark && p.xoffAsserted {
		p.xonAsserted = true
		p.xoffAsserted = false
		t.emitResponse(s, []byte{xonByte})
	}
}
