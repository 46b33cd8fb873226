package core

import "time"

// Pacer meters work (hydrology passes in the viewer) at a fixed rate that is
// independent of the frame rate.
type Pacer struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
}

// NewPacer constructs a Pacer firing perSecond times per second.
func NewPacer(perSecond float64) *Pacer {
	p := &Pacer{}
	p.SetRate(perSecond)
	return p
}

// SetRate changes the firing rate. Non-positive rates fall back to 1/s.
func (p *Pacer) SetRate(perSecond float64) {
	if perSecond <= 0 {
		perSecond = 1
	}
	p.step = time.Duration(float64(time.Second) / perSecond)
}

// Ready reports whether enough time elapsed since the previous firing. The
// first call only starts the clock.
func (p *Pacer) Ready(now time.Time) bool {
	if p.last.IsZero() {
		p.last = now
		return false
	}
	p.accumulator += now.Sub(p.last)
	p.last = now
	if p.accumulator >= p.step {
		p.accumulator -= p.step
		// drop backlog so a stalled frame does not trigger a burst
		if p.accumulator > p.step {
			p.accumulator = 0
		}
		return true
	}
	return false
}

// Reset restarts the clock.
func (p *Pacer) Reset() {
	p.accumulator = 0
	p.last = time.Time{}
}
