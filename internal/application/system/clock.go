package system

import "time"

// Clock is a monotonic time source for AI timers
type Clock interface {
	Now() time.Duration
}

// FrameClock counts simulated time in whole ticks.
// It only moves when Advance is called, so pausing the loop freezes it.
type FrameClock struct {
	now  time.Duration
	tick time.Duration
}

// NewFrameClock creates a clock advancing 1/tps seconds per tick
func NewFrameClock(tps int) *FrameClock {
	if tps <= 0 {
		tps = 60
	}
	return &FrameClock{tick: time.Second / time.Duration(tps)}
}

// Now returns the elapsed simulated time
func (c *FrameClock) Now() time.Duration {
	return c.now
}

// Advance moves the clock forward one tick
func (c *FrameClock) Advance() {
	c.now += c.tick
}

// Tick returns the duration of one tick
func (c *FrameClock) Tick() time.Duration {
	return c.tick
}
