package game

import "time"

// Clock derives simulation time from a monotonic wall clock. Time is never
// accumulated per tick, so skipped ticks make motion jump instead of
// catching up.
type Clock struct {
	now   func() time.Time
	start time.Time
}

// NewClock starts a clock at zero. A nil now uses time.Now.
func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now, start: now()}
}

// Now returns the clock's wall time
func (c *Clock) Now() time.Time {
	return c.now()
}

// Elapsed returns seconds since the clock started
func (c *Clock) Elapsed() float32 {
	return float32(c.now().Sub(c.start).Seconds())
}
