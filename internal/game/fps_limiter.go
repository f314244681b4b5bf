package game

import (
	"time"

	"mirror-scene/internal/config"
)

const (
	// idleFPS caps the loop while the window is iconified and nothing is drawn
	idleFPS = 20

	// spinWindow is the tail of a wait that is busy-waited instead of slept
	spinWindow = 200 * time.Microsecond
)

// FPSLimiter paces the frame loop against a fixed schedule of deadlines.
// A frame that overruns its slot by more than one period restarts the
// schedule from now; the limiter never issues back-to-back frames to make
// up for a hitch.
type FPSLimiter struct {
	now   func() time.Time
	sleep func(time.Duration)
	next  time.Time
}

func NewFPSLimiter() *FPSLimiter {
	return &FPSLimiter{now: time.Now, sleep: sleepPrecise}
}

// Wait blocks until the next frame is due. An iconified window is held to
// idleFPS even when the configured rate is uncapped or higher.
func (f *FPSLimiter) Wait(idle bool) {
	if d := f.Delay(frameLimit(config.GetFPSLimit(), idle)); d > 0 {
		f.sleep(d)
	}
}

// Delay advances the schedule by one frame at limit frames per second and
// returns how long the caller has until that deadline. A limit <= 0 clears
// the schedule and never delays.
func (f *FPSLimiter) Delay(limit int) time.Duration {
	if limit <= 0 {
		f.next = time.Time{}
		return 0
	}

	period := time.Second / time.Duration(limit)
	now := f.now()
	if f.next.IsZero() || now.Sub(f.next) > period {
		f.next = now.Add(period)
	} else {
		f.next = f.next.Add(period)
	}
	return max(f.next.Sub(now), 0)
}

func frameLimit(configured int, idle bool) int {
	if !idle {
		return configured
	}
	if configured > 0 && configured < idleFPS {
		return configured
	}
	return idleFPS
}

// sleepPrecise sleeps for most of d and spins through the rest, since
// timer wakeups overshoot by more than a frame budget allows at high rates
func sleepPrecise(d time.Duration) {
	deadline := time.Now().Add(d)
	if d > spinWindow {
		time.Sleep(d - spinWindow)
	}
	for time.Now().Before(deadline) {
	}
}
