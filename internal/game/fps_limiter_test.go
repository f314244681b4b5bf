package game

import (
	"testing"
	"time"

	"mirror-scene/internal/config"

	"github.com/stretchr/testify/assert"
)

// newTestLimiter returns a limiter whose sleeps advance a fake clock
func newTestLimiter() (*FPSLimiter, *fakeClock, *[]time.Duration) {
	fc := &fakeClock{t: time.Unix(1000, 0)}
	var slept []time.Duration
	f := &FPSLimiter{
		now: fc.now,
		sleep: func(d time.Duration) {
			slept = append(slept, d)
			fc.advance(d)
		},
	}
	return f, fc, &slept
}

func TestLimiterUncapped(t *testing.T) {
	f, fc, _ := newTestLimiter()
	assert.Zero(t, f.Delay(0))
	assert.Zero(t, f.Delay(-5))
	assert.True(t, f.next.IsZero())

	// switching the cap on starts a fresh schedule
	fc.advance(time.Hour)
	assert.Equal(t, 10*time.Millisecond, f.Delay(100))
}

func TestLimiterHoldsSteadyPeriod(t *testing.T) {
	defer config.SetFPSLimit(config.GetFPSLimit())
	config.SetFPSLimit(50)

	f, fc, slept := newTestLimiter()
	start := fc.now()
	for i := 0; i < 5; i++ {
		fc.advance(5 * time.Millisecond) // frame work
		f.Wait(false)
	}

	assert.Equal(t, []time.Duration{
		20 * time.Millisecond,
		15 * time.Millisecond,
		15 * time.Millisecond,
		15 * time.Millisecond,
		15 * time.Millisecond,
	}, *slept)
	assert.Equal(t, start.Add(5*time.Millisecond+5*20*time.Millisecond), fc.now())
}

func TestLimiterKeepsPhase(t *testing.T) {
	f, fc, _ := newTestLimiter()
	start := fc.now()
	f.Delay(50)
	fc.advance(20 * time.Millisecond)

	// a long frame that still ends inside its slot keeps the schedule's phase
	fc.advance(18 * time.Millisecond)
	assert.Equal(t, 2*time.Millisecond, f.Delay(50))
	assert.Equal(t, start.Add(40*time.Millisecond), f.next)

	// ending exactly on the deadline is not a hitch
	fc.advance(2 * time.Millisecond)
	fc.advance(20 * time.Millisecond)
	assert.Zero(t, f.Delay(50))
	assert.Equal(t, start.Add(60*time.Millisecond), f.next)
}

func TestLimiterResyncsAfterHitch(t *testing.T) {
	f, fc, _ := newTestLimiter()
	f.Delay(50)
	fc.advance(20 * time.Millisecond)

	fc.advance(300 * time.Millisecond)
	assert.Equal(t, 20*time.Millisecond, f.Delay(50), "a full period, not a burst of catch-up frames")
	assert.Equal(t, fc.now().Add(20*time.Millisecond), f.next)
}

func TestLimiterIdleCap(t *testing.T) {
	defer config.SetFPSLimit(config.GetFPSLimit())

	tests := []struct {
		configured int
		want       time.Duration
	}{
		{0, 50 * time.Millisecond},
		{144, 50 * time.Millisecond},
		{10, 100 * time.Millisecond},
	}
	for _, tt := range tests {
		config.SetFPSLimit(tt.configured)
		f, _, slept := newTestLimiter()
		f.Wait(true)
		assert.Equal(t, []time.Duration{tt.want}, *slept, "configured %d", tt.configured)
	}
}

func TestLimiterUncappedNeverSleeps(t *testing.T) {
	defer config.SetFPSLimit(config.GetFPSLimit())
	config.SetFPSLimit(0)

	f, _, slept := newTestLimiter()
	for i := 0; i < 3; i++ {
		f.Wait(false)
	}
	assert.Empty(t, *slept)
}
