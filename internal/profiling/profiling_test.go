package profiling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatOrdersByDuration(t *testing.T) {
	m := map[string]time.Duration{
		"pass.shadow":     1500 * time.Microsecond,
		"pass.composite":  4200 * time.Microsecond,
		"pass.reflection": 2100 * time.Microsecond,
	}
	assert.Equal(t, "pass.composite:4.2ms, pass.reflection:2.1ms", Format(m, 2))
	assert.Equal(t, "pass.composite:4.2ms, pass.reflection:2.1ms, pass.shadow:1.5ms", Format(m, 10))
	assert.Equal(t, "", Format(nil, 3))
}

func TestTrackAndReset(t *testing.T) {
	ResetFrame()
	stop := Track("unit")
	time.Sleep(time.Millisecond)
	stop()

	snap := Snapshot()
	assert.GreaterOrEqual(t, snap["unit"], time.Millisecond)

	ResetFrame()
	assert.Empty(t, Snapshot())
}

func TestDrainWindowAverages(t *testing.T) {
	DrainWindow()
	for i := 0; i < 4; i++ {
		ResetFrame()
		mu.Lock()
		frameTotals["pass.x"] = time.Duration(i+1) * time.Millisecond
		mu.Unlock()
		EndFrame()
	}

	avg, frames := DrainWindow()
	assert.Equal(t, 4, frames)
	assert.Equal(t, 2500*time.Microsecond, avg["pass.x"])

	avg, frames = DrainWindow()
	assert.Equal(t, 0, frames)
	assert.Empty(t, avg)
}
