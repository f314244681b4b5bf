package profiling

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Per-frame CPU timing buckets. Totals for the current frame are folded into
// a window on EndFrame so the driver can report per-frame averages.

var (
	mu           sync.Mutex
	frameTotals  = make(map[string]time.Duration)
	windowTotals = make(map[string]time.Duration)
	windowFrames int
)

// Track returns a stop function that records the elapsed time under the given name.
// Usage: defer profiling.Track("pass.shadow")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		frameTotals[name] += d
		mu.Unlock()
	}
}

// ResetFrame clears current per-frame totals. Call at the start of each frame.
func ResetFrame() {
	mu.Lock()
	clear(frameTotals)
	mu.Unlock()
}

// EndFrame adds the current frame's totals to the reporting window
func EndFrame() {
	mu.Lock()
	for k, v := range frameTotals {
		windowTotals[k] += v
	}
	windowFrames++
	mu.Unlock()
}

// Snapshot returns a copy of current per-frame totals.
func Snapshot() map[string]time.Duration {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]time.Duration, len(frameTotals))
	for k, v := range frameTotals {
		out[k] = v
	}
	return out
}

// DrainWindow returns the per-frame average of every bucket since the last
// drain and the number of frames it covers, then starts a new window.
func DrainWindow() (map[string]time.Duration, int) {
	mu.Lock()
	defer mu.Unlock()
	frames := windowFrames
	out := make(map[string]time.Duration, len(windowTotals))
	if frames > 0 {
		for k, v := range windowTotals {
			out[k] = v / time.Duration(frames)
		}
	}
	clear(windowTotals)
	windowFrames = 0
	return out, frames
}

// Format renders the n largest durations of m, largest first.
// Example: "pass.composite:4.2ms, pass.reflection:2.1ms"
func Format(m map[string]time.Duration, n int) string {
	type pair struct {
		name string
		dur  time.Duration
	}
	list := make([]pair, 0, len(m))
	for k, v := range m {
		list = append(list, pair{name: k, dur: v})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].dur == list[j].dur {
			return list[i].name < list[j].name
		}
		return list[i].dur > list[j].dur
	})
	if n > len(list) {
		n = len(list)
	}
	parts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		ms := float64(list[i].dur.Microseconds()) / 1000.0
		parts = append(parts, list[i].name+":"+strconv.FormatFloat(ms, 'f', 1, 64)+"ms")
	}
	return strings.Join(parts, ", ")
}
