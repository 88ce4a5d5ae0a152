// Package profiling collects per-frame timings and counters.
package profiling

import (
	"maps"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	mu          sync.Mutex
	frameTotals = make(map[string]time.Duration)
	counters    = make(map[string]int64)
)

// Track returns a stop function that records the elapsed time under the given name.
// Usage: defer profiling.Track("subsystem.Operation")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		frameTotals[name] += d
		mu.Unlock()
	}
}

// Add increments a per-frame counter, e.g. draw calls or quads.
func Add(name string, n int64) {
	mu.Lock()
	counters[name] += n
	mu.Unlock()
}

// Count returns the current value of a counter.
func Count(name string) int64 {
	mu.Lock()
	defer mu.Unlock()
	return counters[name]
}

// ResetFrame clears current per-frame totals and counters. Call at the start of each frame.
func ResetFrame() {
	mu.Lock()
	clear(frameTotals)
	clear(counters)
	mu.Unlock()
}

// Snapshot returns a copy of current per-frame totals.
func Snapshot() map[string]time.Duration {
	mu.Lock()
	defer mu.Unlock()
	return maps.Clone(frameTotals)
}

// Counters returns a copy of current per-frame counters.
func Counters() map[string]int64 {
	mu.Lock()
	defer mu.Unlock()
	return maps.Clone(counters)
}

// SumWithPrefix totals every timing whose name starts with prefix.
func SumWithPrefix(prefix string) time.Duration {
	mu.Lock()
	defer mu.Unlock()
	var sum time.Duration
	for k, v := range frameTotals {
		if strings.HasPrefix(k, prefix) {
			sum += v
		}
	}
	return sum
}

// TopN formats top N durations from the current frame totals.
// Example: "renderer.RenderWorld:4.2ms, chunks.flush:2.1ms"
func TopN(n int) string {
	ss := Snapshot()
	names := slices.Collect(maps.Keys(ss))
	slices.SortFunc(names, func(a, b string) int {
		if ss[a] != ss[b] {
			if ss[a] > ss[b] {
				return -1
			}
			return 1
		}
		return strings.Compare(a, b)
	})
	n = min(n, len(names))
	parts := make([]string, 0, n)
	for _, name := range names[:n] {
		parts = append(parts, name+":"+formatMs(ss[name]))
	}
	return strings.Join(parts, ", ")
}

// Fields returns the counters as zap fields, sorted by name.
func Fields() []zap.Field {
	cs := Counters()
	names := slices.Sorted(maps.Keys(cs))
	fields := make([]zap.Field, 0, len(names))
	for _, name := range names {
		fields = append(fields, zap.Int64(name, cs[name]))
	}
	return fields
}

// formatMs keeps one decimal and drops ".0".
func formatMs(d time.Duration) string {
	tenths := d.Microseconds() / 100
	s := strconv.FormatInt(tenths/10, 10)
	if frac := tenths % 10; frac != 0 {
		s += "." + strconv.FormatInt(frac, 10)
	}
	return s + "ms"
}
