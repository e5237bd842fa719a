package profiling

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Per-frame CPU timings for the compile/upload pipeline.

type entry struct {
	total time.Duration
	calls int
}

var (
	mu     sync.Mutex
	frame  = make(map[string]*entry)
	counts = make(map[string]uint64)
)

// Track returns a stop function that records the elapsed time under name.
// Usage: defer profiling.Track("meshing.Compile")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		e := frame[name]
		if e == nil {
			e = &entry{}
			frame[name] = e
		}
		e.total += d
		e.calls++
		mu.Unlock()
	}
}

// Count bumps a counter that survives ResetFrame, e.g. capacity misses.
func Count(name string) {
	mu.Lock()
	counts[name]++
	mu.Unlock()
}

// Counter returns the current value of a counter.
func Counter(name string) uint64 {
	mu.Lock()
	defer mu.Unlock()
	return counts[name]
}

// ResetFrame clears the per-frame totals. Call at the start of each frame.
func ResetFrame() {
	mu.Lock()
	clear(frame)
	mu.Unlock()
}

// Snapshot returns a copy of the current per-frame totals.
func Snapshot() map[string]time.Duration {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]time.Duration, len(frame))
	for k, e := range frame {
		out[k] = e.total
	}
	return out
}

// Calls returns how many times name was tracked this frame.
func Calls(name string) int {
	mu.Lock()
	defer mu.Unlock()
	if e := frame[name]; e != nil {
		return e.calls
	}
	return 0
}

// TopN formats the n slowest entries of the current frame.
// Example: "terrain.UploadView:4.2ms, meshing.Compile:3.9ms"
func TopN(n int) string {
	ss := Snapshot()
	names := make([]string, 0, len(ss))
	for k := range ss {
		names = append(names, k)
	}
	sort.Slice(names, func(i, j int) bool {
		if ss[names[i]] == ss[names[j]] {
			return names[i] < names[j]
		}
		return ss[names[i]] > ss[names[j]]
	})
	if n > len(names) {
		n = len(names)
	}
	parts := make([]string, 0, n)
	for _, name := range names[:n] {
		ms := float64(ss[name].Microseconds()) / 1000.0
		parts = append(parts, fmt.Sprintf("%s:%.1fms", name, ms))
	}
	return strings.Join(parts, ", ")
}
