package profiling

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"
)

// Per-frame wall-clock totals keyed by section name. Sections may be recorded
// from any goroutine; background build work lands in whichever frame is open
// when it finishes.

type section struct {
	total time.Duration
	calls int
}

var (
	mu     sync.Mutex
	totals = make(map[string]section)
)

// Entry is one section of a frame report.
type Entry struct {
	Name  string
	Total time.Duration
	Calls int
}

// Track starts timing a section and returns the function that stops it.
//
//	defer profiling.Track("streaming.Update")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		Record(name, time.Since(start))
	}
}

// Record adds d to the named section of the current frame.
func Record(name string, d time.Duration) {
	mu.Lock()
	s := totals[name]
	s.total += d
	s.calls++
	totals[name] = s
	mu.Unlock()
}

// ResetFrame clears the totals. Call once at the start of every frame.
func ResetFrame() {
	mu.Lock()
	clear(totals)
	mu.Unlock()
}

// Snapshot returns the current totals sorted by descending duration.
func Snapshot() []Entry {
	mu.Lock()
	out := make([]Entry, 0, len(totals))
	for name, s := range totals {
		out = append(out, Entry{Name: name, Total: s.total, Calls: s.calls})
	}
	mu.Unlock()

	slices.SortFunc(out, func(a, b Entry) int {
		if c := cmp.Compare(b.Total, a.Total); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return out
}

// TopN formats the n most expensive sections, e.g.
// "streaming.Update:4.2ms, meshing.BuildMesh:2.1ms(x3)".
func TopN(n int) string {
	entries := Snapshot()
	if n < len(entries) {
		entries = entries[:max(n, 0)]
	}
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		s := fmt.Sprintf("%s:%.1fms", e.Name, float64(e.Total.Microseconds())/1000)
		if e.Calls > 1 {
			s += fmt.Sprintf("(x%d)", e.Calls)
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", ")
}
