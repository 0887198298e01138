// Package history tallies the runs of one interactive session.
package history

import (
	"autoinstall/internal/program"
	"autoinstall/internal/runner"
	"sort"
	"time"
)

// Summary counts session results.
type Summary struct {
	Succeeded   int
	Failed      int
	Unsupported int
	Skipped     int
	Runs        int
	HasFailures bool
}

// Record is one completed run.
type Record struct {
	Outcome  runner.Outcome
	Finished time.Time
}

// History keeps every outcome of the session in order and the latest
// outcome per entry. It is not persisted.
type History struct {
	records   []Record
	latest    map[string]runner.Outcome
	skips     int
	startTime time.Time
	lastTime  time.Time
	now       func() time.Time
}

func New() *History {
	return &History{
		latest: make(map[string]runner.Outcome),
		now:    time.Now,
	}
}

// Begin marks the start of a run; the first call starts the session clock.
func (h *History) Begin() {
	if h.startTime.IsZero() {
		h.startTime = h.now()
	}
}

// Add records a finished run.
func (h *History) Add(o runner.Outcome) {
	h.Begin()
	h.lastTime = h.now()
	h.records = append(h.records, Record{Outcome: o, Finished: h.lastTime})
	h.latest[o.Entry.Key()] = o
}

// Skip counts a skip action.
func (h *History) Skip() {
	h.skips++
}

// Latest returns the most recent outcome for e.
func (h *History) Latest(e program.Entry) (runner.Outcome, bool) {
	o, ok := h.latest[e.Key()]
	return o, ok
}

// Runs returns the number of completed runs.
func (h *History) Runs() int {
	return len(h.records)
}

// ElapsedTime is the time since the first run began, frozen at the last
// completed run while idle.
func (h *History) ElapsedTime(running bool) time.Duration {
	if h.startTime.IsZero() {
		return 0
	}
	if running || h.lastTime.IsZero() {
		return h.now().Sub(h.startTime)
	}
	return h.lastTime.Sub(h.startTime)
}

// Summary counts every run of the session.
func (h *History) Summary() Summary {
	s := Summary{Skipped: h.skips, Runs: len(h.records)}
	for _, r := range h.records {
		switch r.Outcome.Status {
		case runner.StatusSuccess:
			s.Succeeded++
		case runner.StatusFailed:
			s.Failed++
		case runner.StatusUnsupported:
			s.Unsupported++
		}
	}
	s.HasFailures = s.Failed > 0 || s.Unsupported > 0
	return s
}

// Slowest returns up to n successful runs ordered by duration, longest first.
func (h *History) Slowest(n int) []runner.Outcome {
	var out []runner.Outcome
	for _, r := range h.records {
		if r.Outcome.Status == runner.StatusSuccess && r.Outcome.Duration > 0 {
			out = append(out, r.Outcome)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Duration > out[j].Duration
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
