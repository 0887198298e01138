// Package coordinator joins the two halves of a finished run: the process
// returning and its output stream draining. Either may arrive first.
package coordinator

import (
	"autoinstall/internal/program"
	"autoinstall/internal/runner"
)

// RunCompleteMsg is produced once both the outcome and the last log line
// of a run have arrived.
type RunCompleteMsg struct {
	Entry   program.Entry
	Outcome runner.Outcome
	Logs    []string
}

// Coordinator tracks the active run and keeps the output of earlier runs
// keyed by entry identity, so history follows an entry when it is moved.
type Coordinator struct {
	history     map[string][]string
	currentLogs []string
	current     program.Entry
	active      bool

	pending  *runner.Outcome
	logsDone bool
}

func New() *Coordinator {
	return &Coordinator{
		history: make(map[string][]string),
	}
}

// StartRun begins collecting output for e.
func (c *Coordinator) StartRun(e program.Entry) {
	c.current = e
	c.active = true
	c.currentLogs = nil
	c.pending = nil
	c.logsDone = false
}

// Active reports whether a run has started and not yet completed.
func (c *Coordinator) Active() bool {
	return c.active
}

// Current returns the entry of the active or most recent run.
func (c *Coordinator) Current() program.Entry {
	return c.current
}

func (c *Coordinator) AddLogLine(line string) {
	c.currentLogs = append(c.currentLogs, line)
}

func (c *Coordinator) CurrentLogs() []string {
	return c.currentLogs
}

// LogsFor returns the output captured for e's most recent completed run.
func (c *Coordinator) LogsFor(e program.Entry) []string {
	return c.history[e.Key()]
}

// Forget drops the history of e, used when the entry is removed.
func (c *Coordinator) Forget(e program.Entry) {
	delete(c.history, e.Key())
}

// LogsDone records that the output stream is drained.
func (c *Coordinator) LogsDone() *RunCompleteMsg {
	if !c.active {
		return nil
	}
	c.logsDone = true

	if c.pending != nil {
		return c.complete(*c.pending)
	}
	return nil
}

// RunDone records the outcome of the process.
func (c *Coordinator) RunDone(outcome runner.Outcome) *RunCompleteMsg {
	if !c.active {
		return nil
	}
	if !c.logsDone {
		if c.pending == nil {
			c.pending = &outcome
		}
		return nil
	}
	return c.complete(outcome)
}

func (c *Coordinator) complete(outcome runner.Outcome) *RunCompleteMsg {
	c.history[c.current.Key()] = c.currentLogs

	msg := &RunCompleteMsg{
		Entry:   c.current,
		Outcome: outcome,
		Logs:    c.currentLogs,
	}

	c.active = false
	c.pending = nil
	c.logsDone = false

	return msg
}
