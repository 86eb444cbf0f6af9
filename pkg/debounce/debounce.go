package debounce

import (
	"sync"
	"time"
)

// Debouncer collapses bursts of Trigger calls into a single fn call
// that runs once no new trigger has arrived for the quiet period.
// Calls of fn never overlap.
type Debouncer struct {
	wait time.Duration
	fn   func()

	runMu sync.Mutex

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

// New returns a debouncer calling fn after wait of quiet
func New(wait time.Duration, fn func()) *Debouncer {
	return &Debouncer{wait: wait, fn: fn}
}

func (d *Debouncer) run() {
	d.runMu.Lock()
	defer d.runMu.Unlock()
	d.fn()
}

// Trigger (re)starts the quiet period. The latest trigger always wins.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.wait, d.run)
}

// Flush cancels the pending call, if any, and runs fn immediately.
// It reports whether a call was pending.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	pending := d.timer != nil && d.timer.Stop()
	d.timer = nil
	d.mu.Unlock()

	if pending {
		d.run()
	}
	return pending
}

// Stop cancels the pending call and ignores further triggers
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
