package ui

import (
	"sync"
	"time"
)

// DefaultDebounce is how long input must be stable before a search runs.
const DefaultDebounce = 300 * time.Millisecond

// Debouncer coalesces bursts of Trigger calls into a single call of the last
// function passed, once no Trigger has happened for the interval. It does
// not cancel work already started by an earlier call.
type Debouncer struct {
	interval time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

func NewDebouncer(interval time.Duration) *Debouncer {
	if interval < 0 {
		interval = 0
	}
	return &Debouncer{interval: interval}
}

// Trigger (re)starts the quiet period and schedules fn to run after it.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, fn)
}

// Stop drops any pending call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
