package service

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiet interval before typed text is committed
const DefaultDebounce = 300 * time.Millisecond

// Debouncer delays a value until input has been quiet for an interval.
// Each Trigger mints a generation; a timer that fires for an older
// generation does nothing, even if Stop lost the race with it.
type Debouncer struct {
	interval time.Duration

	mu    sync.Mutex
	gen   uint64
	timer *time.Timer
}

// NewDebouncer creates a debouncer (interval <= 0 selects DefaultDebounce)
func NewDebouncer(interval time.Duration) *Debouncer {
	if interval <= 0 {
		interval = DefaultDebounce
	}
	return &Debouncer{interval: interval}
}

// Trigger schedules fn(value) after the quiet interval, replacing any
// pending call.
func (d *Debouncer) Trigger(value string, fn func(string)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, func() {
		d.mu.Lock()
		current := gen == d.gen
		d.mu.Unlock()
		if current {
			fn(value)
		}
	})
}

// Stop cancels the pending call, if any
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
