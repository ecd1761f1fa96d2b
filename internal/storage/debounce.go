package storage

import (
	"log"
	"sync"
	"time"
)

// debouncer runs flush after a quiet period. Schedule restarts the
// timer, so a burst of mutations produces a single flush once the
// burst settles.
type debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
	flush func() error
}

func newDebouncer(delay time.Duration, flush func() error) *debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &debouncer{delay: delay, flush: flush}
}

// Schedule (re)starts the quiet-period timer.
func (d *debouncer) Schedule() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		if err := d.flush(); err != nil {
			// The error re-surfaces on the next explicit Flush.
			log.Printf("storage: debounced flush failed: %v", err)
		}
	})
}

// Stop cancels any pending flush without running it.
func (d *debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
