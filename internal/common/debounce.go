package common

import (
	"sync"
	"time"
)

// Debouncer is a simple time-based gate:
// - Ready tells whether enough time has passed since last Mark.
// - Mark records a successful action time.
//
// NOTE: This is intentionally minimal and concurrency-safe.
type Debouncer struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
}

func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{interval: interval}
}

// Ready reports whether the action should run now, based on last successful Mark.
// It does NOT update internal state.
func (d *Debouncer) Ready(now time.Time) (ready bool, since time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.interval <= 0 {
		return true, 0
	}
	if d.last.IsZero() {
		return true, d.interval
	}
	since = now.Sub(d.last)
	return since >= d.interval, since
}

// Mark records a successful action time.
func (d *Debouncer) Mark(now time.Time) {
	d.mu.Lock()
	d.last = now
	d.mu.Unlock()
}

// Reset clears the last action time (next Ready will return true).
func (d *Debouncer) Reset() {
	d.mu.Lock()
	d.last = time.Time{}
	d.mu.Unlock()
}

// TextDebouncer emits a value only after a quiet period with no further
// updates (trailing edge). Each Update resets the timer; Stop cancels any
// pending emission. The search box uses this to keep keystrokes from
// re-keying the fetch controller on every character.
type TextDebouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
	emit  func(string)
}

// NewTextDebouncer creates a debouncer that calls emit once the input has
// been stable for delay. emit runs on a timer goroutine.
func NewTextDebouncer(delay time.Duration, emit func(string)) *TextDebouncer {
	if delay <= 0 {
		delay = 500 * time.Millisecond
	}
	return &TextDebouncer{delay: delay, emit: emit}
}

// Update feeds the latest raw value, restarting the quiet-period timer.
func (d *TextDebouncer) Update(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.emit(value)
	})
}

// Stop cancels any pending emission. Safe to call more than once.
func (d *TextDebouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
