package session

import (
	"sync"
	"time"
)

// DefaultSearchDebounce is the fixed delay after the last keystroke before a
// stock-photo search fires.
const DefaultSearchDebounce = 500 * time.Millisecond

// Debouncer delays a function call and cancels any pending one when a newer
// call arrives. The last schedule within the window wins; earlier pending
// timers never fire.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultSearchDebounce
	}
	return &Debouncer{delay: delay}
}

// Schedule arms the debouncer with fn, replacing any pending call.
func (d *Debouncer) Schedule(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels any pending call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
