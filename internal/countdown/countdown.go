// apps/go-server/internal/countdown/countdown.go
//
// Guessing-phase countdown.
//
// A Timer counts down whole seconds on a ticker and calls onExpire once when
// it reaches zero. Start replaces any run in progress and Stop cancels it;
// each run carries a generation number so a superseded run exits without
// calling back. A callback racing a Stop can still land, so owners must also
// check that the callback belongs to the round they are in.

package countdown

import (
	"fmt"
	"sync"
	"time"
)

// Timer is a restartable countdown. The zero value is not usable; call New.
type Timer struct {
	interval time.Duration

	mu      sync.Mutex
	gen     uint64
	stop    chan struct{}
	running bool
}

// New returns a Timer that ticks once per interval (one "second").
func New(interval time.Duration) *Timer {
	if interval <= 0 {
		interval = time.Second
	}
	return &Timer{interval: interval}
}

// Start begins counting down from seconds. onTick receives the remaining
// count after every tick (including 0); onExpire runs once at zero. Either
// callback may be nil.
func (t *Timer) Start(seconds int, onTick func(remaining int), onExpire func()) {
	t.mu.Lock()
	t.stopLocked()
	t.gen++
	gen := t.gen
	stop := make(chan struct{})
	t.stop = stop
	t.running = true
	t.mu.Unlock()

	go t.run(gen, stop, seconds, onTick, onExpire)
}

func (t *Timer) run(gen uint64, stop chan struct{}, remaining int, onTick func(int), onExpire func()) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			remaining--
			if remaining < 0 {
				remaining = 0
			}
			expired := remaining == 0
			if !t.current(gen, expired) {
				return
			}
			if onTick != nil {
				onTick(remaining)
			}
			if expired {
				if onExpire != nil {
					onExpire()
				}
				return
			}
		}
	}
}

// current reports whether gen is still the live run, and marks it finished
// when done is set.
func (t *Timer) current(gen uint64, done bool) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if gen != t.gen || !t.running {
		return false
	}
	if done {
		t.running = false
		t.stop = nil
	}
	return true
}

// Stop cancels the run in progress, if any.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
}

func (t *Timer) stopLocked() {
	if t.stop != nil {
		close(t.stop)
		t.stop = nil
	}
	t.running = false
}

// Running reports whether a countdown is in progress.
func (t *Timer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// FormatTime renders seconds as m:ss.
func FormatTime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
