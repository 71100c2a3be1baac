// Package timeline is the timer facility for the session: delayed callbacks
// are translated into channel sends, and the receiver drains the channel from
// a single loop so that every callback body runs serialized. Cancellation is
// best-effort; callers that need hard cancellation guard with an epoch check
// inside the callback.
package timeline

import (
	"time"

	"github.com/sayanthsai/ADHD-simulator/internal/platform/clock"
)

// Loop owns the callback channel. One goroutine (the UI program loop) must
// drain C; Schedule and Post may be called from any goroutine.
type Loop struct {
	clk clock.Clock
	ch  chan func()
}

func New(clk clock.Clock) *Loop {
	return &Loop{clk: clk, ch: make(chan func(), 256)}
}

// C is the drain end. Each received func must be invoked by the receiver.
func (l *Loop) C() <-chan func() {
	return l.ch
}

// Post enqueues fn to run on the next drain.
func (l *Loop) Post(fn func()) {
	l.ch <- fn
}

// Schedule runs fn on the drain loop after d. The returned cancel stops the
// pending timer; canceling after the timer fired is a safe no-op, and the
// callback may still be delivered.
func (l *Loop) Schedule(d time.Duration, fn func()) (cancel func()) {
	t := l.clk.AfterFunc(d, func() {
		l.ch <- fn
	})
	return func() { t.Stop() }
}
