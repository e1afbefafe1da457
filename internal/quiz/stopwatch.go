package quiz

import (
	"sync"
	"time"
)

// Stopwatch fires a callback at a fixed cadence until stopped. It backs the
// micro-reel reading timer; the session controller creates one when a reel
// item becomes current and must Stop it on navigation, restart, or session
// close so a discarded item can never keep ticking.
type Stopwatch struct {
	stop     chan struct{}
	stopOnce sync.Once
}

// NewStopwatch starts ticking immediately.
func NewStopwatch(interval time.Duration, tick func()) *Stopwatch {
	s := &Stopwatch{stop: make(chan struct{})}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-s.stop:
				return
			case <-ticker.C:
				tick()
			}
		}
	}()

	return s
}

// Stop tears the stopwatch down. Idempotent. An already in-flight tick may
// still complete; callers that care must discard ticks for stale instance
// keys, which the session controller does.
func (s *Stopwatch) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}
