package preview

import (
	"sync"
	"time"
)

// Scheduler coalesces rapid preview requests so only the final position of a
// scrub gesture reaches the capture pipeline. Each Request restarts the
// debounce window; when the window elapses the most recent time fires once.
type Scheduler struct {
	mu     sync.Mutex
	delay  time.Duration
	timer  *time.Timer
	latest float64
	seq    uint64
	fire   func(seconds float64)
}

// NewScheduler creates a scheduler that invokes fire with the last requested
// time once delay has passed without a newer request. A non-positive delay
// fires synchronously.
func NewScheduler(delay time.Duration, fire func(seconds float64)) *Scheduler {
	return &Scheduler{delay: delay, fire: fire}
}

// Request records seconds as the newest desired preview time and restarts the
// debounce window.
func (s *Scheduler) Request(seconds float64) {
	if s.delay <= 0 {
		s.fire(seconds)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.latest = seconds
	if s.timer != nil {
		s.timer.Stop()
	}

	// Stop cannot interrupt a callback that already started running, so each
	// timer carries a sequence token and a superseded callback no-ops.
	s.seq++
	seq := s.seq

	s.timer = time.AfterFunc(s.delay, func() {
		s.mu.Lock()

		if seq != s.seq {
			s.mu.Unlock()
			return
		}

		seconds := s.latest
		s.timer = nil
		s.mu.Unlock()

		s.fire(seconds)
	})
}

// Stop discards any pending request without firing it.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
