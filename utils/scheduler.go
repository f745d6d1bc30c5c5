package utils

import (
	"sync"
	"time"
)

// Scheduler coalesces bursts of work per key: scheduling under a key that
// already has pending work cancels the pending work and replaces it, so a
// burst of rapid calls runs the last one exactly once after the delay.
// Used for per-cell grid edits and quote recomputation alike.
type Scheduler struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
}

func NewScheduler() *Scheduler {
	return &Scheduler{timers: make(map[string]*time.Timer)}
}

// Schedule queues work to run after delay, replacing any pending work for
// the same key. work runs on a timer goroutine.
func (s *Scheduler) Schedule(key string, delay time.Duration, work func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[key]; ok {
		t.Stop()
	}
	var timer *time.Timer
	timer = time.AfterFunc(delay, func() {
		s.mu.Lock()
		// Only forget the entry if it is still ours; a replacement may
		// already have been scheduled between firing and locking.
		if s.timers[key] == timer {
			delete(s.timers, key)
		}
		s.mu.Unlock()
		work()
	})
	s.timers[key] = timer
}

// Cancel drops pending work for key. Reports whether anything was pending.
func (s *Scheduler) Cancel(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.timers[key]
	if !ok {
		return false
	}
	t.Stop()
	delete(s.timers, key)
	return ok
}

// Stop cancels all pending work. In-flight work already fired is not
// interrupted.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, t := range s.timers {
		t.Stop()
		delete(s.timers, k)
	}
}
