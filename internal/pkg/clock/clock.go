// Package clock provides the time sources used by command handlers and jobs.
package clock

import (
	"sync"
	"time"
)

// System reads the wall clock.
type System struct{}

func NewSystem() System {
	return System{}
}

func (System) Now() time.Time {
	return time.Now()
}

// Manual is a settable clock for tests and simulations. It is safe for concurrent use.
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the clock forward by d and returns the new time.
func (m *Manual) Advance(d time.Duration) time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
	return m.now
}

func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}
