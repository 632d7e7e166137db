package testutil

import (
	"sync"
	"time"
)

// DefaultEpoch is the first instant a DeterministicClock reports.
var DefaultEpoch = time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)

// DeterministicClock is a thread-safe wall clock for tests that advances
// by a fixed step on every reading.
//
// Handing its Now method to store.WithClock makes record timestamps
// reproducible, which golden snapshots depend on.
type DeterministicClock struct {
	mu    sync.Mutex
	start time.Time
	step  time.Duration
	ticks int64
}

// NewDeterministicClock creates a clock starting at DefaultEpoch that
// advances one second per reading.
//
// The first call to Now() returns DefaultEpoch.
func NewDeterministicClock() *DeterministicClock {
	return NewDeterministicClockAt(DefaultEpoch, time.Second)
}

// NewDeterministicClockAt creates a clock starting at start that advances
// by step per reading.
func NewDeterministicClockAt(start time.Time, step time.Duration) *DeterministicClock {
	return &DeterministicClock{start: start, step: step}
}

// Now returns the current reading and advances the clock.
func (c *DeterministicClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.start.Add(time.Duration(c.ticks) * c.step)
	c.ticks++
	return t
}

// Ticks returns how many readings have been taken.
func (c *DeterministicClock) Ticks() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ticks
}

// Reset rewinds the clock so the next Now() returns the start time again.
func (c *DeterministicClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ticks = 0
}
