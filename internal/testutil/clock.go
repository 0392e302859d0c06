package testutil

import (
	"sync"
	"time"
)

// Epoch is the base time used by test clocks.
var Epoch = time.Date(2025, time.October, 15, 6, 0, 0, 0, time.UTC)

// FixedClock always returns the same instant.
//
// Thread-safety: FixedClock is immutable and safe for concurrent use.
type FixedClock struct {
	T time.Time
}

// NewFixedClock creates a clock pinned to Epoch.
func NewFixedClock() FixedClock {
	return FixedClock{T: Epoch}
}

// Now returns the pinned instant.
func (c FixedClock) Now() time.Time {
	return c.T
}

// StepClock advances by one second on every call.
//
// Tests use it to prove that a value was computed once: a second computation
// would observe a later instant.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type StepClock struct {
	mu    sync.Mutex
	calls int64
}

// NewStepClock creates a step clock whose first call returns Epoch.
func NewStepClock() *StepClock {
	return &StepClock{}
}

// Now returns Epoch plus one second per previous call.
func (c *StepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := Epoch.Add(time.Duration(c.calls) * time.Second)
	c.calls++
	return t
}

// Calls returns how many times Now has been called.
func (c *StepClock) Calls() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// Reset rewinds the clock so the next call returns Epoch.
func (c *StepClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = 0
}
