package jobsystem

import "sync/atomic"

// Semaphore is a counting semaphore bounding how many job computations run
// at once. A [System] created with [WithLimit] uses one internally; it is
// exported for hosts that want to gate their own goroutines the same way.
type Semaphore struct {
	slots    chan struct{}
	acquired atomic.Int64
}

// NewSemaphore creates a semaphore with n slots.
// Panics if n <= 0.
func NewSemaphore(n int) *Semaphore {
	if n <= 0 {
		panic("jobsystem: NewSemaphore requires n > 0")
	}
	return &Semaphore{slots: make(chan struct{}, n)}
}

// Acquire blocks until a slot is free and takes it.
func (s *Semaphore) Acquire() {
	s.slots <- struct{}{}
	s.acquired.Add(1)
}

// TryAcquire takes a slot if one is free and reports whether it did.
func (s *Semaphore) TryAcquire() bool {
	select {
	case s.slots <- struct{}{}:
		s.acquired.Add(1)
		return true
	default:
		return false
	}
}

// Release frees a slot. Panics if more slots are released than acquired.
func (s *Semaphore) Release() {
	if s.acquired.Add(-1) < 0 {
		s.acquired.Add(1)
		panic("jobsystem: Semaphore.Release called without matching Acquire")
	}
	<-s.slots
}

// Available returns the number of free slots.
// The value may be stale by the time the caller uses it.
func (s *Semaphore) Available() int {
	return cap(s.slots) - len(s.slots)
}
