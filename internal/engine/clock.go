package engine

import "sync/atomic"

// Clock is the monotonic logical clock that orders evaluations.
//
// Every evaluation is stamped with a strictly increasing seq from Next.
// Journal reads order by seq, never by wall time, so a replay sees
// evaluations in the order they originally ran.
//
// Safe for concurrent use.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a new clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a clock that resumes after start. A process appending
// to an existing journal starts at the journal's last seq.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next returns the next sequence number and increments the clock.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current sequence number without incrementing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
