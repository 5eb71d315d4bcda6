package relax

import "sync/atomic"

// Counting wraps an Oracle and counts Solve invocations.
// Safe for concurrent use if the wrapped oracle is.
type Counting struct {
	Inner Oracle
	calls atomic.Int64
}

var _ Oracle = (*Counting)(nil)

// NewCounting wraps inner.
func NewCounting(inner Oracle) *Counting { return &Counting{Inner: inner} }

// Solve forwards to the wrapped oracle.
func (c *Counting) Solve(p Problem) (Result, error) {
	c.calls.Add(1)

	return c.Inner.Solve(p)
}

// Calls returns the number of Solve invocations so far.
func (c *Counting) Calls() int64 { return c.calls.Load() }
