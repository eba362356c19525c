package server

import "sync/atomic"

// IDGenerator hands out monotonic, never-reused network ids across
// every connection the listener accepts, shared by every worker.
type IDGenerator struct {
	next int64
}

// NewIDGenerator returns a generator whose first NextID() call yields 1.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{}
}

// NextID returns the next id in sequence.
func (g *IDGenerator) NextID() int {
	return int(atomic.AddInt64(&g.next, 1))
}
