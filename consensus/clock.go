package consensus

import "go.uber.org/atomic"

// Clock supplies the logical height stamped on operations, ballots and
// notifications. Heights must never decrease. The engine never interprets
// heights beyond storing and reporting them.
type Clock interface {
	Height() uint64
}

// TickClock is a Clock advanced explicitly by the embedding runtime,
// typically one tick per processed block or batch.
type TickClock struct {
	height atomic.Uint64
}

// NewTickClock creates a TickClock starting at start.
func NewTickClock(start uint64) *TickClock {
	c := new(TickClock)
	c.height.Store(start)
	return c
}

// Height implements Clock.
func (c *TickClock) Height() uint64 {
	return c.height.Load()
}

// Tick advances the clock by one and returns the new height.
func (c *TickClock) Tick() uint64 {
	return c.height.Add(1)
}
