package event

import (
	"slices"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Envelope wraps an emitted event with delivery metadata. ID is unique per
// emission, Height is the logical height the emitting call ran at.
type Envelope struct {
	ID     uuid.UUID
	Height uint64
	Event  Event
}

// Sink consumes envelopes emitted by the engine. Notify runs on the engine
// call path and must not block.
type Sink interface {
	Notify(Envelope)
}

// NopSink discards every envelope.
type NopSink struct{}

// Notify implements Sink.
func (NopSink) Notify(Envelope) {}

// ChanSink forwards envelopes into a buffered channel. Envelopes are
// dropped when the consumer lags behind, Notify never blocks.
type ChanSink struct {
	ch chan Envelope
}

// NewChanSink creates a ChanSink with the given buffer size. Non-positive
// sizes fall back to 64.
func NewChanSink(buf int) *ChanSink {
	if buf <= 0 {
		buf = 64
	}
	return &ChanSink{ch: make(chan Envelope, buf)}
}

// Notify implements Sink.
func (s *ChanSink) Notify(env Envelope) {
	select {
	case s.ch <- env:
	default:
	}
}

// C returns the consumer side of the sink.
func (s *ChanSink) C() <-chan Envelope {
	return s.ch
}

// ZapSink writes every envelope to a zap logger.
type ZapSink struct {
	log *zap.Logger
}

// NewZapSink creates a ZapSink on top of l.
func NewZapSink(l *zap.Logger) *ZapSink {
	return &ZapSink{log: l}
}

// Notify implements Sink.
func (s *ZapSink) Notify(env Envelope) {
	s.log.Info("notification",
		zap.String("name", env.Event.Name()),
		zap.Stringer("id", env.ID),
		zap.Uint64("height", env.Height),
		zap.Any("event", env.Event),
	)
}

// MultiSink fans every envelope out to all nested sinks in order.
type MultiSink []Sink

// Notify implements Sink.
func (m MultiSink) Notify(env Envelope) {
	for _, s := range m {
		s.Notify(env)
	}
}

// Collector retains every received envelope. Intended for tests.
type Collector struct {
	mu   sync.Mutex
	envs []Envelope
}

// Notify implements Sink.
func (c *Collector) Notify(env Envelope) {
	c.mu.Lock()
	c.envs = append(c.envs, env)
	c.mu.Unlock()
}

// Envelopes returns a copy of everything received so far.
func (c *Collector) Envelopes() []Envelope {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.envs)
}

// Names returns the received event names in arrival order.
func (c *Collector) Names() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	names := make([]string, len(c.envs))
	for i := range c.envs {
		names[i] = c.envs[i].Event.Name()
	}
	return names
}
