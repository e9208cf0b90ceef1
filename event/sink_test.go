package event

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func envelope(ev Event) Envelope {
	return Envelope{ID: uuid.New(), Height: 1, Event: ev}
}

func TestChanSinkDelivers(t *testing.T) {
	s := NewChanSink(2)

	s.Notify(envelope(OperationExecuted{ID: 1}))
	s.Notify(envelope(OperationExecuted{ID: 2}))

	env := <-s.C()
	require.Equal(t, "OperationExecuted", env.Event.Name())
	require.EqualValues(t, 1, env.Event.(OperationExecuted).ID)

	env = <-s.C()
	require.EqualValues(t, 2, env.Event.(OperationExecuted).ID)
}

func TestChanSinkDropsWhenFull(t *testing.T) {
	s := NewChanSink(1)

	s.Notify(envelope(OperationExecuted{ID: 1}))
	s.Notify(envelope(OperationExecuted{ID: 2})) // dropped, consumer lags

	env := <-s.C()
	require.EqualValues(t, 1, env.Event.(OperationExecuted).ID)

	select {
	case env = <-s.C():
		t.Fatalf("unexpected envelope %v", env)
	default:
	}
}

func TestCollectorKeepsOrder(t *testing.T) {
	var c Collector

	c.Notify(envelope(ConsensusReached{ID: 5}))
	c.Notify(envelope(OperationExecuted{ID: 5}))

	require.Equal(t, []string{"ConsensusReached", "OperationExecuted"}, c.Names())
	require.Len(t, c.Envelopes(), 2)
}

func TestMultiSinkFansOut(t *testing.T) {
	var a, b Collector
	m := MultiSink{&a, &b}

	m.Notify(envelope(TrustUpdated{Device: "pi-1", Level: 80}))

	require.Len(t, a.Envelopes(), 1)
	require.Len(t, b.Envelopes(), 1)
}

func TestZapSink(t *testing.T) {
	s := NewZapSink(zaptest.NewLogger(t))
	s.Notify(envelope(VoteCast{ID: 3}))
}
