package consensus

import (
	"fmt"
	"testing"

	"github.com/consentry-dev/consentry/common"
	"github.com/consentry-dev/consentry/event"
	"github.com/stretchr/testify/require"
)

// runVotes plays a fresh operation through one ballot per node and a single
// Finalize call, with choices[i] belonging to node i and order deciding the
// cast sequence.
func runVotes(t *testing.T, choices []common.Vote, order []int, tweak func(*Config)) *common.ConsensusResult {
	env := newTestEnv(t, len(choices), tweak)
	id := env.submit(common.OpSudo, "visudo")

	if order == nil {
		order = make([]int, len(choices))
		for i := range order {
			order[i] = i
		}
	}
	for _, n := range order {
		env.cast(id, n, choices[n])
	}

	res, err := env.engine.Finalize(id)
	require.NoError(t, err)
	return res
}

func TestApprovalArithmetic(t *testing.T) {
	a, d := common.VoteApprove, common.VoteDeny

	for _, tc := range []struct {
		choices  []common.Vote
		approved bool
	}{
		{[]common.Vote{a, a, a}, true},
		{[]common.Vote{a, a, d}, true},          // 66% > 60%
		{[]common.Vote{a, d, d}, false},         // 33% < 60%
		{[]common.Vote{a, a, a, d, d}, true},    // exactly 60%
		{[]common.Vote{a, a, d, d, d}, false},   // 40% < 60%
		{[]common.Vote{d, d, d}, false},
	} {
		t.Run(fmt.Sprintf("%v", tc.choices), func(t *testing.T) {
			res := runVotes(t, tc.choices, nil, nil)
			require.NotNil(t, res)
			require.Equal(t, tc.approved, res.Approved)
			require.True(t, res.ThresholdMet)
			require.EqualValues(t, len(tc.choices), res.TotalVotes)
		})
	}
}

func TestAbstainExcludedFromVerdict(t *testing.T) {
	// One approval against one denial is 50%, the two abstentions only
	// carry the tally over quorum.
	res := runVotes(t, []common.Vote{
		common.VoteApprove,
		common.VoteAbstain,
		common.VoteAbstain,
		common.VoteDeny,
	}, nil, nil)
	require.NotNil(t, res)
	require.False(t, res.Approved)
	require.True(t, res.ThresholdMet)
	require.EqualValues(t, 4, res.TotalVotes)
	require.EqualValues(t, 1, res.ApproveVotes)
	require.EqualValues(t, 1, res.DenyVotes)
}

func TestAllAbstainDenied(t *testing.T) {
	res := runVotes(t, []common.Vote{
		common.VoteAbstain,
		common.VoteAbstain,
		common.VoteAbstain,
	}, nil, nil)
	require.NotNil(t, res)
	require.False(t, res.Approved)
	require.True(t, res.ThresholdMet)
	require.EqualValues(t, 3, res.TotalVotes)
	require.EqualValues(t, 0, res.ApproveVotes)
	require.EqualValues(t, 0, res.DenyVotes)
}

func TestVerdictIgnoresCastOrder(t *testing.T) {
	choices := []common.Vote{
		common.VoteApprove,
		common.VoteDeny,
		common.VoteApprove,
		common.VoteAbstain,
		common.VoteApprove,
	}

	base := runVotes(t, choices, nil, nil)
	require.NotNil(t, base)

	for _, order := range [][]int{
		{4, 3, 2, 1, 0},
		{2, 0, 4, 1, 3},
		{1, 4, 0, 3, 2},
	} {
		res := runVotes(t, choices, order, nil)
		require.NotNil(t, res)
		require.Equal(t, *base, *res)
	}
}

func TestFinalizeEagerOrLate(t *testing.T) {
	// Running the check after every ballot must land on the same verdict
	// as running it once at the end.
	eager := newTestEnv(t, 3, nil)
	id := eager.submit(common.OpSudo, "visudo")

	var eagerRes *common.ConsensusResult
	for n, choice := range []common.Vote{common.VoteApprove, common.VoteApprove, common.VoteDeny} {
		eager.cast(id, n, choice)

		res, err := eager.engine.Finalize(id)
		require.NoError(t, err)
		if n < 2 {
			require.Nil(t, res)
		} else {
			eagerRes = res
		}
	}

	lateRes := runVotes(t, []common.Vote{common.VoteApprove, common.VoteApprove, common.VoteDeny}, nil, nil)

	require.NotNil(t, eagerRes)
	require.NotNil(t, lateRes)
	require.Equal(t, *lateRes, *eagerRes)
}

func TestForceFinalizeSmallFleet(t *testing.T) {
	// Two registered nodes can never reach the default quorum of three.
	// Once both voted the operation is finalized as denied anyway.
	env := newTestEnv(t, 2, nil)
	id := env.submit(common.OpSudo, "visudo")

	env.cast(id, 0, common.VoteApprove)

	res, err := env.engine.Finalize(id)
	require.NoError(t, err)
	require.Nil(t, res)

	env.cast(id, 1, common.VoteApprove)

	res, err = env.engine.Finalize(id)
	require.NoError(t, err)
	require.NotNil(t, res)
	require.False(t, res.Approved)
	require.False(t, res.ThresholdMet)
	require.EqualValues(t, 2, res.TotalVotes)
	require.EqualValues(t, 2, res.ApproveVotes)

	entry, err := env.engine.Archived(id)
	require.NoError(t, err)
	require.Equal(t, *res, entry.Result)

	require.Contains(t, env.sink.Names(), "ConsensusReached")
	require.NotContains(t, env.sink.Names(), "OperationExecuted")
}

func TestFinalizeCap(t *testing.T) {
	env := newTestEnv(t, 5, func(cfg *Config) { cfg.FinalizeCap = 2 })
	id := env.submit(common.OpSudo, "visudo")

	env.cast(id, 0, common.VoteApprove)
	env.cast(id, 1, common.VoteApprove)

	res, err := env.engine.Finalize(id)
	require.NoError(t, err)
	require.NotNil(t, res)
	require.False(t, res.Approved)
	require.False(t, res.ThresholdMet)
	require.EqualValues(t, 2, res.TotalVotes)
}

func TestAbsoluteRule(t *testing.T) {
	a, d, abst := common.VoteApprove, common.VoteDeny, common.VoteAbstain
	absolute := func(cfg *Config) { cfg.Rule = RuleAbsolute }

	for _, tc := range []struct {
		choices  []common.Vote
		approved bool
	}{
		{[]common.Vote{a, a, a, d}, true},     // three approvals suffice
		{[]common.Vote{a, a, d, d}, false},    // two do not
		{[]common.Vote{a, a, a, abst}, true},  // abstentions change nothing
		{[]common.Vote{a, a, abst, abst}, false},
	} {
		t.Run(fmt.Sprintf("%v", tc.choices), func(t *testing.T) {
			res := runVotes(t, tc.choices, nil, absolute)
			require.NotNil(t, res)
			require.Equal(t, tc.approved, res.Approved)
			require.True(t, res.ThresholdMet)
		})
	}
}

func TestTrustFloorFlag(t *testing.T) {
	// Seed reputation one point over the floor so a single misaligned
	// ballot drops the node under it.
	env := newTestEnv(t, 3, func(cfg *Config) { cfg.BaselineReputation = DefaultTrustFloor + 1 })
	id := env.submit(common.OpSudo, "visudo")

	env.cast(id, 0, common.VoteApprove)
	env.cast(id, 1, common.VoteApprove)
	env.cast(id, 2, common.VoteDeny)

	res, err := env.engine.Finalize(id)
	require.NoError(t, err)
	require.NotNil(t, res)
	require.True(t, res.Approved)

	require.EqualValues(t, DefaultTrustFloor-1, env.reputation(2))

	var flagged []event.MaliciousNodeDetected
	for _, e := range env.sink.Envelopes() {
		if ev, ok := e.Event.(event.MaliciousNodeDetected); ok {
			flagged = append(flagged, ev)
		}
	}
	require.Len(t, flagged, 1)
	require.Equal(t, env.nodes[2], flagged[0].Node)
	require.EqualValues(t, DefaultTrustFloor-1, flagged[0].Reputation)
}

func TestPenaltySaturatesAtZero(t *testing.T) {
	env := newTestEnv(t, 3, func(cfg *Config) { cfg.BaselineReputation = 1 })
	id := env.submit(common.OpSudo, "visudo")

	env.cast(id, 0, common.VoteApprove)
	env.cast(id, 1, common.VoteApprove)
	env.cast(id, 2, common.VoteDeny)

	_, err := env.engine.Finalize(id)
	require.NoError(t, err)

	// Penalty of two against a score of one bottoms out instead of
	// wrapping around.
	require.EqualValues(t, 0, env.reputation(2))
}
