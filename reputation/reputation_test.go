package reputation

import (
	"testing"

	"github.com/consentry-dev/consentry/common"
	"github.com/consentry-dev/consentry/storage"
	"github.com/nspcc-dev/neo-go/pkg/crypto/keys"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/stretchr/testify/require"
)

var testParams = Params{Reward: 1, Penalty: 2, TrustFloor: 50}

func newAccount(t *testing.T) util.Uint160 {
	k, err := keys.NewPrivateKey()
	require.NoError(t, err)
	return k.PublicKey().GetScriptHash()
}

func score(t *testing.T, s storage.Store, id util.Uint160) uint32 {
	v, ok, err := Score(s, id)
	require.NoError(t, err)
	require.True(t, ok)
	return v
}

func TestInitSeedsBaseline(t *testing.T) {
	s := storage.NewMemStore()
	id := newAccount(t)

	_, ok, err := Score(s, id)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, Init(s, id, 100))
	require.EqualValues(t, 100, score(t, s, id))
}

func TestApplyRewardsAlignedVoters(t *testing.T) {
	s := storage.NewMemStore()
	approver := newAccount(t)
	denier := newAccount(t)
	require.NoError(t, Init(s, approver, 100))
	require.NoError(t, Init(s, denier, 100))

	votes := []common.NodeVote{
		{Voter: approver, Choice: common.VoteApprove},
		{Voter: denier, Choice: common.VoteDeny},
	}

	changes, err := Apply(s, votes, true, testParams)
	require.NoError(t, err)
	require.Len(t, changes, 2)

	require.True(t, changes[0].Aligned)
	require.EqualValues(t, 101, changes[0].Score)
	require.False(t, changes[0].Flagged)

	require.False(t, changes[1].Aligned)
	require.EqualValues(t, 98, changes[1].Score)

	require.EqualValues(t, 101, score(t, s, approver))
	require.EqualValues(t, 98, score(t, s, denier))
}

func TestApplyDeniedVerdict(t *testing.T) {
	s := storage.NewMemStore()
	denier := newAccount(t)
	require.NoError(t, Init(s, denier, 100))

	changes, err := Apply(s, []common.NodeVote{
		{Voter: denier, Choice: common.VoteDeny},
	}, false, testParams)
	require.NoError(t, err)
	require.Len(t, changes, 1)
	require.True(t, changes[0].Aligned)
	require.EqualValues(t, 101, score(t, s, denier))
}

func TestApplySkipsAbstain(t *testing.T) {
	s := storage.NewMemStore()
	bystander := newAccount(t)
	require.NoError(t, Init(s, bystander, 100))

	changes, err := Apply(s, []common.NodeVote{
		{Voter: bystander, Choice: common.VoteAbstain},
	}, true, testParams)
	require.NoError(t, err)
	require.Empty(t, changes)
	require.EqualValues(t, 100, score(t, s, bystander))
}

func TestApplySaturatesAtZero(t *testing.T) {
	s := storage.NewMemStore()
	id := newAccount(t)
	require.NoError(t, Init(s, id, 1))

	changes, err := Apply(s, []common.NodeVote{
		{Voter: id, Choice: common.VoteDeny},
	}, true, testParams)
	require.NoError(t, err)
	require.EqualValues(t, 0, changes[0].Score)
	require.True(t, changes[0].Flagged)
	require.EqualValues(t, 0, score(t, s, id))
}

func TestApplyFlagsUnderTrustFloor(t *testing.T) {
	s := storage.NewMemStore()
	id := newAccount(t)
	require.NoError(t, Init(s, id, 51))

	changes, err := Apply(s, []common.NodeVote{
		{Voter: id, Choice: common.VoteDeny},
	}, true, testParams)
	require.NoError(t, err)
	require.EqualValues(t, 49, changes[0].Score)
	require.True(t, changes[0].Flagged)

	// Exactly at the floor is not flagged.
	other := newAccount(t)
	require.NoError(t, Init(s, other, 52))
	changes, err = Apply(s, []common.NodeVote{
		{Voter: other, Choice: common.VoteDeny},
	}, true, testParams)
	require.NoError(t, err)
	require.EqualValues(t, 50, changes[0].Score)
	require.False(t, changes[0].Flagged)
}
