package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNodeVoteCodec(t *testing.T) {
	v := NodeVote{
		Voter:  newAccount(t),
		Role:   RolePi,
		Choice: VoteDeny,
		Reason: "unsigned package source",
		Height: 100,
	}

	data, err := Marshal(&v)
	require.NoError(t, err)

	var restored NodeVote
	require.NoError(t, Unmarshal(data, &restored))
	require.Equal(t, v, restored)
}

func TestNodeVoteCodecEmptyReason(t *testing.T) {
	v := NodeVote{
		Voter:  newAccount(t),
		Role:   RoleFriend,
		Choice: VoteAbstain,
	}

	data, err := Marshal(&v)
	require.NoError(t, err)

	var restored NodeVote
	require.NoError(t, Unmarshal(data, &restored))
	require.Equal(t, v, restored)
}

func TestVoteValidity(t *testing.T) {
	require.False(t, Vote(0).Valid())
	require.False(t, Vote(4).Valid())

	for _, v := range []Vote{VoteApprove, VoteDeny, VoteAbstain} {
		require.True(t, v.Valid())
		require.NotEqual(t, "unknown", v.String())
	}
}

func TestConsensusResultCodec(t *testing.T) {
	res := ConsensusResult{
		Approved:     true,
		ApproveVotes: 3,
		DenyVotes:    1,
		TotalVotes:   5,
		ThresholdMet: true,
	}

	data, err := Marshal(&res)
	require.NoError(t, err)

	var restored ConsensusResult
	require.NoError(t, Unmarshal(data, &restored))
	require.Equal(t, res, restored)
}

func TestRoleValidity(t *testing.T) {
	require.False(t, Role(0).Valid())

	for _, r := range []Role{RoleLaptop, RolePhone, RolePi, RoleCloud, RoleFriend} {
		require.True(t, r.Valid())
		require.NotEqual(t, "unknown", r.String())
	}
}
