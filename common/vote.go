package common

import (
	"github.com/nspcc-dev/neo-go/pkg/io"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

// Vote is an enumeration for ballot choices.
type Vote int

const (
	_ Vote = iota

	// VoteApprove stands for a vote to let the operation execute.
	VoteApprove

	// VoteDeny stands for a vote to block the operation.
	VoteDeny

	// VoteAbstain stands for an explicit refusal to take a side. Abstaining
	// counts towards quorum but not towards the verdict.
	VoteAbstain
)

// Valid checks if v is a valid ballot choice.
func (v Vote) Valid() bool {
	switch v {
	case VoteApprove, VoteDeny, VoteAbstain:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (v Vote) String() string {
	switch v {
	case VoteApprove:
		return "approve"
	case VoteDeny:
		return "deny"
	case VoteAbstain:
		return "abstain"
	default:
		return "unknown"
	}
}

// NodeVote is a single recorded ballot. Each registered node holds at most
// one per pending operation; the first recorded choice is final. Height is
// the logical height at which the ballot was accepted.
type NodeVote struct {
	Voter  util.Uint160
	Role   Role
	Choice Vote
	Reason string
	Height uint64
}

// EncodeBinary implements io.Serializable.
func (v *NodeVote) EncodeBinary(w *io.BinWriter) {
	w.WriteBytes(v.Voter[:])
	w.WriteB(byte(v.Role))
	w.WriteB(byte(v.Choice))
	w.WriteString(v.Reason)
	w.WriteU64LE(v.Height)
}

// DecodeBinary implements io.Serializable.
func (v *NodeVote) DecodeBinary(r *io.BinReader) {
	r.ReadBytes(v.Voter[:])
	v.Role = Role(r.ReadB())
	v.Choice = Vote(r.ReadB())
	v.Reason = r.ReadString()
	v.Height = r.ReadU64LE()
}
