package event

import (
	"github.com/consentry-dev/consentry/common"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

// Event is a single engine notification. Name returns the notification name
// listed in the package documentation.
type Event interface {
	Name() string
}

// OperationSubmitted is emitted when a new operation enters the pending set.
type OperationSubmitted struct {
	ID        uint64
	Requester util.Uint160
	Type      common.OpType
	Device    string
	Digest    util.Uint256
}

// Name implements Event.
func (OperationSubmitted) Name() string { return "OperationSubmitted" }

// VoteCast is emitted when a ballot is accepted into the vote ledger.
type VoteCast struct {
	ID     uint64
	Voter  util.Uint160
	Role   common.Role
	Choice common.Vote
}

// Name implements Event.
func (VoteCast) Name() string { return "VoteCast" }

// ConsensusReached is emitted when an operation is finalized, whatever the
// verdict.
type ConsensusReached struct {
	ID     uint64
	Result common.ConsensusResult
}

// Name implements Event.
func (ConsensusReached) Name() string { return "ConsensusReached" }

// OperationExecuted is emitted after ConsensusReached for approved
// operations only. Executing the operation on the host is up to the
// consumer.
type OperationExecuted struct {
	ID   uint64
	Type common.OpType
}

// Name implements Event.
func (OperationExecuted) Name() string { return "OperationExecuted" }

// NodeRegistered is emitted when a node account joins the voter registry.
type NodeRegistered struct {
	Node util.Uint160
	Role common.Role
}

// Name implements Event.
func (NodeRegistered) Name() string { return "NodeRegistered" }

// MaliciousNodeDetected is emitted when a reputation update leaves a node
// under the trust floor. It is advisory, the node keeps voting until an
// operator acts on it.
type MaliciousNodeDetected struct {
	Node       util.Uint160
	Reputation uint32
}

// Name implements Event.
func (MaliciousNodeDetected) Name() string { return "MaliciousNodeDetected" }

// TrustUpdated is emitted when a device trust level is recorded.
type TrustUpdated struct {
	Device string
	Level  uint32
}

// Name implements Event.
func (TrustUpdated) Name() string { return "TrustUpdated" }

// StateRootUpdated is emitted when a registered node records a new OS state
// root.
type StateRootUpdated struct {
	Root    util.Uint256
	Updater util.Uint160
}

// Name implements Event.
func (StateRootUpdated) Name() string { return "StateRootUpdated" }
