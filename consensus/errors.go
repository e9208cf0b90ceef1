package consensus

import "errors"

// Error kinds returned by engine calls. All of them are recoverable and a
// rejected call leaves the store untouched.
var (
	// ErrOperationNotFound is returned when the referenced operation is
	// not in the pending set.
	ErrOperationNotFound = errors.New("operation not found")

	// ErrAlreadyVoted is returned when a node casts a second ballot on
	// the same operation. The first recorded choice stays.
	ErrAlreadyVoted = errors.New("already voted")

	// ErrNodeNotRegistered is returned when an account outside the voter
	// registry tries to act as a node.
	ErrNodeNotRegistered = errors.New("node not registered")

	// ErrConsensusReached is returned when a ballot arrives for an
	// operation that was already finalized.
	ErrConsensusReached = errors.New("consensus already reached")

	// ErrInvalidOperation is returned when a submitted operation fails
	// structural validation.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrInsufficientPermissions is returned when the caller may not
	// perform the requested state change.
	ErrInsufficientPermissions = errors.New("insufficient permissions")

	// ErrAlreadyRegistered is returned when a registered node registers
	// again. Registration is one-shot so that a flagged node cannot reset
	// its reputation record.
	ErrAlreadyRegistered = errors.New("node already registered")
)
