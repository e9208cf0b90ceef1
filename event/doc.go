/*
Package event defines the notifications emitted by the consentry engine and
the sinks that consume them.

Notifications are emitted only after a state change has been persisted, in
the order the changes happened inside the call. A failed call emits nothing.

# Engine notifications

OperationSubmitted notification:

	ID: integer - identifier of the submitted operation
	Requester: Uint160 - account that asked for the operation
	Type: integer - operation category
	Device: string - originating device tag
	Digest: Uint256 - content digest of the operation

VoteCast notification:

	ID: integer - identifier of the voted operation
	Voter: Uint160 - account that cast the ballot
	Role: integer - role of the voting node
	Choice: integer - approve, deny or abstain

ConsensusReached notification:

	ID: integer - identifier of the finalized operation
	Result: structure - verdict and vote counters

OperationExecuted notification:

	ID: integer - identifier of the approved operation
	Type: integer - operation category

NodeRegistered notification:

	Node: Uint160 - account added to the voter registry
	Role: integer - role of the node

MaliciousNodeDetected notification:

	Node: Uint160 - account whose reputation fell under the trust floor
	Reputation: integer - reputation after the update

TrustUpdated notification:

	Device: string - device tag
	Level: integer - clamped trust level

StateRootUpdated notification:

	Root: Uint256 - new OS state root
	Updater: Uint160 - account that recorded it
*/
package event
