/*
Package consensus implements the voting engine that gates privileged OS
operations behind quorum agreement of a personal device fleet.

A process asks for a privileged operation through Submit. Registered nodes
inspect the request and cast at most one ballot each through Cast. Finalize
runs the evaluator: once quorum is met it derives the verdict, archives the
operation with its result, purges the ballots and feeds the outcome back
into node reputations. The embedding runtime chooses when to call Finalize;
calling it after every ballot or once at the end follows the same rules.
Operations that cannot reach quorum are force-finalized as denied once
every registered node has spoken.

All state lives in an injected storage.Store. Every state-changing call is
applied as one atomic change set and a rejected call leaves the store
untouched. Notifications go to the configured event.Sink only after the
change set persisted, in emission order; see the event package for the
notification list.

# Engine storage model

Current conventions:
 <id>: big-endian 64-bit operation identifier
 <node>: 20-byte node account script hash
 <device>: UTF-8 device tag

Key-value storage format:
 - 'V' -> uint32
   little-endian storage schema version
 - 'c' -> uint64
   little-endian next operation identifier
 - 'o<id>' -> Operation
   pending operation descriptor
 - 'v<id><node>' -> NodeVote
   recorded ballot of the node on the operation
 - 's' -> Uint256
   last recorded OS state root
 - 'n<node>' -> Node
   voter registry record (see registry package)
 - 't<device>' -> uint32
   advisory device trust level (see registry package)
 - 'r<node>' -> uint32
   node reputation score (see reputation package)
 - 'h<id>' -> Entry
   archived verdict (see history package)
*/
package consensus
