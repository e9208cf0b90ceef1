/*
Package reputation tracks how reliably each registered node votes with the
final verdict.

Every node starts at the configured baseline. After an operation is
finalized, nodes that voted with the verdict earn a small reward and nodes
that voted against it pay a larger penalty, saturating at zero. Abstaining
ballots leave the score untouched. A node whose score falls under the trust
floor is flagged as potentially malicious; the flag is advisory and does not
strip the node of its ballot.
*/
package reputation

/*
Reputation storage model.

Current conventions:
 <node>: 20-byte node account script hash

# Summary
Key-value storage format:
 - 'r<node>' -> uint32
   little-endian reputation score of the node

# Score
Scores move only on finalization and only for approve and deny ballots.
*/
