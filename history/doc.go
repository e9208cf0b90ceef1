/*
Package history keeps the append-only archive of finalized operations.

Once the evaluator reaches a verdict, the operation leaves the pending set
and lands here together with its consensus result. Entries are never
modified or removed, so the archive doubles as the audit trail of every
decision the quorum ever made.
*/
package history

/*
History storage model.

Current conventions:
 <id>: big-endian 64-bit operation identifier

# Summary
Key-value storage format:
 - 'h<id>' -> Entry
   binary-encoded operation descriptor with its consensus result

Big-endian identifiers keep prefix scans in submission order.
*/
