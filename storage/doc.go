/*
Package storage defines the persistence interface of the consentry engine
together with its reference implementations.

Store is a flat ordered key-value abstraction: point reads, prefix scans in
ascending key order and atomic change sets. MemStore keeps everything in a
map and serves tests and ephemeral engines. BoltStore persists records in a
single bucket of a bbolt file and survives restarts.

MemCached layers an in-memory change buffer over any Store. The engine wraps
every state-changing call in a fresh MemCached: when the call fails the
wrapper is dropped and the underlying store is untouched, when it succeeds
the buffer lands in one atomic change set. MemCached is not safe for
concurrent use; the engine serializes access to it.
*/
package storage
