/*
Package registry keeps the set of node accounts allowed to vote on
privileged operations, together with the advisory trust levels of the
devices they run on.

A node registers once with a fixed role; re-registration is rejected by the
engine so that a flagged node cannot shed its reputation record by signing
up again. Device trust is a plain operator-maintained hint in the 0..100
range and takes no part in vote counting.
*/
package registry
