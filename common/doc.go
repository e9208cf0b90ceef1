/*
Package common contains the data types shared by every component of the
consentry engine: node roles, privileged operation descriptors, recorded
ballots and finalized consensus results.

All persistent types serialize through the Neo binary codec so that records
written by one component can be read back by any other. Marshal and Unmarshal
are the only entry points for that codec; components never touch raw
BinWriter state themselves.

Operation content digests are SHA-256 over the canonical binary form and are
rendered in base58 wherever they face an operator.
*/
package common
