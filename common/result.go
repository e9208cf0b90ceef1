package common

import (
	"github.com/nspcc-dev/neo-go/pkg/io"
)

// ConsensusResult is the outcome summary stored alongside a finalized
// operation. TotalVotes counts every recorded ballot including abstentions;
// the verdict itself is derived from ApproveVotes and DenyVotes only.
// ThresholdMet reports whether quorum was reached before finalization; an
// operation force-finalized without quorum is always denied.
type ConsensusResult struct {
	Approved     bool
	ApproveVotes uint32
	DenyVotes    uint32
	TotalVotes   uint32
	ThresholdMet bool
}

// EncodeBinary implements io.Serializable.
func (c *ConsensusResult) EncodeBinary(w *io.BinWriter) {
	w.WriteBool(c.Approved)
	w.WriteU32LE(c.ApproveVotes)
	w.WriteU32LE(c.DenyVotes)
	w.WriteU32LE(c.TotalVotes)
	w.WriteBool(c.ThresholdMet)
}

// DecodeBinary implements io.Serializable.
func (c *ConsensusResult) DecodeBinary(r *io.BinReader) {
	c.Approved = r.ReadBool()
	c.ApproveVotes = r.ReadU32LE()
	c.DenyVotes = r.ReadU32LE()
	c.TotalVotes = r.ReadU32LE()
	c.ThresholdMet = r.ReadBool()
}
