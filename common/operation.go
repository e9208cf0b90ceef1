package common

import (
	"github.com/mr-tron/base58"
	"github.com/nspcc-dev/neo-go/pkg/crypto/hash"
	"github.com/nspcc-dev/neo-go/pkg/io"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

// OpType is an enumeration for categories of privileged OS operations.
type OpType int

const (
	_ OpType = iota

	// OpSudo stands for privilege escalation requests.
	OpSudo

	// OpFileWrite stands for writes to protected filesystem paths.
	OpFileWrite

	// OpNetwork stands for network configuration changes.
	OpNetwork

	// OpDevice stands for attaching or detaching hardware devices.
	OpDevice

	// OpProcess stands for signalling or tracing other processes.
	OpProcess

	// OpMemory stands for direct memory access requests.
	OpMemory
)

// Valid checks if t is a valid operation category.
func (t OpType) Valid() bool {
	return t >= OpSudo && t <= OpMemory
}

// String implements fmt.Stringer.
func (t OpType) String() string {
	switch t {
	case OpSudo:
		return "sudo"
	case OpFileWrite:
		return "file-write"
	case OpNetwork:
		return "network"
	case OpDevice:
		return "device"
	case OpProcess:
		return "process"
	case OpMemory:
		return "memory"
	default:
		return "unknown"
	}
}

// Class is an enumeration for operation criticality classes. The class
// decides how an operation is routed before any ballot is opened.
type Class int

const (
	_ Class = iota

	// ClassSecurity stands for security-critical operations that always
	// go through a full quorum vote.
	ClassSecurity

	// ClassPerformance stands for performance-sensitive operations that
	// may reuse a recent matching verdict instead of opening a new ballot.
	ClassPerformance

	// ClassRoutine stands for operations safe to execute locally without
	// distributed agreement.
	ClassRoutine
)

// Valid checks if c is a valid criticality class.
func (c Class) Valid() bool {
	return c >= ClassSecurity && c <= ClassRoutine
}

// String implements fmt.Stringer.
func (c Class) String() string {
	switch c {
	case ClassSecurity:
		return "security"
	case ClassPerformance:
		return "performance"
	case ClassRoutine:
		return "routine"
	default:
		return "unknown"
	}
}

// Operation describes a privileged OS operation awaiting a verdict. Payload
// holds the category-specific detail (command line, target path, interface
// name) and Device tags the machine the request originated from.
type Operation struct {
	Requester util.Uint160
	Type      OpType
	Class     Class
	Payload   []byte
	Device    string
	Height    uint64
}

// EncodeBinary implements io.Serializable.
func (o *Operation) EncodeBinary(w *io.BinWriter) {
	w.WriteBytes(o.Requester[:])
	w.WriteB(byte(o.Type))
	w.WriteB(byte(o.Class))
	w.WriteVarBytes(o.Payload)
	w.WriteString(o.Device)
	w.WriteU64LE(o.Height)
}

// DecodeBinary implements io.Serializable.
func (o *Operation) DecodeBinary(r *io.BinReader) {
	r.ReadBytes(o.Requester[:])
	o.Type = OpType(r.ReadB())
	o.Class = Class(r.ReadB())
	o.Payload = r.ReadVarBytes()
	o.Device = r.ReadString()
	o.Height = r.ReadU64LE()
}

// Digest returns the SHA-256 content digest of the canonical binary form of
// the operation. Two operations with the same requester, category, payload,
// device tag and height share a digest.
func (o *Operation) Digest() (util.Uint256, error) {
	data, err := Marshal(o)
	if err != nil {
		return util.Uint256{}, err
	}
	return hash.Sha256(data), nil
}

// DigestString renders an operation digest the way journal tooling and logs
// print it.
func DigestString(d util.Uint256) string {
	return base58.Encode(d.BytesBE())
}
