package registry

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/consentry-dev/consentry/common"
	"github.com/consentry-dev/consentry/storage"
	"github.com/nspcc-dev/neo-go/pkg/io"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

const (
	nodeKeyPrefix  = 'n'
	trustKeyPrefix = 't'
)

// MaxTrust is the upper bound every stored trust level is clamped to.
const MaxTrust = 100

// Node is a single voter registry record. RegisteredAt is the logical
// height the node joined at.
type Node struct {
	ID           util.Uint160
	Role         common.Role
	RegisteredAt uint64
}

// EncodeBinary implements io.Serializable.
func (n *Node) EncodeBinary(w *io.BinWriter) {
	w.WriteBytes(n.ID[:])
	w.WriteB(byte(n.Role))
	w.WriteU64LE(n.RegisteredAt)
}

// DecodeBinary implements io.Serializable.
func (n *Node) DecodeBinary(r *io.BinReader) {
	r.ReadBytes(n.ID[:])
	n.Role = common.Role(r.ReadB())
	n.RegisteredAt = r.ReadU64LE()
}

func nodeKey(id util.Uint160) []byte {
	return append([]byte{nodeKeyPrefix}, id[:]...)
}

func trustKey(device string) []byte {
	return append([]byte{trustKeyPrefix}, device...)
}

// Put stores a registry record, overwriting any previous one for the same
// account.
func Put(s storage.Store, n Node) error {
	data, err := common.Marshal(&n)
	if err != nil {
		return fmt.Errorf("marshal node: %w", err)
	}
	return storage.Put(s, nodeKey(n.ID), data)
}

// Get returns the registry record of id. The second return is false when id
// was never registered.
func Get(s storage.Store, id util.Uint160) (Node, bool, error) {
	data, err := s.Get(nodeKey(id))
	if errors.Is(err, storage.ErrKeyNotFound) {
		return Node{}, false, nil
	}
	if err != nil {
		return Node{}, false, err
	}

	var n Node
	if err := common.Unmarshal(data, &n); err != nil {
		return Node{}, false, fmt.Errorf("unmarshal node: %w", err)
	}
	return n, true, nil
}

// List returns every registered node in account order.
func List(s storage.Store) ([]Node, error) {
	var (
		nodes  []Node
		decErr error
	)
	err := s.Seek([]byte{nodeKeyPrefix}, func(k, v []byte) bool {
		var n Node
		if decErr = common.Unmarshal(v, &n); decErr != nil {
			return false
		}
		nodes = append(nodes, n)
		return true
	})
	if err != nil {
		return nil, err
	}
	if decErr != nil {
		return nil, fmt.Errorf("unmarshal node: %w", decErr)
	}
	return nodes, nil
}

// Count returns the number of registered nodes.
func Count(s storage.Store) (uint32, error) {
	var n uint32
	err := s.Seek([]byte{nodeKeyPrefix}, func(k, v []byte) bool {
		n++
		return true
	})
	return n, err
}

// SetTrust stores the trust level of a device tag clamped to MaxTrust and
// returns the stored value.
func SetTrust(s storage.Store, device string, level uint32) (uint32, error) {
	if level > MaxTrust {
		level = MaxTrust
	}

	raw := make([]byte, 4)
	binary.LittleEndian.PutUint32(raw, level)
	if err := storage.Put(s, trustKey(device), raw); err != nil {
		return 0, err
	}
	return level, nil
}

// Trust returns the recorded trust level of a device tag. The second return
// is false when no level was ever recorded.
func Trust(s storage.Store, device string) (uint32, bool, error) {
	data, err := s.Get(trustKey(device))
	if errors.Is(err, storage.ErrKeyNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	if len(data) != 4 {
		return 0, false, fmt.Errorf("invalid trust record of %d bytes", len(data))
	}
	return binary.LittleEndian.Uint32(data), true, nil
}

// Device is a recorded device trust entry.
type Device struct {
	Tag   string
	Level uint32
}

// Devices returns every recorded device trust entry in tag order.
func Devices(s storage.Store) ([]Device, error) {
	var (
		devices []Device
		recErr  error
	)
	err := s.Seek([]byte{trustKeyPrefix}, func(k, v []byte) bool {
		if len(v) != 4 {
			recErr = fmt.Errorf("invalid trust record of %d bytes", len(v))
			return false
		}
		devices = append(devices, Device{
			Tag:   string(k[1:]),
			Level: binary.LittleEndian.Uint32(v),
		})
		return true
	})
	if err != nil {
		return nil, err
	}
	if recErr != nil {
		return nil, recErr
	}
	return devices, nil
}
