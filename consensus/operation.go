package consensus

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/consentry-dev/consentry/common"
	"github.com/consentry-dev/consentry/storage"
)

// Storage key prefixes of the engine core. The registry, reputation and
// history packages own further prefixes in the same key space, see the
// package documentation for the full model.
const (
	pendingKeyPrefix = 'o'
	voteKeyPrefix    = 'v'
	counterKey       = 'c'
	stateRootKey     = 's'
	versionKey       = 'V'
)

func pendingKey(id uint64) []byte {
	key := make([]byte, 9)
	key[0] = pendingKeyPrefix
	binary.BigEndian.PutUint64(key[1:], id)
	return key
}

// nextID reserves the next operation identifier. Identifiers are sequential
// and start at 1.
func nextID(s storage.Store) (uint64, error) {
	id := uint64(1)

	data, err := s.Get([]byte{counterKey})
	switch {
	case errors.Is(err, storage.ErrKeyNotFound):
	case err != nil:
		return 0, err
	case len(data) != 8:
		return 0, fmt.Errorf("invalid counter record of %d bytes", len(data))
	default:
		id = binary.LittleEndian.Uint64(data)
	}

	next := make([]byte, 8)
	binary.LittleEndian.PutUint64(next, id+1)
	if err := storage.Put(s, []byte{counterKey}, next); err != nil {
		return 0, err
	}
	return id, nil
}

func putPending(s storage.Store, id uint64, op common.Operation) error {
	data, err := common.Marshal(&op)
	if err != nil {
		return fmt.Errorf("marshal operation: %w", err)
	}
	return storage.Put(s, pendingKey(id), data)
}

func getPending(s storage.Store, id uint64) (common.Operation, bool, error) {
	data, err := s.Get(pendingKey(id))
	if errors.Is(err, storage.ErrKeyNotFound) {
		return common.Operation{}, false, nil
	}
	if err != nil {
		return common.Operation{}, false, err
	}

	var op common.Operation
	if err := common.Unmarshal(data, &op); err != nil {
		return common.Operation{}, false, fmt.Errorf("unmarshal operation: %w", err)
	}
	return op, true, nil
}

func deletePending(s storage.Store, id uint64) error {
	return storage.Delete(s, pendingKey(id))
}

// PendingOperation pairs an operation identifier with its descriptor.
type PendingOperation struct {
	ID        uint64
	Operation common.Operation
}

func listPending(s storage.Store) ([]PendingOperation, error) {
	var (
		ops    []PendingOperation
		decErr error
	)
	err := s.Seek([]byte{pendingKeyPrefix}, func(k, v []byte) bool {
		if len(k) != 9 {
			decErr = fmt.Errorf("invalid pending key of %d bytes", len(k))
			return false
		}

		var op common.Operation
		if decErr = common.Unmarshal(v, &op); decErr != nil {
			return false
		}
		ops = append(ops, PendingOperation{
			ID:        binary.BigEndian.Uint64(k[1:]),
			Operation: op,
		})
		return true
	})
	if err != nil {
		return nil, err
	}
	if decErr != nil {
		return nil, fmt.Errorf("list pending: %w", decErr)
	}
	return ops, nil
}
