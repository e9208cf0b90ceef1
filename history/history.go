package history

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/consentry-dev/consentry/common"
	"github.com/consentry-dev/consentry/storage"
	"github.com/nspcc-dev/neo-go/pkg/io"
)

const entryKeyPrefix = 'h'

// Entry is a single archived verdict.
type Entry struct {
	ID        uint64
	Operation common.Operation
	Result    common.ConsensusResult
}

// EncodeBinary implements io.Serializable.
func (e *Entry) EncodeBinary(w *io.BinWriter) {
	w.WriteU64LE(e.ID)
	e.Operation.EncodeBinary(w)
	e.Result.EncodeBinary(w)
}

// DecodeBinary implements io.Serializable.
func (e *Entry) DecodeBinary(r *io.BinReader) {
	e.ID = r.ReadU64LE()
	e.Operation.DecodeBinary(r)
	e.Result.DecodeBinary(r)
}

func entryKey(id uint64) []byte {
	key := make([]byte, 9)
	key[0] = entryKeyPrefix
	binary.BigEndian.PutUint64(key[1:], id)
	return key
}

// Put archives a finalized operation together with its verdict.
func Put(s storage.Store, e Entry) error {
	data, err := common.Marshal(&e)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}
	return storage.Put(s, entryKey(e.ID), data)
}

// Get returns the archived entry of id. The second return is false when id
// was never archived.
func Get(s storage.Store, id uint64) (Entry, bool, error) {
	data, err := s.Get(entryKey(id))
	if errors.Is(err, storage.ErrKeyNotFound) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}

	var e Entry
	if err := common.Unmarshal(data, &e); err != nil {
		return Entry{}, false, fmt.Errorf("unmarshal entry: %w", err)
	}
	return e, true, nil
}

// Has reports whether an entry for id exists.
func Has(s storage.Store, id uint64) (bool, error) {
	_, err := s.Get(entryKey(id))
	if errors.Is(err, storage.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// List returns every archived entry in submission order.
func List(s storage.Store) ([]Entry, error) {
	var (
		entries []Entry
		decErr  error
	)
	err := s.Seek([]byte{entryKeyPrefix}, func(k, v []byte) bool {
		var e Entry
		if decErr = common.Unmarshal(v, &e); decErr != nil {
			return false
		}
		entries = append(entries, e)
		return true
	})
	if err != nil {
		return nil, err
	}
	if decErr != nil {
		return nil, fmt.Errorf("unmarshal entry: %w", decErr)
	}
	return entries, nil
}
