package storage

import "errors"

// ErrKeyNotFound is returned by Store.Get when the requested key is absent.
var ErrKeyNotFound = errors.New("key not found")

// Store is the persistence abstraction every engine component works
// against. Implementations must keep keys ordered bytewise ascending for
// Seek and must apply change sets atomically: either every put and deletion
// lands or none does.
type Store interface {
	// Get returns the value stored under key or ErrKeyNotFound.
	Get(key []byte) ([]byte, error)

	// Seek visits pairs whose keys start with prefix, in ascending key
	// order, until f returns false or pairs run out. Slices passed to f
	// are only valid for the duration of the call.
	Seek(prefix []byte, f func(key, value []byte) bool) error

	// PutChangeSet atomically stores every pair from puts and removes
	// every key present in dels. A key must not appear in both maps.
	PutChangeSet(puts map[string][]byte, dels map[string]bool) error

	// Close releases resources held by the store.
	Close() error
}

// Put stores a single key-value pair.
func Put(s Store, key, value []byte) error {
	return s.PutChangeSet(map[string][]byte{string(key): value}, nil)
}

// Delete removes a single key.
func Delete(s Store, key []byte) error {
	return s.PutChangeSet(nil, map[string]bool{string(key): true})
}
