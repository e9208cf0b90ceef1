package storage

import (
	"bytes"
	"sort"
	"strings"
	"sync"
)

// MemStore is an in-memory Store kept in a plain map. It is safe for
// concurrent use and loses all contents on process exit.
type MemStore struct {
	mu sync.RWMutex
	m  map[string][]byte
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{m: make(map[string][]byte)}
}

// Get implements Store.
func (s *MemStore) Get(key []byte) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if v, ok := s.m[string(key)]; ok {
		return v, nil
	}
	return nil, ErrKeyNotFound
}

// Seek implements Store. Matching pairs are snapshotted before f runs, so f
// may write back into the store.
func (s *MemStore) Seek(prefix []byte, f func(key, value []byte) bool) error {
	type kv struct {
		k string
		v []byte
	}

	s.mu.RLock()
	var pairs []kv
	for k, v := range s.m {
		if strings.HasPrefix(k, string(prefix)) {
			pairs = append(pairs, kv{k, v})
		}
	}
	s.mu.RUnlock()

	sort.Slice(pairs, func(i, j int) bool { return pairs[i].k < pairs[j].k })

	for i := range pairs {
		if !f([]byte(pairs[i].k), pairs[i].v) {
			break
		}
	}
	return nil
}

// PutChangeSet implements Store.
func (s *MemStore) PutChangeSet(puts map[string][]byte, dels map[string]bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k, v := range puts {
		s.m[k] = bytes.Clone(v)
	}
	for k := range dels {
		delete(s.m, k)
	}
	return nil
}

// Close implements Store.
func (s *MemStore) Close() error {
	return nil
}
