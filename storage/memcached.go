package storage

import (
	"bytes"
	"sort"
	"strings"
)

// MemCached is a Store wrapper buffering every change in memory until
// Persist. Dropping the wrapper without persisting leaves the underlying
// store untouched, which is how the engine rolls back failed calls.
//
// MemCached is not safe for concurrent use.
type MemCached struct {
	base Store
	mem  map[string][]byte
	del  map[string]bool
}

// NewMemCached wraps base with a fresh change buffer.
func NewMemCached(base Store) *MemCached {
	return &MemCached{
		base: base,
		mem:  make(map[string][]byte),
		del:  make(map[string]bool),
	}
}

// Get implements Store. Buffered changes shadow the underlying store.
func (c *MemCached) Get(key []byte) ([]byte, error) {
	k := string(key)
	if c.del[k] {
		return nil, ErrKeyNotFound
	}
	if v, ok := c.mem[k]; ok {
		return v, nil
	}
	return c.base.Get(key)
}

// Seek implements Store. Buffered and persisted pairs are merged in
// ascending key order, buffered deletions hide persisted pairs.
func (c *MemCached) Seek(prefix []byte, f func(key, value []byte) bool) error {
	type kv struct {
		k string
		v []byte
	}

	var pairs []kv
	err := c.base.Seek(prefix, func(k, v []byte) bool {
		sk := string(k)
		if _, ok := c.mem[sk]; !ok && !c.del[sk] {
			pairs = append(pairs, kv{sk, bytes.Clone(v)})
		}
		return true
	})
	if err != nil {
		return err
	}

	for k, v := range c.mem {
		if strings.HasPrefix(k, string(prefix)) {
			pairs = append(pairs, kv{k, v})
		}
	}

	sort.Slice(pairs, func(i, j int) bool { return pairs[i].k < pairs[j].k })

	for i := range pairs {
		if !f([]byte(pairs[i].k), pairs[i].v) {
			break
		}
	}
	return nil
}

// PutChangeSet implements Store. Changes land in the buffer only.
func (c *MemCached) PutChangeSet(puts map[string][]byte, dels map[string]bool) error {
	for k, v := range puts {
		c.mem[k] = bytes.Clone(v)
		delete(c.del, k)
	}
	for k := range dels {
		delete(c.mem, k)
		c.del[k] = true
	}
	return nil
}

// Persist flushes the buffer into the underlying store as one atomic change
// set and resets it.
func (c *MemCached) Persist() error {
	if len(c.mem) == 0 && len(c.del) == 0 {
		return nil
	}
	if err := c.base.PutChangeSet(c.mem, c.del); err != nil {
		return err
	}
	c.mem = make(map[string][]byte)
	c.del = make(map[string]bool)
	return nil
}

// Close implements Store. Buffered changes are discarded, the underlying
// store stays open.
func (c *MemCached) Close() error {
	c.mem = nil
	c.del = nil
	return nil
}
