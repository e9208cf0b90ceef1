package storage

import (
	"bytes"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

// consentryBucket is the single bucket every record lives in.
var consentryBucket = []byte("consentry")

// BoltStore is a Store backed by a bbolt database file. Each change set is
// applied in one write transaction.
type BoltStore struct {
	db *bbolt.DB
}

// NewBoltStore opens or creates a bbolt database at path and prepares the
// record bucket.
func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(consentryBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Get implements Store.
func (s *BoltStore) Get(key []byte) ([]byte, error) {
	var value []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket(consentryBucket).Get(key); v != nil {
			value = bytes.Clone(v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, ErrKeyNotFound
	}
	return value, nil
}

// Seek implements Store. Slices passed to f alias transaction memory and
// must be copied if retained.
func (s *BoltStore) Seek(prefix []byte, f func(key, value []byte) bool) error {
	return s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(consentryBucket).Cursor()
		for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			if !f(k, v) {
				break
			}
		}
		return nil
	})
}

// PutChangeSet implements Store.
func (s *BoltStore) PutChangeSet(puts map[string][]byte, dels map[string]bool) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(consentryBucket)
		for k, v := range puts {
			if err := b.Put([]byte(k), v); err != nil {
				return err
			}
		}
		for k := range dels {
			if err := b.Delete([]byte(k)); err != nil {
				return err
			}
		}
		return nil
	})
}

// Close implements Store.
func (s *BoltStore) Close() error {
	return s.db.Close()
}
