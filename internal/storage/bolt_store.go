package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

const localStorageBucket = "local_storage"

// boltStore implements a Store backed by BoltDB.
type boltStore struct {
	db *bolt.DB
}

// openBolt initializes a BoltDB-backed Store. The file holds credentials, so both the
// directory and the file are owner-only.
func openBolt(path string) (Store, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt db: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(localStorageBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("init bucket: %w", err)
	}

	return &boltStore{db: db}, nil
}

// Close closes the BoltDB store.
func (b *boltStore) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

// Get returns the value stored under key.
func (b *boltStore) Get(key string) (string, bool, error) {
	if b == nil || b.db == nil {
		return "", false, nil
	}

	var (
		value string
		ok    bool
	)
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(localStorageBucket))
		if bucket == nil {
			return fmt.Errorf("local storage bucket missing")
		}
		// Bytes returned by Get are only valid inside the transaction.
		if raw := bucket.Get([]byte(key)); raw != nil {
			value, ok = string(raw), true
		}
		return nil
	})
	return value, ok, err
}

// Set stores value under key, replacing any previous value.
func (b *boltStore) Set(key, value string) error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(localStorageBucket))
		if bucket == nil {
			return fmt.Errorf("local storage bucket missing")
		}
		return bucket.Put([]byte(key), []byte(value))
	})
}

// Delete removes key. Missing keys are not an error.
func (b *boltStore) Delete(key string) error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(localStorageBucket))
		if bucket == nil {
			return fmt.Errorf("local storage bucket missing")
		}
		return bucket.Delete([]byte(key))
	})
}
