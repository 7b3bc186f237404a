package storage

import (
	"context"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

const defaultBoltBucket = "session"

// Bolt persists session keys in a local BoltDB file. One bucket, one
// key-value pair per session field.
type Bolt struct {
	db     *bolt.DB
	bucket []byte
}

// OpenBolt opens (or creates) the BoltDB file at path and ensures the
// session bucket exists. An empty bucket name selects the default.
func OpenBolt(path string, bucket string) (*Bolt, error) {
	if bucket == "" {
		bucket = defaultBoltBucket
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &Bolt{db: db, bucket: []byte(bucket)}, nil
}

func (b *Bolt) Get(_ context.Context, key string) (string, error) {
	if b == nil || b.db == nil {
		return "", ErrClosed
	}
	var value string
	found := false
	err := b.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(b.bucket).Get([]byte(key))
		if raw != nil {
			value = string(raw)
			found = true
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if !found {
		return "", ErrNotFound
	}
	return value, nil
}

func (b *Bolt) Set(_ context.Context, key, value string) error {
	if b == nil || b.db == nil {
		return ErrClosed
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(b.bucket).Put([]byte(key), []byte(value))
	})
}

func (b *Bolt) Delete(_ context.Context, key string) error {
	if b == nil || b.db == nil {
		return ErrClosed
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(b.bucket).Delete([]byte(key))
	})
}

// Close releases the underlying database file.
func (b *Bolt) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	err := b.db.Close()
	b.db = nil
	return err
}
