package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/secretsguard/internal/keyring"
	"github.com/iudanet/secretsguard/internal/store"
)

// BoltDB bucket names
var bucketKeys = []byte("keys")

// Keyring is a BoltDB-backed key cache.
type Keyring struct {
	db *bbolt.DB
}

// Compile-time check that Keyring implements the keyring interface
var _ keyring.Keyring = (*Keyring)(nil)

// keyEntry is the stored form of a cached key.
type keyEntry struct {
	Data  []byte `json:"data"`
	Plain bool   `json:"plain"`
}

// New opens (creating if necessary) the keyring database at dbPath.
func New(ctx context.Context, dbPath string) (*Keyring, error) {
	db, err := bbolt.Open(dbPath, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyring database: %w", err)
	}

	k := &Keyring{db: db}
	if err := k.initBuckets(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}
	return k, nil
}

// Close closes the database.
func (k *Keyring) Close() error {
	if k.db == nil {
		return nil
	}
	return k.db.Close()
}

func (k *Keyring) initBuckets() error {
	return k.db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketKeys); err != nil {
			return fmt.Errorf("failed to create keys bucket: %w", err)
		}
		return nil
	})
}

// Has reports whether a key is cached for the named store.
func (k *Keyring) Has(ctx context.Context, name string) (bool, error) {
	var found bool
	err := k.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketKeys)
		if bucket == nil {
			return fmt.Errorf("keys bucket not found")
		}
		found = bucket.Get([]byte(name)) != nil
		return nil
	})
	return found, err
}

// Get returns the cached key for the named store.
func (k *Keyring) Get(ctx context.Context, name string) (store.Key, error) {
	var entry keyEntry

	err := k.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketKeys)
		if bucket == nil {
			return fmt.Errorf("keys bucket not found")
		}

		data := bucket.Get([]byte(name))
		if data == nil {
			return keyring.ErrKeyNotFound
		}
		if err := json.Unmarshal(data, &entry); err != nil {
			return fmt.Errorf("failed to unmarshal key entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return store.Key{}, err
	}

	return store.Key{Data: entry.Data, Plain: entry.Plain}, nil
}

// Put caches the key for the named store.
func (k *Keyring) Put(ctx context.Context, name string, key store.Key) error {
	return k.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketKeys)
		if bucket == nil {
			return fmt.Errorf("keys bucket not found")
		}

		data, err := json.Marshal(keyEntry{Data: key.Data, Plain: key.Plain})
		if err != nil {
			return fmt.Errorf("failed to marshal key entry: %w", err)
		}
		if err := bucket.Put([]byte(name), data); err != nil {
			return fmt.Errorf("failed to save key entry: %w", err)
		}
		return nil
	})
}

// Delete drops the cached key for the named store.
func (k *Keyring) Delete(ctx context.Context, name string) error {
	return k.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketKeys)
		if bucket == nil {
			return fmt.Errorf("keys bucket not found")
		}
		return bucket.Delete([]byte(name))
	})
}
