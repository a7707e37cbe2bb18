// Package keyring defines the local key cache consulted before prompting for
// a store key and populated after a successful open.
package keyring

import (
	"context"
	"errors"

	"github.com/iudanet/secretsguard/internal/store"
)

// ErrKeyNotFound indicates that no key is cached for the store
var ErrKeyNotFound = errors.New("no cached key for store")

// Keyring caches store keys by store name. Implementations persist the key in
// derived form; a plaintext key supplied explicitly by the user is never put
// here unless the caching path is exercised on purpose.
type Keyring interface {
	// Has reports whether a key is cached for the named store
	Has(ctx context.Context, name string) (bool, error)

	// Get returns the cached key for the named store
	// Returns ErrKeyNotFound if nothing is cached
	Get(ctx context.Context, name string) (store.Key, error)

	// Put caches the key for the named store, replacing any previous entry
	Put(ctx context.Context, name string, key store.Key) error

	// Delete drops the cached key for the named store, if any
	Delete(ctx context.Context, name string) error
}

// Noop is a Keyring that caches nothing, used when the cache is disabled.
type Noop struct{}

func (Noop) Has(ctx context.Context, name string) (bool, error) {
	return false, nil
}

func (Noop) Get(ctx context.Context, name string) (store.Key, error) {
	return store.Key{}, ErrKeyNotFound
}

func (Noop) Put(ctx context.Context, name string, key store.Key) error {
	return nil
}

func (Noop) Delete(ctx context.Context, name string) error {
	return nil
}
