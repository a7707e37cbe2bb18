package store

import "errors"

// Errors surfaced by store operations. Open failures wrap their cause so the
// caller sees a single "cannot open store" outcome while the message keeps the
// diagnostic detail.
var (
	// ErrStoreNotFound indicates that the store artifact does not exist on disk
	ErrStoreNotFound = errors.New("store not found")

	// ErrIndexOutOfBounds indicates an invalid secret id on modify/remove
	ErrIndexOutOfBounds = errors.New("invalid secret id; out of bounds")

	// ErrPersistFailed indicates that the store could not be written to disk
	ErrPersistFailed = errors.New("cannot persist store")
)
