package store

import (
	"sort"
	"strings"

	"github.com/apex/log"
)

// Key is the key material a store holds: either a plaintext passphrase or an
// already-derived key. The cipher is told which kind it receives so it can
// decide whether to run key derivation; the store itself never derives or
// hashes anything.
type Key struct {
	Data  []byte
	Plain bool
}

// PlainKey wraps a plaintext passphrase.
func PlainKey(passphrase string) Key {
	return Key{Data: []byte(passphrase), Plain: true}
}

// DerivedKey wraps an already-derived key.
func DerivedKey(key []byte) Key {
	return Key{Data: key, Plain: false}
}

// Store is one named, independently keyed encrypted collection of secrets plus
// its field schema. The whole store is persisted as a single encrypted document
// at fullpath. Records keep insertion order at rest; the sorted view used for
// ID addressing is computed on demand. A Store instance is not safe for
// concurrent use, and the backing file is not locked.
type Store struct {
	fullpath string
	key      Key
	cipher   Cipher
	fields   []Field
	secrets  []*Secret
}

// New creates an empty store bound to the artifact at fullpath. The store is
// populated either by Open or by AddFields/AddSecret.
func New(fullpath string, key Key, cipher Cipher) *Store {
	return &Store{fullpath: fullpath, key: key, cipher: cipher}
}

// Path returns the full path of the backing artifact.
func (s *Store) Path() string {
	return s.fullpath
}

// Key returns the key material the store holds.
func (s *Store) Key() Key {
	return s.key
}

// Secrets returns the records in storage (insertion) order.
func (s *Store) Secrets() []*Secret {
	return s.secrets
}

// AddSecret creates a new record from input: every schema field whose name
// matches an input key case-insensitively gets the corresponding value, in
// schema order; input keys matching no schema field are dropped silently.
// The record is appended to the store.
func (s *Store) AddSecret(input map[string]string) *Secret {
	secret := NewSecret()
	s.applySecretChange(secret, input)
	log.WithField("fields", secret.Keys()).Debug("adding secret")
	s.secrets = append(s.secrets, secret)
	return secret
}

// RemoveSecrets removes the records addressed by ids, which are positions in
// the current sorted view. All ids are resolved against one sorted snapshot,
// then deleted in descending storage order so one removal cannot shift the
// meaning of another in the same batch. Out-of-range ids are skipped; the call
// reports how many records were removed and fails with ErrIndexOutOfBounds
// only when none were.
func (s *Store) RemoveSecrets(ids ...int) (int, error) {
	perm := s.sortedToStorage()

	targets := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if id < 0 || id >= len(perm) {
			log.WithField("id", id).Warn("invalid secret id; out of bounds")
			continue
		}
		targets[perm[id]] = struct{}{}
	}
	if len(targets) == 0 {
		return 0, ErrIndexOutOfBounds
	}

	positions := make([]int, 0, len(targets))
	for pos := range targets {
		positions = append(positions, pos)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(positions)))

	for _, pos := range positions {
		log.WithField("position", pos).Debug("removing secret")
		s.secrets = append(s.secrets[:pos], s.secrets[pos+1:]...)
	}
	return len(positions), nil
}

// ModifySecret merges patch onto the record addressed by id in the current
// sorted view, using the same case-insensitive field matching as AddSecret.
// Fields absent from patch keep their prior values.
func (s *Store) ModifySecret(id int, patch map[string]string) error {
	perm := s.sortedToStorage()
	if id < 0 || id >= len(perm) {
		return ErrIndexOutOfBounds
	}
	s.applySecretChange(s.secrets[perm[id]], patch)
	return nil
}

// SecretAt returns the record addressed by id in the current sorted view.
func (s *Store) SecretAt(id int) (*Secret, error) {
	perm := s.sortedToStorage()
	if id < 0 || id >= len(perm) {
		return nil, ErrIndexOutOfBounds
	}
	return s.secrets[perm[id]], nil
}

// Clear removes all records and keeps the schema.
func (s *Store) Clear() {
	s.secrets = nil
}

// CloneContentFrom replaces this store's schema and records with another
// store's, used when re-keying: the new store holds the new key while the
// content carries over. Ownership of the record collection transfers; the
// source must not be mutated afterwards.
func (s *Store) CloneContentFrom(other *Store) {
	s.fields = other.fields
	s.secrets = other.secrets
}

// applySecretChange pushes every value of mod whose key matches a schema field
// name case-insensitively onto secret, under the schema's spelling of the
// name. Mod keys are visited in sorted order so the merge is deterministic
// when two keys differ only by case.
func (s *Store) applySecretChange(secret *Secret, mod map[string]string) {
	modKeys := make([]string, 0, len(mod))
	for k := range mod {
		modKeys = append(modKeys, k)
	}
	sort.Strings(modKeys)

	for _, field := range s.FieldNames() {
		for _, k := range modKeys {
			if strings.EqualFold(field, k) {
				secret.Set(field, mod[k])
			}
		}
	}
}
