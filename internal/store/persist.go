package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/apex/log"
)

// Cipher is the external encryption provider the store delegates to. The key
// is passed through exactly as the store holds it, including the plain/derived
// distinction; the provider is an opaque byte-string cipher as far as the
// store is concerned.
type Cipher interface {
	// Encrypt writes plaintext encrypted under key to the artifact at path.
	Encrypt(path string, key Key, plaintext []byte) error

	// Decrypt reads the artifact at path and returns the decrypted plaintext.
	Decrypt(path string, key Key) ([]byte, error)
}

// document is the canonical plaintext form of a store: a schema list and a
// data list, both required.
type document struct {
	Model []Field   `json:"model"`
	Data  []*Secret `json:"data"`
}

// Open reads the backing artifact, decrypts it with the store's key and
// populates schema and records. Missing artifact, decryption failure and
// malformed document all collapse into a single "cannot open store" outcome;
// the wrapped cause is kept for diagnostics only. On failure schema and
// records are left empty, never partially populated.
func (s *Store) Open() error {
	fail := func(cause error) error {
		s.fields = nil
		s.secrets = nil
		return fmt.Errorf("cannot open store %q: %w", s.fullpath, cause)
	}

	log.WithField("path", s.fullpath).Debug("opening store")

	if _, err := os.Stat(s.fullpath); err != nil {
		if os.IsNotExist(err) {
			return fail(ErrStoreNotFound)
		}
		return fail(err)
	}

	plaintext, err := s.cipher.Decrypt(s.fullpath, s.key)
	if err != nil {
		return fail(err)
	}

	doc, err := parseDocument(plaintext)
	if err != nil {
		return fail(err)
	}

	s.fields = doc.Model
	s.secrets = doc.Data
	return nil
}

// Save serializes the current schema and records, encrypts the document and
// rewrites the backing artifact, creating the parent directory if needed.
// All-or-nothing from the caller's point of view: on failure the on-disk state
// of a previously existing artifact is unspecified. There is no temp-file and
// rename step, so crash-safety is not guaranteed.
func (s *Store) Save() error {
	log.WithField("path", s.fullpath).Debug("saving store")

	dir := filepath.Dir(s.fullpath)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("%w: failed to create directory %q: %v", ErrPersistFailed, dir, err)
	}

	// Both document members are lists even when empty; nil slices would
	// serialize as null and break the canonical format.
	doc := document{Model: s.fields, Data: s.secrets}
	if doc.Model == nil {
		doc.Model = []Field{}
	}
	if doc.Data == nil {
		doc.Data = []*Secret{}
	}

	plaintext, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: failed to serialize store: %v", ErrPersistFailed, err)
	}

	if err := s.cipher.Encrypt(s.fullpath, s.key, plaintext); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}

	if _, err := os.Stat(s.fullpath); err != nil {
		return fmt.Errorf("%w: artifact missing after write: %v", ErrPersistFailed, err)
	}
	return nil
}

// Destroy deletes the backing artifact and resets the in-memory schema and
// records. It fails with ErrStoreNotFound when there is nothing to destroy.
func (s *Store) Destroy() error {
	log.WithField("path", s.fullpath).Debug("destroying store")

	if _, err := os.Stat(s.fullpath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("nothing to destroy at %q: %w", s.fullpath, ErrStoreNotFound)
		}
		return err
	}
	if err := os.Remove(s.fullpath); err != nil {
		return fmt.Errorf("failed to destroy store %q: %w", s.fullpath, err)
	}

	s.fields = nil
	s.secrets = nil
	return nil
}

// parseDocument decodes and validates the canonical document format. Both
// top-level members must be present; schema entries may omit the hidden and
// mandatory flags, which default to false.
func parseDocument(plaintext []byte) (*document, error) {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(plaintext, &members); err != nil {
		return nil, fmt.Errorf("malformed store document: %w", err)
	}

	rawModel, ok := members["model"]
	if !ok {
		return nil, fmt.Errorf("malformed store document: missing \"model\"")
	}
	rawData, ok := members["data"]
	if !ok {
		return nil, fmt.Errorf("malformed store document: missing \"data\"")
	}

	doc := &document{}
	if err := json.Unmarshal(rawModel, &doc.Model); err != nil {
		return nil, fmt.Errorf("malformed store model: %w", err)
	}
	if err := json.Unmarshal(rawData, &doc.Data); err != nil {
		return nil, fmt.Errorf("malformed store data: %w", err)
	}
	return doc, nil
}
