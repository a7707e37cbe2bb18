package store

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Secret is one record of a store: a sparse mapping from field name to string
// value that remembers the order entries were inserted in. Entry order matters:
// it is the canonical sort input (see SortedSecrets) and the iteration order of
// the search engine, so it must survive a save/open round trip. A plain Go map
// cannot guarantee that (and encoding/json sorts map keys), hence the explicit
// container.
type Secret struct {
	keys   []string
	values map[string]string
}

// Entry is a single (field, value) pair of a secret.
type Entry struct {
	Key   string
	Value string
}

// NewSecret creates an empty secret.
func NewSecret() *Secret {
	return &Secret{values: make(map[string]string)}
}

// Set stores a value under key. An existing entry is updated in place keeping
// its position; a new entry is appended.
func (s *Secret) Set(key, value string) {
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

// Get returns the value stored under key.
func (s *Secret) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Len returns the number of entries.
func (s *Secret) Len() int {
	return len(s.keys)
}

// Keys returns the field names in insertion order.
func (s *Secret) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Entries returns the (key, value) pairs in insertion order.
func (s *Secret) Entries() []Entry {
	out := make([]Entry, 0, len(s.keys))
	for _, k := range s.keys {
		out = append(out, Entry{Key: k, Value: s.values[k]})
	}
	return out
}

// Clone returns an independent copy with the same entries in the same order.
func (s *Secret) Clone() *Secret {
	c := &Secret{
		keys:   make([]string, len(s.keys)),
		values: make(map[string]string, len(s.values)),
	}
	copy(c.keys, s.keys)
	for k, v := range s.values {
		c.values[k] = v
	}
	return c
}

// MarshalJSON encodes the secret as a JSON object with entries in insertion
// order.
func (s *Secret) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range s.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(s.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object preserving the order its members appear
// in the document.
func (s *Secret) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to decode secret: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("secret must be a JSON object, got %v", tok)
	}

	decoded := NewSecret()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("failed to decode secret key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("secret key must be a string, got %v", keyTok)
		}

		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("failed to decode value of field %q: %w", key, err)
		}
		decoded.Set(key, value)
	}

	*s = *decoded
	return nil
}
