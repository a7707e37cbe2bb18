package store

import (
	"sort"
	"strings"
)

// compareSecrets orders two secrets by full lexicographic comparison of their
// (key, value) entry sequences, each sequence taken in the secret's own
// insertion order. This is a structural order: two secrets showing identical
// values in schema order still compare unequal when their entries were inserted
// in a different order. Display IDs depend on this order, so it must stay
// exactly as is.
func compareSecrets(a, b *Secret) int {
	ae, be := a.Entries(), b.Entries()
	n := len(ae)
	if len(be) < n {
		n = len(be)
	}
	for i := 0; i < n; i++ {
		if c := strings.Compare(ae[i].Key, be[i].Key); c != 0 {
			return c
		}
		if c := strings.Compare(ae[i].Value, be[i].Value); c != 0 {
			return c
		}
	}
	// Shorter entry sequence sorts first, like a sequence prefix.
	switch {
	case len(ae) < len(be):
		return -1
	case len(ae) > len(be):
		return 1
	default:
		return 0
	}
}

// sortSecrets returns a sorted copy of the given slice; the slice itself is
// left alone since records keep insertion order at rest.
func sortSecrets(secrets []*Secret) []*Secret {
	sorted := make([]*Secret, len(secrets))
	copy(sorted, secrets)
	sort.SliceStable(sorted, func(i, j int) bool {
		return compareSecrets(sorted[i], sorted[j]) < 0
	})
	return sorted
}

// SortedSecrets returns the store's records in canonical order. Display and
// removal IDs are 0-based positions in this view, recomputed on every call;
// they are never stable across mutations.
func (s *Store) SortedSecrets() []*Secret {
	return sortSecrets(s.secrets)
}

// sortedToStorage maps every position of the current sorted view back to the
// position of the same record in underlying storage order.
func (s *Store) sortedToStorage() []int {
	type keyed struct {
		secret  *Secret
		storage int
	}
	entries := make([]keyed, len(s.secrets))
	for i, sec := range s.secrets {
		entries[i] = keyed{secret: sec, storage: i}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return compareSecrets(entries[i].secret, entries[j].secret) < 0
	})
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.storage
	}
	return out
}
