package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func secretOf(pairs ...string) *Secret {
	s := NewSecret()
	for i := 0; i+1 < len(pairs); i += 2 {
		s.Set(pairs[i], pairs[i+1])
	}
	return s
}

func TestCompareSecrets(t *testing.T) {
	tests := []struct {
		name     string
		a        *Secret
		b        *Secret
		expected int
	}{
		{
			name:     "equal",
			a:        secretOf("Site", "a.com", "Password", "p"),
			b:        secretOf("Site", "a.com", "Password", "p"),
			expected: 0,
		},
		{
			name:     "value decides",
			a:        secretOf("Site", "a.com"),
			b:        secretOf("Site", "b.com"),
			expected: -1,
		},
		{
			name:     "key decides before value",
			a:        secretOf("Account", "zzz"),
			b:        secretOf("Site", "aaa"),
			expected: -1,
		},
		{
			name:     "shorter prefix sorts first",
			a:        secretOf("Site", "a.com"),
			b:        secretOf("Site", "a.com", "Password", "p"),
			expected: -1,
		},
		{
			name:     "first difference wins over later entries",
			a:        secretOf("Site", "a.com", "Password", "zzz"),
			b:        secretOf("Site", "b.com", "Password", "aaa"),
			expected: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, compareSecrets(tt.a, tt.b))
			assert.Equal(t, -tt.expected, compareSecrets(tt.b, tt.a))
		})
	}
}

func TestCompareSecrets_OrderIsStructural(t *testing.T) {
	// Same values, different insertion order: these are different records as
	// far as the canonical order is concerned.
	a := secretOf("Site", "a.com", "Password", "p")
	b := secretOf("Password", "p", "Site", "a.com")

	assert.NotEqual(t, 0, compareSecrets(a, b))
}

func TestSortSecrets_LeavesInputAlone(t *testing.T) {
	first := secretOf("Site", "b.com")
	second := secretOf("Site", "a.com")
	in := []*Secret{first, second}

	sorted := sortSecrets(in)

	require.Len(t, sorted, 2)
	assert.Same(t, second, sorted[0])
	assert.Same(t, first, sorted[1])
	// Storage order is untouched.
	assert.Same(t, first, in[0])
	assert.Same(t, second, in[1])
}

func TestSortedSecrets_Deterministic(t *testing.T) {
	s := New("unused", PlainKey("k"), nil)
	s.AddFields(Field{Name: "Site"}, Field{Name: "Password"})
	s.AddSecret(map[string]string{"Site": "c.com", "Password": "3"})
	s.AddSecret(map[string]string{"Site": "a.com", "Password": "1"})
	s.AddSecret(map[string]string{"Site": "b.com", "Password": "2"})

	first := s.SortedSecrets()
	second := s.SortedSecrets()

	require.Len(t, first, 3)
	for i := range first {
		assert.Same(t, first[i], second[i])
	}

	sites := make([]string, 0, len(first))
	for _, sec := range first {
		v, _ := sec.Get("Site")
		sites = append(sites, v)
	}
	assert.Equal(t, []string{"a.com", "b.com", "c.com"}, sites)
}

func TestSortedToStorage(t *testing.T) {
	s := New("unused", PlainKey("k"), nil)
	s.AddFields(Field{Name: "Site"})
	s.AddSecret(map[string]string{"Site": "c.com"}) // storage 0
	s.AddSecret(map[string]string{"Site": "a.com"}) // storage 1
	s.AddSecret(map[string]string{"Site": "b.com"}) // storage 2

	assert.Equal(t, []int{1, 2, 0}, s.sortedToStorage())
}
