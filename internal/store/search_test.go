package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrep_CaseInsensitiveByDefault(t *testing.T) {
	s := newTestStore()
	s.AddSecret(map[string]string{"Site": "Example.COM"})
	s.AddSecret(map[string]string{"Site": "other.org"})

	matches, err := s.Grep("example", SearchOptions{})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	v, _ := matches[0].Secret.Get("Site")
	assert.Equal(t, "Example.COM", v)
}

func TestGrep_CaseSensitive(t *testing.T) {
	s := newTestStore()
	s.AddSecret(map[string]string{"Site": "Example.COM"})

	matches, err := s.Grep("example", SearchOptions{CaseSensitive: true})
	require.NoError(t, err)
	assert.Empty(t, matches)

	matches, err = s.Grep("Example", SearchOptions{CaseSensitive: true})
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestGrep_RegularExpression(t *testing.T) {
	s := newTestStore()
	s.AddSecret(map[string]string{"Site": "megavideo.com", "Account": "me"})
	s.AddSecret(map[string]string{"Site": "video.org"})

	matches, err := s.Grep(`^mega.*\.com$`, SearchOptions{})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	v, _ := matches[0].Secret.Get("Site")
	assert.Equal(t, "megavideo.com", v)
}

func TestGrep_InvalidPattern(t *testing.T) {
	s := newTestStore()
	_, err := s.Grep("(unclosed", SearchOptions{})
	assert.Error(t, err)
}

func TestGrep_EmptyResultIsNotAnError(t *testing.T) {
	s := newTestStore()
	s.AddSecret(map[string]string{"Site": "a.com"})

	matches, err := s.Grep("nothing-matches-this", SearchOptions{})
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestGrep_MatchIndexesAreFresh(t *testing.T) {
	s := newTestStore()
	s.AddSecret(map[string]string{"Site": "a.com", "Account": "p1"})
	s.AddSecret(map[string]string{"Site": "b.com", "Account": "other"})

	// The matched record holds id 0 in the match set even if it holds a
	// different id in the full store view.
	matches, err := s.Grep("p1", SearchOptions{})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, 0, matches[0].ID)

	all, err := s.Grep("com", SearchOptions{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, 0, all[0].ID)
	assert.Equal(t, 1, all[1].ID)
}

func TestGrep_MatchSetIsSorted(t *testing.T) {
	s := newTestStore()
	s.AddSecret(map[string]string{"Site": "c.com"})
	s.AddSecret(map[string]string{"Site": "a.com"})
	s.AddSecret(map[string]string{"Site": "b.com"})

	matches, err := s.Grep("com", SearchOptions{})
	require.NoError(t, err)
	require.Len(t, matches, 3)

	var sites []string
	for _, m := range matches {
		v, _ := m.Secret.Get("Site")
		sites = append(sites, v)
	}
	assert.Equal(t, []string{"a.com", "b.com", "c.com"}, sites)
}

func TestGrep_WithoutHighlightReturnsOriginals(t *testing.T) {
	s := newTestStore()
	s.AddSecret(map[string]string{"Site": "a.com"})

	matches, err := s.Grep("a", SearchOptions{})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Same(t, s.Secrets()[0], matches[0].Secret)
}

func TestGrep_HighlightWrapsEverySpan(t *testing.T) {
	s := newTestStore()
	s.AddSecret(map[string]string{"Site": "abcabc"})

	matches, err := s.Grep("abc", SearchOptions{
		Highlight: true,
		MarkStart: "<",
		MarkEnd:   ">",
	})
	require.NoError(t, err)
	require.Len(t, matches, 1)

	v, _ := matches[0].Secret.Get("Site")
	assert.Equal(t, "<abc><abc>", v)
}

func TestGrep_HighlightDoesNotTouchStoredRecord(t *testing.T) {
	s := newTestStore()
	s.AddSecret(map[string]string{"Site": "a.com", "Account": "a-user"})

	matches, err := s.Grep("a", SearchOptions{
		Highlight: true,
		MarkStart: "[",
		MarkEnd:   "]",
	})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.NotSame(t, s.Secrets()[0], matches[0].Secret)

	// The stored record is untouched.
	v, _ := s.Secrets()[0].Get("Site")
	assert.Equal(t, "a.com", v)

	// Both matching fields of the copy carry markers.
	site, _ := matches[0].Secret.Get("Site")
	account, _ := matches[0].Secret.Get("Account")
	assert.Equal(t, "[a].com", site)
	assert.Equal(t, "[a]-user", account)
}

func TestMarkSpans(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		spans    [][]int
		expected string
	}{
		{
			name:     "single span",
			value:    "hello world",
			spans:    [][]int{{6, 11}},
			expected: "hello <world>",
		},
		{
			name:     "multiple spans keep offsets valid",
			value:    "aXbXc",
			spans:    [][]int{{1, 2}, {3, 4}},
			expected: "a<X>b<X>c",
		},
		{
			name:     "whole value",
			value:    "all",
			spans:    [][]int{{0, 3}},
			expected: "<all>",
		},
		{
			name:     "empty span",
			value:    "ab",
			spans:    [][]int{{1, 1}},
			expected: "a<>b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, markSpans(tt.value, tt.spans, "<", ">"))
		})
	}
}
