package store

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/apex/log"
)

// SearchOptions controls how Grep matches and renders results.
type SearchOptions struct {
	// MarkStart and MarkEnd are inserted around every match span when
	// Highlight is set (typically ANSI escape codes).
	MarkStart string
	MarkEnd   string

	// Highlight asks for a copy of each matched record with match spans
	// wrapped in markers. Without it the original record is referenced
	// unmodified.
	Highlight bool

	// CaseSensitive disables the default case-insensitive matching.
	CaseSensitive bool
}

// Match is one search result: the matched (possibly highlighted) record and
// its 0-based index within the sorted match set. The index is independent of
// the id the record holds in the full store view.
type Match struct {
	Secret *Secret
	ID     int
}

// Grep matches pattern against every field value of every record. A record
// with at least one matching field is part of the result; the result set goes
// through the canonical sort and gets fresh match indexes. An empty result is
// not an error; an invalid pattern is.
func (s *Store) Grep(pattern string, opts SearchOptions) ([]Match, error) {
	expr := pattern
	if !opts.CaseSensitive {
		expr = "(?i)" + pattern
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid search pattern %q: %w", pattern, err)
	}

	var matched []*Secret
	for _, secret := range s.secrets {
		var match *Secret
		for _, entry := range secret.Entries() {
			spans := re.FindAllStringIndex(entry.Value, -1)
			if len(spans) == 0 {
				continue
			}
			if !opts.Highlight {
				match = secret
				continue
			}
			if match == nil {
				// Copy once; the stored record stays as it is.
				match = secret.Clone()
			}
			match.Set(entry.Key, markSpans(entry.Value, spans, opts.MarkStart, opts.MarkEnd))
		}
		if match != nil {
			matched = append(matched, match)
		}
	}

	// The highlighted copies are what gets sorted, exactly like the plain
	// records would be.
	sorted := sortSecrets(matched)
	log.WithField("matches", len(sorted)).Debug("search finished")

	results := make([]Match, len(sorted))
	for i, m := range sorted {
		results[i] = Match{ID: i, Secret: m}
	}
	return results, nil
}

// markSpans wraps every [start, end) span of value in the given markers.
// Spans come from FindAllStringIndex, so they are sorted and non-overlapping;
// inserting back to front keeps earlier offsets valid.
func markSpans(value string, spans [][]int, markStart, markEnd string) string {
	var b strings.Builder
	for i := len(spans) - 1; i >= 0; i-- {
		start, end := spans[i][0], spans[i][1]
		b.Reset()
		b.WriteString(value[:start])
		b.WriteString(markStart)
		b.WriteString(value[start:end])
		b.WriteString(markEnd)
		b.WriteString(value[end:])
		value = b.String()
	}
	return value
}
