package header

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// HeaderMap maps a normalized header key to its zero-based column index.
//
// Built fresh per table from its current header row; table schemas may
// differ sheet to sheet. On duplicate normalized keys the later column
// wins, matching left-to-right map construction order.
type HeaderMap map[string]int

// NormalizeKey converts a raw header string into its canonical lookup key:
// NFC normalization, lowercase, then strip every rune that is not an ASCII
// letter or digit. Whitespace, punctuation, emoji and accented (non-ASCII)
// letters are all removed.
//
// INVARIANT: idempotent - NormalizeKey(NormalizeKey(x)) == NormalizeKey(x).
// The output alphabet is [a-z0-9]*, which the function maps to itself.
func NormalizeKey(raw string) string {
	s := strings.ToLower(norm.NFC.String(raw))

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// BuildHeaderMap resolves a header row to a HeaderMap.
//
// Empty cells are skipped, as are cells that normalize to the empty string
// (e.g. a header that is pure punctuation or emoji). Later columns
// overwrite earlier ones on key collision.
func BuildHeaderMap(headerRow []string) HeaderMap {
	m := make(HeaderMap, len(headerRow))
	for i, cell := range headerRow {
		if cell == "" {
			continue
		}
		key := NormalizeKey(cell)
		if key == "" {
			continue
		}
		m[key] = i
	}
	return m
}

// Keys returns the map's keys in ascending column order, for diagnostics.
// Ties (impossible by construction, but cheap to define) break on key.
func (m HeaderMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if m[keys[i]] != m[keys[j]] {
			return m[keys[i]] < m[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}
