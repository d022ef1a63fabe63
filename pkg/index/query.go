package index

import (
	"slices"
	"unicode/utf8"

	"github.com/bastiangx/anafind/pkg/pattern"
	"github.com/bastiangx/anafind/pkg/signature"
)

// DefaultMinLength is the shortest word reported unless a query overrides it.
const DefaultMinLength = 3

// Query describes one anagram subset search.
type Query struct {
	// Pattern supplies the available letters.
	Pattern string
	// Length keeps only words of exactly this many runes. Zero disables it.
	Length int
	// MinLength drops words shorter than this many runes.
	MinLength int
	// Match is a positional pattern using '.' as wildcard. Empty disables it.
	Match string
}

// NewQuery returns a Query for letters with the default minimum length.
func NewQuery(letters string) Query {
	return Query{Pattern: letters, MinLength: DefaultMinLength}
}

// Query returns every indexed word that can be spelled from a subset of
// q.Pattern's letters and passes the length and positional filters, sorted
// ascending. Duplicated dictionary entries appear once per occurrence.
// Conflicting Length and MinLength values simply produce no results.
func (idx *Index) Query(q Query) []string {
	ps := signature.New(q.Pattern)

	var match *pattern.Pattern
	if q.Match != "" {
		m := pattern.New(q.Match)
		match = &m
	}

	found := []string{}
	idx.each(func(b *bucket) {
		if !ps.Contains(b.sig) {
			return
		}
		for _, w := range b.words {
			if q.accepts(w, match) {
				found = append(found, w)
			}
		}
	})

	slices.Sort(found)
	return found
}

func (q Query) accepts(word string, match *pattern.Pattern) bool {
	n := utf8.RuneCountInString(word)
	if n < q.MinLength {
		return false
	}
	if q.Length != 0 && n != q.Length {
		return false
	}
	if match != nil && !match.Matches(word) {
		return false
	}
	return true
}
