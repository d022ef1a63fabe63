/*
Package signature computes order independent letter fingerprints for words.

A Signature is the multiset of runes in a lowercased word. Its canonical key is
every distinct rune in ascending code point order followed by its count:

	signature.New("astonishment").Key() // "a1e1h1i1m1n2o1s2t2"

Two words that are anagrams of each other share a Signature. The Contains
relation tells whether one word can be spelled with the letters of another:

	signature.New("ants").Contains(signature.New("tan")) // true
	signature.New("tan").Contains(signature.New("ants")) // false

Equality and hashing both come from the canonical key alone.
*/
package signature

import (
	"slices"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Signature is an immutable letter multiset. The zero value is the
// signature of the empty string.
type Signature struct {
	counts map[rune]int
	key    string
	size   int
}

// New builds the signature of word. Case is ignored.
func New(word string) Signature {
	lower := strings.ToLower(word)
	if lower == "" {
		return Signature{}
	}

	counts := make(map[rune]int, len(lower))
	size := 0
	for _, r := range lower {
		counts[r]++
		size++
	}

	runes := make([]rune, 0, len(counts))
	for r := range counts {
		runes = append(runes, r)
	}
	slices.Sort(runes)

	var sb strings.Builder
	sb.Grow(len(runes) * 3)
	for _, r := range runes {
		sb.WriteRune(r)
		sb.WriteString(strconv.Itoa(counts[r]))
	}

	return Signature{
		counts: counts,
		key:    sb.String(),
		size:   size,
	}
}

// Key returns the canonical form, e.g. "a1n1t1" for "tan".
func (s Signature) Key() string {
	return s.key
}

// Len returns the number of distinct runes.
func (s Signature) Len() int {
	return len(s.counts)
}

// Size returns the total number of runes, counting repeats.
func (s Signature) Size() int {
	return s.size
}

// Count returns how many times r occurs.
func (s Signature) Count(r rune) int {
	return s.counts[r]
}

// IsEmpty reports whether the signature was built from an empty word.
func (s Signature) IsEmpty() bool {
	return s.key == ""
}

// Contains reports whether other can be spelled using a subset of the
// letters in s, respecting multiplicity.
func (s Signature) Contains(other Signature) bool {
	if len(other.counts) > len(s.counts) {
		return false
	}
	for r, n := range other.counts {
		if s.counts[r] < n {
			return false
		}
	}
	return true
}

// Equal reports whether both signatures describe the same multiset.
func (s Signature) Equal(other Signature) bool {
	return s.key == other.key
}

// Hash returns the xxhash64 digest of the canonical key.
func (s Signature) Hash() uint64 {
	return xxhash.Sum64String(s.key)
}

func (s Signature) String() string {
	return "Sig:" + s.key
}
