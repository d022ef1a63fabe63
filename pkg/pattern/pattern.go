// Package pattern implements fixed length positional matching where '.'
// stands for any single rune.
package pattern

import "unicode/utf8"

// Wildcard matches any single rune at its position.
const Wildcard = '.'

// Pattern is a literal/wildcard template such as "d.ts".
type Pattern struct {
	runes []rune
}

// New compiles s into a Pattern.
func New(s string) Pattern {
	return Pattern{runes: []rune(s)}
}

// Len returns the number of runes a matching word must have.
func (p Pattern) Len() int {
	return len(p.runes)
}

// Matches reports whether word has the same length as p and agrees with it
// on every literal position.
func (p Pattern) Matches(word string) bool {
	if utf8.RuneCountInString(word) != len(p.runes) {
		return false
	}
	i := 0
	for _, r := range word {
		if l := p.runes[i]; l != Wildcard && l != r {
			return false
		}
		i++
	}
	return true
}

func (p Pattern) String() string {
	return string(p.runes)
}
