package utils

import (
	"unicode"
)

// IsLetters reports whether s is non-empty and made only of letters.
func IsLetters(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// IsValidMatch reports whether s is a usable positional pattern: letters
// and '.' wildcards only, at least one rune.
func IsValidMatch(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r != '.' && !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// IsRepetitive checks if a string is one character repeated 3+ times,
// e.g. "aaa". Such patterns can only spell very few words.
func IsRepetitive(s string) bool {
	runes := []rune(s)
	if len(runes) <= 2 {
		return false
	}
	for _, r := range runes[1:] {
		if r != runes[0] {
			return false
		}
	}
	return true
}
