// Package textutil provides small character-level helpers shared by the
// segmentation, ranking and summarization packages.
package textutil

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// sentenceBoundary matches a run of terminal punctuation followed by whitespace.
var sentenceBoundary = regexp.MustCompile(`[.!?]+\s+`)

// Len returns the length of s in characters (code points), not bytes.
func Len(s string) int {
	return utf8.RuneCountInString(s)
}

// Truncate returns the first n characters of s followed by suffix when s is
// longer than n characters; otherwise s is returned unchanged.
func Truncate(s string, n int, suffix string) string {
	if n < 0 || Len(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + suffix
}

// SplitSentences splits text on terminal punctuation followed by whitespace.
// The punctuation is consumed; fragments are returned untrimmed.
func SplitSentences(text string) []string {
	return sentenceBoundary.Split(text, -1)
}

// IsUpper reports whether s has at least one cased letter and every cased
// letter is upper case.
func IsUpper(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) || unicode.IsTitle(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}

// IsTitle reports whether s is title-cased: upper-case letters only follow
// uncased characters, lower-case letters only follow cased ones, and there is
// at least one cased letter.
func IsTitle(s string) bool {
	cased := false
	prevCased := false
	for _, r := range s {
		switch {
		case unicode.IsUpper(r) || unicode.IsTitle(r):
			if prevCased {
				return false
			}
			prevCased = true
			cased = true
		case unicode.IsLower(r):
			if !prevCased {
				return false
			}
			prevCased = true
			cased = true
		default:
			prevCased = false
		}
	}
	return cased
}

// IsAlnum reports whether s is non-empty and made only of letters and digits.
func IsAlnum(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// CountFold counts non-overlapping occurrences of substr in s, ignoring case.
// Both arguments are lower-cased before matching.
func CountFold(s, substr string) int {
	if substr == "" {
		return 0
	}
	return strings.Count(strings.ToLower(s), strings.ToLower(substr))
}

// ContainsFold reports whether substr occurs in s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
