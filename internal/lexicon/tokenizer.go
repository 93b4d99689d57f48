package lexicon

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// tokenPattern matches words (with internal apostrophes or hyphens split off),
// numbers and individual punctuation runs.
var tokenPattern = regexp.MustCompile(`[\pL\pN]+|'[\pL]+|[^\pL\pN\s]+`)

// WordTokenizer is the built-in Tokenizer. It NFC-normalizes the input and
// separates punctuation from words, so "drug-target" yields "drug", "-", "target".
type WordTokenizer struct{}

// Tokenize splits text into word, number and punctuation tokens.
func (WordTokenizer) Tokenize(text string) ([]string, error) {
	text = strings.TrimSpace(norm.NFC.String(text))
	if text == "" {
		return nil, nil
	}
	return tokenPattern.FindAllString(text, -1), nil
}
