package lexicon

import (
	"strings"

	"github.com/jonathan/persona-ranker/internal/textutil"
)

// closedClass maps function words to their tags.
var closedClass = map[string]string{
	"the": "DT", "a": "DT", "an": "DT", "this": "DT", "that": "DT", "these": "DT",
	"those": "DT", "each": "DT", "every": "DT", "some": "DT", "any": "DT", "no": "DT",
	"of": "IN", "in": "IN", "on": "IN", "at": "IN", "for": "IN", "with": "IN",
	"by": "IN", "from": "IN", "about": "IN", "into": "IN", "over": "IN", "under": "IN",
	"between": "IN", "through": "IN", "during": "IN", "without": "IN", "within": "IN",
	"across": "IN", "among": "IN", "per": "IN", "via": "IN",
	"and": "CC", "or": "CC", "but": "CC", "nor": "CC",
	"i": "PRP", "you": "PRP", "he": "PRP", "she": "PRP", "it": "PRP", "we": "PRP",
	"they": "PRP", "me": "PRP", "him": "PRP", "us": "PRP", "them": "PRP",
	"my": "PRP$", "your": "PRP$", "his": "PRP$", "its": "PRP$", "our": "PRP$", "their": "PRP$",
	"can": "MD", "could": "MD", "will": "MD", "would": "MD", "shall": "MD",
	"should": "MD", "may": "MD", "might": "MD", "must": "MD",
	"which": "WDT", "who": "WP", "whom": "WP", "what": "WP", "whose": "WP$",
	"how": "WRB", "when": "WRB", "where": "WRB", "why": "WRB",
	"to": "TO", "not": "RB", "very": "RB", "also": "RB", "then": "RB",
	"is": "VBZ", "are": "VBP", "was": "VBD", "were": "VBD", "be": "VB", "been": "VBN",
	"has": "VBZ", "have": "VBP", "had": "VBD", "do": "VBP", "does": "VBZ", "did": "VBD",
}

// adjectiveSuffixes mark likely adjectives.
var adjectiveSuffixes = []string{"ous", "ful", "ive", "able", "ible", "ical", "less", "ic"}

// HeuristicTagger is the built-in Tagger. It tags closed-class words from a
// fixed table and open-class words by suffix, defaulting to noun.
type HeuristicTagger struct{}

// Tag assigns a tag to every token.
func (HeuristicTagger) Tag(tokens []string) ([]TaggedToken, error) {
	out := make([]TaggedToken, len(tokens))
	for i, tok := range tokens {
		out[i] = TaggedToken{Token: tok, Tag: tagWord(strings.ToLower(tok))}
	}
	return out, nil
}

func tagWord(w string) string {
	if tag, ok := closedClass[w]; ok {
		return tag
	}
	if isNumber(w) {
		return "CD"
	}
	if !textutil.IsAlnum(w) {
		return "SYM"
	}
	n := textutil.Len(w)
	switch {
	case n > 4 && strings.HasSuffix(w, "ly"):
		return "RB"
	case n > 5 && strings.HasSuffix(w, "ing"):
		return "VBG"
	case n > 4 && strings.HasSuffix(w, "ed"):
		return "VBD"
	}
	for _, suffix := range adjectiveSuffixes {
		if n > len(suffix)+2 && strings.HasSuffix(w, suffix) {
			return "JJ"
		}
	}
	if n > 3 && strings.HasSuffix(w, "s") && !strings.HasSuffix(w, "ss") {
		return "NNS"
	}
	return "NN"
}

func isNumber(w string) bool {
	if w == "" {
		return false
	}
	digits := 0
	for _, r := range w {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.' || r == ',':
		default:
			return false
		}
	}
	return digits > 0
}
