// Package lexicon provides the linguistic primitives consumed by keyword
// extraction: tokenization, part-of-speech tagging and stop-word lookup.
//
// An Analyzer is selected once at construction. When a tokenizer and tagger
// are available the primitive-backed strategy is used; otherwise a regex-only
// strategy splits words with a pattern and skips part-of-speech filtering.
package lexicon

import (
	"errors"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrUnavailable is returned by a primitive that cannot serve a request.
var ErrUnavailable = errors.New("linguistic primitive unavailable")

// TaggedToken is a token paired with a Penn Treebank style tag.
type TaggedToken struct {
	Token string
	Tag   string
}

// Tokenizer splits text into word and punctuation tokens.
type Tokenizer interface {
	Tokenize(text string) ([]string, error)
}

// Tagger assigns part-of-speech tags to tokens.
type Tagger interface {
	Tag(tokens []string) ([]TaggedToken, error)
}

// Primitives bundles the collaborators an Analyzer can be built from.
// Nil members are treated as unavailable.
type Primitives struct {
	Tokenizer Tokenizer
	Tagger    Tagger
	StopWords StopWords
}

// Analyzer turns free text into candidate content words.
type Analyzer interface {
	// Name identifies the strategy for logging.
	Name() string
	// Words returns the lower-cased word tokens of text.
	Words(text string) []string
	// ContentWords keeps the words that may act as keywords.
	ContentWords(words []string) []string
	// IsStopword reports whether word is excluded from keywords.
	IsStopword(word string) bool
}

// New selects the analyzer strategy for p.
func New(p Primitives) Analyzer {
	stop := p.StopWords
	if stop == nil {
		stop = BasicStopWords()
	}
	fallback := &regexAnalyzer{stop: stop}
	if p.Tokenizer == nil || p.Tagger == nil {
		return fallback
	}
	return &primitiveAnalyzer{
		tokenizer: p.Tokenizer,
		tagger:    p.Tagger,
		stop:      stop,
		fallback:  fallback,
	}
}

// Default builds the primitive-backed analyzer for language using the
// built-in tokenizer and tagger. If the stop-word list for language cannot be
// loaded the basic list is used.
func Default(language string) Analyzer {
	stop, err := LoadStopWords(language)
	if err != nil {
		stop = BasicStopWords()
	}
	return New(Primitives{
		Tokenizer: WordTokenizer{},
		Tagger:    HeuristicTagger{},
		StopWords: stop,
	})
}

// contentTagPrefixes are the noun, adjective and verb tag families.
var contentTagPrefixes = []string{"NN", "JJ", "VB"}

// primitiveAnalyzer uses the tokenizer and tagger primitives.
type primitiveAnalyzer struct {
	tokenizer Tokenizer
	tagger    Tagger
	stop      StopWords
	fallback  *regexAnalyzer
}

func (a *primitiveAnalyzer) Name() string { return "primitive" }

func (a *primitiveAnalyzer) Words(text string) []string {
	tokens, err := a.tokenizer.Tokenize(strings.ToLower(text))
	if err != nil {
		return a.fallback.Words(text)
	}
	return tokens
}

func (a *primitiveAnalyzer) ContentWords(words []string) []string {
	tagged, err := a.tagger.Tag(words)
	if err != nil || len(tagged) != len(words) {
		return a.fallback.ContentWords(words)
	}
	out := make([]string, 0, len(tagged))
	for _, tt := range tagged {
		if hasContentTag(tt.Tag) {
			out = append(out, tt.Token)
		}
	}
	return out
}

func (a *primitiveAnalyzer) IsStopword(word string) bool {
	return a.stop.Contains(word)
}

// regexAnalyzer splits on a word pattern and keeps every word.
type regexAnalyzer struct {
	stop StopWords
}

var wordPattern = regexp.MustCompile(`[\pL\pN_]+`)

func (a *regexAnalyzer) Name() string { return "regex" }

func (a *regexAnalyzer) Words(text string) []string {
	return wordPattern.FindAllString(strings.ToLower(norm.NFC.String(text)), -1)
}

func (a *regexAnalyzer) ContentWords(words []string) []string {
	out := make([]string, len(words))
	copy(out, words)
	return out
}

func (a *regexAnalyzer) IsStopword(word string) bool {
	return a.stop.Contains(word)
}

func hasContentTag(tag string) bool {
	for _, prefix := range contentTagPrefixes {
		if strings.HasPrefix(tag, prefix) {
			return true
		}
	}
	return false
}
