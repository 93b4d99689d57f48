// Package keywords builds the weighted keyword set from persona and task descriptions.
package keywords

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/persona-ranker/internal/lexicon"
	"github.com/jonathan/persona-ranker/internal/textutil"
	"github.com/jonathan/persona-ranker/internal/types"
)

const (
	// DefaultLimit is the number of keywords kept in the ranked list.
	DefaultLimit = 20

	// minTokenLength is the shortest single-word keyword, exclusive.
	minTokenLength = 2
)

// phrasePatterns extract multi-word candidates. The title-case pattern is
// case-sensitive; the domain suffix patterns ignore case.
var phrasePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b[A-Z][a-z]+ [A-Z][a-z]+\b`),
	regexp.MustCompile(`(?i)\b\w+ learning\b`),
	regexp.MustCompile(`(?i)\b\w+ analysis\b`),
	regexp.MustCompile(`(?i)\b\w+ discovery\b`),
	regexp.MustCompile(`(?i)\b\w+ networks?\b`),
}

// Model extracts keywords with a fixed analyzer strategy.
type Model struct {
	analyzer lexicon.Analyzer
	limit    int
}

// NewModel creates a Model. A nil analyzer selects the regex-only strategy.
// Returns an error if limit is negative.
func NewModel(analyzer lexicon.Analyzer, limit int) (*Model, error) {
	if limit < 0 {
		return nil, fmt.Errorf("keyword limit must be non-negative, got %d", limit)
	}
	if analyzer == nil {
		analyzer = lexicon.New(lexicon.Primitives{})
	}
	return &Model{analyzer: analyzer, limit: limit}, nil
}

// Analyzer returns the strategy the model was built with.
func (m *Model) Analyzer() lexicon.Analyzer {
	return m.analyzer
}

// Extract builds the keyword set for a persona and task.
// Persona keywords precede task keywords when breaking weight ties.
func (m *Model) Extract(persona, task string) types.KeywordSet {
	personaKeywords := m.FromText(persona)
	taskKeywords := m.FromText(task)

	combined := make([]string, 0, len(personaKeywords)+len(taskKeywords))
	combined = append(combined, personaKeywords...)
	combined = append(combined, taskKeywords...)

	counts, order := countKeywords(combined)
	ranked := topKeywords(counts, order, m.limit)

	return types.KeywordSet{
		Weights:         types.NewKeywordWeights(counts),
		Ranked:          types.NewRankedKeywordList(ranked),
		PersonaKeywords: personaKeywords,
		TaskKeywords:    taskKeywords,
	}
}

// FromText returns the deduplicated keywords of a single text: filtered
// content words first, then phrase matches, each in first-seen order.
func (m *Model) FromText(text string) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}

	candidates := make([]string, 0)
	for _, word := range m.analyzer.Words(text) {
		if !textutil.IsAlnum(word) || textutil.Len(word) <= minTokenLength {
			continue
		}
		if m.analyzer.IsStopword(word) {
			continue
		}
		candidates = append(candidates, word)
	}

	keywords := m.analyzer.ContentWords(candidates)
	keywords = append(keywords, ExtractPhrases(text)...)

	return dedupe(keywords)
}

// ExtractPhrases returns lower-cased multi-word phrase candidates in pattern order.
func ExtractPhrases(text string) []string {
	var phrases []string
	for _, re := range phrasePatterns {
		for _, match := range re.FindAllString(text, -1) {
			phrase := strings.ToLower(match)
			if isPhrase(phrase) {
				phrases = append(phrases, phrase)
			}
		}
	}
	return dedupe(phrases)
}

// isPhrase reports whether p contains only letters, digits and spaces.
func isPhrase(p string) bool {
	for _, word := range strings.Split(p, " ") {
		if !textutil.IsAlnum(word) {
			return false
		}
	}
	return true
}

// countKeywords counts occurrences and records first-seen order.
func countKeywords(keywords []string) (map[string]int, []string) {
	counts := make(map[string]int, len(keywords))
	order := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}
	return counts, order
}

// topKeywords returns up to limit keywords by descending count, ties by first-seen order.
func topKeywords(counts map[string]int, order []string, limit int) []string {
	ranked := make([]string, len(order))
	copy(ranked, order)
	sort.SliceStable(ranked, func(i, j int) bool {
		return counts[ranked[i]] > counts[ranked[j]]
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// dedupe removes repeated entries, keeping the first occurrence.
func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if seen[it] {
			continue
		}
		seen[it] = true
		out = append(out, it)
	}
	return out
}
