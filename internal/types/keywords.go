// Package types provides type definitions for structured data used throughout the persona-ranker system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "encoding/json"

// KeywordWeights maps a lower-cased keyword to the number of times it was
// extracted across the persona and task keyword sequences.
// The zero value is an empty, usable set. Values are never mutated after construction.
type KeywordWeights struct {
	counts map[string]int
}

// NewKeywordWeights copies counts into a new KeywordWeights.
func NewKeywordWeights(counts map[string]int) KeywordWeights {
	cp := make(map[string]int, len(counts))
	for k, v := range counts {
		cp[k] = v
	}
	return KeywordWeights{counts: cp}
}

// Get returns the weight recorded for keyword and whether it was present.
func (w KeywordWeights) Get(keyword string) (int, bool) {
	v, ok := w.counts[keyword]
	return v, ok
}

// Len returns the number of distinct keywords.
func (w KeywordWeights) Len() int {
	return len(w.counts)
}

// Map returns a copy of the underlying counts.
func (w KeywordWeights) Map() map[string]int {
	cp := make(map[string]int, len(w.counts))
	for k, v := range w.counts {
		cp[k] = v
	}
	return cp
}

// MarshalJSON encodes the weights as a plain JSON object.
func (w KeywordWeights) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.Map())
}

// RankedKeywordList is the ordered top-K view over KeywordWeights.
type RankedKeywordList struct {
	items []string
}

// NewRankedKeywordList copies keywords into a new RankedKeywordList.
func NewRankedKeywordList(keywords []string) RankedKeywordList {
	cp := make([]string, len(keywords))
	copy(cp, keywords)
	return RankedKeywordList{items: cp}
}

// Len returns the number of ranked keywords.
func (l RankedKeywordList) Len() int {
	return len(l.items)
}

// At returns the keyword at position i.
func (l RankedKeywordList) At(i int) string {
	return l.items[i]
}

// Keywords returns a copy of the ranked keywords in rank order.
func (l RankedKeywordList) Keywords() []string {
	cp := make([]string, len(l.items))
	copy(cp, l.items)
	return cp
}

// MarshalJSON encodes the list as a JSON array (never null).
func (l RankedKeywordList) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Keywords())
}

// KeywordSet is the read-only keyword model built once per run from the
// persona and task strings.
type KeywordSet struct {
	Weights         KeywordWeights    `json:"keyword_weights"`
	Ranked          RankedKeywordList `json:"combined_keywords"`
	PersonaKeywords []string          `json:"persona_keywords"`
	TaskKeywords    []string          `json:"job_keywords"`
}

// Empty reports whether the set has no ranked keywords.
func (s KeywordSet) Empty() bool {
	return s.Ranked.Len() == 0
}

// WeightOf returns the weight for keyword, defaulting to 1 when it is unknown.
func (s KeywordSet) WeightOf(keyword string) int {
	if w, ok := s.Weights.Get(keyword); ok {
		return w
	}
	return 1
}
