// Package summarize builds short extractive summaries of ranked sections.
package summarize

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/persona-ranker/internal/textutil"
	"github.com/jonathan/persona-ranker/internal/types"
)

// Defaults for summary construction
const (
	DefaultSentences         = 3
	DefaultMinSentenceLength = 20
	clusterBonus             = 0.2
)

// Options configures a Summarizer.
type Options struct {
	// Sentences is the number of sentences kept in a summary.
	Sentences int
	// MinSentenceLength drops sentence fragments of this many characters or fewer.
	MinSentenceLength int
}

// DefaultOptions returns the standard summary settings.
func DefaultOptions() Options {
	return Options{
		Sentences:         DefaultSentences,
		MinSentenceLength: DefaultMinSentenceLength,
	}
}

// Summarizer selects the most keyword-dense sentences of a section.
type Summarizer struct {
	opts Options
}

// New creates a Summarizer. Returns an error for a non-positive sentence count
// or a negative minimum length.
func New(opts Options) (*Summarizer, error) {
	if opts.Sentences <= 0 {
		return nil, fmt.Errorf("summary sentences must be positive, got %d", opts.Sentences)
	}
	if opts.MinSentenceLength < 0 {
		return nil, fmt.Errorf("min sentence length must be non-negative, got %d", opts.MinSentenceLength)
	}
	return &Summarizer{opts: opts}, nil
}

type scoredSentence struct {
	index int
	score float64
}

// Summarize returns the refined text for a section. Text with no more
// sentences than the target is returned unchanged. Otherwise the highest
// scoring sentences are kept and joined in the order they appear in text.
func (s *Summarizer) Summarize(text string, keywords types.KeywordSet) string {
	if text == "" {
		return ""
	}

	sentences := s.sentences(text)
	if len(sentences) <= s.opts.Sentences {
		return text
	}

	scored := make([]scoredSentence, len(sentences))
	for i, sentence := range sentences {
		scored[i] = scoredSentence{index: i, score: ScoreSentence(sentence, keywords)}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	selected := scored[:s.opts.Sentences]
	sort.Slice(selected, func(i, j int) bool {
		return selected[i].index < selected[j].index
	})

	parts := make([]string, len(selected))
	for i, sel := range selected {
		parts[i] = sentences[sel.index]
	}
	return strings.Join(parts, " ")
}

// SummarizeSections produces one SummaryRecord per section, in section order.
func (s *Summarizer) SummarizeSections(sections []types.Section, keywords types.KeywordSet) []types.SummaryRecord {
	records := make([]types.SummaryRecord, 0, len(sections))
	for _, sec := range sections {
		records = append(records, types.SummaryRecord{
			Document:       sec.Document,
			PageNumber:     sec.PageNumber,
			SectionTitle:   sec.Title,
			ImportanceRank: sec.ImportanceRank,
			RefinedText:    s.Summarize(sec.Text, keywords),
		})
	}
	return records
}

// sentences splits text and keeps trimmed sentences longer than the minimum.
func (s *Summarizer) sentences(text string) []string {
	kept := make([]string, 0)
	for _, sentence := range textutil.SplitSentences(text) {
		sentence = strings.TrimSpace(sentence)
		if textutil.Len(sentence) > s.opts.MinSentenceLength {
			kept = append(kept, sentence)
		}
	}
	return kept
}

// ScoreSentence sums the lengths of the ranked keywords present in sentence.
// When more than one distinct keyword matches, the sum is multiplied by
// 1 + 0.2 × matches.
func ScoreSentence(sentence string, keywords types.KeywordSet) float64 {
	if sentence == "" || keywords.Empty() {
		return 0.0
	}

	score := 0.0
	matched := 0
	for _, keyword := range keywords.Ranked.Keywords() {
		if textutil.ContainsFold(sentence, keyword) {
			score += float64(textutil.Len(keyword))
			matched++
		}
	}
	if matched > 1 {
		score *= 1 + clusterBonus*float64(matched)
	}
	return score
}
