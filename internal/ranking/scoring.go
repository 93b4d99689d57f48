// Package ranking scores document sections against a keyword set and orders
// them into a single global relevance ranking.
package ranking

import (
	"math"
	"regexp"
	"strings"

	"github.com/jonathan/persona-ranker/internal/textutil"
	"github.com/jonathan/persona-ranker/internal/types"
)

const (
	// normalizationChars is the text length a score is expressed per.
	normalizationChars = 1000.0

	// maxTitleLength bounds a detected title line and the fallback sentence.
	maxTitleLength = 100

	// titleScanLines is how many leading lines are inspected for a title.
	titleScanLines = 3
)

var (
	numberedTitle    = regexp.MustCompile(`^\d+\.?\s+[A-Z]`)
	titleTerminators = regexp.MustCompile(`[.!?]`)
)

// Score computes the keyword relevance of a section's text.
// Each ranked keyword contributes count × weight × length, and the total is
// expressed per 1000 characters of text, rounded to 3 decimals.
// Empty text or an empty keyword list scores 0.
func Score(text string, keywords types.KeywordSet) float64 {
	if text == "" || keywords.Empty() {
		return 0.0
	}

	lower := strings.ToLower(text)
	total := 0.0
	for i := 0; i < keywords.Ranked.Len(); i++ {
		keyword := keywords.Ranked.At(i)
		count := strings.Count(lower, strings.ToLower(keyword))
		if count == 0 {
			continue
		}
		total += float64(count * keywords.WeightOf(keyword) * textutil.Len(keyword))
	}

	normalized := total / (float64(textutil.Len(text)) / normalizationChars)
	return round3(normalized)
}

// ExtractTitle picks a display title for a section: the first of the leading
// lines that looks like a heading, else the first sentence truncated to 100 characters.
func ExtractTitle(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) > titleScanLines {
		lines = lines[:titleScanLines]
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || textutil.Len(line) >= maxTitleLength {
			continue
		}
		if textutil.IsUpper(line) || textutil.IsTitle(line) || numberedTitle.MatchString(line) {
			return line
		}
	}

	first := strings.TrimSpace(titleTerminators.Split(text, 2)[0])
	return textutil.Truncate(first, maxTitleLength, "...")
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
