package ranking

import (
	"strings"
	"testing"

	"github.com/jonathan/persona-ranker/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keywordSet(weights map[string]int, ranked ...string) types.KeywordSet {
	return types.KeywordSet{
		Weights: types.NewKeywordWeights(weights),
		Ranked:  types.NewRankedKeywordList(ranked),
	}
}

// padTo extends text with filler that contains no keywords until it has n characters.
func padTo(text string, n int) string {
	if len(text) >= n {
		return text
	}
	return text + strings.Repeat("x", n-len(text))
}

func TestScore_DocumentedFormula(t *testing.T) {
	kw := keywordSet(map[string]int{"drug discovery": 3, "neural": 1}, "drug discovery", "neural")
	text := padTo("Drug discovery with neural models. More drug discovery work. ", 2000)
	require.Len(t, text, 2000)

	score := Score(text, kw)

	expected := (2.0*3*14 + 1*1*6) / 2.0
	assert.Equal(t, expected, score)
}

func TestScore_CaseInsensitive(t *testing.T) {
	kw := keywordSet(map[string]int{"neural": 1}, "neural")
	lower := padTo("neural ", 1000)
	upper := padTo("NEURAL ", 1000)

	assert.Equal(t, Score(lower, kw), Score(upper, kw))
	assert.Equal(t, 6.0, Score(lower, kw))
}

func TestScore_MissingWeightDefaultsToOne(t *testing.T) {
	kw := keywordSet(map[string]int{}, "graph")
	text := padTo("graph ", 1000)

	assert.Equal(t, 5.0, Score(text, kw))
}

func TestScore_EmptyInputs(t *testing.T) {
	kw := keywordSet(map[string]int{"graph": 1}, "graph")

	assert.Equal(t, 0.0, Score("", kw))
	assert.Equal(t, 0.0, Score("graph theory", types.KeywordSet{}))
}

func TestScore_RoundsToThreeDecimals(t *testing.T) {
	kw := keywordSet(map[string]int{"graph": 1}, "graph")
	text := padTo("graph ", 300)

	// 5 / 0.3 = 16.6666...
	assert.Equal(t, 16.667, Score(text, kw))
}

func TestExtractTitle_HeadingLine(t *testing.T) {
	assert.Equal(t, "1. Introduction", ExtractTitle("1. Introduction\n\nNeural networks are used."))
	assert.Equal(t, "BACKGROUND", ExtractTitle("BACKGROUND\nSome text follows here."))
	assert.Equal(t, "Data Sources", ExtractTitle("\nData Sources\nText."))
}

func TestExtractTitle_OnlyFirstThreeLines(t *testing.T) {
	text := "plain line one. plain line two\nplain line three\nmore plain text\nHidden Heading"

	assert.Equal(t, "plain line one", ExtractTitle(text))
}

func TestExtractTitle_FallsBackToFirstSentence(t *testing.T) {
	assert.Equal(t, "this section has no heading", ExtractTitle("this section has no heading. It just has text."))
}

func TestExtractTitle_TruncatesLongSentence(t *testing.T) {
	long := strings.Repeat("word ", 40)

	title := ExtractTitle(long)

	assert.Equal(t, 103, len(title))
	assert.True(t, strings.HasSuffix(title, "..."))
}
