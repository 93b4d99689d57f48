package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jonathan/persona-ranker/internal/ingestion"
	"github.com/jonathan/persona-ranker/internal/pipeline"
	"github.com/jonathan/persona-ranker/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintKeywords(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintKeywords(types.KeywordSet{
		Weights:         types.NewKeywordWeights(map[string]int{"graph": 2, "neural": 1}),
		Ranked:          types.NewRankedKeywordList([]string{"graph", "neural"}),
		PersonaKeywords: []string{"graph"},
		TaskKeywords:    []string{"graph", "neural"},
	})
	output := buf.String()

	assert.Contains(t, output, "KEYWORDS")
	assert.Contains(t, output, "Top keywords (2)")
	assert.Contains(t, output, "graph")
	assert.Contains(t, output, "×2")
}

func TestPrintKeywords_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintKeywords(types.KeywordSet{})

	assert.Contains(t, buf.String(), "(none)")
	assert.Contains(t, buf.String(), "No keywords extracted")
}

func TestPrintRankedSections(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	sections := make([]types.Section, 7)
	for i := range sections {
		sections[i] = types.Section{Document: "guide.txt", PageNumber: i + 1, Title: "Heading", RelevanceScore: 12.5, ImportanceRank: i + 1}
	}
	p.PrintRankedSections(sections)
	output := buf.String()

	assert.Contains(t, output, "RANKED SECTIONS")
	assert.Contains(t, output, "Total sections ranked: 7")
	assert.Contains(t, output, "Score: 12.500")
	assert.Contains(t, output, "... and 2 more")
}

func TestPrintRankedSections_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintRankedSections(nil)
	assert.Empty(t, buf.String())
}

func TestPrintSummaries(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSummaries([]types.SummaryRecord{{Document: "guide.txt", PageNumber: 2, SectionTitle: "Food", ImportanceRank: 1, RefinedText: "Try the bouillabaisse."}})

	assert.Contains(t, buf.String(), "SUMMARIES")
	assert.Contains(t, buf.String(), "Food")
}

func TestPrintSegmentsAndFailures(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSegments("guide.txt", 1, []string{"INTRO\n\nbody", "METHODS\n\nmore"})
	p.PrintFailures([]types.DocumentFailure{{Document: "scan.pdf", Error: "unsupported"}})
	output := buf.String()

	assert.Contains(t, output, "SEGMENTS: guide.txt p.1")
	assert.Contains(t, output, "Sections: 2")
	assert.Contains(t, output, "INTRO")
	assert.Contains(t, output, "scan.pdf")
}

func TestPrintLoadMetadata(t *testing.T) {
	var buf bytes.Buffer
	meta := ingestion.NewMetadata("docs/guide.pdf", ingestion.FormatPDF, []byte("abc"))
	meta.RawPages = 4
	meta.KeptPages = 3
	meta.DroppedPages = 1

	NewPrinter(&buf).PrintLoadMetadata(meta)
	output := buf.String()

	assert.Contains(t, output, "LOAD METADATA: guide.pdf")
	assert.Contains(t, output, `"format": "pdf"`)
	assert.Contains(t, output, `"kept_pages": 3`)
	assert.Contains(t, output, `"dropped_pages": 1`)
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer

	NewPrinter(&buf).Progress(pipeline.ProgressEvent{Step: pipeline.StepRanking, Message: "Ranked 3 sections"})

	assert.Equal(t, "[ranking] Ranked 3 sections\n", buf.String())
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("é", 100))

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth)
	}
	assert.Contains(t, buf.String(), "...")
}
