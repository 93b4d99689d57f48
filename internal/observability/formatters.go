// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/jonathan/persona-ranker/internal/ingestion"
	"github.com/jonathan/persona-ranker/internal/pipeline"
	"github.com/jonathan/persona-ranker/internal/textutil"
	"github.com/jonathan/persona-ranker/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// maxWeightsToShow bounds the keyword weight table
	maxWeightsToShow = 10
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		line = textutil.Truncate(line, boxWidth-7, "...")
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// Progress prints a one-line pipeline progress event.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) Progress(event pipeline.ProgressEvent) {
	fmt.Fprintf(p.out, "[%s] %s\n", event.Step, event.Message)
}

// PrintKeywords outputs persona, task and combined keywords with their weights.
func (p *Printer) PrintKeywords(kw types.KeywordSet) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Persona:  %s\n", joinOrNone(kw.PersonaKeywords)))
	sb.WriteString(fmt.Sprintf("Task:     %s\n", joinOrNone(kw.TaskKeywords)))
	sb.WriteString("\n")

	ranked := kw.Ranked.Keywords()
	if len(ranked) == 0 {
		sb.WriteString("No keywords extracted")
		p.printBox("KEYWORDS", sb.String())
		return
	}

	sb.WriteString(fmt.Sprintf("Top keywords (%d):\n", len(ranked)))
	count := min(len(ranked), maxWeightsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  %2d. %-30s ×%d\n", i+1, ranked[i], kw.WeightOf(ranked[i])))
	}
	if len(ranked) > maxWeightsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(ranked)-maxWeightsToShow))
	}

	p.printBox("KEYWORDS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSegments outputs the sections a page was split into.
func (p *Printer) PrintSegments(document string, page int, sections []string) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Sections: %d\n", len(sections)))
	for i, sec := range sections {
		firstLine, _, _ := strings.Cut(sec, "\n")
		sb.WriteString(fmt.Sprintf("\n[%d] %d chars\n", i, textutil.Len(sec)))
		sb.WriteString(fmt.Sprintf("    %s\n", firstLine))
	}
	p.printBox(fmt.Sprintf("SEGMENTS: %s p.%d", document, page), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRankedSections outputs the top ranked sections with scores.
func (p *Printer) PrintRankedSections(sections []types.Section) {
	if len(sections) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total sections ranked: %d\n\n", len(sections)))

	count := min(len(sections), maxItemsToShow)
	for i := 0; i < count; i++ {
		sec := sections[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", sec.ImportanceRank, sec.Title))
		sb.WriteString(fmt.Sprintf("    %s p.%d  Score: %.3f\n", sec.Document, sec.PageNumber, sec.RelevanceScore))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}
	if len(sections) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more", len(sections)-maxItemsToShow))
	}

	p.printBox("RANKED SECTIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSummaries outputs the refined text of each summarized section.
func (p *Printer) PrintSummaries(summaries []types.SummaryRecord) {
	if len(summaries) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(summaries), maxItemsToShow)
	for i := 0; i < count; i++ {
		s := summaries[i]
		sb.WriteString(fmt.Sprintf("#%d  %s (%s p.%d)\n", s.ImportanceRank, s.SectionTitle, s.Document, s.PageNumber))
		sb.WriteString(fmt.Sprintf("    %s\n", textutil.Truncate(s.RefinedText, 120, "...")))
	}
	if len(summaries) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(summaries)-maxItemsToShow))
	}

	p.printBox("SUMMARIES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFailures outputs documents skipped during the run.
func (p *Printer) PrintFailures(failures []types.DocumentFailure) {
	if len(failures) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Skipped documents: %d\n", len(failures)))
	for _, f := range failures {
		sb.WriteString(fmt.Sprintf("  ⚠ %s: %s\n", f.Document, f.Error))
	}

	p.printBox("SKIPPED", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintLoadMetadata outputs the extraction record of one loaded document.
func (p *Printer) PrintLoadMetadata(meta *ingestion.Metadata) {
	data, err := meta.ToJSON()
	if err != nil {
		p.printBox("LOAD METADATA: "+filepath.Base(meta.Path), fmt.Sprintf("Failed to encode metadata: %v", err))
		return
	}
	p.printBox("LOAD METADATA: "+filepath.Base(meta.Path), string(data))
}

func joinOrNone(words []string) string {
	if len(words) == 0 {
		return "(none)"
	}
	return strings.Join(words, ", ")
}
