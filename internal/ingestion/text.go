package ingestion

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/jonathan/persona-ranker/internal/textutil"
)

// Page cleaning thresholds
const (
	DefaultMinLineLength = 3
	DefaultMinPageLength = 100
	DefaultMaxPages      = 100
)

var (
	innerWhitespace = regexp.MustCompile(`[ \t\v]+`)
	blankLineRuns   = regexp.MustCompile(`\n\n\n+`)
)

// CleanOptions controls page cleaning.
type CleanOptions struct {
	// MinLineLength drops lines of this many characters or fewer.
	MinLineLength int
	// MinPageLength discards a cleaned page shorter than this.
	MinPageLength int
}

// DefaultCleanOptions returns the standard cleaning thresholds.
func DefaultCleanOptions() CleanOptions {
	return CleanOptions{
		MinLineLength: DefaultMinLineLength,
		MinPageLength: DefaultMinPageLength,
	}
}

// CleanText normalizes raw page text while preserving paragraph structure:
// NFC normalization, LF line endings, trimmed lines with collapsed inner
// spacing, and at most one blank line between paragraphs.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = norm.NFC.String(content)
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := strings.Join(lines, "\n")
	result = blankLineRuns.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine trims a single line and collapses runs of spaces and tabs.
func cleanLine(line string) string {
	return innerWhitespace.ReplaceAllString(strings.TrimSpace(line), " ")
}

// CleanPage cleans one page and filters it for scoring. Lines of
// MinLineLength characters or fewer are dropped; blank lines survive as
// paragraph breaks. Returns "" when the result is shorter than MinPageLength.
func CleanPage(raw string, opts CleanOptions) string {
	cleaned := CleanText(raw)
	if cleaned == "" {
		return ""
	}

	lines := strings.Split(cleaned, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if line == "" {
			kept = append(kept, line)
			continue
		}
		if textutil.Len(line) > opts.MinLineLength {
			kept = append(kept, line)
		}
	}

	page := strings.Join(kept, "\n")
	page = blankLineRuns.ReplaceAllString(page, "\n\n")
	page = strings.TrimSpace(page)
	if textutil.Len(page) < opts.MinPageLength {
		return ""
	}
	return page
}
