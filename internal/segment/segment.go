// Package segment splits cleaned page text into candidate sections.
package segment

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/persona-ranker/internal/textutil"
)

// Default limits for segmentation
const (
	DefaultMaxSections       = 5
	DefaultLongPageThreshold = 1000
	DefaultChunkTarget       = 800
	DefaultMaxHeaderLength   = 200
)

// paragraphBreak matches whitespace runs containing at least one blank line.
var paragraphBreak = regexp.MustCompile(`\n\s*\n`)

// headerPatterns recognise numbered, all-caps and title-case headings.
var headerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d+\.?\s+[A-Z]`),
	regexp.MustCompile(`^[A-Z][A-Z\s]{2,}$`),
	regexp.MustCompile(`^[A-Z][a-z]+(\s[A-Z][a-z]+)*$`),
	regexp.MustCompile(`^\d+\.\d+\.?\s+[A-Z]`),
}

// Options configures a Segmenter.
type Options struct {
	MaxSections       int
	LongPageThreshold int
	ChunkTarget       int
	MaxHeaderLength   int
}

// DefaultOptions returns the standard segmentation limits.
func DefaultOptions() Options {
	return Options{
		MaxSections:       DefaultMaxSections,
		LongPageThreshold: DefaultLongPageThreshold,
		ChunkTarget:       DefaultChunkTarget,
		MaxHeaderLength:   DefaultMaxHeaderLength,
	}
}

// Segmenter splits page text into sections.
type Segmenter struct {
	opts Options
}

// New creates a Segmenter. Returns an error if any limit is not positive.
func New(opts Options) (*Segmenter, error) {
	if opts.MaxSections <= 0 {
		return nil, fmt.Errorf("max sections must be positive, got %d", opts.MaxSections)
	}
	if opts.LongPageThreshold < 0 {
		return nil, fmt.Errorf("long page threshold must be non-negative, got %d", opts.LongPageThreshold)
	}
	if opts.ChunkTarget <= 0 {
		return nil, fmt.Errorf("chunk target must be positive, got %d", opts.ChunkTarget)
	}
	if opts.MaxHeaderLength <= 0 {
		return nil, fmt.Errorf("max header length must be positive, got %d", opts.MaxHeaderLength)
	}
	return &Segmenter{opts: opts}, nil
}

// state of the paragraph accumulator
type state int

const (
	flushed state = iota
	accumulating
)

// Segment splits one page into at most MaxSections sections. Paragraphs that
// look like headings open a new section; other paragraphs extend the current
// one. A long page that yields a single section is re-split into chunks of
// roughly ChunkTarget characters along sentence boundaries.
func (s *Segmenter) Segment(pageText string) []string {
	if strings.TrimSpace(pageText) == "" {
		return []string{}
	}

	sections := make([]string, 0)
	var current strings.Builder
	st := flushed

	flush := func() {
		if st == accumulating {
			sections = append(sections, strings.TrimSpace(current.String()))
		}
		current.Reset()
		st = flushed
	}

	for _, para := range paragraphBreak.Split(pageText, -1) {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if s.IsHeader(para) {
			flush()
		}
		current.WriteString(para)
		current.WriteString("\n\n")
		st = accumulating
	}
	flush()

	if len(sections) <= 1 && textutil.Len(pageText) > s.opts.LongPageThreshold {
		sections = s.chunk(pageText)
	}

	if len(sections) > s.opts.MaxSections {
		sections = sections[:s.opts.MaxSections]
	}
	return sections
}

// IsHeader reports whether a paragraph looks like a section heading.
func (s *Segmenter) IsHeader(text string) bool {
	if textutil.Len(text) > s.opts.MaxHeaderLength {
		return false
	}
	text = strings.TrimSpace(text)
	for _, re := range headerPatterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// chunk groups sentences into sections of roughly ChunkTarget characters.
func (s *Segmenter) chunk(text string) []string {
	chunks := make([]string, 0)
	var current strings.Builder
	currentLen := 0

	for _, sentence := range textutil.SplitSentences(text) {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		if currentLen > 0 && currentLen+textutil.Len(sentence) > s.opts.ChunkTarget {
			chunks = append(chunks, strings.TrimSpace(current.String()))
			current.Reset()
			currentLen = 0
		}
		piece := terminate(sentence) + " "
		current.WriteString(piece)
		currentLen += textutil.Len(piece)
	}
	if currentLen > 0 {
		chunks = append(chunks, strings.TrimSpace(current.String()))
	}
	return chunks
}

// terminate restores sentence punctuation consumed by the split.
func terminate(sentence string) string {
	switch sentence[len(sentence)-1] {
	case '.', '!', '?':
		return sentence
	}
	return sentence + "."
}
