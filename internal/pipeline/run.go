// Package pipeline provides the high-level orchestration for ranking and summarizing document sections.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jonathan/persona-ranker/internal/keywords"
	"github.com/jonathan/persona-ranker/internal/lexicon"
	"github.com/jonathan/persona-ranker/internal/ranking"
	"github.com/jonathan/persona-ranker/internal/segment"
	"github.com/jonathan/persona-ranker/internal/summarize"
	"github.com/jonathan/persona-ranker/internal/types"
)

// DefaultSummaryTopN is the number of top-ranked sections that get summaries.
const DefaultSummaryTopN = 10

// Step names reported through ProgressEvent.Step
const (
	StepKeywords  = "keywords"
	StepRanking   = "ranking"
	StepSummaries = "summaries"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Options holds configuration for a Pipeline
type Options struct {
	Language           string
	KeywordLimit       int
	MaxSectionsPerPage int
	LongPageThreshold  int
	ChunkTarget        int
	MaxHeaderLength    int
	MinSectionLength   int
	SummaryTopN        int
	SummarySentences   int
	MinSentenceLength  int
	Workers            int

	// Analyzer overrides the language analyzer; nil uses lexicon.Default(Language).
	Analyzer   lexicon.Analyzer
	Logger     *log.Logger
	OnProgress ProgressCallback
}

// DefaultOptions returns the standard pipeline settings for English text.
func DefaultOptions() Options {
	return Options{
		Language:           "english",
		KeywordLimit:       keywords.DefaultLimit,
		MaxSectionsPerPage: segment.DefaultMaxSections,
		LongPageThreshold:  segment.DefaultLongPageThreshold,
		ChunkTarget:        segment.DefaultChunkTarget,
		MaxHeaderLength:    segment.DefaultMaxHeaderLength,
		MinSectionLength:   ranking.DefaultMinSectionLength,
		SummaryTopN:        DefaultSummaryTopN,
		SummarySentences:   summarize.DefaultSentences,
		MinSentenceLength:  summarize.DefaultMinSentenceLength,
		Workers:            1,
	}
}

// ConfigError reports an invalid pipeline option detected at construction.
type ConfigError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid %s: %s: %v", e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Pipeline wires keyword extraction, section ranking and summarization.
type Pipeline struct {
	opts       Options
	model      *keywords.Model
	segmenter  *segment.Segmenter
	ranker     *ranking.Ranker
	summarizer *summarize.Summarizer
	logger     *log.Logger
}

// New validates opts and builds the pipeline components.
// Returns a *ConfigError for any negative or otherwise unusable limit.
func New(opts Options) (*Pipeline, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	analyzer := opts.Analyzer
	if analyzer == nil {
		analyzer = lexicon.Default(opts.Language)
	}

	model, err := keywords.NewModel(analyzer, opts.KeywordLimit)
	if err != nil {
		return nil, &ConfigError{Field: "keyword_limit", Message: "keyword model rejected limit", Cause: err}
	}

	segmenter, err := segment.New(segment.Options{
		MaxSections:       opts.MaxSectionsPerPage,
		LongPageThreshold: opts.LongPageThreshold,
		ChunkTarget:       opts.ChunkTarget,
		MaxHeaderLength:   opts.MaxHeaderLength,
	})
	if err != nil {
		return nil, &ConfigError{Field: "segmentation", Message: "segmenter rejected options", Cause: err}
	}

	ranker, err := ranking.NewRanker(segmenter, ranking.Options{
		MinSectionLength: opts.MinSectionLength,
		Workers:          opts.Workers,
		Logger:           logger,
	})
	if err != nil {
		return nil, &ConfigError{Field: "ranking", Message: "ranker rejected options", Cause: err}
	}

	summarizer, err := summarize.New(summarize.Options{
		Sentences:         opts.SummarySentences,
		MinSentenceLength: opts.MinSentenceLength,
	})
	if err != nil {
		return nil, &ConfigError{Field: "summary", Message: "summarizer rejected options", Cause: err}
	}

	return &Pipeline{
		opts:       opts,
		model:      model,
		segmenter:  segmenter,
		ranker:     ranker,
		summarizer: summarizer,
		logger:     logger,
	}, nil
}

func validateOptions(opts Options) error {
	limits := []struct {
		field    string
		value    int
		positive bool
	}{
		{"keyword_limit", opts.KeywordLimit, false},
		{"max_sections_per_page", opts.MaxSectionsPerPage, true},
		{"long_page_threshold", opts.LongPageThreshold, false},
		{"chunk_target", opts.ChunkTarget, true},
		{"max_header_length", opts.MaxHeaderLength, true},
		{"min_section_length", opts.MinSectionLength, false},
		{"summary_top_n", opts.SummaryTopN, false},
		{"summary_sentences", opts.SummarySentences, true},
		{"min_sentence_length", opts.MinSentenceLength, false},
		{"workers", opts.Workers, false},
	}
	for _, l := range limits {
		if l.value < 0 {
			return &ConfigError{Field: l.field, Message: fmt.Sprintf("must be non-negative, got %d", l.value)}
		}
		if l.positive && l.value == 0 {
			return &ConfigError{Field: l.field, Message: "must be positive"}
		}
	}
	return nil
}

// Keywords runs only the keyword model.
func (p *Pipeline) Keywords(persona, task string) types.KeywordSet {
	return p.model.Extract(persona, task)
}

// Segment splits one page with the configured segmenter.
func (p *Pipeline) Segment(pageText string) []string {
	return p.segmenter.Segment(pageText)
}

// RankAndSummarize extracts keywords from persona and task, ranks every
// qualifying section of documents, and summarizes the top SummaryTopN
// sections. Ranked sections are returned in full; summaries follow rank order.
// Documents that fail are listed in Analysis.Failures. The only error
// returned is context cancellation.
func (p *Pipeline) RankAndSummarize(ctx context.Context, documents []types.Document, persona, task string) (*types.Analysis, error) {
	start := time.Now()

	kw := p.model.Extract(persona, task)
	p.emit(StepKeywords, fmt.Sprintf("Extracted %d keywords (%s analyzer)", kw.Ranked.Len(), p.model.Analyzer().Name()), kw)

	ranked, err := p.ranker.Rank(ctx, documents, kw)
	if err != nil {
		return nil, fmt.Errorf("section ranking failed: %w", err)
	}
	p.emit(StepRanking, fmt.Sprintf("Ranked %d sections from %d documents", len(ranked.Sections), len(documents)), nil)

	top := ranked.Sections
	if len(top) > p.opts.SummaryTopN {
		top = top[:p.opts.SummaryTopN]
	}
	summaries := p.summarizer.SummarizeSections(top, kw)
	p.emit(StepSummaries, fmt.Sprintf("Summarized top %d sections", len(summaries)), nil)

	p.logger.Printf("[pipeline] Processed %d documents in %s", len(documents), time.Since(start).Round(time.Millisecond))

	return &types.Analysis{
		Keywords:       kw,
		RankedSections: ranked.Sections,
		Summaries:      summaries,
		Failures:       ranked.Failures,
	}, nil
}

// emit calls the progress callback if configured
func (p *Pipeline) emit(step, message string, content any) {
	if p.opts.OnProgress != nil {
		p.opts.OnProgress(ProgressEvent{Step: step, Message: message, Content: content})
	}
}
