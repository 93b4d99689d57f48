// Package ranking scores document sections against a keyword set and orders
// them into a single global relevance ranking.
package ranking

import (
	"context"
	"fmt"
	"log"
	"sort"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/persona-ranker/internal/segment"
	"github.com/jonathan/persona-ranker/internal/textutil"
	"github.com/jonathan/persona-ranker/internal/types"
)

// DefaultMinSectionLength is the shortest section text, in characters, that is scored.
const DefaultMinSectionLength = 100

// DocumentError reports a document that could not be segmented or scored.
type DocumentError struct {
	Document string
	Message  string
	Cause    error
}

func (e *DocumentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("document %s: %s: %v", e.Document, e.Message, e.Cause)
	}
	return fmt.Sprintf("document %s: %s", e.Document, e.Message)
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}

// Options configures a Ranker.
type Options struct {
	// MinSectionLength drops shorter sections before scoring.
	MinSectionLength int
	// Workers bounds concurrent document processing; 0 or 1 means sequential.
	Workers int
	// Logger receives per-document failure reports; nil uses log.Default().
	Logger *log.Logger
}

// Ranking is the globally ordered section list plus any isolated failures.
type Ranking struct {
	Sections []types.Section
	Failures []types.DocumentFailure
}

// Ranker segments, scores and orders sections across documents.
type Ranker struct {
	segmenter *segment.Segmenter
	opts      Options
	logger    *log.Logger
}

// NewRanker creates a Ranker. Returns an error for a nil segmenter or negative limits.
func NewRanker(segmenter *segment.Segmenter, opts Options) (*Ranker, error) {
	if segmenter == nil {
		return nil, fmt.Errorf("segmenter is required")
	}
	if opts.MinSectionLength < 0 {
		return nil, fmt.Errorf("min section length must be non-negative, got %d", opts.MinSectionLength)
	}
	if opts.Workers < 0 {
		return nil, fmt.Errorf("workers must be non-negative, got %d", opts.Workers)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Ranker{segmenter: segmenter, opts: opts, logger: logger}, nil
}

// Rank scores every qualifying section of every document and returns them
// sorted by descending score. Equal scores keep discovery order (document,
// page, section). Importance ranks are assigned 1..N after sorting.
// A failing document is reported in Ranking.Failures and does not stop the others,
// as is any document repeating an earlier document's id.
// The only error returned is context cancellation.
func (r *Ranker) Rank(ctx context.Context, documents []types.Document, keywords types.KeywordSet) (*Ranking, error) {
	perDoc := make([][]types.Section, len(documents))
	errs := make([]error, len(documents))

	// Section keys are (document, page, index), so a repeated id is rejected
	// and only its first occurrence is ranked.
	seen := make(map[string]bool, len(documents))
	for i, doc := range documents {
		if doc.ID != "" && seen[doc.ID] {
			errs[i] = &DocumentError{Document: doc.ID, Message: "duplicate document id"}
		}
		seen[doc.ID] = true
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(r.opts.Workers, 1))

	for i := range documents {
		if errs[i] != nil {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			perDoc[i], errs[i] = r.rankDocument(documents[i], keywords)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("ranking cancelled: %w", err)
	}

	ranking := &Ranking{
		Sections: make([]types.Section, 0),
		Failures: make([]types.DocumentFailure, 0),
	}
	for i, sections := range perDoc {
		if errs[i] != nil {
			r.logger.Printf("[ranking] Skipping %s: %v", documents[i].ID, errs[i])
			ranking.Failures = append(ranking.Failures, types.DocumentFailure{
				Document: documents[i].ID,
				Error:    errs[i].Error(),
			})
			continue
		}
		ranking.Sections = append(ranking.Sections, sections...)
	}

	sort.SliceStable(ranking.Sections, func(i, j int) bool {
		return ranking.Sections[i].RelevanceScore > ranking.Sections[j].RelevanceScore
	})
	for i := range ranking.Sections {
		ranking.Sections[i].ImportanceRank = i + 1
	}

	return ranking, nil
}

// rankDocument segments and scores one document, converting panics into a DocumentError.
func (r *Ranker) rankDocument(doc types.Document, keywords types.KeywordSet) (sections []types.Section, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			sections = nil
			err = &DocumentError{Document: doc.ID, Message: "panic during ranking", Cause: fmt.Errorf("%v", rec)}
		}
	}()

	if doc.ID == "" {
		return nil, &DocumentError{Document: "(unnamed)", Message: "document id is empty"}
	}

	sections = make([]types.Section, 0)
	for p, page := range doc.Pages {
		pageNumber := p + 1
		if !utf8.ValidString(page) {
			return nil, &DocumentError{Document: doc.ID, Message: fmt.Sprintf("page %d is not valid UTF-8", pageNumber)}
		}
		for idx, text := range r.segmenter.Segment(page) {
			if textutil.Len(text) < r.opts.MinSectionLength {
				continue
			}
			sections = append(sections, types.Section{
				Document:       doc.ID,
				PageNumber:     pageNumber,
				SectionIndex:   idx,
				Title:          ExtractTitle(text),
				Text:           text,
				RelevanceScore: Score(text, keywords),
			})
		}
	}
	return sections, nil
}
