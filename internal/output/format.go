// Package output formats an analysis into the result document and writes it to disk.
package output

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/persona-ranker/internal/schemas"
	"github.com/jonathan/persona-ranker/internal/types"
	schemafiles "github.com/jonathan/persona-ranker/schemas"
)

// DefaultTopN is the number of ranked sections included in the result document.
const DefaultTopN = 10

// RunInfo carries the run inputs and timing recorded in the metadata block.
type RunInfo struct {
	RunID          string
	InputDocuments []string
	Persona        string
	JobToBeDone    string
	Started        time.Time
	Finished       time.Time
}

// Formatter builds and writes result documents.
type Formatter struct {
	topN      int
	validator *schemas.Validator
	logger    *log.Logger
}

// NewFormatter creates a Formatter that keeps the top topN ranked sections.
// Returns an error if topN is not positive or the output schema cannot be compiled.
func NewFormatter(topN int, logger *log.Logger) (*Formatter, error) {
	if topN <= 0 {
		return nil, fmt.Errorf("top N must be positive, got %d", topN)
	}
	validator, err := schemas.NewValidator(schemafiles.AnalysisOutput)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Formatter{topN: topN, validator: validator, logger: logger}, nil
}

// TopN returns the number of ranked sections kept by Format.
func (f *Formatter) TopN() int {
	return f.topN
}

// WithTopN returns a copy of f that keeps n ranked sections. A non-positive n keeps the current value.
func (f *Formatter) WithTopN(n int) *Formatter {
	if n <= 0 {
		return f
	}
	clone := *f
	clone.topN = n
	return &clone
}

// Format converts an analysis into the result document. Ranked sections are
// cut to the top N; summaries are kept as produced. A missing run ID is generated.
func (f *Formatter) Format(analysis *types.Analysis, info RunInfo) types.AnalysisOutput {
	runID := info.RunID
	if runID == "" {
		runID = uuid.New().String()
	}
	finished := info.Finished
	if finished.IsZero() {
		finished = time.Now()
	}
	elapsed := 0.0
	if !info.Started.IsZero() {
		elapsed = math.Round(finished.Sub(info.Started).Seconds()*100) / 100
	}

	inputs := make([]string, len(info.InputDocuments))
	for i, doc := range info.InputDocuments {
		inputs[i] = filepath.Base(doc)
	}

	ranked := analysis.RankedSections
	if len(ranked) > f.topN {
		ranked = ranked[:f.topN]
	}
	sections := make([]types.ExtractedSection, 0, len(ranked))
	for _, sec := range ranked {
		sections = append(sections, types.ExtractedSection{
			Document:       sec.Document,
			SectionTitle:   sec.Title,
			ImportanceRank: sec.ImportanceRank,
			PageNumber:     sec.PageNumber,
		})
	}

	subsections := make([]types.SubsectionSummary, 0, len(analysis.Summaries))
	for _, summary := range analysis.Summaries {
		subsections = append(subsections, types.SubsectionSummary{
			Document:    summary.Document,
			RefinedText: summary.RefinedText,
			PageNumber:  summary.PageNumber,
		})
	}

	return types.AnalysisOutput{
		Metadata: types.OutputMetadata{
			RunID:                 runID,
			InputDocuments:        inputs,
			Persona:               info.Persona,
			JobToBeDone:           info.JobToBeDone,
			ProcessingTimestamp:   finished.UTC().Format(time.RFC3339),
			ProcessingTimeSeconds: elapsed,
			SkippedDocuments:      analysis.Failures,
		},
		ExtractedSections:  sections,
		SubsectionAnalysis: subsections,
	}
}

// Validate checks a result document against the output schema.
func (f *Formatter) Validate(out types.AnalysisOutput) error {
	return f.validator.ValidateValue(out)
}

// Write validates out and writes it as indented JSON, creating parent
// directories as needed. A schema violation is logged, not returned.
func (f *Formatter) Write(path string, out types.AnalysisOutput) error {
	if err := f.Validate(out); err != nil {
		f.logger.Printf("[output] Warning: %s does not match output schema: %v", path, err)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
