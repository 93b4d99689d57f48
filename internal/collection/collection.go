// Package collection processes document collections described by a
// challenge1b_input.json descriptor.
package collection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jonathan/persona-ranker/internal/ingestion"
	"github.com/jonathan/persona-ranker/internal/output"
	"github.com/jonathan/persona-ranker/internal/pipeline"
	"github.com/jonathan/persona-ranker/internal/schemas"
	"github.com/jonathan/persona-ranker/internal/types"
	schemafiles "github.com/jonathan/persona-ranker/schemas"
)

const (
	// InputFileName is the descriptor file inside a collection directory.
	InputFileName = "challenge1b_input.json"

	// DefaultDocumentsDir is the sub-directory holding the collection's documents.
	DefaultDocumentsDir = "PDFs"

	// collectionMarker selects collection directories when processing a base directory.
	collectionMarker = "Collection"
)

// ErrNoDocuments is returned when none of a collection's documents could be found.
var ErrNoDocuments = errors.New("no documents found")

// LoadError reports a collection descriptor that could not be read or validated.
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("collection %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("collection %s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// LoadInput reads a descriptor, checks it against the collection input schema,
// then decodes and validates it.
func LoadInput(path string) (*types.CollectionInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &LoadError{Path: path, Message: "input file not found", Cause: err}
		}
		return nil, &LoadError{Path: path, Message: "failed to read input file", Cause: err}
	}

	validator, err := schemas.NewValidator(schemafiles.CollectionInput)
	if err != nil {
		return nil, err
	}
	if err := validator.ValidateBytes(data); err != nil {
		return nil, &LoadError{Path: path, Message: "input does not match schema", Cause: err}
	}

	var input types.CollectionInput
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, &LoadError{Path: path, Message: "invalid input JSON", Cause: err}
	}
	if err := input.Validate(); err != nil {
		return nil, &LoadError{Path: path, Message: "invalid input", Cause: err}
	}
	return &input, nil
}

// OutputFileName derives the result file name from a collection directory:
// the base name lower-cased with spaces replaced by underscores.
func OutputFileName(collectionDir string) string {
	name := strings.ToLower(strings.ReplaceAll(filepath.Base(collectionDir), " ", "_"))
	return name + "_output.json"
}

// Result describes one processed collection.
type Result struct {
	Collection string
	OutputPath string
	Output     types.AnalysisOutput
}

// Failure records a collection that could not be processed.
type Failure struct {
	Collection string
	Err        error
}

// Processor runs the pipeline over collection directories.
type Processor struct {
	pipeline     *pipeline.Pipeline
	loader       *ingestion.Loader
	formatter    *output.Formatter
	documentsDir string
	logger       *log.Logger
}

// NewProcessor creates a Processor. An empty documentsDir uses DefaultDocumentsDir.
func NewProcessor(p *pipeline.Pipeline, loader *ingestion.Loader, formatter *output.Formatter, documentsDir string, logger *log.Logger) *Processor {
	if documentsDir == "" {
		documentsDir = DefaultDocumentsDir
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Processor{
		pipeline:     p,
		loader:       loader,
		formatter:    formatter,
		documentsDir: documentsDir,
		logger:       logger,
	}
}

// Process analyzes one collection directory and writes its result into
// outputDir, or into the collection directory when outputDir is empty.
// Missing documents are logged and skipped; if none exist ErrNoDocuments is returned.
func (p *Processor) Process(ctx context.Context, collectionDir, outputDir string) (*Result, error) {
	input, err := LoadInput(filepath.Join(collectionDir, InputFileName))
	if err != nil {
		return nil, err
	}

	docsDir := filepath.Join(collectionDir, p.documentsDir)
	paths := make([]string, 0, len(input.Documents))
	for _, ref := range input.Documents {
		path := filepath.Join(docsDir, ref.Filename)
		if _, err := os.Stat(path); err != nil {
			p.logger.Printf("[collection] Warning: document not found: %s", path)
			continue
		}
		paths = append(paths, path)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoDocuments, docsDir)
	}

	persona := input.Persona.Role
	task := input.JobToBeDone.Task
	p.logger.Printf("[collection] Processing %d documents for persona: %s", len(paths), persona)

	started := time.Now()
	docs, loadFailures := p.loader.LoadFiles(paths)
	analysis, err := p.pipeline.RankAndSummarize(ctx, docs, persona, task)
	if err != nil {
		return nil, fmt.Errorf("collection %s: %w", filepath.Base(collectionDir), err)
	}
	analysis.Failures = append(loadFailures, analysis.Failures...)

	out := p.formatter.Format(analysis, output.RunInfo{
		InputDocuments: paths,
		Persona:        persona,
		JobToBeDone:    task,
		Started:        started,
		Finished:       time.Now(),
	})

	if outputDir == "" {
		outputDir = collectionDir
	}
	outPath := filepath.Join(outputDir, OutputFileName(collectionDir))
	if err := p.formatter.Write(outPath, out); err != nil {
		return nil, err
	}
	p.logger.Printf("[collection] Results saved to: %s", outPath)

	return &Result{Collection: filepath.Base(collectionDir), OutputPath: outPath, Output: out}, nil
}

// ProcessAll processes every sub-directory of baseDir whose name contains
// "Collection", in name order. A failing collection is recorded and the
// rest still run. The error is non-nil only when baseDir cannot be read.
func (p *Processor) ProcessAll(ctx context.Context, baseDir, outputDir string) ([]Result, []Failure, error) {
	dirs, err := FindCollections(baseDir)
	if err != nil {
		return nil, nil, err
	}

	results := make([]Result, 0, len(dirs))
	failures := make([]Failure, 0)
	for _, dir := range dirs {
		if err := ctx.Err(); err != nil {
			return results, failures, err
		}
		p.logger.Printf("[collection] Processing: %s", filepath.Base(dir))
		res, err := p.Process(ctx, dir, outputDir)
		if err != nil {
			p.logger.Printf("[collection] Error processing %s: %v", filepath.Base(dir), err)
			failures = append(failures, Failure{Collection: filepath.Base(dir), Err: err})
			continue
		}
		results = append(results, *res)
	}
	return results, failures, nil
}

// FindCollections lists the collection directories under baseDir, sorted by name.
func FindCollections(baseDir string) ([]string, error) {
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		return nil, &LoadError{Path: baseDir, Message: "failed to read base directory", Cause: err}
	}
	dirs := make([]string, 0)
	for _, entry := range entries {
		if entry.IsDir() && strings.Contains(entry.Name(), collectionMarker) {
			dirs = append(dirs, filepath.Join(baseDir, entry.Name()))
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}
