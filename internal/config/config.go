// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/persona-ranker/internal/ingestion"
	"github.com/jonathan/persona-ranker/internal/keywords"
	"github.com/jonathan/persona-ranker/internal/pipeline"
	"github.com/jonathan/persona-ranker/internal/ranking"
	"github.com/jonathan/persona-ranker/internal/segment"
	"github.com/jonathan/persona-ranker/internal/summarize"
)

// Config represents the CLI configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Inputs
	Persona   string   `json:"persona,omitempty" yaml:"persona,omitempty"`     // Persona description
	Job       string   `json:"job,omitempty" yaml:"job,omitempty"`             // Job-to-be-done description
	Documents []string `json:"documents,omitempty" yaml:"documents,omitempty"` // Document file paths
	DocsDir   string   `json:"docs_dir,omitempty" yaml:"docs_dir,omitempty"`   // Directory scanned for documents
	Output    string   `json:"output,omitempty" yaml:"output,omitempty"`       // Output JSON path
	Language  string   `json:"language,omitempty" yaml:"language,omitempty"`   // Stop-word language

	// Limits
	TopN                int `json:"top_n,omitempty" yaml:"top_n,omitempty" validate:"gte=0"`
	SummarySentences    int `json:"summary_sentences,omitempty" yaml:"summary_sentences,omitempty" validate:"gte=0"`
	KeywordLimit        int `json:"keyword_limit,omitempty" yaml:"keyword_limit,omitempty" validate:"gte=0"`
	MaxSectionsPerPage  int `json:"max_sections_per_page,omitempty" yaml:"max_sections_per_page,omitempty" validate:"gte=0"`
	MinSectionLength    int `json:"min_section_length,omitempty" yaml:"min_section_length,omitempty" validate:"gte=0"`
	LongPageThreshold   int `json:"long_page_threshold,omitempty" yaml:"long_page_threshold,omitempty" validate:"gte=0"`
	ChunkTargetLength   int `json:"chunk_target_length,omitempty" yaml:"chunk_target_length,omitempty" validate:"gte=0"`
	MaxPagesPerDocument int `json:"max_pages_per_document,omitempty" yaml:"max_pages_per_document,omitempty" validate:"gte=0"`
	Workers             int `json:"workers,omitempty" yaml:"workers,omitempty" validate:"gte=0,lte=64"`

	// Behavior
	Verbose bool `json:"verbose,omitempty" yaml:"verbose,omitempty"` // Print detailed debug information
}

// Default returns the configuration used when neither a file nor flags set a value.
func Default() Config {
	return Config{
		Output:              "output.json",
		Language:            "english",
		TopN:                pipeline.DefaultSummaryTopN,
		SummarySentences:    summarize.DefaultSentences,
		KeywordLimit:        keywords.DefaultLimit,
		MaxSectionsPerPage:  segment.DefaultMaxSections,
		MinSectionLength:    ranking.DefaultMinSectionLength,
		LongPageThreshold:   segment.DefaultLongPageThreshold,
		ChunkTargetLength:   segment.DefaultChunkTarget,
		MaxPagesPerDocument: ingestion.DefaultMaxPages,
		Workers:             1,
	}
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if len(c.Documents) > 0 && c.DocsDir != "" {
		return fmt.Errorf("config error: 'documents' and 'docs_dir' are mutually exclusive")
	}

	for _, doc := range c.Documents {
		if _, err := os.Stat(doc); os.IsNotExist(err) {
			return fmt.Errorf("config error: document not found: %s", doc)
		}
	}

	if c.DocsDir != "" {
		info, err := os.Stat(c.DocsDir)
		if err != nil || !info.IsDir() {
			return fmt.Errorf("config error: docs_dir is not a directory: %s", c.DocsDir)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Persona == "" {
		result.Persona = defaults.Persona
	}
	if result.Job == "" {
		result.Job = defaults.Job
	}
	if result.DocsDir == "" {
		result.DocsDir = defaults.DocsDir
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}
	if result.Language == "" {
		result.Language = defaults.Language
	}
	if len(result.Documents) == 0 {
		result.Documents = defaults.Documents
	}

	// Int fields: use default if zero
	ints := []struct {
		dst *int
		def int
	}{
		{&result.TopN, defaults.TopN},
		{&result.SummarySentences, defaults.SummarySentences},
		{&result.KeywordLimit, defaults.KeywordLimit},
		{&result.MaxSectionsPerPage, defaults.MaxSectionsPerPage},
		{&result.MinSectionLength, defaults.MinSectionLength},
		{&result.LongPageThreshold, defaults.LongPageThreshold},
		{&result.ChunkTargetLength, defaults.ChunkTargetLength},
		{&result.MaxPagesPerDocument, defaults.MaxPagesPerDocument},
		{&result.Workers, defaults.Workers},
	}
	for _, f := range ints {
		if *f.dst == 0 {
			*f.dst = f.def
		}
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// PipelineOptions maps the configuration onto pipeline options.
func (c *Config) PipelineOptions() pipeline.Options {
	opts := pipeline.DefaultOptions()
	if c.Language != "" {
		opts.Language = c.Language
	}
	opts.KeywordLimit = c.KeywordLimit
	opts.MaxSectionsPerPage = c.MaxSectionsPerPage
	opts.LongPageThreshold = c.LongPageThreshold
	opts.ChunkTarget = c.ChunkTargetLength
	opts.MinSectionLength = c.MinSectionLength
	opts.SummaryTopN = c.TopN
	opts.SummarySentences = c.SummarySentences
	opts.Workers = c.Workers
	return opts
}

// Loader builds the document loader for the configured page cap.
func (c *Config) Loader() *ingestion.Loader {
	l := ingestion.NewLoader()
	l.MaxPages = c.MaxPagesPerDocument
	return l
}
