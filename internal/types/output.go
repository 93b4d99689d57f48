// Package types provides type definitions for structured data used throughout the persona-ranker system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// AnalysisOutput is the serialized result document written by the CLI and returned by the API.
type AnalysisOutput struct {
	Metadata           OutputMetadata      `json:"metadata"`
	ExtractedSections  []ExtractedSection  `json:"extracted_sections"`
	SubsectionAnalysis []SubsectionSummary `json:"subsection_analysis"`
}

// OutputMetadata describes the inputs and timing of a run.
type OutputMetadata struct {
	RunID                 string            `json:"run_id"`
	InputDocuments        []string          `json:"input_documents"`
	Persona               string            `json:"persona"`
	JobToBeDone           string            `json:"job_to_be_done"`
	ProcessingTimestamp   string            `json:"processing_timestamp"` // RFC3339
	ProcessingTimeSeconds float64           `json:"processing_time_seconds"`
	SkippedDocuments      []DocumentFailure `json:"skipped_documents,omitempty"`
}

// ExtractedSection is the display form of a ranked Section.
type ExtractedSection struct {
	Document       string `json:"document"`
	SectionTitle   string `json:"section_title"`
	ImportanceRank int    `json:"importance_rank"`
	PageNumber     int    `json:"page_number"`
}

// SubsectionSummary is the display form of a SummaryRecord.
type SubsectionSummary struct {
	Document    string `json:"document"`
	RefinedText string `json:"refined_text"`
	PageNumber  int    `json:"page_number"`
}
