// Package types provides type definitions for structured data used throughout the persona-ranker system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Document is one input document as an ordered sequence of cleaned page texts.
// Pages are 1-based when referenced from a Section.
type Document struct {
	ID    string   `json:"id" validate:"required"`
	Pages []string `json:"pages"`
}

// Section is one contiguous span of page text used as a scoring unit.
type Section struct {
	Document       string  `json:"document"`
	PageNumber     int     `json:"page_number"`
	SectionIndex   int     `json:"section_index"`
	Title          string  `json:"section_title"`
	Text           string  `json:"section_text"`
	RelevanceScore float64 `json:"relevance_score"`
	// ImportanceRank is the 1-based position after the global sort; 0 means unranked.
	ImportanceRank int `json:"importance_rank"`
}

// SummaryRecord is the refined text produced for one top-ranked section.
type SummaryRecord struct {
	Document       string `json:"document"`
	PageNumber     int    `json:"page_number"`
	SectionTitle   string `json:"section_title"`
	ImportanceRank int    `json:"importance_rank"`
	RefinedText    string `json:"refined_text"`
}

// DocumentFailure records a document that could not be processed.
type DocumentFailure struct {
	Document string `json:"document"`
	Error    string `json:"error"`
}

// Analysis is the result of ranking and summarizing a document set.
type Analysis struct {
	Keywords       KeywordSet        `json:"keywords"`
	RankedSections []Section         `json:"ranked_sections"`
	Summaries      []SummaryRecord   `json:"summaries"`
	Failures       []DocumentFailure `json:"failures,omitempty"`
}
