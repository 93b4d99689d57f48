// Package types provides type definitions for structured data used throughout the persona-ranker system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "github.com/go-playground/validator/v10"

// AnalyzeRequest is the body of an analysis request to the HTTP API.
// Documents carry already-extracted page text.
type AnalyzeRequest struct {
	Persona     string     `json:"persona" validate:"max=2000"`
	JobToBeDone string     `json:"job_to_be_done" validate:"max=2000"`
	Documents   []Document `json:"documents" validate:"required,min=1,max=50,unique=ID,dive"`
	TopN        int        `json:"top_n,omitempty" validate:"omitempty,min=1,max=100"`
}

// Validate validates the AnalyzeRequest using the validator.
func (r *AnalyzeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// DocumentIDs returns the request's document identifiers in order.
func (r *AnalyzeRequest) DocumentIDs() []string {
	ids := make([]string, len(r.Documents))
	for i, d := range r.Documents {
		ids[i] = d.ID
	}
	return ids
}
