// Package types provides type definitions for structured data used throughout the persona-ranker system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "github.com/go-playground/validator/v10"

// CollectionInput is the descriptor stored as challenge1b_input.json in a collection directory.
type CollectionInput struct {
	ChallengeInfo *ChallengeInfo  `json:"challenge_info,omitempty"`
	Documents     []DocumentRef   `json:"documents" validate:"required,min=1,unique=Filename,dive"`
	Persona       PersonaSpec     `json:"persona"`
	JobToBeDone   JobToBeDoneSpec `json:"job_to_be_done"`
}

// ChallengeInfo carries optional identifying information about a collection.
type ChallengeInfo struct {
	ChallengeID string `json:"challenge_id,omitempty"`
	TestCase    string `json:"test_case_name,omitempty"`
	Description string `json:"description,omitempty"`
}

// DocumentRef names one document file of a collection.
type DocumentRef struct {
	Filename string `json:"filename" validate:"required"`
	Title    string `json:"title,omitempty"`
}

// PersonaSpec describes the user role requesting the analysis.
type PersonaSpec struct {
	Role string `json:"role" validate:"required"`
}

// JobToBeDoneSpec describes what the user is trying to accomplish.
type JobToBeDoneSpec struct {
	Task string `json:"task" validate:"required"`
}

// Validate validates the CollectionInput using the validator.
func (c *CollectionInput) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// DocumentFilenames returns the document file names in descriptor order.
func (c *CollectionInput) DocumentFilenames() []string {
	names := make([]string, len(c.Documents))
	for i, d := range c.Documents {
		names[i] = d.Filename
	}
	return names
}
