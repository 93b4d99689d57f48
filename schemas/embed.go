// Package schemas holds the JSON Schema documents for pipeline inputs and outputs.
package schemas

import "embed"

// Schema file names
const (
	AnalysisOutput  = "analysis_output.schema.json"
	CollectionInput = "collection_input.schema.json"
)

//go:embed *.schema.json
var files embed.FS

// Read returns the embedded schema document with the given file name.
func Read(name string) ([]byte, error) {
	return files.ReadFile(name)
}
