//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeRequest_Validation(t *testing.T) {
	doc := Document{ID: "a.txt", Pages: []string{"page one"}}

	tests := []struct {
		name    string
		request AnalyzeRequest
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid request",
			request: AnalyzeRequest{Persona: "Chef", JobToBeDone: "Plan a menu", Documents: []Document{doc}},
		},
		{
			name:    "empty persona and task allowed",
			request: AnalyzeRequest{Documents: []Document{doc}},
		},
		{
			name:    "no documents",
			request: AnalyzeRequest{Persona: "Chef"},
			wantErr: true,
			errMsg:  "Documents",
		},
		{
			name:    "document without id",
			request: AnalyzeRequest{Documents: []Document{{Pages: []string{"x"}}}},
			wantErr: true,
			errMsg:  "ID",
		},
		{
			name:    "duplicate document ids",
			request: AnalyzeRequest{Documents: []Document{doc, {ID: "a.txt", Pages: []string{"page two"}}}},
			wantErr: true,
			errMsg:  "unique",
		},
		{
			name:    "top n out of range",
			request: AnalyzeRequest{Documents: []Document{doc}, TopN: 500},
			wantErr: true,
			errMsg:  "TopN",
		},
		{
			name:    "persona too long",
			request: AnalyzeRequest{Persona: strings.Repeat("x", 2001), Documents: []Document{doc}},
			wantErr: true,
			errMsg:  "Persona",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAnalyzeRequest_DocumentIDs(t *testing.T) {
	r := AnalyzeRequest{Documents: []Document{{ID: "b.txt"}, {ID: "a.txt"}}}

	assert.Equal(t, []string{"b.txt", "a.txt"}, r.DocumentIDs())
}
