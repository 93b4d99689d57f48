package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywordsCommand_Box(t *testing.T) {
	stdout, _, err := execute(t, "keywords", "--persona", "Travel Planner", "--job", "Plan beach activities")
	require.NoError(t, err)

	assert.Contains(t, stdout, "KEYWORDS")
	assert.Contains(t, stdout, "beach")
}

func TestKeywordsCommand_JSON(t *testing.T) {
	stdout, _, err := execute(t, "keywords", "--json", "-p", "Travel Planner", "-j", "Plan beach activities", "--limit", "3")
	require.NoError(t, err)

	var resp struct {
		Combined []string       `json:"combined_keywords"`
		Weights  map[string]int `json:"keyword_weights"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.LessOrEqual(t, len(resp.Combined), 3)
	assert.NotEmpty(t, resp.Weights)
}

func TestKeywordsCommand_Empty(t *testing.T) {
	stdout, _, err := execute(t, "keywords")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No keywords extracted")
}

func TestSegmentCommand(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "guide.txt", beachGuide+"\f"+foodGuide)

	stdout, _, err := execute(t, "segment", "--file", doc)
	require.NoError(t, err)
	assert.Contains(t, stdout, "SEGMENTS: guide.txt p.1")
	assert.Contains(t, stdout, "SEGMENTS: guide.txt p.2")
	assert.Contains(t, stdout, "1. Coastal Adventures")

	stdout, _, err = execute(t, "segment", "--file", doc, "--page", "2")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "p.1")
	assert.Contains(t, stdout, "1. Local Cuisine")

	_, _, err = execute(t, "segment", "--file", doc, "--page", "3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has 2 pages")
}

func TestSegmentCommand_Errors(t *testing.T) {
	_, _, err := execute(t, "segment")
	require.Error(t, err)

	missing := filepath.Join(t.TempDir(), "missing.txt")
	_, statErr := os.Stat(missing)
	require.True(t, os.IsNotExist(statErr))
	_, _, err = execute(t, "segment", "--file", missing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}
