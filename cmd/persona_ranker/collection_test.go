package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/persona-ranker/internal/collection"
)

const travelInput = `{
  "challenge_info": {"challenge_id": "round_1b_002", "test_case_name": "travel_planner"},
  "documents": [{"filename": "beach.txt", "title": "Beaches"}, {"filename": "food.txt", "title": "Food"}],
  "persona": {"role": "Travel Planner"},
  "job_to_be_done": {"task": "Plan beach and water sports activities"}
}`

func writeTravelCollection(t *testing.T, dir string) {
	t.Helper()
	writeFile(t, dir, "challenge1b_input.json", travelInput)
	writeFile(t, dir, filepath.Join(collection.DefaultDocumentsDir, "beach.txt"), beachGuide)
	writeFile(t, dir, filepath.Join(collection.DefaultDocumentsDir, "food.txt"), foodGuide)
}

func TestCollectionCommand_Single(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Collection 1")
	writeTravelCollection(t, dir)

	stdout, _, err := execute(t, "collection", "--collection", dir)
	require.NoError(t, err)

	outPath := filepath.Join(dir, "collection_1_output.json")
	assert.Contains(t, stdout, outPath)
	out := readOutput(t, outPath)
	assert.Equal(t, []string{"beach.txt", "food.txt"}, out.Metadata.InputDocuments)
	assert.Equal(t, "Travel Planner", out.Metadata.Persona)
}

func TestCollectionCommand_All(t *testing.T) {
	base := t.TempDir()
	outDir := filepath.Join(base, "results")
	writeTravelCollection(t, filepath.Join(base, "Collection 1"))
	writeFile(t, filepath.Join(base, "Collection 2"), "challenge1b_input.json", `{"documents": []}`)
	writeFile(t, filepath.Join(base, "notes"), "readme.txt", "not a collection")

	stdout, _, err := execute(t, "collection", "--all", "--base", base, "--output", outDir)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Collection 2: FAILED")
	assert.Contains(t, stdout, "Processed 1 collections, 1 failed")
	readOutput(t, filepath.Join(outDir, "collection_1_output.json"))
}

func TestCollectionCommand_FlagErrors(t *testing.T) {
	_, _, err := execute(t, "collection")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "either --collection or --all")

	_, _, err = execute(t, "collection", "--all", "--collection", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestCollectionCommand_AllFailed(t *testing.T) {
	base := t.TempDir()
	writeFile(t, filepath.Join(base, "Collection A"), "challenge1b_input.json", `not json`)

	_, _, err := execute(t, "collection", "--all", "--base", base)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all 1 collections failed")
}
