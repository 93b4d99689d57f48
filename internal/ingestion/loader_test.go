package ingestion

import (
	"bytes"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var longParagraph = strings.Repeat("Travel planning notes cover hotels and restaurants. ", 3)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func quietLoader() *Loader {
	l := NewLoader()
	l.Logger = log.New(&bytes.Buffer{}, "", 0)
	return l
}

func TestDetectFormat(t *testing.T) {
	tests := map[string]string{
		"guide.txt":  FormatText,
		"GUIDE.MD":   FormatMarkdown,
		"index.html": FormatHTML,
		"page.htm":   FormatHTML,
		"scan.PDF":   FormatPDF,
	}
	for path, want := range tests {
		got, err := DetectFormat(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	_, err := DetectFormat("report.docx")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadFile_TextPages(t *testing.T) {
	dir := t.TempDir()
	content := "1. Hotels\n\n" + longParagraph + "\f" + "tiny page" + "\f" + "2. Food\n\n" + longParagraph
	path := writeFile(t, dir, "south.txt", content)

	doc, meta, err := quietLoader().LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "south.txt", doc.ID)
	require.Len(t, doc.Pages, 2)
	assert.True(t, strings.HasPrefix(doc.Pages[0], "1. Hotels\n\n"))
	assert.True(t, strings.HasPrefix(doc.Pages[1], "2. Food\n\n"))
	assert.Equal(t, FormatText, meta.Format)
	assert.Equal(t, 3, meta.RawPages)
	assert.Equal(t, 2, meta.KeptPages)
	assert.Equal(t, 1, meta.DroppedPages)
	assert.Len(t, meta.Hash, 64)
}

func TestLoadFile_MaxPages(t *testing.T) {
	dir := t.TempDir()
	pages := make([]string, 5)
	for i := range pages {
		pages[i] = longParagraph
	}
	path := writeFile(t, dir, "many.md", strings.Join(pages, "\f"))
	l := quietLoader()
	l.MaxPages = 2

	doc, meta, err := l.LoadFile(path)
	require.NoError(t, err)

	assert.Len(t, doc.Pages, 2)
	assert.True(t, meta.Truncated)
}

func TestLoadFile_HTMLPages(t *testing.T) {
	dir := t.TempDir()
	html := `<html><body>
<div class="page"><h1>Coastal Towns</h1><p>` + longParagraph + `</p></div>
<div class="page"><h2>Nightlife</h2><p>` + longParagraph + `</p><script>var x = 1;</script></div>
</body></html>`
	path := writeFile(t, dir, "cities.html", html)

	doc, _, err := quietLoader().LoadFile(path)
	require.NoError(t, err)

	require.Len(t, doc.Pages, 2)
	assert.Equal(t, "Coastal Towns\n\n"+strings.TrimSpace(longParagraph), doc.Pages[0])
	assert.True(t, strings.HasPrefix(doc.Pages[1], "Nightlife\n\n"))
	assert.NotContains(t, doc.Pages[1], "var x")
}

func TestLoadFile_HTMLBodyFallback(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "plain.html", "<html><body><p>"+longParagraph+"</p></body></html>")

	doc, _, err := quietLoader().LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, []string{strings.TrimSpace(longParagraph)}, doc.Pages)
}

func TestLoadFile_PDFPages(t *testing.T) {
	doc, meta, err := quietLoader().LoadFile(filepath.Join("testdata", "sample.pdf"))
	require.NoError(t, err)

	assert.Equal(t, "sample.pdf", doc.ID)
	assert.Equal(t, FormatPDF, meta.Format)
	assert.Equal(t, 2, meta.RawPages)
	require.Len(t, doc.Pages, 2)
	assert.Contains(t, doc.Pages[0], "Harbor Walks of Lisbon")
	assert.Contains(t, doc.Pages[0], "rent bicycles near the old docks")
	assert.Contains(t, doc.Pages[1], "grilled sardines")
}

func TestLoadFile_PDFMaxPages(t *testing.T) {
	l := quietLoader()
	l.MaxPages = 1

	doc, meta, err := l.LoadFile(filepath.Join("testdata", "sample.pdf"))
	require.NoError(t, err)

	require.Len(t, doc.Pages, 1)
	assert.Contains(t, doc.Pages[0], "Harbor Walks of Lisbon")
	assert.Equal(t, 2, meta.RawPages)
	assert.True(t, meta.Truncated)
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()
	docx := writeFile(t, dir, "report.docx", "PK")

	_, _, err := quietLoader().LoadFile(docx)
	var extractErr *ExtractError
	require.True(t, errors.As(err, &extractErr))
	assert.Equal(t, docx, extractErr.Path)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	truncated := writeFile(t, dir, "scan.pdf", "%PDF-1.4")
	_, _, err = quietLoader().LoadFile(truncated)
	require.True(t, errors.As(err, &extractErr))
	assert.Contains(t, err.Error(), "failed to parse PDF")

	_, _, err = quietLoader().LoadFile(filepath.Join(dir, "missing.txt"))
	require.True(t, errors.As(err, &extractErr))
	assert.Contains(t, err.Error(), "file not found")
}

func TestLoadFiles_IsolatesFailures(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.txt", longParagraph)
	bad := writeFile(t, dir, "bad.pdf", "%PDF")
	var logs bytes.Buffer
	l := NewLoader()
	l.Logger = log.New(&logs, "", 0)

	docs, failures := l.LoadFiles([]string{bad, good})

	require.Len(t, docs, 1)
	assert.Equal(t, "good.txt", docs[0].ID)
	require.Len(t, failures, 1)
	assert.Equal(t, "bad.pdf", failures[0].Document)
	assert.Contains(t, logs.String(), "[ingestion] Skipping")
}

func TestLoad_ReturnsMetadataPerDocument(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", longParagraph)
	bad := writeFile(t, dir, "bad.pdf", "%PDF")
	b := writeFile(t, dir, "b.md", longParagraph+"\f"+longParagraph)

	res := quietLoader().Load([]string{a, bad, b})

	require.Len(t, res.Documents, 2)
	require.Len(t, res.Metadata, 2)
	assert.Equal(t, a, res.Metadata[0].Path)
	assert.Equal(t, 2, res.Metadata[1].KeptPages)
	require.Len(t, res.Failures, 1)
	assert.Equal(t, "bad.pdf", res.Failures[0].Document)
}

func TestMetadata_ToJSON(t *testing.T) {
	meta := NewMetadata("a.txt", FormatText, []byte("abc"))

	data, err := meta.ToJSON()
	require.NoError(t, err)

	assert.Contains(t, string(data), `"hash": "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"`)
	assert.Contains(t, string(data), `"format": "text"`)
}

func TestListDocuments(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.md", "x")
	writeFile(t, dir, "a.txt", "x")
	writeFile(t, dir, "c.pdf", "x")
	writeFile(t, dir, "d.docx", "x")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.txt"), 0755))

	paths, err := ListDocuments(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.txt"),
		filepath.Join(dir, "b.md"),
		filepath.Join(dir, "c.pdf"),
	}, paths)

	_, err = ListDocuments(filepath.Join(dir, "missing"))
	var extractErr *ExtractError
	assert.ErrorAs(t, err, &extractErr)
}
