// Package ingestion turns local document files into cleaned per-page text.
package ingestion

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"

	"github.com/jonathan/persona-ranker/internal/types"
)

// Supported document formats
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
	FormatPDF      = "pdf"
)

// pageBreak separates pages in plain-text and markdown documents.
const pageBreak = "\f"

// ErrUnsupportedFormat is returned for file extensions without a text source.
var ErrUnsupportedFormat = fmt.Errorf("unsupported document format")

// ExtractError reports a document file whose pages could not be extracted.
type ExtractError struct {
	Path    string
	Message string
	Cause   error
}

func (e *ExtractError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extract %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("extract %s: %s", e.Path, e.Message)
}

func (e *ExtractError) Unwrap() error {
	return e.Cause
}

// Loader reads document files into types.Document values.
type Loader struct {
	Clean    CleanOptions
	MaxPages int
	Logger   *log.Logger
}

// NewLoader creates a Loader with the default cleaning thresholds and page cap.
func NewLoader() *Loader {
	return &Loader{
		Clean:    DefaultCleanOptions(),
		MaxPages: DefaultMaxPages,
		Logger:   log.Default(),
	}
}

// DetectFormat maps a file extension to a document format.
func DetectFormat(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".text":
		return FormatText, nil
	case ".md", ".markdown":
		return FormatMarkdown, nil
	case ".html", ".htm":
		return FormatHTML, nil
	case ".pdf":
		return FormatPDF, nil
	default:
		return "", ErrUnsupportedFormat
	}
}

// ListDocuments returns the files in dir with a supported extension, sorted by name.
// Sub-directories are not searched.
func ListDocuments(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &ExtractError{Path: dir, Message: "failed to read directory", Cause: err}
	}
	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, err := DetectFormat(entry.Name()); err == nil {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// LoadFile reads one document. The document ID is the file's base name.
// Pages that are empty after cleaning are dropped; at most MaxPages raw pages
// are read.
func (l *Loader) LoadFile(path string) (types.Document, *Metadata, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return types.Document{}, nil, &ExtractError{Path: path, Message: fmt.Sprintf("extension %q", filepath.Ext(path)), Cause: err}
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return types.Document{}, nil, &ExtractError{Path: path, Message: "file not found", Cause: err}
		}
		return types.Document{}, nil, &ExtractError{Path: path, Message: "failed to read file", Cause: err}
	}

	var rawPages []string
	switch format {
	case FormatHTML:
		rawPages, err = htmlPages(raw)
		if err != nil {
			return types.Document{}, nil, &ExtractError{Path: path, Message: "failed to parse HTML", Cause: err}
		}
	case FormatPDF:
		rawPages, err = pdfPages(raw, l.MaxPages)
		if err != nil {
			return types.Document{}, nil, &ExtractError{Path: path, Message: "failed to parse PDF", Cause: err}
		}
	default:
		rawPages = strings.Split(string(raw), pageBreak)
	}

	meta := NewMetadata(path, format, raw)
	meta.RawPages = len(rawPages)
	if l.MaxPages > 0 && len(rawPages) > l.MaxPages {
		rawPages = rawPages[:l.MaxPages]
		meta.Truncated = true
	}

	pages := make([]string, 0, len(rawPages))
	for _, rp := range rawPages {
		if page := CleanPage(rp, l.Clean); page != "" {
			pages = append(pages, page)
		}
	}
	meta.KeptPages = len(pages)
	meta.DroppedPages = len(rawPages) - len(pages)

	return types.Document{ID: filepath.Base(path), Pages: pages}, meta, nil
}

// LoadResult holds the outcome of loading a set of files.
// Documents and Metadata are parallel slices.
type LoadResult struct {
	Documents []types.Document
	Metadata  []*Metadata
	Failures  []types.DocumentFailure
}

// Load reads every path in order. A file that fails is logged and
// reported as a failure; the remaining files are still loaded.
func (l *Loader) Load(paths []string) LoadResult {
	res := LoadResult{
		Documents: make([]types.Document, 0, len(paths)),
		Metadata:  make([]*Metadata, 0, len(paths)),
		Failures:  make([]types.DocumentFailure, 0),
	}
	for _, path := range paths {
		doc, meta, err := l.LoadFile(path)
		if err != nil {
			l.logf("[ingestion] Skipping %s: %v", path, err)
			res.Failures = append(res.Failures, types.DocumentFailure{Document: filepath.Base(path), Error: err.Error()})
			continue
		}
		l.logf("[ingestion] Loaded %s: %d pages kept, %d dropped", doc.ID, meta.KeptPages, meta.DroppedPages)
		res.Documents = append(res.Documents, doc)
		res.Metadata = append(res.Metadata, meta)
	}
	return res
}

// LoadFiles is Load without the per-file metadata.
func (l *Loader) LoadFiles(paths []string) ([]types.Document, []types.DocumentFailure) {
	res := l.Load(paths)
	return res.Documents, res.Failures
}

func (l *Loader) logf(format string, args ...any) {
	if l.Logger != nil {
		l.Logger.Printf(format, args...)
	}
}

// blockSelector lists the elements whose text forms a paragraph.
const blockSelector = "h1, h2, h3, h4, h5, h6, p, li, pre, blockquote, td"

// htmlPages extracts page texts from HTML. Each element with class "page" is
// one page; without any, the body is a single page. Block elements are
// separated by blank lines so paragraph structure survives.
func htmlPages(raw []byte) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}

	doc.Find("script, style, noscript, nav").Remove()

	containers := doc.Find(".page")
	if containers.Length() == 0 {
		containers = doc.Find("body")
	}

	pages := make([]string, 0, containers.Length())
	containers.Each(func(_ int, sel *goquery.Selection) {
		pages = append(pages, blockText(sel))
	})
	return pages, nil
}

// blockText joins the text of the block elements inside sel, or falls back
// to the selection's full text when it has none.
func blockText(sel *goquery.Selection) string {
	blocks := sel.Find(blockSelector)
	if blocks.Length() == 0 {
		return sel.Text()
	}
	parts := make([]string, 0, blocks.Length())
	blocks.Each(func(_ int, b *goquery.Selection) {
		if text := strings.TrimSpace(b.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	return strings.Join(parts, "\n\n")
}

// pdfPages returns one entry per PDF page, in page order. Pages past limit
// (when positive) are counted but left empty. A malformed file is reported
// as an error rather than a panic.
func pdfPages(raw []byte, limit int) (pages []string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			pages = nil
			err = fmt.Errorf("malformed PDF: %v", rec)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, err
	}

	n := r.NumPage()
	pages = make([]string, 0, n)
	for i := 1; i <= n; i++ {
		if limit > 0 && i > limit {
			pages = append(pages, "")
			continue
		}
		page := r.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		pages = append(pages, text)
	}
	return pages, nil
}
