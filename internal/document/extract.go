package document

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Extractor converts raw file bytes into a Document of ordered units.
// Implementations exist per source format; all of them drop blank pages so
// a Document's units always carry text.
type Extractor interface {
	Extract(r io.Reader, filename string) (Document, error)
}

// ErrUnsupportedFormat reports a file extension no extractor handles.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// ForFile returns the extractor matching the file's extension.
func ForFile(filename string) (Extractor, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return &PDFExtractor{}, nil
	case ".docx":
		return &DocxExtractor{}, nil
	case ".md", ".markdown":
		return &MarkdownExtractor{}, nil
	case ".txt":
		return &TextExtractor{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

// ExtractFile opens path and extracts it with the extractor matching its
// extension.
func ExtractFile(path string) (Document, error) {
	ex, err := ForFile(path)
	if err != nil {
		return Document{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ex.Extract(f, filepath.Base(path))
}

var (
	runsOfSpace  = regexp.MustCompile(`[ \t]+`)
	runsOfBlanks = regexp.MustCompile(`\n{3,}`)
)

// cleanText collapses whitespace runs the way scanned sources tend to
// need: repeated spaces become one, three or more blank lines become a
// paragraph break.
func cleanText(s string) string {
	s = runsOfSpace.ReplaceAllString(s, " ")
	s = runsOfBlanks.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// buildDocument assembles a Document from raw page texts, skipping blank
// pages while renumbering nothing: unit indices follow source page numbers.
func buildDocument(name string, pages []string) Document {
	doc := Document{Name: name}
	for i, p := range pages {
		text := cleanText(p)
		if text == "" {
			continue
		}
		doc.Units = append(doc.Units, Unit{Index: i + 1, Text: text})
	}
	return doc
}
