package document

import (
	"fmt"
	"io"
	"os"

	pdflib "github.com/ledongthuc/pdf"
)

// PDFExtractor extracts one unit per PDF page.
type PDFExtractor struct{}

func (e *PDFExtractor) Extract(r io.Reader, filename string) (Document, error) {
	// The pdf library wants a seekable file with a known size, so stage
	// the stream in a temp file first.
	tmp, err := os.CreateTemp("", "quizforge-*.pdf")
	if err != nil {
		return Document{}, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return Document{}, fmt.Errorf("stage pdf: %w", err)
	}
	tmp.Close()

	f, reader, err := pdflib.Open(tmpPath)
	if err != nil {
		return Document{}, fmt.Errorf("open pdf %s: %w", filename, err)
	}
	defer f.Close()

	pages := make([]string, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page should not sink the document.
			continue
		}
		pages[i-1] = text
	}

	return buildDocument(filename, pages), nil
}
