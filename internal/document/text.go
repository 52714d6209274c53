package document

import (
	"fmt"
	"io"
	"strings"
)

// TextExtractor extracts plain text files. Form feeds delimit units when
// present; otherwise the file is a single unit.
type TextExtractor struct{}

func (e *TextExtractor) Extract(r io.Reader, filename string) (Document, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("read text %s: %w", filename, err)
	}
	pages := strings.Split(string(raw), "\f")
	return buildDocument(filename, pages), nil
}
