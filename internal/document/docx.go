package document

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fumiama/go-docx"
)

// DocxExtractor extracts .docx files. Word documents carry no reliable
// page geometry in their XML, so paragraphs are grouped into units at
// explicit page breaks when present, and into a single unit otherwise.
type DocxExtractor struct{}

func (e *DocxExtractor) Extract(r io.Reader, filename string) (Document, error) {
	tmp, err := os.CreateTemp("", "quizforge-*.docx")
	if err != nil {
		return Document{}, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return Document{}, fmt.Errorf("stage docx: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return Document{}, fmt.Errorf("seek temp file: %w", err)
	}

	doc, err := docx.Parse(tmp, size)
	tmp.Close()
	if err != nil {
		return Document{}, fmt.Errorf("parse docx %s: %w", filename, err)
	}

	var pages []string
	var current []string

	flush := func() {
		if len(current) > 0 {
			pages = append(pages, strings.Join(current, "\n\n"))
			current = nil
		}
	}

	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		text, pageBreak := paragraphText(para)
		if pageBreak {
			flush()
		}
		if text != "" {
			current = append(current, text)
		}
	}
	flush()

	return buildDocument(filename, pages), nil
}

// paragraphText collects a paragraph's run text and reports whether the
// paragraph starts with a manual page break.
func paragraphText(para *docx.Paragraph) (string, bool) {
	var buf strings.Builder
	pageBreak := false
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			switch t := rc.(type) {
			case *docx.Text:
				buf.WriteString(t.Text)
			case *docx.BarterRabbet:
				if t.Type == "page" {
					pageBreak = true
				}
			}
		}
	}
	return strings.TrimSpace(buf.String()), pageBreak
}
