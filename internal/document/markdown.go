package document

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownExtractor extracts Markdown files. Top-level headings delimit
// units, playing the role pages play in a PDF; a document without headings
// becomes a single unit.
type MarkdownExtractor struct{}

func (e *MarkdownExtractor) Extract(r io.Reader, filename string) (Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("read markdown %s: %w", filename, err)
	}

	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(src))

	var sections []string
	var current []string

	flush := func() {
		if len(current) > 0 {
			sections = append(sections, strings.Join(current, "\n\n"))
			current = nil
		}
	}

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok && h.Level <= 2 {
			flush()
		}
		if t := blockText(n, src); t != "" {
			current = append(current, t)
		}
	}
	flush()

	return buildDocument(filename, sections), nil
}

// blockText renders a goldmark block node back to plain text.
func blockText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	writeNodeText(&buf, n, src)
	return strings.TrimSpace(buf.String())
}

func writeNodeText(buf *bytes.Buffer, n ast.Node, src []byte) {
	if n.Type() == ast.TypeBlock && n.FirstChild() == nil {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(src))
		}
		return
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		default:
			writeNodeText(buf, c, src)
			if c.Type() == ast.TypeBlock {
				buf.WriteString("\n")
			}
		}
	}
}
