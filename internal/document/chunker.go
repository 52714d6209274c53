package document

import (
	"errors"
	"fmt"
	"strings"

	"github.com/quizforge/quizforge/internal/tokenizer"
)

// PolicyKind selects how a document is segmented.
type PolicyKind string

const (
	// PolicyPage produces one chunk per document unit. Most precise for
	// source attribution; the default.
	PolicyPage PolicyKind = "page"

	// PolicyWindow concatenates all units (with inline page markers) and
	// cuts fixed-size token windows with overlap between neighbors.
	PolicyWindow PolicyKind = "window"
)

// Policy holds the chunking policy and its parameters. WindowTokens and
// OverlapTokens apply only to PolicyWindow.
type Policy struct {
	Kind          PolicyKind
	WindowTokens  int
	OverlapTokens int
}

// DefaultPolicy returns the page-aligned policy.
func DefaultPolicy() Policy { return Policy{Kind: PolicyPage} }

var (
	// ErrInvalidPolicyParams reports window parameters that cannot
	// produce a valid chunking.
	ErrInvalidPolicyParams = errors.New("invalid chunk policy parameters")

	// ErrEmptyDocument reports a document with no units or only blank
	// units.
	ErrEmptyDocument = errors.New("document has no text content")
)

// Chunker splits documents into chunks under a configured tokenizer.
// It is stateless apart from the tokenizer and safe for concurrent use.
type Chunker struct {
	tok tokenizer.Tokenizer
}

// NewChunker creates a Chunker. A nil tokenizer falls back to the default
// blended tokenizer.
func NewChunker(tok tokenizer.Tokenizer) *Chunker {
	if tok == nil {
		tok = tokenizer.Default()
	}
	return &Chunker{tok: tok}
}

// Chunk splits doc into ordered chunks under pol.
func (c *Chunker) Chunk(doc Document, pol Policy) ([]Chunk, error) {
	if err := validatePolicy(pol); err != nil {
		return nil, err
	}
	if isEmpty(doc) {
		return nil, fmt.Errorf("%w: %q", ErrEmptyDocument, doc.Name)
	}

	switch pol.Kind {
	case PolicyPage:
		return c.chunkByPage(doc), nil
	case PolicyWindow:
		return c.chunkByWindow(doc, pol), nil
	default:
		return nil, fmt.Errorf("%w: unknown policy kind %q", ErrInvalidPolicyParams, pol.Kind)
	}
}

func validatePolicy(pol Policy) error {
	if pol.Kind != PolicyWindow {
		return nil
	}
	if pol.WindowTokens <= 0 {
		return fmt.Errorf("%w: window size %d must be positive", ErrInvalidPolicyParams, pol.WindowTokens)
	}
	if pol.OverlapTokens < 0 {
		return fmt.Errorf("%w: overlap %d must not be negative", ErrInvalidPolicyParams, pol.OverlapTokens)
	}
	if pol.OverlapTokens >= pol.WindowTokens {
		return fmt.Errorf("%w: overlap %d must be smaller than window size %d",
			ErrInvalidPolicyParams, pol.OverlapTokens, pol.WindowTokens)
	}
	return nil
}

func isEmpty(doc Document) bool {
	for _, u := range doc.Units {
		if strings.TrimSpace(u.Text) != "" {
			return false
		}
	}
	return true
}

// chunkByPage maps units to chunks one-to-one, so the chunk set is a
// partition of the document.
func (c *Chunker) chunkByPage(doc Document) []Chunk {
	chunks := make([]Chunk, 0, len(doc.Units))
	for i, u := range doc.Units {
		text := strings.TrimSpace(u.Text)
		chunks = append(chunks, Chunk{
			ID:          i,
			Text:        text,
			TokenWeight: c.tok.Count(text),
			SourceUnits: []int{u.Index},
		})
	}
	return chunks
}

// BeginUnitMarker and EndUnitMarker format the inline tags inserted at unit
// boundaries under the window policy, so a page boundary crossing the
// middle of a window stays locatable.
func BeginUnitMarker(index int) string { return fmt.Sprintf("[Page %d]", index) }

// EndUnitMarker closes the tag opened by BeginUnitMarker.
func EndUnitMarker(index int) string { return fmt.Sprintf("[End Page %d]", index) }

// taggedToken is one token of the concatenated document, tagged with the
// unit it came from.
type taggedToken struct {
	text string
	unit int
}

func (c *Chunker) chunkByWindow(doc Document, pol Policy) []Chunk {
	// Build the token stream, unit by unit, with boundary markers. Each
	// token remembers its source unit so windows can report their refs.
	var stream []taggedToken
	for _, u := range doc.Units {
		marked := BeginUnitMarker(u.Index) + " " + u.Text + " " + EndUnitMarker(u.Index)
		for _, tok := range c.tok.Split(marked) {
			stream = append(stream, taggedToken{text: tok, unit: u.Index})
		}
	}

	step := pol.WindowTokens - pol.OverlapTokens
	var chunks []Chunk

	for start := 0; start < len(stream); start += step {
		end := start + pol.WindowTokens
		if end > len(stream) {
			end = len(stream)
		}
		window := stream[start:end]

		texts := make([]string, len(window))
		var units []int
		seen := make(map[int]bool)
		for i, t := range window {
			texts[i] = t.text
			if !seen[t.unit] {
				seen[t.unit] = true
				units = append(units, t.unit)
			}
		}

		chunks = append(chunks, Chunk{
			ID:          len(chunks),
			Text:        c.tok.Join(texts),
			TokenWeight: len(window),
			SourceUnits: units,
			HasMarkers:  true,
		})

		if end == len(stream) {
			break
		}
	}

	return chunks
}
