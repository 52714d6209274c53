package document

import (
	"errors"
	"strings"
	"testing"

	"github.com/quizforge/quizforge/internal/tokenizer"
)

func testDoc(unitWords ...int) Document {
	doc := Document{Name: "test.pdf"}
	for i, n := range unitWords {
		words := make([]string, n)
		for j := range words {
			words[j] = "word"
		}
		doc.Units = append(doc.Units, Unit{Index: i + 1, Text: strings.Join(words, " ")})
	}
	return doc
}

func TestChunkByPage_Partition(t *testing.T) {
	doc := testDoc(10, 20, 5)
	chunks, err := NewChunker(nil).Chunk(doc, DefaultPolicy())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(chunks) != len(doc.Units) {
		t.Fatalf("expected %d chunks, got %d", len(doc.Units), len(chunks))
	}

	seen := make(map[int]int)
	for i, c := range chunks {
		if c.ID != i {
			t.Errorf("chunk %d has ID %d", i, c.ID)
		}
		if len(c.SourceUnits) != 1 {
			t.Fatalf("page chunk %d references %d units", i, len(c.SourceUnits))
		}
		seen[c.SourceUnits[0]]++
		if c.HasMarkers {
			t.Errorf("page chunk %d should not carry markers", i)
		}
	}
	for _, u := range doc.Units {
		if seen[u.Index] != 1 {
			t.Errorf("unit %d covered %d times, want exactly once", u.Index, seen[u.Index])
		}
	}
}

func TestChunkByPage_TokenWeights(t *testing.T) {
	doc := testDoc(10, 20)
	chunks, err := NewChunker(tokenizer.NewWordTokenizer()).Chunk(doc, DefaultPolicy())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if chunks[0].TokenWeight != 10 || chunks[1].TokenWeight != 20 {
		t.Errorf("unexpected weights: %d, %d", chunks[0].TokenWeight, chunks[1].TokenWeight)
	}
}

func TestChunkByWindow_CoversEveryUnit(t *testing.T) {
	doc := testDoc(30, 40, 25, 10)
	chunks, err := NewChunker(nil).Chunk(doc, Policy{
		Kind:          PolicyWindow,
		WindowTokens:  40,
		OverlapTokens: 10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	covered := make(map[int]bool)
	for _, c := range chunks {
		if !c.HasMarkers {
			t.Errorf("window chunk %d should carry markers", c.ID)
		}
		for _, u := range c.SourceUnits {
			covered[u] = true
		}
	}
	for _, u := range doc.Units {
		if !covered[u.Index] {
			t.Errorf("unit %d appears in no chunk", u.Index)
		}
	}
}

func TestChunkByWindow_WeightIsActualCount(t *testing.T) {
	tok := tokenizer.NewWordTokenizer()
	doc := testDoc(30, 30)
	chunks, err := NewChunker(tok).Chunk(doc, Policy{
		Kind:          PolicyWindow,
		WindowTokens:  25,
		OverlapTokens: 5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, c := range chunks[:len(chunks)-1] {
		if c.TokenWeight != 25 {
			t.Errorf("chunk %d weight = %d, want the nominal window size 25", c.ID, c.TokenWeight)
		}
	}
	// The final window is weighed by its actual token count, which may be
	// shorter than the nominal size.
	last := chunks[len(chunks)-1]
	if last.TokenWeight != tok.Count(last.Text) {
		t.Errorf("last chunk weight %d does not match its text (%d tokens)",
			last.TokenWeight, tok.Count(last.Text))
	}
	if last.TokenWeight > 25 {
		t.Errorf("last chunk weight %d exceeds window size", last.TokenWeight)
	}
}

func TestChunkByWindow_ShortDocumentSingleChunk(t *testing.T) {
	doc := testDoc(5, 5)
	chunks, err := NewChunker(nil).Chunk(doc, Policy{
		Kind:          PolicyWindow,
		WindowTokens:  1000,
		OverlapTokens: 100,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected a single chunk for a short document, got %d", len(chunks))
	}
	if got := chunks[0].SourceUnits; len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("unexpected source units: %v", got)
	}
}

func TestChunkByWindow_MarkersLocateUnits(t *testing.T) {
	doc := testDoc(8, 8)
	chunks, err := NewChunker(nil).Chunk(doc, Policy{
		Kind:          PolicyWindow,
		WindowTokens:  100,
		OverlapTokens: 10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := chunks[0].Text
	for _, want := range []string{BeginUnitMarker(1), EndUnitMarker(1), BeginUnitMarker(2), EndUnitMarker(2)} {
		if !strings.Contains(text, want) {
			t.Errorf("chunk text missing marker %q", want)
		}
	}
}

func TestChunk_InvalidPolicyParams(t *testing.T) {
	doc := testDoc(10)
	cases := []Policy{
		{Kind: PolicyWindow, WindowTokens: 0, OverlapTokens: 0},
		{Kind: PolicyWindow, WindowTokens: -5, OverlapTokens: 0},
		{Kind: PolicyWindow, WindowTokens: 100, OverlapTokens: -1},
		{Kind: PolicyWindow, WindowTokens: 100, OverlapTokens: 100},
		{Kind: PolicyWindow, WindowTokens: 100, OverlapTokens: 150},
		{Kind: "paragraph"},
	}
	for _, pol := range cases {
		if _, err := NewChunker(nil).Chunk(doc, pol); !errors.Is(err, ErrInvalidPolicyParams) {
			t.Errorf("policy %+v: expected ErrInvalidPolicyParams, got %v", pol, err)
		}
	}
}

func TestChunk_EmptyDocument(t *testing.T) {
	for _, doc := range []Document{
		{Name: "empty.pdf"},
		{Name: "blank.pdf", Units: []Unit{{Index: 1, Text: "   "}, {Index: 2, Text: "\n\t"}}},
	} {
		if _, err := NewChunker(nil).Chunk(doc, DefaultPolicy()); !errors.Is(err, ErrEmptyDocument) {
			t.Errorf("%s: expected ErrEmptyDocument, got %v", doc.Name, err)
		}
	}
}
