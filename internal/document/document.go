// Package document models extracted source documents and splits them into
// chunks for generation. A document is an ordered sequence of units (pages
// or slides); a chunk is a bounded segment of text with a fixed token
// weight and traceable source references.
package document

// Unit is one page or slide of a source document, with its stable index.
// Indices start at 1 and follow the order of the source file.
type Unit struct {
	Index int
	Text  string
}

// Document is an ordered sequence of extracted text units. It is immutable
// once extracted: the pipeline reads it during chunking and then discards it.
type Document struct {
	// Name is the source file name, kept for attribution.
	Name string

	Units []Unit
}

// Chunk is a bounded segment of document text.
//
// Under the page policy, chunks partition the document one-to-one with its
// units. Under the window policy, adjacent chunks may share source units at
// their edges so that context survives window boundaries, but every unit
// appears in at least one chunk.
type Chunk struct {
	// ID is the chunk's ordinal, starting at 0.
	ID int

	Text string

	// TokenWeight is the token count of Text, fixed at creation.
	// The allocator uses it to size each chunk's share of questions.
	TokenWeight int

	// SourceUnits lists the unit indices this chunk's text came from,
	// in document order, without duplicates.
	SourceUnits []int

	// HasMarkers reports whether Text contains inline page boundary
	// markers. Only window-policy chunks carry them.
	HasMarkers bool
}

// TotalTokens sums the token weights of a chunk sequence.
func TotalTokens(chunks []Chunk) int {
	total := 0
	for _, c := range chunks {
		total += c.TokenWeight
	}
	return total
}
