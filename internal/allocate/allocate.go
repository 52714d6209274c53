// Package allocate distributes a requested number of questions or
// exercises across document chunks in proportion to their token weight.
// The split uses the largest-remainder method so the allocated total
// always equals the requested total and identical inputs always produce
// identical plans.
package allocate

import (
	"errors"
	"fmt"
	"sort"

	"github.com/quizforge/quizforge/internal/document"
)

// Difficulty labels one requested difficulty level. The allocator treats
// it as an opaque key; generation maps it to prompt instructions.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Entry assigns a number of items to one chunk.
type Entry struct {
	ChunkID int
	Count   int
}

// Plan maps each difficulty to its per-chunk item counts, in chunk order.
// Chunks allocated zero items at a difficulty are omitted from that
// difficulty's entries. For every difficulty the entry counts sum exactly
// to the requested total.
type Plan map[Difficulty][]Entry

// Total returns the number of items the plan assigns at one difficulty.
func (p Plan) Total(d Difficulty) int {
	total := 0
	for _, e := range p[d] {
		total += e.Count
	}
	return total
}

// ErrNoChunks reports an allocation request against an empty chunk set.
var ErrNoChunks = errors.New("no chunks to allocate items to")

// Allocate computes the per-chunk, per-difficulty item counts for the
// requested totals. A requested count of zero is valid and yields no
// entries for that difficulty.
func Allocate(chunks []document.Chunk, requested map[Difficulty]int) (Plan, error) {
	anyRequested := false
	for d, n := range requested {
		if n < 0 {
			return nil, fmt.Errorf("negative count %d requested for difficulty %q", n, d)
		}
		if n > 0 {
			anyRequested = true
		}
	}
	if len(chunks) == 0 && anyRequested {
		return nil, ErrNoChunks
	}

	plan := make(Plan, len(requested))
	for d, n := range requested {
		if n == 0 {
			continue
		}
		plan[d] = distribute(chunks, n)
	}
	return plan, nil
}

// distribute splits n items across chunks proportionally to token weight
// using the largest-remainder method: floor every raw share, then hand the
// leftover items one by one to the chunks with the largest fractional
// parts, ties broken by ascending chunk ordinal.
func distribute(chunks []document.Chunk, n int) []Entry {
	total := float64(document.TotalTokens(chunks))
	uniform := total == 0
	if uniform {
		// Degenerate weights: fall back to even shares, which the
		// ordinal tie-break resolves deterministically.
		total = float64(len(chunks))
	}

	type share struct {
		chunk int // position in chunks, which is also the ordinal order
		count int
		frac  float64
	}

	shares := make([]share, len(chunks))
	allocated := 0
	for i, c := range chunks {
		weight := float64(c.TokenWeight)
		if uniform {
			weight = 1
		}
		raw := float64(n) * weight / total
		count := int(raw)
		shares[i] = share{chunk: i, count: count, frac: raw - float64(count)}
		allocated += count
	}

	// Stable sort by descending fractional part; equal fractions keep
	// ordinal order, so remainder units go to the earliest chunks first.
	order := make([]int, len(shares))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return shares[order[a]].frac > shares[order[b]].frac
	})

	for i := 0; allocated < n; i++ {
		shares[order[i%len(order)]].count++
		allocated++
	}

	entries := make([]Entry, 0, len(shares))
	for _, s := range shares {
		if s.count == 0 {
			continue
		}
		entries = append(entries, Entry{ChunkID: chunks[s.chunk].ID, Count: s.count})
	}
	return entries
}
