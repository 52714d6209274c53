package allocate

import (
	"errors"
	"reflect"
	"testing"

	"github.com/quizforge/quizforge/internal/document"
)

func weightedChunks(weights ...int) []document.Chunk {
	chunks := make([]document.Chunk, len(weights))
	for i, w := range weights {
		chunks[i] = document.Chunk{ID: i, TokenWeight: w}
	}
	return chunks
}

func TestAllocate_ExactProportionalSplit(t *testing.T) {
	// Three pages weighing 1000/2000/1000 and 8 easy questions split with
	// no remainder at all: 2, 4, 2.
	chunks := weightedChunks(1000, 2000, 1000)
	plan, err := Allocate(chunks, map[Difficulty]int{Easy: 8})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []Entry{{ChunkID: 0, Count: 2}, {ChunkID: 1, Count: 4}, {ChunkID: 2, Count: 2}}
	if !reflect.DeepEqual(plan[Easy], want) {
		t.Errorf("plan = %+v, want %+v", plan[Easy], want)
	}
}

func TestAllocate_SumEqualsRequested(t *testing.T) {
	cases := []struct {
		weights []int
		n       int
	}{
		{[]int{7}, 5},
		{[]int{3, 3, 3}, 10},
		{[]int{1, 1000}, 3},
		{[]int{17, 31, 5, 99, 2}, 23},
		{[]int{100, 100, 100, 100}, 1},
	}
	for _, c := range cases {
		plan, err := Allocate(weightedChunks(c.weights...), map[Difficulty]int{Medium: c.n})
		if err != nil {
			t.Fatalf("weights %v: unexpected error: %v", c.weights, err)
		}
		if got := plan.Total(Medium); got != c.n {
			t.Errorf("weights %v, n=%d: allocated %d", c.weights, c.n, got)
		}
	}
}

func TestAllocate_RemainderTieBreakByOrdinal(t *testing.T) {
	// Weights [5, 5, 2] with N=1: all floors are 0 and chunks 0 and 1 tie
	// on the largest fractional share. The single unit goes to chunk 0.
	plan, err := Allocate(weightedChunks(5, 5, 2), map[Difficulty]int{Easy: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Entry{{ChunkID: 0, Count: 1}}
	if !reflect.DeepEqual(plan[Easy], want) {
		t.Errorf("plan = %+v, want %+v", plan[Easy], want)
	}
}

func TestAllocate_ZeroEntriesOmitted(t *testing.T) {
	// A tiny chunk next to huge ones gets nothing and must not appear.
	plan, err := Allocate(weightedChunks(1000, 1, 1000), map[Difficulty]int{Hard: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, e := range plan[Hard] {
		if e.Count == 0 {
			t.Errorf("zero-count entry retained for chunk %d", e.ChunkID)
		}
		if e.ChunkID == 1 {
			t.Errorf("tiny chunk received an item: %+v", plan[Hard])
		}
	}
	if plan.Total(Hard) != 2 {
		t.Errorf("allocated %d, want 2", plan.Total(Hard))
	}
}

func TestAllocate_Deterministic(t *testing.T) {
	chunks := weightedChunks(13, 7, 29, 3, 19)
	req := map[Difficulty]int{Easy: 9, Medium: 4, Hard: 2}

	first, err := Allocate(chunks, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Allocate(chunks, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("plans differ across identical inputs:\n%+v\n%+v", first, second)
	}
}

func TestAllocate_PerDifficultyIndependence(t *testing.T) {
	// A chunk may receive items at one difficulty and none at another.
	chunks := weightedChunks(10, 10, 1)
	plan, err := Allocate(chunks, map[Difficulty]int{Easy: 21, Hard: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.Total(Easy) != 21 || plan.Total(Hard) != 1 {
		t.Fatalf("totals: easy=%d hard=%d", plan.Total(Easy), plan.Total(Hard))
	}
	if len(plan[Hard]) != 1 || plan[Hard][0].ChunkID != 0 {
		t.Errorf("hard entries = %+v, want single entry on chunk 0", plan[Hard])
	}
	if len(plan[Easy]) != 3 {
		t.Errorf("easy entries = %+v, want all three chunks", plan[Easy])
	}
}

func TestAllocate_ZeroCountValid(t *testing.T) {
	plan, err := Allocate(weightedChunks(10, 10), map[Difficulty]int{Easy: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan[Easy]) != 0 {
		t.Errorf("expected no entries for a zero request, got %+v", plan[Easy])
	}
}

func TestAllocate_NoChunks(t *testing.T) {
	if _, err := Allocate(nil, map[Difficulty]int{Easy: 3}); !errors.Is(err, ErrNoChunks) {
		t.Errorf("expected ErrNoChunks, got %v", err)
	}

	// All-zero requests against no chunks are fine.
	plan, err := Allocate(nil, map[Difficulty]int{Easy: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan) != 0 {
		t.Errorf("expected empty plan, got %+v", plan)
	}
}
