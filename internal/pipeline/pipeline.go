// Package pipeline wires the chunker, allocator, generators, and the
// verification agent into whole-document runs.
package pipeline

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/quizforge/quizforge/internal/allocate"
	"github.com/quizforge/quizforge/internal/document"
	"github.com/quizforge/quizforge/internal/exec"
	"github.com/quizforge/quizforge/internal/llm"
	"github.com/quizforge/quizforge/internal/tokenizer"
)

// difficultyOrder fixes the traversal order over allocation plans so runs
// are deterministic given identical inputs.
var difficultyOrder = []allocate.Difficulty{allocate.Easy, allocate.Medium, allocate.Hard}

// Progress reports how far a run has come. Stage is "quiz" or "exercises";
// Done counts finished work items out of Total.
type Progress struct {
	Stage string
	Done  int
	Total int
}

// ProgressFunc receives progress updates. It is called from worker
// goroutines and must be safe for concurrent use.
type ProgressFunc func(Progress)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Pipeline holds the external collaborators shared by all runs.
type Pipeline struct {
	provider llm.Provider
	runner   exec.Runner
	logger   *zap.Logger
}

// New creates a Pipeline. The runner may be nil if only quizzes are
// generated; the logger may be nil.
func New(provider llm.Provider, runner exec.Runner, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{provider: provider, runner: runner, logger: logger}
}

// BuildPlan chunks a document under tok and allocates the requested
// per-difficulty totals across the chunks. A nil tok falls back to the
// default blended tokenizer. The returned chunks and plan are read-only
// and safe to share across concurrent consumers.
func BuildPlan(doc document.Document, pol document.Policy, counts map[allocate.Difficulty]int, tok tokenizer.Tokenizer) ([]document.Chunk, allocate.Plan, error) {
	chunker := document.NewChunker(tok)
	chunks, err := chunker.Chunk(doc, pol)
	if err != nil {
		return nil, nil, fmt.Errorf("chunk %s: %w", doc.Name, err)
	}

	plan, err := allocate.Allocate(chunks, counts)
	if err != nil {
		return nil, nil, fmt.Errorf("allocate for %s: %w", doc.Name, err)
	}

	return chunks, plan, nil
}

// chunkByID indexes chunks for plan-entry lookup.
func chunkByID(chunks []document.Chunk) map[int]document.Chunk {
	m := make(map[int]document.Chunk, len(chunks))
	for _, c := range chunks {
		m[c.ID] = c
	}
	return m
}

// report invokes the callback if one is set.
func report(fn ProgressFunc, p Progress) {
	if fn != nil {
		fn(p)
	}
}
