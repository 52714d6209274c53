package pipeline

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/quizforge/quizforge/internal/allocate"
	"github.com/quizforge/quizforge/internal/document"
	"github.com/quizforge/quizforge/internal/quiz"
	"github.com/quizforge/quizforge/internal/tokenizer"
)

// QuizConfig parameterizes one quiz run over one document.
type QuizConfig struct {
	// Title of the produced quiz. Empty defaults to the document name.
	Title string

	// Policy selects how the document is chunked.
	Policy document.Policy

	// Tokenizer weighs and windows chunks. Nil means the default blended
	// tokenizer.
	Tokenizer tokenizer.Tokenizer

	// Counts are the per-difficulty question totals.
	Counts map[allocate.Difficulty]int `validate:"required"`

	// Concurrency bounds parallel generation calls.
	Concurrency int `validate:"min=1,max=64"`

	// Focus is optional notion guidance injected into every prompt.
	Focus string

	// Generation tunes the per-chunk generator.
	Generation quiz.Config

	// OnProgress, if set, receives an update after each finished entry.
	OnProgress ProgressFunc
}

// DefaultQuizConfig returns a quiz run with the standard settings and the
// given per-difficulty totals.
func DefaultQuizConfig(counts map[allocate.Difficulty]int) QuizConfig {
	return QuizConfig{
		Policy:      document.DefaultPolicy(),
		Counts:      counts,
		Concurrency: 4,
		Generation:  quiz.DefaultConfig(),
	}
}

// RunQuiz builds a plan for the document and generates every allocated
// entry concurrently. Question order is deterministic: difficulty order,
// then chunk order within each difficulty, regardless of which generation
// call finishes first.
func (p *Pipeline) RunQuiz(ctx context.Context, doc document.Document, cfg QuizConfig) (quiz.Quiz, error) {
	if err := validate.Struct(cfg); err != nil {
		return quiz.Quiz{}, fmt.Errorf("invalid quiz config: %w", err)
	}

	runID := uuid.NewString()
	logger := p.logger.With(zap.String("run_id", runID), zap.String("document", doc.Name))

	chunks, plan, err := BuildPlan(doc, cfg.Policy, cfg.Counts, cfg.Tokenizer)
	if err != nil {
		return quiz.Quiz{}, err
	}
	byID := chunkByID(chunks)

	gencfg := cfg.Generation
	gencfg.Focus = cfg.Focus
	gen := quiz.New(p.provider, gencfg, logger)

	type job struct {
		chunk      document.Chunk
		difficulty allocate.Difficulty
		count      int
	}
	var jobs []job
	for _, d := range difficultyOrder {
		for _, e := range plan[d] {
			jobs = append(jobs, job{chunk: byID[e.ChunkID], difficulty: d, count: e.Count})
		}
	}

	logger.Info("quiz run started",
		zap.Int("chunks", len(chunks)),
		zap.Int("entries", len(jobs)))

	results := make([][]quiz.Question, len(jobs))
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Concurrency)
	for i, j := range jobs {
		g.Go(func() error {
			qs, err := gen.Generate(gctx, j.chunk, j.difficulty, j.count)
			if err != nil {
				return fmt.Errorf("chunk %d %s: %w", j.chunk.ID, j.difficulty, err)
			}
			results[i] = qs
			report(cfg.OnProgress, Progress{
				Stage: "quiz",
				Done:  int(done.Add(1)),
				Total: len(jobs),
			})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return quiz.Quiz{}, err
	}

	title := cfg.Title
	if title == "" {
		title = doc.Name
	}
	out := quiz.Quiz{Title: title}
	for _, qs := range results {
		out.Questions = append(out.Questions, qs...)
	}

	logger.Info("quiz run finished", zap.Int("questions", len(out.Questions)))
	return out, nil
}
