package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/quizforge/quizforge/internal/allocate"
	"github.com/quizforge/quizforge/internal/document"
	"github.com/quizforge/quizforge/internal/exercise"
	"github.com/quizforge/quizforge/internal/tokenizer"
)

// ExerciseConfig parameterizes one exercise run over one document.
type ExerciseConfig struct {
	// Policy selects how the document is chunked.
	Policy document.Policy

	// Tokenizer weighs and windows chunks. Nil means the default blended
	// tokenizer.
	Tokenizer tokenizer.Tokenizer

	// Counts are the per-difficulty exercise totals.
	Counts map[allocate.Difficulty]int `validate:"required"`

	// Concurrency bounds parallel verification loops.
	Concurrency int `validate:"min=1,max=64"`

	// Agent tunes the verification loop.
	Agent exercise.Config

	// OnProgress, if set, receives an update after each difficulty group
	// of exercises completes.
	OnProgress ProgressFunc
}

// DefaultExerciseConfig returns an exercise run with the standard settings
// and the given per-difficulty totals.
func DefaultExerciseConfig(counts map[allocate.Difficulty]int) ExerciseConfig {
	return ExerciseConfig{
		Policy:      document.DefaultPolicy(),
		Counts:      counts,
		Concurrency: 4,
		Agent:       exercise.DefaultConfig(),
	}
}

// RunExercises builds a plan for the document and verifies every allocated
// exercise. The output holds one outcome per planned exercise, ordered by
// difficulty then chunk, each Verified or Exhausted; a single exhausted
// exercise never fails the run.
func (p *Pipeline) RunExercises(ctx context.Context, doc document.Document, cfg ExerciseConfig) ([]*exercise.Outcome, error) {
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid exercise config: %w", err)
	}
	if p.runner == nil {
		return nil, fmt.Errorf("exercise run needs a code runner")
	}

	runID := uuid.NewString()
	logger := p.logger.With(zap.String("run_id", runID), zap.String("document", doc.Name))

	chunks, plan, err := BuildPlan(doc, cfg.Policy, cfg.Counts, cfg.Tokenizer)
	if err != nil {
		return nil, err
	}
	byID := chunkByID(chunks)

	agent, err := exercise.NewAgent(p.provider, p.runner, cfg.Agent, logger)
	if err != nil {
		return nil, err
	}

	// One request per planned exercise, grouped by difficulty so progress
	// has natural checkpoints and output order stays deterministic.
	groups := make([][]exercise.Request, 0, len(difficultyOrder))
	total := 0
	for _, d := range difficultyOrder {
		var reqs []exercise.Request
		for _, e := range plan[d] {
			for range e.Count {
				reqs = append(reqs, exercise.Request{Chunk: byID[e.ChunkID], Difficulty: d})
			}
		}
		if len(reqs) > 0 {
			groups = append(groups, reqs)
			total += len(reqs)
		}
	}

	logger.Info("exercise run started",
		zap.Int("chunks", len(chunks)),
		zap.Int("exercises", total))

	outcomes := make([]*exercise.Outcome, 0, total)
	done := 0
	for _, reqs := range groups {
		outs, err := agent.VerifyBatch(ctx, reqs, cfg.Concurrency)
		if err != nil {
			return nil, err
		}
		outcomes = append(outcomes, outs...)
		done += len(outs)
		report(cfg.OnProgress, Progress{Stage: "exercises", Done: done, Total: total})
	}

	verified := 0
	for _, o := range outcomes {
		if o.Verified() {
			verified++
		}
	}
	logger.Info("exercise run finished",
		zap.Int("verified", verified),
		zap.Int("exhausted", len(outcomes)-verified))

	return outcomes, nil
}
