package exercise

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/quizforge/quizforge/internal/allocate"
	"github.com/quizforge/quizforge/internal/document"
)

// Request names one exercise to verify.
type Request struct {
	Chunk      document.Chunk
	Difficulty allocate.Difficulty
}

// VerifyBatch verifies independent exercises concurrently, bounded by the
// concurrency limit. The returned slice matches the input order regardless
// of completion order, one outcome per request. A single exhausted exercise
// never aborts its siblings; the only error returned is cancellation, in
// which case outcomes already reached are kept and unfinished slots are nil.
func (ag *Agent) VerifyBatch(ctx context.Context, reqs []Request, concurrency int) ([]*Outcome, error) {
	if concurrency <= 0 {
		concurrency = 1
	}

	outcomes := make([]*Outcome, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, r := range reqs {
		g.Go(func() error {
			o, err := ag.Verify(gctx, r.Chunk, r.Difficulty)
			if err != nil {
				return err
			}
			outcomes[i] = o
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return outcomes, err
	}
	return outcomes, nil
}
