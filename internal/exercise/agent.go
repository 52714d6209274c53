package exercise

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/quizforge/quizforge/internal/allocate"
	"github.com/quizforge/quizforge/internal/document"
	"github.com/quizforge/quizforge/internal/exec"
	"github.com/quizforge/quizforge/internal/llm"
)

// Config controls the verification loop.
type Config struct {
	// MaxAttempts bounds the generate-execute-compare cycles per exercise.
	MaxAttempts int `validate:"required,min=1"`

	// Compare sets the numeric tolerance for answer comparison.
	Compare CompareConfig

	// MaxTokens is the token budget for each generation response.
	MaxTokens int `validate:"min=0"`

	// Temperature controls generation randomness.
	Temperature float64 `validate:"min=0,max=2"`
}

// DefaultConfig returns the recommended verification settings.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 3,
		Compare:     DefaultCompareConfig(),
		MaxTokens:   1024,
		Temperature: 0.7,
	}
}

// state is one node of the verification state machine.
type state int

const (
	stateGenerating state = iota
	stateExecuting
	stateComparing
	stateVerified
	stateRetrying
	stateFailed
)

// Agent drives the verification loop against a model provider and a code
// runner. It is safe for concurrent use; each Verify call keeps its whole
// state on the stack.
type Agent struct {
	provider llm.Provider
	runner   exec.Runner
	config   Config
	logger   *zap.Logger
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// NewAgent builds an Agent. The logger may be nil.
func NewAgent(provider llm.Provider, runner exec.Runner, cfg Config, logger *zap.Logger) (*Agent, error) {
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid agent config: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Agent{provider: provider, runner: runner, config: cfg, logger: logger}, nil
}

// candidateOutput is the raw model response before it becomes a Candidate.
type candidateOutput struct {
	Statement        string   `json:"statement"`
	ClaimedAnswer    string   `json:"claimed_answer"`
	Steps            []string `json:"steps"`
	VerificationCode string   `json:"verification_code"`
}

// Verify runs the verification loop for one exercise. Model and execution
// failures are absorbed into the outcome's trace; the only errors returned
// are the caller's own context being done. The outcome is terminal:
// StatusVerified or StatusExhausted, with AttemptsUsed == len(Trace).
func (ag *Agent) Verify(ctx context.Context, chunk document.Chunk, difficulty allocate.Difficulty) (*Outcome, error) {
	var (
		trace    []Attempt
		failures []string

		cand    Candidate
		result  string
		execErr error
		matched bool
	)

	st := stateGenerating
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		switch st {
		case stateGenerating:
			c, err := ag.generate(ctx, chunk, difficulty, failures)
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				// A failed generation consumes one attempt. It skips
				// Executing but still passes through Comparing so the
				// trace records it like any other attempt.
				cand, result, execErr, matched = Candidate{}, "", err, false
				st = stateComparing
				continue
			}
			cand = c
			st = stateExecuting

		case stateExecuting:
			out, err := ag.runner.Run(ctx, cand.VerificationCode)
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				result, execErr, matched = "", err, false
			} else {
				result = strings.TrimSpace(out)
				execErr = nil
				matched = ag.config.Compare.Matches(cand.ClaimedAnswer, result)
			}
			st = stateComparing

		case stateComparing:
			at := Attempt{Candidate: cand, Result: result, ExecErr: execErr, Matched: matched}
			trace = append(trace, at)
			switch {
			case matched:
				st = stateVerified
			case len(trace) < ag.config.MaxAttempts:
				failures = append(failures, failureNote(at))
				st = stateRetrying
			default:
				st = stateFailed
			}

		case stateRetrying:
			ag.logger.Debug("regenerating exercise",
				zap.Int("chunk", chunk.ID),
				zap.String("difficulty", string(difficulty)),
				zap.Int("attempts_used", len(trace)),
				zap.String("last_status", string(trace[len(trace)-1].Status())))
			st = stateGenerating

		case stateVerified:
			return &Outcome{
				Candidate:    cand,
				Status:       StatusVerified,
				AttemptsUsed: len(trace),
				Trace:        trace,
			}, nil

		case stateFailed:
			ag.logger.Warn("exercise verification exhausted",
				zap.Int("chunk", chunk.ID),
				zap.String("difficulty", string(difficulty)),
				zap.Int("attempts_used", len(trace)))
			return &Outcome{
				Candidate:    cand,
				Status:       StatusExhausted,
				AttemptsUsed: len(trace),
				Trace:        trace,
			}, nil
		}
	}
}

// generate requests one fresh candidate from the provider.
func (ag *Agent) generate(ctx context.Context, chunk document.Chunk, difficulty allocate.Difficulty, failures []string) (Candidate, error) {
	ctx = llm.WithPurpose(ctx, "exercise-gen")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(chunk, difficulty, failures)},
		},
		Schema:      ExerciseSchema,
		MaxTokens:   ag.config.MaxTokens,
		Temperature: ag.config.Temperature,
	}

	resp, err := ag.provider.Generate(ctx, req)
	if err != nil {
		return Candidate{}, fmt.Errorf("exercise generation failed: %w", err)
	}

	var raw candidateOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return Candidate{}, &llm.ErrInvalidResponse{Content: resp.Content, Err: err}
	}
	if raw.Statement == "" || raw.ClaimedAnswer == "" || raw.VerificationCode == "" {
		return Candidate{}, &llm.ErrInvalidResponse{
			Content: resp.Content,
			Err:     fmt.Errorf("candidate missing required fields"),
		}
	}

	return Candidate{
		Statement:        raw.Statement,
		ClaimedAnswer:    raw.ClaimedAnswer,
		Steps:            raw.Steps,
		VerificationCode: raw.VerificationCode,
		ChunkID:          chunk.ID,
	}, nil
}
