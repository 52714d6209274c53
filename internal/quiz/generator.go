package quiz

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/quizforge/quizforge/internal/allocate"
	"github.com/quizforge/quizforge/internal/document"
	"github.com/quizforge/quizforge/internal/llm"
)

const systemPrompt = `You are a course assistant writing multiple-choice quiz questions from excerpts of teaching material.

Rules:
- Every question must be answerable from the excerpt alone, without outside knowledge.
- Questions are self-contained: never refer to "the text", "the excerpt", or page numbers.
- Provide exactly 4 options labeled A through D. Exactly one is correct unless the difficulty directive allows several; then state "select all that apply" in the question.
- Distractors must be plausible misreadings of the excerpt, not obviously wrong filler.
- The explanation cites the relevant fact from the excerpt in one or two sentences.
- Generate exactly the requested number of questions.`

// Config controls quiz generation.
type Config struct {
	// Directives supplies the per-difficulty prompt instruction.
	// Nil means DefaultDirectives.
	Directives Directives

	// Focus is optional extra guidance injected into every prompt,
	// typically the formatted notion list for the document.
	Focus string

	// MaxTokens is the token budget per generation response.
	MaxTokens int

	// Temperature controls generation randomness.
	Temperature float64
}

// DefaultConfig returns the recommended generation settings.
func DefaultConfig() Config {
	return Config{
		Directives:  DefaultDirectives(),
		MaxTokens:   2048,
		Temperature: 0.7,
	}
}

// Generator produces validated questions chunk by chunk.
type Generator struct {
	provider llm.Provider
	config   Config
	logger   *zap.Logger
}

// New creates a Generator. The logger may be nil.
func New(provider llm.Provider, cfg Config, logger *zap.Logger) *Generator {
	if cfg.Directives == nil {
		cfg.Directives = DefaultDirectives()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{provider: provider, config: cfg, logger: logger}
}

// quizOutput is the raw model response before validation.
type quizOutput struct {
	Questions []struct {
		Question    string   `json:"question"`
		Choices     []Choice `json:"choices"`
		Correct     []string `json:"correct"`
		Explanation string   `json:"explanation"`
	} `json:"questions"`
}

// Generate requests count questions for one chunk at one difficulty.
// Questions that fail structural validation are dropped with a warning;
// an error is returned only when the model call fails or nothing valid
// comes back.
func (g *Generator) Generate(ctx context.Context, chunk document.Chunk, difficulty allocate.Difficulty, count int) ([]Question, error) {
	if count <= 0 {
		return nil, nil
	}

	ctx = llm.WithPurpose(ctx, "quiz-gen")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: g.buildUserMessage(chunk, difficulty, count)},
		},
		Schema:      QuizSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("quiz generation failed: %w", err)
	}

	var raw quizOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse quiz response: %w", err)
	}

	questions := make([]Question, 0, count)
	for _, rq := range raw.Questions {
		q := Question{
			Text:        rq.Question,
			Choices:     rq.Choices,
			Correct:     rq.Correct,
			Explanation: rq.Explanation,
			Difficulty:  difficulty,
			ChunkID:     chunk.ID,
			SourceUnits: chunk.SourceUnits,
		}
		if err := validateQuestion(q); err != nil {
			g.logger.Warn("dropping invalid question",
				zap.Int("chunk", chunk.ID),
				zap.String("difficulty", string(difficulty)),
				zap.Error(err))
			continue
		}
		questions = append(questions, q)
		if len(questions) == count {
			break
		}
	}

	if len(questions) == 0 {
		return nil, fmt.Errorf("chunk %d: no valid questions in response", chunk.ID)
	}
	if len(questions) < count {
		g.logger.Warn("model returned fewer valid questions than requested",
			zap.Int("chunk", chunk.ID),
			zap.Int("requested", count),
			zap.Int("got", len(questions)))
	}
	return questions, nil
}

func (g *Generator) buildUserMessage(chunk document.Chunk, difficulty allocate.Difficulty, count int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Questions requested: %d\n", count)
	fmt.Fprintf(&b, "Difficulty: %s\n", difficulty)
	if d, ok := g.config.Directives[difficulty]; ok {
		fmt.Fprintf(&b, "Directive: %s\n", d)
	}

	if g.config.Focus != "" {
		b.WriteString("\nFocus on these notions when choosing what to ask:\n")
		b.WriteString(g.config.Focus)
		b.WriteString("\n")
	}

	b.WriteString("\nExcerpt:\n")
	b.WriteString(chunk.Text)

	return b.String()
}
