package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/quizforge/quizforge/internal/allocate"
	"github.com/quizforge/quizforge/internal/document"
	"github.com/quizforge/quizforge/internal/exec"
	"github.com/quizforge/quizforge/internal/exercise"
	"github.com/quizforge/quizforge/internal/llm"
	"github.com/quizforge/quizforge/internal/tokenizer"
)

func testDoc(pages ...string) document.Document {
	doc := document.Document{Name: "test.pdf"}
	for i, text := range pages {
		doc.Units = append(doc.Units, document.Unit{Index: i + 1, Text: text})
	}
	return doc
}

func quizResponse(t *testing.T, n int) llm.MockResponse {
	t.Helper()
	questions := make([]map[string]any, n)
	for i := range n {
		questions[i] = map[string]any{
			"question": "What is discussed?",
			"choices": []map[string]any{
				{"label": "A", "text": "this"},
				{"label": "B", "text": "that"},
				{"label": "C", "text": "neither"},
				{"label": "D", "text": "both"},
			},
			"correct":     []string{"A"},
			"explanation": "Stated directly.",
		}
	}
	b, err := json.Marshal(map[string]any{"questions": questions})
	if err != nil {
		t.Fatal(err)
	}
	return llm.MockResponse{Content: b}
}

func exerciseResponse(t *testing.T, answer string) llm.MockResponse {
	t.Helper()
	b, err := json.Marshal(map[string]any{
		"statement":         "Compute the value.",
		"claimed_answer":    answer,
		"steps":             []string{"one step"},
		"verification_code": "print(" + answer + ")",
	})
	if err != nil {
		t.Fatal(err)
	}
	return llm.MockResponse{Content: b}
}

func TestBuildPlan(t *testing.T) {
	doc := testDoc(
		strings.Repeat("alpha ", 100),
		strings.Repeat("beta ", 100),
	)
	counts := map[allocate.Difficulty]int{allocate.Easy: 4}

	chunks, plan, err := BuildPlan(doc, document.DefaultPolicy(), counts, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("expected 2 page chunks, got %d", len(chunks))
	}
	if got := plan.Total(allocate.Easy); got != 4 {
		t.Errorf("plan total %d, want 4", got)
	}
}

func TestBuildPlan_TokenizerChoice(t *testing.T) {
	doc := testDoc(strings.Repeat("word ", 20))
	counts := map[allocate.Difficulty]int{allocate.Easy: 1}

	wordChunks, _, err := BuildPlan(doc, document.DefaultPolicy(), counts, tokenizer.NewWordTokenizer())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wordChunks[0].TokenWeight != 20 {
		t.Fatalf("word tokenizer weight = %d, want 20", wordChunks[0].TokenWeight)
	}

	// The default blend weighs the same text by characters when that
	// estimate is larger: 20 five-char words trimmed to 99 chars is 24.
	blendChunks, _, err := BuildPlan(doc, document.DefaultPolicy(), counts, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if blendChunks[0].TokenWeight <= 20 {
		t.Fatalf("blended weight = %d, expected above the word count", blendChunks[0].TokenWeight)
	}
}

func TestBuildPlan_EmptyDocument(t *testing.T) {
	_, _, err := BuildPlan(document.Document{Name: "empty"}, document.DefaultPolicy(), map[allocate.Difficulty]int{allocate.Easy: 1}, nil)
	if !errors.Is(err, document.ErrEmptyDocument) {
		t.Fatalf("expected ErrEmptyDocument, got %v", err)
	}
}

func TestRunQuiz_DeterministicOrder(t *testing.T) {
	doc := testDoc(
		strings.Repeat("alpha ", 50),
		strings.Repeat("beta ", 50),
	)
	provider := llm.NewMockProvider(
		quizResponse(t, 1),
		quizResponse(t, 1),
	)
	p := New(provider, nil, nil)

	var updates []Progress
	cfg := DefaultQuizConfig(map[allocate.Difficulty]int{allocate.Easy: 2})
	cfg.Concurrency = 1
	cfg.OnProgress = func(pr Progress) { updates = append(updates, pr) }

	q, err := p.RunQuiz(context.Background(), doc, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Title != "test.pdf" {
		t.Errorf("title should default to document name, got %q", q.Title)
	}
	if len(q.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(q.Questions))
	}
	if q.Questions[0].ChunkID != 0 || q.Questions[1].ChunkID != 1 {
		t.Errorf("questions out of chunk order: %d, %d", q.Questions[0].ChunkID, q.Questions[1].ChunkID)
	}

	if len(updates) != 2 {
		t.Fatalf("expected 2 progress updates, got %d", len(updates))
	}
	last := updates[len(updates)-1]
	if last.Done != 2 || last.Total != 2 || last.Stage != "quiz" {
		t.Errorf("unexpected final progress: %+v", last)
	}
}

func TestRunQuiz_InvalidConfig(t *testing.T) {
	p := New(llm.NewMockProvider(), nil, nil)
	cfg := DefaultQuizConfig(map[allocate.Difficulty]int{allocate.Easy: 1})
	cfg.Concurrency = 0

	if _, err := p.RunQuiz(context.Background(), testDoc("text"), cfg); err == nil {
		t.Fatal("expected config validation error")
	}
}

func TestRunQuiz_FocusReachesPrompts(t *testing.T) {
	provider := llm.NewMockProvider(quizResponse(t, 1))
	p := New(provider, nil, nil)

	cfg := DefaultQuizConfig(map[allocate.Difficulty]int{allocate.Easy: 1})
	cfg.Focus = "- recursion"

	if _, err := p.RunQuiz(context.Background(), testDoc("functions call themselves"), cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(provider.Calls[0].Messages[0].Content, "recursion") {
		t.Error("focus text did not reach the generation prompt")
	}
}

func TestRunExercises(t *testing.T) {
	doc := testDoc("a page of teaching material with numbers like 6 and 7")
	provider := llm.NewMockProvider(
		exerciseResponse(t, "42"),
		exerciseResponse(t, "7"),
	)
	runner := exec.NewMockRunner(
		exec.MockResult{Output: "42"},
		exec.MockResult{Output: "9"}, // mismatch, exhausts at MaxAttempts 1
	)
	p := New(provider, runner, nil)

	var updates []Progress
	cfg := DefaultExerciseConfig(map[allocate.Difficulty]int{
		allocate.Easy: 1,
		allocate.Hard: 1,
	})
	cfg.Concurrency = 1
	cfg.Agent.MaxAttempts = 1
	cfg.OnProgress = func(pr Progress) { updates = append(updates, pr) }

	outs, err := p.RunExercises(context.Background(), doc, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outs) != 2 {
		t.Fatalf("expected one outcome per planned exercise, got %d", len(outs))
	}
	if outs[0].Status != exercise.StatusVerified {
		t.Errorf("easy exercise should verify, got %s", outs[0].Status)
	}
	if outs[1].Status != exercise.StatusExhausted {
		t.Errorf("hard exercise should exhaust, got %s", outs[1].Status)
	}

	if len(updates) != 2 {
		t.Fatalf("expected a progress update per difficulty group, got %d", len(updates))
	}
	if updates[1].Done != 2 || updates[1].Total != 2 {
		t.Errorf("unexpected final progress: %+v", updates[1])
	}
}

func TestRunExercises_NeedsRunner(t *testing.T) {
	p := New(llm.NewMockProvider(), nil, nil)
	cfg := DefaultExerciseConfig(map[allocate.Difficulty]int{allocate.Easy: 1})

	if _, err := p.RunExercises(context.Background(), testDoc("text"), cfg); err == nil {
		t.Fatal("expected error without a code runner")
	}
}
