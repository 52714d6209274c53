// Package quiz generates multiple-choice quizzes from document chunks via
// structured model responses.
package quiz

import (
	"fmt"

	"github.com/quizforge/quizforge/internal/allocate"
)

// Choice is one labeled option of a multiple-choice question.
type Choice struct {
	// Label is the option letter: "A", "B", "C" or "D".
	Label string `json:"label"`

	// Text is the option body.
	Text string `json:"text"`
}

// Question is one validated multiple-choice question.
type Question struct {
	// Text is the question prompt.
	Text string `json:"question"`

	// Choices are the labeled options, in label order.
	Choices []Choice `json:"choices"`

	// Correct lists the labels of the correct options. At least one;
	// more than one makes the question multi-select.
	Correct []string `json:"correct"`

	// Explanation justifies the correct answer.
	Explanation string `json:"explanation"`

	// Difficulty the question was generated for.
	Difficulty allocate.Difficulty `json:"difficulty"`

	// ChunkID is the source chunk.
	ChunkID int `json:"chunk_id"`

	// SourceUnits are the document units the source chunk covered.
	SourceUnits []int `json:"source_units,omitempty"`
}

// MultiSelect reports whether more than one option is correct.
func (q Question) MultiSelect() bool {
	return len(q.Correct) > 1
}

// Quiz is an ordered set of questions for one document.
type Quiz struct {
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// validateQuestion checks structural soundness: labels present and unique,
// at least two choices, and every correct label naming an actual choice.
func validateQuestion(q Question) error {
	if q.Text == "" {
		return fmt.Errorf("empty question text")
	}
	if len(q.Choices) < 2 {
		return fmt.Errorf("question %q: needs at least 2 choices, got %d", q.Text, len(q.Choices))
	}

	labels := make(map[string]bool, len(q.Choices))
	for _, c := range q.Choices {
		if c.Label == "" || c.Text == "" {
			return fmt.Errorf("question %q: choice with empty label or text", q.Text)
		}
		if labels[c.Label] {
			return fmt.Errorf("question %q: duplicate choice label %s", q.Text, c.Label)
		}
		labels[c.Label] = true
	}

	if len(q.Correct) == 0 {
		return fmt.Errorf("question %q: no correct answer", q.Text)
	}
	for _, lbl := range q.Correct {
		if !labels[lbl] {
			return fmt.Errorf("question %q: correct label %s names no choice", q.Text, lbl)
		}
	}
	return nil
}
