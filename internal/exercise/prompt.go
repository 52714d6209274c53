package exercise

import (
	"fmt"
	"strings"

	"github.com/quizforge/quizforge/internal/allocate"
	"github.com/quizforge/quizforge/internal/document"
)

const systemPrompt = `You are a course assistant creating computational exercises from excerpts of teaching material.

Rules:
- Generate a single exercise grounded in the provided excerpt. Every number the exercise needs must appear in the statement itself.
- The statement must be self-contained: a reader without the excerpt can solve it.
- The claimed answer must be the exact final value, with no units or prose around it.
- The worked solution lists one operation per step.
- The verification code is a standalone Python script that recomputes the answer from the statement's data and prints only the final value. Standard library only, no input(), no files, no network.
- The printed value and the claimed answer must agree exactly (for numbers, to within rounding).
- Do not reuse the excerpt's page markers in the statement.`

// difficultyDirectives maps a difficulty to its prompt instruction.
var difficultyDirectives = map[allocate.Difficulty]string{
	allocate.Easy:   "Single-step computation applying one concept from the excerpt directly.",
	allocate.Medium: "Two to three dependent steps combining concepts from the excerpt.",
	allocate.Hard:   "Multi-step problem requiring the excerpt's concepts plus a non-obvious setup or intermediate quantity.",
}

// buildUserMessage constructs the generation prompt for one chunk and
// difficulty. Failure notes from prior attempts are appended so the model
// produces a genuinely new candidate instead of repeating the rejected one.
func buildUserMessage(chunk document.Chunk, difficulty allocate.Difficulty, failures []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Difficulty: %s\n", difficulty)
	if d, ok := difficultyDirectives[difficulty]; ok {
		fmt.Fprintf(&b, "Directive: %s\n", d)
	}

	b.WriteString("\nExcerpt:\n")
	b.WriteString(chunk.Text)

	if len(failures) > 0 {
		b.WriteString("\n\nPrevious proposals for this excerpt were rejected:\n")
		for i, f := range failures {
			fmt.Fprintf(&b, "%d. %s\n", i+1, f)
		}
		b.WriteString("Produce a different exercise whose verification code runs and agrees with its answer.")
	}

	return b.String()
}

// failureNote summarizes a rejected attempt for the next prompt.
func failureNote(a Attempt) string {
	switch a.Status() {
	case StatusExecutionError:
		return fmt.Sprintf("verification code failed: %v", a.ExecErr)
	case StatusUnverified:
		return fmt.Sprintf("code printed %q but the claimed answer was %q", a.Result, a.Candidate.ClaimedAnswer)
	default:
		return "rejected"
	}
}
