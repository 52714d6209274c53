package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/quizforge/quizforge/internal/exercise"
	"github.com/quizforge/quizforge/internal/quiz"
)

// WriteQuizCSV writes one row per question: prompt, the four choices,
// correct labels, explanation, difficulty, and source pages.
func WriteQuizCSV(w io.Writer, q quiz.Quiz) error {
	cw := csv.NewWriter(w)

	header := []string{"question", "choice_a", "choice_b", "choice_c", "choice_d", "correct", "explanation", "difficulty", "pages"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write quiz csv: %w", err)
	}

	for _, qu := range q.Questions {
		row := []string{qu.Text}
		for i := 0; i < 4; i++ {
			if i < len(qu.Choices) {
				row = append(row, qu.Choices[i].Text)
			} else {
				row = append(row, "")
			}
		}
		row = append(row,
			strings.Join(qu.Correct, ";"),
			qu.Explanation,
			string(qu.Difficulty),
			joinInts(qu.SourceUnits),
		)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write quiz csv: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteExercisesCSV writes one row per outcome: statement, answer, worked
// steps, verification status, and attempts used.
func WriteExercisesCSV(w io.Writer, outcomes []*exercise.Outcome) error {
	cw := csv.NewWriter(w)

	header := []string{"statement", "answer", "steps", "status", "attempts", "chunk"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write exercises csv: %w", err)
	}

	for _, o := range outcomes {
		if o == nil {
			continue
		}
		row := []string{
			o.Candidate.Statement,
			o.Candidate.ClaimedAnswer,
			strings.Join(o.Candidate.Steps, " | "),
			string(o.Status),
			strconv.Itoa(o.AttemptsUsed),
			strconv.Itoa(o.Candidate.ChunkID),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write exercises csv: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func joinInts(ints []int) string {
	parts := make([]string, len(ints))
	for i, n := range ints {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ";")
}
