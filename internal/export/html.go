// Package export renders generated quizzes and exercises into standalone
// artifacts: self-contained interactive HTML and flat CSV.
package export

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"strings"

	"github.com/quizforge/quizforge/internal/exercise"
	"github.com/quizforge/quizforge/internal/quiz"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var funcs = template.FuncMap{
	"add":  func(a, b int) int { return a + b },
	"join": strings.Join,
	"join2": func(ints []int) string {
		parts := make([]string, len(ints))
		for i, n := range ints {
			parts[i] = strconv.Itoa(n)
		}
		return strings.Join(parts, ", ")
	},
}

var templates = template.Must(
	template.New("export").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl"),
)

// WriteQuizHTML renders a quiz as a single self-contained HTML page with
// client-side answer checking. No external assets.
func WriteQuizHTML(w io.Writer, q quiz.Quiz) error {
	if err := templates.ExecuteTemplate(w, "quiz.html.tmpl", q); err != nil {
		return fmt.Errorf("render quiz html: %w", err)
	}
	return nil
}

// exercisePage is the template payload for the exercise sheet.
type exercisePage struct {
	Title    string
	Outcomes []*exercise.Outcome
}

// WriteExercisesHTML renders verification outcomes as a printable exercise
// sheet with collapsed solutions. Exhausted outcomes are included and
// badged so the caller can decide whether to hand them out.
func WriteExercisesHTML(w io.Writer, title string, outcomes []*exercise.Outcome) error {
	page := exercisePage{Title: title, Outcomes: outcomes}
	if err := templates.ExecuteTemplate(w, "exercises.html.tmpl", page); err != nil {
		return fmt.Errorf("render exercises html: %w", err)
	}
	return nil
}
