package exercise

import "github.com/quizforge/quizforge/internal/llm"

// ExerciseSchema defines the JSON schema for exercise generation responses.
var ExerciseSchema = &llm.Schema{
	Name:        "exercise-candidate",
	Description: "A computational exercise with a claimed answer and standalone verification code",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"statement": map[string]any{
				"type":        "string",
				"description": "The exercise prompt shown to the learner, self-contained, plain text",
			},
			"claimed_answer": map[string]any{
				"type":        "string",
				"description": "The final answer. Numeric answers as a bare number string, e.g. \"42\" or \"3.75\".",
			},
			"steps": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
				},
				"description": "Ordered worked-solution steps, one operation per step",
			},
			"verification_code": map[string]any{
				"type":        "string",
				"description": "A standalone Python script that recomputes the answer from the statement's data and prints only the final value with print(). No imports beyond the standard library, no input(), no file or network access.",
			},
		},
		"required":             []any{"statement", "claimed_answer", "steps", "verification_code"},
		"additionalProperties": false,
	},
}
