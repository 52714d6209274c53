package quiz

import "github.com/quizforge/quizforge/internal/llm"

// QuizSchema defines the JSON schema for quiz generation responses.
var QuizSchema = &llm.Schema{
	Name:        "quiz-questions",
	Description: "A batch of multiple-choice questions grounded in a document excerpt",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question prompt, self-contained, plain text",
						},
						"choices": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"label": map[string]any{
										"type": "string",
										"enum": []any{"A", "B", "C", "D"},
									},
									"text": map[string]any{
										"type": "string",
									},
								},
								"required":             []any{"label", "text"},
								"additionalProperties": false,
							},
							"description": "Exactly 4 labeled options A through D",
						},
						"correct": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "string",
							},
							"description": "Labels of the correct options. Usually one; several for multi-select questions.",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "Why the correct answer is correct, citing the excerpt",
						},
					},
					"required":             []any{"question", "choices", "correct", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
