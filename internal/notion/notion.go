// Package notion extracts the key notions of a document so generation can
// be steered toward them. The user reviews the detected list and may edit
// it with a free-form instruction before generation starts.
package notion

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/quizforge/quizforge/internal/document"
	"github.com/quizforge/quizforge/internal/llm"
)

// Notion is one concept worth quizzing on.
type Notion struct {
	// Name is the short concept name.
	Name string `json:"name"`

	// Description is a one-sentence summary of what the document says
	// about it.
	Description string `json:"description"`

	// Enabled notions are injected into generation prompts. Detection
	// enables everything; the user's edits may disable entries.
	Enabled bool `json:"enabled"`
}

// NotionSchema defines the JSON schema for detection and edit responses.
var NotionSchema = &llm.Schema{
	Name:        "notion-list",
	Description: "The key notions of a document, each with a short description",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"notions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name": map[string]any{
							"type":        "string",
							"description": "Short concept name, a few words",
						},
						"description": map[string]any{
							"type":        "string",
							"description": "One sentence on what the document says about it",
						},
						"enabled": map[string]any{
							"type":        "boolean",
							"description": "Whether this notion should steer generation",
						},
					},
					"required":             []any{"name", "description", "enabled"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"notions"},
		"additionalProperties": false,
	},
}

const detectSystemPrompt = `You extract the key notions from teaching material.

Rules:
- List the distinct concepts a learner is expected to take away, not section titles.
- Name each notion in a few words and describe it in one sentence grounded in the material.
- Order by importance, most central first.
- Between 3 and 15 notions. Mark every notion enabled.`

const editSystemPrompt = `You revise a list of notions per the user's instruction.

Rules:
- Apply the instruction exactly: rename, reorder, add, remove, enable or disable as asked.
- Keep every notion the instruction does not mention unchanged, including its enabled flag.
- Return the complete revised list, not a diff.`

// maxDetectChars bounds the document text sent for detection.
const maxDetectChars = 24000

// Detector finds and revises notion lists through the model provider.
type Detector struct {
	provider llm.Provider
}

func NewDetector(provider llm.Provider) *Detector {
	return &Detector{provider: provider}
}

type notionOutput struct {
	Notions []Notion `json:"notions"`
}

// Detect extracts the notions covered by the given chunks.
func (d *Detector) Detect(ctx context.Context, chunks []document.Chunk) ([]Notion, error) {
	if len(chunks) == 0 {
		return nil, fmt.Errorf("no chunks to detect notions in")
	}

	ctx = llm.WithPurpose(ctx, "notion-detect")

	req := llm.Request{
		System: detectSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: "Material:\n" + sampleText(chunks)},
		},
		Schema:      NotionSchema,
		MaxTokens:   1024,
		Temperature: 0.3,
	}

	return d.generate(ctx, req)
}

// Edit applies a free-form user instruction to an existing notion list.
func (d *Detector) Edit(ctx context.Context, notions []Notion, instruction string) ([]Notion, error) {
	ctx = llm.WithPurpose(ctx, "notion-edit")

	current, err := json.Marshal(notionOutput{Notions: notions})
	if err != nil {
		return nil, fmt.Errorf("marshal notions: %w", err)
	}

	var b strings.Builder
	b.WriteString("Current notions:\n")
	b.Write(current)
	b.WriteString("\n\nInstruction:\n")
	b.WriteString(instruction)

	req := llm.Request{
		System: editSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: b.String()},
		},
		Schema:      NotionSchema,
		MaxTokens:   1024,
		Temperature: 0.2,
	}

	return d.generate(ctx, req)
}

func (d *Detector) generate(ctx context.Context, req llm.Request) ([]Notion, error) {
	resp, err := d.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("notion generation failed: %w", err)
	}

	var raw notionOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse notion response: %w", err)
	}
	if len(raw.Notions) == 0 {
		return nil, fmt.Errorf("empty notion list in response")
	}
	for i, n := range raw.Notions {
		if n.Name == "" {
			return nil, fmt.Errorf("notion %d has no name", i)
		}
	}
	return raw.Notions, nil
}

// sampleText joins chunk texts up to maxDetectChars. For long documents
// this keeps the head, which is where teaching material introduces its
// concepts.
func sampleText(chunks []document.Chunk) string {
	var b strings.Builder
	for _, c := range chunks {
		if b.Len() >= maxDetectChars {
			break
		}
		remaining := maxDetectChars - b.Len()
		text := c.Text
		if len(text) > remaining {
			text = text[:remaining]
		}
		b.WriteString(text)
		b.WriteString("\n\n")
	}
	return strings.TrimSpace(b.String())
}

// PromptText formats the enabled notions as a bullet list for injection
// into generation prompts. Empty string when nothing is enabled.
func PromptText(notions []Notion) string {
	var b strings.Builder
	for _, n := range notions {
		if !n.Enabled {
			continue
		}
		if n.Description != "" {
			fmt.Fprintf(&b, "- %s: %s\n", n.Name, n.Description)
		} else {
			fmt.Fprintf(&b, "- %s\n", n.Name)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
