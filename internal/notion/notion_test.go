package notion

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/quizforge/quizforge/internal/document"
	"github.com/quizforge/quizforge/internal/llm"
)

func notionResponse(t *testing.T, notions ...Notion) llm.MockResponse {
	t.Helper()
	b, err := json.Marshal(notionOutput{Notions: notions})
	if err != nil {
		t.Fatal(err)
	}
	return llm.MockResponse{Content: b}
}

func TestDetect(t *testing.T) {
	provider := llm.NewMockProvider(notionResponse(t,
		Notion{Name: "Osmosis", Description: "Water moves across membranes.", Enabled: true},
		Notion{Name: "Diffusion", Description: "Particles spread out.", Enabled: true},
	))
	d := NewDetector(provider)

	chunks := []document.Chunk{{ID: 0, Text: "Osmosis and diffusion move molecules."}}
	notions, err := d.Detect(context.Background(), chunks)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notions) != 2 || notions[0].Name != "Osmosis" {
		t.Fatalf("unexpected notions: %+v", notions)
	}

	prompt := provider.Calls[0].Messages[0].Content
	if !strings.Contains(prompt, "Osmosis and diffusion") {
		t.Error("detection prompt missing chunk text")
	}
}

func TestDetect_NoChunks(t *testing.T) {
	d := NewDetector(llm.NewMockProvider())
	if _, err := d.Detect(context.Background(), nil); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestDetect_EmptyListRejected(t *testing.T) {
	provider := llm.NewMockProvider(notionResponse(t))
	d := NewDetector(provider)

	chunks := []document.Chunk{{Text: "text"}}
	if _, err := d.Detect(context.Background(), chunks); err == nil {
		t.Fatal("expected error for empty notion list")
	}
}

func TestEdit_PromptCarriesListAndInstruction(t *testing.T) {
	provider := llm.NewMockProvider(notionResponse(t,
		Notion{Name: "Osmosis", Description: "d", Enabled: false},
	))
	d := NewDetector(provider)

	in := []Notion{{Name: "Osmosis", Description: "d", Enabled: true}}
	out, err := d.Edit(context.Background(), in, "disable osmosis")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0].Enabled {
		t.Error("edit result not returned as-is")
	}

	prompt := provider.Calls[0].Messages[0].Content
	if !strings.Contains(prompt, `"Osmosis"`) || !strings.Contains(prompt, "disable osmosis") {
		t.Errorf("edit prompt incomplete:\n%s", prompt)
	}
}

func TestPromptText(t *testing.T) {
	notions := []Notion{
		{Name: "Osmosis", Description: "Water moves.", Enabled: true},
		{Name: "Diffusion", Enabled: false},
		{Name: "Active transport", Enabled: true},
	}
	got := PromptText(notions)
	if !strings.Contains(got, "- Osmosis: Water moves.") {
		t.Errorf("missing enabled notion with description: %q", got)
	}
	if strings.Contains(got, "Diffusion") {
		t.Errorf("disabled notion must be omitted: %q", got)
	}
	if !strings.HasSuffix(got, "- Active transport") {
		t.Errorf("notion without description formats bare: %q", got)
	}

	if PromptText(nil) != "" {
		t.Error("no notions formats to empty string")
	}
}

func TestSampleText_Bounded(t *testing.T) {
	long := strings.Repeat("x", maxDetectChars)
	chunks := []document.Chunk{{Text: long}, {Text: "never included"}}
	got := sampleText(chunks)
	if strings.Contains(got, "never included") {
		t.Error("sample exceeded the character bound")
	}
}
