package quiz

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/quizforge/quizforge/internal/allocate"
)

// Directives maps a difficulty to its prompt instruction.
type Directives map[allocate.Difficulty]string

// DefaultDirectives returns the built-in difficulty instructions.
func DefaultDirectives() Directives {
	return Directives{
		allocate.Easy:   "Direct recall of facts and definitions stated verbatim in the excerpt. One correct answer.",
		allocate.Medium: "Understanding and application: rephrase, connect, or apply the excerpt's ideas. One correct answer; distractors reflect plausible misreadings.",
		allocate.Hard:   "Analysis and synthesis across the excerpt: edge cases, implications, or comparisons. May have several correct answers; say so in the question.",
	}
}

// LoadDirectives reads difficulty instructions from a YAML file keyed by
// difficulty name and merges them over the defaults, so a file overriding
// only "hard" keeps the built-in easy and medium instructions.
func LoadDirectives(path string) (Directives, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read directives: %w", err)
	}

	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse directives: %w", err)
	}

	d := DefaultDirectives()
	for name, text := range raw {
		diff := allocate.Difficulty(name)
		if _, known := d[diff]; !known {
			return nil, fmt.Errorf("unknown difficulty %q in %s", name, path)
		}
		if text != "" {
			d[diff] = text
		}
	}
	return d, nil
}
