// Package tokenizer converts raw text into token counts and token streams.
// Counts drive proportional chunk weighing; streams drive sliding-window
// chunking. All implementations are deterministic, pure, and safe for
// concurrent use: the same text always yields the same tokens.
package tokenizer

import "strings"

// Counter counts the tokens in a piece of text.
type Counter interface {
	Count(text string) int
}

// Tokenizer extends Counter with access to the token stream itself.
// Join(Split(text)) must be semantically equivalent text (whitespace may
// be normalized). Count is the weight estimate and may exceed
// len(Split(text)) for heuristic implementations; it never undercounts
// the stream.
type Tokenizer interface {
	Counter

	// Split segments text into an ordered token stream.
	Split(text string) []string

	// Join reassembles a token stream into text.
	Join(tokens []string) string
}

// WordTokenizer treats whitespace-separated words as tokens. Coarse
// compared to a BPE tokenizer, but deterministic and consistent between
// counting and windowing: Count(text) == len(Split(text)).
type WordTokenizer struct{}

// NewWordTokenizer creates a word-level tokenizer.
func NewWordTokenizer() *WordTokenizer { return &WordTokenizer{} }

func (t *WordTokenizer) Count(text string) int { return len(strings.Fields(text)) }

func (t *WordTokenizer) Split(text string) []string { return strings.Fields(text) }

func (t *WordTokenizer) Join(tokens []string) string { return strings.Join(tokens, " ") }

// CharCounter estimates tokens from character count using a fixed
// characters-per-token ratio. Useful as a Counter when chunk weights
// should approximate a BPE tokenizer's output more closely than word
// counting does for heavily punctuated text.
type CharCounter struct {
	CharsPerToken float64
}

// NewCharCounter creates a character-based counter. A non-positive ratio
// falls back to 4.0, the usual figure for GPT-family tokenizers.
func NewCharCounter(charsPerToken float64) *CharCounter {
	if charsPerToken <= 0 {
		charsPerToken = 4.0
	}
	return &CharCounter{CharsPerToken: charsPerToken}
}

func (c *CharCounter) Count(text string) int {
	return int(float64(len(text)) / c.CharsPerToken)
}

// HeuristicTokenizer blends the word and character estimators. Whitespace
// splitting undercounts code and heavily punctuated text relative to a BPE
// tokenizer, so Count takes the larger of the word count and the chars/4
// estimate. The stream itself stays word-level, keeping windowing exact.
type HeuristicTokenizer struct {
	words WordTokenizer
	chars *CharCounter
}

// NewHeuristicTokenizer creates the blended tokenizer with the standard
// 4.0 characters-per-token ratio.
func NewHeuristicTokenizer() *HeuristicTokenizer {
	return &HeuristicTokenizer{chars: NewCharCounter(0)}
}

func (t *HeuristicTokenizer) Count(text string) int {
	words := t.words.Count(text)
	if chars := t.chars.Count(text); chars > words {
		return chars
	}
	return words
}

func (t *HeuristicTokenizer) Split(text string) []string { return t.words.Split(text) }

func (t *HeuristicTokenizer) Join(tokens []string) string { return t.words.Join(tokens) }

// Default returns the tokenizer used when callers do not supply one: the
// blended heuristic.
func Default() Tokenizer { return NewHeuristicTokenizer() }
