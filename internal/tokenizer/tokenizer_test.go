package tokenizer

import "testing"

func TestWordTokenizer_CountMatchesSplit(t *testing.T) {
	tok := NewWordTokenizer()

	cases := []string{
		"",
		"one",
		"a handful of plain words",
		"  leading   and trailing   whitespace  ",
		"line\nbreaks\tand\ttabs too",
	}
	for _, text := range cases {
		if got, want := tok.Count(text), len(tok.Split(text)); got != want {
			t.Errorf("Count(%q) = %d, Split length = %d", text, got, want)
		}
	}
}

func TestWordTokenizer_Deterministic(t *testing.T) {
	tok := NewWordTokenizer()
	text := "the same input must always produce the same tokens"

	first := tok.Split(text)
	second := tok.Split(text)
	if len(first) != len(second) {
		t.Fatalf("split lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("token %d differs: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestWordTokenizer_JoinRoundTrip(t *testing.T) {
	tok := NewWordTokenizer()
	text := "alpha beta   gamma"

	joined := tok.Join(tok.Split(text))
	if joined != "alpha beta gamma" {
		t.Errorf("unexpected join result: %q", joined)
	}
	// Re-splitting joined text yields the same stream.
	if tok.Count(joined) != tok.Count(text) {
		t.Errorf("count changed across join: %d vs %d", tok.Count(joined), tok.Count(text))
	}
}

func TestHeuristicTokenizer_Blends(t *testing.T) {
	tok := NewHeuristicTokenizer()

	// Plain prose: words dominate the chars/4 estimate.
	prose := "a few tiny ones"
	if got, want := tok.Count(prose), len(tok.Split(prose)); got != want {
		t.Errorf("prose Count = %d, want word count %d", got, want)
	}

	// Dense text with no whitespace: the character estimate wins.
	dense := "df.groupby('region').agg({'sales':'sum'})"
	words := len(tok.Split(dense))
	if got := tok.Count(dense); got <= words {
		t.Errorf("dense Count = %d, expected more than %d words", got, words)
	}
	if got, want := tok.Count(dense), NewCharCounter(0).Count(dense); got != want {
		t.Errorf("dense Count = %d, want char estimate %d", got, want)
	}
}

func TestHeuristicTokenizer_NeverUndercountsStream(t *testing.T) {
	tok := NewHeuristicTokenizer()
	cases := []string{
		"",
		"one",
		"ordinary prose with several words in it",
		"x = [i**2 for i in range(10)]",
	}
	for _, text := range cases {
		if got, want := tok.Count(text), len(tok.Split(text)); got < want {
			t.Errorf("Count(%q) = %d, below stream length %d", text, got, want)
		}
	}
}

func TestDefault_IsHeuristic(t *testing.T) {
	if _, ok := Default().(*HeuristicTokenizer); !ok {
		t.Fatalf("expected *HeuristicTokenizer, got %T", Default())
	}
}

func TestCharCounter(t *testing.T) {
	c := NewCharCounter(4.0)
	if got := c.Count("abcdefgh"); got != 2 {
		t.Errorf("expected 2 tokens for 8 chars at 4 chars/token, got %d", got)
	}

	// Non-positive ratio falls back to the default.
	fallback := NewCharCounter(0)
	if fallback.CharsPerToken != 4.0 {
		t.Errorf("expected fallback ratio 4.0, got %v", fallback.CharsPerToken)
	}
}
