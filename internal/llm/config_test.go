package llm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func clearProviderEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"QUIZFORGE_LLM_PROVIDER",
		"QUIZFORGE_ANTHROPIC_API_KEY", "QUIZFORGE_ANTHROPIC_MODEL",
		"QUIZFORGE_OPENAI_API_KEY", "QUIZFORGE_OPENAI_MODEL", "QUIZFORGE_OPENAI_BASE_URL",
		"QUIZFORGE_GEMINI_API_KEY", "QUIZFORGE_GEMINI_MODEL",
		"QUIZFORGE_OPENROUTER_API_KEY", "QUIZFORGE_OPENROUTER_MODEL",
		"OPENAI_API_KEY", "GEMINI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestConfigFromEnv_Defaults(t *testing.T) {
	clearProviderEnv(t)

	cfg := ConfigFromEnv()
	require.Equal(t, "openai", cfg.Provider)
	require.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	require.Equal(t, 3, cfg.Retry.MaxAttempts)
	require.NotZero(t, cfg.Timeout)
}

func TestConfigFromEnv_Overrides(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("QUIZFORGE_LLM_PROVIDER", "gemini")
	t.Setenv("QUIZFORGE_GEMINI_API_KEY", "k")
	t.Setenv("QUIZFORGE_GEMINI_MODEL", "gemini-2.0-pro")

	cfg := ConfigFromEnv()
	require.Equal(t, "gemini", cfg.Provider)
	require.Equal(t, "k", cfg.Gemini.APIKey)
	require.Equal(t, "gemini-2.0-pro", cfg.Gemini.Model)
	require.NoError(t, cfg.Validate())
}

func TestDiscoverConfig_PriorityOrder(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("ANTHROPIC_API_KEY", "ak")
	t.Setenv("OPENAI_API_KEY", "ok")

	cfg, found := DiscoverConfig()
	require.True(t, found)
	require.Equal(t, "openai", cfg.Provider, "openai key wins when several are set")
	require.Equal(t, "ok", cfg.OpenAI.APIKey)
}

func TestDiscoverConfig_NothingSet(t *testing.T) {
	clearProviderEnv(t)

	_, found := DiscoverConfig()
	require.False(t, found)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.Error(t, cfg.Validate(), "openai without a key must fail")

	cfg.OpenAI.APIKey = "k"
	require.NoError(t, cfg.Validate())

	cfg.Provider = "mock"
	require.NoError(t, cfg.Validate(), "mock needs no key")

	cfg.Provider = "carrier-pigeon"
	require.Error(t, cfg.Validate())
}
