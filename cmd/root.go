package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/quizforge/quizforge/internal/allocate"
	"github.com/quizforge/quizforge/internal/document"
	"github.com/quizforge/quizforge/internal/llm"
	"github.com/quizforge/quizforge/internal/tokenizer"
)

var rootCmd = &cobra.Command{
	Use:   "quizforge",
	Short: "Generate quizzes and verified exercises from documents",
	Long: `Quizforge turns course material (PDF, DOCX, Markdown, plain text) into
multiple-choice quizzes and computational exercises. Exercises are verified
end to end: the model's own checking code is executed and its result compared
against the claimed answer before an exercise is accepted.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("chunking", "page", "Chunking policy: page or window")
	rootCmd.PersistentFlags().Int("window-tokens", 512, "Window size in tokens (window policy)")
	rootCmd.PersistentFlags().Int("overlap-tokens", 64, "Window overlap in tokens (window policy)")
	rootCmd.PersistentFlags().String("tokenizer", "blended", "Token estimator: blended or word")

	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(exercisesCmd)
	rootCmd.AddCommand(notionsCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(versionCmd)
}

// buildLogger returns a console logger honoring --verbose.
func buildLogger(cmd *cobra.Command) (*zap.Logger, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")

	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	return cfg.Build()
}

// resolvePolicy reads the chunking flags into a Policy.
func resolvePolicy(cmd *cobra.Command) (document.Policy, error) {
	kind, _ := cmd.Flags().GetString("chunking")
	window, _ := cmd.Flags().GetInt("window-tokens")
	overlap, _ := cmd.Flags().GetInt("overlap-tokens")

	switch kind {
	case "page":
		return document.Policy{Kind: document.PolicyPage}, nil
	case "window":
		return document.Policy{
			Kind:          document.PolicyWindow,
			WindowTokens:  window,
			OverlapTokens: overlap,
		}, nil
	default:
		return document.Policy{}, fmt.Errorf("unknown chunking policy %q (want page or window)", kind)
	}
}

// resolveTokenizer reads the --tokenizer flag.
func resolveTokenizer(cmd *cobra.Command) (tokenizer.Tokenizer, error) {
	name, _ := cmd.Flags().GetString("tokenizer")
	switch name {
	case "blended":
		return tokenizer.NewHeuristicTokenizer(), nil
	case "word":
		return tokenizer.NewWordTokenizer(), nil
	default:
		return nil, fmt.Errorf("unknown tokenizer %q (want blended or word)", name)
	}
}

// resolveCounts reads the per-difficulty count flags.
func resolveCounts(cmd *cobra.Command) (map[allocate.Difficulty]int, error) {
	easy, _ := cmd.Flags().GetInt("easy")
	medium, _ := cmd.Flags().GetInt("medium")
	hard, _ := cmd.Flags().GetInt("hard")

	if easy < 0 || medium < 0 || hard < 0 {
		return nil, fmt.Errorf("counts must be non-negative")
	}
	if easy+medium+hard == 0 {
		return nil, fmt.Errorf("nothing to generate: set --easy, --medium or --hard")
	}

	return map[allocate.Difficulty]int{
		allocate.Easy:   easy,
		allocate.Medium: medium,
		allocate.Hard:   hard,
	}, nil
}

// resolveProvider builds the LLM provider from QUIZFORGE_* env config,
// falling back to standard API key discovery.
func resolveProvider(cmd *cobra.Command, logger *zap.Logger) (llm.Provider, error) {
	cfg := llm.ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		discovered, ok := llm.DiscoverConfig()
		if !ok {
			return nil, fmt.Errorf("no LLM provider configured: %w", err)
		}
		cfg = discovered
	}
	return llm.NewProvider(cmd.Context(), cfg, logger)
}

// addCountFlags registers the shared per-difficulty count flags.
func addCountFlags(cmd *cobra.Command, defEasy, defMedium, defHard int) {
	cmd.Flags().Int("easy", defEasy, "Number of easy items")
	cmd.Flags().Int("medium", defMedium, "Number of medium items")
	cmd.Flags().Int("hard", defHard, "Number of hard items")
}

func summarizeCounts(counts map[allocate.Difficulty]int) string {
	parts := make([]string, 0, 3)
	for _, d := range []allocate.Difficulty{allocate.Easy, allocate.Medium, allocate.Hard} {
		if counts[d] > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", counts[d], d))
		}
	}
	return strings.Join(parts, ", ")
}
