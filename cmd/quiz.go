package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quizforge/quizforge/internal/document"
	"github.com/quizforge/quizforge/internal/export"
	"github.com/quizforge/quizforge/internal/notion"
	"github.com/quizforge/quizforge/internal/pipeline"
	"github.com/quizforge/quizforge/internal/quiz"
)

var quizCmd = &cobra.Command{
	Use:   "quiz <file>",
	Short: "Generate a multiple-choice quiz from a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuiz,
}

func init() {
	addCountFlags(quizCmd, 5, 5, 2)
	quizCmd.Flags().String("out", "quiz.html", "Output HTML file")
	quizCmd.Flags().String("csv", "", "Also write questions as CSV to this file")
	quizCmd.Flags().String("title", "", "Quiz title (defaults to the document name)")
	quizCmd.Flags().Int("concurrency", 4, "Parallel generation calls")
	quizCmd.Flags().Bool("notions", false, "Detect key notions first and steer questions toward them")
	quizCmd.Flags().String("directives", "", "YAML file overriding the per-difficulty instructions")
}

func runQuiz(cmd *cobra.Command, args []string) error {
	logger, err := buildLogger(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	counts, err := resolveCounts(cmd)
	if err != nil {
		return err
	}
	policy, err := resolvePolicy(cmd)
	if err != nil {
		return err
	}
	tok, err := resolveTokenizer(cmd)
	if err != nil {
		return err
	}

	doc, err := document.ExtractFile(args[0])
	if err != nil {
		return fmt.Errorf("extract %s: %w", args[0], err)
	}

	provider, err := resolveProvider(cmd, logger)
	if err != nil {
		return err
	}

	cfg := pipeline.DefaultQuizConfig(counts)
	cfg.Policy = policy
	cfg.Tokenizer = tok
	cfg.Title, _ = cmd.Flags().GetString("title")
	cfg.Concurrency, _ = cmd.Flags().GetInt("concurrency")
	cfg.OnProgress = func(p pipeline.Progress) {
		fmt.Fprintf(os.Stderr, "\rgenerating %d/%d", p.Done, p.Total)
	}

	if path, _ := cmd.Flags().GetString("directives"); path != "" {
		directives, err := quiz.LoadDirectives(path)
		if err != nil {
			return err
		}
		cfg.Generation.Directives = directives
	}

	ctx := cmd.Context()

	if useNotions, _ := cmd.Flags().GetBool("notions"); useNotions {
		chunks, _, err := pipeline.BuildPlan(doc, policy, counts, tok)
		if err != nil {
			return err
		}
		notions, err := notion.NewDetector(provider).Detect(ctx, chunks)
		if err != nil {
			return fmt.Errorf("detect notions: %w", err)
		}
		cfg.Focus = notion.PromptText(notions)
		fmt.Fprintf(os.Stderr, "detected %d notions\n", len(notions))
	}

	fmt.Fprintf(os.Stderr, "generating quiz (%s) from %s\n", summarizeCounts(counts), doc.Name)

	p := pipeline.New(provider, nil, logger)
	q, err := p.RunQuiz(ctx, doc, cfg)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return err
	}

	outPath, _ := cmd.Flags().GetString("out")
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	defer f.Close()
	if err := export.WriteQuizHTML(f, q); err != nil {
		return err
	}
	fmt.Printf("wrote %d questions to %s\n", len(q.Questions), outPath)

	if csvPath, _ := cmd.Flags().GetString("csv"); csvPath != "" {
		cf, err := os.Create(csvPath)
		if err != nil {
			return fmt.Errorf("create %s: %w", csvPath, err)
		}
		defer cf.Close()
		if err := export.WriteQuizCSV(cf, q); err != nil {
			return err
		}
		fmt.Printf("wrote CSV to %s\n", csvPath)
	}

	return nil
}
