package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/quizforge/quizforge/internal/document"
	"github.com/quizforge/quizforge/internal/exec"
	"github.com/quizforge/quizforge/internal/export"
	"github.com/quizforge/quizforge/internal/pipeline"
)

var exercisesCmd = &cobra.Command{
	Use:   "exercises <file>",
	Short: "Generate verified computational exercises from a document",
	Long: `Generate exercises and verify each one by executing the model's own
checking code with a local Python interpreter. Exercises whose code never
reproduces the claimed answer within the attempt budget are kept in the
output but marked exhausted.`,
	Args: cobra.ExactArgs(1),
	RunE: runExercises,
}

func init() {
	addCountFlags(exercisesCmd, 3, 3, 1)
	exercisesCmd.Flags().String("out", "exercises.html", "Output HTML file")
	exercisesCmd.Flags().String("csv", "", "Also write exercises as CSV to this file")
	exercisesCmd.Flags().String("title", "", "Sheet title (defaults to the document name)")
	exercisesCmd.Flags().Int("concurrency", 4, "Parallel verification loops")
	exercisesCmd.Flags().Int("max-attempts", 3, "Verification attempts per exercise")
	exercisesCmd.Flags().String("python", "python3", "Python interpreter for verification code")
	exercisesCmd.Flags().Duration("exec-timeout", 10*time.Second, "Per-execution timeout")
}

func runExercises(cmd *cobra.Command, args []string) error {
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

	interp, _ := cmd.Flags().GetString("python")
	timeout, _ := cmd.Flags().GetDuration("exec-timeout")
	runner := &exec.PythonRunner{Interpreter: interp, Timeout: timeout}

	cfg := pipeline.DefaultExerciseConfig(counts)
	cfg.Policy = policy
	cfg.Tokenizer = tok
	cfg.Concurrency, _ = cmd.Flags().GetInt("concurrency")
	cfg.Agent.MaxAttempts, _ = cmd.Flags().GetInt("max-attempts")
	cfg.OnProgress = func(p pipeline.Progress) {
		fmt.Fprintf(os.Stderr, "\rverifying %d/%d", p.Done, p.Total)
	}

	fmt.Fprintf(os.Stderr, "generating exercises (%s) from %s\n", summarizeCounts(counts), doc.Name)

	p := pipeline.New(provider, runner, logger)
	outcomes, err := p.RunExercises(cmd.Context(), doc, cfg)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return err
	}

	verified := 0
	for _, o := range outcomes {
		if o.Verified() {
			verified++
		}
	}

	title, _ := cmd.Flags().GetString("title")
	if title == "" {
		title = doc.Name
	}

	outPath, _ := cmd.Flags().GetString("out")
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	defer f.Close()
	if err := export.WriteExercisesHTML(f, title, outcomes); err != nil {
		return err
	}
	fmt.Printf("wrote %d exercises (%d verified, %d exhausted) to %s\n",
		len(outcomes), verified, len(outcomes)-verified, outPath)

	if csvPath, _ := cmd.Flags().GetString("csv"); csvPath != "" {
		cf, err := os.Create(csvPath)
		if err != nil {
			return fmt.Errorf("create %s: %w", csvPath, err)
		}
		defer cf.Close()
		if err := export.WriteExercisesCSV(cf, outcomes); err != nil {
			return err
		}
		fmt.Printf("wrote CSV to %s\n", csvPath)
	}

	return nil
}
