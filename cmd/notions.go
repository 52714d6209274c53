package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quizforge/quizforge/internal/document"
	"github.com/quizforge/quizforge/internal/notion"
)

var notionsCmd = &cobra.Command{
	Use:   "notions <file>",
	Short: "List the key notions detected in a document",
	Long: `Detect the concepts a document teaches. The list can be revised with
--edit ("drop the history notions", "add photosynthesis") before being fed
into quiz generation via the quiz command's --notions flag.`,
	Args: cobra.ExactArgs(1),
	RunE: runNotions,
}

func init() {
	notionsCmd.Flags().String("edit", "", "Instruction to revise the detected list")
}

func runNotions(cmd *cobra.Command, args []string) error {
	logger, err := buildLogger(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

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

	chunker := document.NewChunker(tok)
	chunks, err := chunker.Chunk(doc, policy)
	if err != nil {
		return err
	}

	provider, err := resolveProvider(cmd, logger)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	detector := notion.NewDetector(provider)

	notions, err := detector.Detect(ctx, chunks)
	if err != nil {
		return fmt.Errorf("detect notions: %w", err)
	}

	if instruction, _ := cmd.Flags().GetString("edit"); instruction != "" {
		notions, err = detector.Edit(ctx, notions, instruction)
		if err != nil {
			return fmt.Errorf("edit notions: %w", err)
		}
	}

	for _, n := range notions {
		mark := "x"
		if !n.Enabled {
			mark = " "
		}
		fmt.Printf("[%s] %s", mark, n.Name)
		if n.Description != "" {
			fmt.Printf(": %s", n.Description)
		}
		fmt.Println()
	}
	return nil
}
