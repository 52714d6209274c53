package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quizforge/quizforge/internal/allocate"
	"github.com/quizforge/quizforge/internal/document"
	"github.com/quizforge/quizforge/internal/pipeline"
)

var planCmd = &cobra.Command{
	Use:   "plan <file>",
	Short: "Show how a document would be chunked and allocated (no model calls)",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlan,
}

func init() {
	addCountFlags(planCmd, 5, 5, 2)
}

func runPlan(cmd *cobra.Command, args []string) error {
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

	chunks, plan, err := pipeline.BuildPlan(doc, policy, counts, tok)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d units, %d chunks, %d tokens total\n\n",
		doc.Name, len(doc.Units), len(chunks), document.TotalTokens(chunks))

	fmt.Printf("%-6s  %-8s  %-12s  %-6s  %-6s  %s\n",
		"Chunk", "Tokens", "Units", "Easy", "Med", "Hard")
	fmt.Println(strings.Repeat("-", 56))

	perChunk := func(d allocate.Difficulty, chunkID int) int {
		for _, e := range plan[d] {
			if e.ChunkID == chunkID {
				return e.Count
			}
		}
		return 0
	}

	for _, c := range chunks {
		units := make([]string, len(c.SourceUnits))
		for i, u := range c.SourceUnits {
			units[i] = fmt.Sprintf("%d", u)
		}
		fmt.Printf("%-6d  %-8d  %-12s  %-6d  %-6d  %d\n",
			c.ID, c.TokenWeight, strings.Join(units, ","),
			perChunk(allocate.Easy, c.ID),
			perChunk(allocate.Medium, c.ID),
			perChunk(allocate.Hard, c.ID))
	}

	fmt.Println(strings.Repeat("-", 56))
	fmt.Printf("%-6s  %-8s  %-12s  %-6d  %-6d  %d\n", "total", "", "",
		plan.Total(allocate.Easy), plan.Total(allocate.Medium), plan.Total(allocate.Hard))

	return nil
}
