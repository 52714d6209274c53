package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quizforge/quizforge/internal/llm"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List known models and their per-million-token pricing",
	Run: func(cmd *cobra.Command, args []string) {
		table := llm.PricingTable()
		ids := make([]string, 0, len(table))
		for id := range table {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		fmt.Printf("%-32s  %10s  %10s\n", "Model", "In $/MTok", "Out $/MTok")
		fmt.Println(strings.Repeat("-", 56))
		for _, id := range ids {
			c := table[id]
			fmt.Printf("%-32s  %10.2f  %10.2f\n", id, c.InputPerMTok, c.OutputPerMTok)
		}
	},
}
