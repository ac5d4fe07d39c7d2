package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats [archives...]",
	Short: "Show statistics about imported archives",
	Long: `Import the given archives and display statistics:
- Number of games and skipped blocks
- Ply counts (total, shortest, longest, average)
- Opening codes seen`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBankStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runBankStats(cmd *cobra.Command, args []string) error {
	bank, report, err := loadBank(cmd.Context(), args)
	if err != nil {
		return err
	}
	defer bank.Close()

	games := bank.Games()
	if len(games) == 0 {
		fmt.Println("No games imported.")
		return nil
	}

	minPlies, maxPlies := games[0].NumMoves(), games[0].NumMoves()
	openings := make(map[string]int)
	for _, g := range games {
		n := g.NumMoves()
		if n < minPlies {
			minPlies = n
		}
		if n > maxPlies {
			maxPlies = n
		}
		if eco := g.ECO(); eco != "" {
			openings[eco]++
		}
	}

	fmt.Printf("Games:      %d\n", len(games))
	fmt.Printf("Skipped:    %d\n", report.Skipped)
	fmt.Printf("Plies:      %d total, %d-%d per game, %.1f average\n",
		report.Moves, minPlies, maxPlies, float64(report.Moves)/float64(len(games)))
	fmt.Printf("Openings:   %d distinct ECO codes\n", len(openings))

	return nil
}
