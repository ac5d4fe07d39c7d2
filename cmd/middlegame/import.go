package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import [archives...]",
	Short: "Import PGN archives and report what was parsed",
	Long: `Parse one or more PGN archives and report how many games were
imported and how many blocks were skipped.

Unparsable game blocks are skipped, never aborting the batch, so the
report is the place to notice a noisy archive.

Examples:
  # Local files, compressed or not
  middlegame import games.pgn archive.pgn.zst

  # Remote archives
  middlegame import https://example.com/masters.pgn.gz
  middlegame import s3://my-bucket/archives/2024.pgn.zst`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	bank, report, err := loadBank(cmd.Context(), args)
	if err != nil {
		return err
	}
	defer bank.Close()

	fmt.Printf("Archives: %d\n", len(args))
	fmt.Printf("Games:    %d\n", report.Games)
	fmt.Printf("Skipped:  %d\n", report.Skipped)
	fmt.Printf("Moves:    %d\n", report.Moves)
	if report.Games > 0 {
		fmt.Printf("Avg plies: %.1f\n", float64(report.Moves)/float64(report.Games))
	}

	return nil
}
