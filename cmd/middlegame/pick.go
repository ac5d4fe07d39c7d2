package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/discochess/middlegame"
)

var pickCmd = &cobra.Command{
	Use:   "pick [archives...]",
	Short: "Pick a random middlegame position to practice",
	Long: `Import the given archives, pick a game at random and print one of
its middlegame positions.

The position is the FEN board and side to move; paste it into any
board editor to set up the practice position.

Examples:
  # One position from a local archive
  middlegame pick games.pgn

  # Reproducible picks
  middlegame pick --seed 42 games.pgn

  # Several positions as JSON
  middlegame pick --count 5 --json games.pgn`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPick,
}

var (
	pickCount  int
	outputJSON bool
	showTiming bool
)

func init() {
	pickCmd.Flags().IntVar(&pickCount, "count", 1, "number of positions to pick")
	pickCmd.Flags().BoolVar(&outputJSON, "json", false, "output results as JSON")
	pickCmd.Flags().BoolVar(&showTiming, "timing", false, "show pick timing")
	rootCmd.AddCommand(pickCmd)
}

func runPick(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	bank, _, err := loadBank(ctx, args)
	if err != nil {
		return err
	}
	defer bank.Close()

	for i := 0; i < pickCount; i++ {
		start := time.Now()
		pick, err := bank.PickMiddlegame(ctx)
		if err != nil {
			if errors.Is(err, middlegame.ErrEmptyBank) {
				return fmt.Errorf("no games imported; nothing to pick from")
			}
			return fmt.Errorf("picking position: %w", err)
		}
		elapsed := time.Since(start)

		if outputJSON {
			printPickJSON(pick, elapsed)
		} else {
			printPickText(pick, elapsed)
		}
	}

	return nil
}

func printPickText(pick *middlegame.Pick, elapsed time.Duration) {
	fmt.Printf("Position: %s\n", pick.Position)
	fmt.Printf("Game:     %s vs %s, %s (%s)\n",
		pick.Game.White(), pick.Game.Black(), pick.Game.Event(), pick.Game.Result())
	if eco := pick.Game.ECO(); eco != "" {
		fmt.Printf("Opening:  %s\n", eco)
	}
	if showTiming {
		fmt.Printf("Time:     %s\n", elapsed)
	}
	fmt.Println()
}

func printPickJSON(pick *middlegame.Pick, elapsed time.Duration) {
	fmt.Printf(`{"position":%q,"white":%q,"black":%q,"event":%q,"result":%q`,
		pick.Position.String(), pick.Game.White(), pick.Game.Black(),
		pick.Game.Event(), pick.Game.Result())
	if eco := pick.Game.ECO(); eco != "" {
		fmt.Printf(`,"eco":%q`, eco)
	}
	if showTiming {
		fmt.Printf(`,"elapsed_ms":%d`, elapsed.Milliseconds())
	}
	fmt.Println("}")
}
