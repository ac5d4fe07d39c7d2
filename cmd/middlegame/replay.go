package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var replayCmd = &cobra.Command{
	Use:   "replay [archives...]",
	Short: "Replay one game to a given ply",
	Long: `Import the given archives and replay one game from the starting
position to the requested ply, printing the reached position.

Move tokens that cannot be resolved against the legal moves truncate
the replay; the deepest reached position is printed in that case.

Examples:
  # Position after the 10th move of the first game
  middlegame replay --game 0 --ply 19 games.pgn`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReplay,
}

var (
	replayGame int
	replayPly  int
)

func init() {
	replayCmd.Flags().IntVar(&replayGame, "game", 0, "index of the game to replay")
	replayCmd.Flags().IntVar(&replayPly, "ply", -1, "target ply (default: last move)")
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	bank, _, err := loadBank(ctx, args)
	if err != nil {
		return err
	}
	defer bank.Close()

	games := bank.Games()
	if replayGame < 0 || replayGame >= len(games) {
		return fmt.Errorf("game index %d out of range; bank has %d games", replayGame, len(games))
	}
	game := games[replayGame]

	ply := replayPly
	if ply < 0 {
		ply = game.NumMoves() - 1
	}

	pos, err := bank.Replay(ctx, game.ID(), ply)
	if err != nil {
		return fmt.Errorf("replaying: %w", err)
	}

	fmt.Printf("Game:     %s vs %s, %s\n", game.White(), game.Black(), game.Event())
	fmt.Printf("Plies:    %d of %d\n", ply+1, game.NumMoves())
	fmt.Printf("Position: %s\n", pos)

	return nil
}
