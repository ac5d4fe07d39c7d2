package pgn

import (
	"runtime"
	"sync"
)

// ParseAll parses game blocks concurrently, preserving input order.
// Blocks that fail to parse (including ErrNoMoves) are dropped.
// workers <= 0 uses one worker per CPU.
func ParseAll(blocks []string, workers int) []*Game {
	if len(blocks) == 0 {
		return nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(blocks) {
		workers = len(blocks)
	}

	parsed := make([]*Game, len(blocks))
	jobs := make(chan int, len(blocks))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				g, err := ParseGame(blocks[i])
				if err != nil {
					continue
				}
				parsed[i] = g
			}
		}()
	}

	for i := range blocks {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	// Compact, keeping input order.
	games := make([]*Game, 0, len(blocks))
	for _, g := range parsed {
		if g != nil {
			games = append(games, g)
		}
	}
	return games
}
