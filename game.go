package middlegame

import (
	"strings"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/discochess/middlegame/internal/pgn"
)

// GameRecord is a parsed game held by the Bank. Records are immutable
// once inserted except for the lazily computed middlegame position
// cache, which is populated at most once.
type GameRecord struct {
	id    string
	game  *pgn.Game
	moves []string

	// middlegames caches sampled positions. First write wins; a lost
	// race recomputes identical data, so dropping it is harmless.
	middlegames atomic.Pointer[[]Position]
}

func newGameRecord(g *pgn.Game) *GameRecord {
	return &GameRecord{
		id:    uuid.NewString(),
		game:  g,
		moves: g.Moves,
	}
}

// ID returns the record's unique identifier, assigned at import.
func (g *GameRecord) ID() string { return g.id }

// White returns the white player's name.
func (g *GameRecord) White() string { return g.game.Tag("White") }

// Black returns the black player's name.
func (g *GameRecord) Black() string { return g.game.Tag("Black") }

// Event returns the event tag.
func (g *GameRecord) Event() string { return g.game.Tag("Event") }

// Site returns the site tag.
func (g *GameRecord) Site() string { return g.game.Tag("Site") }

// Date returns the date tag.
func (g *GameRecord) Date() string { return g.game.Tag("Date") }

// Result returns the result tag.
func (g *GameRecord) Result() string { return g.game.Tag("Result") }

// ECO returns the opening classification code, empty when absent.
func (g *GameRecord) ECO() string { return g.game.Tag("ECO") }

// Moves returns a copy of the game's move tokens in order.
func (g *GameRecord) Moves() []string {
	out := make([]string, len(g.moves))
	copy(out, g.moves)
	return out
}

// NumMoves returns the ply count.
func (g *GameRecord) NumMoves() int { return len(g.moves) }

// RawText returns the original PGN block this record was parsed from.
func (g *GameRecord) RawText() string { return g.game.Raw }

// PGN renders the record as a PGN block. The output is re-parseable
// but not byte-identical to the input.
func (g *GameRecord) PGN() string {
	var sb strings.Builder
	// Writes to a strings.Builder cannot fail.
	_ = pgn.Write(g.game, &sb)
	return sb.String()
}

// cachedMiddlegames returns the sampled positions, or nil when the
// cache has not been populated yet.
func (g *GameRecord) cachedMiddlegames() []Position {
	if p := g.middlegames.Load(); p != nil {
		return *p
	}
	return nil
}

// storeMiddlegames publishes the sampled positions. The first caller
// wins; later callers get the already published set back.
func (g *GameRecord) storeMiddlegames(positions []Position) []Position {
	if g.middlegames.CompareAndSwap(nil, &positions) {
		return positions
	}
	return *g.middlegames.Load()
}
