package middlegame

import (
	"fmt"
	"strings"

	"github.com/discochess/middlegame/internal/fen"
)

// Position is an immutable board snapshot: piece placement plus side
// to move, the FEN board+turn prefix. It is not tied to any GameRecord
// after creation.
type Position struct {
	board string
	side  string
}

// ParsePosition parses a position string. Full FEN input is accepted;
// the castling, en passant and move-clock fields are dropped.
func ParsePosition(s string) (Position, error) {
	trimmed, err := fen.Trim(s)
	if err != nil {
		return Position{}, fmt.Errorf("parsing position: %w", err)
	}
	board, side, _ := strings.Cut(trimmed, " ")
	return Position{board: board, side: side}, nil
}

// StartingPosition returns the standard initial position.
func StartingPosition() Position {
	return Position{
		board: "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR",
		side:  "w",
	}
}

// Board returns the piece placement section, eight ranks separated by "/".
func (p Position) Board() string {
	return p.board
}

// SideToMove returns "w" or "b".
func (p Position) SideToMove() string {
	return p.side
}

// String returns the board and side to move separated by a space.
func (p Position) String() string {
	return p.board + " " + p.side
}

// IsZero reports whether p is the zero value rather than a parsed position.
func (p Position) IsZero() bool {
	return p.board == ""
}
