// Package oracle defines the chess legality capability consumed by the
// replay pipeline. Implementations know the rules of chess; the rest of
// the library only enumerates and applies the moves they offer.
package oracle

import "errors"

// ErrIllegalMove indicates an attempt to apply a move the oracle did not
// enumerate for the current position.
var ErrIllegalMove = errors.New("oracle: illegal move")

// Color identifies a side, using the FEN side-to-move letters.
type Color string

// The two sides.
const (
	White Color = "w"
	Black Color = "b"
)

// Other returns the opposing side.
func (c Color) Other() Color {
	if c == White {
		return Black
	}
	return White
}

// CastleSide classifies castling moves.
type CastleSide int

// Castling classifications.
const (
	NoCastle CastleSide = iota
	Kingside
	Queenside
)

// Move is one legal move in a position as enumerated by an Oracle.
type Move struct {
	// From and To are origin and destination squares ("g1", "f3").
	From string
	To   string

	// SAN is the oracle's canonical algebraic notation for the move.
	SAN string

	// Castle is set for castling moves.
	Castle CastleSide

	// EnPassant marks en passant captures.
	EnPassant bool

	// Promo is the promoted piece letter ("q", "n", ...), empty if the
	// move is not a promotion.
	Promo string
}

// Oracle tracks one game's position and enumerates legal moves.
// Implementations are stateful and not safe for concurrent use.
type Oracle interface {
	// Position returns the current position as a full FEN string.
	Position() string

	// Turn returns the side to move.
	Turn() Color

	// LegalMoves enumerates every legal move for the side to move.
	// The enumeration order is deterministic for a given position.
	LegalMoves() []Move

	// Apply plays a move returned by LegalMoves, mutating the position.
	// Returns ErrIllegalMove if the move is not legal.
	Apply(Move) error

	// InCheck reports whether the given side is currently in check.
	InCheck(Color) bool

	// Checkmated reports whether the given side has been checkmated.
	Checkmated(Color) bool

	// Stalemated reports whether the given side has been stalemated.
	Stalemated(Color) bool
}

// Factory creates a fresh Oracle at the standard starting position.
type Factory func() (Oracle, error)
