// Package notniloracle implements the legality oracle on top of
// github.com/notnil/chess.
package notniloracle

import (
	"fmt"

	"github.com/notnil/chess"

	"github.com/discochess/middlegame/internal/oracle"
)

// Compile-time check that Oracle implements oracle.Oracle.
var _ oracle.Oracle = (*Oracle)(nil)

// Oracle wraps a notnil/chess game.
type Oracle struct {
	game *chess.Game

	// lastCheck records whether the most recently applied move gave
	// check. notnil/chess exposes check only as a tag on the move that
	// delivers it, so the adapter tracks it across Apply calls.
	lastCheck bool
}

// New creates an oracle at the standard starting position.
func New() *Oracle {
	return &Oracle{game: chess.NewGame()}
}

// Factory is an oracle.Factory producing fresh oracles at the standard
// starting position.
func Factory() (oracle.Oracle, error) {
	return New(), nil
}

// Position returns the current position as a full FEN string.
func (o *Oracle) Position() string {
	return o.game.Position().String()
}

// Turn returns the side to move.
func (o *Oracle) Turn() oracle.Color {
	if o.game.Position().Turn() == chess.White {
		return oracle.White
	}
	return oracle.Black
}

// LegalMoves enumerates every legal move for the side to move, in
// notnil/chess's deterministic generation order.
func (o *Oracle) LegalMoves() []oracle.Move {
	pos := o.game.Position()
	valid := pos.ValidMoves()
	notation := chess.AlgebraicNotation{}

	moves := make([]oracle.Move, 0, len(valid))
	for _, m := range valid {
		mv := oracle.Move{
			From: m.S1().String(),
			To:   m.S2().String(),
			SAN:  notation.Encode(pos, m),
		}
		switch {
		case m.HasTag(chess.KingSideCastle):
			mv.Castle = oracle.Kingside
		case m.HasTag(chess.QueenSideCastle):
			mv.Castle = oracle.Queenside
		}
		if m.HasTag(chess.EnPassant) {
			mv.EnPassant = true
		}
		if p := m.Promo(); p != chess.NoPieceType {
			mv.Promo = p.String()
		}
		moves = append(moves, mv)
	}
	return moves
}

// Apply plays a move previously returned by LegalMoves.
func (o *Oracle) Apply(mv oracle.Move) error {
	pos := o.game.Position()
	for _, m := range pos.ValidMoves() {
		if m.S1().String() != mv.From || m.S2().String() != mv.To {
			continue
		}
		if promo := m.Promo(); promo == chess.NoPieceType {
			if mv.Promo != "" {
				continue
			}
		} else if promo.String() != mv.Promo {
			continue
		}

		if err := o.game.Move(m); err != nil {
			return fmt.Errorf("applying %s%s: %w", mv.From, mv.To, err)
		}
		o.lastCheck = m.HasTag(chess.Check)
		return nil
	}
	return fmt.Errorf("%w: %s%s", oracle.ErrIllegalMove, mv.From, mv.To)
}

// InCheck reports whether the given side is currently in check.
func (o *Oracle) InCheck(c oracle.Color) bool {
	return o.lastCheck && o.Turn() == c
}

// Checkmated reports whether the given side has been checkmated.
func (o *Oracle) Checkmated(c oracle.Color) bool {
	return o.Turn() == c && o.game.Position().Status() == chess.Checkmate
}

// Stalemated reports whether the given side has been stalemated.
func (o *Oracle) Stalemated(c oracle.Color) bool {
	return o.Turn() == c && o.game.Position().Status() == chess.Stalemate
}
