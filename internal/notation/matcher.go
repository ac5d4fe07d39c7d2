// Package notation resolves loosely formatted algebraic move tokens
// against an oracle's legal-move enumeration.
//
// PGN exporters vary in notation strictness: some omit check marks,
// some disambiguate where it is not required, some use 0-0 for
// castling. The matcher therefore tries a cascade of rules, from strict
// to permissive, and settles for any legal move that plausibly denotes
// the token. The goal is reaching a playable position from noisy input,
// not verifying game legality.
package notation

import (
	"strings"

	"github.com/discochess/middlegame/internal/oracle"
)

// Rule is one total matching rule. It returns the matching legal move,
// or ok=false, and never mutates its inputs.
type Rule func(token string, legal []oracle.Move) (oracle.Move, bool)

// defaultRules is the cascade applied by Match, in priority order.
var defaultRules = []Rule{
	MatchExact,
	MatchCastling,
	MatchDestination,
}

// Match resolves token against the legal moves using the default rule
// cascade; the first rule to produce a move wins. ok=false means no
// rule matched.
func Match(token string, legal []oracle.Move) (oracle.Move, bool) {
	for _, rule := range defaultRules {
		if mv, ok := rule(token, legal); ok {
			return mv, true
		}
	}
	return oracle.Move{}, false
}

// MatchExact matches on string equality with the oracle's own SAN.
func MatchExact(token string, legal []oracle.Move) (oracle.Move, bool) {
	for _, m := range legal {
		if m.SAN == token {
			return m, true
		}
	}
	return oracle.Move{}, false
}

// MatchCastling matches castling tokens of either notation family
// against moves the oracle tags as castling, honoring the side the
// token names.
func MatchCastling(token string, legal []oracle.Move) (oracle.Move, bool) {
	side, ok := CastlingSide(token)
	if !ok {
		return oracle.Move{}, false
	}
	for _, m := range legal {
		if m.Castle == side {
			return m, true
		}
	}
	return oracle.Move{}, false
}

// MatchDestination matches on the token's trailing destination square
// alone. This deliberately ignores piece-type and origin
// disambiguation; when two pieces can reach the square, enumeration
// order decides. Promotion tokens additionally require the promoted
// piece to agree.
func MatchDestination(token string, legal []oracle.Move) (oracle.Move, bool) {
	dest := Destination(token)
	if dest == "" {
		return oracle.Move{}, false
	}
	promo := promoLetter(token)

	for _, m := range legal {
		if m.To != dest {
			continue
		}
		if promo != "" && m.Promo != promo {
			continue
		}
		return m, true
	}
	return oracle.Move{}, false
}

// CastlingSide classifies a castling token ("O-O", "0-0-0", with
// optional suffixes). ok=false if the token does not denote castling.
func CastlingSide(token string) (oracle.CastleSide, bool) {
	switch trimSuffixes(token) {
	case "O-O", "0-0":
		return oracle.Kingside, true
	case "O-O-O", "0-0-0":
		return oracle.Queenside, true
	}
	return oracle.NoCastle, false
}

// Destination extracts the trailing two-character destination square
// from a SAN token, or "" if the token has none.
func Destination(token string) string {
	tok := trimSuffixes(token)
	if i := strings.IndexByte(tok, '='); i >= 0 {
		tok = tok[:i]
	}
	if len(tok) < 2 {
		return ""
	}
	sq := tok[len(tok)-2:]
	if sq[0] < 'a' || sq[0] > 'h' || sq[1] < '1' || sq[1] > '8' {
		return ""
	}
	return sq
}

// promoLetter returns the lowercase promoted piece letter from a
// "=X" suffix, or "".
func promoLetter(token string) string {
	tok := trimSuffixes(token)
	if i := strings.IndexByte(tok, '='); i >= 0 && i+1 < len(tok) {
		return strings.ToLower(tok[i+1 : i+2])
	}
	return ""
}

func trimSuffixes(token string) string {
	return strings.TrimRight(token, "+#!?")
}
