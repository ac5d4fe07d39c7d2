package pgn

import (
	"errors"
	"regexp"
	"strings"
)

// ErrNoMoves signals a block that parsed to zero move tokens. Such
// blocks produce no game record at all.
var ErrNoMoves = errors.New("pgn: no moves in game")

var (
	tagRe       = regexp.MustCompile(`\[(\w+)\s+"([^"]*)"\]`)
	commentRe   = regexp.MustCompile(`\{[^}]*\}`)
	variationRe = regexp.MustCompile(`\([^)]*\)`)
	nagRe       = regexp.MustCompile(`\$\d+`)

	// moveNumberRe strips "12." and "12..." prefixes, which may be
	// glued to the move token itself.
	moveNumberRe = regexp.MustCompile(`^\d+\.+`)

	// sanTokenRe recognizes a standard algebraic move (optional piece
	// letter, optional disambiguation, optional capture, destination
	// square, optional promotion) or castling in either notation
	// family, with an optional check/mate suffix.
	sanTokenRe = regexp.MustCompile(`^(?:[KQRBN]?[a-h]?[1-8]?x?[a-h][1-8](?:=[QRBN])?|O-O(?:-O)?|0-0(?:-0)?)[+#]?$`)
)

// resultTokens appear in movetext but are not moves.
var resultTokens = map[string]bool{
	"1-0":     true,
	"0-1":     true,
	"1/2-1/2": true,
	"*":       true,
}

// tagDefaults are the values used when a recognized tag is absent.
var tagDefaults = map[string]string{
	"White":  "Unknown",
	"Black":  "Unknown",
	"Event":  "Unknown Event",
	"Site":   "Unknown Site",
	"Date":   "????.??.??",
	"Round":  "?",
	"Result": "*",
	"ECO":    "",
}

// Game is one parsed game record: its tag mapping, its move tokens in
// play order, and the raw block text it was parsed from.
type Game struct {
	Tags  map[string]string
	Moves []string
	Raw   string
}

// Tag returns the value for key, or the documented default when the
// tag is absent from the record.
func (g *Game) Tag(key string) string {
	if v, ok := g.Tags[key]; ok {
		return v
	}
	return tagDefaults[key]
}

// ParseGame parses one game block. It returns ErrNoMoves if the block
// yields zero move tokens; malformed tag lines are skipped without
// aborting the block.
func ParseGame(block string) (*Game, error) {
	g := &Game{
		Tags: make(map[string]string),
		Raw:  block,
	}

	var movetext strings.Builder
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "[") {
			// Last occurrence wins for repeated keys.
			if m := tagRe.FindStringSubmatch(line); m != nil {
				g.Tags[m[1]] = m[2]
			}
			continue
		}
		movetext.WriteString(line)
		movetext.WriteString(" ")
	}

	g.Moves = extractMoves(movetext.String())
	if len(g.Moves) == 0 {
		return nil, ErrNoMoves
	}
	return g, nil
}

// extractMoves pulls the move tokens out of a movetext blob, dropping
// comments, variations, numeric annotation glyphs, move numbers and
// result tokens.
func extractMoves(movetext string) []string {
	movetext = commentRe.ReplaceAllString(movetext, " ")
	movetext = variationRe.ReplaceAllString(movetext, " ")
	movetext = nagRe.ReplaceAllString(movetext, " ")

	var moves []string
	for _, tok := range strings.Fields(movetext) {
		if resultTokens[tok] {
			continue
		}
		tok = moveNumberRe.ReplaceAllString(tok, "")
		tok = strings.TrimRight(tok, "!?")
		if tok == "" {
			continue
		}
		if sanTokenRe.MatchString(tok) {
			moves = append(moves, tok)
		}
	}
	return moves
}
