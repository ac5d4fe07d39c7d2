package pgn

import (
	"fmt"
	"io"
	"strings"
)

// tagOrder is the canonical emission order for recognized tags.
var tagOrder = []string{"Event", "Site", "Date", "Round", "White", "Black", "Result", "ECO"}

// movetextWidth is the soft line-wrap column for emitted movetext.
const movetextWidth = 79

// Write emits g as PGN text. The output is not guaranteed to be
// byte-identical to any canonical writer, only to re-parse through
// Tokenize and ParseGame to the same move-token list.
func Write(g *Game, w io.Writer) error {
	var sb strings.Builder

	for _, key := range tagOrder {
		v := g.Tag(key)
		if key == "ECO" && v == "" {
			continue
		}
		fmt.Fprintf(&sb, "[%s \"%s\"]\n", key, v)
	}
	sb.WriteString("\n")

	lineLen := 0
	writeToken := func(tok string) {
		if lineLen > 0 && lineLen+1+len(tok) > movetextWidth {
			sb.WriteString("\n")
			lineLen = 0
		} else if lineLen > 0 {
			sb.WriteString(" ")
			lineLen++
		}
		sb.WriteString(tok)
		lineLen += len(tok)
	}

	for i, mv := range g.Moves {
		if i%2 == 0 {
			writeToken(fmt.Sprintf("%d.", i/2+1))
		}
		writeToken(mv)
	}
	writeToken(g.Tag("Result"))
	sb.WriteString("\n")

	_, err := io.WriteString(w, sb.String())
	return err
}
