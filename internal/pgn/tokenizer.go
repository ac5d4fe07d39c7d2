// Package pgn implements tolerant tokenization and parsing of PGN text.
// The tokenizer splits multi-game input into independent game blocks and
// the parser turns one block into tag pairs plus a flat move-token list.
// Malformed input is skipped, never fatal: a bad block costs that block
// only, and a bad tag line costs that tag only.
package pgn

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// maxLineSize bounds scanner lines; some exporters emit the entire
// movetext on a single line.
const maxLineSize = 1024 * 1024

// Tokenize splits raw multi-game PGN text into independent game blocks.
//
// A block begins at the first tag line and ends before the next
// "[Event ...]" tag, so games remain separable even when the exporter
// omitted the blank line between them. Input without any tag line
// yields no blocks.
func Tokenize(r io.Reader) ([]string, error) {
	var blocks []string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, maxLineSize), maxLineSize)

	var block strings.Builder
	inGame := false

	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		// A new [Event ...] tag while inside a game starts the next
		// block. Keying off Event specifically (not any tag line)
		// keeps a game's own tag section intact.
		if strings.HasPrefix(trimmed, "[Event ") && inGame && block.Len() > 0 {
			blocks = append(blocks, block.String())
			block.Reset()
		}
		if strings.HasPrefix(trimmed, "[") {
			inGame = true
		}

		if inGame {
			block.WriteString(line)
			block.WriteString("\n")
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading PGN: %w", err)
	}

	// Emit the in-progress block at end of input.
	if block.Len() > 0 {
		blocks = append(blocks, block.String())
	}

	return blocks, nil
}
