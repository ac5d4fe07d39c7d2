// Package main provides the middlegame CLI tool for importing PGN
// archives and practicing positions replayed from real games.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
