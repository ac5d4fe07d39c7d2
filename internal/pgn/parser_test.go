package pgn

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestParseGame_TagsAndMoves(t *testing.T) {
	block := `[White "Alice"]
[Black "Bob"]
[Result "1-0"]

1. e4 e5 2. Nf3 Nc6
`
	g, err := ParseGame(block)
	if err != nil {
		t.Fatalf("ParseGame() error = %v", err)
	}

	if got := g.Tag("White"); got != "Alice" {
		t.Errorf("Tag(White) = %q, want %q", got, "Alice")
	}
	if got := g.Tag("Black"); got != "Bob" {
		t.Errorf("Tag(Black) = %q, want %q", got, "Bob")
	}
	if got := g.Tag("Result"); got != "1-0" {
		t.Errorf("Tag(Result) = %q, want %q", got, "1-0")
	}

	want := []string{"e4", "e5", "Nf3", "Nc6"}
	if !reflect.DeepEqual(g.Moves, want) {
		t.Errorf("Moves = %v, want %v", g.Moves, want)
	}
}

func TestParseGame_Defaults(t *testing.T) {
	g, err := ParseGame("[Annotator \"ignored\"]\n1. e4 *\n")
	if err != nil {
		t.Fatalf("ParseGame() error = %v", err)
	}

	defaults := map[string]string{
		"White":  "Unknown",
		"Black":  "Unknown",
		"Event":  "Unknown Event",
		"Site":   "Unknown Site",
		"Date":   "????.??.??",
		"Round":  "?",
		"Result": "*",
		"ECO":    "",
	}
	for key, want := range defaults {
		if got := g.Tag(key); got != want {
			t.Errorf("Tag(%s) = %q, want %q", key, got, want)
		}
	}
}

func TestParseGame_NoMoves(t *testing.T) {
	_, err := ParseGame("[Event \"Tags Only\"]\n[White \"Alice\"]\n")
	if !errors.Is(err, ErrNoMoves) {
		t.Fatalf("ParseGame() error = %v, want ErrNoMoves", err)
	}
}

func TestParseGame_MalformedTagSkipped(t *testing.T) {
	block := `[Event "Good"]
[White no quotes here]
[Black "Bob"]

1. e4 e5 *
`
	g, err := ParseGame(block)
	if err != nil {
		t.Fatalf("ParseGame() error = %v", err)
	}
	if got := g.Tag("White"); got != "Unknown" {
		t.Errorf("Tag(White) = %q, want default after malformed tag", got)
	}
	if got := g.Tag("Black"); got != "Bob" {
		t.Errorf("Tag(Black) = %q, want %q", got, "Bob")
	}
}

func TestParseGame_RepeatedTagLastWins(t *testing.T) {
	block := "[Event \"First\"]\n[Event \"Second\"]\n1. e4 *\n"
	g, err := ParseGame(block)
	if err != nil {
		t.Fatalf("ParseGame() error = %v", err)
	}
	if got := g.Tag("Event"); got != "Second" {
		t.Errorf("Tag(Event) = %q, want %q", got, "Second")
	}
}

func TestExtractMoves(t *testing.T) {
	tests := []struct {
		name     string
		movetext string
		want     []string
	}{
		{
			name:     "numbers and result excluded",
			movetext: "1. e4 e5 2. Nf3 Nc6 1-0",
			want:     []string{"e4", "e5", "Nf3", "Nc6"},
		},
		{
			name:     "numbers glued to moves",
			movetext: "1.e4 e5 2.Nf3 Nc6 3...Nf6",
			want:     []string{"e4", "e5", "Nf3", "Nc6", "Nf6"},
		},
		{
			name:     "castling both families",
			movetext: "1. O-O O-O-O 2. 0-0 0-0-0",
			want:     []string{"O-O", "O-O-O", "0-0", "0-0-0"},
		},
		{
			name:     "captures checks promotions",
			movetext: "1. exd5 Qxd5+ 2. e8=Q Rxe8#",
			want:     []string{"exd5", "Qxd5+", "e8=Q", "Rxe8#"},
		},
		{
			name:     "disambiguated moves",
			movetext: "1. Nbd7 R1e2 2. Raxd1 h8=N",
			want:     []string{"Nbd7", "R1e2", "Raxd1", "h8=N"},
		},
		{
			name:     "comments variations and NAGs stripped",
			movetext: "1. e4 {best by test} e5 (1... c5 2. Nf3) $1 2. Nf3 1/2-1/2",
			want:     []string{"e4", "e5", "Nf3"},
		},
		{
			name:     "annotation suffixes stripped",
			movetext: "1. e4!! e5? 2. Nf3!?",
			want:     []string{"e4", "e5", "Nf3"},
		},
		{
			name:     "draw result excluded but castling kept",
			movetext: "40. 0-0 1/2-1/2",
			want:     []string{"0-0"},
		},
		{
			name:     "garbage tokens dropped",
			movetext: "1. e4 hello j9 e5 Z3 *",
			want:     []string{"e4", "e5"},
		},
		{
			name:     "empty movetext",
			movetext: "  ",
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractMoves(tt.movetext)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("extractMoves(%q) = %v, want %v", tt.movetext, got, tt.want)
			}
		})
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	g := &Game{
		Tags: map[string]string{
			"Event":  "Casual Game",
			"White":  "Alice",
			"Black":  "Bob",
			"Result": "1-0",
			"ECO":    "C50",
		},
		Moves: []string{"e4", "e5", "Nf3", "Nc6", "Bc4", "Bc5", "O-O", "Nf6"},
	}

	var sb strings.Builder
	if err := Write(g, &sb); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	blocks, err := Tokenize(strings.NewReader(sb.String()))
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	if len(blocks) != 1 {
		t.Fatalf("len(blocks) = %d, want 1", len(blocks))
	}

	reparsed, err := ParseGame(blocks[0])
	if err != nil {
		t.Fatalf("ParseGame() error = %v", err)
	}
	if !reflect.DeepEqual(reparsed.Moves, g.Moves) {
		t.Errorf("re-parsed moves = %v, want %v", reparsed.Moves, g.Moves)
	}
	for _, key := range []string{"Event", "White", "Black", "Result", "ECO"} {
		if reparsed.Tag(key) != g.Tag(key) {
			t.Errorf("Tag(%s) = %q, want %q", key, reparsed.Tag(key), g.Tag(key))
		}
	}
}

func TestParseAll(t *testing.T) {
	blocks := []string{
		"[Event \"One\"]\n1. e4 e5 *\n",
		"[Event \"Tags Only\"]\n",
		"[Event \"Three\"]\n1. d4 d5 *\n",
	}

	games := ParseAll(blocks, 4)
	if len(games) != 2 {
		t.Fatalf("len(games) = %d, want 2", len(games))
	}
	// Input order preserved despite concurrent parsing.
	if games[0].Tag("Event") != "One" || games[1].Tag("Event") != "Three" {
		t.Errorf("order = [%s, %s], want [One, Three]",
			games[0].Tag("Event"), games[1].Tag("Event"))
	}
}
