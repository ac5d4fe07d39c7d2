package notniloracle

import (
	"strings"
	"testing"

	"github.com/discochess/middlegame/internal/oracle"
)

// applySAN finds a legal move by its SAN string and applies it.
func applySAN(t *testing.T, o *Oracle, san string) {
	t.Helper()
	for _, m := range o.LegalMoves() {
		if m.SAN == san {
			if err := o.Apply(m); err != nil {
				t.Fatalf("Apply(%s) error = %v", san, err)
			}
			return
		}
	}
	t.Fatalf("no legal move with SAN %q", san)
}

func TestOracle_StartingPosition(t *testing.T) {
	o := New()

	if got := o.Turn(); got != oracle.White {
		t.Errorf("Turn() = %q, want %q", got, oracle.White)
	}
	if got := len(o.LegalMoves()); got != 20 {
		t.Errorf("len(LegalMoves()) = %d, want 20", got)
	}
	if o.InCheck(oracle.White) || o.InCheck(oracle.Black) {
		t.Error("InCheck() = true at the starting position")
	}
}

func TestOracle_ApplyAdvancesPosition(t *testing.T) {
	o := New()
	applySAN(t, o, "e4")

	want := "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b"
	if got := o.Position(); !strings.HasPrefix(got, want) {
		t.Errorf("Position() = %q, want prefix %q", got, want)
	}
	if got := o.Turn(); got != oracle.Black {
		t.Errorf("Turn() = %q, want %q", got, oracle.Black)
	}
}

func TestOracle_ApplyRejectsUnknownMove(t *testing.T) {
	o := New()
	err := o.Apply(oracle.Move{From: "e2", To: "e5"})
	if err == nil {
		t.Fatal("Apply() with illegal move, want error")
	}
}

func TestOracle_CastlingTagged(t *testing.T) {
	o := New()
	// Free white's kingside for O-O.
	for _, san := range []string{"e4", "e5", "Nf3", "Nc6", "Bc4", "Bc5"} {
		applySAN(t, o, san)
	}

	var found bool
	for _, m := range o.LegalMoves() {
		if m.SAN == "O-O" {
			found = true
			if m.Castle != oracle.Kingside {
				t.Errorf("O-O Castle = %d, want Kingside", m.Castle)
			}
		}
	}
	if !found {
		t.Fatal("O-O not enumerated")
	}
}

func TestOracle_ScholarsMate(t *testing.T) {
	o := New()
	for _, san := range []string{"e4", "e5", "Qh5", "Nc6", "Bc4", "Nf6"} {
		applySAN(t, o, san)
	}
	applySAN(t, o, "Qxf7#")

	if !o.InCheck(oracle.Black) {
		t.Error("InCheck(Black) = false after mate")
	}
	if !o.Checkmated(oracle.Black) {
		t.Error("Checkmated(Black) = false after mate")
	}
	if o.Checkmated(oracle.White) {
		t.Error("Checkmated(White) = true after mating")
	}
	if o.Stalemated(oracle.Black) {
		t.Error("Stalemated(Black) = true in a checkmate")
	}
	if got := len(o.LegalMoves()); got != 0 {
		t.Errorf("len(LegalMoves()) = %d after mate, want 0", got)
	}
}
