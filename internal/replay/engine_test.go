package replay

import (
	"context"
	"testing"

	"github.com/discochess/middlegame/internal/oracle/notniloracle"
)

// operaGame is Morphy's 1858 opera-box game, 33 plies.
var operaGame = []string{
	"e4", "e5", "Nf3", "d6", "d4", "Bg4", "dxe5", "Bxf3", "Qxf3", "dxe5",
	"Bc4", "Nf6", "Qb3", "Qe7", "Nc3", "c6", "Bg5", "b5", "Nxb5", "cxb5",
	"Bxb5+", "Nbd7", "O-O-O", "Rd8", "Rxd7", "Rxd7", "Rd1", "Qe6", "Bxd7+", "Nxd7",
	"Qb8+", "Nxb8", "Rd8#",
}

const startingPosition = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w"

func TestEngine_ToPly(t *testing.T) {
	e := New(notniloracle.Factory)
	ctx := context.Background()

	res, err := e.ToPly(ctx, "opera", operaGame, 0)
	if err != nil {
		t.Fatalf("ToPly() error = %v", err)
	}
	if res.Truncated {
		t.Error("ToPly() truncated on a clean game")
	}
	if res.Plies != 1 {
		t.Errorf("Plies = %d, want 1", res.Plies)
	}
	if want := "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b"; res.Position != want {
		t.Errorf("Position = %q, want %q", res.Position, want)
	}
}

func TestEngine_ToPly_FullGame(t *testing.T) {
	e := New(notniloracle.Factory)

	res, err := e.ToPly(context.Background(), "opera", operaGame, len(operaGame)-1)
	if err != nil {
		t.Fatalf("ToPly() error = %v", err)
	}
	if res.Truncated {
		t.Fatal("ToPly() truncated on a clean game")
	}
	if res.Plies != len(operaGame) {
		t.Errorf("Plies = %d, want %d", res.Plies, len(operaGame))
	}
}

func TestEngine_Determinism(t *testing.T) {
	e := New(notniloracle.Factory)
	ctx := context.Background()

	first, err := e.ToPly(ctx, "", operaGame, 20)
	if err != nil {
		t.Fatalf("ToPly() error = %v", err)
	}
	second, err := e.ToPly(ctx, "", operaGame, 20)
	if err != nil {
		t.Fatalf("ToPly() error = %v", err)
	}
	if first.Position != second.Position {
		t.Errorf("replays differ: %q vs %q", first.Position, second.Position)
	}
}

func TestEngine_TruncatesOnBadToken(t *testing.T) {
	e := New(notniloracle.Factory)
	ctx := context.Background()

	// Position after ply 3 of the clean prefix.
	clean, err := e.ToPly(ctx, "", operaGame, 3)
	if err != nil {
		t.Fatalf("ToPly() error = %v", err)
	}

	// Same prefix with an unresolvable token at ply 4.
	noisy := append([]string{}, operaGame[:4]...)
	noisy = append(noisy, "Qz9", "e4")

	res, err := e.ToPly(ctx, "", noisy, 5)
	if err != nil {
		t.Fatalf("ToPly() error = %v", err)
	}
	if !res.Truncated {
		t.Error("Truncated = false, want true")
	}
	if res.Plies != 4 {
		t.Errorf("Plies = %d, want 4", res.Plies)
	}
	if res.Position != clean.Position {
		t.Errorf("truncated position = %q, want position after ply 3 %q", res.Position, clean.Position)
	}
}

func TestEngine_TruncationAtFirstPly(t *testing.T) {
	e := New(notniloracle.Factory)

	res, err := e.ToPly(context.Background(), "", []string{"Qh7"}, 0)
	if err != nil {
		t.Fatalf("ToPly() error = %v", err)
	}
	if !res.Truncated {
		t.Error("Truncated = false, want true")
	}
	if res.Position != startingPosition {
		t.Errorf("Position = %q, want starting position", res.Position)
	}
}

func TestEngine_EmptyMoveList(t *testing.T) {
	e := New(notniloracle.Factory)

	res, err := e.ToPly(context.Background(), "", nil, 0)
	if err != nil {
		t.Fatalf("ToPly() error = %v", err)
	}
	if res.Position != startingPosition {
		t.Errorf("Position = %q, want starting position", res.Position)
	}
	if res.Plies != 0 {
		t.Errorf("Plies = %d, want 0", res.Plies)
	}
}

func TestEngine_CacheHit(t *testing.T) {
	cache, err := NewCache(16, nil)
	if err != nil {
		t.Fatalf("NewCache() error = %v", err)
	}
	e := New(notniloracle.Factory, WithCache(cache))
	ctx := context.Background()

	first, err := e.ToPly(ctx, "opera", operaGame, 10)
	if err != nil {
		t.Fatalf("ToPly() error = %v", err)
	}
	second, err := e.ToPly(ctx, "opera", operaGame, 10)
	if err != nil {
		t.Fatalf("ToPly() error = %v", err)
	}

	if first.Position != second.Position {
		t.Errorf("cached position differs: %q vs %q", first.Position, second.Position)
	}
	cs := cache.Stats()
	if cs.Hits != 1 {
		t.Errorf("cache hits = %d, want 1", cs.Hits)
	}
	if cs.Misses != 1 {
		t.Errorf("cache misses = %d, want 1", cs.Misses)
	}
	if cs.HitRate() != 50 {
		t.Errorf("HitRate() = %v, want 50", cs.HitRate())
	}
}

func TestCache_Purge(t *testing.T) {
	cache, err := NewCache(16, nil)
	if err != nil {
		t.Fatalf("NewCache() error = %v", err)
	}

	cache.Set("opera#10", "some position")
	if _, ok := cache.Get("opera#10"); !ok {
		t.Fatal("Get() after Set() missed")
	}

	cache.Purge()

	if _, ok := cache.Get("opera#10"); ok {
		t.Error("Get() after Purge() hit")
	}
	cs := cache.Stats()
	if cs.Size != 0 {
		t.Errorf("Size after Purge() = %d, want 0", cs.Size)
	}
	// Counters are cumulative across purges.
	if cs.Hits != 1 || cs.Misses != 1 {
		t.Errorf("Hits, Misses = %d, %d, want 1, 1", cs.Hits, cs.Misses)
	}
}

func TestEngine_Walk(t *testing.T) {
	e := New(notniloracle.Factory)

	positions, err := e.Walk(context.Background(), "opera", operaGame)
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	if len(positions) != len(operaGame) {
		t.Fatalf("len(positions) = %d, want %d", len(positions), len(operaGame))
	}
	if want := "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b"; positions[0] != want {
		t.Errorf("positions[0] = %q, want %q", positions[0], want)
	}

	// Walk agrees with ToPly at every ply it reached.
	res, err := e.ToPly(context.Background(), "", operaGame, 15)
	if err != nil {
		t.Fatalf("ToPly() error = %v", err)
	}
	if positions[15] != res.Position {
		t.Errorf("Walk()[15] = %q, ToPly(15) = %q", positions[15], res.Position)
	}
}

func TestEngine_ContextCancellation(t *testing.T) {
	e := New(notniloracle.Factory)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := e.ToPly(ctx, "", operaGame, 10); err == nil {
		t.Error("ToPly() with canceled context, want error")
	}
	if _, err := e.Walk(ctx, "", operaGame); err == nil {
		t.Error("Walk() with canceled context, want error")
	}
}
