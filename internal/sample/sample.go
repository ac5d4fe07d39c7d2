// Package sample selects plausible middlegame positions from imported
// games. The primary source is ply-window replay of a game's own moves;
// randomized self-play is the alternative when a game's move list is
// too short or truncates too early.
package sample

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"

	"github.com/discochess/middlegame/internal/fen"
	"github.com/discochess/middlegame/internal/oracle"
	"github.com/discochess/middlegame/internal/replay"
)

// DefaultCount is the default number of positions cached per game.
const DefaultCount = 8

// defaultMinMaterial is the minimum combined material (pawn units) for
// a position to pass the middlegame filter. Below it the game has
// liquidated into an endgame.
const defaultMinMaterial = 20

// selfPlayPlies is how deep a self-play game runs when a game's own
// moves cannot reach the middlegame window.
const selfPlayPlies = 60

// PlyWindow returns the inclusive ply range considered "middlegame"
// for a game of n plies: from max(15, n/3) to min(n-5, 2n/3), both
// clamped to [0, n-1]. For short games the window collapses toward the
// final ply.
func PlyWindow(n int) (lo, hi int) {
	if n <= 0 {
		return 0, 0
	}

	lo = n / 3
	if lo < 15 {
		lo = 15
	}
	hi = 2 * n / 3
	if hi > n-5 {
		hi = n - 5
	}

	lo = clamp(lo, 0, n-1)
	hi = clamp(hi, 0, n-1)
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Sampler produces middlegame position snapshots for games.
type Sampler struct {
	engine      *replay.Engine
	factory     oracle.Factory
	count       int
	minMaterial int
}

// Option configures a Sampler.
type Option func(*Sampler)

// WithCount sets how many positions are sampled per game.
func WithCount(n int) Option {
	return func(s *Sampler) {
		if n > 0 {
			s.count = n
		}
	}
}

// WithMinMaterial sets the middlegame material threshold in pawn
// units. Zero disables the filter.
func WithMinMaterial(m int) Option {
	return func(s *Sampler) { s.minMaterial = m }
}

// WithSelfPlay enables the self-play fallback: games whose own moves
// cannot reach the middlegame window draw positions from a randomized
// self-play game generated with the given oracle factory instead.
func WithSelfPlay(factory oracle.Factory) Option {
	return func(s *Sampler) { s.factory = factory }
}

// NewSampler creates a Sampler replaying through the given engine.
func NewSampler(engine *replay.Engine, opts ...Option) *Sampler {
	s := &Sampler{
		engine:      engine,
		count:       DefaultCount,
		minMaterial: defaultMinMaterial,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Positions returns up to the configured number of middlegame
// positions for the game, deterministically: the same game always
// yields the same sample set. The result is never empty. When the
// window is unreachable and self-play is enabled, positions come from
// a self-play game seeded by the game id; otherwise the deepest
// reached position (or the starting position for an unreplayable
// game) is returned.
func (s *Sampler) Positions(ctx context.Context, id string, moves []string) ([]string, error) {
	walked, err := s.engine.Walk(ctx, id, moves)
	if err != nil {
		return nil, err
	}
	if len(walked) == 0 {
		if positions, ok := s.selfPlayWindow(id); ok {
			return positions, nil
		}
		// Nothing replayed at all; fall back to the initial position.
		res, err := s.engine.ToPly(ctx, id, nil, 0)
		if err != nil {
			return nil, err
		}
		return []string{res.Position}, nil
	}

	lo, hi := PlyWindow(len(moves))
	if lo >= len(walked) {
		// Replay ended before the window opened.
		if positions, ok := s.selfPlayWindow(id); ok {
			return positions, nil
		}
		return []string{walked[len(walked)-1]}, nil
	}
	if hi >= len(walked) {
		hi = len(walked) - 1
	}

	window := walked[lo : hi+1]
	candidates := s.filterMaterial(window)
	if len(candidates) == 0 {
		candidates = window
	}

	return stride(candidates, s.count), nil
}

// filterMaterial keeps positions with enough combined material left on
// the board to still be a middlegame.
func (s *Sampler) filterMaterial(positions []string) []string {
	if s.minMaterial <= 0 {
		return positions
	}
	var kept []string
	for _, pos := range positions {
		m, err := fen.ParseMaterial(pos)
		if err != nil {
			continue
		}
		if m.Total() >= s.minMaterial {
			kept = append(kept, pos)
		}
	}
	return kept
}

// stride picks up to count entries spread evenly across positions.
func stride(positions []string, count int) []string {
	if len(positions) <= count {
		out := make([]string, len(positions))
		copy(out, positions)
		return out
	}
	out := make([]string, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, positions[i*len(positions)/count])
	}
	return out
}

// selfPlayWindow samples middlegame positions from a self-play game
// seeded by the game id. The seed keeps the sample set deterministic
// per game, so memoized results and fresh computations agree.
// Returns false when self-play is disabled or produced nothing.
func (s *Sampler) selfPlayWindow(id string) ([]string, bool) {
	if s.factory == nil {
		return nil, false
	}

	rng := rand.New(rand.NewSource(idSeed(id)))
	played, err := SelfPlay(s.factory, rng, selfPlayPlies)
	if err != nil || len(played) == 0 {
		return nil, false
	}

	lo, hi := PlyWindow(len(played))
	if hi >= len(played) {
		hi = len(played) - 1
	}
	if lo > hi {
		lo = hi
	}
	window := played[lo : hi+1]
	candidates := s.filterMaterial(window)
	if len(candidates) == 0 {
		candidates = window
	}
	return stride(candidates, s.count), true
}

// idSeed hashes a game id into a self-play rng seed.
func idSeed(id string) int64 {
	h := fnv.New64a()
	h.Write([]byte(id))
	return int64(h.Sum64())
}

// SelfPlay plays random legal moves from the starting position and
// returns the position after each ply, up to the requested ply count
// or until the game ends. It is the alternative middlegame source when
// no usable move list exists.
func SelfPlay(factory oracle.Factory, rng *rand.Rand, plies int) ([]string, error) {
	o, err := factory()
	if err != nil {
		return nil, fmt.Errorf("creating oracle: %w", err)
	}

	positions := make([]string, 0, plies)
	for i := 0; i < plies; i++ {
		legal := o.LegalMoves()
		if len(legal) == 0 {
			break
		}
		if err := o.Apply(legal[rng.Intn(len(legal))]); err != nil {
			return nil, fmt.Errorf("applying self-play move: %w", err)
		}
		pos, err := fen.Trim(o.Position())
		if err != nil {
			return nil, fmt.Errorf("trimming oracle position: %w", err)
		}
		positions = append(positions, pos)
	}
	return positions, nil
}
