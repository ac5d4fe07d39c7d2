// Package replay reconstructs board positions by replaying move-token
// lists from the starting position through the legality oracle.
//
// Replay is forward-only and deterministic: each request restarts the
// oracle from the initial position and applies moves in play order. A
// token that cannot be resolved against the legal moves truncates the
// replay at that ply; the position reached so far is still a valid,
// usable result.
package replay

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/discochess/middlegame/internal/fen"
	"github.com/discochess/middlegame/internal/notation"
	"github.com/discochess/middlegame/internal/oracle"
	"github.com/discochess/middlegame/internal/stats"
)

// Result is the outcome of one replay.
type Result struct {
	// Position is the reached board snapshot (piece placement plus
	// side to move).
	Position string

	// Plies is the number of moves actually applied.
	Plies int

	// Truncated reports whether replay stopped before the requested
	// ply because a token failed to resolve.
	Truncated bool
}

// Engine replays games against fresh oracles.
// An Engine is safe for concurrent use; every replay constructs its own
// oracle instance.
type Engine struct {
	factory   oracle.Factory
	cache     *Cache
	collector stats.Collector
	logger    *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithCache sets the replay result cache.
func WithCache(c *Cache) Option {
	return func(e *Engine) { e.cache = c }
}

// WithStats sets the stats collector.
func WithStats(c stats.Collector) Option {
	return func(e *Engine) { e.collector = c }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New creates an Engine replaying through oracles built by factory.
func New(factory oracle.Factory, opts ...Option) *Engine {
	e := &Engine{
		factory:   factory,
		collector: stats.NewNoop(),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ToPly replays moves 0..ply of the given move list and returns the
// reached position. id identifies the game for caching; ply is clamped
// to the move list. An empty move list yields the starting position.
func (e *Engine) ToPly(ctx context.Context, id string, moves []string, ply int) (Result, error) {
	if ply < 0 {
		ply = 0
	}
	if ply >= len(moves) {
		ply = len(moves) - 1
	}

	key := fmt.Sprintf("%s#%d", id, ply)
	if e.cache != nil && id != "" {
		if pos, ok := e.cache.Get(key); ok {
			return Result{Position: pos, Plies: ply + 1}, nil
		}
	}

	e.collector.IncCounter(stats.MetricReplays, 1)

	o, err := e.factory()
	if err != nil {
		return Result{}, fmt.Errorf("creating oracle: %w", err)
	}

	res := Result{}
	for i := 0; i <= ply; i++ {
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		default:
		}

		mv, ok := notation.Match(moves[i], o.LegalMoves())
		if !ok {
			e.truncate(id, moves[i], i)
			res.Truncated = true
			break
		}
		if err := o.Apply(mv); err != nil {
			e.truncate(id, moves[i], i)
			res.Truncated = true
			break
		}
		res.Plies++
	}

	pos, err := fen.Trim(o.Position())
	if err != nil {
		return Result{}, fmt.Errorf("trimming oracle position: %w", err)
	}
	res.Position = pos

	e.collector.ObserveHistogram(stats.MetricReplayPlies, float64(res.Plies))
	if e.cache != nil && id != "" && !res.Truncated {
		e.cache.Set(key, res.Position)
	}
	return res, nil
}

// Walk replays the whole move list and returns the position after each
// applied ply, in order. Truncation shortens the returned slice; a game
// whose first token fails yields an empty slice.
func (e *Engine) Walk(ctx context.Context, id string, moves []string) ([]string, error) {
	o, err := e.factory()
	if err != nil {
		return nil, fmt.Errorf("creating oracle: %w", err)
	}

	e.collector.IncCounter(stats.MetricReplays, 1)

	positions := make([]string, 0, len(moves))
	for i, token := range moves {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		mv, ok := notation.Match(token, o.LegalMoves())
		if !ok {
			e.truncate(id, token, i)
			break
		}
		if err := o.Apply(mv); err != nil {
			e.truncate(id, token, i)
			break
		}

		pos, err := fen.Trim(o.Position())
		if err != nil {
			return nil, fmt.Errorf("trimming oracle position: %w", err)
		}
		positions = append(positions, pos)
	}
	return positions, nil
}

func (e *Engine) truncate(id, token string, ply int) {
	e.collector.IncCounter(stats.MetricReplayTruncations, 1)
	e.logger.Debug("replay truncated",
		zap.String("game", id),
		zap.String("token", token),
		zap.Int("ply", ply),
	)
}
