// Package middlegame builds a bank of chess games from PGN archives
// and serves middlegame positions replayed from them.
//
// Example usage:
//
//	bank, err := middlegame.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer bank.Close()
//
//	if _, err := bank.ImportFile(ctx, "games.pgn"); err != nil {
//	    log.Fatal(err)
//	}
//
//	pick, err := bank.PickMiddlegame(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Practice this: %s\n", pick.Position)
package middlegame

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/discochess/middlegame/internal/pgn"
	"github.com/discochess/middlegame/internal/replay"
	"github.com/discochess/middlegame/internal/sample"
	"github.com/discochess/middlegame/internal/source"
	"github.com/discochess/middlegame/internal/source/filesource"
	"github.com/discochess/middlegame/internal/stats"
)

// Sentinel errors for well-defined error conditions.
var (
	// ErrEmptyBank indicates a pick was requested with no games loaded.
	ErrEmptyBank = errors.New("middlegame: bank is empty")

	// ErrNotFound indicates a PGN archive does not exist.
	ErrNotFound = errors.New("middlegame: archive not found")

	// ErrGameNotFound indicates no game with the given id is in the bank.
	ErrGameNotFound = errors.New("middlegame: game not found")

	// ErrClosed indicates the bank has been closed.
	ErrClosed = errors.New("middlegame: bank closed")
)

// Bank holds imported games and serves positions replayed from them.
// A Bank is safe for concurrent use by multiple goroutines.
type Bank struct {
	mu    sync.RWMutex
	games []*GameRecord
	byID  map[string]*GameRecord

	engine  *replay.Engine
	sampler *sample.Sampler
	cache   *replay.Cache

	// rng has its own lock so picks do not contend with imports.
	rngMu sync.Mutex
	rng   randSource

	parseWorkers int
	stats        stats.Collector
	logger       *zap.Logger
	closed       atomic.Bool
}

// randSource is the subset of math/rand used by the bank.
type randSource interface {
	Intn(n int) int
}

// ImportReport summarizes one import batch.
type ImportReport struct {
	Games   int // records added to the bank
	Skipped int // blocks that failed to parse
	Moves   int // total plies across added records
}

// Pick is one practice position together with the game it came from.
type Pick struct {
	Position Position
	Game     *GameRecord
}

// New creates a Bank with the given options.
// If no options are provided, sensible defaults are used.
func New(opts ...Option) (*Bank, error) {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	engineOpts := []replay.Option{
		replay.WithStats(cfg.stats),
		replay.WithLogger(cfg.logger.Named("replay")),
	}
	var cache *replay.Cache
	if cfg.cacheSize > 0 {
		var err error
		cache, err = replay.NewCache(cfg.cacheSize, cfg.stats)
		if err != nil {
			return nil, fmt.Errorf("creating replay cache: %w", err)
		}
		engineOpts = append(engineOpts, replay.WithCache(cache))
	}
	engine := replay.New(cfg.oracleFactory, engineOpts...)

	samplerOpts := []sample.Option{
		sample.WithCount(cfg.sampleCount),
		sample.WithSelfPlay(cfg.oracleFactory),
	}
	if cfg.minMaterial >= 0 {
		samplerOpts = append(samplerOpts, sample.WithMinMaterial(cfg.minMaterial))
	}

	b := &Bank{
		byID:         make(map[string]*GameRecord),
		engine:       engine,
		sampler:      sample.NewSampler(engine, samplerOpts...),
		cache:        cache,
		rng:          cfg.rng,
		parseWorkers: cfg.parseWorkers,
		stats:        cfg.stats,
		logger:       cfg.logger,
	}

	b.logger.Debug("bank initialized",
		zap.Int("cacheSize", cfg.cacheSize),
		zap.Int("sampleCount", cfg.sampleCount),
		zap.Int("parseWorkers", cfg.parseWorkers),
	)

	return b, nil
}

// ImportText parses PGN text and appends all valid games to the bank.
// Unparsable blocks are logged and skipped, never aborting the batch.
// Empty input is a no-op, not an error.
func (b *Bank) ImportText(ctx context.Context, text string) (ImportReport, error) {
	if b.closed.Load() {
		return ImportReport{}, ErrClosed
	}
	if strings.TrimSpace(text) == "" {
		return ImportReport{}, nil
	}
	return b.importReader(ctx, strings.NewReader(text))
}

// ImportFile reads a PGN file from the local filesystem and imports
// its games. Compressed archives (.zst, .gz) are handled by extension.
// Returns ErrNotFound if the path does not exist.
func (b *Bank) ImportFile(ctx context.Context, path string) (ImportReport, error) {
	return b.ImportSource(ctx, filesource.New(path, nil))
}

// ImportSource imports games from an archive source. The source is
// opened, drained and closed; it may point at local files, HTTP URLs
// or cloud object storage.
func (b *Bank) ImportSource(ctx context.Context, src source.Source) (ImportReport, error) {
	if b.closed.Load() {
		return ImportReport{}, ErrClosed
	}

	rc, err := src.Open(ctx)
	if err != nil {
		if errors.Is(err, source.ErrNotFound) {
			return ImportReport{}, ErrNotFound
		}
		return ImportReport{}, fmt.Errorf("opening source: %w", err)
	}
	defer rc.Close()

	return b.importReader(ctx, rc)
}

// importReader tokenizes and parses the stream, then appends all valid
// records under one lock acquisition so concurrent readers see either
// none or all of the batch.
func (b *Bank) importReader(ctx context.Context, r io.Reader) (ImportReport, error) {
	b.stats.IncCounter(stats.MetricImports, 1)

	blocks, err := pgn.Tokenize(r)
	if err != nil {
		return ImportReport{}, fmt.Errorf("tokenizing: %w", err)
	}

	select {
	case <-ctx.Done():
		return ImportReport{}, ctx.Err()
	default:
	}

	games := pgn.ParseAll(blocks, b.parseWorkers)

	report := ImportReport{Skipped: len(blocks) - len(games)}
	records := make([]*GameRecord, 0, len(games))
	for _, g := range games {
		rec := newGameRecord(g)
		records = append(records, rec)
		report.Games++
		report.Moves += len(rec.moves)
	}

	if report.Skipped > 0 {
		b.stats.IncCounter(stats.MetricBlocksSkipped, int64(report.Skipped))
		b.logger.Warn("skipped unparsable game blocks",
			zap.Int("skipped", report.Skipped),
			zap.Int("parsed", report.Games),
		)
	}

	b.mu.Lock()
	b.games = append(b.games, records...)
	for _, rec := range records {
		b.byID[rec.id] = rec
	}
	total := len(b.games)
	b.mu.Unlock()

	b.stats.IncCounter(stats.MetricGamesImported, int64(report.Games))
	b.stats.SetGauge(stats.MetricBankGames, int64(total))
	b.logger.Info("imported games",
		zap.Int("games", report.Games),
		zap.Int("skipped", report.Skipped),
		zap.Int("bankTotal", total),
	)

	return report, nil
}

// Clear empties the bank and purges any replayed positions cached for
// the discarded games.
func (b *Bank) Clear() {
	b.mu.Lock()
	b.games = nil
	b.byID = make(map[string]*GameRecord)
	b.mu.Unlock()

	if b.cache != nil {
		b.cache.Purge()
	}
	b.stats.SetGauge(stats.MetricBankGames, 0)
}

// Count returns the number of games in the bank.
func (b *Bank) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.games)
}

// Games returns a snapshot of all records. The slice is a copy; the
// records themselves are shared and immutable.
func (b *Bank) Games() []*GameRecord {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]*GameRecord, len(b.games))
	copy(out, b.games)
	return out
}

// Lookup returns the game with the given id.
// Returns ErrGameNotFound if no such game is in the bank.
func (b *Bank) Lookup(id string) (*GameRecord, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	rec, ok := b.byID[id]
	if !ok {
		return nil, ErrGameNotFound
	}
	return rec, nil
}

// FilterByPlayer returns games where either player's name contains the
// given substring, case-insensitively.
func (b *Bank) FilterByPlayer(name string) []*GameRecord {
	needle := strings.ToLower(name)
	return b.filter(func(g *GameRecord) bool {
		return strings.Contains(strings.ToLower(g.White()), needle) ||
			strings.Contains(strings.ToLower(g.Black()), needle)
	})
}

// FilterByOpening returns games whose ECO code contains the given
// substring, case-insensitively.
func (b *Bank) FilterByOpening(eco string) []*GameRecord {
	needle := strings.ToLower(eco)
	return b.filter(func(g *GameRecord) bool {
		return strings.Contains(strings.ToLower(g.ECO()), needle)
	})
}

func (b *Bank) filter(keep func(*GameRecord) bool) []*GameRecord {
	b.mu.RLock()
	defer b.mu.RUnlock()
	var out []*GameRecord
	for _, g := range b.games {
		if keep(g) {
			out = append(out, g)
		}
	}
	return out
}

// PickMiddlegame selects a game uniformly at random, populates its
// middlegame position cache if needed, and returns one cached position
// at random. Returns ErrEmptyBank when no games are loaded.
func (b *Bank) PickMiddlegame(ctx context.Context) (*Pick, error) {
	if b.closed.Load() {
		return nil, ErrClosed
	}

	b.mu.RLock()
	n := len(b.games)
	var rec *GameRecord
	if n > 0 {
		rec = b.games[b.intn(n)]
	}
	b.mu.RUnlock()

	if rec == nil {
		return nil, ErrEmptyBank
	}

	positions, err := b.middlegamePositions(ctx, rec)
	if err != nil {
		return nil, err
	}

	b.stats.IncCounter(stats.MetricPicks, 1)
	return &Pick{
		Position: positions[b.intn(len(positions))],
		Game:     rec,
	}, nil
}

// Replay reconstructs the position after applying the game's moves
// 0..ply. Unresolvable tokens truncate the replay; the deepest reached
// position is returned, never an error.
func (b *Bank) Replay(ctx context.Context, id string, ply int) (Position, error) {
	if b.closed.Load() {
		return Position{}, ErrClosed
	}

	rec, err := b.Lookup(id)
	if err != nil {
		return Position{}, err
	}

	res, err := b.engine.ToPly(ctx, rec.id, rec.moves, ply)
	if err != nil {
		return Position{}, err
	}
	return ParsePosition(res.Position)
}

// CacheStats returns replay cache statistics, or zeroes when caching
// is disabled.
func (b *Bank) CacheStats() replay.CacheStats {
	if b.cache == nil {
		return replay.CacheStats{}
	}
	return b.cache.Stats()
}

// Close releases resources held by the bank.
// After Close, the bank should not be used.
func (b *Bank) Close() error {
	if !b.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}
	return nil
}

// middlegamePositions returns the record's sampled middlegame
// positions, computing and publishing them on first access. Two
// concurrent first calls may both compute; one write wins and both see
// a non-empty result.
func (b *Bank) middlegamePositions(ctx context.Context, rec *GameRecord) ([]Position, error) {
	if cached := rec.cachedMiddlegames(); cached != nil {
		return cached, nil
	}

	raw, err := b.sampler.Positions(ctx, rec.id, rec.moves)
	if err != nil {
		return nil, fmt.Errorf("sampling positions: %w", err)
	}

	positions := make([]Position, 0, len(raw))
	for _, s := range raw {
		p, err := ParsePosition(s)
		if err != nil {
			return nil, fmt.Errorf("parsing sampled position: %w", err)
		}
		positions = append(positions, p)
	}

	return rec.storeMiddlegames(positions), nil
}

// intn draws a random index under the rng lock.
func (b *Bank) intn(n int) int {
	b.rngMu.Lock()
	defer b.rngMu.Unlock()
	return b.rng.Intn(n)
}
