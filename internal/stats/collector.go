// Package stats provides a unified interface for collecting metrics.
package stats

// Metric names used throughout the library.
const (
	// Import metrics.
	MetricImports       = "middlegame_imports_total"
	MetricGamesImported = "middlegame_games_imported_total"
	MetricBlocksSkipped = "middlegame_blocks_skipped_total"
	MetricBankGames     = "middlegame_bank_games"

	// Replay metrics.
	MetricReplays           = "middlegame_replays_total"
	MetricReplayTruncations = "middlegame_replay_truncations_total"
	MetricReplayPlies       = "middlegame_replay_plies"

	// Pick metrics.
	MetricPicks = "middlegame_picks_total"

	// Replay cache metrics.
	MetricCacheHits   = "middlegame_replay_cache_hits_total"
	MetricCacheMisses = "middlegame_replay_cache_misses_total"
	MetricCacheSize   = "middlegame_replay_cache_size"
)

// Collector defines the interface for collecting metrics.
type Collector interface {
	// IncCounter increments a counter metric by delta.
	IncCounter(name string, delta int64)

	// SetGauge sets a gauge metric to value.
	SetGauge(name string, value int64)

	// ObserveHistogram records a value in a histogram metric.
	ObserveHistogram(name string, value float64)
}
