package middlegame

import (
	"math/rand"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/discochess/middlegame/internal/oracle"
	"github.com/discochess/middlegame/internal/oracle/notniloracle"
	"github.com/discochess/middlegame/internal/sample"
	"github.com/discochess/middlegame/internal/stats"
)

// Option configures a Bank.
type Option interface {
	apply(*options)
}

// options holds the bank configuration.
type options struct {
	oracleFactory oracle.Factory
	stats         stats.Collector
	logger        *zap.Logger
	cacheSize     int
	sampleCount   int
	minMaterial   int
	parseWorkers  int
	rng           *rand.Rand
}

// defaultOptions returns the default configuration.
func defaultOptions() options {
	return options{
		oracleFactory: notniloracle.Factory,
		stats:         stats.NewNoop(),
		logger:        zap.NewNop(),
		cacheSize:     256,
		sampleCount:   sample.DefaultCount,
		minMaterial:   -1, // sampler default
		parseWorkers:  runtime.GOMAXPROCS(0),
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// optionFunc wraps a function to implement Option.
type optionFunc func(*options)

// Compile-time check that optionFunc implements Option.
var _ Option = optionFunc(nil)

func (f optionFunc) apply(o *options) { f(o) }

// WithOracle sets the legality oracle factory.
// If not set, the notnil/chess-backed oracle is used.
func WithOracle(f oracle.Factory) Option {
	return optionFunc(func(o *options) {
		o.oracleFactory = f
	})
}

// WithStats sets the stats collector.
// If not set, a no-op collector is used.
func WithStats(c stats.Collector) Option {
	return optionFunc(func(o *options) {
		o.stats = c
	})
}

// WithLogger sets the logger.
// If not set, a no-op logger is used.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(o *options) {
		o.logger = l
	})
}

// WithReplayCacheSize sets the capacity of the replayed-position LRU
// cache. Zero disables caching. Default is 256.
func WithReplayCacheSize(n int) Option {
	return optionFunc(func(o *options) {
		o.cacheSize = n
	})
}

// WithSampleCount sets how many middlegame positions are cached per
// game. Default is 8.
func WithSampleCount(n int) Option {
	return optionFunc(func(o *options) {
		o.sampleCount = n
	})
}

// WithMinMaterial sets the material threshold in pawn units below
// which a sampled position is no longer considered a middlegame.
// Zero disables the filter.
func WithMinMaterial(m int) Option {
	return optionFunc(func(o *options) {
		o.minMaterial = m
	})
}

// WithParseWorkers sets the number of goroutines parsing game blocks
// during import. Default is GOMAXPROCS.
func WithParseWorkers(n int) Option {
	return optionFunc(func(o *options) {
		if n > 0 {
			o.parseWorkers = n
		}
	})
}

// WithRand sets the random source used for picking games and
// positions. Useful for reproducible tests.
func WithRand(rng *rand.Rand) Option {
	return optionFunc(func(o *options) {
		o.rng = rng
	})
}
