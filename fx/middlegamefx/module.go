// Package middlegamefx provides an fx module wiring a middlegame Bank
// into an application.
// Requires a *zap.Logger to be provided.
package middlegamefx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/discochess/middlegame"
	"github.com/discochess/middlegame/internal/stats"
	"github.com/discochess/middlegame/internal/stats/logger"
)

// Module provides a Bank with logger-backed stats collection.
var Module = fx.Module("middlegame",
	fx.Provide(
		newStatsCollector,
		newBank,
	),
)

func newStatsCollector(log *zap.Logger) stats.Collector {
	return logger.New(log.Named("middlegame.stats"))
}

// Params holds dependencies for creating the bank.
type Params struct {
	fx.In

	Logger    *zap.Logger
	Collector stats.Collector
	Lifecycle fx.Lifecycle
}

// Result holds the provided bank.
type Result struct {
	fx.Out

	Bank *middlegame.Bank
}

func newBank(p Params) (Result, error) {
	bank, err := middlegame.New(
		middlegame.WithStats(p.Collector),
		middlegame.WithLogger(p.Logger.Named("middlegame")),
	)
	if err != nil {
		return Result{}, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return bank.Close()
		},
	})

	return Result{Bank: bank}, nil
}
