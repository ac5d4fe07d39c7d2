// Package simulation runs practice sessions against a bank to measure
// pick latency under different configurations.
package simulation

import (
	"context"
	"time"

	"github.com/discochess/middlegame"
	"github.com/discochess/middlegame/internal/replay"
)

// Simulator drives repeated practice sessions against a bank.
type Simulator struct {
	bank *middlegame.Bank
	name string
}

// NewSimulator creates a Simulator for the named configuration.
func NewSimulator(name string, bank *middlegame.Bank) *Simulator {
	return &Simulator{bank: bank, name: name}
}

// SessionResult contains latency measurements for one session.
type SessionResult struct {
	ConfigName  string
	LatenciesUs []float64 // Per-pick latency in microseconds.
	Errors      int
}

// RunSession performs one practice session of the given number of
// picks and records each pick's latency.
func (s *Simulator) RunSession(ctx context.Context, picks int) (*SessionResult, error) {
	result := &SessionResult{
		ConfigName:  s.name,
		LatenciesUs: make([]float64, 0, picks),
	}

	for i := 0; i < picks; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		start := time.Now()
		_, err := s.bank.PickMiddlegame(ctx)
		elapsed := time.Since(start)

		if err != nil {
			result.Errors++
			continue
		}
		result.LatenciesUs = append(result.LatenciesUs, float64(elapsed.Microseconds()))
	}

	return result, nil
}

// RunSessions performs several sessions and aggregates their results.
func (s *Simulator) RunSessions(ctx context.Context, sessions, picksPer int) (*AggregateResult, error) {
	agg := &AggregateResult{
		ConfigName: s.name,
	}

	for i := 0; i < sessions; i++ {
		res, err := s.RunSession(ctx, picksPer)
		if err != nil {
			return nil, err
		}
		agg.Sessions++
		agg.Picks += len(res.LatenciesUs)
		agg.Errors += res.Errors
		agg.LatenciesUs = append(agg.LatenciesUs, res.LatenciesUs...)
	}

	agg.CacheStats = s.bank.CacheStats()
	return agg, nil
}

// AggregateResult contains aggregated results across sessions.
type AggregateResult struct {
	ConfigName  string
	Sessions    int
	Picks       int
	Errors      int
	LatenciesUs []float64
	CacheStats  replay.CacheStats
}
