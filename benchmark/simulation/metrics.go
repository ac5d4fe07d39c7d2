package simulation

import (
	"sort"
)

// Metrics contains computed metrics from simulation results.
type Metrics struct {
	Picks  int
	Errors int

	// Latency distribution, microseconds.
	MeanLatencyUs   float64
	MedianLatencyUs float64
	P90LatencyUs    float64
	P99LatencyUs    float64
	MinLatencyUs    float64
	MaxLatencyUs    float64

	// Replay cache behavior.
	CacheHitRate float64 // Percentage, 0 when caching is disabled.
}

// ComputeMetrics computes detailed metrics from aggregate results.
func ComputeMetrics(result *AggregateResult) *Metrics {
	m := &Metrics{
		Picks:        result.Picks,
		Errors:       result.Errors,
		CacheHitRate: result.CacheStats.HitRate(),
	}

	if len(result.LatenciesUs) > 0 {
		sorted := make([]float64, len(result.LatenciesUs))
		copy(sorted, result.LatenciesUs)
		sort.Float64s(sorted)

		m.MinLatencyUs = sorted[0]
		m.MaxLatencyUs = sorted[len(sorted)-1]
		m.MedianLatencyUs = percentile(sorted, 50)
		m.P90LatencyUs = percentile(sorted, 90)
		m.P99LatencyUs = percentile(sorted, 99)

		var sum float64
		for _, v := range sorted {
			sum += v
		}
		m.MeanLatencyUs = sum / float64(len(sorted))
	}

	return m
}

func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(float64(len(sorted)-1) * p / 100)
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
