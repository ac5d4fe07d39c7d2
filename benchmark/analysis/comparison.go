package analysis

import "fmt"

// ConfigComparison contains a full statistical comparison between two
// bank configurations, e.g. cached vs uncached replay.
type ConfigComparison struct {
	Config1         string
	Config2         string
	Stats1          *Summary
	Stats2          *Summary
	MannWhitney     *MannWhitneyResult
	EffectSize      *EffectSize
	Winner          string // Config with the lower mean latency, or "tie".
	WinnerConfident bool   // True if statistically significant.
}

// CompareConfigs performs a full statistical comparison between two
// latency samples, in microseconds.
func CompareConfigs(name1 string, sample1 []float64, name2 string, sample2 []float64) *ConfigComparison {
	mw := MannWhitneyU(sample1, sample2)
	es := ComputeEffectSize(sample1, sample2)

	stats1 := Describe(sample1)
	stats2 := Describe(sample2)

	var winner string
	var confident bool
	switch {
	case stats1.Mean < stats2.Mean:
		winner = name1
		confident = mw.Significant
	case stats2.Mean < stats1.Mean:
		winner = name2
		confident = mw.Significant
	default:
		winner = "tie"
	}

	return &ConfigComparison{
		Config1:         name1,
		Config2:         name2,
		Stats1:          stats1,
		Stats2:          stats2,
		MannWhitney:     mw,
		EffectSize:      es,
		Winner:          winner,
		WinnerConfident: confident,
	}
}

// Summary returns a human-readable summary of the comparison.
func (c *ConfigComparison) Summary() string {
	sig := "not statistically significant"
	if c.MannWhitney.Significant {
		sig = fmt.Sprintf("statistically significant (p=%.4f)", c.MannWhitney.PValue)
	}

	return fmt.Sprintf(
		"%s vs %s:\n"+
			"  %s: mean=%.1fµs, median=%.1fµs, p95=%.1fµs\n"+
			"  %s: mean=%.1fµs, median=%.1fµs, p95=%.1fµs\n"+
			"  Difference: %.1fµs (%.1f%%)\n"+
			"  Effect size: %.2f (%s)\n"+
			"  Result: %s, %s",
		c.Config1, c.Config2,
		c.Config1, c.Stats1.Mean, c.Stats1.Median, c.Stats1.P95,
		c.Config2, c.Stats2.Mean, c.Stats2.Median, c.Stats2.P95,
		c.Stats1.Mean-c.Stats2.Mean,
		safePctDiff(c.Stats1.Mean, c.Stats2.Mean),
		c.EffectSize.CohensD, c.EffectSize.Interpretation,
		c.Winner, sig,
	)
}

func safePctDiff(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return (a - b) / b * 100
}
