// Package reporting provides report generation for benchmark results.
package reporting

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/discochess/middlegame/benchmark/analysis"
	"github.com/discochess/middlegame/benchmark/simulation"
)

// MarkdownReport generates benchmark reports in Markdown format.
type MarkdownReport struct {
	w io.Writer
}

// NewMarkdownReport creates a new Markdown report writer.
func NewMarkdownReport(w io.Writer) *MarkdownReport {
	return &MarkdownReport{w: w}
}

// WriteHeader writes the report header.
func (r *MarkdownReport) WriteHeader(title string) {
	fmt.Fprintf(r.w, "# %s\n\n", title)
	fmt.Fprintf(r.w, "Generated: %s\n\n", time.Now().Format(time.RFC3339))
}

// WriteMethodology writes the methodology section.
func (r *MarkdownReport) WriteMethodology(games, sessions, picksPer int) {
	fmt.Fprintln(r.w, "## Methodology")
	fmt.Fprintln(r.w)
	fmt.Fprintf(r.w, "- **Games in bank:** %d\n", games)
	fmt.Fprintf(r.w, "- **Sessions per configuration:** %d\n", sessions)
	fmt.Fprintf(r.w, "- **Picks per session:** %d\n", picksPer)
	fmt.Fprintln(r.w, "- **Metric:** Per-pick latency in microseconds (lower is better)")
	fmt.Fprintln(r.w, "- **Statistical tests:** Mann-Whitney U (non-parametric), Cohen's d effect size")
	fmt.Fprintln(r.w)
}

// WriteSummaryTable writes the summary comparison table.
func (r *MarkdownReport) WriteSummaryTable(results []*simulation.AggregateResult) {
	fmt.Fprintln(r.w, "## Summary")
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, "| Configuration | Picks | Mean (µs) | Median (µs) | P99 (µs) | Cache Hit Rate |")
	fmt.Fprintln(r.w, "|---------------|-------|-----------|-------------|----------|----------------|")

	for _, res := range results {
		metrics := simulation.ComputeMetrics(res)
		fmt.Fprintf(r.w, "| %s | %d | %.1f | %.1f | %.1f | %.1f%% |\n",
			res.ConfigName, metrics.Picks, metrics.MeanLatencyUs,
			metrics.MedianLatencyUs, metrics.P99LatencyUs, metrics.CacheHitRate)
	}
	fmt.Fprintln(r.w)
}

// WriteComparison writes a detailed comparison section.
func (r *MarkdownReport) WriteComparison(comp *analysis.ConfigComparison) {
	fmt.Fprintf(r.w, "## %s vs %s\n\n", comp.Config1, comp.Config2)

	fmt.Fprintln(r.w, "### Descriptive Statistics")
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, "| Metric | "+comp.Config1+" | "+comp.Config2+" |")
	fmt.Fprintln(r.w, "|--------|"+strings.Repeat("-", len(comp.Config1)+2)+"|"+strings.Repeat("-", len(comp.Config2)+2)+"|")
	fmt.Fprintf(r.w, "| Mean | %.1f | %.1f |\n", comp.Stats1.Mean, comp.Stats2.Mean)
	fmt.Fprintf(r.w, "| Median | %.1f | %.1f |\n", comp.Stats1.Median, comp.Stats2.Median)
	fmt.Fprintf(r.w, "| Std Dev | %.1f | %.1f |\n", comp.Stats1.StdDev, comp.Stats2.StdDev)
	fmt.Fprintf(r.w, "| P95 | %.1f | %.1f |\n", comp.Stats1.P95, comp.Stats2.P95)
	fmt.Fprintf(r.w, "| Min | %.0f | %.0f |\n", comp.Stats1.Min, comp.Stats2.Min)
	fmt.Fprintf(r.w, "| Max | %.0f | %.0f |\n", comp.Stats1.Max, comp.Stats2.Max)
	fmt.Fprintln(r.w)

	fmt.Fprintln(r.w, "### Statistical Analysis")
	fmt.Fprintln(r.w)
	fmt.Fprintf(r.w, "- **Mann-Whitney U:** %.2f (z=%.2f, p=%.4f)\n",
		comp.MannWhitney.U, comp.MannWhitney.Z, comp.MannWhitney.PValue)
	fmt.Fprintf(r.w, "- **Effect size (Cohen's d):** %.2f (%s)\n",
		comp.EffectSize.CohensD, comp.EffectSize.Interpretation)
	fmt.Fprintln(r.w)

	fmt.Fprintln(r.w, "### Conclusion")
	fmt.Fprintln(r.w)
	if comp.WinnerConfident {
		fmt.Fprintf(r.w, "**%s** shows statistically significant improvement over %s ",
			comp.Winner, otherConfig(comp.Winner, comp.Config1, comp.Config2))
		fmt.Fprintf(r.w, "(p < 0.05, effect size: %s).\n", comp.EffectSize.Interpretation)
	} else {
		fmt.Fprintln(r.w, "No statistically significant difference detected between configurations (p >= 0.05).")
	}
	fmt.Fprintln(r.w)
}

func otherConfig(winner, c1, c2 string) string {
	if winner == c1 {
		return c2
	}
	return c1
}

// WriteLatencyChart writes an ASCII latency distribution chart.
func (r *MarkdownReport) WriteLatencyChart(name string, latencies []float64) {
	fmt.Fprintf(r.w, "### %s Latency Distribution\n\n", name)
	fmt.Fprintln(r.w, "```")

	hist, bucketSize, minVal := makeHistogram(latencies, 10)
	maxCount := 0
	for _, count := range hist {
		if count > maxCount {
			maxCount = count
		}
	}

	width := 40
	for i, count := range hist {
		barLen := 0
		if maxCount > 0 {
			barLen = count * width / maxCount
		}
		bar := strings.Repeat("█", barLen)
		lo := minVal + float64(i)*bucketSize
		fmt.Fprintf(r.w, "%6.0f-%6.0fµs │ %s %d\n", lo, lo+bucketSize, bar, count)
	}

	fmt.Fprintln(r.w, "```")
	fmt.Fprintln(r.w)
}

func makeHistogram(data []float64, buckets int) (hist []int, bucketSize, minVal float64) {
	hist = make([]int, buckets)
	if len(data) == 0 {
		return hist, 1, 0
	}

	minVal, maxVal := data[0], data[0]
	for _, v := range data {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	bucketSize = (maxVal - minVal) / float64(buckets)
	for _, v := range data {
		bucket := int((v - minVal) / bucketSize)
		if bucket >= buckets {
			bucket = buckets - 1
		}
		hist[bucket]++
	}

	return hist, bucketSize, minVal
}

// WriteFooter writes the report footer.
func (r *MarkdownReport) WriteFooter() {
	fmt.Fprintln(r.w, "---")
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, "*Report generated by middlegame-bench*")
}
