// Package main provides the middlegame-bench CLI tool for measuring
// pick latency with and without the replay cache.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/discochess/middlegame"
	"github.com/discochess/middlegame/benchmark/analysis"
	"github.com/discochess/middlegame/benchmark/reporting"
	"github.com/discochess/middlegame/benchmark/simulation"
)

var (
	gamesFile    string
	sessions     int
	picksPer     int
	outputFormat string
	outputFile   string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "middlegame-bench",
	Short: "Benchmark pick latency for the middlegame bank",
	Long: `middlegame-bench measures practice-pick latency using real game data.

It imports a PGN archive into two banks, one with the replay cache and
one without, runs identical practice sessions against both, and
compares the latency distributions.

Examples:
  # Run the benchmark
  middlegame-bench run --games games.pgn

  # Longer sessions, markdown report
  middlegame-bench run --games games.pgn --sessions 50 --picks 100 \
      --format markdown --output report.md`,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the benchmark",
	RunE:  runBenchmark,
}

func init() {
	runCmd.Flags().StringVarP(&gamesFile, "games", "g", "", "PGN file containing games (supports .zst, .gz)")
	runCmd.Flags().IntVar(&sessions, "sessions", 20, "sessions per configuration")
	runCmd.Flags().IntVar(&picksPer, "picks", 50, "picks per session")
	runCmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format: text, markdown")
	runCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default: stdout)")
	runCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	runCmd.MarkFlagRequired("games")

	rootCmd.AddCommand(runCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runBenchmark(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	configs := []struct {
		name string
		opts []middlegame.Option
	}{
		{name: "cached", opts: nil},
		{name: "uncached", opts: []middlegame.Option{middlegame.WithReplayCacheSize(0)}},
	}

	var results []*simulation.AggregateResult
	var games int
	for _, cfg := range configs {
		bank, err := middlegame.New(cfg.opts...)
		if err != nil {
			return fmt.Errorf("creating %s bank: %w", cfg.name, err)
		}

		report, err := bank.ImportFile(ctx, gamesFile)
		if err != nil {
			bank.Close()
			return fmt.Errorf("importing %s: %w", gamesFile, err)
		}
		games = report.Games

		if verbose {
			fmt.Fprintf(os.Stderr, "%s: imported %d games, running %d sessions x %d picks\n",
				cfg.name, report.Games, sessions, picksPer)
		}

		sim := simulation.NewSimulator(cfg.name, bank)
		agg, err := sim.RunSessions(ctx, sessions, picksPer)
		bank.Close()
		if err != nil {
			return fmt.Errorf("running %s sessions: %w", cfg.name, err)
		}
		results = append(results, agg)
	}

	comparison := analysis.CompareConfigs(
		results[0].ConfigName, results[0].LatenciesUs,
		results[1].ConfigName, results[1].LatenciesUs,
	)

	var output io.Writer = os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	switch outputFormat {
	case "markdown":
		return writeMarkdownReport(output, games, results, comparison)
	default:
		return writeTextReport(output, games, results, comparison)
	}
}

func writeTextReport(w io.Writer, games int, results []*simulation.AggregateResult, comp *analysis.ConfigComparison) error {
	fmt.Fprintf(w, "Middlegame Pick Latency Benchmark\n")
	fmt.Fprintf(w, "=================================\n\n")
	fmt.Fprintf(w, "Games: %d\n", games)
	fmt.Fprintf(w, "Sessions: %d x %d picks\n\n", sessions, picksPer)

	fmt.Fprintf(w, "Results:\n")
	fmt.Fprintf(w, "--------\n\n")

	for _, res := range results {
		metrics := simulation.ComputeMetrics(res)
		fmt.Fprintf(w, "%s:\n", res.ConfigName)
		fmt.Fprintf(w, "  Mean latency:   %.1fµs\n", metrics.MeanLatencyUs)
		fmt.Fprintf(w, "  Median latency: %.1fµs\n", metrics.MedianLatencyUs)
		fmt.Fprintf(w, "  P99 latency:    %.1fµs\n", metrics.P99LatencyUs)
		fmt.Fprintf(w, "  Cache hit rate: %.1f%%\n\n", metrics.CacheHitRate)
	}

	fmt.Fprintf(w, "Statistical Analysis:\n")
	fmt.Fprintf(w, "---------------------\n\n")
	fmt.Fprintln(w, comp.Summary())

	return nil
}

func writeMarkdownReport(w io.Writer, games int, results []*simulation.AggregateResult, comp *analysis.ConfigComparison) error {
	report := reporting.NewMarkdownReport(w)
	report.WriteHeader("Middlegame Pick Latency Benchmark")
	report.WriteMethodology(games, sessions, picksPer)
	report.WriteSummaryTable(results)
	report.WriteComparison(comp)
	for _, res := range results {
		report.WriteLatencyChart(res.ConfigName, res.LatenciesUs)
	}
	report.WriteFooter()
	return nil
}
