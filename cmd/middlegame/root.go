package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/discochess/middlegame"
	"github.com/discochess/middlegame/internal/source"
	"github.com/discochess/middlegame/internal/source/filesource"
	"github.com/discochess/middlegame/internal/source/gcssource"
	"github.com/discochess/middlegame/internal/source/httpsource"
	"github.com/discochess/middlegame/internal/source/s3source"
)

var (
	// Global flags.
	verbose bool
	seed    int64
)

var rootCmd = &cobra.Command{
	Use:   "middlegame",
	Short: "Practice middlegame positions replayed from real games",
	Long: `Middlegame is a CLI tool for importing PGN game archives and
serving practice positions from the middle phase of real games.

Archives can live on the local filesystem, behind HTTP, or in cloud
object storage (gs:// and s3:// URLs). Compressed archives (.zst, .gz)
are decompressed by extension.

Examples:
  # Import archives and report what was parsed
  middlegame import games.pgn more-games.pgn.zst

  # Pick a practice position at random
  middlegame pick games.pgn

  # Replay one game to a given ply
  middlegame replay --game 0 --ply 20 games.pgn

  # Show bank statistics
  middlegame stats games.pgn`,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed (0 uses a time-based seed)")
}

// newLogger builds the CLI logger. Verbose mode gets development
// output; otherwise logging is off.
func newLogger() (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}

// openSource dispatches a path or URL to the matching archive backend.
func openSource(ctx context.Context, path string) (source.Source, error) {
	switch {
	case strings.HasPrefix(path, "http://"), strings.HasPrefix(path, "https://"):
		return httpsource.New(path, nil), nil
	case strings.HasPrefix(path, "gs://"):
		bucket, key, err := splitBucketURL(path)
		if err != nil {
			return nil, err
		}
		return gcssource.New(ctx, bucket, key, nil)
	case strings.HasPrefix(path, "s3://"):
		bucket, key, err := splitBucketURL(path)
		if err != nil {
			return nil, err
		}
		return s3source.New(ctx, bucket, key, nil)
	default:
		return filesource.New(path, nil), nil
	}
}

// splitBucketURL splits gs://bucket/key or s3://bucket/key into its parts.
func splitBucketURL(raw string) (bucket, key string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("parsing %q: %w", raw, err)
	}
	key = strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return "", "", fmt.Errorf("%q must look like %s://bucket/key", raw, u.Scheme)
	}
	return u.Host, key, nil
}

// loadBank creates a bank and imports every given archive into it.
func loadBank(ctx context.Context, paths []string, opts ...middlegame.Option) (*middlegame.Bank, middlegame.ImportReport, error) {
	logger, err := newLogger()
	if err != nil {
		return nil, middlegame.ImportReport{}, err
	}

	opts = append(opts, middlegame.WithLogger(logger))
	if seed != 0 {
		opts = append(opts, middlegame.WithRand(rand.New(rand.NewSource(seed))))
	}

	bank, err := middlegame.New(opts...)
	if err != nil {
		return nil, middlegame.ImportReport{}, fmt.Errorf("creating bank: %w", err)
	}

	var total middlegame.ImportReport
	for _, path := range paths {
		src, err := openSource(ctx, path)
		if err != nil {
			bank.Close()
			return nil, middlegame.ImportReport{}, err
		}
		report, err := bank.ImportSource(ctx, src)
		src.Close()
		if err != nil {
			bank.Close()
			return nil, middlegame.ImportReport{}, fmt.Errorf("importing %s: %w", path, err)
		}
		total.Games += report.Games
		total.Skipped += report.Skipped
		total.Moves += report.Moves
	}

	return bank, total, nil
}
