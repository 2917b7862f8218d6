// Package streams runs work across partitioned biski64 streams, one goroutine
// and one generator per stream.
package streams

import (
	"context"
	"fmt"
	"sync"

	"github.com/lox/fastrng/biski64"
	"github.com/lox/fastrng/internal/statistics"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Config selects the streams to run.
type Config struct {
	Seed    uint64
	Streams int
	// Workers caps concurrently running streams; 0 means one goroutine per
	// stream.
	Workers int
}

// WorkFunc runs against one stream's generator. The generator belongs to the
// call and must not escape it.
type WorkFunc func(ctx context.Context, index int, rng *biski64.Rng) error

// Run creates every stream's generator and runs work on each concurrently.
// The first error cancels the remaining streams and is returned.
func Run(ctx context.Context, logger zerolog.Logger, cfg Config, work WorkFunc) error {
	if cfg.Streams < 1 {
		return fmt.Errorf("stream count must be at least 1, got %d", cfg.Streams)
	}

	g, ctx := errgroup.WithContext(ctx)
	if cfg.Workers > 0 {
		g.SetLimit(cfg.Workers)
	}

	for i := 0; i < cfg.Streams; i++ {
		rng, err := biski64.NewStream(cfg.Seed, int64(i), int64(cfg.Streams))
		if err != nil {
			return fmt.Errorf("failed to seed stream %d: %w", i, err)
		}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			logger.Debug().Int("stream", i).Msg("Stream started")
			if err := work(ctx, i, rng); err != nil {
				return fmt.Errorf("stream %d: %w", i, err)
			}
			logger.Debug().Int("stream", i).Msg("Stream finished")
			return nil
		})
	}

	return g.Wait()
}

// Result summarises the draws taken from one stream.
type Result struct {
	Stream int
	First  uint64
	Last   uint64
	Draws  int
	// Uniform summarises Float64 values derived from the same draws.
	Uniform statistics.Summary
}

// Sample draws n outputs from every stream concurrently and returns one
// Result per stream, ordered by stream index. Cancellation is checked every
// 4096 draws.
func Sample(ctx context.Context, logger zerolog.Logger, cfg Config, n int) ([]Result, error) {
	if cfg.Streams < 1 {
		return nil, fmt.Errorf("stream count must be at least 1, got %d", cfg.Streams)
	}
	if n < 1 {
		return nil, fmt.Errorf("draw count must be at least 1, got %d", n)
	}

	results := make([]Result, cfg.Streams)
	var mu sync.Mutex

	err := Run(ctx, logger, cfg, func(ctx context.Context, index int, rng *biski64.Rng) error {
		res := Result{Stream: index, Draws: n}
		for j := 0; j < n; j++ {
			if j&4095 == 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
			}
			v := rng.Next()
			if j == 0 {
				res.First = v
			}
			res.Last = v
			res.Uniform.Add(biski64.Unit(v))
		}
		if err := res.Uniform.Validate(); err != nil {
			return err
		}

		mu.Lock()
		results[index] = res
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int("streams", cfg.Streams).
		Int("draws_per_stream", n).
		Uint64("seed", cfg.Seed).
		Msg("Sampled streams")
	return results, nil
}

// DistinctFirst reports the first pair of streams whose opening outputs
// collide, or ok when all are distinct.
func DistinctFirst(results []Result) (a, b int, ok bool) {
	seen := make(map[uint64]int, len(results))
	for _, r := range results {
		if prev, dup := seen[r.First]; dup {
			return prev, r.Stream, false
		}
		seen[r.First] = r.Stream
	}
	return 0, 0, true
}
