package main

import (
	"fmt"
	"io"
	"os"

	"github.com/lox/fastrng/biski64"
	"github.com/lox/fastrng/internal/config"
)

// Distributions understood by the sample command
const (
	DistUint64   = "u64"
	DistFloat    = "float"
	DistInt      = "int"
	DistCoin     = "coin"
	DistGaussian = "gauss"
	DistHex      = "hex"
)

// SampleCmd draws values from one distribution.
type SampleCmd struct {
	Dist      string  `arg:"" optional:"" default:"u64" enum:"u64,float,int,coin,gauss,hex" help:"Distribution (u64, float, int, coin, gauss, hex)"`
	Seed      *uint64 `help:"Seed (defaults to config, then the clock)"`
	Count     *int    `short:"n" help:"Number of values (defaults to config)"`
	Bound     *int64  `help:"Inclusive upper bound for int (defaults to config)"`
	HexLength *int    `name:"hex-length" help:"Characters per hex string (defaults to config)"`
	Stream    int64   `help:"Stream index when --streams is greater than 1"`
	Streams   int64   `help:"Total streams to partition the seed into"`
}

func (cmd *SampleCmd) Run(g *Globals) error {
	cfg, logger, err := g.setup()
	if err != nil {
		return err
	}

	seed := resolveSeed(cmd.Seed, cfg, logger)
	total := firstNonZero(cmd.Streams, int64(cfg.Generator.Streams), 1)
	rng, err := biski64.NewStream(seed, cmd.Stream, total)
	if err != nil {
		return fmt.Errorf("stream %d of %d: %w", cmd.Stream, total, err)
	}

	opts := cmd.options(cfg)
	logger.Debug().
		Str("dist", opts.Dist).
		Int("count", opts.Count).
		Int64("stream", cmd.Stream).
		Int64("streams", total).
		Msg("Sampling")

	return writeSamples(os.Stdout, rng, opts)
}

type sampleOptions struct {
	Dist      string
	Count     int
	Bound     int64
	HexLength int
}

// options resolves flags against the sample block. A flag set to zero is
// honoured, so Bounded(0) and HexString(0) are reachable from the command line.
func (cmd *SampleCmd) options(cfg *config.Config) sampleOptions {
	return sampleOptions{
		Dist:      cmd.Dist,
		Count:     valueOr(cmd.Count, cfg.Sample.Count),
		Bound:     valueOr(cmd.Bound, cfg.Sample.Bound),
		HexLength: valueOr(cmd.HexLength, cfg.Sample.HexLength),
	}
}

func writeSamples(w io.Writer, rng *biski64.Rng, opts sampleOptions) error {
	if opts.Count < 0 {
		return fmt.Errorf("count must not be negative, got %d", opts.Count)
	}

	for i := 0; i < opts.Count; i++ {
		switch opts.Dist {
		case DistUint64:
			fmt.Fprintln(w, rng.Next())
		case DistFloat:
			fmt.Fprintln(w, rng.Float64())
		case DistInt:
			v, err := rng.Bounded(opts.Bound)
			if err != nil {
				return fmt.Errorf("bound %d: %w", opts.Bound, err)
			}
			fmt.Fprintln(w, v)
		case DistCoin:
			fmt.Fprintln(w, rng.FlipCoin())
		case DistGaussian:
			fmt.Fprintln(w, rng.Gaussian())
		case DistHex:
			s, err := rng.HexString(opts.HexLength)
			if err != nil {
				return fmt.Errorf("hex length %d: %w", opts.HexLength, err)
			}
			fmt.Fprintln(w, s)
		default:
			return fmt.Errorf("unknown distribution %q", opts.Dist)
		}
	}
	return nil
}
