package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/lox/fastrng/biski64"
	"github.com/lox/fastrng/cmd/fastrng/shared"
	"github.com/lox/fastrng/internal/fileutil"
)

const dumpChunk = 1 << 16

// DumpCmd writes raw little-endian output for external test suites, e.g.
// `fastrng dump | RNG_test stdin64`.
type DumpCmd struct {
	Seed    *uint64 `help:"Seed (defaults to config, then the clock)"`
	Out     string  `short:"o" type:"path" help:"Write to this file instead of stdout"`
	Bytes   uint64  `short:"b" help:"Stop after this many bytes (0 = unlimited, stdout only)"`
	Stream  int64   `help:"Stream index when --streams is greater than 1"`
	Streams int64   `help:"Total streams to partition the seed into"`
}

func (cmd *DumpCmd) Run(g *Globals) error {
	cfg, logger, err := g.setup()
	if err != nil {
		return err
	}

	limit := cmd.Bytes
	if cmd.Out != "" && limit == 0 {
		return fmt.Errorf("--bytes is required when writing to a file")
	}

	seed := resolveSeed(cmd.Seed, cfg, logger)
	total := firstNonZero(cmd.Streams, int64(cfg.Generator.Streams), 1)
	rng, err := biski64.NewStream(seed, cmd.Stream, total)
	if err != nil {
		return fmt.Errorf("stream %d of %d: %w", cmd.Stream, total, err)
	}

	ctx := shared.SetupSignalHandlerWithLogger(logger)
	logger.Info().
		Uint64("seed", seed).
		Int64("stream", cmd.Stream).
		Uint64("limit", limit).
		Msg("Dumping output")

	if cmd.Out == "" {
		n, err := dump(ctx, os.Stdout, rng, limit)
		logger.Info().Uint64("bytes", n).Msg("Dump finished")
		return err
	}

	var n uint64
	err = fileutil.WriteAtomic(cmd.Out, 0o644, func(w io.Writer) error {
		var err error
		n, err = dump(ctx, w, rng, limit)
		return err
	})
	if err != nil {
		return err
	}
	logger.Info().Str("path", cmd.Out).Uint64("bytes", n).Msg("Dump finished")
	return nil
}

// dump copies generator output to w until limit bytes are written (0 means
// until the context ends or w fails). Output is the little-endian encoding of
// consecutive Next values.
func dump(ctx context.Context, w io.Writer, rng *biski64.Rng, limit uint64) (uint64, error) {
	buf := make([]byte, dumpChunk)
	var written uint64
	for limit == 0 || written < limit {
		if err := ctx.Err(); err != nil {
			if limit == 0 {
				return written, nil
			}
			return written, err
		}

		chunk := buf
		if limit > 0 && limit-written < uint64(len(chunk)) {
			chunk = chunk[:limit-written]
		}
		rng.Read(chunk)
		n, err := w.Write(chunk)
		written += uint64(n)
		if err != nil {
			return written, err
		}
	}
	return written, nil
}
