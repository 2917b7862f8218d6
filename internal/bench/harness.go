// Package bench times generators against each other. Every run owns its
// generators; nothing is shared between runs or competitors.
package bench

import (
	"context"
	"fmt"
	"time"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"
)

const (
	defaultCalls = 100_000_000
	batchSize    = 1000
)

// Result is the timing of one competitor.
type Result struct {
	Name    string
	Calls   int
	Elapsed time.Duration
	// Checksum folds every output so the calls cannot be optimised away; it
	// also makes runs comparable across machines for a fixed seed.
	Checksum uint64
}

// NsPerCall returns the mean cost of one call in nanoseconds.
func (r Result) NsPerCall() float64 {
	if r.Calls == 0 {
		return 0
	}
	return float64(r.Elapsed.Nanoseconds()) / float64(r.Calls)
}

// CallsPerSecond returns throughput.
func (r Result) CallsPerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Calls) / r.Elapsed.Seconds()
}

// Option configures a Harness
type Option func(*Harness)

// WithClock sets the clock used for timing
func WithClock(clock quartz.Clock) Option {
	return func(h *Harness) {
		h.clock = clock
	}
}

// WithLogger sets the logger
func WithLogger(logger zerolog.Logger) Option {
	return func(h *Harness) {
		h.logger = logger
	}
}

// WithCalls sets the number of calls timed per competitor
func WithCalls(calls int) Option {
	return func(h *Harness) {
		h.calls = calls
	}
}

// WithProgress registers a callback invoked after each competitor finishes
func WithProgress(fn func(Result)) Option {
	return func(h *Harness) {
		h.progress = fn
	}
}

// Harness runs timed loops of Uint64 calls.
type Harness struct {
	clock    quartz.Clock
	logger   zerolog.Logger
	calls    int
	progress func(Result)
}

// NewHarness returns a harness using the real clock unless overridden.
func NewHarness(opts ...Option) *Harness {
	h := &Harness{
		clock:  quartz.NewReal(),
		logger: zerolog.Nop(),
		calls:  defaultCalls,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run times each competitor in turn, seeding a fresh generator from seed.
// Cancellation is checked between batches.
func (h *Harness) Run(ctx context.Context, seed uint64, competitors []Competitor) ([]Result, error) {
	if h.calls < 1 {
		return nil, fmt.Errorf("call count must be at least 1, got %d", h.calls)
	}

	results := make([]Result, 0, len(competitors))
	for _, c := range competitors {
		res, err := h.time(ctx, seed, c)
		if err != nil {
			return results, err
		}
		h.logger.Debug().
			Str("generator", res.Name).
			Int("calls", res.Calls).
			Dur("elapsed", res.Elapsed).
			Float64("ns_per_call", res.NsPerCall()).
			Msg("Benchmark complete")
		if h.progress != nil {
			h.progress(res)
		}
		results = append(results, res)
	}
	return results, nil
}

func (h *Harness) time(ctx context.Context, seed uint64, c Competitor) (Result, error) {
	gen := c.New(seed)
	var checksum uint64

	start := h.clock.Now("bench", c.Name)
	remaining := h.calls
	for remaining > 0 {
		if err := ctx.Err(); err != nil {
			return Result{}, fmt.Errorf("benchmark %s interrupted: %w", c.Name, err)
		}
		n := min(batchSize, remaining)
		for i := 0; i < n; i++ {
			checksum ^= gen.Uint64()
		}
		remaining -= n
	}
	elapsed := h.clock.Since(start, "bench", c.Name)

	return Result{Name: c.Name, Calls: h.calls, Elapsed: elapsed, Checksum: checksum}, nil
}
