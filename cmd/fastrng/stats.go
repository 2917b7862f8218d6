package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/lox/fastrng/biski64"
	"github.com/lox/fastrng/internal/randutil"
	"github.com/lox/fastrng/internal/statistics"
	"github.com/lox/fastrng/internal/weyl"
	"github.com/rs/zerolog"
)

// ErrChecksFailed is returned when any statistical check fails.
var ErrChecksFailed = errors.New("statistical checks failed")

// StatsCmd runs quick statistical sanity checks. It is not a replacement for
// PractRand or TestU01; use dump for those.
type StatsCmd struct {
	Seed    *uint64 `help:"Seed (defaults to config, then the clock)"`
	Draws   int     `short:"n" default:"1000000" help:"Draws per check"`
	Bins    int64   `default:"64" help:"Histogram bins for uniformity checks"`
	Trials  int     `default:"3" help:"Independently seeded trials of the Bounded check"`
	Streams int     `short:"s" help:"Streams to check through math/rand/v2 (defaults to config)"`
	Width   uint    `default:"20" help:"Word width for the enumerated Weyl period check"`
}

// check is one row of the stats report.
type check struct {
	Name   string
	Value  string
	Expect string
	Passed bool
}

func (cmd *StatsCmd) Run(g *Globals) error {
	cfg, logger, err := g.setup()
	if err != nil {
		return err
	}

	seed := resolveSeed(cmd.Seed, cfg, logger)
	opts := statsOptions{
		Seed:    seed,
		Draws:   cmd.Draws,
		Bins:    cmd.Bins,
		Trials:  cmd.Trials,
		Streams: firstNonZero(cmd.Streams, cfg.Generator.Streams),
		Width:   cmd.Width,
	}
	checks, err := runChecks(logger, opts)
	if err != nil {
		return err
	}
	return writeChecks(os.Stdout, checks)
}

type statsOptions struct {
	Seed    uint64
	Draws   int
	Bins    int64
	Trials  int
	Streams int
	Width   uint
}

func runChecks(logger zerolog.Logger, opts statsOptions) ([]check, error) {
	if opts.Draws < 1 {
		return nil, fmt.Errorf("draws must be at least 1, got %d", opts.Draws)
	}
	if opts.Bins < 2 {
		return nil, fmt.Errorf("bins must be at least 2, got %d", opts.Bins)
	}
	if opts.Trials < 0 {
		return nil, fmt.Errorf("trials must not be negative, got %d", opts.Trials)
	}

	var checks []check

	seeds, err := randutil.SeedChain(int64(opts.Seed), opts.Trials)
	if err != nil {
		return nil, err
	}
	for i, s := range seeds {
		rng := biski64.New(s)
		c, err := chiSquareCheck(fmt.Sprintf("bounded trial %d", i), opts.Bins, opts.Draws, func() (int64, error) {
			return rng.Bounded(opts.Bins - 1)
		})
		if err != nil {
			return nil, err
		}
		checks = append(checks, c)
	}

	streams, err := randutil.Streams(int64(opts.Seed), opts.Streams)
	if err != nil {
		return nil, err
	}
	for i, r := range streams {
		c, err := chiSquareCheck(fmt.Sprintf("rand/v2 stream %d", i), opts.Bins, opts.Draws, func() (int64, error) {
			return r.Int64N(opts.Bins), nil
		})
		if err != nil {
			return nil, err
		}
		checks = append(checks, c)
	}

	rng := biski64.New(opts.Seed)
	uniform := statistics.Summary{KeepValues: true}
	var gauss statistics.Summary
	for i := 0; i < opts.Draws; i++ {
		uniform.Add(rng.Float64())
		gauss.Add(rng.Gaussian())
	}
	if err := uniform.Validate(); err != nil {
		return nil, fmt.Errorf("float64 summary: %w", err)
	}
	if err := gauss.Validate(); err != nil {
		return nil, fmt.Errorf("gaussian summary: %w", err)
	}
	checks = append(checks,
		meanCheck("float64 mean", &uniform, 0.5),
		stddevCheck("float64 stddev", &uniform, math.Sqrt(1.0/12)),
		uniformQuantileCheck("float64 median", &uniform, 0.5),
		uniformQuantileCheck("float64 p99", &uniform, 0.99),
		meanCheck("gaussian mean", &gauss, 0),
		stddevCheck("gaussian stddev", &gauss, 1),
	)

	period, err := weyl.Period(opts.Width, biski64.WeylIncrement)
	if err != nil {
		return nil, err
	}
	checks = append(checks,
		check{
			Name:   fmt.Sprintf("weyl period at %d bits", opts.Width),
			Value:  strconv.FormatUint(period, 10),
			Expect: strconv.FormatUint(weyl.Mask(opts.Width)+1, 10),
			Passed: period == weyl.Mask(opts.Width)+1,
		},
		check{
			Name:   "weyl period at 64 bits",
			Value:  fullPeriodLabel(weyl.IsFullPeriod(64, biski64.WeylIncrement)),
			Expect: "2^64",
			Passed: weyl.IsFullPeriod(64, biski64.WeylIncrement),
		},
	)

	for _, c := range checks {
		logger.Debug().
			Str("check", c.Name).
			Str("value", c.Value).
			Bool("passed", c.Passed).
			Msg("Check complete")
	}
	return checks, nil
}

func chiSquareCheck(name string, bins int64, draws int, draw func() (int64, error)) (check, error) {
	h := statistics.NewHistogram(int(bins))
	for i := 0; i < draws; i++ {
		v, err := draw()
		if err != nil {
			return check{}, fmt.Errorf("%s: %w", name, err)
		}
		if err := h.Observe(v); err != nil {
			return check{}, fmt.Errorf("%s: %w", name, err)
		}
	}
	res, err := h.ChiSquareUniform(statistics.Z999)
	if err != nil {
		return check{}, fmt.Errorf("%s: %w", name, err)
	}
	return check{
		Name:   name + " chi-square",
		Value:  fmt.Sprintf("%.2f", res.Statistic),
		Expect: fmt.Sprintf("< %.2f (df %d)", res.Critical, res.DegreesOfFreedom),
		Passed: res.Passed(),
	}, nil
}

// meanCheck passes when want lies within 4 standard errors of the sample mean.
func meanCheck(name string, s *statistics.Summary, want float64) check {
	tol := 4 * s.StdError()
	return check{
		Name:   name,
		Value:  fmt.Sprintf("%.5f", s.Mean()),
		Expect: fmt.Sprintf("%.5f ± %.5f", want, tol),
		Passed: math.Abs(s.Mean()-want) <= tol,
	}
}

// stddevCheck allows a 1% relative error, ample for a million draws.
func stddevCheck(name string, s *statistics.Summary, want float64) check {
	tol := 0.01 * want
	return check{
		Name:   name,
		Value:  fmt.Sprintf("%.5f", s.StdDev()),
		Expect: fmt.Sprintf("%.5f ± %.5f", want, tol),
		Passed: math.Abs(s.StdDev()-want) <= tol,
	}
}

// uniformQuantileCheck compares the p-quantile of samples from U(0,1) with p.
// Its standard error is sqrt(p(1-p)/n) since the density is 1 everywhere.
func uniformQuantileCheck(name string, s *statistics.Summary, p float64) check {
	got := s.Percentile(p)
	tol := 4 * math.Sqrt(p*(1-p)/float64(s.Count))
	return check{
		Name:   name,
		Value:  fmt.Sprintf("%.5f", got),
		Expect: fmt.Sprintf("%.5f ± %.5f", p, tol),
		Passed: math.Abs(got-p) <= tol,
	}
}

func fullPeriodLabel(full bool) string {
	if full {
		return "2^64"
	}
	return "short"
}

func writeChecks(w io.Writer, checks []check) error {
	rows := make([][]string, 0, len(checks))
	failed := 0
	for _, c := range checks {
		rows = append(rows, []string{c.Name, c.Value, c.Expect, verdict(c.Passed)})
		if !c.Passed {
			failed++
		}
	}
	fmt.Fprintln(w, renderTable([]string{"Check", "Value", "Expected", "Result"}, rows))

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrChecksFailed, failed, len(checks))
	}
	return nil
}
