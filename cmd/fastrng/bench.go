package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/fastrng/cmd/fastrng/shared"
	"github.com/lox/fastrng/internal/bench"
	"github.com/lox/fastrng/internal/fileutil"
)

// BenchCmd times biski64 against other generators.
type BenchCmd struct {
	Seed       *uint64  `help:"Seed (defaults to config, then the clock)"`
	Calls      int      `short:"n" help:"Calls per generator (defaults to config)"`
	Generators []string `short:"g" sep:"," help:"Generators to time (default all)"`
	Report     string   `type:"path" help:"Write results as CSV to this file"`
	List       bool     `help:"List available generators and exit"`
}

func (cmd *BenchCmd) Run(g *Globals) error {
	if cmd.List {
		for _, name := range bench.Names() {
			fmt.Println(name)
		}
		return nil
	}

	cfg, logger, err := g.setup()
	if err != nil {
		return err
	}

	names := cmd.Generators
	if len(names) == 0 {
		names = cfg.Bench.Generators
	}
	competitors, err := bench.Lookup(names)
	if err != nil {
		return err
	}

	level := log.InfoLevel
	if g.Debug {
		level = log.DebugLevel
	}
	progress := log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "bench",
	})

	seed := resolveSeed(cmd.Seed, cfg, logger)
	calls := firstNonZero(cmd.Calls, cfg.Bench.Calls)
	progress.Info("Starting", "generators", len(competitors), "calls", calls, "seed", seed)

	harness := bench.NewHarness(
		bench.WithLogger(logger),
		bench.WithCalls(calls),
		bench.WithProgress(func(r bench.Result) {
			progress.Info("Timed", "generator", r.Name, "ns/call", fmt.Sprintf("%.3f", r.NsPerCall()))
		}),
	)

	ctx := shared.SetupSignalHandlerWithLogger(logger)
	results, err := harness.Run(ctx, seed, competitors)
	if err != nil {
		return err
	}

	writeBenchTable(os.Stdout, results)

	if cmd.Report != "" {
		if err := fileutil.WriteAtomic(cmd.Report, 0o644, func(w io.Writer) error {
			return writeBenchCSV(w, g.runID, results)
		}); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		progress.Info("Report written", "path", cmd.Report)
	}
	return nil
}

func writeBenchTable(w io.Writer, results []bench.Result) {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			r.Name,
			strconv.Itoa(r.Calls),
			r.Elapsed.Round(time.Microsecond).String(),
			fmt.Sprintf("%.3f", r.NsPerCall()),
			fmt.Sprintf("%.0f", r.CallsPerSecond()),
		})
	}
	fmt.Fprintln(w, renderTable([]string{"Generator", "Calls", "Elapsed", "ns/call", "calls/s"}, rows))
}

func writeBenchCSV(w io.Writer, runID string, results []bench.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"run_id", "generator", "calls", "elapsed_ns", "ns_per_call", "checksum"}); err != nil {
		return err
	}
	for _, r := range results {
		if err := cw.Write([]string{
			runID,
			r.Name,
			strconv.Itoa(r.Calls),
			strconv.FormatInt(r.Elapsed.Nanoseconds(), 10),
			strconv.FormatFloat(r.NsPerCall(), 'f', 3, 64),
			fmt.Sprintf("%016x", r.Checksum),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
