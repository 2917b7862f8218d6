package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version kong.VersionFlag `short:"v" help:"Show version"`
	Demo    DemoCmd          `cmd:"" help:"Show single-stream and multi-stream output"`
	Sample  SampleCmd        `cmd:"" help:"Draw values from a distribution"`
	Streams StreamsCmd       `cmd:"" help:"Run partitioned streams in parallel and summarise them"`
	Stats   StatsCmd         `cmd:"" help:"Run uniformity and period checks"`
	Bench   BenchCmd         `cmd:"" help:"Time biski64 against other generators"`
	Dump    DumpCmd          `cmd:"" help:"Write raw output for external statistical test suites"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("fastrng"),
		kong.Description("biski64 pseudo-random number generator tools"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
