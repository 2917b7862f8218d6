package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/lox/fastrng/biski64"
	"github.com/lox/fastrng/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestParser(t *testing.T, cli *CLI) *kong.Kong {
	t.Helper()
	parser, err := kong.New(cli,
		kong.Name("fastrng"),
		kong.Vars{"version": "test"},
		kong.Exit(func(int) { t.Fatal("unexpected exit") }),
	)
	require.NoError(t, err)
	return parser
}

func TestParseSample(t *testing.T) {
	var cli CLI
	ctx, err := newTestParser(t, &cli).Parse([]string{
		"--no-color", "sample", "int", "--bound", "6", "--seed", "12345", "-n", "3",
	})
	require.NoError(t, err)

	assert.Equal(t, "sample <dist>", ctx.Command())
	assert.True(t, cli.NoColor)
	assert.Equal(t, DistInt, cli.Sample.Dist)
	require.NotNil(t, cli.Sample.Bound)
	assert.Equal(t, int64(6), *cli.Sample.Bound)
	require.NotNil(t, cli.Sample.Count)
	assert.Equal(t, 3, *cli.Sample.Count)
	assert.Nil(t, cli.Sample.HexLength)
	require.NotNil(t, cli.Sample.Seed)
	assert.Equal(t, uint64(12345), *cli.Sample.Seed)
}

func TestParseSampleRejectsUnknownDistribution(t *testing.T) {
	var cli CLI
	_, err := newTestParser(t, &cli).Parse([]string{"sample", "poisson"})
	assert.Error(t, err)
}

func TestParseSeedDefaultsToUnset(t *testing.T) {
	var cli CLI
	_, err := newTestParser(t, &cli).Parse([]string{"dump", "--bytes", "1024"})
	require.NoError(t, err)
	assert.Nil(t, cli.Dump.Seed)
	assert.Equal(t, uint64(1024), cli.Dump.Bytes)
	assert.Equal(t, "fastrng.hcl", filepath.Base(cli.Config))
}

func TestParseBenchGenerators(t *testing.T) {
	var cli CLI
	_, err := newTestParser(t, &cli).Parse([]string{"bench", "-g", "biski64,pcg", "-n", "1000"})
	require.NoError(t, err)
	assert.Equal(t, []string{"biski64", "pcg"}, cli.Bench.Generators)
	assert.Equal(t, 1000, cli.Bench.Calls)
}

func TestSampleOptionsHonourExplicitZero(t *testing.T) {
	cfg := config.Default()

	tests := []struct {
		name string
		args []string
		want sampleOptions
	}{
		{
			name: "config defaults",
			args: []string{"sample", "int"},
			want: sampleOptions{Dist: DistInt, Count: cfg.Sample.Count, Bound: cfg.Sample.Bound, HexLength: cfg.Sample.HexLength},
		},
		{
			name: "zero bound",
			args: []string{"sample", "int", "--bound", "0", "-n", "4"},
			want: sampleOptions{Dist: DistInt, Count: 4, Bound: 0, HexLength: cfg.Sample.HexLength},
		},
		{
			name: "zero hex length",
			args: []string{"sample", "hex", "--hex-length", "0", "-n", "2"},
			want: sampleOptions{Dist: DistHex, Count: 2, Bound: cfg.Sample.Bound, HexLength: 0},
		},
		{
			name: "zero count",
			args: []string{"sample", "u64", "--count", "0"},
			want: sampleOptions{Dist: DistUint64, Count: 0, Bound: cfg.Sample.Bound, HexLength: cfg.Sample.HexLength},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cli CLI
			_, err := newTestParser(t, &cli).Parse(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cli.Sample.options(cfg))
		})
	}
}

func TestSampleZeroBoundWritesZeros(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeSamples(&buf, biski64.New(1), sampleOptions{Dist: DistInt, Count: 3, Bound: 0}))
	assert.Equal(t, []string{"0", "0", "0"}, strings.Fields(buf.String()))
}
