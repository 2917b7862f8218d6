package weyl

import (
	"testing"

	"github.com/lox/fastrng/biski64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodOfBiskiIncrementAtReducedWidths(t *testing.T) {
	for width := uint(1); width <= 20; width++ {
		p, err := Period(width, biski64.WeylIncrement)
		require.NoError(t, err)
		assert.Equalf(t, uint64(1)<<width, p, "width %d", width)
	}
}

func TestPeriodMatchesAlgebra(t *testing.T) {
	const width = 12
	for _, inc := range []uint64{1, 2, 3, 4, 6, 8, 12, 0x999, 0x998, 0x800} {
		p, err := Period(width, inc)
		require.NoError(t, err)
		log2, err := AlgebraicPeriod(width, inc)
		require.NoError(t, err)
		assert.Equalf(t, uint64(1)<<log2, p, "increment %#x", inc)
	}
}

func TestFullWidthIncrementIsFullPeriod(t *testing.T) {
	// The odd increment gives period 2^64 at full width.
	log2, err := AlgebraicPeriod(64, biski64.WeylIncrement)
	require.NoError(t, err)
	assert.Equal(t, uint(64), log2)
	assert.True(t, IsFullPeriod(64, biski64.WeylIncrement))
	assert.False(t, IsFullPeriod(64, biski64.WeylIncrement-1))
}

func TestPeriodInvalidWidth(t *testing.T) {
	_, err := Period(0, 1)
	assert.Error(t, err)
	_, err = Period(MaxEnumerableWidth+1, 1)
	assert.Error(t, err)
	_, err = AlgebraicPeriod(65, 1)
	assert.Error(t, err)
}

func TestZeroIncrementNeverMoves(t *testing.T) {
	p, err := Period(8, 0x100)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), p)
	log2, err := AlgebraicPeriod(8, 0x100)
	require.NoError(t, err)
	assert.Zero(t, log2)
}
