package randutil

import (
	"testing"

	"github.com/lox/fastrng/biski64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreams(t *testing.T) {
	streams, err := Streams(67890, 4)
	require.NoError(t, err)
	require.Len(t, streams, 4)

	for i, r := range streams {
		ref, err := biski64.NewStream(67890, int64(i), 4)
		require.NoError(t, err)
		assert.Equal(t, ref.Next(), r.Uint64())
	}

	_, err = Streams(1, 0)
	assert.Error(t, err)
}

func TestSeedChain(t *testing.T) {
	seeds, err := SeedChain(0, 3)
	require.NoError(t, err)
	require.Len(t, seeds, 3)
	assert.Equal(t, biski64.Expand(0), seeds[0])
	assert.NotEqual(t, seeds[0], seeds[1])

	again, err := SeedChain(0, 3)
	require.NoError(t, err)
	assert.Equal(t, seeds, again)
}

func TestSeedChainCounts(t *testing.T) {
	seeds, err := SeedChain(7, 0)
	require.NoError(t, err)
	assert.Empty(t, seeds)

	_, err = SeedChain(7, -1)
	assert.Error(t, err)
}
