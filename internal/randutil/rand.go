package randutil

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/fastrng/biski64"
)

// Streams returns n independent *rand.Rand values, one per partitioned
// biski64 stream of seed. Hand one to each worker; none may be shared.
func Streams(seed int64, n int) ([]*rand.Rand, error) {
	if n < 1 {
		return nil, fmt.Errorf("stream count must be at least 1, got %d", n)
	}
	out := make([]*rand.Rand, n)
	for i := range out {
		rng, err := biski64.NewStream(uint64(seed), int64(i), int64(n))
		if err != nil {
			return nil, err
		}
		out[i] = rand.New(rng)
	}
	return out, nil
}

// SeedChain derives n seeds from a master seed with SplitMix64, for runs that
// want independently seeded generators instead of partitioned streams.
func SeedChain(master int64, n int) ([]uint64, error) {
	if n < 0 {
		return nil, fmt.Errorf("seed count must not be negative, got %d", n)
	}
	sm := biski64.NewSplitMix64(uint64(master))
	seeds := make([]uint64, n)
	for i := range seeds {
		seeds[i] = sm.Next()
	}
	return seeds, nil
}
