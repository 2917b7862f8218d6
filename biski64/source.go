package biski64

import (
	"io"
	"math"
	"math/rand"
	randv2 "math/rand/v2"
)

var (
	_ randv2.Source = (*Rng)(nil)
	_ io.Reader     = (*Rng)(nil)
	_ rand.Source64 = (*LegacySource)(nil)
)

// NewRand returns a math/rand/v2 Rand driven by a biski64 generator seeded
// with seed.
func NewRand(seed uint64) *randv2.Rand {
	return randv2.New(New(seed))
}

// LegacySource adapts an Rng to the math/rand Source64 interface for code that
// still takes a *rand.Rand from the original package.
type LegacySource struct {
	rng Rng
}

// NewLegacySource returns a math/rand source seeded with seed.
func NewLegacySource(seed int64) *LegacySource {
	s := &LegacySource{}
	s.Seed(seed)
	return s
}

// Int63 returns a non-negative 63-bit value.
func (s *LegacySource) Int63() int64 {
	return int64(s.rng.Next() & math.MaxInt64)
}

// Uint64 returns a full 64-bit value.
func (s *LegacySource) Uint64() uint64 {
	return s.rng.Next()
}

// Seed reseeds the underlying generator.
func (s *LegacySource) Seed(seed int64) {
	s.rng.Seed(uint64(seed))
}
