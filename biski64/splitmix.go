package biski64

const goldenGamma = 0x9e3779b97f4a7c15

// Expand advances an accumulator initialised to z by the golden-ratio gamma and
// returns the SplitMix64 finalisation of it. Feeding the output back in yields
// a chain of decorrelated values, which is how a single seed becomes a full
// generator state.
func Expand(z uint64) uint64 {
	return finalize(z + goldenGamma)
}

func finalize(z uint64) uint64 {
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// SplitMix64 is the classic SplitMix64 sequence: an accumulator stepped by the
// golden-ratio gamma and finalised on every call. The zero value is usable.
type SplitMix64 struct {
	state uint64
}

// NewSplitMix64 returns a SplitMix64 sequence starting at seed.
func NewSplitMix64(seed uint64) *SplitMix64 {
	return &SplitMix64{state: seed}
}

// Next advances the sequence and returns its next value.
func (s *SplitMix64) Next() uint64 {
	s.state += goldenGamma
	return finalize(s.state)
}

// Uint64 implements math/rand/v2.Source.
func (s *SplitMix64) Uint64() uint64 {
	return s.Next()
}
