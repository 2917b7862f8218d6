package biski64

import (
	"encoding/binary"
	"math/bits"
)

const (
	// WeylIncrement is the odd constant added to fastLoop on every step.
	WeylIncrement = 0x9999999999999999

	warmupRounds = 16
)

// Rng holds the biski64 state. Copying an Rng forks the sequence: the copy and
// the original produce identical outputs from that point on.
type Rng struct {
	mix      uint64
	loopMix  uint64
	fastLoop uint64
}

// New returns a generator seeded with seed.
func New(seed uint64) *Rng {
	r := &Rng{}
	r.Seed(seed)
	return r
}

// NewFromBytes seeds a generator from the first 8 bytes of seed, read as a
// little-endian integer. The remaining bytes are ignored.
func NewFromBytes(seed [32]byte) *Rng {
	return New(binary.LittleEndian.Uint64(seed[:8]))
}

// Seed resets the generator for single-stream use.
func (r *Rng) Seed(seed uint64) {
	r.mix = Expand(seed)
	r.loopMix = Expand(r.mix)
	r.fastLoop = Expand(r.loopMix)
	r.warmup()
}

// warmup discards the first outputs so no structure from the expansion chain
// survives into the caller's sequence.
func (r *Rng) warmup() {
	for i := 0; i < warmupRounds; i++ {
		r.Next()
	}
}

// Next returns the next 64-bit output and advances the state.
func (r *Rng) Next() uint64 {
	output := r.mix + r.loopMix
	oldLoopMix := r.loopMix

	r.loopMix = r.fastLoop ^ r.mix
	r.mix = bits.RotateLeft64(r.mix, 16) + bits.RotateLeft64(oldLoopMix, 40)
	r.fastLoop += WeylIncrement

	return output
}

// Uint64 is Next under the name math/rand/v2.Source expects.
func (r *Rng) Uint64() uint64 {
	return r.Next()
}

// Uint32 returns the high 32 bits of one output.
func (r *Rng) Uint32() uint32 {
	return uint32(r.Next() >> 32)
}

// Read fills p with output bytes, eight per call to Next in little-endian
// order. A trailing partial word is truncated. It always returns len(p), nil.
func (r *Rng) Read(p []byte) (int, error) {
	n := len(p)
	for len(p) >= 8 {
		binary.LittleEndian.PutUint64(p, r.Next())
		p = p[8:]
	}
	if len(p) > 0 {
		var tail [8]byte
		binary.LittleEndian.PutUint64(tail[:], r.Next())
		copy(p, tail[:])
	}
	return n, nil
}
