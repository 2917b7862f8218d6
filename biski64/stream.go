package biski64

import (
	"fmt"
	"math"
)

// NewStream returns the generator for stream index out of total streams that
// all share seed. Streams share mix and loopMix and differ only in the
// starting point of their Weyl sequence, which is spaced (2^64-1)/total steps
// from its neighbours. With total == 1 the result equals New(seed).
func NewStream(seed uint64, index, total int64) (*Rng, error) {
	r := &Rng{}
	if err := r.SeedStream(seed, index, total); err != nil {
		return nil, err
	}
	return r, nil
}

// SeedStream reseeds r as stream index of total. On invalid parameters it
// returns an error wrapping ErrInvalidArgument and leaves r untouched.
func (r *Rng) SeedStream(seed uint64, index, total int64) error {
	if err := validateStream(index, total); err != nil {
		return err
	}

	mix := Expand(seed)
	loopMix := Expand(mix)

	var fastLoop uint64
	if total == 1 {
		fastLoop = Expand(loopMix)
	} else {
		fastLoop = StreamOffset(index, total)
	}

	r.mix, r.loopMix, r.fastLoop = mix, loopMix, fastLoop
	r.warmup()
	return nil
}

// StreamOffset returns the initial fastLoop value of stream index out of
// total (total > 1). The product wraps modulo 2^64, which places stream i at
// step i*((2^64-1)/total) of the Weyl cycle that starts at zero.
func StreamOffset(index, total int64) uint64 {
	cyclesPerStream := uint64(math.MaxUint64) / uint64(total)
	return uint64(index) * cyclesPerStream * WeylIncrement
}

func validateStream(index, total int64) error {
	if total < 1 {
		return fmt.Errorf("%w: total streams must be at least 1, got %d", ErrInvalidArgument, total)
	}
	if index < 0 || index >= total {
		return fmt.Errorf("%w: stream index must be in [0, %d), got %d", ErrInvalidArgument, total, index)
	}
	return nil
}
