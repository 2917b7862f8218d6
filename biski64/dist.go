package biski64

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
)

// Float64 returns a uniform value in [0, 1) built from the top 53 bits of one
// output.
func (r *Rng) Float64() float64 {
	return Unit(r.Next())
}

// Unit maps a raw output to [0, 1) the way Float64 does, for callers that
// need both the raw value and its float.
func Unit(v uint64) float64 {
	return float64(v>>11) * (1.0 / (1 << 53))
}

// Bounded returns a uniform integer in [0, maxInclusive] with no modulo bias.
// Draws whose block of N = maxInclusive+1 values would run past the top of the
// 63-bit range are rejected and redrawn.
func (r *Rng) Bounded(maxInclusive int64) (int64, error) {
	if maxInclusive < 0 {
		return 0, fmt.Errorf("%w: bound must be non-negative, got %d", ErrInvalidArgument, maxInclusive)
	}
	if maxInclusive == 0 {
		return 0, nil
	}
	// N would be 2^63; every 63-bit value is already uniform over the range.
	if maxInclusive == math.MaxInt64 {
		return int64(r.Next() & math.MaxInt64), nil
	}

	n := maxInclusive + 1
	for {
		bits := int64(r.Next() & math.MaxInt64)
		val := bits % n
		if bits-val <= math.MaxInt64-(n-1) {
			return val, nil
		}
	}
}

// FlipCoin returns true when the low bit of one output is clear.
func (r *Rng) FlipCoin() bool {
	return r.Next()&1 == 0
}

// Gaussian returns a standard normal deviate (mean 0, stddev 1) using the
// polar Box-Muller method. Only the first of the two deviates produced per
// accepted pair is returned.
func (r *Rng) Gaussian() float64 {
	var v1, v2, s float64
	for {
		v1 = 2*r.Float64() - 1
		v2 = 2*r.Float64() - 1
		s = v1*v1 + v2*v2
		if s > 0 && s < 1 {
			break
		}
	}
	return v1 * math.Sqrt(-2*math.Log(s)/s)
}

// HexString returns length lowercase hex digits. Each output contributes 16
// digits, most significant first; the last one is truncated as needed.
func (r *Rng) HexString(length int) (string, error) {
	if length < 0 {
		return "", fmt.Errorf("%w: length must be non-negative, got %d", ErrInvalidArgument, length)
	}
	if length == 0 {
		return "", nil
	}

	words := (length + 15) / 16
	buf := make([]byte, words*16)
	var word [8]byte
	for i := 0; i < words; i++ {
		binary.BigEndian.PutUint64(word[:], r.Next())
		hex.Encode(buf[i*16:], word[:])
	}
	return string(buf[:length]), nil
}
