// Package weyl models the additive Weyl sequence at reduced word widths, so
// period claims that are impractical to enumerate at 64 bits can be checked
// exhaustively on narrower words and algebraically on the full one.
package weyl

import (
	"fmt"
	"math/bits"
)

// MaxEnumerableWidth bounds Period, which walks the whole cycle.
const MaxEnumerableWidth = 24

// Mask returns the all-ones value of a width-bit word.
func Mask(width uint) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}
	return 1<<width - 1
}

// Period steps x -> x + increment (mod 2^width) from zero until it returns and
// reports the number of steps taken.
func Period(width uint, increment uint64) (uint64, error) {
	if width == 0 || width > MaxEnumerableWidth {
		return 0, fmt.Errorf("width must be in [1, %d], got %d", MaxEnumerableWidth, width)
	}
	mask := Mask(width)
	inc := increment & mask

	var steps uint64
	x := uint64(0)
	for {
		x = (x + inc) & mask
		steps++
		if x == 0 {
			return steps, nil
		}
	}
}

// AlgebraicPeriod returns the period of the Weyl sequence on a width-bit word
// without enumeration: 2^width / gcd(increment, 2^width). The result for
// width 64 with an odd increment is 2^64, which does not fit in a uint64, so
// the period is returned as a base-2 exponent when it is a power of two.
func AlgebraicPeriod(width uint, increment uint64) (log2 uint, err error) {
	if width == 0 || width > 64 {
		return 0, fmt.Errorf("width must be in [1, 64], got %d", width)
	}
	inc := increment & Mask(width)
	if inc == 0 {
		return 0, nil
	}
	// gcd with a power of two is the lowest set bit of the increment.
	return width - uint(bits.TrailingZeros64(inc)), nil
}

// IsFullPeriod reports whether the increment visits every width-bit value
// before repeating, which holds exactly when it is odd.
func IsFullPeriod(width uint, increment uint64) bool {
	p, err := AlgebraicPeriod(width, increment)
	return err == nil && p == width
}
