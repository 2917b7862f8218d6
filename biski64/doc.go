// Package biski64 implements the biski64 pseudo-random number generator.
//
// biski64 is a fast, non-cryptographic generator with a guaranteed minimum
// period of 2^64. Its state is three 64-bit words: mix and loopMix are
// scrambled on every call, while fastLoop is a Weyl sequence advanced by the
// odd constant 0x9999999999999999. The Weyl component alone sets the period.
//
// An Rng is a plain value and is not safe for concurrent use. Parallel code
// should give every goroutine its own generator created with NewStream, which
// spaces the Weyl component of each stream evenly around the 2^64 cycle:
//
//	for i := 0; i < workers; i++ {
//		rng, err := biski64.NewStream(seed, int64(i), int64(workers))
//		...
//	}
//
// The generator is not suitable for cryptographic use.
package biski64
