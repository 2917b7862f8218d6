package bench

import (
	"encoding/binary"
	"fmt"
	"math/bits"
	randv2 "math/rand/v2"
	"sort"
	"strings"

	"github.com/lox/fastrng/biski64"
)

// Generator is the only thing the harness needs from a generator under test.
type Generator interface {
	Uint64() uint64
}

// Competitor names a generator and how to seed it.
type Competitor struct {
	Name string
	New  func(seed uint64) Generator
}

var competitors = map[string]Competitor{
	"biski64": {Name: "biski64", New: func(seed uint64) Generator {
		return biski64.New(seed)
	}},
	"splitmix64": {Name: "splitmix64", New: func(seed uint64) Generator {
		return biski64.NewSplitMix64(seed)
	}},
	"pcg": {Name: "pcg", New: func(seed uint64) Generator {
		sm := biski64.NewSplitMix64(seed)
		return randv2.NewPCG(sm.Next(), sm.Next())
	}},
	"chacha8": {Name: "chacha8", New: func(seed uint64) Generator {
		sm := biski64.NewSplitMix64(seed)
		var key [32]byte
		for i := 0; i < 4; i++ {
			binary.LittleEndian.PutUint64(key[i*8:], sm.Next())
		}
		return randv2.NewChaCha8(key)
	}},
	"pcg32": {Name: "pcg32", New: func(seed uint64) Generator {
		return NewPCG32(seed)
	}},
	"xoroshiro128+": {Name: "xoroshiro128+", New: func(seed uint64) Generator {
		return NewXoroshiro128Plus(seed)
	}},
}

// Names returns every registered competitor name, sorted.
func Names() []string {
	names := make([]string, 0, len(competitors))
	for name := range competitors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup resolves competitor names. An empty list selects all of them.
func Lookup(names []string) ([]Competitor, error) {
	if len(names) == 0 {
		names = Names()
	}
	out := make([]Competitor, 0, len(names))
	for _, name := range names {
		c, ok := competitors[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("unknown generator %q (available: %s)", name, strings.Join(Names(), ", "))
		}
		out = append(out, c)
	}
	return out, nil
}

// PCG32 is PCG-XSH-RR with 64-bit state and 32-bit output. Uint64 joins two
// outputs, high word first.
type PCG32 struct {
	state uint64
}

// NewPCG32 creates a PCG32 seeded with seed
func NewPCG32(seed uint64) *PCG32 {
	return &PCG32{state: seed*2 + 1}
}

// Uint32 generates a random uint32
func (r *PCG32) Uint32() uint32 {
	oldstate := r.state
	r.state = oldstate*6364136223846793005 + 1442695040888963407
	xorshifted := uint32(((oldstate >> 18) ^ oldstate) >> 27)
	rot := uint32(oldstate >> 59)
	return (xorshifted >> rot) | (xorshifted << ((-rot) & 31))
}

func (r *PCG32) Uint64() uint64 {
	hi := uint64(r.Uint32())
	lo := uint64(r.Uint32())
	return hi<<32 | lo
}

// Xoroshiro128Plus is Blackman and Vigna's xoroshiro128+ (a=24, b=16, c=37).
type Xoroshiro128Plus struct {
	state [2]uint64
}

// NewXoroshiro128Plus seeds both state words from a SplitMix64 sequence,
// which never yields the forbidden all-zero state in two consecutive draws.
func NewXoroshiro128Plus(seed uint64) *Xoroshiro128Plus {
	sm := biski64.NewSplitMix64(seed)
	return &Xoroshiro128Plus{state: [2]uint64{sm.Next(), sm.Next()}}
}

func (x *Xoroshiro128Plus) Uint64() uint64 {
	s0, s1 := x.state[0], x.state[1]
	result := s0 + s1

	s1 ^= s0
	x.state[0] = bits.RotateLeft64(s0, 24) ^ s1 ^ (s1 << 16)
	x.state[1] = bits.RotateLeft64(s1, 37)

	return result
}
