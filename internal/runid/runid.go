// Package runid generates time-ordered run identifiers: a UUIDv7 layout
// written as 26 characters of Crockford base32, so identifiers sort by the
// millisecond they were created.
package runid

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/coder/quartz"
)

// Crockford base32, lowercase, without i, l, o or u
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length of an encoded identifier
const Length = 26

// Generator creates identifiers from a clock and a source of random bytes.
type Generator struct {
	clock  quartz.Clock
	random io.Reader
}

// NewGenerator returns a generator. A nil clock uses the real clock and a nil
// random source uses crypto/rand.
func NewGenerator(clock quartz.Clock, random io.Reader) *Generator {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if random == nil {
		random = rand.Reader
	}
	return &Generator{clock: clock, random: random}
}

// New returns an identifier from the real clock and crypto/rand.
func New() (string, error) {
	return NewGenerator(nil, nil).Generate()
}

// Generate returns a new identifier.
func (g *Generator) Generate() (string, error) {
	var id [16]byte

	// 48-bit big-endian millisecond timestamp
	ms := uint64(g.clock.Now("runid").UnixMilli())
	for i := 0; i < 6; i++ {
		id[i] = byte(ms >> (40 - 8*i))
	}

	if _, err := io.ReadFull(g.random, id[6:]); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	id[6] = (id[6] & 0x0f) | 0x70 // version 7
	id[8] = (id[8] & 0x3f) | 0x80 // variant 10

	return encode(id), nil
}

// encode writes 128 bits as 26 base32 digits. The 130-bit field carries two
// leading zero bits, so the first digit is at most 7.
func encode(id [16]byte) string {
	var hi, lo uint64
	for i := 0; i < 8; i++ {
		hi = hi<<8 | uint64(id[i])
		lo = lo<<8 | uint64(id[i+8])
	}

	out := make([]byte, Length)
	for i := Length - 1; i >= 0; i-- {
		out[i] = alphabet[lo&0x1f]
		lo = lo>>5 | hi<<59
		hi >>= 5
	}
	return string(out)
}

// decode is the inverse of encode for identifiers that pass Validate.
func decode(id string) [16]byte {
	var hi, lo uint64
	for i := 0; i < Length; i++ {
		v := uint64(strings.IndexByte(alphabet, id[i]))
		hi = hi<<5 | lo>>59
		lo = lo<<5 | v
	}

	var out [16]byte
	for i := 7; i >= 0; i-- {
		out[i] = byte(hi)
		out[i+8] = byte(lo)
		hi >>= 8
		lo >>= 8
	}
	return out
}

// Validate checks length, alphabet and the leading digit.
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("run ID must be exactly %d characters, got %d", Length, len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("run ID first character must be 0-7, got %c", id[0])
	}
	for i := 0; i < len(id); i++ {
		if strings.IndexByte(alphabet, id[i]) < 0 {
			return fmt.Errorf("invalid character %c at position %d", id[i], i)
		}
	}
	return nil
}

// Time returns the creation time embedded in an identifier.
func Time(id string) (time.Time, error) {
	if err := Validate(id); err != nil {
		return time.Time{}, err
	}
	raw := decode(id)
	var ms int64
	for i := 0; i < 6; i++ {
		ms = ms<<8 | int64(raw[i])
	}
	return time.UnixMilli(ms), nil
}
