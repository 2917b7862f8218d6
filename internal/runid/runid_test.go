package runid

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/lox/fastrng/biski64"
)

func TestGenerate(t *testing.T) {
	id, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if len(id) != Length {
		t.Errorf("expected %d characters, got %d", Length, len(id))
	}
	if err := Validate(id); err != nil {
		t.Errorf("generated ID failed validation: %v", err)
	}
}

func TestGenerateUnique(t *testing.T) {
	gen := NewGenerator(nil, biski64.New(1))
	ids := make(map[string]bool)

	for i := 0; i < 1000; i++ {
		id, err := gen.Generate()
		if err != nil {
			t.Fatal(err)
		}
		if ids[id] {
			t.Errorf("duplicate ID generated: %s", id)
		}
		ids[id] = true
	}
}

func TestGenerateTimeSorted(t *testing.T) {
	clock := quartz.NewMock(t)
	clock.Set(time.UnixMilli(1_700_000_000_000))
	gen := NewGenerator(clock, biski64.New(2))

	var ids []string
	for i := 0; i < 10; i++ {
		id, err := gen.Generate()
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, id)
		clock.Advance(time.Millisecond)
	}

	for i := 1; i < len(ids); i++ {
		if strings.Compare(ids[i-1], ids[i]) >= 0 {
			t.Errorf("IDs not sorted: %s >= %s", ids[i-1], ids[i])
		}
	}
}

func TestTimeRoundTrip(t *testing.T) {
	clock := quartz.NewMock(t)
	want := time.UnixMilli(1_760_572_800_123)
	clock.Set(want)

	id, err := NewGenerator(clock, biski64.New(3)).Generate()
	if err != nil {
		t.Fatal(err)
	}
	got, err := Time(id)
	if err != nil {
		t.Fatalf("Time() error = %v", err)
	}
	if !got.Equal(want) {
		t.Errorf("Time() = %v, want %v", got, want)
	}
}

func TestGenerateDeterministicRandomBits(t *testing.T) {
	clock := quartz.NewMock(t)
	clock.Set(time.UnixMilli(0))

	a, _ := NewGenerator(clock, biski64.New(42)).Generate()
	b, _ := NewGenerator(clock, biski64.New(42)).Generate()
	c, _ := NewGenerator(clock, biski64.New(43)).Generate()

	if a != b {
		t.Errorf("same seed and time gave %s and %s", a, b)
	}
	if a == c {
		t.Errorf("different seeds gave the same ID %s", a)
	}
}

func TestVersionAndVariant(t *testing.T) {
	gen := NewGenerator(nil, biski64.New(4))
	for i := 0; i < 100; i++ {
		id, _ := gen.Generate()
		raw := decode(id)
		if raw[6]>>4 != 7 {
			t.Fatalf("version nibble = %x, want 7", raw[6]>>4)
		}
		if raw[8]>>6 != 2 {
			t.Fatalf("variant bits = %b, want 10", raw[8]>>6)
		}
	}
}

func TestEncodeDecode(t *testing.T) {
	var all [16]byte
	for i := range all {
		all[i] = 0xff
	}
	tests := []struct {
		name string
		in   [16]byte
		want string
	}{
		{"zero", [16]byte{}, "00000000000000000000000000"},
		{"ones", all, "7zzzzzzzzzzzzzzzzzzzzzzzzz"},
		{"low bit", [16]byte{15: 1}, "00000000000000000000000001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := encode(tt.in)
			if got != tt.want {
				t.Errorf("encode() = %s, want %s", got, tt.want)
			}
			if decode(got) != tt.in {
				t.Errorf("decode(%s) did not round trip", got)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"valid ID", "01h5n0et5q6mt3v7ms1234abcd", false},
		{"too short", "01h5n0et5q6mt3v7ms123", true},
		{"too long", "01h5n0et5q6mt3v7ms1234abcdef", true},
		{"first char too high", "81h5n0et5q6mt3v7ms1234abcd", true},
		{"invalid character", "01h5n0et5q6mt3v7ms1234abci", true},
		{"uppercase not allowed", "01H5N0ET5Q6MT3V7MS1234ABCD", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGenerateShortRead(t *testing.T) {
	gen := NewGenerator(nil, strings.NewReader("short"))
	if _, err := gen.Generate(); err == nil {
		t.Error("expected error from short random source")
	}
}

func TestGenerateReaderError(t *testing.T) {
	boom := errors.New("boom")
	gen := NewGenerator(nil, errReader{boom})
	if _, err := gen.Generate(); !errors.Is(err, boom) {
		t.Errorf("Generate() error = %v, want %v", err, boom)
	}
}

type errReader struct{ err error }

func (r errReader) Read([]byte) (int, error) { return 0, r.err }
