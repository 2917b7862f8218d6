package fileutil

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/lox/fastrng/biski64"
)

func TestWriteAtomicStreamsGeneratorOutput(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "stream.bin")

	rng := biski64.New(12345)
	err := WriteAtomic(testFile, 0o644, func(w io.Writer) error {
		chunk := make([]byte, 4096)
		for i := 0; i < 32; i++ {
			rng.Read(chunk)
			if _, err := w.Write(chunk); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WriteAtomic failed: %v", err)
	}

	data, err := os.ReadFile(testFile)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if len(data) != 1<<17 {
		t.Fatalf("Expected %d bytes, got %d", 1<<17, len(data))
	}

	want := make([]byte, 1<<17)
	biski64.New(12345).Read(want)
	if string(data) != string(want) {
		t.Error("File content does not match generator output")
	}

	info, err := os.Stat(testFile)
	if err != nil {
		t.Fatalf("Failed to stat file: %v", err)
	}
	if info.Mode().Perm() != 0o644 {
		t.Errorf("File permissions mismatch: got %o, want %o", info.Mode().Perm(), 0o644)
	}

	assertOnlyFile(t, tmpDir, "stream.bin")
}

func TestWriteAtomicOverwrite(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "report.csv")

	if err := WriteAtomic(testFile, 0o644, writeString("initial")); err != nil {
		t.Fatalf("Initial write failed: %v", err)
	}
	if err := WriteAtomic(testFile, 0o644, writeString("updated content")); err != nil {
		t.Fatalf("Overwrite failed: %v", err)
	}

	data, err := os.ReadFile(testFile)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(data) != "updated content" {
		t.Errorf("File content mismatch: got %q", string(data))
	}
}

func TestWriteAtomicWriterErrorLeavesNoFile(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "partial.bin")
	boom := errors.New("boom")

	err := WriteAtomic(testFile, 0o644, func(w io.Writer) error {
		if _, err := w.Write([]byte("half")); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Expected writer error, got %v", err)
	}

	assertOnlyFile(t, tmpDir, "")
}

func TestWriteAtomicInvalidDir(t *testing.T) {
	t.Parallel()

	err := WriteAtomic("/nonexistent/dir/test.bin", 0o644, writeString("data"))
	if err == nil {
		t.Error("Expected error when writing to non-existent directory")
	}
}

func writeString(s string) func(io.Writer) error {
	return func(w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	}
}

// assertOnlyFile fails if dir contains anything other than name (or anything
// at all when name is empty).
func assertOnlyFile(t *testing.T, dir, name string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read dir: %v", err)
	}
	for _, entry := range entries {
		if entry.Name() != name {
			t.Errorf("Unexpected file in directory: %s", entry.Name())
		}
	}
}
