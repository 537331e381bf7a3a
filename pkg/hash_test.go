package dupescan

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTestFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestHashKnownVectors(t *testing.T) {
	testCases := []struct {
		name     string
		got      string
		expected string
	}{
		{"fnv1a empty", HashBytes(FNV1a, nil).String(), "cbf29ce484222325"},
		{"fnv1a a", HashBytes(FNV1a, []byte("a")).String(), "af63dc4c8601ec8c"},
		{"sha256 empty", HashBytes(SHA256, nil).String(), "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{"blake3 empty", HashBytes(BLAKE3, nil).String(), "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262"},
	}

	for _, tc := range testCases {
		if tc.got != tc.expected {
			t.Errorf("%s: expected %s, got %s", tc.name, tc.expected, tc.got)
		}
	}
}

func TestHashStringWidth(t *testing.T) {
	if got := Hash64(0xab).String(); got != "00000000000000ab" {
		t.Errorf("Expected zero-padded hash, got %s", got)
	}
	if got := len(HashBytes(XXH128, []byte("x")).String()); got != 32 {
		t.Errorf("Expected 32 hex digits for xxh128, got %d", got)
	}
}

func TestAlgorithmBits(t *testing.T) {
	for _, name := range AlgorithmNames() {
		if err := ValidateHashAlgorithm(name); err != nil {
			t.Errorf("Expected %s to be valid, got %v", name, err)
		}
	}

	bits, err := AlgorithmBits("BLAKE3")
	if err != nil || bits != 256 {
		t.Errorf("Expected blake3 to be 256 bits, got %d (%v)", bits, err)
	}

	if _, err := AlgorithmBits("md5"); !errors.Is(err, ErrUnknownAlgorithm) {
		t.Errorf("Expected ErrUnknownAlgorithm for md5, got %v", err)
	}
}

func TestPartialHashSmallFileEqualsFullHash(t *testing.T) {
	dir := t.TempDir()

	for _, size := range []int{0, 1, 100, BlockSize - 1, BlockSize} {
		data := bytes.Repeat([]byte{'z'}, size)
		path := writeTestFile(t, dir, "small", data)

		partial, err := PartialHash(XXH3, path)
		if err != nil {
			t.Fatalf("Failed to compute partial hash: %v", err)
		}
		full, err := FullHash(XXH3, path)
		if err != nil {
			t.Fatalf("Failed to compute full hash: %v", err)
		}
		if partial != full {
			t.Errorf("Size %d: expected partial hash %s to equal full hash %s", size, partial, full)
		}
		if expected := HashBytes(XXH3, data); full != expected {
			t.Errorf("Size %d: expected file hash %s to equal in-memory hash %s", size, expected, full)
		}
	}
}

func TestPartialHashCoversFirstBlockOnly(t *testing.T) {
	dir := t.TempDir()

	prefix := bytes.Repeat([]byte{'p'}, BlockSize)
	first := writeTestFile(t, dir, "first", append(append([]byte{}, prefix...), []byte("tail one")...))
	second := writeTestFile(t, dir, "second", append(append([]byte{}, prefix...), []byte("tail two")...))

	firstPartial, _ := PartialHash(BLAKE3, first)
	secondPartial, _ := PartialHash(BLAKE3, second)
	if firstPartial != secondPartial {
		t.Errorf("Expected equal partial hashes for a shared first block")
	}

	firstFull, _ := FullHash(BLAKE3, first)
	secondFull, _ := FullHash(BLAKE3, second)
	if firstFull == secondFull {
		t.Errorf("Expected full hashes to differ when content differs after the first block")
	}
}

func TestHashMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")

	if _, err := PartialHash(FNV1a, missing); err == nil {
		t.Error("Expected error hashing a missing file")
	}
	if _, err := FullHash(FNV1a, missing); err == nil {
		t.Error("Expected error hashing a missing file")
	}
}
