package dupescan

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"hash"
	"hash/fnv"
	"io"
	"os"
	"strings"

	"github.com/zeebo/blake3"
	"github.com/zeebo/xxh3"
)

// Hasher is a streaming checksum: write bytes incrementally, then Finish
// to obtain the hash value. A Hasher must not be reused after Finish.
type Hasher[H any] interface {
	io.Writer
	Finish() H
}

// Algorithm describes a hash algorithm producing values of type H
type Algorithm[H HashValue[H]] struct {
	Name string
	Bits int
	New  func() Hasher[H]
}

// Algorithm names
const (
	AlgorithmXXH3   = "xxh3"
	AlgorithmXXH128 = "xxh128"
	AlgorithmFNV1a  = "fnv1a"
	AlgorithmBLAKE3 = "blake3"
	AlgorithmSHA256 = "sha256"

	DefaultAlgorithm = AlgorithmXXH3
)

// Registered algorithms
var (
	XXH3 = Algorithm[Hash64]{
		Name: AlgorithmXXH3,
		Bits: 64,
		New:  func() Hasher[Hash64] { return &xxh3Hasher64{h: xxh3.New()} },
	}
	XXH128 = Algorithm[Hash128]{
		Name: AlgorithmXXH128,
		Bits: 128,
		New:  func() Hasher[Hash128] { return &xxh3Hasher128{h: xxh3.New()} },
	}
	FNV1a = Algorithm[Hash64]{
		Name: AlgorithmFNV1a,
		Bits: 64,
		New:  func() Hasher[Hash64] { return &fnvHasher{h: fnv.New64a()} },
	}
	BLAKE3 = Algorithm[Hash256]{
		Name: AlgorithmBLAKE3,
		Bits: 256,
		New:  func() Hasher[Hash256] { return &digestHasher{h: blake3.New()} },
	}
	SHA256 = Algorithm[Hash256]{
		Name: AlgorithmSHA256,
		Bits: 256,
		New:  func() Hasher[Hash256] { return &digestHasher{h: sha256.New()} },
	}
)

// AlgorithmNames returns the supported algorithm names, default first
func AlgorithmNames() []string {
	return []string{AlgorithmXXH3, AlgorithmXXH128, AlgorithmFNV1a, AlgorithmBLAKE3, AlgorithmSHA256}
}

// AlgorithmBits returns the output width of the named algorithm
func AlgorithmBits(name string) (int, error) {
	switch strings.ToLower(name) {
	case AlgorithmXXH3:
		return XXH3.Bits, nil
	case AlgorithmXXH128:
		return XXH128.Bits, nil
	case AlgorithmFNV1a:
		return FNV1a.Bits, nil
	case AlgorithmBLAKE3:
		return BLAKE3.Bits, nil
	case AlgorithmSHA256:
		return SHA256.Bits, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, name)
	}
}

// ValidateHashAlgorithm validates that a hash algorithm is supported
func ValidateHashAlgorithm(name string) error {
	if _, err := AlgorithmBits(name); err != nil {
		return fmt.Errorf("%w (supported: %s)", err, strings.Join(AlgorithmNames(), ", "))
	}
	return nil
}

type xxh3Hasher64 struct{ h *xxh3.Hasher }

func (x *xxh3Hasher64) Write(p []byte) (int, error) { return x.h.Write(p) }
func (x *xxh3Hasher64) Finish() Hash64             { return Hash64(x.h.Sum64()) }

type xxh3Hasher128 struct{ h *xxh3.Hasher }

func (x *xxh3Hasher128) Write(p []byte) (int, error) { return x.h.Write(p) }
func (x *xxh3Hasher128) Finish() Hash128            { return Hash128(x.h.Sum128().Bytes()) }

type fnvHasher struct{ h hash.Hash64 }

func (f *fnvHasher) Write(p []byte) (int, error) { return f.h.Write(p) }
func (f *fnvHasher) Finish() Hash64             { return Hash64(f.h.Sum64()) }

// digestHasher adapts any 32-byte hash.Hash
type digestHasher struct{ h hash.Hash }

func (d *digestHasher) Write(p []byte) (int, error) { return d.h.Write(p) }

func (d *digestHasher) Finish() Hash256 {
	var out Hash256
	copy(out[:], d.h.Sum(nil))
	return out
}

// PartialHash hashes at most the first BlockSize bytes of a file. Short
// files are hashed in their entirety, so the result equals FullHash for them.
func PartialHash[H HashValue[H]](alg Algorithm[H], filePath string) (H, error) {
	var zero H
	file, err := os.Open(filePath)
	if err != nil {
		return zero, fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer file.Close()

	var buffer [BlockSize]byte
	n, err := io.ReadFull(file, buffer[:])
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return zero, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	hasher := alg.New()
	hasher.Write(buffer[:n])
	return hasher.Finish(), nil
}

// FullHash streams the whole content of a file through the hasher
func FullHash[H HashValue[H]](alg Algorithm[H], filePath string) (H, error) {
	var zero H
	file, err := os.Open(filePath)
	if err != nil {
		return zero, fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer file.Close()

	hasher := alg.New()
	buffer := make([]byte, fullHashBufferSize)
	if _, err := io.CopyBuffer(hasher, onlyReader{file}, buffer); err != nil {
		return zero, fmt.Errorf("failed to hash file %s: %w", filePath, err)
	}
	return hasher.Finish(), nil
}

// onlyReader hides WriterTo/ReaderFrom so io.CopyBuffer honours our buffer size
type onlyReader struct{ io.Reader }

// HashBytes hashes an in-memory buffer
func HashBytes[H HashValue[H]](alg Algorithm[H], data []byte) H {
	hasher := alg.New()
	hasher.Write(data)
	return hasher.Finish()
}
