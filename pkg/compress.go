package dupescan

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression is the stream compression applied to an output file
type Compression int

const (
	CompressionNone Compression = iota
	CompressionZstd
	CompressionLZ4
)

func (c Compression) String() string {
	switch c {
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return "none"
	}
}

// CompressionForPath picks the compression from the file extension
func CompressionForPath(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst", ".zstd":
		return CompressionZstd
	case ".lz4":
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

// compressedFile closes the compressor before the file underneath it
type compressedFile struct {
	io.WriteCloser
	file *os.File
}

func (c *compressedFile) Close() error {
	return errors.Join(c.WriteCloser.Close(), c.file.Close())
}

// CreateOutput creates path for writing. ".zst" and ".lz4" outputs are
// compressed; anything else returns the *os.File itself.
func CreateOutput(path string) (io.WriteCloser, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %s: %w", path, err)
	}

	compression := CompressionForPath(path)
	VerboseLog(2, "writing output to %s (compression: %s)", path, compression)

	switch compression {
	case CompressionZstd:
		encoder, err := zstd.NewWriter(file, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to create zstd writer: %w", err)
		}
		return &compressedFile{WriteCloser: encoder, file: file}, nil
	case CompressionLZ4:
		return &compressedFile{WriteCloser: lz4.NewWriter(file), file: file}, nil
	default:
		return file, nil
	}
}
