package dupescan

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
)

// ParseHumanSize parses human-readable byte sizes such as "512", "4K",
// "2MB" or "1GiB". Decimal suffixes (K, KB, M, MB) are powers of 1000 and
// binary suffixes (Ki, KiB, Mi, MiB) powers of 1024. Zero is allowed.
func ParseHumanSize(sizeStr string) (int64, error) {
	sizeStr = strings.TrimSpace(sizeStr)
	if sizeStr == "" {
		return 0, fmt.Errorf("empty size string")
	}

	size, err := humanize.ParseBytes(sizeStr)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", sizeStr, err)
	}
	if size > math.MaxInt64 {
		return 0, fmt.Errorf("size too large: %s", sizeStr)
	}
	return int64(size), nil
}

// FormatHumanSize renders a byte count with binary units ("4.0 KiB")
func FormatHumanSize(size int64) string {
	if size < 0 {
		return "-" + humanize.IBytes(uint64(-size))
	}
	return humanize.IBytes(uint64(size))
}
