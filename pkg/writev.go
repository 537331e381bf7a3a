//go:build linux

package dupescan

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/google/vectorio"
)

// fallbackIOVMax is the conservative iovec limit per golang/go#58623
const fallbackIOVMax = 1024

// writev is the raw vectored write, replaceable in tests
var writev = vectorio.WritevRaw

// writevFile writes segments to file with writev, chunked to IOV_MAX.
// Short writes resume from the first unwritten byte and interrupted calls
// are retried. When the descriptor would block, the rest goes through
// file.Write, which waits on the runtime poller.
func writevFile(file *os.File, segments [][]byte) error {
	pending := nonEmpty(segments)
	for len(pending) > 0 {
		end := len(pending)
		if end > fallbackIOVMax {
			end = fallbackIOVMax
		}
		chunk := pending[:end]

		iovecs := make([]syscall.Iovec, len(chunk))
		for i, segment := range chunk {
			iovecs[i].Base = &segment[0]
			iovecs[i].SetLen(len(segment))
		}

		nw, err := writev(uintptr(file.Fd()), iovecs)
		if isErrno(err, syscall.EINTR) {
			continue
		}
		if isErrno(err, syscall.EAGAIN) {
			return writeRemaining(file, pending)
		}
		if err != nil {
			return fmt.Errorf("failed to write output with vectorio: %w", err)
		}
		if nw == 0 {
			return fmt.Errorf("failed to write output with vectorio: no progress")
		}
		pending = advanceSegments(pending, nw)
	}
	return nil
}

// isErrno matches both a wrapped syscall.Errno and vectorio's
// "writev failed with error: N" message
func isErrno(err error, errno syscall.Errno) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, errno) {
		return true
	}
	return strings.HasSuffix(err.Error(), ": "+strconv.Itoa(int(errno)))
}

// writeRemaining finishes a batch with ordinary writes
func writeRemaining(file *os.File, segments [][]byte) error {
	for _, segment := range segments {
		if _, err := file.Write(segment); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

// nonEmpty drops zero-length segments, which have no base address
func nonEmpty(segments [][]byte) [][]byte {
	kept := make([][]byte, 0, len(segments))
	for _, segment := range segments {
		if len(segment) > 0 {
			kept = append(kept, segment)
		}
	}
	return kept
}

// advanceSegments drops the first n bytes from segments
func advanceSegments(segments [][]byte, n int) [][]byte {
	for n > 0 && len(segments) > 0 {
		if n < len(segments[0]) {
			segments[0] = segments[0][n:]
			return segments
		}
		n -= len(segments[0])
		segments = segments[1:]
	}
	return segments
}
