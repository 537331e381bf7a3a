//go:build !linux

package dupescan

import (
	"bufio"
	"os"
)

func writevFile(file *os.File, segments [][]byte) error {
	return writeBuffered(file, func(bw *bufio.Writer) error {
		for _, segment := range segments {
			if _, err := bw.Write(segment); err != nil {
				return err
			}
		}
		return nil
	})
}
