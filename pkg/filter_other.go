//go:build !unix

package dupescan

import "os"

// fileIDOf reports no identity on platforms without inode numbers, which
// disables hard-link suppression there
func fileIDOf(info os.FileInfo) (FileID, bool) {
	return FileID{}, false
}
