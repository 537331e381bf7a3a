//go:build unix

package dupescan

import (
	"os"
	"syscall"
)

// fileIDOf extracts the (device, inode) pair from Lstat metadata
func fileIDOf(info os.FileInfo) (FileID, bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok || stat == nil {
		return FileID{}, false
	}
	return FileID{Device: uint64(stat.Dev), Inode: uint64(stat.Ino)}, true
}
