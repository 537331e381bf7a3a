//go:build linux

package dupescan

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/sys/unix"
)

// sysBlockRoot is where the kernel exposes block devices by major:minor
var sysBlockRoot = "/sys/dev/block"

// detectDiskType reads the queue/rotational flag of the block device that
// holds path. Partitions keep their queue directory on the parent device.
func detectDiskType(path string) DiskType {
	var stat unix.Stat_t
	if err := unix.Stat(path, &stat); err != nil {
		return DiskUnknown
	}

	major := unix.Major(uint64(stat.Dev))
	minor := unix.Minor(uint64(stat.Dev))
	if major == 0 {
		// anonymous devices: tmpfs, overlayfs, network filesystems
		return DiskUnknown
	}

	device := fmt.Sprintf("%s/%d:%d", sysBlockRoot, major, minor)
	for _, candidate := range []string{
		device + "/queue/rotational",
		device + "/../queue/rotational",
	} {
		data, err := os.ReadFile(candidate)
		if err != nil {
			continue
		}
		switch strings.TrimSpace(string(data)) {
		case "0":
			return DiskSSD
		case "1":
			return DiskRotational
		}
	}
	return DiskUnknown
}
