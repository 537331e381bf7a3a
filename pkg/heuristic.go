package dupescan

import "runtime"

// DiskType is the coarse storage class of the device holding a path
type DiskType int

const (
	DiskUnknown DiskType = iota
	DiskSSD
	DiskRotational
)

func (d DiskType) String() string {
	switch d {
	case DiskSSD:
		return "ssd"
	case DiskRotational:
		return "rotational"
	default:
		return "unknown"
	}
}

// DefaultWorkers sizes the worker pool from the storage behind the roots:
// all CPUs when SSDs are the majority, half of them otherwise to limit seek
// thrashing on spinning disks. Best effort only; it never fails.
func DefaultWorkers(paths []string) int {
	ssds, others := 0, 0
	for _, path := range paths {
		diskType := detectDiskType(path)
		if IsDebugEnabled(DebugDisk) {
			VerboseLog(2, "disk heuristic: %s is %s", path, diskType)
		}
		if diskType == DiskSSD {
			ssds++
		} else {
			others++
		}
	}

	cpus := runtime.NumCPU()
	if ssds > others {
		return cpus
	}
	if cpus/2 < 1 {
		return 1
	}
	return cpus / 2
}
