//go:build linux

package dupescan

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"golang.org/x/sys/unix"
)

// fakeBlockDevice points sysBlockRoot at a temp tree describing the device
// behind path, and returns false when path lives on an anonymous device
func fakeBlockDevice(t *testing.T, path, rotational string) bool {
	t.Helper()
	var stat unix.Stat_t
	if err := unix.Stat(path, &stat); err != nil {
		t.Fatalf("Failed to stat %s: %v", path, err)
	}
	major := unix.Major(uint64(stat.Dev))
	minor := unix.Minor(uint64(stat.Dev))
	if major == 0 {
		return false
	}

	root := t.TempDir()
	queue := filepath.Join(root, fmt.Sprintf("%d:%d", major, minor), "queue")
	if err := os.MkdirAll(queue, 0755); err != nil {
		t.Fatalf("Failed to create fake sysfs: %v", err)
	}
	if err := os.WriteFile(filepath.Join(queue, "rotational"), []byte(rotational+"\n"), 0644); err != nil {
		t.Fatalf("Failed to write fake sysfs: %v", err)
	}

	original := sysBlockRoot
	sysBlockRoot = root
	t.Cleanup(func() { sysBlockRoot = original })
	return true
}

func TestDetectDiskType(t *testing.T) {
	dir := t.TempDir()

	if !fakeBlockDevice(t, dir, "0") {
		t.Skip("temp directory is on an anonymous device")
	}
	if got := detectDiskType(dir); got != DiskSSD {
		t.Errorf("Expected ssd, got %s", got)
	}
	if got := DefaultWorkers([]string{dir}); got != runtime.NumCPU() {
		t.Errorf("Expected one worker per CPU on ssd, got %d", got)
	}

	fakeBlockDevice(t, dir, "1")
	if got := detectDiskType(dir); got != DiskRotational {
		t.Errorf("Expected rotational, got %s", got)
	}

	fakeBlockDevice(t, dir, "garbage")
	if got := detectDiskType(dir); got != DiskUnknown {
		t.Errorf("Expected unknown, got %s", got)
	}
}
