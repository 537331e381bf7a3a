package dupescan

import (
	"fmt"
	"os"
)

// FileID identifies the underlying file of a directory entry (device + inode)
type FileID struct {
	Device uint64
	Inode  uint64
}

// String returns a "device:inode" representation
func (f FileID) String() string {
	return fmt.Sprintf("%d:%d", f.Device, f.Inode)
}

// Entry is a file admitted by the Filter. It is created by a walker worker
// and handed to the collector by pointer; nothing mutates it afterwards.
type Entry struct {
	Path string
	info os.FileInfo // metadata captured at admission, may be nil
}

// NewEntry creates an entry with metadata already known
func NewEntry(path string, info os.FileInfo) *Entry {
	return &Entry{Path: path, info: info}
}

// String returns the path, so entries print as paths in every output format
func (e *Entry) String() string {
	return e.Path
}

// Metadata returns the captured metadata, fetching it (without following
// symlinks) when the entry was created without any
func (e *Entry) Metadata() (os.FileInfo, error) {
	if e.info != nil {
		return e.info, nil
	}
	return os.Lstat(e.Path)
}

// Size returns the size captured at admission, or the current size when no
// metadata was captured. Unreadable entries report zero.
func (e *Entry) Size() int64 {
	info, err := e.Metadata()
	if err != nil {
		return 0
	}
	return info.Size()
}

// CurrentSize re-stats the file, ignoring captured metadata
func (e *Entry) CurrentSize() (int64, error) {
	info, err := os.Lstat(e.Path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
