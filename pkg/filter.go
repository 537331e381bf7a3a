package dupescan

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/gobwas/glob"
)

// FilterOptions is the immutable configuration of a Filter
type FilterOptions struct {
	MinSize   *int64 // inclusive, nil = unbounded
	MaxSize   *int64 // inclusive, nil = unbounded
	NameRegex string // matched against the base name only
	NameGlob  string // globset syntax ("*.{jpg,png}", "[!.]*"), base name only
	HardLinks bool   // true keeps every hard link; false (default) suppresses repeats
}

// Filter decides which walked entries take part in a scan. Everything but
// the seen-inode set is immutable after NewFilter.
type Filter struct {
	minSize   *int64
	maxSize   *int64
	regex     *regexp.Regexp
	glob      glob.Glob
	hardLinks bool

	seenMutex sync.Mutex
	seen      map[FileID]struct{}
}

// NewFilter compiles the name patterns. Malformed patterns are configuration
// errors and are reported before any scan starts.
func NewFilter(opts FilterOptions) (*Filter, error) {
	f := &Filter{
		minSize:   opts.MinSize,
		maxSize:   opts.MaxSize,
		hardLinks: opts.HardLinks,
		seen:      make(map[FileID]struct{}),
	}

	if opts.NameRegex != "" {
		pattern, err := regexp.Compile(opts.NameRegex)
		if err != nil {
			return nil, fmt.Errorf("invalid regex pattern: %s - %w", opts.NameRegex, err)
		}
		f.regex = pattern
	}

	if opts.NameGlob != "" {
		pattern, err := CompileNameGlob(opts.NameGlob)
		if err != nil {
			return nil, err
		}
		f.glob = pattern
	}

	if f.minSize != nil && f.maxSize != nil && *f.minSize > *f.maxSize {
		return nil, fmt.Errorf("minimum size %d exceeds maximum size %d", *f.minSize, *f.maxSize)
	}

	return f, nil
}

// CompileNameGlob compiles a base-name glob. Besides * ? and [...] classes
// it accepts {a,b} alternation.
func CompileNameGlob(pattern string) (glob.Glob, error) {
	compiled, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern: %s - %w", pattern, err)
	}
	return compiled, nil
}

// IsMatch reports whether the entry at path should be scanned. The inode
// test runs last so rejected paths never claim an inode.
func (f *Filter) IsMatch(path string, info os.FileInfo) bool {
	if !info.Mode().IsRegular() {
		return false
	}

	size := info.Size()
	if f.minSize != nil && size < *f.minSize {
		return false
	}
	if f.maxSize != nil && size > *f.maxSize {
		return false
	}

	if f.regex != nil || f.glob != nil {
		name := filepath.Base(path)
		if f.regex != nil && !f.regex.MatchString(name) {
			return false
		}
		if f.glob != nil && !f.glob.Match(name) {
			return false
		}
	}

	if f.hardLinks {
		return true
	}
	id, ok := fileIDOf(info)
	if !ok {
		return true
	}
	return f.checkAndSet(id)
}

// checkAndSet records id and reports whether it was new
func (f *Filter) checkAndSet(id FileID) bool {
	f.seenMutex.Lock()
	defer f.seenMutex.Unlock()

	if _, exists := f.seen[id]; exists {
		if IsDebugEnabled(DebugFilter) {
			VerboseLog(2, "filter: inode %s already seen, skipping", id)
		}
		return false
	}
	f.seen[id] = struct{}{}
	return true
}

// SeenCount returns the number of distinct inodes admitted so far
func (f *Filter) SeenCount() int {
	f.seenMutex.Lock()
	defer f.seenMutex.Unlock()
	return len(f.seen)
}
