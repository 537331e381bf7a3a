package dupescan

import (
	"fmt"
	"regexp"
)

// ScanOptions holds everything a scan needs besides the hash algorithm.
// Nil size and depth bounds mean unbounded; zero Workers and
// ChannelCapacity pick defaults.
type ScanOptions struct {
	Paths           []string
	MinSize         *int64
	MaxSize         *int64
	MaxDepth        *int
	NameRegex       string
	NameGlob        string
	Exclude         []string
	HardLinks       bool
	Workers         int
	ChannelCapacity int
}

// Validate reports configuration errors before any file is touched
func (o ScanOptions) Validate() error {
	if len(o.Paths) == 0 {
		return ErrNoRoots
	}
	if o.NameRegex != "" {
		if _, err := regexp.Compile(o.NameRegex); err != nil {
			return fmt.Errorf("invalid name regex %q: %w", o.NameRegex, err)
		}
	}
	if o.NameGlob != "" {
		if _, err := CompileNameGlob(o.NameGlob); err != nil {
			return err
		}
	}
	for _, pattern := range o.Exclude {
		if _, err := regexp.Compile(pattern); err != nil {
			return fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
	}
	if o.MinSize != nil && *o.MinSize < 0 {
		return fmt.Errorf("minimum size must not be negative: %d", *o.MinSize)
	}
	if o.MinSize != nil && o.MaxSize != nil && *o.MinSize > *o.MaxSize {
		return fmt.Errorf("minimum size %d is larger than maximum size %d", *o.MinSize, *o.MaxSize)
	}
	if o.MaxDepth != nil && *o.MaxDepth < 0 {
		return fmt.Errorf("depth must not be negative: %d", *o.MaxDepth)
	}
	if o.Workers < 0 {
		return fmt.Errorf("worker count must not be negative: %d", o.Workers)
	}
	if o.ChannelCapacity < 0 {
		return fmt.Errorf("channel capacity must not be negative: %d", o.ChannelCapacity)
	}
	return nil
}

func (o ScanOptions) filterOptions() FilterOptions {
	return FilterOptions{
		MinSize:   o.MinSize,
		MaxSize:   o.MaxSize,
		NameRegex: o.NameRegex,
		NameGlob:  o.NameGlob,
		HardLinks: o.HardLinks,
	}
}

func (o ScanOptions) channelCapacity() int {
	if o.ChannelCapacity > 0 {
		return o.ChannelCapacity
	}
	return DefaultChannelCapacity
}

func (o ScanOptions) workers(roots []scanRoot) int {
	if o.Workers > 0 {
		return o.Workers
	}
	paths := make([]string, len(roots))
	for i, root := range roots {
		paths[i] = root.Canonical
	}
	workers := DefaultWorkers(paths)
	VerboseLog(1, "using %d workers", workers)
	return workers
}

// scanState is the validated, resolved form of ScanOptions
type scanState struct {
	roots    []scanRoot
	filter   *Filter
	exclude  *ExcludeList
	maxDepth *int
	workers  int
	capacity int
}

func prepareScan(opts ScanOptions) (*scanState, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	filter, err := NewFilter(opts.filterOptions())
	if err != nil {
		return nil, err
	}
	exclude, err := NewExcludeList(opts.Exclude)
	if err != nil {
		return nil, err
	}
	roots, err := resolveRoots(opts.Paths)
	if err != nil {
		return nil, err
	}
	return &scanState{
		roots:    roots,
		filter:   filter,
		exclude:  exclude,
		maxDepth: opts.MaxDepth,
		workers:  opts.workers(roots),
		capacity: opts.channelCapacity(),
	}, nil
}

// FindDuplicatesPartial runs only the first pass and returns files grouped
// by the hash of their first block
func FindDuplicatesPartial[H HashValue[H]](opts ScanOptions, alg Algorithm[H]) (*Bag[H, *Entry], error) {
	state, err := prepareScan(opts)
	if err != nil {
		return nil, err
	}
	return findDupesPartial(state, alg), nil
}

// Scan finds every admitted file under opts.Paths and groups them by
// full-content hash. Only configuration problems are returned as errors;
// unreadable files and directories are logged and skipped.
func Scan[H HashValue[H]](opts ScanOptions, alg Algorithm[H]) (*Bag[H, *Entry], error) {
	defer VerboseEnter()()

	state, err := prepareScan(opts)
	if err != nil {
		return nil, err
	}
	VerboseLog(1, "scanning %d roots with %s", len(state.roots), alg.Name)

	partial := findDupesPartial(state, alg)
	return Dedupe(alg, partial, state.workers, state.capacity), nil
}
