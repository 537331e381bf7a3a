package dupescan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// scanRoot is a root path as the user spelled it plus its canonical form
type scanRoot struct {
	Path      string
	Canonical string
}

// scannedFile is one (hash, entry) pair travelling from a worker to the collector
type scannedFile[H HashValue[H]] struct {
	Hash  H
	Entry *Entry
}

// dirJob is a directory waiting to be read
type dirJob struct {
	Path  string
	Depth int
}

// ============================================================================
// ROOT RESOLUTION
// ============================================================================

// resolveRoots canonicalises the requested paths and drops duplicates, so a
// directory reached through two spellings (or nested under another root) is
// only walked once. Unresolvable paths are logged and skipped.
func resolveRoots(paths []string) ([]scanRoot, error) {
	defer VerboseEnter()()

	seen := make(map[string]bool)
	var roots []scanRoot
	for _, inputPath := range paths {
		absPath, err := filepath.Abs(inputPath)
		if err != nil {
			LogError(err, "couldn't resolve root %s", inputPath)
			continue
		}
		canonical, err := filepath.EvalSymlinks(absPath)
		if err != nil {
			LogError(err, "couldn't resolve root %s", inputPath)
			continue
		}
		if seen[canonical] {
			if IsDebugEnabled(DebugScan) {
				VerboseLog(2, "resolveRoots: %s is the same directory as an earlier root", inputPath)
			}
			continue
		}
		seen[canonical] = true
		roots = append(roots, scanRoot{Path: inputPath, Canonical: canonical})
	}

	if len(roots) == 0 {
		return nil, fmt.Errorf("%w among %v", ErrNoRoots, paths)
	}
	return deduplicateRoots(roots), nil
}

// deduplicateRoots sorts roots and removes any that live under another root
// Example: ["/home/user/docs", "/home/user/docs/sub", "/home/user/photos"]
//
//	-> ["/home/user/docs", "/home/user/photos"]
func deduplicateRoots(roots []scanRoot) []scanRoot {
	if len(roots) <= 1 {
		return roots
	}

	// Parents sort before their children
	sort.Slice(roots, func(i, j int) bool {
		return roots[i].Canonical < roots[j].Canonical
	})

	var deduplicated []scanRoot
	for _, root := range roots {
		isRedundant := false
		for _, kept := range deduplicated {
			if isPathUnder(root.Canonical, kept.Canonical) {
				isRedundant = true
				break
			}
		}
		if !isRedundant {
			deduplicated = append(deduplicated, root)
		}
	}
	return deduplicated
}

// isPathUnder checks if childPath is strictly under parentPath
func isPathUnder(childPath, parentPath string) bool {
	childPath = filepath.Clean(childPath)
	parentPath = filepath.Clean(parentPath)

	if childPath == parentPath {
		return false
	}

	parentWithSep := parentPath
	if !strings.HasSuffix(parentWithSep, string(filepath.Separator)) {
		parentWithSep += string(filepath.Separator)
	}
	return strings.HasPrefix(childPath, parentWithSep)
}

// ============================================================================
// DIRECTORY QUEUE
// ============================================================================

// dirQueue is the directory work list shared by all walker workers. pending
// counts directories queued or being read; the walk is over when it drops
// to zero with the queue empty.
type dirQueue struct {
	mutex   sync.Mutex
	cond    *sync.Cond
	jobs    []dirJob
	pending int
}

func newDirQueue() *dirQueue {
	q := &dirQueue{}
	q.cond = sync.NewCond(&q.mutex)
	return q
}

// push queues a directory
func (q *dirQueue) push(job dirJob) {
	q.mutex.Lock()
	q.jobs = append(q.jobs, job)
	q.pending++
	q.mutex.Unlock()
	q.cond.Signal()
}

// pop blocks until a directory is available or the walk is finished.
// Directories are taken LIFO to keep the queue shallow.
func (q *dirQueue) pop() (dirJob, bool) {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	for len(q.jobs) == 0 && q.pending > 0 {
		q.cond.Wait()
	}
	if len(q.jobs) == 0 {
		return dirJob{}, false
	}

	last := len(q.jobs) - 1
	job := q.jobs[last]
	q.jobs = q.jobs[:last]
	return job, true
}

// done marks a popped directory as fully read
func (q *dirQueue) done() {
	q.mutex.Lock()
	q.pending--
	finished := q.pending == 0
	q.mutex.Unlock()
	if finished {
		q.cond.Broadcast()
	}
}

// ============================================================================
// PARTIAL SCAN
// ============================================================================

// walker runs the first pass: traversal, filtering and partial hashing
type walker[H HashValue[H]] struct {
	alg      Algorithm[H]
	filter   *Filter
	exclude  *ExcludeList
	maxDepth *int
	queue    *dirQueue
	results  chan<- scannedFile[H]
}

// findDupesPartial walks every root with a pool of workers and collects
// (partial hash, entry) pairs into a bag through one bounded channel
func findDupesPartial[H HashValue[H]](state *scanState, alg Algorithm[H]) *Bag[H, *Entry] {
	defer VerboseEnter()()

	results := make(chan scannedFile[H], state.capacity)
	bag := NewBag[H, *Entry](PartialContext)

	collected := make(chan struct{})
	go func() {
		defer close(collected)
		for result := range results {
			bag.Insert(result.Hash, result.Entry)
		}
	}()

	w := &walker[H]{
		alg:      alg,
		filter:   state.filter,
		exclude:  state.exclude,
		maxDepth: state.maxDepth,
		queue:    newDirQueue(),
		results:  results,
	}

	// Roots are followed even when they are symlinks; nothing below them is
	var rootFiles []*Entry
	for _, root := range state.roots {
		info, err := os.Stat(root.Path)
		if err != nil {
			LogError(err, "couldn't get metadata for %s", root.Path)
			continue
		}
		if info.IsDir() {
			w.queue.push(dirJob{Path: root.Path, Depth: 0})
		} else {
			rootFiles = append(rootFiles, NewEntry(root.Path, info))
		}
	}

	var wg sync.WaitGroup
	for i := 0; i < state.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.run()
		}()
	}

	for _, entry := range rootFiles {
		w.visitFile(entry.Path, entry.info)
	}

	wg.Wait()
	close(results)
	<-collected

	VerboseLog(1, "partial scan: %d files in %d buckets", bag.Count(), bag.Len())
	return bag
}

// run pops directories until the walk is finished
func (w *walker[H]) run() {
	for {
		job, ok := w.queue.pop()
		if !ok {
			return
		}
		w.visitDir(job)
		w.queue.done()
	}
}

// visitDir reads one directory, queueing subdirectories and handling files
func (w *walker[H]) visitDir(job dirJob) {
	childDepth := job.Depth + 1
	if w.maxDepth != nil && childDepth > *w.maxDepth {
		return
	}

	entries, err := os.ReadDir(job.Path)
	if err != nil {
		LogError(err, "couldn't read directory %s", job.Path)
		// ReadDir may still return the entries read before the error
	}

	for _, entry := range entries {
		childPath := filepath.Join(job.Path, entry.Name())
		if w.exclude.Match(childPath) {
			if IsDebugEnabled(DebugFilter) {
				VerboseLog(3, "scan: excluded %s", childPath)
			}
			continue
		}

		// DirEntry types come from lstat, so symlinked directories are not descended
		if entry.IsDir() {
			w.queue.push(dirJob{Path: childPath, Depth: childDepth})
			continue
		}

		info, err := entry.Info()
		if err != nil {
			LogError(err, "couldn't get metadata for %s", childPath)
			continue
		}
		w.visitFile(childPath, info)
	}
}

// visitFile filters and fingerprints one file
func (w *walker[H]) visitFile(path string, info os.FileInfo) {
	if !w.filter.IsMatch(path, info) {
		return
	}

	hash, err := PartialHash(w.alg, path)
	if err != nil {
		LogError(err, "couldn't hash %s", path)
		return
	}

	if IsDebugEnabled(DebugScan) {
		VerboseLog(3, "scan: %s %s", hash, path)
	}
	w.results <- scannedFile[H]{Hash: hash, Entry: NewEntry(path, info)}
}
