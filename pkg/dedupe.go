package dupescan

import "sync"

// rehashJob is one candidate file that shares its partial hash with others
type rehashJob[H HashValue[H]] struct {
	Partial H
	Entry   *Entry
}

// rehashManager runs full-content hashing on a fixed pool of workers and
// forwards every result, hashed or not, to the collector
type rehashManager[H HashValue[H]] struct {
	alg        Algorithm[H]
	jobChan    chan rehashJob[H]
	resultChan chan<- scannedFile[H]
	wg         sync.WaitGroup
}

func newRehashManager[H HashValue[H]](alg Algorithm[H], numWorkers int, resultChan chan<- scannedFile[H]) *rehashManager[H] {
	manager := &rehashManager[H]{
		alg:        alg,
		jobChan:    make(chan rehashJob[H], DefaultJobCapacity),
		resultChan: resultChan,
	}

	if numWorkers < 1 {
		numWorkers = 1
	}
	for i := 0; i < numWorkers; i++ {
		manager.wg.Add(1)
		go manager.rehashWorker()
	}
	return manager
}

// Submit queues a candidate for full hashing
func (m *rehashManager[H]) Submit(job rehashJob[H]) {
	m.jobChan <- job
}

// FinishSubmitting closes the job queue and waits for the workers to drain it
func (m *rehashManager[H]) FinishSubmitting() {
	close(m.jobChan)
	m.wg.Wait()
}

func (m *rehashManager[H]) rehashWorker() {
	defer m.wg.Done()
	for job := range m.jobChan {
		m.resultChan <- scannedFile[H]{Hash: rehash(m.alg, job), Entry: job.Entry}
	}
}

// rehash returns the full-content hash of a candidate. Files that are
// currently smaller than one block were already hashed in full by the
// partial pass, and files that can't be read keep their partial hash.
func rehash[H HashValue[H]](alg Algorithm[H], job rehashJob[H]) H {
	size, err := job.Entry.CurrentSize()
	if err != nil {
		LogError(err, "couldn't get metadata for %s", job.Entry.Path)
		size = 0
	}
	if size < BlockSize {
		if IsDebugEnabled(DebugDedupe) {
			VerboseLog(3, "dedupe: %s fits in one block, keeping %s", job.Entry.Path, job.Partial)
		}
		return job.Partial
	}

	full, err := FullHash(alg, job.Entry.Path)
	if err != nil {
		LogError(err, "couldn't hash %s, keeping partial hash", job.Entry.Path)
		return job.Partial
	}
	if IsDebugEnabled(DebugDedupe) {
		VerboseLog(3, "dedupe: %s %s -> %s", job.Entry.Path, job.Partial, full)
	}
	return full
}

// Dedupe turns a bag keyed by partial hash into one keyed by full hash.
// Singleton buckets can't hold duplicates and pass through unchanged; every
// member of a larger bucket is rehashed on the worker pool.
func Dedupe[H HashValue[H]](alg Algorithm[H], partial *Bag[H, *Entry], workers, capacity int) *Bag[H, *Entry] {
	defer VerboseEnter()()

	if capacity < 1 {
		capacity = DefaultChannelCapacity
	}
	results := make(chan scannedFile[H], capacity)
	full := NewBag[H, *Entry](FullContext)

	collected := make(chan struct{})
	go func() {
		defer close(collected)
		for result := range results {
			full.Insert(result.Hash, result.Entry)
		}
	}()

	manager := newRehashManager(alg, workers, results)
	candidates := 0
	partial.Buckets(func(key H, entries []*Entry) bool {
		if len(entries) == 1 {
			results <- scannedFile[H]{Hash: key, Entry: entries[0]}
			return true
		}
		for _, entry := range entries {
			manager.Submit(rehashJob[H]{Partial: key, Entry: entry})
			candidates++
		}
		return true
	})
	manager.FinishSubmitting()

	close(results)
	<-collected

	VerboseLog(1, "dedupe: rehashed %d candidates, %d files in %d buckets", candidates, full.Count(), full.Len())
	return full
}
