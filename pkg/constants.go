package dupescan

import "errors"

// BlockSize is the number of leading bytes covered by a partial hash.
// Files shorter than this are hashed in full during the first pass.
const BlockSize = 4096

// fullHashBufferSize is the read buffer used when streaming a whole file.
const fullHashBufferSize = BlockSize * 4

// Skiplist contexts, recorded on every bucket to tell which pass created it
const (
	PartialContext = "partial"
	FullContext    = "full"
)

// Scan tuning defaults
const (
	DefaultChannelCapacity = 256 // bounded fan-in channel between workers and the collector
	DefaultJobCapacity     = 100 // bounded job queue feeding the rehash workers
	skiplistLevels         = 16
)

// Debug flag names understood by IsDebugEnabled
const (
	DebugScan   = "scan"
	DebugFilter = "filter"
	DebugDedupe = "dedupe"
	DebugDisk   = "disk"
)

var (
	// ErrNoRoots is returned when none of the requested paths can be resolved.
	ErrNoRoots = errors.New("no scannable root path")

	// ErrUnknownAlgorithm is returned for hash algorithm names that are not registered.
	ErrUnknownAlgorithm = errors.New("unknown hash algorithm")

	// ErrInvalidFactor is returned when a replication factor cannot be parsed.
	ErrInvalidFactor = errors.New("invalid replication factor")

	// ErrUnknownFormat is returned for unsupported output format names.
	ErrUnknownFormat = errors.New("unknown output format")

	// ErrInvalidUTF8Path is logged when a path has to be escaped for JSON output.
	ErrInvalidUTF8Path = errors.New("path is not valid UTF-8")
)
