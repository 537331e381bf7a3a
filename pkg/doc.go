// Package dupescan finds duplicate files under one or more directory trees.
//
// # Core API
//
// A scan runs in two passes. The first walks the roots in parallel and
// groups admitted files by a hash of their first block; the second rehashes
// only the files that share a first-block hash with another file:
//
//	opts := dupescan.ScanOptions{Paths: []string{"/srv/photos"}}
//	bag, err := dupescan.Scan(opts, dupescan.XXH3)
//	if err != nil {
//		return err
//	}
//	for _, group := range bag.Duplicates().Groups() {
//		fmt.Println(group)
//	}
//
// The result is a Bag: an ordered multimap from hash value to entries.
// Replicates views select buckets by size, for example Equal(1) for unique
// files or Under(3) for files with fewer than three copies.
//
// # File Selection
//
// Only regular files are considered; symbolic links are never followed
// below a root. Size bounds, a base-name regex and a base-name glob (with
// {a,b} alternation) narrow the selection further. By default hard links to an already admitted file
// are skipped so a file is not reported as a duplicate of itself.
//
// # Hash Algorithms
//
// Algorithms are values of Algorithm[H] for a hash value type H. XXH3 is
// the default; XXH128, FNV1a, BLAKE3 and SHA256 are also provided.
//
// # Output
//
// WriteReplicates renders groups as fdupes, machine, json, json_pretty,
// ldjson, csv or yaml. CreateOutput compresses ".zst" and ".lz4" files.
//
// # Configuration
//
// LoadConfig reads an ini file of defaults for the command-line tool; see
// ConfigKeys for the settings that can be overridden.
package dupescan
