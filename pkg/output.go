package dupescan

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Format selects how duplicate groups are written
type Format int

const (
	FormatFdupes Format = iota
	FormatMachine
	FormatJSON
	FormatJSONPretty
	FormatLDJSON
	FormatCSV
	FormatYAML
)

var formatNames = []string{"fdupes", "machine", "json", "json_pretty", "ldjson", "csv", "yaml"}

// outputBufferSize matches the buffered writer used for non-file outputs
const outputBufferSize = 64 * 1024

var newline = []byte("\n")

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formatNames[f]
}

// FormatNames returns the accepted format names, default first
func FormatNames() []string {
	return append([]string(nil), formatNames...)
}

// ParseFormat parses a format name (case-insensitive)
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, candidate := range formatNames {
		if name == candidate {
			return Format(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %s (supported: %s)", ErrUnknownFormat, s, strings.Join(formatNames, ", "))
}

// PathGroups extracts the paths of each selected group, in hash order
func PathGroups[H HashValue[H]](replicates Replicates[H, *Entry]) [][]string {
	groups := [][]string{}
	replicates.Each(func(_ H, entries []*Entry) bool {
		paths := make([]string, len(entries))
		for i, entry := range entries {
			paths[i] = entry.Path
		}
		groups = append(groups, paths)
		return true
	})
	return groups
}

// WriteReplicates writes the selected groups of a bag in the given format
func WriteReplicates[H HashValue[H]](w io.Writer, format Format, replicates Replicates[H, *Entry]) error {
	return WriteGroups(w, format, PathGroups(replicates))
}

// WriteGroups writes path groups in the given format
func WriteGroups(w io.Writer, format Format, groups [][]string) error {
	if groups == nil {
		groups = [][]string{}
	}

	switch format {
	case FormatFdupes:
		return writeSegments(w, fdupesSegments(groups))
	case FormatMachine:
		return writeSegments(w, machineSegments(groups))
	case FormatLDJSON:
		segments, err := ldjsonSegments(jsonGroups(groups))
		if err != nil {
			return err
		}
		return writeSegments(w, segments)
	case FormatJSON, FormatJSONPretty:
		return writeBuffered(w, func(bw *bufio.Writer) error {
			encoder := json.NewEncoder(bw)
			encoder.SetEscapeHTML(false)
			if format == FormatJSONPretty {
				encoder.SetIndent("", "  ")
			}
			return encoder.Encode(jsonGroups(groups))
		})
	case FormatCSV:
		return writeBuffered(w, func(bw *bufio.Writer) error {
			return writeCSV(bw, groups)
		})
	case FormatYAML:
		return writeBuffered(w, func(bw *bufio.Writer) error {
			encoder := yaml.NewEncoder(bw)
			encoder.SetIndent(2)
			if err := encoder.Encode(groups); err != nil {
				return err
			}
			return encoder.Close()
		})
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

// fdupesSegments lays groups out one path per line with a blank line
// between groups
func fdupesSegments(groups [][]string) [][]byte {
	var segments [][]byte
	for i, group := range groups {
		lastGroup := i == len(groups)-1
		for j, path := range group {
			segments = append(segments, []byte(path))
			if j < len(group)-1 || !lastGroup {
				segments = append(segments, newline)
			}
		}
		if !lastGroup {
			segments = append(segments, newline)
		}
	}
	return append(segments, newline)
}

// machineSegments writes each group on one line as space separated quoted paths
func machineSegments(groups [][]string) [][]byte {
	var segments [][]byte
	for i, group := range groups {
		quoted := make([]string, len(group))
		for j, path := range group {
			quoted[j] = strconv.Quote(path)
		}
		segments = append(segments, []byte(strings.Join(quoted, " ")))
		if i < len(groups)-1 {
			segments = append(segments, newline)
		}
	}
	return append(segments, newline)
}

// jsonGroups replaces paths that are not valid UTF-8 with a quoted-escape
// form ("\xe7"), since encoding/json would turn every invalid byte into
// U+FFFD and make distinct paths print the same. Groups are only copied
// when something needs escaping.
func jsonGroups(groups [][]string) [][]string {
	var escaped [][]string
	for i, group := range groups {
		copied := false
		for j, path := range group {
			if utf8.ValidString(path) {
				continue
			}
			if escaped == nil {
				escaped = append([][]string(nil), groups...)
			}
			if !copied {
				escaped[i] = append([]string(nil), group...)
				copied = true
			}
			escaped[i][j] = escapePath(path)
		}
	}
	if escaped == nil {
		return groups
	}
	return escaped
}

// escapePath renders a non-UTF-8 path with Go escapes for the invalid bytes
func escapePath(path string) string {
	quoted := strconv.Quote(path)
	escaped := quoted[1 : len(quoted)-1]
	LogError(ErrInvalidUTF8Path, "writing %s", escaped)
	return escaped
}

// ldjsonSegments writes one JSON array per line
func ldjsonSegments(groups [][]string) ([][]byte, error) {
	segments := make([][]byte, 0, len(groups))
	for _, group := range groups {
		var buf bytes.Buffer
		encoder := json.NewEncoder(&buf)
		encoder.SetEscapeHTML(false)
		if err := encoder.Encode(group); err != nil {
			return nil, fmt.Errorf("failed to encode group: %w", err)
		}
		segments = append(segments, buf.Bytes())
	}
	return segments, nil
}

// writeCSV writes a "count,bucket" header then one variable-length record
// per group
func writeCSV(w io.Writer, groups [][]string) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"count", "bucket"}); err != nil {
		return err
	}
	for _, group := range groups {
		record := make([]string, 0, len(group)+1)
		record = append(record, strconv.Itoa(len(group)))
		record = append(record, group...)
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// writeSegments sends pre-split output to w, using writev when w is a file
func writeSegments(w io.Writer, segments [][]byte) error {
	if file, ok := w.(*os.File); ok {
		return writevFile(file, segments)
	}
	return writeBuffered(w, func(bw *bufio.Writer) error {
		for _, segment := range segments {
			if _, err := bw.Write(segment); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeBuffered(w io.Writer, fn func(*bufio.Writer) error) error {
	bw := bufio.NewWriterSize(w, outputBufferSize)
	if err := fn(bw); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
