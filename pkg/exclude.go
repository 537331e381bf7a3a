package dupescan

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// ExcludeList prunes the walk: a directory whose path matches any pattern
// is not descended, and a matching file is never admitted
type ExcludeList struct {
	patterns []*regexp.Regexp
}

// NewExcludeList compiles regex patterns matched against full entry paths
func NewExcludeList(patterns []string) (*ExcludeList, error) {
	el := &ExcludeList{
		patterns: make([]*regexp.Regexp, 0, len(patterns)),
	}
	for _, patternStr := range patterns {
		if err := el.AddPattern(patternStr); err != nil {
			return nil, err
		}
	}
	return el, nil
}

// LoadExcludeFile reads one regex per line; blank lines and lines
// starting with # are skipped
func LoadExcludeFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open exclude file: %w", err)
	}
	defer file.Close()

	var patterns []string
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if _, err := regexp.Compile(line); err != nil {
			return nil, fmt.Errorf("invalid regex pattern at line %d: %s - %w", lineNum, line, err)
		}
		patterns = append(patterns, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading exclude file: %w", err)
	}
	return patterns, nil
}

// AddPattern compiles and appends one pattern
func (el *ExcludeList) AddPattern(patternStr string) error {
	pattern, err := regexp.Compile(patternStr)
	if err != nil {
		return fmt.Errorf("invalid exclude pattern %q: %w", patternStr, err)
	}
	el.patterns = append(el.patterns, pattern)
	return nil
}

// Match reports whether path should be skipped. A nil list matches nothing.
func (el *ExcludeList) Match(path string) bool {
	if el == nil {
		return false
	}
	for _, pattern := range el.patterns {
		if pattern.MatchString(path) {
			return true
		}
	}
	return false
}

// Len returns the number of patterns
func (el *ExcludeList) Len() int {
	if el == nil {
		return 0
	}
	return len(el.patterns)
}
