package dupescan

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestExcludeListMatch(t *testing.T) {
	el, err := NewExcludeList([]string{`/\.git$`, `\.tmp$`})
	if err != nil {
		t.Fatalf("NewExcludeList failed: %v", err)
	}
	if el.Len() != 2 {
		t.Errorf("Expected 2 patterns, got %d", el.Len())
	}

	testCases := []struct {
		path     string
		expected bool
	}{
		{"/repo/.git", true},
		{"/repo/.github", false},
		{"/repo/build/out.tmp", true},
		{"/repo/notes.txt", false},
	}
	for _, tc := range testCases {
		if got := el.Match(tc.path); got != tc.expected {
			t.Errorf("Match(%q): expected %v, got %v", tc.path, tc.expected, got)
		}
	}
}

func TestExcludeListNil(t *testing.T) {
	var el *ExcludeList
	if el.Match("/anything") {
		t.Error("Expected nil list to match nothing")
	}
	if el.Len() != 0 {
		t.Errorf("Expected nil list to be empty, got %d", el.Len())
	}
}

func TestExcludeListInvalidPattern(t *testing.T) {
	if _, err := NewExcludeList([]string{"ok", "(unclosed"}); err == nil {
		t.Error("Expected error for invalid pattern")
	}
}

func TestLoadExcludeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exclude")
	content := "# build output\n\n/target$\n  \\.o$  \n# trailing comment\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write exclude file: %v", err)
	}

	patterns, err := LoadExcludeFile(path)
	if err != nil {
		t.Fatalf("LoadExcludeFile failed: %v", err)
	}
	expected := []string{"/target$", `\.o$`}
	if !reflect.DeepEqual(patterns, expected) {
		t.Errorf("Expected %v, got %v", expected, patterns)
	}
}

func TestLoadExcludeFileErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadExcludeFile(filepath.Join(dir, "missing")); err == nil {
		t.Error("Expected error for missing file")
	}

	path := filepath.Join(dir, "bad")
	if err := os.WriteFile(path, []byte("fine\n[broken\n"), 0644); err != nil {
		t.Fatalf("Failed to write exclude file: %v", err)
	}
	_, err := LoadExcludeFile(path)
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("Expected error naming line 2, got %v", err)
	}
}
