package dupescan

import (
	"bytes"
	"testing"
)

func TestReportEmpty(t *testing.T) {
	expected := "0 scanned files: 0 B\n" +
		"0 unique files: 0 B\n" +
		"0 groups of duplicate files (0 files): 0 B"
	if got := (Report{}).Render(false); got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}
}

func TestReportLargeNumbers(t *testing.T) {
	report := Report{
		Uniques:         1234567,
		UniqueBytes:     3 * 1024 * 1024,
		DuplicateGroups: 1000,
		Duplicates:      2500,
		DuplicateBytes:  1024,
	}
	expected := "1,237,067 scanned files: 3.0 MiB\n" +
		"1,234,567 unique files: 3.0 MiB\n" +
		"1,000 groups of duplicate files (2,500 files): 1.0 KiB"
	if got := report.Render(false); got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}
}

func TestReportStyledKeepsText(t *testing.T) {
	report := Report{Uniques: 1, UniqueBytes: 3, DuplicateGroups: 1, Duplicates: 2, DuplicateBytes: 8}
	styled := report.Render(true)
	for _, fragment := range []string{"3 scanned files: 11 B", "1 unique files: 3 B", "1 groups of duplicate files (2 files): 8 B"} {
		if !bytes.Contains([]byte(styled), []byte(fragment)) {
			t.Errorf("Expected styled report to contain %q, got %q", fragment, styled)
		}
	}
}

func TestNewReportFromScan(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "a", []byte("aaa"))
	writeTestFile(t, root, "b", []byte("aaa"))
	writeTestFile(t, root, "c", []byte("aaa"))
	writeTestFile(t, root, "d", []byte("bbbbb"))
	writeTestFile(t, root, "e", []byte("cc"))

	bag, err := Scan(ScanOptions{Paths: []string{root}, Workers: 2}, XXH3)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	report := NewReport(bag)
	expected := Report{Uniques: 2, UniqueBytes: 7, DuplicateGroups: 1, Duplicates: 3, DuplicateBytes: 9}
	if report != expected {
		t.Errorf("Expected %+v, got %+v", expected, report)
	}
	if report.TotalFiles() != 5 || report.TotalBytes() != 16 {
		t.Errorf("Expected 5 files and 16 bytes, got %d and %d", report.TotalFiles(), report.TotalBytes())
	}
}
