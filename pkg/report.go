package dupescan

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"golang.org/x/term"
)

// Report summarises a full-hash bag for humans
type Report struct {
	Uniques         int
	UniqueBytes     int64
	DuplicateGroups int
	Duplicates      int
	DuplicateBytes  int64
}

// NewReport partitions the bag into unique files (singleton buckets) and
// duplicate groups, summing sizes captured at admission
func NewReport[H HashValue[H]](bag *Bag[H, *Entry]) Report {
	var report Report
	bag.Buckets(func(_ H, entries []*Entry) bool {
		var size int64
		for _, entry := range entries {
			size += entry.Size()
		}
		if len(entries) > 1 {
			report.DuplicateGroups++
			report.Duplicates += len(entries)
			report.DuplicateBytes += size
		} else {
			report.Uniques += len(entries)
			report.UniqueBytes += size
		}
		return true
	})
	return report
}

// TotalFiles counts every scanned file
func (r Report) TotalFiles() int {
	return r.Uniques + r.Duplicates
}

// TotalBytes sums the size of every scanned file
func (r Report) TotalBytes() int64 {
	return r.UniqueBytes + r.DuplicateBytes
}

var (
	reportHeadlineStyle  = lipgloss.NewStyle().Bold(true)
	reportDuplicateStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// Render formats the report as three lines. styled adds terminal styling.
func (r Report) Render(styled bool) string {
	lines := []string{
		fmt.Sprintf("%s scanned files: %s", humanize.Comma(int64(r.TotalFiles())), FormatHumanSize(r.TotalBytes())),
		fmt.Sprintf("%s unique files: %s", humanize.Comma(int64(r.Uniques)), FormatHumanSize(r.UniqueBytes)),
		fmt.Sprintf("%s groups of duplicate files (%s files): %s",
			humanize.Comma(int64(r.DuplicateGroups)), humanize.Comma(int64(r.Duplicates)), FormatHumanSize(r.DuplicateBytes)),
	}
	if styled {
		lines[0] = reportHeadlineStyle.Render(lines[0])
		if r.DuplicateGroups > 0 {
			lines[2] = reportDuplicateStyle.Render(lines[2])
		}
	}
	return strings.Join(lines, "\n")
}

// Print writes the report to out, styled when out is a terminal
func (r Report) Print(out *os.File) error {
	styled := term.IsTerminal(int(out.Fd()))
	_, err := fmt.Fprintln(out, r.Render(styled))
	return err
}
