// Package stats provides timing and count statistics for a listing run.
// It captures how long the walk and the output took, how many files were
// listed or filtered out, and memory usage at the end of the run.
package stats

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/leonardomso/srclist/internal/helpers"
)

// Stats holds performance metrics for one run.
type Stats struct {
	// Timing for each phase
	ScanStart  time.Time
	ScanEnd    time.Time
	WriteStart time.Time
	WriteEnd   time.Time

	// Counts
	FilesListed int
	Directories int
	Ignored     int

	// Memory stats (captured at end)
	HeapAlloc    uint64
	TotalAlloc   uint64
	NumGC        uint32
	NumGoroutine int
}

// New creates a new Stats instance.
func New() *Stats {
	return &Stats{}
}

// StartScan marks the beginning of the walk.
func (s *Stats) StartScan() {
	s.ScanStart = time.Now()
}

// EndScan marks the end of the walk and records what it produced.
// files are the listed root-relative paths.
func (s *Stats) EndScan(files []string, ignored int) {
	s.ScanEnd = time.Now()
	s.FilesListed = len(files)
	s.Ignored = ignored

	dirs := make([]string, len(files))
	for i, f := range files {
		dirs[i] = filepath.Dir(f)
	}
	s.Directories = helpers.CountUniqueStrings(dirs)
}

// StartWrite marks the beginning of the output phase.
func (s *Stats) StartWrite() {
	s.WriteStart = time.Now()
}

// EndWrite marks the end of the output phase and captures memory stats.
func (s *Stats) EndWrite() {
	s.WriteEnd = time.Now()
	s.captureMemoryStats()
}

// captureMemoryStats reads current memory statistics from runtime.
func (s *Stats) captureMemoryStats() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	s.HeapAlloc = m.HeapAlloc
	s.TotalAlloc = m.TotalAlloc
	s.NumGC = m.NumGC
	s.NumGoroutine = runtime.NumGoroutine()
}

// ScanDuration returns the time spent walking the tree.
func (s *Stats) ScanDuration() time.Duration {
	if s.ScanEnd.IsZero() {
		return 0
	}
	return s.ScanEnd.Sub(s.ScanStart)
}

// WriteDuration returns the time spent formatting and writing output.
func (s *Stats) WriteDuration() time.Duration {
	if s.WriteEnd.IsZero() {
		return 0
	}
	return s.WriteEnd.Sub(s.WriteStart)
}

// TotalDuration returns the total time from scan start to write end.
func (s *Stats) TotalDuration() time.Duration {
	if s.WriteEnd.IsZero() {
		return 0
	}
	return s.WriteEnd.Sub(s.ScanStart)
}

// FilesPerSecond returns the walk throughput.
func (s *Stats) FilesPerSecond() float64 {
	scanDur := s.ScanDuration()
	if scanDur == 0 || s.FilesListed == 0 {
		return 0
	}
	return float64(s.FilesListed) / scanDur.Seconds()
}

// FormatDuration formats a duration for display.
func FormatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%dm%.1fs", int(d.Minutes()), d.Seconds()-float64(int(d.Minutes())*60))
}

// FormatBytes formats bytes for human-readable display.
func FormatBytes(bytes uint64) string {
	const (
		kb = 1024
		mb = kb * 1024
		gb = mb * 1024
	)

	switch {
	case bytes >= gb:
		return fmt.Sprintf("%.1f GB", float64(bytes)/gb)
	case bytes >= mb:
		return fmt.Sprintf("%.1f MB", float64(bytes)/mb)
	case bytes >= kb:
		return fmt.Sprintf("%.1f KB", float64(bytes)/kb)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// String returns a formatted string representation of the stats.
func (s *Stats) String() string {
	var b strings.Builder

	total := s.TotalDuration()

	b.WriteString("\n=== Performance Statistics ===\n\n")

	// Timing breakdown
	b.WriteString("Timing:\n")
	b.WriteString(fmt.Sprintf("  Scan tree:     %8s", FormatDuration(s.ScanDuration())))
	if total > 0 {
		b.WriteString(fmt.Sprintf("  (%4.1f%%)", float64(s.ScanDuration())/float64(total)*100))
	}
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("  Write output:  %8s", FormatDuration(s.WriteDuration())))
	if total > 0 {
		b.WriteString(fmt.Sprintf("  (%4.1f%%)", float64(s.WriteDuration())/float64(total)*100))
	}
	b.WriteString("\n")

	b.WriteString("  ─────────────────────────\n")
	b.WriteString(fmt.Sprintf("  Total:         %8s\n", FormatDuration(total)))

	// Throughput
	b.WriteString("\nThroughput:\n")
	b.WriteString(fmt.Sprintf("  Files listed:      %5d\n", s.FilesListed))
	b.WriteString(fmt.Sprintf("  Directories:       %5d\n", s.Directories))
	if s.Ignored > 0 {
		b.WriteString(fmt.Sprintf("  Ignored:           %5d\n", s.Ignored))
	}
	b.WriteString(fmt.Sprintf("  Files/second:  %9.1f\n", s.FilesPerSecond()))

	// Memory
	b.WriteString("\nMemory:\n")
	b.WriteString(fmt.Sprintf("  Heap in use:   %8s\n", FormatBytes(s.HeapAlloc)))
	b.WriteString(fmt.Sprintf("  Total alloc:   %8s\n", FormatBytes(s.TotalAlloc)))
	b.WriteString(fmt.Sprintf("  GC cycles:     %8d\n", s.NumGC))
	b.WriteString(fmt.Sprintf("  Goroutines:    %8d\n", s.NumGoroutine))

	return b.String()
}

// ToJSON returns a map suitable for JSON serialization.
func (s *Stats) ToJSON() map[string]any {
	return map[string]any{
		"timing": map[string]any{
			"scan_ms":  s.ScanDuration().Milliseconds(),
			"write_ms": s.WriteDuration().Milliseconds(),
			"total_ms": s.TotalDuration().Milliseconds(),
		},
		"throughput": map[string]any{
			"files_listed":     s.FilesListed,
			"directories":      s.Directories,
			"ignored":          s.Ignored,
			"files_per_second": s.FilesPerSecond(),
		},
		"memory": map[string]any{
			"heap_bytes":  s.HeapAlloc,
			"total_bytes": s.TotalAlloc,
			"gc_cycles":   s.NumGC,
			"goroutines":  s.NumGoroutine,
		},
	}
}
