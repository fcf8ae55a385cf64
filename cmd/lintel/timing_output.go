package main

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"lintel/internal/diag"
	"lintel/internal/driver"
	"lintel/internal/observ"
	"lintel/internal/source"
)

func printTimings(out io.Writer, report observ.Report, cache driver.CacheStats) {
	if out == nil {
		return
	}
	if _, err := io.WriteString(out, report.Summary()); err != nil {
		panic(err)
	}
	if cache == (driver.CacheStats{}) {
		return
	}
	_, err := fmt.Fprintf(out, "cache: %d memory hits, %d disk hits, %d misses", cache.MemoryHits, cache.DiskHits, cache.Misses)
	if err == nil && cache.DiskErrors > 0 {
		_, err = fmt.Fprintf(out, ", %d disk errors", cache.DiskErrors)
	}
	if err == nil {
		_, err = fmt.Fprintln(out)
	}
	if err != nil {
		panic(err)
	}
}

// printSummary writes the closing "checked ..." line of a check run.
func printSummary(out io.Writer, res *driver.CheckResult, elapsed time.Duration) error {
	var size int64
	for i := range res.FileSet.Len() {
		size += int64(len(res.FileSet.Get(source.FileID(i)).Content))
	}
	_, err := fmt.Fprintf(out, "checked %s in %s: %s, %s\n",
		plural(len(res.Files), "file")+" ("+humanize.IBytes(uint64(size))+")",
		elapsed.Round(time.Millisecond),
		plural(res.Count(diag.SevError), "error"),
		plural(res.Count(diag.SevWarning), "warning"),
	)
	return err
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return humanize.Comma(int64(n)) + " " + word + "s"
}
