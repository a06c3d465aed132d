// Package report renders human-readable summaries of sanitization results:
// the non-zero finding categories and the byte-count delta, per call and
// across a whole run.
package report

import (
	"fmt"
	"strings"

	"github.com/timstarkk/mcp-safe-fetch/internal/aggregate"
	"github.com/timstarkk/mcp-safe-fetch/internal/pipeline"
)

// Summary renders one call's findings as aligned terminal output. Clean
// inputs produce a single "no findings" line.
func Summary(name string, r pipeline.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s: %d -> %d bytes", name, r.InputSize, r.OutputSize)
	if delta := r.InputSize - r.OutputSize; delta != 0 {
		fmt.Fprintf(&b, " (%+d)", -delta)
	}
	b.WriteString("\n")

	if r.Stats.Total() == 0 {
		b.WriteString("  no findings\n")
		return b.String()
	}
	for _, c := range r.Stats.Categories() {
		if c.Count == 0 {
			continue
		}
		fmt.Fprintf(&b, "  %-22s %d\n", c.Name, c.Count)
	}
	return b.String()
}

// TotalsSummary renders the running totals at the end of a multi-input run.
func TotalsSummary(t aggregate.Totals) string {
	var b strings.Builder

	fmt.Fprintf(&b, "total: %d call", t.Calls)
	if t.Calls != 1 {
		b.WriteString("s")
	}
	fmt.Fprintf(&b, ", %d -> %d bytes, %d finding", t.BytesIn, t.BytesOut, t.Findings())
	if t.Findings() != 1 {
		b.WriteString("s")
	}
	b.WriteString("\n")

	for _, c := range t.Stats.Categories() {
		if c.Count == 0 {
			continue
		}
		fmt.Fprintf(&b, "  %-22s %d\n", c.Name, c.Count)
	}
	return b.String()
}
