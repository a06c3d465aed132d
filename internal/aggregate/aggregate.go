// Package aggregate accumulates pipeline statistics across calls. The
// accumulator is explicitly owned by the caller; the pipeline itself holds
// no cross-call state.
package aggregate

import "github.com/timstarkk/mcp-safe-fetch/internal/pipeline"

// Totals is a running total over many pipeline results.
type Totals struct {
	Calls    int
	Stats    pipeline.Stats
	BytesIn  int64
	BytesOut int64
}

// Add folds one result into the running total.
func (t *Totals) Add(r pipeline.Result) {
	t.Calls++
	t.Stats.Add(r.Stats)
	t.BytesIn += int64(r.InputSize)
	t.BytesOut += int64(r.OutputSize)
}

// Findings is the total number of removals across all calls.
func (t *Totals) Findings() int {
	return t.Stats.Total()
}
