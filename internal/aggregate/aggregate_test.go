package aggregate

import (
	"testing"

	"github.com/timstarkk/mcp-safe-fetch/internal/pipeline"
)

func TestTotals_Add(t *testing.T) {
	var tot Totals
	tot.Add(pipeline.Result{
		Stats:      pipeline.Stats{HiddenElements: 2, LLMDelimiters: 1},
		InputSize:  100,
		OutputSize: 80,
	})
	tot.Add(pipeline.Result{
		Stats:      pipeline.Stats{LLMDelimiters: 3},
		InputSize:  50,
		OutputSize: 50,
	})

	if tot.Calls != 2 {
		t.Fatalf("Calls = %d, want 2", tot.Calls)
	}
	if tot.Stats.HiddenElements != 2 || tot.Stats.LLMDelimiters != 4 {
		t.Fatalf("stats wrong: %+v", tot.Stats)
	}
	if tot.BytesIn != 150 || tot.BytesOut != 130 {
		t.Fatalf("byte totals wrong: in=%d out=%d", tot.BytesIn, tot.BytesOut)
	}
	if tot.Findings() != 6 {
		t.Fatalf("Findings() = %d, want 6", tot.Findings())
	}
}

func TestTotals_ZeroValueUsable(t *testing.T) {
	var tot Totals
	if tot.Calls != 0 || tot.Findings() != 0 {
		t.Fatalf("zero value must be an empty total: %+v", tot)
	}
}
