package report

import (
	"strings"
	"testing"

	"github.com/timstarkk/mcp-safe-fetch/internal/aggregate"
	"github.com/timstarkk/mcp-safe-fetch/internal/pipeline"
)

func TestSummary_NonZeroCategoriesOnly(t *testing.T) {
	r := pipeline.Result{
		Stats:      pipeline.Stats{HiddenElements: 2, LLMDelimiters: 1},
		InputSize:  120,
		OutputSize: 90,
	}
	out := Summary("page.html", r)
	if !strings.Contains(out, "page.html: 120 -> 90 bytes (-30)") {
		t.Fatalf("byte delta missing: %q", out)
	}
	if !strings.Contains(out, "hidden elements") || !strings.Contains(out, "llm delimiters") {
		t.Fatalf("non-zero categories missing: %q", out)
	}
	if strings.Contains(out, "hex payloads") {
		t.Fatalf("zero categories must be omitted: %q", out)
	}
}

func TestSummary_CleanInput(t *testing.T) {
	out := Summary("note.txt", pipeline.Result{InputSize: 10, OutputSize: 10})
	if !strings.Contains(out, "no findings") {
		t.Fatalf("expected clean summary, got %q", out)
	}
	if strings.Contains(out, "(+") || strings.Contains(out, "(-") {
		t.Fatalf("no delta expected for identical sizes: %q", out)
	}
}

func TestTotalsSummary(t *testing.T) {
	var tot aggregate.Totals
	tot.Add(pipeline.Result{Stats: pipeline.Stats{Base64Payloads: 1}, InputSize: 60, OutputSize: 40})
	tot.Add(pipeline.Result{InputSize: 10, OutputSize: 10})
	out := TotalsSummary(tot)
	if !strings.Contains(out, "2 calls") {
		t.Fatalf("call count missing: %q", out)
	}
	if !strings.Contains(out, "70 -> 50 bytes") {
		t.Fatalf("byte totals missing: %q", out)
	}
	if !strings.Contains(out, "base64 payloads") {
		t.Fatalf("category missing: %q", out)
	}
}
