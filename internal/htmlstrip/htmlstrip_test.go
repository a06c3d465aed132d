package htmlstrip

import (
	"strings"
	"testing"
)

func TestClean_HiddenElements(t *testing.T) {
	out, c := Clean(`<div style="display:none">X</div><p>Y</p>`)
	if c.Hidden != 1 {
		t.Fatalf("expected 1 hidden element, got %d", c.Hidden)
	}
	if strings.Contains(out, "X") {
		t.Fatalf("hidden content survived: %q", out)
	}
	if !strings.Contains(out, "Y") {
		t.Fatalf("visible content lost: %q", out)
	}
}

func TestClean_HiddenVariants(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"display none spaced", `<span style="display: none">x</span>`},
		{"visibility hidden", `<span style="visibility:hidden">x</span>`},
		{"opacity zero", `<span style="opacity:0">x</span>`},
		{"opacity zero spaced", `<span style="opacity: 0;color:red">x</span>`},
		{"hidden attribute", `<span hidden>x</span>`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, c := Clean(tc.input + `<p>keep</p>`)
			if c.Hidden != 1 {
				t.Fatalf("expected 1 hidden element, got %d", c.Hidden)
			}
			if strings.Contains(out, ">x<") {
				t.Fatalf("hidden content survived: %q", out)
			}
			if !strings.Contains(out, "keep") {
				t.Fatalf("visible content lost: %q", out)
			}
		})
	}
}

func TestClean_PartialOpacityKept(t *testing.T) {
	out, c := Clean(`<span style="opacity:0.5">faded</span>`)
	if c.Hidden != 0 {
		t.Fatalf("opacity 0.5 is visible, got %d", c.Hidden)
	}
	if !strings.Contains(out, "faded") {
		t.Fatalf("visible content lost: %q", out)
	}
}

func TestClean_NestedHiddenCountsOnce(t *testing.T) {
	in := `<div style="display:none"><p style="display:none">deep</p></div>`
	out, c := Clean(in)
	if c.Hidden != 1 {
		t.Fatalf("nested hidden elements must count once, got %d", c.Hidden)
	}
	if strings.Contains(out, "deep") {
		t.Fatalf("hidden content survived: %q", out)
	}
}

func TestClean_OffscreenElements(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"absolute far left", `<div style="position:absolute;left:-9999px">x</div>`},
		{"fixed far top", `<div style="position:fixed;top:-5000px">x</div>`},
		{"collapsed clip", `<div style="clip:rect(0,0,0,0)">x</div>`},
		{"full inset clip-path", `<div style="clip-path:inset(100%)">x</div>`},
		{"zero font size", `<div style="font-size:0">x</div>`},
		{"large negative indent", `<div style="text-indent:-9999px">x</div>`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, c := Clean(tc.input)
			if c.Offscreen != 1 {
				t.Fatalf("expected 1 off-screen element, got %d", c.Offscreen)
			}
			if strings.Contains(out, ">x<") {
				t.Fatalf("off-screen content survived: %q", out)
			}
		})
	}
}

func TestClean_OffscreenNegatives(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"small nudge", `<div style="position:absolute;left:-10px">x</div>`},
		{"positive offset", `<div style="position:absolute;left:9999px">x</div>`},
		{"no position", `<div style="left:-9999px">x</div>`},
		{"normal font", `<div style="font-size:14px">x</div>`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, c := Clean(tc.input)
			if c.Offscreen != 0 {
				t.Fatalf("expected 0 off-screen elements, got %d", c.Offscreen)
			}
			if !strings.Contains(out, "x") {
				t.Fatalf("visible content lost: %q", out)
			}
		})
	}
}

func TestClean_SameColorText(t *testing.T) {
	out, c := Clean(`<p style="color:white;background:white">invisible</p>`)
	if c.SameColor != 1 {
		t.Fatalf("expected 1 same-color element, got %d", c.SameColor)
	}
	if strings.Contains(out, "invisible") {
		t.Fatalf("same-color content survived: %q", out)
	}
}

func TestClean_ContrastingColorsKept(t *testing.T) {
	out, c := Clean(`<p style="color:white;background:black">readable</p>`)
	if c.SameColor != 0 {
		t.Fatalf("expected 0, got %d", c.SameColor)
	}
	if !strings.Contains(out, "readable") {
		t.Fatalf("content lost: %q", out)
	}
}

func TestClean_SameColorEquivalentForms(t *testing.T) {
	cases := []string{
		`<p style="color:#fff;background-color:#ffffff">x</p>`,
		`<p style="color:rgb(255,255,255);background:white">x</p>`,
		`<p style="color:#ABC;background:#aabbcc">x</p>`,
		`<p style="background:magenta;color:fuchsia">x</p>`,
	}
	for _, in := range cases {
		out, c := Clean(in)
		if c.SameColor != 1 {
			t.Fatalf("%s: expected 1 same-color element, got %d", in, c.SameColor)
		}
		if strings.Contains(out, ">x<") {
			t.Fatalf("%s: content survived: %q", in, out)
		}
	}
}

func TestClean_UnparseableColorFailsOpen(t *testing.T) {
	out, c := Clean(`<p style="color:var(--fg);background:var(--fg)">kept</p>`)
	if c.SameColor != 0 {
		t.Fatalf("unparseable colors must not match, got %d", c.SameColor)
	}
	if !strings.Contains(out, "kept") {
		t.Fatalf("content lost: %q", out)
	}
}

func TestClean_DangerousTags(t *testing.T) {
	in := `<html><head><meta charset="utf-8"><link rel="x" href="y"><style>p{}</style></head>` +
		`<body><script>evil()</script><noscript>ns</noscript><p>body</p></body></html>`
	out, c := Clean(in)
	if c.Script != 1 || c.Style != 1 || c.Noscript != 1 {
		t.Fatalf("tag counts wrong: %+v", c)
	}
	if c.MetaLink != 2 {
		t.Fatalf("meta+link must share one counter, got %d", c.MetaLink)
	}
	for _, frag := range []string{"evil()", "p{}", ">ns<", "charset"} {
		if strings.Contains(out, frag) {
			t.Fatalf("dangerous content %q survived: %q", frag, out)
		}
	}
	if !strings.Contains(out, "body") {
		t.Fatalf("body content lost: %q", out)
	}
}

func TestClean_Comments(t *testing.T) {
	in := `<p>a</p><!-- hidden instruction --><div><!-- another --></div>`
	out, c := Clean(in)
	if c.Comments != 2 {
		t.Fatalf("expected 2 comments, got %d", c.Comments)
	}
	if strings.Contains(out, "hidden instruction") || strings.Contains(out, "another") {
		t.Fatalf("comment survived: %q", out)
	}
}

func TestClean_CleanDocumentUnchangedCounts(t *testing.T) {
	in := `<html><body><h1>Title</h1><p>Plain paragraph.</p></body></html>`
	out, c := Clean(in)
	if c != (Counts{}) {
		t.Fatalf("expected zero counts, got %+v", c)
	}
	if !strings.Contains(out, "Title") || !strings.Contains(out, "Plain paragraph.") {
		t.Fatalf("content lost: %q", out)
	}
}

func TestNormalizeColor(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"white", "#ffffff", true},
		{"WHITE", "#ffffff", true},
		{" black ", "#000000", true},
		{"#fff", "#ffffff", true},
		{"#a1B2c3", "#a1b2c3", true},
		{"rgb(255, 255, 255)", "#ffffff", true},
		{"rgba(0,0,0,0.5)", "#000000", true},
		{"rgb(127.6, 0, 0)", "#800000", true},
		{"rgb(300, -5, 0)", "#ff0000", true},
		{"white !important", "#ffffff", true},
		{"var(--x)", "", false},
		{"inherit", "", false},
		{"#ffff", "", false},
	}
	for _, tc := range cases {
		got, ok := normalizeColor(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("normalizeColor(%q) = %q,%v want %q,%v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
