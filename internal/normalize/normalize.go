// Package normalize strips invisible and control characters that can hide
// text from a human reader while leaving it machine-readable, then collapses
// compatibility variants to canonical form with NFKC.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Counts reports how many characters each pass removed.
type Counts struct {
	ZeroWidth          int
	BidiControls       int
	VariationSelectors int
	TagCharacters      int
	ControlChars       int
}

// zeroWidth covers characters with no rendering width: zero-width
// space/joiner/non-joiner, directional marks, word joiner, invisible
// separator, BOM, and soft hyphen.
var zeroWidth = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x00AD, Hi: 0x00AD, Stride: 1}, // soft hyphen
		{Lo: 0x200B, Hi: 0x200F, Stride: 1}, // ZWSP, ZWNJ, ZWJ, LRM, RLM
		{Lo: 0x2060, Hi: 0x2060, Stride: 1}, // word joiner
		{Lo: 0x2063, Hi: 0x2063, Stride: 1}, // invisible separator
		{Lo: 0xFEFF, Hi: 0xFEFF, Stride: 1}, // BOM / ZWNBSP
	},
}

// bidiControls covers the directional embedding, override, and isolate
// controls that can visually reorder displayed text.
var bidiControls = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x202A, Hi: 0x202E, Stride: 1}, // LRE, RLE, PDF, LRO, RLO
		{Lo: 0x2066, Hi: 0x2069, Stride: 1}, // LRI, RLI, FSI, PDI
	},
}

var variationSelectors = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0xFE00, Hi: 0xFE0F, Stride: 1}, // variation selectors 1-16
	},
	R32: []unicode.Range32{
		{Lo: 0xE0100, Hi: 0xE01EF, Stride: 1}, // variation selectors supplement
	},
}

// tagCharacters is the deprecated Tags block, a known steganography vector.
var tagCharacters = &unicode.RangeTable{
	R32: []unicode.Range32{
		{Lo: 0xE0000, Hi: 0xE007F, Stride: 1},
	},
}

func isControl(r rune) bool {
	if r == '\n' || r == '\t' || r == '\r' {
		return false
	}
	return r < 0x20
}

// Clean strips the invisible character classes in a fixed order, counting
// each class against the text as that pass sees it, then applies NFKC to the
// stripped result. NFKC recanonicalizes rather than deletes, so it has no
// counter of its own.
func Clean(s string) (string, Counts) {
	var c Counts

	s = strip(s, func(r rune) bool { return unicode.Is(zeroWidth, r) }, &c.ZeroWidth)
	s = strip(s, func(r rune) bool { return unicode.Is(bidiControls, r) }, &c.BidiControls)
	s = strip(s, func(r rune) bool { return unicode.Is(variationSelectors, r) }, &c.VariationSelectors)
	s = strip(s, func(r rune) bool { return unicode.Is(tagCharacters, r) }, &c.TagCharacters)
	s = strip(s, isControl, &c.ControlChars)

	return norm.NFKC.String(s), c
}

func strip(s string, match func(rune) bool, n *int) string {
	removed := 0
	for _, r := range s {
		if match(r) {
			removed++
		}
	}
	if removed == 0 {
		return s
	}
	*n += removed
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if match(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
