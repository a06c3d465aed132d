// Package pipeline composes the sanitization stages into the two call
// paths: the full path for HTML and the text-only path for everything else.
// Both share the text stages in a fixed order: Unicode normalization,
// encoded payload detection, exfiltration URL detection, delimiter
// stripping.
package pipeline

import (
	"regexp"

	"github.com/timstarkk/mcp-safe-fetch/internal/detect"
	"github.com/timstarkk/mcp-safe-fetch/internal/extract"
	"github.com/timstarkk/mcp-safe-fetch/internal/htmlstrip"
	"github.com/timstarkk/mcp-safe-fetch/internal/normalize"
)

// Result is what every call returns. Sizes are byte lengths, not rune
// counts, so multi-byte text is measured meaningfully.
type Result struct {
	Content    string
	Stats      Stats
	InputSize  int
	OutputSize int
}

// Pipeline holds the policy and the patterns compiled from it. It keeps no
// other state: every call is independent, and one Pipeline may be used from
// any number of goroutines.
type Pipeline struct {
	cfg    Config
	custom []*regexp.Regexp
}

// New builds a pipeline from the policy. A missing or non-positive decode
// budget falls back to the default.
func New(cfg Config) *Pipeline {
	if cfg.MaxBase64DecodeLength <= 0 {
		cfg.MaxBase64DecodeLength = DefaultMaxBase64DecodeLength
	}
	return &Pipeline{
		cfg:    cfg,
		custom: detect.CompilePatterns(cfg.CustomPatterns),
	}
}

// Full runs the HTML path: structural stripping on the parsed tree, markup
// to readable text conversion, then the shared text stages.
func (p *Pipeline) Full(input string) Result {
	markup, hc := htmlstrip.Clean(input)
	text := extract.ToText(markup)

	var stats Stats
	stats.HiddenElements = hc.Hidden
	stats.OffscreenElements = hc.Offscreen
	stats.SameColorText = hc.SameColor
	stats.ScriptTags = hc.Script
	stats.StyleTags = hc.Style
	stats.NoscriptTags = hc.Noscript
	stats.MetaLinkTags = hc.MetaLink
	stats.HTMLComments = hc.Comments

	return p.finish(input, text, stats)
}

// TextOnly runs the shared text stages directly on the input. Structural
// counters stay at zero.
func (p *Pipeline) TextOnly(input string) Result {
	return p.finish(input, input, Stats{})
}

func (p *Pipeline) finish(input, text string, stats Stats) Result {
	text, nc := normalize.Clean(text)
	stats.ZeroWidthChars = nc.ZeroWidth
	stats.BidiControls = nc.BidiControls
	stats.VariationSelectors = nc.VariationSelectors
	stats.TagCharacters = nc.TagCharacters
	stats.ControlChars = nc.ControlChars

	text, ec := detect.StripEncoded(text, detect.EncodedOptions{
		AllowDataURIs:   p.cfg.AllowDataURIs,
		MaxDecodeLength: p.cfg.MaxBase64DecodeLength,
	})
	stats.DataURIs = ec.DataURIs
	stats.Base64Payloads = ec.Base64
	stats.HexPayloads = ec.Hex

	text, exfil := detect.StripExfilURLs(text)
	stats.ExfiltrationURLs = exfil

	text, delims := detect.StripDelimiters(text)
	stats.LLMDelimiters = delims

	text, custom := detect.StripPatterns(text, p.custom)
	stats.CustomPatterns = custom

	return Result{
		Content:    text,
		Stats:      stats,
		InputSize:  len(input),
		OutputSize: len(text),
	}
}
