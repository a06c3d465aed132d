// Package detect holds the text-level detectors: fake protocol delimiters,
// encoded payloads that decode to instruction-like text, and markdown image
// URLs shaped like exfiltration channels. Detection tables are ordered and
// data-driven so each entry can be tested on its own.
package detect

import (
	"regexp"
)

// delimiterPatterns is the built-in set of fake protocol delimiters: chat
// markup role tags, instruction bracket tags, system prompt tags, and
// blank-line-prefixed turn markers. Matches are deleted outright; every
// occurrence counts individually.
var delimiterPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)<\|im_start\|>`),
	regexp.MustCompile(`(?i)<\|im_end\|>`),
	regexp.MustCompile(`(?i)<\|endoftext\|>`),
	regexp.MustCompile(`(?i)<\|eot_id\|>`),
	regexp.MustCompile(`(?i)<\|(system|user|assistant)\|>`),
	regexp.MustCompile(`(?i)\[INST\]`),
	regexp.MustCompile(`(?i)\[/INST\]`),
	regexp.MustCompile(`(?i)<<SYS>>`),
	regexp.MustCompile(`(?i)<</SYS>>`),
	regexp.MustCompile(`(?i)<(/?)system_?prompt>`),
	regexp.MustCompile(`(?i)</?system>`),
	regexp.MustCompile(`(?i)\n\s*\n(human|assistant|system|user):\s`),
}

// StripDelimiters deletes every built-in delimiter occurrence and returns the
// cleaned text with the number of deletions.
func StripDelimiters(s string) (string, int) {
	count := 0
	for _, re := range delimiterPatterns {
		s = re.ReplaceAllStringFunc(s, func(string) string {
			count++
			return ""
		})
	}
	return s, count
}

// CompilePatterns turns user-supplied literal strings into case-insensitive
// verbatim matchers. The literals are escaped, never interpreted as regular
// expressions.
func CompilePatterns(literals []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(literals))
	for _, lit := range literals {
		if lit == "" {
			continue
		}
		out = append(out, regexp.MustCompile(`(?i)`+regexp.QuoteMeta(lit)))
	}
	return out
}

// StripPatterns deletes every occurrence of the compiled custom patterns.
func StripPatterns(s string, patterns []*regexp.Regexp) (string, int) {
	count := 0
	for _, re := range patterns {
		s = re.ReplaceAllStringFunc(s, func(string) string {
			count++
			return ""
		})
	}
	return s, count
}
