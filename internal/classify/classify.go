// Package classify decides which sanitization pipeline applies to a piece
// of untrusted content: the full HTML path or the text-only path.
package classify

import (
	"path/filepath"
	"regexp"
	"strings"
)

// htmlExtensions is the extension allowlist. A matching name wins
// unconditionally over content sniffing.
var htmlExtensions = map[string]bool{
	".html":  true,
	".htm":   true,
	".xhtml": true,
	".svg":   true,
}

// htmlPrefix matches optional leading whitespace followed by a doctype or an
// opening <html> tag. Deliberately narrow: markup buried deep in a text body
// does not flip the decision.
var htmlPrefix = regexp.MustCompile(`(?i)^\s*(<!doctype\s+html|<html[\s>])`)

// IsHTML reports whether content should go through the full HTML pipeline.
// name is an optional file name, path, or URL path; pass "" when unknown.
func IsHTML(content, name string) bool {
	if name != "" {
		ext := strings.ToLower(filepath.Ext(name))
		if htmlExtensions[ext] {
			return true
		}
	}
	return htmlPrefix.MatchString(content)
}
