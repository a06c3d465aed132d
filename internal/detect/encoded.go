package detect

import (
	"encoding/base64"
	"encoding/hex"
	"regexp"
)

// Placeholder substituted for neutralized encoded spans.
const encodedPlaceholder = "[removed: encoded content]"

// EncodedOptions carries the policy knobs for encoded payload detection.
type EncodedOptions struct {
	// AllowDataURIs disables the data URI pass entirely.
	AllowDataURIs bool
	// MaxDecodeLength bounds the decoded size of base64 candidates worth
	// inspecting. Longer runs are treated as legitimate blobs and skipped.
	MaxDecodeLength int
}

// EncodedCounts reports neutralized spans per encoding.
type EncodedCounts struct {
	DataURIs int
	Base64   int
	Hex      int
}

var (
	// Text data URIs carry their payload inline as base64. When disallowed
	// they are removed whole, without decode inspection.
	dataURIRe = regexp.MustCompile(`(?i)data:text/[a-z0-9.+-]+;base64,[A-Za-z0-9+/]+={0,2}`)

	// Runs of base64 alphabet long enough to exclude incidental matches
	// (identifiers, short tokens).
	base64Re = regexp.MustCompile(`[A-Za-z0-9+/]{40,}={0,2}`)

	// Runs of two-hex-digit groups, optionally 0x/\x prefixed and separated
	// by whitespace, commas, or semicolons.
	hexRe = regexp.MustCompile(`(?:(?:0x|\\x)?[0-9A-Fa-f]{2}[,;\s]*){20,}`)

	hexNoise = regexp.MustCompile(`(?:0x|\\x|[,;\s])`)
)

// instructionPatterns is the keyword set applied to decoded payloads. A span
// is neutralized only when its decoded text matches one of these, so benign
// tokens, hashes, and binary blobs pass through untouched.
var instructionPatterns = []struct {
	name string
	re   *regexp.Regexp
}{
	{"override verb", regexp.MustCompile(`(?i)\b(ignore|disregard|forget|override)\b.{0,40}\b(instructions?|prompts?|rules|context|guidelines|training)\b`)},
	{"role reassignment", regexp.MustCompile(`(?i)you\s+are\s+now\b`)},
	{"new instruction", regexp.MustCompile(`(?i)new\s+instructions?\b`)},
	{"system prompt", regexp.MustCompile(`(?i)system\s+prompt`)},
	{"code execution", regexp.MustCompile(`(?i)\b(eval|exec|execute|subprocess|os\.system)\s*\(`)},
	{"credential keyword", regexp.MustCompile(`(?i)\b(api[_-]?key|password|passwd|secret[_-]?key|credentials?|auth[_-]?token)\b`)},
	{"shell command", regexp.MustCompile(`(?i)(\bcurl\s|\bwget\s|\bbash\s+-c\b|/bin/sh|\brm\s+-rf\b|\bpowershell\b)`)},
}

func looksLikeInstruction(decoded string) bool {
	for _, p := range instructionPatterns {
		if p.re.MatchString(decoded) {
			return true
		}
	}
	return false
}

// StripEncoded neutralizes encoded spans whose decoded content looks like an
// instruction. Passes run in a fixed order: data URIs first, so a URI's
// payload is removed whole before the generic base64 pass could match its
// interior, then bare base64, then hex.
func StripEncoded(s string, opts EncodedOptions) (string, EncodedCounts) {
	var c EncodedCounts

	if !opts.AllowDataURIs {
		s = dataURIRe.ReplaceAllStringFunc(s, func(string) string {
			c.DataURIs++
			return encodedPlaceholder
		})
	}

	// Encoded length exceeding the decode budget by the base64 expansion
	// factor marks a large legitimate blob.
	maxEncoded := opts.MaxDecodeLength + opts.MaxDecodeLength*2/5

	s = base64Re.ReplaceAllStringFunc(s, func(span string) string {
		if opts.MaxDecodeLength > 0 && len(span) > maxEncoded {
			return span
		}
		decoded, ok := decodeBase64(span)
		if !ok || !looksLikeInstruction(decoded) {
			return span
		}
		c.Base64++
		return encodedPlaceholder
	})

	s = hexRe.ReplaceAllStringFunc(s, func(span string) string {
		decoded, ok := decodeHex(span)
		if !ok || !looksLikeInstruction(decoded) {
			return span
		}
		c.Hex++
		return encodedPlaceholder
	})

	return s, c
}

func decodeBase64(span string) (string, bool) {
	if b, err := base64.StdEncoding.DecodeString(span); err == nil {
		return string(b), true
	}
	if b, err := base64.RawStdEncoding.DecodeString(span); err == nil {
		return string(b), true
	}
	return "", false
}

func decodeHex(span string) (string, bool) {
	digits := hexNoise.ReplaceAllString(span, "")
	if len(digits)%2 != 0 {
		return "", false
	}
	b, err := hex.DecodeString(digits)
	if err != nil {
		return "", false
	}
	return string(b), true
}
