package detect

import (
	"net/url"
	"regexp"
)

// Markdown images render without user action, which makes them the
// lowest-friction exfiltration channel in agent-consumed text. Plain links
// are left alone.
var markdownImageRe = regexp.MustCompile(`!\[([^\]]*)\]\(([^)\s]+)\)`)

// Query values built from the base64 alphabet and long enough to carry
// smuggled data.
var base64TokenRe = regexp.MustCompile(`^[A-Za-z0-9+/]{20,}={0,2}$`)

// exfilParamNames are query parameter names conventionally used to carry
// stolen content.
var exfilParamNames = map[string]bool{
	"exfil":   true,
	"data":    true,
	"payload": true,
	"stolen":  true,
	"leak":    true,
	"extract": true,
	"dump":    true,
}

const (
	maxQueryValueLen = 100
	maxImageURLLen   = 500
)

// StripExfilURLs replaces markdown images whose URLs look like exfiltration
// channels with a plain-text placeholder carrying the alt text. URLs that
// fail to parse are left untouched.
func StripExfilURLs(s string) (string, int) {
	count := 0
	out := markdownImageRe.ReplaceAllStringFunc(s, func(m string) string {
		sub := markdownImageRe.FindStringSubmatch(m)
		alt, raw := sub[1], sub[2]
		if !suspiciousImageURL(raw) {
			return m
		}
		count++
		if alt == "" {
			return "[image removed]"
		}
		return "[image: " + alt + "]"
	})
	return out, count
}

func suspiciousImageURL(raw string) bool {
	if len(raw) > maxImageURLLen {
		return true
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	q, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		return false
	}
	for name, values := range q {
		if exfilParamNames[name] {
			return true
		}
		for _, v := range values {
			if len(v) > maxQueryValueLen {
				return true
			}
			if base64TokenRe.MatchString(v) {
				return true
			}
		}
	}
	return false
}
