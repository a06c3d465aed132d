// Package htmlstrip removes the structural hiding techniques from parsed
// HTML: hidden and off-screen elements, same-color text, dangerous tags, and
// comments. Each pass removes whole subtrees, so later passes never
// re-examine removed content.
package htmlstrip

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// Counts holds the structural counters, one per removal category. Meta and
// link removals share a counter.
type Counts struct {
	Hidden    int
	Offscreen int
	SameColor int
	Script    int
	Style     int
	Noscript  int
	MetaLink  int
	Comments  int
}

var (
	displayNoneRe      = regexp.MustCompile(`(?i)display\s*:\s*none`)
	visibilityHiddenRe = regexp.MustCompile(`(?i)visibility\s*:\s*hidden`)
	opacityZeroRe      = regexp.MustCompile(`(?i)opacity\s*:\s*0+(\.0+)?\s*(;|$)`)

	positionRe      = regexp.MustCompile(`(?i)position\s*:\s*(absolute|fixed)`)
	negativeOffsetRe = regexp.MustCompile(`(?i)(?:left|top)\s*:\s*-(\d+)`)
	collapsedClipRe = regexp.MustCompile(`(?i)clip\s*:\s*rect\(\s*0(?:px)?\s*[, ]\s*0(?:px)?\s*[, ]\s*0(?:px)?\s*[, ]\s*0(?:px)?\s*\)`)
	fullInsetRe     = regexp.MustCompile(`(?i)clip-path\s*:\s*inset\(\s*(?:50|100)%\s*\)`)
	zeroFontRe      = regexp.MustCompile(`(?i)font-size\s*:\s*0+(?:px|pt|em|rem|%)?\s*(;|$)`)
	negativeIndentRe = regexp.MustCompile(`(?i)text-indent\s*:\s*-(\d+)`)
)

// Thresholds separating "nudged" from "pushed off the page".
const (
	offscreenOffsetPx = 500
	offscreenIndentPx = 100
)

// Clean parses markup, strips structural hiding constructs in a fixed order,
// and serializes the mutated tree back to a markup string. Unparseable input
// is returned unchanged with zero counts.
func Clean(input string) (string, Counts) {
	var c Counts
	root, err := html.Parse(strings.NewReader(input))
	if err != nil || root == nil {
		return input, c
	}

	c.Hidden = removeElements(root, isHidden)
	c.Offscreen = removeElements(root, isOffscreen)
	c.SameColor = removeElements(root, isSameColorText)

	c.Script = removeElements(root, isTag("script"))
	c.Style = removeElements(root, isTag("style"))
	c.Noscript = removeElements(root, isTag("noscript"))
	c.MetaLink = removeElements(root, isTag("meta")) + removeElements(root, isTag("link"))

	c.Comments = removeComments(root)

	var b strings.Builder
	if err := html.Render(&b, root); err != nil {
		return input, c
	}
	return b.String(), c
}

// removeElements detaches every element subtree matching the predicate and
// returns the number of top-level matches. Descendants of a removed subtree
// are neither visited nor counted.
func removeElements(root *html.Node, match func(*html.Node) bool) int {
	var victims []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && match(c) {
				victims = append(victims, c)
				continue
			}
			walk(c)
		}
	}
	walk(root)
	for _, v := range victims {
		v.Parent.RemoveChild(v)
	}
	return len(victims)
}

func removeComments(root *html.Node) int {
	var victims []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.CommentNode {
				victims = append(victims, c)
				continue
			}
			walk(c)
		}
	}
	walk(root)
	for _, v := range victims {
		v.Parent.RemoveChild(v)
	}
	return len(victims)
}

func isTag(name string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return strings.EqualFold(n.Data, name)
	}
}

func attrValue(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val, true
		}
	}
	return "", false
}

func isHidden(n *html.Node) bool {
	if _, ok := attrValue(n, "hidden"); ok {
		return true
	}
	style, ok := attrValue(n, "style")
	if !ok {
		return false
	}
	return displayNoneRe.MatchString(style) ||
		visibilityHiddenRe.MatchString(style) ||
		opacityZeroRe.MatchString(style)
}

func isOffscreen(n *html.Node) bool {
	style, ok := attrValue(n, "style")
	if !ok {
		return false
	}
	if positionRe.MatchString(style) {
		if m := negativeOffsetRe.FindStringSubmatch(style); m != nil {
			if px, err := strconv.Atoi(m[1]); err == nil && px >= offscreenOffsetPx {
				return true
			}
		}
	}
	if collapsedClipRe.MatchString(style) || fullInsetRe.MatchString(style) {
		return true
	}
	if zeroFontRe.MatchString(style) {
		return true
	}
	if m := negativeIndentRe.FindStringSubmatch(style); m != nil {
		if px, err := strconv.Atoi(m[1]); err == nil && px >= offscreenIndentPx {
			return true
		}
	}
	return false
}

var (
	fgColorRe = regexp.MustCompile(`(?i)(?:^|;)\s*color\s*:\s*([^;]+)`)
	bgColorRe = regexp.MustCompile(`(?i)background(?:-color)?\s*:\s*([^;]+)`)
)

// isSameColorText matches elements whose inline foreground and background
// colors normalize to the same value. Unparseable color tokens fail open.
func isSameColorText(n *html.Node) bool {
	style, ok := attrValue(n, "style")
	if !ok {
		return false
	}
	fgMatch := fgColorRe.FindStringSubmatch(style)
	bgMatch := bgColorRe.FindStringSubmatch(style)
	if fgMatch == nil || bgMatch == nil {
		return false
	}
	fg, ok := normalizeColor(fgMatch[1])
	if !ok {
		return false
	}
	bg, ok := normalizeColor(bgMatch[1])
	if !ok {
		return false
	}
	return fg == bg
}
