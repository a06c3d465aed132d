// Package extract converts cleaned HTML markup into a lighter-weight
// readable text format. Block structure becomes markdown-style headings and
// list items, links and images become markdown syntax, so the text-level
// detectors downstream see images in a uniform shape.
package extract

import (
	"strings"

	"golang.org/x/net/html"
)

// ToText renders markup as readable text. Unparseable input is returned
// unchanged.
func ToText(markup string) string {
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil || root == nil {
		return markup
	}
	content := findFirst(root, "body")
	if content == nil {
		content = root
	}
	var b strings.Builder
	collectText(&b, content, false)
	return normalizeWhitespace(b.String())
}

func findFirst(n *html.Node, tag string) *html.Node {
	var res *html.Node
	var dfs func(*html.Node)
	dfs = func(cur *html.Node) {
		if res != nil {
			return
		}
		if cur.Type == html.ElementNode && strings.EqualFold(cur.Data, tag) {
			res = cur
			return
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			dfs(c)
			if res != nil {
				return
			}
		}
	}
	dfs(n)
	return res
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

// textContent flattens the text nodes under n into one space-collapsed string.
func textContent(n *html.Node) string {
	var b strings.Builder
	var dfs func(*html.Node)
	dfs = func(cur *html.Node) {
		if cur.Type == html.TextNode {
			b.WriteString(cur.Data)
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			dfs(c)
		}
	}
	dfs(n)
	return strings.TrimSpace(collapseSpaces(b.String()))
}

func collectText(b *strings.Builder, n *html.Node, inPre bool) {
	if n.Type == html.ElementNode {
		name := strings.ToLower(n.Data)
		switch name {
		case "head", "iframe", "template":
			return
		case "a":
			// [text](href); bare text when there is no usable href.
			href := strings.TrimSpace(attr(n, "href"))
			text := textContent(n)
			if href != "" && text != "" {
				b.WriteString("[" + text + "](" + href + ")")
				return
			}
		case "img":
			src := strings.TrimSpace(attr(n, "src"))
			if src != "" {
				b.WriteString("![" + attr(n, "alt") + "](" + src + ")")
			}
			return
		case "pre", "code":
			inPre = true
		case "br", "hr":
			b.WriteString("\n")
		case "h1", "h2", "h3", "h4", "h5", "h6":
			b.WriteString("\n" + strings.Repeat("#", int(name[1]-'0')) + " ")
		case "li":
			b.WriteString("\n- ")
		case "p", "ul", "ol", "div", "table", "tr", "blockquote":
			b.WriteString("\n")
		}
	}

	if n.Type == html.TextNode {
		data := n.Data
		if !inPre {
			data = strings.ReplaceAll(data, "\t", " ")
			data = strings.ReplaceAll(data, "\r", " ")
		}
		b.WriteString(data)
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(b, c, inPre)
	}

	if n.Type == html.ElementNode {
		switch strings.ToLower(n.Data) {
		case "p", "h1", "h2", "h3", "h4", "h5", "h6", "blockquote":
			b.WriteString("\n\n")
		case "li", "tr":
			b.WriteString("\n")
		case "pre", "code":
			b.WriteString("\n")
		}
	}
}

func normalizeWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			// keep at most one consecutive blank, none at the start
			if len(out) == 0 || out[len(out)-1] == "" {
				continue
			}
			out = append(out, "")
			continue
		}
		out = append(out, collapseSpaces(trimmed))
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}

func collapseSpaces(s string) string {
	var b strings.Builder
	lastSpace := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
			continue
		}
		b.WriteRune(r)
		lastSpace = false
	}
	return b.String()
}
