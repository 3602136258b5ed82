package html

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var hiddenStylePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)display\s*:\s*none`),
	regexp.MustCompile(`(?i)visibility\s*:\s*hidden`),
	regexp.MustCompile(`(?i)font-size\s*:\s*0[^1-9]`),
	regexp.MustCompile(`(?i)opacity\s*:\s*0[^.]`),
}

func isHidden(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, a := range n.Attr {
		switch a.Key {
		case "hidden":
			return true
		case "aria-hidden":
			if strings.EqualFold(a.Val, "true") {
				return true
			}
		case "style":
			for _, pat := range hiddenStylePatterns {
				if pat.MatchString(a.Val) {
					return true
				}
			}
		}
	}
	return false
}

// skipped reports elements that never contribute text.
func skipped(n *html.Node) bool {
	switch n.DataAtom {
	case atom.Script, atom.Style, atom.Noscript, atom.Template:
		return true
	}
	return isHidden(n)
}

// boilerplate reports page chrome dropped in structured mode.
func boilerplate(n *html.Node) bool {
	switch n.DataAtom {
	case atom.Nav, atom.Footer, atom.Header, atom.Aside:
		return true
	}
	return false
}

// FindTitle returns the trimmed <title> text, or "".
func FindTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.DataAtom == atom.Title {
		return strings.TrimSpace(collectText(n))
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := FindTitle(c); t != "" {
			return t
		}
	}
	return ""
}

// StructuredText returns the visible content blocks of a page, one per line.
// Headings, paragraphs, list items, table rows, quotes and preformatted
// blocks each become a line. If no block is found, all visible text is used.
func StructuredText(root *html.Node) string {
	var blocks []string
	collectBlocks(root, &blocks)
	if len(blocks) == 0 {
		if body := findBody(root); body != nil {
			return collectText(body)
		}
		return collectText(root)
	}
	return strings.Join(blocks, "\n")
}

func collectBlocks(n *html.Node, blocks *[]string) {
	if n.Type == html.ElementNode {
		if n.DataAtom == atom.Head || skipped(n) || boilerplate(n) {
			return
		}

		switch n.DataAtom {
		case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
			atom.P, atom.Li, atom.Tr, atom.Blockquote, atom.Pre, atom.Dt, atom.Dd, atom.Figcaption:
			if text := collectText(n); text != "" {
				*blocks = append(*blocks, text)
			}
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectBlocks(c, blocks)
	}
}

// collectText joins the visible text of a subtree with single spaces.
func collectText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				if sb.Len() > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(text)
			}
		}
		if n.Type == html.ElementNode && skipped(n) {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Body {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
