package utils

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// numberRegex finds count/percentage tokens like "1,234", "87%" or "78".
var numberRegex = regexp.MustCompile(`\d{1,3}(?:[,\d]*)%?|\d+%?`)

// looseNumberRegex is the last-resort scan over the enclosing block.
var looseNumberRegex = regexp.MustCompile(`\d[\d,]*%?`)

// FindAssociatedNumber locates the first text node containing keyword
// (case-insensitive) and returns the numeric/percentage token nearest to it.
// The search order is fixed and pinned by tests:
//
//  1. full text of the enclosing element
//  2. nearest preceding text node outside that element
//  3. nearest following text node outside that element
//  4. any digit token anywhere in the enclosing element
//
// Returns "N/A" when the keyword is absent or no number is found. This is a
// proximity heuristic over drifting markup, not a structural lookup.
func FindAssociatedNumber(markup, keyword string) string {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return "N/A"
	}

	var texts []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			texts = append(texts, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	lowered := strings.ToLower(keyword)
	idx := -1
	for i, t := range texts {
		if strings.Contains(strings.ToLower(t.Data), lowered) {
			idx = i
			break
		}
	}
	if idx == -1 {
		return "N/A"
	}

	parent := texts[idx].Parent
	blockText := nodeText(parent)

	if m := numberRegex.FindString(blockText); m != "" {
		return m
	}
	for i := idx - 1; i >= 0; i-- {
		if inside(texts[i], parent) {
			continue
		}
		if s := strings.TrimSpace(texts[i].Data); s != "" {
			if m := numberRegex.FindString(s); m != "" {
				return m
			}
			break
		}
	}
	for i := idx + 1; i < len(texts); i++ {
		if inside(texts[i], parent) {
			continue
		}
		if s := strings.TrimSpace(texts[i].Data); s != "" {
			if m := numberRegex.FindString(s); m != "" {
				return m
			}
			break
		}
	}
	if m := looseNumberRegex.FindString(blockText); m != "" {
		return m
	}
	return "N/A"
}

func nodeText(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(strings.TrimSpace(n.Data))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}

func inside(n, ancestor *html.Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p == ancestor {
			return true
		}
	}
	return false
}
