// Package htmlmeta derives a title and a summary from rendered HTML.
package htmlmeta

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Summary holds the text of the first heading and the first paragraph of a
// document. Missing elements leave the field empty.
type Summary struct {
	Headline       string
	FirstParagraph string
}

// Find walks the fragment in document order and records the first heading
// (h1-h6) and the first paragraph.
func Find(fragment string) (Summary, error) {
	nodes, err := html.ParseFragment(strings.NewReader(fragment), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		return Summary{}, fmt.Errorf("parse rendered HTML: %w", err)
	}

	var s Summary
	var foundHeading, foundParagraph bool
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if foundHeading && foundParagraph {
			return
		}
		if n.Type == html.ElementNode {
			switch {
			case isHeading(n) && !foundHeading:
				s.Headline = extractText(n)
				foundHeading = true
				return
			case n.DataAtom == atom.P && !foundParagraph:
				s.FirstParagraph = extractText(n)
				foundParagraph = true
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range nodes {
		walk(n)
	}
	return s, nil
}

func isHeading(n *html.Node) bool {
	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return true
	}
	return false
}

// extractText concatenates descendant text and collapses whitespace runs.
func extractText(n *html.Node) string {
	var b strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return strings.Join(strings.Fields(b.String()), " ")
}
