// File path: internal/linker/anchors.go
package linker

import (
	"strings"

	"golang.org/x/net/html"
)

// countAnchors parses the markup fragment and counts anchor tags whose href
// equals target; with an empty target every anchor counts. Used as a sanity
// signal on proposed bodies, never as a gate.
func countAnchors(markup, target string) int {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return 0
	}
	count := 0
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			if target == "" {
				count++
			} else {
				for _, attr := range n.Attr {
					if attr.Key == "href" && attr.Val == target {
						count++
						break
					}
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return count
}
