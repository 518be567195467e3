package resolve

import (
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/wallgrab/wallgrab/internal/config"
)

// ListingResolver extracts detail-page links from a rendered archive page.
// It applies the policy's strategies in order and returns the result of
// the first strategy that yields at least one link. No match is not an
// error: the caller treats an empty listing as "nothing to do".
type ListingResolver struct {
	policy config.ListingPolicy
	logger *slog.Logger
}

// ListingOption configures a ListingResolver.
type ListingOption func(*ListingResolver)

// WithListingLogger sets the logger for strategy diagnostics.
func WithListingLogger(logger *slog.Logger) ListingOption {
	return func(r *ListingResolver) {
		r.logger = logger
	}
}

// NewListingResolver creates a ListingResolver with the given policy.
func NewListingResolver(policy config.ListingPolicy, opts ...ListingOption) *ListingResolver {
	r := &ListingResolver{policy: policy}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// listingStrategy is one lookup attempt over the parsed page.
type listingStrategy struct {
	name string
	find func(doc *html.Node) []string
}

// Resolve parses the markup and returns detail-page links in document
// order, deduplicated, resolved against archiveURL. An empty slice means
// no strategy matched.
func (r *ListingResolver) Resolve(archiveURL string, markup io.Reader) ([]string, error) {
	base, err := url.Parse(archiveURL)
	if err != nil {
		return nil, fmt.Errorf("invalid archive URL: %w", err)
	}

	doc, err := html.Parse(markup)
	if err != nil {
		return nil, fmt.Errorf("parse archive markup: %w", err)
	}

	strategies := []listingStrategy{
		{name: "container", find: r.findInContainers},
		{name: "href-pattern", find: func(doc *html.Node) []string {
			return findAnchorsBySubstring(doc, r.policy.HrefSubstrings)
		}},
		{name: "path-pattern", find: func(doc *html.Node) []string {
			return findAnchorsBySubstring(doc, r.policy.PathSubstrings)
		}},
	}

	for _, strategy := range strategies {
		links := resolveAndDedupe(base, strategy.find(doc))
		if len(links) > 0 {
			r.logger.Debug("listing strategy matched",
				"strategy", strategy.name,
				"links", len(links),
			)
			return links, nil
		}
		r.logger.Debug("listing strategy yielded nothing", "strategy", strategy.name)
	}

	return nil, nil
}

// findInContainers collects anchors inside elements whose class attribute
// mentions one of the configured container classes.
func (r *ListingResolver) findInContainers(doc *html.Node) []string {
	var hrefs []string
	walk(doc, func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		class := getAttr(n, "class")
		if class == "" || !containsAnyClass(class, r.policy.ContainerClasses) {
			return
		}
		walk(n, func(child *html.Node) {
			if child.Type == html.ElementNode && child.Data == "a" {
				if href := getAttr(child, "href"); href != "" {
					hrefs = append(hrefs, href)
				}
			}
		})
	})
	return hrefs
}

// findAnchorsBySubstring collects anchors whose href contains any of the
// given substrings.
func findAnchorsBySubstring(doc *html.Node, substrings []string) []string {
	var hrefs []string
	walk(doc, func(n *html.Node) {
		if n.Type != html.ElementNode || n.Data != "a" {
			return
		}
		href := getAttr(n, "href")
		if href == "" {
			return
		}
		for _, sub := range substrings {
			if strings.Contains(href, sub) {
				hrefs = append(hrefs, href)
				return
			}
		}
	})
	return hrefs
}

// resolveAndDedupe resolves hrefs against the base URL and drops
// duplicates while preserving document order.
func resolveAndDedupe(base *url.URL, hrefs []string) []string {
	seen := make(map[string]bool, len(hrefs))
	links := make([]string, 0, len(hrefs))
	for _, href := range hrefs {
		resolved := resolveHref(base, href)
		if resolved == "" || seen[resolved] {
			continue
		}
		seen[resolved] = true
		links = append(links, resolved)
	}
	return links
}

// resolveHref resolves a raw href against the base URL, filtering out
// non-navigable schemes.
func resolveHref(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || href == "#" ||
		strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "data:") {
		return ""
	}

	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(u).String()
}

// containsAnyClass checks whether the class attribute mentions any of the
// given class names. Matching is substring-per-token, mirroring the
// contains() semantics the site's markup was originally probed with.
func containsAnyClass(classAttr string, classes []string) bool {
	tokens := strings.Fields(classAttr)
	for _, token := range tokens {
		for _, class := range classes {
			if strings.Contains(token, class) {
				return true
			}
		}
	}
	return false
}

// walk visits every node in the subtree rooted at n.
func walk(n *html.Node, visit func(*html.Node)) {
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// hasAttr reports whether the node carries the attribute at all,
// regardless of value.
func hasAttr(n *html.Node, key string) bool {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return true
		}
	}
	return false
}
