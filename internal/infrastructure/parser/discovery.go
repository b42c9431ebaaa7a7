package parser

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DiscoverBulletinLinks returns the distinct bulletin page URLs linked from
// an index page, resolved to absolute form against baseURL and sorted. The
// index does not always link every bulletin; completeness is not guaranteed.
func DiscoverBulletinLinks(doc *goquery.Document, baseURL string) []string {
	seen := map[string]struct{}{}
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if !strings.Contains(href, "visa-bulletin-for-") || !strings.HasSuffix(href, ".html") {
			return
		}
		resolved, err := resolveURL(baseURL, href)
		if err != nil {
			return
		}
		seen[resolved] = struct{}{}
	})

	links := make([]string, 0, len(seen))
	for link := range seen {
		links = append(links, link)
	}
	sort.Strings(links)
	return links
}

func resolveURL(base, ref string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base url %s: %w", base, err)
	}
	r, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("invalid link %s: %w", ref, err)
	}
	return b.ResolveReference(r).String(), nil
}
