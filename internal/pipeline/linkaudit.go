package pipeline

import (
	"net/url"
	"path"
	"strings"

	"golang.org/x/net/html"
)

// LocalLink is a same-site reference found in a rendered page.
type LocalLink struct {
	Tag   string // "a" or "img"
	Attr  string // "href" or "src"
	Value string // attribute value as written
	Path  string // site-absolute path, e.g. "/blog/post/index.html"
}

// LocalLinks parses a rendered page and returns every a[href] and img[src]
// that points inside the site. pagePath is the page's site-absolute path
// (used to resolve relative links); basePath is stripped from root-relative
// values.
//
// Skipped:
//   - URLs with a scheme (http:, https:, mailto:, data:, ...)
//   - protocol-relative URLs (//host/...)
//   - pure fragment links (#section)
//   - empty values
func LocalLinks(page, pagePath, basePath string) ([]LocalLink, error) {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return nil, err
	}

	var links []LocalLink
	collectLinks(doc, func(tag, attr, val string) {
		p, ok := resolveLocal(val, pagePath, basePath)
		if !ok {
			return
		}
		links = append(links, LocalLink{Tag: tag, Attr: attr, Value: val, Path: p})
	})
	return links, nil
}

// collectLinks traverses the DOM and reports link attributes.
func collectLinks(n *html.Node, visit func(tag, attr, val string)) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "img":
			visitAttr(n, "src", visit)
		case "a":
			visitAttr(n, "href", visit)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectLinks(c, visit)
	}
}

func visitAttr(n *html.Node, name string, visit func(tag, attr, val string)) {
	for _, attr := range n.Attr {
		if attr.Key == name {
			visit(n.Data, name, attr.Val)
		}
	}
}

// resolveLocal converts a link value to a site-absolute, cleaned path.
func resolveLocal(val, pagePath, basePath string) (string, bool) {
	if val == "" || strings.HasPrefix(val, "#") || strings.HasPrefix(val, "//") {
		return "", false
	}

	u, err := url.Parse(val)
	if err != nil || u.Scheme != "" || u.Host != "" || u.Path == "" {
		return "", false
	}

	p := u.Path
	if strings.HasPrefix(p, "/") {
		if base := strings.TrimSuffix(basePath, "/"); base != "" {
			if p == base {
				return "/", true
			}
			trimmed, ok := strings.CutPrefix(p, base+"/")
			if !ok {
				return "", false
			}
			p = "/" + trimmed
		}
		return path.Clean(p), true
	}

	return path.Join(path.Dir(pagePath), p), true
}
