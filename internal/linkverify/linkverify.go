// Package linkverify checks internal links in the rendered site. It walks
// the output tree, extracts href and src attributes from every HTML file,
// and reports internal targets that do not exist on disk. Verification is
// advisory: broken links are returned for warning-level reporting, never
// as a build failure.
package linkverify

import (
	"io"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/net/html"

	buildererr "github.com/gigglehq/giggle/internal/errors"
)

// Link is one extracted link reference.
type Link struct {
	URL       string
	Tag       string // a, img, link, script
	Attribute string // href or src
}

// BrokenLink is an internal link whose target file is missing.
type BrokenLink struct {
	Page   string // output-relative page the link appears on
	URL    string
	Target string // output-relative path the link resolves to
}

// VerifyTree checks every .html file under outDir and returns the broken
// internal links, sorted by page then URL.
func VerifyTree(outDir string) ([]BrokenLink, error) {
	var broken []BrokenLink
	err := filepath.WalkDir(outDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".html") {
			return nil
		}
		rel, err := filepath.Rel(outDir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		f, err := os.Open(p)
		if err != nil {
			return buildererr.Wrap(err, buildererr.CategoryOutput, "failed to open rendered page").WithContext("path", p)
		}
		links, perr := ExtractLinks(f)
		f.Close()
		if perr != nil {
			return perr
		}

		for _, l := range links {
			target, internal := resolveInternal(rel, l.URL)
			if !internal {
				continue
			}
			if _, err := os.Stat(filepath.Join(outDir, filepath.FromSlash(target))); os.IsNotExist(err) {
				broken = append(broken, BrokenLink{Page: rel, URL: l.URL, Target: target})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(broken, func(i, j int) bool {
		if broken[i].Page != broken[j].Page {
			return broken[i].Page < broken[j].Page
		}
		return broken[i].URL < broken[j].URL
	})
	return broken, nil
}

// ExtractLinks parses HTML and collects href/src references.
func ExtractLinks(r io.Reader) ([]Link, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, buildererr.Wrap(err, buildererr.CategoryOutput, "failed to parse rendered HTML")
	}

	var links []Link
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "a", "link":
				if v := getAttr(n, "href"); v != "" {
					links = append(links, Link{URL: v, Tag: n.Data, Attribute: "href"})
				}
			case "img", "script":
				if v := getAttr(n, "src"); v != "" {
					links = append(links, Link{URL: v, Tag: n.Data, Attribute: "src"})
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return links, nil
}

// resolveInternal maps a link found on page to an output-relative target
// path. External schemes, anchors, and data URIs are not internal.
func resolveInternal(page, raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "", false
	}
	if u.Path == "" { // pure fragment or query
		return "", false
	}
	target := u.Path
	if !strings.HasPrefix(target, "/") {
		target = path.Join(path.Dir(page), target)
	}
	target = strings.TrimPrefix(target, "/")
	if target == "" || strings.HasSuffix(target, "/") {
		target = path.Join(target, "index.html")
	}
	return target, true
}

func getAttr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}
