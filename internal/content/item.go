package content

import (
	"fmt"
	"strings"
	"time"
)

// Item is one parsed Markdown source. Immutable once scanned.
type Item struct {
	Key           string // pages mapping key this item was scanned under
	SourcePath    string
	OutputPath    string // output-relative path, e.g. "about.html", "blogs/first.html"
	FromDirectory bool   // true when enumerated from a directory mapping

	Title       string
	Description string
	Date        time.Time
	RawDate     string
	Tags        []string
	Layout      string
	Draft       bool

	Meta map[string]any // full frontmatter, for template locals
	Body []byte         // raw Markdown, frontmatter removed
}

// Link is the output path in URL form, always forward-slashed.
func (it Item) Link() string {
	return strings.ReplaceAll(it.OutputPath, "\\", "/")
}

var dateLayouts = []string{"2006-01-02", "2006-01-02 15:04", time.RFC3339}

func parseDate(raw string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// metaString fetches a frontmatter field as a string, tolerating scalar
// YAML types like dates and numbers.
func metaString(meta map[string]any, key string) string {
	v, ok := meta[key]
	if !ok || v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case time.Time:
		return val.Format("2006-01-02")
	default:
		return fmt.Sprintf("%v", val)
	}
}

// metaTags accepts both YAML list form and the comma-separated string form
// seen in older content files.
func metaTags(meta map[string]any) []string {
	v, ok := meta["tags"]
	if !ok || v == nil {
		return nil
	}
	var out []string
	switch val := v.(type) {
	case []any:
		for _, item := range val {
			if s := strings.TrimSpace(fmt.Sprintf("%v", item)); s != "" {
				out = append(out, s)
			}
		}
	case string:
		for _, part := range strings.Split(strings.Trim(val, "[]"), ",") {
			if s := strings.TrimSpace(part); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

func metaBool(meta map[string]any, key string) bool {
	v, ok := meta[key]
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}
