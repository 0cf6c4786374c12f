// Package site turns scanned content items into renderable page records:
// one record per output file, carrying the template name and the fully
// populated template locals. All listings are sorted deterministically so
// repeated builds of the same sources produce identical output.
package site

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/url"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/gigglehq/giggle/internal/config"
	"github.com/gigglehq/giggle/internal/content"
	"github.com/gigglehq/giggle/internal/logfields"
	"github.com/gigglehq/giggle/internal/render"
	"github.com/gigglehq/giggle/internal/slug"
	"github.com/gigglehq/giggle/internal/util/sets"
)

// PageRecord is one output HTML file to render.
type PageRecord struct {
	Path     string // output-relative path, forward-slashed
	Template string
	Data     map[string]any
}

// Builder assembles page records from content items and the site config.
type Builder struct {
	cfg           *config.Config
	includeDrafts bool
	titler        cases.Caser
}

// NewBuilder returns a builder for the given configuration. Draft items are
// skipped unless includeDrafts is set.
func NewBuilder(cfg *config.Config, includeDrafts bool) *Builder {
	return &Builder{
		cfg:           cfg,
		includeDrafts: includeDrafts,
		titler:        cases.Title(language.Und),
	}
}

// Build produces the full, sorted record set: one record per content item,
// a listing page per directory mapping, and, when the tag_pages feature is
// enabled, one page per tag plus the tag index.
func (b *Builder) Build(items []content.Item, bodies map[string]template.HTML) ([]PageRecord, error) {
	kept := make([]content.Item, 0, len(items))
	for _, it := range items {
		if it.Draft && !b.includeDrafts {
			slog.Debug("Skipping draft", logfields.Page(it.Link()))
			continue
		}
		kept = append(kept, it)
	}

	var records []PageRecord
	for _, it := range kept {
		body, ok := bodies[it.Link()]
		if !ok {
			return nil, fmt.Errorf("no rendered body for %s", it.Link())
		}
		records = append(records, b.itemRecord(it, body))
	}

	records = append(records, b.listingRecords(kept)...)
	if b.cfg.Features.TagPages {
		records = append(records, b.tagRecords(kept)...)
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Path < records[j].Path })
	return records, nil
}

func (b *Builder) itemRecord(it content.Item, body template.HTML) PageRecord {
	tpl := it.Layout
	if tpl == "" {
		if it.FromDirectory {
			tpl = render.TemplatePost
		} else {
			tpl = render.TemplatePage
		}
	}

	data := b.baseData(it.Link())
	data["Title"] = it.Title
	data["Description"] = it.Description
	data["Body"] = body
	data["Tags"] = b.tagViews(it, rootFor(it.Link()))
	data["Date"] = displayDate(it)
	data["Meta"] = it.Meta

	return PageRecord{Path: it.Link(), Template: tpl, Data: data}
}

// listingRecords builds one blog index per directory mapping, at
// "<key>.html" next to the directory's pages.
func (b *Builder) listingRecords(items []content.Item) []PageRecord {
	byKey := map[string][]content.Item{}
	for _, it := range items {
		if it.FromDirectory {
			byKey[it.Key] = append(byKey[it.Key], it)
		}
	}

	var records []PageRecord
	for _, key := range sortedKeys(byKey) {
		group := byKey[key]
		sortByDateDesc(group)

		outPath := key + ".html"
		data := b.baseData(outPath)
		data["Title"] = b.titler.String(key)
		data["Description"] = ""
		data["Posts"] = postViews(group)
		records = append(records, PageRecord{Path: outPath, Template: render.TemplateBlogIndex, Data: data})
	}
	return records
}

func (b *Builder) tagRecords(items []content.Item) []PageRecord {
	byTag := map[string][]content.Item{}
	for _, it := range items {
		seen := sets.New[string]()
		for _, tag := range it.Tags {
			if seen.Has(tag) {
				continue
			}
			seen.Add(tag)
			byTag[tag] = append(byTag[tag], it)
		}
	}

	var records []PageRecord
	var index []TagListEntry
	for _, tag := range sortedKeys(byTag) {
		group := byTag[tag]
		sortByDateDesc(group)

		outPath := path.Join("tags", slug.Make(tag)+".html")
		data := b.baseData(outPath)
		data["Title"] = tag
		data["Description"] = ""
		data["Tag"] = tag
		data["Posts"] = postViews(group)
		records = append(records, PageRecord{Path: outPath, Template: render.TemplateTag, Data: data})

		index = append(index, TagListEntry{
			Name:  tag,
			Link:  "tags/" + slug.Make(tag) + ".html",
			Count: len(group),
		})
	}

	data := b.baseData("tags.html")
	data["Title"] = "Tags"
	data["Description"] = ""
	data["TagList"] = index
	records = append(records, PageRecord{Path: "tags.html", Template: render.TemplateTagsIndex, Data: data})
	return records
}

// baseData populates the locals every template references. Templates are
// executed with missingkey=error, so every key must be present even when
// empty.
func (b *Builder) baseData(outPath string) map[string]any {
	root := rootFor(outPath)

	nav := make([]NavView, 0, len(b.cfg.Navigation))
	for _, entry := range b.cfg.Navigation {
		if !entry.IsEnabled() {
			continue
		}
		nav = append(nav, NavView{Name: entry.Name, Link: entry.Link})
	}

	social := make([]SocialView, 0, len(b.cfg.SocialLinks))
	for _, s := range b.cfg.SocialLinks {
		social = append(social, SocialView{Name: s.Name, Link: s.Link})
	}

	return map[string]any{
		"Site":    b.cfg.Site,
		"Root":    root,
		"Nav":     nav,
		"Social":  social,
		"Favicon": faviconURL(b.cfg.Site.Favicon, root),
	}
}

func (b *Builder) tagViews(it content.Item, root string) []TagView {
	if !b.cfg.Features.TagPages || len(it.Tags) == 0 {
		return nil
	}
	views := make([]TagView, 0, len(it.Tags))
	for _, tag := range it.Tags {
		views = append(views, TagView{
			Name: tag,
			Link: root + "tags/" + slug.Make(tag) + ".html",
		})
	}
	return views
}

// rootFor is the relative prefix from the given output path back to the
// site root, e.g. "" for "about.html" and "../" for "blogs/first.html".
func rootFor(outPath string) string {
	return strings.Repeat("../", strings.Count(outPath, "/"))
}

// faviconURL renders the favicon link target. A value containing a dot is
// treated as an asset path relative to the site root; anything else (an
// emoji in practice) becomes an inline SVG data URI.
func faviconURL(favicon, root string) template.URL {
	if strings.Contains(favicon, ".") {
		return template.URL(root + favicon)
	}
	svg := fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100"><text y=".9em" font-size="90">%s</text></svg>`,
		favicon,
	)
	return template.URL("data:image/svg+xml," + url.PathEscape(svg))
}

func displayDate(it content.Item) string {
	if !it.Date.IsZero() {
		return it.Date.Format("2006-01-02")
	}
	return it.RawDate
}

func postViews(group []content.Item) []PostView {
	views := make([]PostView, 0, len(group))
	for _, it := range group {
		views = append(views, PostView{
			Title:       it.Title,
			Link:        it.Link(),
			Date:        displayDate(it),
			Description: it.Description,
		})
	}
	return views
}

// sortByDateDesc orders newest first; undated items sink to the end. Ties
// break on title, then output path, so ordering is total.
func sortByDateDesc(group []content.Item) {
	sort.SliceStable(group, func(i, j int) bool {
		a, b := group[i], group[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		if a.Title != b.Title {
			return a.Title < b.Title
		}
		return a.OutputPath < b.OutputPath
	})
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
