// Package content scans the configured pages mapping into parsed content
// items. A mapping value that is a file yields one item; a directory yields
// one item per Markdown file directly inside it (non-recursive).
package content

import (
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	buildererr "github.com/gigglehq/giggle/internal/errors"
	"github.com/gigglehq/giggle/internal/frontmatter"
	"github.com/gigglehq/giggle/internal/logfields"
)

// Scan parses every source named by the pages mapping. Keys are processed in
// lexical order and directory entries in file-name order so the resulting
// slice never depends on filesystem enumeration order.
func Scan(pages map[string]string) ([]Item, error) {
	keys := make([]string, 0, len(pages))
	for k := range pages {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var items []Item
	for _, key := range keys {
		src := pages[key]
		info, err := os.Stat(src)
		if err != nil {
			return nil, buildererr.Wrap(err, buildererr.CategoryContent, "content source not found").
				WithContext("key", key).WithContext("path", src)
		}

		if info.IsDir() {
			dirItems, err := scanDirectory(key, src)
			if err != nil {
				return nil, err
			}
			items = append(items, dirItems...)
			continue
		}

		item, err := parseFile(key, src, key+".html", false)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func scanDirectory(key, dir string) ([]Item, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, buildererr.Wrap(err, buildererr.CategoryContent, "failed to read content directory").
			WithContext("key", key).WithContext("path", dir)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".md") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	items := make([]Item, 0, len(names))
	for _, name := range names {
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		out := path.Join(key, stem+".html")
		item, err := parseFile(key, filepath.Join(dir, name), out, true)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	slog.Debug("Scanned content directory", logfields.Key(key), logfields.Path(dir), slog.Int("items", len(items)))
	return items, nil
}

func parseFile(key, src, outputPath string, fromDir bool) (Item, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		return Item{}, buildererr.Wrap(err, buildererr.CategoryContent, "failed to read content file").
			WithContext("path", src)
	}

	doc, err := frontmatter.Split(data)
	if err != nil {
		return Item{}, buildererr.MissingFrontmatter(src, err)
	}
	meta, err := doc.Fields()
	if err != nil {
		return Item{}, buildererr.MissingFrontmatter(src, err)
	}

	item := Item{
		Key:           key,
		SourcePath:    src,
		OutputPath:    outputPath,
		FromDirectory: fromDir,
		Title:         metaString(meta, "title"),
		Description:   metaString(meta, "description"),
		RawDate:       metaString(meta, "date"),
		Tags:          metaTags(meta),
		Layout:        metaString(meta, "layout"),
		Draft:         metaBool(meta, "draft"),
		Meta:          meta,
		Body:          doc.Body,
	}
	if item.Title == "" {
		stem := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
		item.Title = stem
	}
	if item.RawDate != "" {
		if d, ok := parseDate(item.RawDate); ok {
			item.Date = d
		} else {
			slog.Warn("Unparseable date in frontmatter", logfields.Path(src), slog.String("date", item.RawDate))
		}
	}
	return item, nil
}
