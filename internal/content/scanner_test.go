package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	buildererr "github.com/gigglehq/giggle/internal/errors"
)

func writeContent(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestScan_SingleFile_ProducesOneItem(t *testing.T) {
	dir := t.TempDir()
	src := writeContent(t, dir, "about.md", "---\ntitle: About\ndate: 2024-01-15\ntags:\n  - meta\n---\n# About\n")

	items, err := Scan(map[string]string{"about": src})
	require.NoError(t, err)
	require.Len(t, items, 1)

	it := items[0]
	require.Equal(t, "about", it.Key)
	require.Equal(t, "about.html", it.OutputPath)
	require.False(t, it.FromDirectory)
	require.Equal(t, "About", it.Title)
	require.Equal(t, []string{"meta"}, it.Tags)
	require.Equal(t, 2024, it.Date.Year())
	require.Equal(t, "# About\n", string(it.Body))
}

func TestScan_Directory_OneItemPerMarkdownFile(t *testing.T) {
	dir := t.TempDir()
	blogDir := filepath.Join(dir, "blog")
	writeContent(t, blogDir, "c.md", "---\ntitle: C\n---\nbody c\n")
	writeContent(t, blogDir, "a.md", "---\ntitle: A\n---\nbody a\n")
	writeContent(t, blogDir, "b.md", "---\ntitle: B\n---\nbody b\n")
	writeContent(t, blogDir, "ignored.txt", "not markdown")
	require.NoError(t, os.MkdirAll(filepath.Join(blogDir, "nested"), 0o755))

	items, err := Scan(map[string]string{"blogs": blogDir})
	require.NoError(t, err)
	require.Len(t, items, 3)

	// sorted by file name, not filesystem order
	require.Equal(t, "blogs/a.html", items[0].OutputPath)
	require.Equal(t, "blogs/b.html", items[1].OutputPath)
	require.Equal(t, "blogs/c.html", items[2].OutputPath)
	for _, it := range items {
		require.True(t, it.FromDirectory)
		require.Equal(t, "blogs", it.Key)
	}
}

func TestScan_NoFrontmatter_TreatedAsBody(t *testing.T) {
	dir := t.TempDir()
	src := writeContent(t, dir, "plain.md", "# Just A Page\n\ncontent\n")

	items, err := Scan(map[string]string{"plain": src})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "plain", items[0].Title) // falls back to file stem
	require.Empty(t, items[0].Tags)
	require.Contains(t, string(items[0].Body), "# Just A Page")
}

func TestScan_MalformedFrontmatter_IsFatal(t *testing.T) {
	dir := t.TempDir()
	src := writeContent(t, dir, "broken.md", "---\ntitle: Broken\n# no closing delimiter\n")

	_, err := Scan(map[string]string{"broken": src})
	require.Error(t, err)
	require.True(t, buildererr.IsCategory(err, buildererr.CategoryContent))
	require.Contains(t, err.Error(), src)
}

func TestScan_MissingSource_IsFatal(t *testing.T) {
	_, err := Scan(map[string]string{"gone": filepath.Join(t.TempDir(), "gone.md")})
	require.Error(t, err)
	require.True(t, buildererr.IsCategory(err, buildererr.CategoryContent))
}

func TestScan_CommaSeparatedTags(t *testing.T) {
	dir := t.TempDir()
	src := writeContent(t, dir, "page.md", "---\ntitle: P\ntags: go, web , ssg\n---\nbody\n")

	items, err := Scan(map[string]string{"page": src})
	require.NoError(t, err)
	require.Equal(t, []string{"go", "web", "ssg"}, items[0].Tags)
}

func TestScan_DraftFlagParsed(t *testing.T) {
	dir := t.TempDir()
	src := writeContent(t, dir, "wip.md", "---\ntitle: WIP\ndraft: true\n---\nbody\n")

	items, err := Scan(map[string]string{"wip": src})
	require.NoError(t, err)
	require.True(t, items[0].Draft)
}
