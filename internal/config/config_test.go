package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	buildererr "github.com/gigglehq/giggle/internal/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_ValidConfig_ReturnsTypedAndTree(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "site.yaml", `
site:
  title: Test Site
pages:
  index: ./content/index.md
navigation:
  - name: Home
    link: index.html
  - name: Hidden
    link: hidden.html
    enabled: false
features:
  tag_pages: true
`)

	cfg, tree, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "Test Site", cfg.Site.Title)
	require.Equal(t, "./content/index.md", cfg.Pages["index"])
	require.True(t, cfg.Features.TagPages)
	require.True(t, cfg.Navigation[0].IsEnabled())
	require.False(t, cfg.Navigation[1].IsEnabled())

	title, ok := tree.Lookup("site.title")
	require.True(t, ok)
	require.Equal(t, "Test Site", title)
}

func TestLoad_MissingFile_ReturnsConfigNotFound(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	require.True(t, buildererr.IsCategory(err, buildererr.CategoryConfig))
	require.Contains(t, err.Error(), "not found")
}

func TestLoad_MalformedYAML_ReturnsConfigParse(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.yaml", "site: [unclosed\n")

	_, _, err := Load(path)
	require.Error(t, err)
	require.True(t, buildererr.IsCategory(err, buildererr.CategoryConfig))
	require.Contains(t, err.Error(), path)
}

func TestLoad_MissingTitle_ReturnsValidationError(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "site.yaml", "pages:\n  index: ./index.md\n")

	_, _, err := Load(path)
	require.Error(t, err)
	require.True(t, buildererr.IsCategory(err, buildererr.CategoryValidation))
	require.Contains(t, err.Error(), "site.title")
}

func TestLoad_MissingPages_ReturnsValidationError(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "site.yaml", "site:\n  title: T\n")

	_, _, err := Load(path)
	require.Error(t, err)
	require.True(t, buildererr.IsCategory(err, buildererr.CategoryValidation))
	require.Contains(t, err.Error(), "pages")
}

func TestLoad_DefaultsApplied(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "site.yaml", "site:\n  title: T\npages:\n  index: ./index.md\n")

	cfg, _, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "en", cfg.Site.Language)
	require.NotEmpty(t, cfg.Site.Favicon)
}

func TestLoad_ExpandsEnvironmentVariables(t *testing.T) {
	t.Setenv("GIGGLE_TEST_TITLE", "From Env")
	dir := t.TempDir()
	path := writeFile(t, dir, "site.yaml", "site:\n  title: ${GIGGLE_TEST_TITLE}\npages:\n  index: ./index.md\n")

	cfg, _, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "From Env", cfg.Site.Title)
}

func TestLoadStyle_EmptyPath_ReturnsEmptyTree(t *testing.T) {
	tree, err := LoadStyle("")
	require.NoError(t, err)
	require.Empty(t, tree)
}

func TestTree_Lookup(t *testing.T) {
	tree := Tree{
		"colors": map[string]any{"primary": "#123456"},
		"flat":   true,
	}

	v, ok := tree.Lookup("colors.primary")
	require.True(t, ok)
	require.Equal(t, "#123456", v)

	_, ok = tree.Lookup("colors.missing")
	require.False(t, ok)

	_, ok = tree.Lookup("flat.too.deep")
	require.False(t, ok)
}

func TestMerge_OverrideWinsAndNestedMapsMerge(t *testing.T) {
	base := Tree{
		"colors": map[string]any{"primary": "#111111", "accent": "#222222"},
		"title":  "base",
	}
	override := Tree{
		"colors": map[string]any{"primary": "#999999"},
	}

	merged := Merge(base, override)

	v, _ := merged.Lookup("colors.primary")
	require.Equal(t, "#999999", v)
	v, _ = merged.Lookup("colors.accent")
	require.Equal(t, "#222222", v)
	v, _ = merged.Lookup("title")
	require.Equal(t, "base", v)

	// merge must not alias the inputs
	merged["colors"].(map[string]any)["primary"] = "#000000"
	v, _ = base.Lookup("colors.primary")
	require.Equal(t, "#111111", v)
}

func TestWalkScalars_DeterministicOrder(t *testing.T) {
	tree := Tree{
		"b": map[string]any{"y": 2, "x": 1},
		"a": "first",
		"c": []any{"s0", "s1"},
	}

	var paths []string
	tree.WalkScalars(func(path string, _ any) { paths = append(paths, path) })

	require.Equal(t, []string{"a", "b.x", "b.y", "c.0", "c.1"}, paths)
}

func TestInit_RefusesOverwriteWithoutForce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.yaml")

	require.NoError(t, Init(path, false))
	require.Error(t, Init(path, false))
	require.NoError(t, Init(path, true))

	cfg, _, err := Load(path)
	require.NoError(t, err)
	require.NotEmpty(t, cfg.Site.Title)
	require.NotEmpty(t, cfg.Pages)
}
