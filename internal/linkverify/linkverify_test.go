package linkverify

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractLinks(t *testing.T) {
	doc := `<html><head>
<link rel="stylesheet" href="style.css">
</head><body>
<a href="about.html">About</a>
<a href="https://example.org">External</a>
<img src="images/logo.png">
<script src="app.js"></script>
</body></html>`

	links, err := ExtractLinks(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, links, 5)
	assert.Equal(t, Link{URL: "style.css", Tag: "link", Attribute: "href"}, links[0])
	assert.Equal(t, "about.html", links[1].URL)
}

func TestResolveInternal(t *testing.T) {
	cases := []struct {
		page, url, target string
		internal          bool
	}{
		{"index.html", "about.html", "about.html", true},
		{"blogs/first.html", "../tags/go.html", "tags/go.html", true},
		{"index.html", "https://example.org", "", false},
		{"index.html", "mailto:me@example.org", "", false},
		{"index.html", "#section", "", false},
		{"index.html", "data:image/svg+xml,x", "", false},
		{"index.html", "/style.css", "style.css", true},
	}
	for _, c := range cases {
		target, internal := resolveInternal(c.page, c.url)
		assert.Equal(t, c.internal, internal, c.url)
		if internal {
			assert.Equal(t, c.target, target, c.url)
		}
	}
}

func TestVerifyTreeReportsMissingTargets(t *testing.T) {
	out := t.TempDir()
	write := func(rel, content string) {
		p := filepath.Join(out, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}

	write("index.html", `<a href="about.html">ok</a><a href="missing.html">bad</a>`)
	write("about.html", `<a href="../escape.html">bad</a>`)

	broken, err := VerifyTree(out)
	require.NoError(t, err)
	require.Len(t, broken, 2)
	assert.Equal(t, "about.html", broken[0].Page)
	assert.Equal(t, "missing.html", broken[1].URL)
}
