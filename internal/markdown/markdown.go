// Package markdown renders Markdown bodies to HTML fragments.
package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM, extension.Typographer),
	goldmark.WithRendererOptions(
		// Content files are authored by the site owner; raw HTML passes
		// through so embeds keep working.
		html.WithUnsafe(),
	),
)

// Render converts a Markdown body (frontmatter already removed) into an HTML
// fragment. Output is deterministic for identical input.
func Render(body []byte) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert(body, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
