package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRender_BasicMarkdown(t *testing.T) {
	out, err := Render([]byte("# Heading\n\nSome *text*.\n"))
	require.NoError(t, err)
	require.Contains(t, out, "<h1")
	require.Contains(t, out, "Heading")
	require.Contains(t, out, "<em>text</em>")
}

func TestRender_GFMTable(t *testing.T) {
	out, err := Render([]byte("| a | b |\n|---|---|\n| 1 | 2 |\n"))
	require.NoError(t, err)
	require.Contains(t, out, "<table>")
}

func TestRender_RawHTMLPassesThrough(t *testing.T) {
	out, err := Render([]byte("<div class=\"embed\">x</div>\n"))
	require.NoError(t, err)
	require.Contains(t, out, `<div class="embed">`)
}

func TestRender_Deterministic(t *testing.T) {
	src := []byte("# T\n\n- one\n- two\n")
	a, err := Render(src)
	require.NoError(t, err)
	b, err := Render(src)
	require.NoError(t, err)
	require.Equal(t, a, b)
}
