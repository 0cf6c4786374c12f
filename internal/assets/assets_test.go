package assets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyFilesAndDirectories(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(src, "robots.txt"), []byte("User-agent: *\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(src, "images", "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "images", "logo.png"), []byte("png"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "images", "nested", "icon.png"), []byte("png"), 0o644))

	n, err := Copy([]string{
		filepath.Join(src, "robots.txt"),
		filepath.Join(src, "images"),
	}, out)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	for _, p := range []string{
		"robots.txt",
		filepath.Join("images", "logo.png"),
		filepath.Join("images", "nested", "icon.png"),
	} {
		_, err := os.Stat(filepath.Join(out, p))
		assert.NoError(t, err, p)
	}
}

func TestCopySkipsMissingEntries(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "a.txt"), []byte("a"), 0o644))

	n, err := Copy([]string{
		filepath.Join(src, "does-not-exist"),
		filepath.Join(src, "a.txt"),
	}, out)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
