package content

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFile(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	path, err := NewFile(dir, "Hello, World!", []string{"go", "web"}, true, now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "hello-world.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "title: Hello, World!")
	assert.Contains(t, content, "date: 2024-06-01")
	assert.Contains(t, content, "tags: [go, web]")
	assert.Contains(t, content, "draft: true")
}

func TestNewFileRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()

	_, err := NewFile(dir, "Post", nil, false, now)
	require.NoError(t, err)

	_, err = NewFile(dir, "Post", nil, false, now)
	require.Error(t, err)
}
