package content

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	buildererr "github.com/gigglehq/giggle/internal/errors"
	"github.com/gigglehq/giggle/internal/slug"
)

// NewFile scaffolds a Markdown source with a frontmatter skeleton at
// dir/<slug>.md and returns the created path. Existing files are never
// overwritten.
func NewFile(dir, title string, tags []string, draft bool, now time.Time) (string, error) {
	name := slug.Make(title)
	if name == "" {
		return "", buildererr.New(buildererr.CategoryValidation, "title produces an empty file name").
			WithContext("title", title)
	}

	path := filepath.Join(dir, name+".md")
	if _, err := os.Stat(path); err == nil {
		return "", buildererr.New(buildererr.CategoryValidation, "content file already exists").
			WithContext("path", path)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", buildererr.OutputWrite(dir, err)
	}

	var sb strings.Builder
	sb.WriteString("---\n")
	fmt.Fprintf(&sb, "title: %s\n", title)
	fmt.Fprintf(&sb, "date: %s\n", now.Format("2006-01-02"))
	if len(tags) > 0 {
		fmt.Fprintf(&sb, "tags: [%s]\n", strings.Join(tags, ", "))
	}
	if draft {
		sb.WriteString("draft: true\n")
	}
	sb.WriteString("---\n\n")

	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return "", buildererr.OutputWrite(path, err)
	}
	return path, nil
}
