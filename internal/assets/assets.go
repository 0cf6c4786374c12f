// Package assets copies static files and directories listed under the
// site config's "mover" key into the build output.
package assets

import (
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	buildererr "github.com/gigglehq/giggle/internal/errors"
	"github.com/gigglehq/giggle/internal/logfields"
)

// Copy moves every entry into outDir, preserving directory structure. A
// missing entry is logged and skipped; the remaining entries still copy.
// Returns the number of files written.
func Copy(entries []string, outDir string) (int, error) {
	copied := 0
	for _, entry := range entries {
		info, err := os.Stat(entry)
		if os.IsNotExist(err) {
			slog.Warn("Asset entry does not exist, skipping", logfields.Path(entry))
			continue
		}
		if err != nil {
			return copied, buildererr.Wrap(err, buildererr.CategoryOutput, "failed to stat asset").WithContext("path", entry)
		}

		if info.IsDir() {
			n, err := copyDir(entry, filepath.Join(outDir, filepath.Base(entry)))
			if err != nil {
				return copied, err
			}
			copied += n
			continue
		}
		if err := copyFile(entry, filepath.Join(outDir, filepath.Base(entry))); err != nil {
			return copied, err
		}
		copied++
	}
	return copied, nil
}

func copyDir(src, dst string) (int, error) {
	copied := 0
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if err := copyFile(path, target); err != nil {
			return err
		}
		copied++
		return nil
	})
	if err != nil {
		return copied, buildererr.Wrap(err, buildererr.CategoryOutput, "failed to copy asset directory").WithContext("path", src)
	}
	return copied, nil
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return buildererr.OutputWrite(dst, err)
	}
	in, err := os.Open(src)
	if err != nil {
		return buildererr.Wrap(err, buildererr.CategoryOutput, "failed to open asset").WithContext("path", src)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return buildererr.OutputWrite(dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return buildererr.OutputWrite(dst, err)
	}
	return nil
}
