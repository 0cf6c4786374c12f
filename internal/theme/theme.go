// Package theme installs and lists site themes. A theme is a git repository
// containing template overrides and a style config; installing clones it
// into the local themes directory.
package theme

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	buildererr "github.com/gigglehq/giggle/internal/errors"
	"github.com/gigglehq/giggle/internal/logfields"
)

// DefaultDir is the themes directory relative to the site root.
const DefaultDir = "themes"

// Install clones the theme repository into dir/<name>. An empty branch
// clones the remote default branch. Installing over an existing theme is an
// error; remove it first.
func Install(ctx context.Context, dir, name, url, branch string) (string, error) {
	dest := filepath.Join(dir, name)
	if _, err := os.Stat(dest); err == nil {
		return "", buildererr.New(buildererr.CategoryTheme, "theme is already installed").WithContext("theme", name)
	}

	opts := &git.CloneOptions{URL: url, Depth: 1, SingleBranch: true}
	if branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(branch)
	}

	repo, err := git.PlainCloneContext(ctx, dest, false, opts)
	if err != nil {
		_ = os.RemoveAll(dest)
		return "", buildererr.Wrap(err, buildererr.CategoryTheme, "failed to clone theme repository").
			WithContext("theme", name).WithContext("url", url)
	}

	if ref, err := repo.Head(); err == nil {
		slog.Info("Theme installed",
			slog.String("theme", name),
			slog.String("commit", ref.Hash().String()[:8]),
			logfields.Path(dest))
	}
	return dest, nil
}

// List returns the installed theme names, sorted.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, buildererr.Wrap(err, buildererr.CategoryTheme, "failed to read themes directory").WithContext("path", dir)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// TemplatesDir returns the template override directory of an installed
// theme, or an error when the theme is not installed.
func TemplatesDir(dir, name string) (string, error) {
	path := filepath.Join(dir, name, "templates")
	if _, err := os.Stat(path); err != nil {
		return "", buildererr.New(buildererr.CategoryTheme, "theme has no templates directory").WithContext("theme", name)
	}
	return path, nil
}
