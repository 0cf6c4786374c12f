package commands

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gigglehq/giggle/internal/config"
	"github.com/gigglehq/giggle/internal/logfields"
)

// InitCmd scaffolds a new site: the two configuration files plus starter
// content and asset directories.
type InitCmd struct {
	Force      bool `help:"Overwrite existing configuration files"`
	NoStyle    bool `name:"no-style" help:"Skip creating the style configuration"`
	ConfigOnly bool `name:"config-only" help:"Only write configuration files, no starter content"`
}

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	if err := config.Init(root.SiteConfig, i.Force); err != nil {
		return err
	}
	slog.Info("Created site configuration", logfields.Path(root.SiteConfig))

	if !i.NoStyle {
		if err := config.InitStyle(root.StyleConfig, i.Force); err != nil {
			return err
		}
		slog.Info("Created style configuration", logfields.Path(root.StyleConfig))
	}

	if i.ConfigOnly {
		return nil
	}
	return scaffoldContent()
}

// scaffoldContent lays out the starter tree the example configuration
// points at. Existing files are left alone so re-running init is safe.
func scaffoldContent() error {
	for _, dir := range []string{"content/blogs", "assets"} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	starters := map[string]string{
		filepath.Join("content", "index.md"): `---
title: Home
description: Welcome to my site
---

# Welcome

This site was scaffolded by giggle. Edit ` + "`content/index.md`" + ` to get started.
`,
		filepath.Join("content", "about.md"): `---
title: About
---

Tell your readers who you are.
`,
		filepath.Join("content", "blogs", "hello-world.md"): `---
title: Hello, World
date: ` + "2024-01-01" + `
tags: [meta]
---

Your first post. Create more with ` + "`giggle new \"A Title\"`" + `.
`,
	}

	for path, body := range starters {
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			return err
		}
		slog.Info("Created starter content", logfields.Path(path))
	}
	return nil
}
