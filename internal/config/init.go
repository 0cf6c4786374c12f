package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Init creates a new site configuration file with example content.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", path)
	}

	enabled := true
	example := Config{
		Site: SiteMeta{
			Title:       "My Giggle Site",
			Description: "A site built with giggle",
			Language:    "en",
		},
		Navigation: []NavigationEntry{
			{Name: "Home", Link: "index.html"},
			{Name: "About", Link: "about.html"},
			{Name: "Blogs", Link: "blogs.html", Path: "./content/blogs", Enabled: &enabled},
		},
		Pages: map[string]string{
			"index": "./content/index.md",
			"about": "./content/about.md",
			"blogs": "./content/blogs",
		},
		Features: Features{TagPages: true},
		Mover:    []string{"assets"},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// InitStyle creates a new style configuration file with example content.
func InitStyle(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("style file already exists: %s (use --force to overwrite)", path)
	}

	data, err := yaml.Marshal(map[string]any(DefaultStyle()))
	if err != nil {
		return fmt.Errorf("failed to marshal style config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write style file: %w", err)
	}
	return nil
}
