// Package config loads and validates the two YAML configuration documents a
// site is built from: the site config (title, navigation, pages, features)
// and the style config (colors, typography, styles). Both are also retained
// as generic Trees so the resolver can substitute {a.b.c} references.
package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	buildererr "github.com/gigglehq/giggle/internal/errors"
)

// Config is the typed site configuration schema.
type Config struct {
	Site        SiteMeta          `yaml:"site"`
	SocialLinks []SocialLink      `yaml:"social_links,omitempty"`
	Navigation  []NavigationEntry `yaml:"navigation,omitempty"`
	Pages       map[string]string `yaml:"pages"`
	Features    Features          `yaml:"features,omitempty"`
	Components  map[string]any    `yaml:"components,omitempty"`
	Mover       []string          `yaml:"mover,omitempty"`
	Templates   string            `yaml:"templates,omitempty"`
}

// SiteMeta holds site identity fields.
type SiteMeta struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	Author      string `yaml:"author,omitempty"`
	URL         string `yaml:"url,omitempty"`
	Language    string `yaml:"language,omitempty"`
	Favicon     string `yaml:"favicon,omitempty"`
}

// SocialLink is one external profile link rendered in the footer.
type SocialLink struct {
	Name string `yaml:"name"`
	Link string `yaml:"link"`
	Icon string `yaml:"icon,omitempty"`
}

// NavigationEntry is one navbar item. Order in the sequence is the render
// order. Enabled defaults to true when omitted.
type NavigationEntry struct {
	Name    string `yaml:"name"`
	Link    string `yaml:"link"`
	Path    string `yaml:"path,omitempty"`
	Enabled *bool  `yaml:"enabled,omitempty"`
}

// IsEnabled reports whether the entry should be rendered.
func (n NavigationEntry) IsEnabled() bool {
	return n.Enabled == nil || *n.Enabled
}

// Features are the build feature flags.
type Features struct {
	TagPages bool `yaml:"tag_pages,omitempty"`
}

// Load reads, validates, and defaults the site configuration. The raw tree
// is returned alongside the typed config for variable resolution.
func Load(path string) (*Config, Tree, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, nil, buildererr.ConfigParse(path, err)
	}
	// Decode into a plain map so nested mappings are map[string]any, the
	// invariant Tree documents; yaml.v3 would otherwise type them as Tree.
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, nil, buildererr.ConfigParse(path, err)
	}
	tree := Tree(raw)
	if tree == nil {
		tree = Tree{}
	}

	applyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, nil, err
	}
	return &cfg, tree, nil
}

// LoadStyle reads the style configuration into a generic tree. An empty path
// yields an empty tree (unstyled sites are valid).
func LoadStyle(path string) (Tree, error) {
	if path == "" {
		return Tree{}, nil
	}
	data, err := readConfigFile(path)
	if err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, buildererr.ConfigParse(path, err)
	}
	tree := Tree(raw)
	if tree == nil {
		tree = Tree{}
	}
	return tree, nil
}

// FromTree re-derives the typed configuration from a tree, applying the
// same defaulting and validation as Load. Used after variable resolution so
// substituted values flow into the typed view.
func FromTree(t Tree) (*Config, error) {
	data, err := yaml.Marshal(t)
	if err != nil {
		return nil, buildererr.Wrap(err, buildererr.CategoryConfig, "failed to re-encode resolved configuration")
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, buildererr.Wrap(err, buildererr.CategoryConfig, "failed to decode resolved configuration")
	}
	applyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the required top-level keys. Their absence is a
// configuration error, never silently defaulted.
func Validate(cfg *Config) error {
	if cfg.Site.Title == "" {
		return buildererr.ConfigValidation("site.title", "required field is missing or empty")
	}
	if len(cfg.Pages) == 0 {
		return buildererr.ConfigValidation("pages", "at least one page mapping is required")
	}
	for key, src := range cfg.Pages {
		if src == "" {
			return buildererr.ConfigValidation("pages."+key, "source path must not be empty")
		}
	}
	return nil
}

func readConfigFile(path string) ([]byte, error) {
	// .env values feed ${VAR} expansion inside the YAML, matching how
	// deployment-specific values (base URLs, analytics IDs) are injected.
	if err := godotenv.Load(); err == nil {
		slog.Debug("Loaded environment variables from .env")
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, buildererr.ConfigNotFound(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, buildererr.Wrap(err, buildererr.CategoryConfig, "failed to read config file").WithContext("path", path)
	}
	return []byte(os.ExpandEnv(string(data))), nil
}
