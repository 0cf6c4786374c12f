package config

// applyDefaults fills optional fields that templates rely on. Required keys
// (site.title, pages) are never defaulted here; Validate rejects them.
func applyDefaults(cfg *Config) {
	if cfg.Site.Language == "" {
		cfg.Site.Language = "en"
	}
	if cfg.Site.Favicon == "" {
		cfg.Site.Favicon = "🌐"
	}
}

// DefaultStyle returns the fallback style tree used when the style config
// omits a section. Values mirror the stock dark theme.
func DefaultStyle() Tree {
	return Tree{
		"colors": map[string]any{
			"primary":    "#2196F3",
			"secondary":  "#A0A0A0",
			"background": "#121212",
			"text":       "#E0E0E0",
		},
		"typography": map[string]any{
			"font_family": map[string]any{
				"body":    `"Inter", sans-serif`,
				"headers": `"Roboto", sans-serif`,
			},
			"sizes": map[string]any{
				"body": "16px",
				"headers": map[string]any{
					"h1": "1.8rem",
					"h2": "1.5rem",
					"h3": "1.3rem",
				},
			},
		},
		"styles": map[string]any{
			"_body": map[string]any{
				"background_color": "{colors.background}",
				"color":            "{colors.text}",
			},
			"_links": map[string]any{
				"color": "{colors.primary}",
			},
			"_headers": map[string]any{
				"color": "{colors.text}",
			},
			"_tags": map[string]any{
				"color":   "{colors.primary}",
				"padding": 0.25,
			},
		},
	}
}
