// Package render executes HTML page templates and the site stylesheet
// template. Default templates are embedded; a site-local template directory
// can override any of them by name.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	texttemplate "text/template"

	buildererr "github.com/gigglehq/giggle/internal/errors"
)

//go:embed templates/*.tmpl
var defaultTemplates embed.FS

// Canonical template names selected by the page model builder.
const (
	TemplatePage      = "page"
	TemplatePost      = "post"
	TemplateBlogIndex = "blog_index"
	TemplateTag       = "tag"
	TemplateTagsIndex = "tags"
)

const stylesheetTemplate = "style.css.tmpl"

// Engine holds the parsed template sets for one build.
type Engine struct {
	pages *template.Template
	css   *texttemplate.Template
}

// NewEngine parses the embedded templates, then layers any *.tmpl files from
// overrideDir on top (same-name templates win). overrideDir may be empty.
func NewEngine(overrideDir string) (*Engine, error) {
	pages, err := template.New("root").
		Option("missingkey=error").
		ParseFS(defaultTemplates, "templates/*.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse embedded templates: %w", err)
	}

	cssData, err := defaultTemplates.ReadFile("templates/" + stylesheetTemplate)
	if err != nil {
		return nil, fmt.Errorf("read embedded stylesheet template: %w", err)
	}

	e := &Engine{pages: pages}

	if overrideDir != "" {
		if err := e.applyOverrides(overrideDir, &cssData); err != nil {
			return nil, err
		}
	}

	css, err := texttemplate.New(stylesheetTemplate).Parse(string(cssData))
	if err != nil {
		return nil, fmt.Errorf("parse stylesheet template: %w", err)
	}
	e.css = css
	return e, nil
}

func (e *Engine) applyOverrides(dir string, cssData *[]byte) error {
	matches, err := filepath.Glob(filepath.Join(dir, "*.tmpl"))
	if err != nil {
		return fmt.Errorf("scan template overrides: %w", err)
	}
	for _, path := range matches {
		name := filepath.Base(path)
		if name == stylesheetTemplate {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read stylesheet override: %w", err)
			}
			*cssData = data
			continue
		}
		if !strings.HasSuffix(name, ".html.tmpl") {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read template override %s: %w", name, err)
		}
		if _, err := e.pages.Parse(string(data)); err != nil {
			return buildererr.TemplateRender(name, err)
		}
	}
	return nil
}

// RenderPage executes the named page template with the given locals and
// returns the complete HTML document.
func (e *Engine) RenderPage(name string, data map[string]any) (string, error) {
	if e.pages.Lookup(name) == nil {
		return "", buildererr.TemplateRender(name, fmt.Errorf("template %q is not defined", name))
	}
	var sb strings.Builder
	if err := e.pages.ExecuteTemplate(&sb, name, data); err != nil {
		return "", buildererr.TemplateRender(name, err)
	}
	return sb.String(), nil
}

// RenderCSS executes the stylesheet template against the resolved style
// tree. Unit suffixes live in the template, not in the resolved values.
func (e *Engine) RenderCSS(style map[string]any) (string, error) {
	var sb strings.Builder
	if err := e.css.Execute(&sb, style); err != nil {
		return "", buildererr.TemplateRender(stylesheetTemplate, err)
	}
	return sb.String(), nil
}
