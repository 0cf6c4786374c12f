package errors

import "strings"

// Constructors for the failure classes the build pipeline can surface.
// Each carries enough context (file path, key path, placeholder text) for
// the user to fix the input without consulting the source.

// ConfigNotFound reports a configuration file path that does not exist.
func ConfigNotFound(path string) *BuildError {
	return Newf(CategoryConfig, "configuration file not found: %s", path).
		WithContext("path", path)
}

// ConfigParse reports malformed YAML in a configuration file.
func ConfigParse(path string, cause error) *BuildError {
	return Wrap(cause, CategoryConfig, "failed to parse configuration file "+path).
		WithContext("path", path)
}

// ConfigValidation reports a missing or invalid required configuration key.
func ConfigValidation(key, reason string) *BuildError {
	return Newf(CategoryValidation, "invalid configuration: %s: %s", key, reason).
		WithContext("key", key)
}

// CyclicReference reports a reference cycle discovered during variable
// resolution. The chain lists the key paths in resolution order, ending at
// the re-entered key.
func CyclicReference(chain []string) *BuildError {
	return Newf(CategoryResolve, "cyclic variable reference: %s", strings.Join(chain, " -> ")).
		WithContext("chain", chain)
}

// UnresolvedReference reports a placeholder whose path does not exist in the
// merged configuration.
func UnresolvedReference(placeholder, containingKey string) *BuildError {
	return Newf(CategoryResolve, "unresolved reference %s in %s", placeholder, containingKey).
		WithContext("placeholder", placeholder).
		WithContext("key", containingKey)
}

// MissingFrontmatter reports malformed frontmatter delimiters in a content
// file. A file with no frontmatter block at all is not an error.
func MissingFrontmatter(path string, cause error) *BuildError {
	return Wrap(cause, CategoryContent, "malformed frontmatter in "+path).
		WithContext("path", path)
}

// TemplateRender reports a template execution failure, naming the template.
func TemplateRender(template string, cause error) *BuildError {
	return Wrap(cause, CategoryRender, "failed to render template "+template).
		WithContext("template", template)
}

// OutputWrite reports a filesystem write failure under the build directory.
func OutputWrite(path string, cause error) *BuildError {
	return Wrap(cause, CategoryOutput, "failed to write output file "+path).
		WithContext("path", path)
}
