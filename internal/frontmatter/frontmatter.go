// Package frontmatter splits Markdown documents into a YAML metadata block
// and a body. A document with no opening delimiter is all body (simple pages
// may omit frontmatter entirely); an opening delimiter without a closing one
// is malformed and rejected.
package frontmatter

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document started with a
// frontmatter delimiter but never closed it.
var ErrMissingClosingDelimiter = errors.New("frontmatter start delimiter found but closing delimiter is missing")

const delimiter = "---"

// Document is the result of splitting a content file.
type Document struct {
	Frontmatter []byte // raw YAML between the delimiters, empty when absent
	Body        []byte // Markdown body
	HasMeta     bool   // true when a frontmatter block was present
}

// Split separates a `---` delimited YAML frontmatter block from the body.
// The two-branch behavior is deliberate: absent block -> lenient, malformed
// block -> error.
func Split(content []byte) (Document, error) {
	nl := detectNewline(content)
	open := []byte(delimiter + nl)
	if !bytes.HasPrefix(content, open) {
		return Document{Body: content}, nil
	}

	rest := content[len(open):]
	// An immediately closed block is valid and empty.
	if bytes.HasPrefix(rest, open) {
		return Document{Frontmatter: []byte{}, Body: rest[len(open):], HasMeta: true}, nil
	}

	closeSeq := []byte(nl + delimiter + nl)
	idx := bytes.Index(rest, closeSeq)
	if idx < 0 {
		return Document{}, ErrMissingClosingDelimiter
	}

	fm := rest[:idx+len(nl)]
	body := rest[idx+len(closeSeq):]
	return Document{Frontmatter: fm, Body: body, HasMeta: true}, nil
}

// Fields parses the raw frontmatter YAML into a generic map. An empty block
// yields an empty map.
func (d Document) Fields() (map[string]any, error) {
	if len(d.Frontmatter) == 0 {
		return map[string]any{}, nil
	}
	var fields map[string]any
	if err := yaml.Unmarshal(d.Frontmatter, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

func detectNewline(content []byte) string {
	for i := 0; i+1 < len(content); i++ {
		if content[i] == '\r' && content[i+1] == '\n' {
			return "\r\n"
		}
		if content[i] == '\n' {
			return "\n"
		}
	}
	return "\n"
}
