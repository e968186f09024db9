// Package metadata parses the YAML front matter of a markdown document.
//
// Parsing is deliberately permissive: documents carry arbitrary metadata
// for other consumers, and a malformed optional field (e.g. header-includes
// holding a mapping) is ignored rather than rejected.
package metadata

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/danwwilson/templatermd/internal/yamlutil"
)

// delimiter lines for a YAML front matter block.
const (
	openDelimiter  = "---"
	closeDelimiter = "..."
)

var geometryLine = regexp.MustCompile(`(?m)^geometry\s*:`)

// StringList accepts either a YAML scalar or a sequence of scalars.
// Fields like bibliography appear both ways in the wild.
type StringList []string

// UnmarshalYAML implements permissive scalar-or-sequence decoding.
func (s *StringList) UnmarshalYAML(unmarshal func(any) error) error {
	var single string
	if err := unmarshal(&single); err == nil {
		*s = StringList{single}
		return nil
	}

	var many []string
	if err := unmarshal(&many); err != nil {
		return err
	}
	*s = many
	return nil
}

// Metadata models the front matter fields this module reads. Unknown
// fields pass through to pandoc untouched.
type Metadata struct {
	Title          string     `yaml:"title"`
	Author         StringList `yaml:"author"`
	Date           string     `yaml:"date"`
	Bibliography   StringList `yaml:"bibliography"`
	HeaderIncludes any        `yaml:"header-includes"`

	// raw holds the front matter block without delimiters.
	raw string
}

// Split separates the YAML front matter block (without delimiters) from
// the document body. Returns ("", content, false) when the document has no
// front matter.
func Split(content string) (front, body string, found bool) {
	lines := strings.Split(content, "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], " \t\r") != openDelimiter {
		return "", content, false
	}

	for i := 1; i < len(lines); i++ {
		trimmed := strings.TrimRight(lines[i], " \t\r")
		if trimmed == openDelimiter || trimmed == closeDelimiter {
			front = strings.Join(lines[1:i], "\n")
			body = strings.Join(lines[i+1:], "\n")
			return front, body, true
		}
	}

	// Unterminated block: treat the whole document as body.
	return "", content, false
}

// Parse extracts front matter metadata and returns it with the document
// body. A document without front matter yields an empty Metadata.
func Parse(content string) (*Metadata, string, error) {
	front, body, found := Split(content)
	if !found || strings.TrimSpace(front) == "" {
		return &Metadata{}, body, nil
	}

	var m Metadata
	if err := yamlutil.Unmarshal([]byte(front), &m); err != nil {
		return nil, "", fmt.Errorf("parsing front matter: %w", err)
	}
	m.raw = front

	return &m, body, nil
}

// HasGeometry reports whether the front matter text declares a geometry
// field on any of its lines.
func HasGeometry(frontMatter string) bool {
	return geometryLine.MatchString(frontMatter)
}

// HasGeometry reports whether this document's front matter declares a
// geometry field.
func (m *Metadata) HasGeometry() bool {
	return HasGeometry(m.raw)
}

// HeaderIncludesText flattens the header-includes field to raw text.
// A scalar is returned as-is; a sequence is joined line by line; any other
// shape (or absence) yields the empty string.
func (m *Metadata) HeaderIncludesText() string {
	switch v := m.HeaderIncludes.(type) {
	case string:
		return v
	case []any:
		var lines []string
		for _, item := range v {
			if s, ok := item.(string); ok {
				lines = append(lines, s)
			}
		}
		return strings.Join(lines, "\n")
	default:
		return ""
	}
}
