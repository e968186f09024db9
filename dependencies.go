package templatermd

import (
	"strings"
)

// LatexDependency declares a LaTeX preamble requirement: a package to load
// and/or raw preamble lines. Dependencies come from two sources: the caller
// (FormatOptions.ExtraDependencies) and code-chunk execution metadata
// discovered at render time.
type LatexDependency struct {
	Name       string   // package name for \usepackage; empty for raw-only deps
	Options    []string // package options, e.g. "table", "dvipsnames"
	ExtraLines []string // raw preamble lines emitted after the usepackage line
}

// latexLines renders the dependency as LaTeX preamble lines.
func (d LatexDependency) latexLines() []string {
	var lines []string
	if d.Name != "" {
		if len(d.Options) > 0 {
			lines = append(lines, "\\usepackage["+strings.Join(d.Options, ",")+"]{"+d.Name+"}")
		} else {
			lines = append(lines, "\\usepackage{"+d.Name+"}")
		}
	}
	lines = append(lines, d.ExtraLines...)
	return lines
}

// MergeDependencies serializes explicit and discovered dependencies into a
// single header-include block: explicit first, discovered second, then any
// raw header-includes content from the document's front matter. Returns nil
// when there is nothing to include.
//
// Pure function so include assembly is testable without a renderer.
func MergeDependencies(explicit, discovered []LatexDependency, rawHeader string) []byte {
	if len(explicit) == 0 && len(discovered) == 0 {
		return nil
	}

	var b strings.Builder
	for _, d := range explicit {
		for _, line := range d.latexLines() {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	for _, d := range discovered {
		for _, line := range d.latexLines() {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	if rawHeader != "" {
		b.WriteString(rawHeader)
		if !strings.HasSuffix(rawHeader, "\n") {
			b.WriteString("\n")
		}
	}

	return []byte(b.String())
}
