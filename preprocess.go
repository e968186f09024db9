package templatermd

import (
	"fmt"

	"github.com/danwwilson/templatermd/internal/fileutil"
	"github.com/danwwilson/templatermd/internal/metadata"
)

// RenderState threads per-render paths between the pre-process and
// intermediates hooks. Each render call owns its own state; nothing here
// may be shared across concurrent renders.
type RenderState struct {
	// FilesDir is the supporting-files directory recorded during
	// pre-processing (generated figures from executed code chunks).
	FilesDir string

	// tempFiles are include files created for this render, removed by
	// Cleanup on every exit path.
	tempFiles []func()
}

// Cleanup removes every temporary file registered for this render.
// Safe to call multiple times.
func (st *RenderState) Cleanup() {
	for _, rm := range st.tempFiles {
		rm()
	}
	st.tempFiles = nil
}

// ComputationMeta is the metadata emitted by the computation engine after
// executing the document's embedded code chunks.
type ComputationMeta struct {
	// Dependencies are LaTeX requirements declared by executed chunks.
	Dependencies []LatexDependency
}

// PreProcessInput carries everything the pre-process hook needs: the parsed
// front matter, the document source, chunk execution metadata, and the
// per-render directories.
type PreProcessInput struct {
	Metadata    *metadata.Metadata
	InputText   string
	Computation ComputationMeta
	FilesDir    string
	OutputDir   string
}

// PreProcess runs before pandoc and returns additional arguments: the
// default-geometry variable when the document declares none, and an
// include-in-header file carrying merged LaTeX dependencies.
func (f *Format) PreProcess(in PreProcessInput, st *RenderState) ([]string, error) {
	st.FilesDir = in.FilesDir

	var args []string

	if geo := f.geometryArgs(in); geo != nil {
		args = append(args, geo...)
	}

	dep, err := f.dependencyArgs(in, st)
	if err != nil {
		return nil, err
	}
	args = append(args, dep...)

	return args, nil
}

// geometryArgs injects the default one-inch margin unless the document
// declares its own geometry. Only applies when the bundled template is in
// use; a custom template may define its own geometry and must not be
// overridden.
func (f *Format) geometryArgs(in PreProcessInput) []string {
	if !f.usesBundledTemplate {
		return nil
	}

	front, _, _ := metadata.Split(in.InputText)
	if metadata.HasGeometry(front) {
		return nil
	}

	return []string{"--variable", defaultGeometry}
}

// dependencyArgs merges caller-supplied and discovered LaTeX dependencies
// (caller-supplied first) plus any raw header-includes front matter into a
// temporary include file, and registers it as an include-in-header entry.
// Produces no flag when there is nothing to include.
func (f *Format) dependencyArgs(in PreProcessInput, st *RenderState) ([]string, error) {
	var rawHeader string
	if in.Metadata != nil {
		rawHeader = in.Metadata.HeaderIncludesText()
	}

	content := MergeDependencies(f.opts.ExtraDependencies, in.Computation.Dependencies, rawHeader)
	if content == nil {
		return nil, nil
	}

	path, cleanup, err := fileutil.WriteTempFile(content, "tex")
	if err != nil {
		return nil, fmt.Errorf("writing dependency include: %w", err)
	}
	st.tempFiles = append(st.tempFiles, cleanup)

	return []string{"--include-in-header", path}, nil
}
