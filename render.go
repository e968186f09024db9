package templatermd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/danwwilson/templatermd/internal/fileutil"
	"github.com/danwwilson/templatermd/internal/metadata"
)

// filesDirSuffix names the supporting-files directory next to the input,
// e.g. report.md -> report_files/.
const filesDirSuffix = "_files"

// RenderInput describes one render invocation.
type RenderInput struct {
	// InputPath is the markdown document to render (required).
	InputPath string

	// OutputPath is the PDF destination. Empty derives it from the input
	// path by swapping the extension.
	OutputPath string

	// Computation is the metadata produced by executing the document's
	// embedded code chunks. Zero value means no chunks ran.
	Computation ComputationMeta
}

// Renderer drives a compiled Format through one render: pre-process hooks,
// intermediates staging, and the pandoc subprocess. Renders are synchronous
// and single-invocation; a Renderer must not be shared across concurrent
// render calls.
type Renderer struct {
	runner CommandRunner
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithRunner replaces the subprocess runner (used by tests).
func WithRunner(r CommandRunner) RendererOption {
	return func(rd *Renderer) { rd.runner = r }
}

// NewRenderer creates a Renderer that invokes pandoc via os/exec.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{runner: &ExecRunner{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render converts the input document to PDF using the compiled format.
// Temporary include files and the intermediates directory are removed on
// every exit path unless the format opted to keep intermediates.
func (r *Renderer) Render(ctx context.Context, f *Format, in RenderInput) (outputPath string, err error) {
	if in.InputPath == "" {
		return "", ErrEmptyInput
	}

	content, err := os.ReadFile(in.InputPath) // #nosec G304 -- input path is user-provided
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInputRead, err)
	}

	meta, _, err := metadata.Parse(string(content))
	if err != nil {
		return "", err
	}

	outputPath = in.OutputPath
	if outputPath == "" {
		outputPath = replaceExt(in.InputPath, ".pdf")
	}
	outputDir := filepath.Dir(outputPath)

	state := &RenderState{}
	defer state.Cleanup()

	extraArgs, err := f.PreProcess(PreProcessInput{
		Metadata:    meta,
		InputText:   string(content),
		Computation: in.Computation,
		FilesDir:    filesDir(in.InputPath),
		OutputDir:   outputDir,
	}, state)
	if err != nil {
		return "", err
	}

	workDir, err := os.MkdirTemp(outputDir, fileutil.TempPrefix+"intermediates-")
	if err != nil {
		return "", fmt.Errorf("creating intermediates directory: %w", err)
	}
	defer func() {
		if !f.KeepIntermediates {
			_ = os.RemoveAll(workDir)
		}
	}()

	inputName := filepath.Base(in.InputPath)
	if err := fileutil.CopyFile(in.InputPath, filepath.Join(workDir, inputName)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrAssetCopy, err)
	}
	if _, err := f.Intermediates(in.InputPath, workDir, state); err != nil {
		return "", err
	}

	absOutput, err := filepath.Abs(outputPath)
	if err != nil {
		return "", fmt.Errorf("resolving output path: %w", err)
	}

	args := []string{inputName, "--from", f.From, "--to", f.To, "--output", absOutput}
	args = append(args, f.Args...)
	args = append(args, extraArgs...)

	if _, stderr, runErr := r.runner.Run(ctx, workDir, pandocBinary, args...); runErr != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrPandoc, strings.TrimSpace(stderr), runErr)
	}

	if f.KeepIntermediates {
		if err := r.writeTex(ctx, f, workDir, inputName, extraArgs, absOutput); err != nil {
			return "", err
		}
	}

	return outputPath, nil
}

// writeTex emits the intermediate .tex next to the PDF when keep_tex is
// set, using the same arguments as the PDF run.
func (r *Renderer) writeTex(ctx context.Context, f *Format, workDir, inputName string, extraArgs []string, absOutput string) error {
	texPath := replaceExt(absOutput, ".tex")

	args := []string{inputName, "--from", f.From, "--to", f.To, "--standalone", "--output", texPath}
	args = append(args, f.Args...)
	args = append(args, extraArgs...)

	if _, stderr, err := r.runner.Run(ctx, workDir, pandocBinary, args...); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPandoc, strings.TrimSpace(stderr), err)
	}
	return nil
}

// filesDir returns the supporting-files directory for an input document.
func filesDir(inputPath string) string {
	return strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + filesDirSuffix
}

// replaceExt swaps the extension of path for ext (including the dot).
func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// SweepTempIncludes removes orphaned temporary files left behind by
// crashed renders: anything in the OS temp directory matching this
// module's naming pattern. Returns the number of files removed.
func SweepTempIncludes() (int, error) {
	pattern := filepath.Join(os.TempDir(), fileutil.TempPrefix+"*.tex")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return 0, fmt.Errorf("sweeping temp files: %w", err)
	}

	removed := 0
	for _, m := range matches {
		if os.Remove(m) == nil {
			removed++
		}
	}
	return removed, nil
}
