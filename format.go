package templatermd

import (
	"fmt"
	"strconv"

	"github.com/danwwilson/templatermd/internal/assets"
	"github.com/danwwilson/templatermd/internal/fileutil"
)

// graphicsVariable is forced whenever the bundled template is in use; the
// template references graphicx and needs pandoc to load graphics support.
const graphicsVariable = "graphics=yes"

// defaultGeometry is injected by the pre-processor when the document does
// not declare its own geometry.
const defaultGeometry = "geometry:margin=1in"

// FigureSettings carries figure defaults for the computation engine. They
// produce no pandoc flags; the engine reads them when executing code chunks.
type FigureSettings struct {
	Width   float64
	Height  float64
	Crop    bool
	Caption bool
	Dev     string
	DFPrint string
}

// Format is the compiled output format: the pandoc conversion target, the
// derived argument list, the cleanup policy, and the two render hooks
// (PreProcess, Intermediates). Construct with Compile; immutable afterwards.
type Format struct {
	// From is the pandoc reader format, e.g. "markdown+raw_tex".
	From string

	// To is the pandoc conversion target.
	To string

	// Args is the ordered renderer argument list. Later flags take
	// precedence, so caller pass-through args sit last.
	Args []string

	// KeepIntermediates retains the intermediates directory (including
	// the generated .tex) after the render finishes.
	KeepIntermediates bool

	Figure FigureSettings

	opts                FormatOptions
	usesBundledTemplate bool
	templateCleanup     func()
}

// Compile validates opts and derives the renderer argument list.
// Enumerated options are checked before anything touches disk; an invalid
// value fails here, never inside the renderer.
func Compile(opts FormatOptions) (*Format, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	f := &Format{
		From:              "markdown" + opts.MDExtensions,
		To:                "latex",
		KeepIntermediates: opts.KeepTex,
		Figure: FigureSettings{
			Width:   opts.FigWidth,
			Height:  opts.FigHeight,
			Crop:    opts.FigCrop,
			Caption: opts.FigCaption,
			Dev:     opts.Dev,
			DFPrint: opts.DFPrint,
		},
		opts: opts,
	}

	args, err := f.buildArgs()
	if err != nil {
		return nil, err
	}
	f.Args = args

	return f, nil
}

// buildArgs assembles the argument list in derivation order: table of
// contents, template, numbering, highlighting, engine, citation package,
// includes, then raw pass-through args last so they can override anything
// derived before them.
func (f *Format) buildArgs() ([]string, error) {
	opts := f.opts
	var args []string

	if opts.TOC {
		args = append(args, "--table-of-contents", "--toc-depth", strconv.Itoa(opts.TOCDepth))
	}

	switch opts.Template {
	case TemplateBundled:
		path, err := f.materializeBundledTemplate()
		if err != nil {
			return nil, err
		}
		f.usesBundledTemplate = true
		args = append(args, "--template", path, "--variable", graphicsVariable)
	case "":
		// No flag: pandoc falls back to its built-in template.
	default:
		args = append(args, "--template", opts.Template)
	}

	if opts.NumberSections {
		args = append(args, "--number-sections")
	}

	if opts.Highlight == HighlightNone {
		args = append(args, "--no-highlight")
	} else {
		args = append(args, "--highlight-style", opts.Highlight)
	}

	args = append(args, "--pdf-engine", opts.LatexEngine)

	switch opts.CitationPackage {
	case CitationNatbib:
		args = append(args, "--natbib")
	case CitationBiblatex:
		args = append(args, "--biblatex")
	}

	for _, p := range opts.Includes.InHeader {
		args = append(args, "--include-in-header", p)
	}
	for _, p := range opts.Includes.BeforeBody {
		args = append(args, "--include-before-body", p)
	}
	for _, p := range opts.Includes.AfterBody {
		args = append(args, "--include-after-body", p)
	}

	args = append(args, opts.PandocArgs...)

	return args, nil
}

// materializeBundledTemplate writes the embedded template to a temp file
// so pandoc can read it by path. Removed by Cleanup.
func (f *Format) materializeBundledTemplate() (string, error) {
	content, err := assets.LoadTemplate(assets.DefaultTemplateName)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateLoad, err)
	}

	path, cleanup, err := fileutil.WriteTempFile([]byte(content), "tex")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateLoad, err)
	}
	f.templateCleanup = cleanup

	return path, nil
}

// Cleanup removes files materialized during Compile. Safe to call multiple
// times and on formats that materialized nothing.
func (f *Format) Cleanup() {
	if f.templateCleanup != nil {
		f.templateCleanup()
		f.templateCleanup = nil
	}
}
