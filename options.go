package templatermd

import (
	"fmt"
	"strings"
)

// Highlight style names accepted by pandoc's built-in highlighter.
const (
	HighlightDefault    = "default"
	HighlightTango      = "tango"
	HighlightPygments   = "pygments"
	HighlightKate       = "kate"
	HighlightMonochrome = "monochrome"
	HighlightEspresso   = "espresso"
	HighlightZenburn    = "zenburn"
	HighlightHaddock    = "haddock"

	// HighlightNone disables syntax highlighting entirely.
	HighlightNone = "none"
)

// LaTeX engine constants.
const (
	EnginePDFLatex = "pdflatex"
	EngineLuaLatex = "lualatex"
	EngineXeLatex  = "xelatex"
)

// Citation package constants.
const (
	CitationNone     = "none"
	CitationNatbib   = "natbib"
	CitationBiblatex = "biblatex"
)

// TemplateBundled selects the template shipped with this package.
// An empty Template falls back to pandoc's built-in template; any other
// value is passed to pandoc as a file path.
const TemplateBundled = "default"

// TOC depth bounds.
const (
	MinTOCDepth     = 1
	MaxTOCDepth     = 6
	DefaultTOCDepth = 2
)

// Default figure dimensions in inches.
const (
	DefaultFigWidth  = 6.5
	DefaultFigHeight = 4.5
)

// Includes holds extra content merged into the generated document.
// Each slice contains file paths handed to the corresponding pandoc
// include flag.
type Includes struct {
	InHeader   []string
	BeforeBody []string
	AfterBody  []string
}

// Empty returns true if no include files are configured.
func (i Includes) Empty() bool {
	return len(i.InHeader) == 0 && len(i.BeforeBody) == 0 && len(i.AfterBody) == 0
}

// FormatOptions configures the branded PDF output format.
// Zero values are not useful defaults; start from DefaultOptions.
type FormatOptions struct {
	TOC            bool
	TOCDepth       int
	NumberSections bool

	// Figure settings are consumed by the computation engine, not pandoc.
	FigWidth   float64
	FigHeight  float64
	FigCrop    bool
	FigCaption bool
	Dev        string // figure device, e.g. "pdf", "png"
	DFPrint    string // data frame printing method

	Highlight       string // one of the Highlight* constants
	Template        string // TemplateBundled, "", or a file path
	KeepTex         bool
	LatexEngine     string
	CitationPackage string

	Includes     Includes
	MDExtensions string // appended to the markdown reader format, e.g. "+raw_tex"

	// PandocArgs are appended verbatim after all derived flags so they
	// can override derived behavior.
	PandocArgs []string

	// ExtraDependencies are LaTeX preamble requirements merged with
	// dependencies discovered from executed code chunks at render time.
	ExtraDependencies []LatexDependency
}

// DefaultOptions returns the format defaults.
func DefaultOptions() FormatOptions {
	return FormatOptions{
		TOC:             false,
		TOCDepth:        DefaultTOCDepth,
		NumberSections:  false,
		FigWidth:        DefaultFigWidth,
		FigHeight:       DefaultFigHeight,
		FigCrop:         true,
		FigCaption:      true,
		Dev:             "pdf",
		DFPrint:         "default",
		Highlight:       HighlightDefault,
		Template:        TemplateBundled,
		LatexEngine:     EnginePDFLatex,
		CitationPackage: CitationNone,
	}
}

// highlightStyles is the fixed allow-list pandoc accepts.
var highlightStyles = []string{
	HighlightDefault,
	HighlightTango,
	HighlightPygments,
	HighlightKate,
	HighlightMonochrome,
	HighlightEspresso,
	HighlightZenburn,
	HighlightHaddock,
}

// Validate checks enumerated options against their allow-lists.
// Errors name the accepted values so misconfiguration is self-explaining.
func (o *FormatOptions) Validate() error {
	if !isValidHighlight(o.Highlight) {
		return fmt.Errorf("%w: %q (must be %s, or %q to disable)",
			ErrInvalidHighlight, o.Highlight, strings.Join(highlightStyles, ", "), HighlightNone)
	}

	switch o.LatexEngine {
	case EnginePDFLatex, EngineLuaLatex, EngineXeLatex:
	default:
		return fmt.Errorf("%w: %q (must be %s, %s, or %s)",
			ErrInvalidLatexEngine, o.LatexEngine, EnginePDFLatex, EngineLuaLatex, EngineXeLatex)
	}

	switch o.CitationPackage {
	case CitationNone, CitationNatbib, CitationBiblatex:
	default:
		return fmt.Errorf("%w: %q (must be %s, %s, or %s)",
			ErrInvalidCitationPackage, o.CitationPackage, CitationNone, CitationNatbib, CitationBiblatex)
	}

	if o.TOC && (o.TOCDepth < MinTOCDepth || o.TOCDepth > MaxTOCDepth) {
		return fmt.Errorf("%w: %d (must be between %d and %d)",
			ErrInvalidTOCDepth, o.TOCDepth, MinTOCDepth, MaxTOCDepth)
	}

	if o.FigWidth <= 0 || o.FigHeight <= 0 {
		return fmt.Errorf("%w: %.2fx%.2f (dimensions must be positive)",
			ErrInvalidFigureSize, o.FigWidth, o.FigHeight)
	}

	return nil
}

// isValidHighlight checks the style against the allow-list.
// HighlightNone is always accepted and disables highlighting.
func isValidHighlight(style string) bool {
	if style == HighlightNone {
		return true
	}
	for _, s := range highlightStyles {
		if style == s {
			return true
		}
	}
	return false
}
