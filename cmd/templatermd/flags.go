package main

import (
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/danwwilson/templatermd"
)

// cliFlags holds all parsed command-line flags.
type cliFlags struct {
	output  string
	verbose bool
	sweep   bool
	version bool

	toc            bool
	tocDepth       int
	numberSections bool
	highlight      string
	noHighlight    bool
	engine         string
	citations      string
	template       string
	noTemplate     bool
	keepTex        bool
	mdExtensions   string
	inHeader       []string
	beforeBody     []string
	afterBody      []string
	variables      []string
	pandocArgs     []string
}

// parseFlags parses args (excluding the program name) and returns the
// flags plus remaining positional arguments.
func parseFlags(args []string) (*cliFlags, []string, error) {
	f := &cliFlags{}
	fs := flag.NewFlagSet("templatermd", flag.ContinueOnError)

	fs.StringVarP(&f.output, "output", "o", "", "output PDF path (default: input with .pdf extension)")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "verbose diagnostics")
	fs.BoolVar(&f.sweep, "sweep", false, "remove orphaned temporary include files and exit")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	fs.BoolVar(&f.toc, "toc", false, "include a table of contents")
	fs.IntVar(&f.tocDepth, "toc-depth", templatermd.DefaultTOCDepth, "table of contents depth")
	fs.BoolVar(&f.numberSections, "number-sections", false, "number section headings")
	fs.StringVar(&f.highlight, "highlight", templatermd.HighlightDefault, "syntax highlighting style")
	fs.BoolVar(&f.noHighlight, "no-highlight", false, "disable syntax highlighting")
	fs.StringVar(&f.engine, "pdf-engine", templatermd.EnginePDFLatex, "latex engine (pdflatex, lualatex, xelatex)")
	fs.StringVar(&f.citations, "citation-package", templatermd.CitationNone, "citation package (none, natbib, biblatex)")
	fs.StringVar(&f.template, "template", templatermd.TemplateBundled, "pandoc template path; \"default\" = bundled, \"\" = pandoc built-in")
	fs.BoolVar(&f.noTemplate, "no-template", false, "use pandoc's built-in template")
	fs.BoolVar(&f.keepTex, "keep-tex", false, "keep the intermediate .tex and staging directory")
	fs.StringVar(&f.mdExtensions, "md-extensions", "", "markdown reader extensions, e.g. +raw_tex")
	fs.StringSliceVar(&f.inHeader, "include-in-header", nil, "file(s) to include in the document header")
	fs.StringSliceVar(&f.beforeBody, "include-before-body", nil, "file(s) to include before the body")
	fs.StringSliceVar(&f.afterBody, "include-after-body", nil, "file(s) to include after the body")
	fs.StringArrayVarP(&f.variables, "variable", "V", nil, "pandoc variable, key=value (repeatable)")
	fs.StringArrayVar(&f.pandocArgs, "pandoc-arg", nil, "raw argument passed to pandoc after all derived flags (repeatable)")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// toOptions translates flags into format options.
func (f *cliFlags) toOptions() templatermd.FormatOptions {
	opts := templatermd.DefaultOptions()
	opts.TOC = f.toc
	opts.TOCDepth = f.tocDepth
	opts.NumberSections = f.numberSections
	opts.Highlight = f.highlight
	if f.noHighlight {
		opts.Highlight = templatermd.HighlightNone
	}
	opts.LatexEngine = f.engine
	opts.CitationPackage = f.citations
	opts.Template = f.template
	if f.noTemplate {
		opts.Template = ""
	}
	opts.KeepTex = f.keepTex
	opts.MDExtensions = f.mdExtensions
	opts.Includes.InHeader = f.inHeader
	opts.Includes.BeforeBody = f.beforeBody
	opts.Includes.AfterBody = f.afterBody

	for _, v := range f.variables {
		opts.PandocArgs = append(opts.PandocArgs, "--variable", v)
	}
	opts.PandocArgs = append(opts.PandocArgs, f.pandocArgs...)

	return opts
}

// usageError wraps a message with the canonical usage line.
func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: templatermd [flags] <input.md>", msg)
}
