// Package templatermd compiles a branded PDF output format for
// pandoc-based markdown publishing.
//
// # Quick Start
//
// Compile a format and render a document:
//
//	format, err := templatermd.Compile(templatermd.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer format.Cleanup()
//
//	renderer := templatermd.NewRenderer()
//	out, err := renderer.Render(ctx, format, templatermd.RenderInput{
//	    InputPath: "report.md",
//	})
//
// # What the format compiler does
//
// Compile turns FormatOptions into an ordered pandoc argument list plus two
// render hooks:
//
//  1. PreProcess injects a default one-inch page geometry when the document
//     declares none (bundled template only), and merges caller-supplied and
//     chunk-discovered LaTeX dependencies with the document's
//     header-includes into one temporary include file.
//  2. Intermediates copies every referenced asset (images, child documents,
//     bibliographies) and the supporting-files directory of generated
//     figures into the directory pandoc renders from.
//
// Enumerated options (highlight style, latex engine, citation package) are
// validated against pandoc's allow-lists before anything runs; invalid
// values fail fast with an error naming the accepted values.
//
// # Templates
//
// Template selection has three modes: the TemplateBundled sentinel resolves
// to the branded template shipped with this package (and forces graphics
// support, which the template needs), an empty string uses pandoc's
// built-in template, and any other value is passed through as a file path.
//
// # External requirements
//
// Rendering requires pandoc and a LaTeX engine (pdflatex, lualatex, or
// xelatex) on PATH. This package only stages files and assembles arguments;
// typesetting happens entirely in the external toolchain.
package templatermd
