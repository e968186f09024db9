package templatermd

import "errors"

// Sentinel errors for format compilation and rendering.
var (
	// Option validation errors. These fail fast, before pandoc runs.
	ErrInvalidHighlight       = errors.New("invalid highlight style")
	ErrInvalidLatexEngine     = errors.New("invalid latex engine")
	ErrInvalidCitationPackage = errors.New("invalid citation package")
	ErrInvalidTOCDepth        = errors.New("invalid toc depth")
	ErrInvalidFigureSize      = errors.New("invalid figure size")

	// ErrTemplateLoad indicates the bundled template could not be
	// materialized to disk.
	ErrTemplateLoad = errors.New("failed to load bundled template")

	// ErrAssetCopy indicates intermediate files could not be staged for
	// the renderer. A render cannot continue without its figures.
	ErrAssetCopy = errors.New("failed to stage intermediate files")

	// Render errors.
	ErrEmptyInput = errors.New("input path cannot be empty")
	ErrInputRead  = errors.New("failed to read input document")
	ErrPandoc     = errors.New("pandoc conversion failed")
)
