package templatermd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/danwwilson/templatermd/internal/fileutil"
	"github.com/danwwilson/templatermd/internal/metadata"
)

// markdownExtensions are treated as child documents and scanned
// recursively for their own references.
var markdownExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
}

// Intermediates stages every auxiliary file the renderer needs into toDir:
// files the input document transitively references (images, child
// documents, bibliographies) and, when a supporting-files directory was
// recorded during pre-processing, its entire contents. Returns the staged
// paths so the renderer knows which extra files must be available.
func (f *Format) Intermediates(inputPath, toDir string, st *RenderState) ([]string, error) {
	refs, err := collectReferences(inputPath)
	if err != nil {
		return nil, err
	}

	baseDir := filepath.Dir(inputPath)
	var staged []string

	for _, ref := range refs {
		rel, err := filepath.Rel(baseDir, ref)
		if err != nil || strings.HasPrefix(rel, "..") {
			// References outside the document directory keep only
			// their base name; pandoc resolves them flat.
			rel = filepath.Base(ref)
		}
		dst := filepath.Join(toDir, rel)
		if err := fileutil.CopyFile(ref, dst); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrAssetCopy, err)
		}
		staged = append(staged, dst)
	}

	if st != nil && st.FilesDir != "" && fileutil.DirExists(st.FilesDir) {
		dst := filepath.Join(toDir, filepath.Base(st.FilesDir))
		copied, err := fileutil.CopyDirContents(st.FilesDir, dst)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrAssetCopy, err)
		}
		staged = append(staged, copied...)
	}

	return staged, nil
}

// collectReferences gathers every local file the document transitively
// references, in discovery order, without duplicates.
func collectReferences(inputPath string) ([]string, error) {
	visited := map[string]bool{}
	var refs []string

	if err := walkDocument(inputPath, visited, &refs); err != nil {
		return nil, err
	}

	return refs, nil
}

// walkDocument scans one document for referenced files and recurses into
// child markdown documents. The visited set guards against include cycles.
func walkDocument(path string, visited map[string]bool, refs *[]string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if visited[abs] {
		return nil
	}
	visited[abs] = true

	content, err := os.ReadFile(path) // #nosec G304 -- path comes from the document being rendered
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInputRead, err)
	}

	meta, body, err := metadata.Parse(string(content))
	if err != nil {
		// Malformed front matter is the renderer's problem; still scan
		// the full text for references.
		body = string(content)
		meta = nil
	}

	baseDir := filepath.Dir(path)

	if meta != nil {
		for _, bib := range meta.Bibliography {
			target := filepath.Join(baseDir, bib)
			if fileutil.FileExists(target) {
				addReference(target, visited, refs)
			}
		}
	}

	for _, dest := range markdownDestinations(body) {
		if !isLocalReference(dest) {
			continue
		}
		target := filepath.Join(baseDir, filepath.FromSlash(dest))
		if !fileutil.FileExists(target) {
			continue
		}
		addReference(target, visited, refs)

		if markdownExtensions[strings.ToLower(filepath.Ext(target))] {
			if err := walkDocument(target, visited, refs); err != nil {
				return err
			}
		}
	}

	return nil
}

// addReference records a file once, keyed by absolute path.
func addReference(path string, visited map[string]bool, refs *[]string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return
	}
	key := "ref:" + abs
	if visited[key] {
		return
	}
	visited[key] = true
	*refs = append(*refs, path)
}

// markdownDestinations parses markdown and returns the destination of
// every image and link, in document order.
func markdownDestinations(body string) []string {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader([]byte(body)))

	var dests []string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Image:
			dests = append(dests, string(node.Destination))
		case *ast.Link:
			dests = append(dests, string(node.Destination))
		}
		return ast.WalkContinue, nil
	})

	return dests
}

// isLocalReference filters out URLs, anchors, data URIs, and absolute
// paths; only relative local paths are staged.
func isLocalReference(dest string) bool {
	if dest == "" {
		return false
	}
	if strings.HasPrefix(dest, "http://") ||
		strings.HasPrefix(dest, "https://") ||
		strings.HasPrefix(dest, "file://") ||
		strings.HasPrefix(dest, "mailto:") ||
		strings.HasPrefix(dest, "data:") ||
		strings.HasPrefix(dest, "//") {
		return false
	}
	if strings.HasPrefix(dest, "#") {
		return false
	}
	if filepath.IsAbs(dest) {
		return false
	}
	return true
}
