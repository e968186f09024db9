package templatermd

import (
	"os"
	"testing"

	"github.com/danwwilson/templatermd/internal/fileutil"
	"github.com/danwwilson/templatermd/internal/metadata"
)

// preprocessInput parses doc and builds a hook input for tests.
func preprocessInput(t *testing.T, doc string) PreProcessInput {
	t.Helper()
	meta, _, err := metadata.Parse(doc)
	if err != nil {
		t.Fatalf("metadata.Parse() error = %v", err)
	}
	return PreProcessInput{Metadata: meta, InputText: doc}
}

func countArg(args []string, want string) int {
	n := 0
	for _, a := range args {
		if a == want {
			n++
		}
	}
	return n
}

func TestGeometryDefault(t *testing.T) {
	t.Run("injected once when front matter has no geometry", func(t *testing.T) {
		f := mustCompile(t, DefaultOptions())
		st := &RenderState{}
		defer st.Cleanup()

		args, err := f.PreProcess(preprocessInput(t, "---\ntitle: Report\n---\nbody"), st)
		if err != nil {
			t.Fatalf("PreProcess() error = %v", err)
		}
		if countArg(args, defaultGeometry) != 1 {
			t.Errorf("args = %v, want exactly one %q", args, defaultGeometry)
		}
	})

	t.Run("not injected when front matter declares geometry", func(t *testing.T) {
		f := mustCompile(t, DefaultOptions())
		st := &RenderState{}
		defer st.Cleanup()

		args, err := f.PreProcess(preprocessInput(t, "---\ngeometry: margin=2in\n---\nbody"), st)
		if err != nil {
			t.Fatalf("PreProcess() error = %v", err)
		}
		if countArg(args, defaultGeometry) != 0 {
			t.Errorf("args = %v, geometry default must not appear", args)
		}
	})

	t.Run("not injected with a custom template", func(t *testing.T) {
		opts := DefaultOptions()
		opts.Template = "/custom/brand.tex"
		f := mustCompile(t, opts)
		st := &RenderState{}
		defer st.Cleanup()

		args, err := f.PreProcess(preprocessInput(t, "---\ntitle: Report\n---\nbody"), st)
		if err != nil {
			t.Fatalf("PreProcess() error = %v", err)
		}
		if countArg(args, defaultGeometry) != 0 {
			t.Errorf("args = %v, geometry default only applies to the bundled template", args)
		}
	})
}

func TestDependencyInclude(t *testing.T) {
	t.Run("merges caller, discovered, and header-includes in order", func(t *testing.T) {
		opts := DefaultOptions()
		opts.Template = "" // keep geometry out of the way
		opts.ExtraDependencies = []LatexDependency{{Name: "booktabs"}}
		f := mustCompile(t, opts)

		st := &RenderState{}
		defer st.Cleanup()

		in := preprocessInput(t, "---\nheader-includes: custom\n---\nbody")
		in.Computation = ComputationMeta{Dependencies: []LatexDependency{{Name: "longtable"}}}

		args, err := f.PreProcess(in, st)
		if err != nil {
			t.Fatalf("PreProcess() error = %v", err)
		}

		path := argValue(args, "--include-in-header")
		if path == "" {
			t.Fatalf("args = %v, want --include-in-header", args)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("reading include file: %v", err)
		}
		want := "\\usepackage{booktabs}\n\\usepackage{longtable}\ncustom\n"
		if string(content) != want {
			t.Errorf("include file = %q, want %q", content, want)
		}
	})

	t.Run("no flag when nothing to include", func(t *testing.T) {
		opts := DefaultOptions()
		opts.Template = ""
		f := mustCompile(t, opts)

		st := &RenderState{}
		defer st.Cleanup()

		args, err := f.PreProcess(preprocessInput(t, "---\nheader-includes: custom\n---\nbody"), st)
		if err != nil {
			t.Fatalf("PreProcess() error = %v", err)
		}
		if containsArg(args, "--include-in-header") {
			t.Errorf("args = %v, include flag must not appear without dependencies", args)
		}
	})

	t.Run("cleanup removes the include file", func(t *testing.T) {
		opts := DefaultOptions()
		opts.Template = ""
		opts.ExtraDependencies = []LatexDependency{{Name: "booktabs"}}
		f := mustCompile(t, opts)

		st := &RenderState{}
		args, err := f.PreProcess(preprocessInput(t, "body"), st)
		if err != nil {
			t.Fatalf("PreProcess() error = %v", err)
		}

		path := argValue(args, "--include-in-header")
		if !fileutil.FileExists(path) {
			t.Fatalf("include file %q missing before cleanup", path)
		}

		st.Cleanup()
		if fileutil.FileExists(path) {
			t.Errorf("include file %q still exists after cleanup", path)
		}
	})
}

func TestPreProcessRecordsFilesDir(t *testing.T) {
	opts := DefaultOptions()
	opts.Template = ""
	f := mustCompile(t, opts)

	st := &RenderState{}
	in := preprocessInput(t, "body")
	in.FilesDir = "/tmp/report_files"

	if _, err := f.PreProcess(in, st); err != nil {
		t.Fatalf("PreProcess() error = %v", err)
	}
	if st.FilesDir != "/tmp/report_files" {
		t.Errorf("FilesDir = %q, want %q", st.FilesDir, "/tmp/report_files")
	}
}
