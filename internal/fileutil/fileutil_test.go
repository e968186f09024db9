package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteTempFile(t *testing.T) {
	t.Run("creates file with content and extension", func(t *testing.T) {
		path, cleanup, err := WriteTempFile([]byte("\\usepackage{booktabs}"), "tex")
		if err != nil {
			t.Fatalf("WriteTempFile() error = %v", err)
		}
		defer cleanup()

		if !strings.HasSuffix(path, ".tex") {
			t.Errorf("path = %q, want .tex suffix", path)
		}
		if !strings.HasPrefix(filepath.Base(path), TempPrefix) {
			t.Errorf("path = %q, want %q prefix", path, TempPrefix)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("reading temp file: %v", err)
		}
		if string(content) != "\\usepackage{booktabs}" {
			t.Errorf("content = %q", content)
		}
	})

	t.Run("cleanup removes the file", func(t *testing.T) {
		path, cleanup, err := WriteTempFile([]byte("x"), "tex")
		if err != nil {
			t.Fatalf("WriteTempFile() error = %v", err)
		}
		cleanup()
		if FileExists(path) {
			t.Errorf("file %q still exists after cleanup", path)
		}
	})

	t.Run("empty extension rejected", func(t *testing.T) {
		_, _, err := WriteTempFile([]byte("x"), "")
		if !errors.Is(err, ErrExtensionEmpty) {
			t.Errorf("error = %v, want ErrExtensionEmpty", err)
		}
	})

	t.Run("path separator in extension rejected", func(t *testing.T) {
		_, _, err := WriteTempFile([]byte("x"), "tex/../../etc")
		if !errors.Is(err, ErrExtensionPathTraversal) {
			t.Errorf("error = %v, want ErrExtensionPathTraversal", err)
		}
	})
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(path, []byte("x"), 0600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if !FileExists(path) {
		t.Error("FileExists(file) = false, want true")
	}
	if FileExists(dir) {
		t.Error("FileExists(dir) = true, want false")
	}
	if FileExists(filepath.Join(dir, "absent")) {
		t.Error("FileExists(absent) = true, want false")
	}

	if !DirExists(dir) {
		t.Error("DirExists(dir) = false, want true")
	}
	if DirExists(path) {
		t.Error("DirExists(file) = true, want false")
	}
}

func TestCopyFile(t *testing.T) {
	t.Run("copies into nested destination", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "src.bin")
		if err := os.WriteFile(src, []byte("payload"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		dst := filepath.Join(dir, "out", "deep", "dst.bin")
		if err := CopyFile(src, dst); err != nil {
			t.Fatalf("CopyFile() error = %v", err)
		}

		content, err := os.ReadFile(dst)
		if err != nil {
			t.Fatalf("reading copy: %v", err)
		}
		if string(content) != "payload" {
			t.Errorf("content = %q, want payload", content)
		}
	})

	t.Run("missing source fails", func(t *testing.T) {
		dir := t.TempDir()
		err := CopyFile(filepath.Join(dir, "absent"), filepath.Join(dir, "dst"))
		if err == nil {
			t.Error("CopyFile() error = nil, want failure")
		}
	})
}

func TestCopyDirContents(t *testing.T) {
	src := t.TempDir()
	if err := os.WriteFile(filepath.Join(src, "a.pdf"), []byte("a"), 0600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(src, "sub"), 0750); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(filepath.Join(src, "sub", "b.pdf"), []byte("b"), 0600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	dst := filepath.Join(t.TempDir(), "figure-dir")
	copied, err := CopyDirContents(src, dst)
	if err != nil {
		t.Fatalf("CopyDirContents() error = %v", err)
	}

	if len(copied) != 2 {
		t.Fatalf("copied = %v, want 2 files", copied)
	}
	for _, p := range copied {
		if !strings.HasPrefix(p, dst) {
			t.Errorf("copied path %q not under %q", p, dst)
		}
		if !FileExists(p) {
			t.Errorf("copied path %q not on disk", p)
		}
	}
}
