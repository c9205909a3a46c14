package workspace

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dhamidi/doomfront/config"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newTestWorkspace(t *testing.T) (*Workspace, string) {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "CVARINFO"), "server int a;\nuser float b = 1.5;\n")
	writeFile(t, filepath.Join(dir, "sub", "cvarinfo.weapons"), "user int x\nuser int y;\n")
	writeFile(t, filepath.Join(dir, "notes.md"), "server int ignored;")
	writeFile(t, filepath.Join(dir, ".git", "cvarinfo"), "server int hidden;")
	writeFile(t, filepath.Join(dir, "build", "cvarinfo"), "server int excluded;")

	cfg := config.Default()
	cfg.Root = dir
	cfg.Workers = 2
	cfg.Exclude = []string{"build/*"}
	return New(dir, WithConfig(cfg)), dir
}

func TestScanAll(t *testing.T) {
	ws, dir := newTestWorkspace(t)
	if err := ws.ScanAll(context.Background()); err != nil {
		t.Fatal(err)
	}

	files := ws.Files()
	want := []string{filepath.Join(dir, "CVARINFO"), filepath.Join(dir, "sub", "cvarinfo.weapons")}
	if len(files) != len(want) {
		t.Fatalf("got %d files, want %d", len(files), len(want))
	}
	for i, f := range files {
		if f.Path != want[i] {
			t.Errorf("file %d = %s, want %s", i, f.Path, want[i])
		}
	}

	if n := len(files[0].Declarations()); n != 2 {
		t.Errorf("%s: %d declarations, want 2", files[0].Path, n)
	}
	if len(files[0].Errors) != 0 {
		t.Errorf("%s: unexpected errors %v", files[0].Path, files[0].Errors)
	}
	if ws.ErrorCount() != 1 {
		t.Errorf("ErrorCount = %d, want 1", ws.ErrorCount())
	}
}

func TestScanAllCancelled(t *testing.T) {
	ws, _ := newTestWorkspace(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := ws.ScanAll(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestScanFileRejectsOtherFiles(t *testing.T) {
	ws, dir := newTestWorkspace(t)
	_, err := ws.ScanFile(filepath.Join(dir, "notes.md"))
	if !errors.Is(err, ErrNotCVarInfo) {
		t.Errorf("error = %v, want ErrNotCVarInfo", err)
	}
}

func TestUpdateAndRemove(t *testing.T) {
	ws := New(t.TempDir())

	f := ws.UpdateFile("mod/./cvarinfo", "user int a")
	if f.Path != filepath.Clean("mod/cvarinfo") {
		t.Errorf("path = %s", f.Path)
	}
	if len(f.Errors) != 1 {
		t.Errorf("errors = %v, want one", f.Errors)
	}
	if got := f.Cursor().Root().Text(); got != "user int a" {
		t.Errorf("tree text = %q", got)
	}

	f = ws.UpdateFile("mod/cvarinfo", "user int a;")
	if len(f.Errors) != 0 || ws.GetFile("mod/cvarinfo") != f {
		t.Errorf("update did not replace the file")
	}

	if !ws.RemoveFile("mod/cvarinfo") {
		t.Error("RemoveFile reported an unknown file")
	}
	if ws.RemoveFile("mod/cvarinfo") {
		t.Error("second RemoveFile reported a known file")
	}
	if ws.GetFile("mod/cvarinfo") != nil {
		t.Error("file still present")
	}
}

func TestStrictKeepsFirstError(t *testing.T) {
	cfg := config.Default()
	cfg.Strict = true
	ws := New(".", WithConfig(cfg))

	f := ws.UpdateFile("cvarinfo", "user int a\nuser int b\n")
	if len(f.Tree.Errors()) != 2 {
		t.Fatalf("tree errors = %v, want two", f.Tree.Errors())
	}
	if len(f.Errors) != 1 || f.Errors[0].Span != f.Tree.Errors()[0].Span {
		t.Errorf("errors = %v, want the first tree error", f.Errors)
	}
}

func TestScanPathsReportsUnreadableFiles(t *testing.T) {
	ws, dir := newTestWorkspace(t)
	missing := filepath.Join(dir, "gone", "cvarinfo")
	err := ws.ScanPaths(context.Background(), []string{filepath.Join(dir, "notes.md"), missing})
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want a not-exist error", err)
	}
	if ws.GetFile(filepath.Join(dir, "notes.md")) == nil {
		t.Error("explicit path was not parsed")
	}
}
