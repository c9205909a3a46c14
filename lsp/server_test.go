package lsp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dhamidi/doomfront/workspace"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

type recorder struct {
	published []protocol.PublishDiagnosticsParams
}

func (r *recorder) context() *glsp.Context {
	return &glsp.Context{
		Notify: func(method string, params any) {
			if method != protocol.ServerTextDocumentPublishDiagnostics {
				return
			}
			r.published = append(r.published, params.(protocol.PublishDiagnosticsParams))
		},
	}
}

func closeParams(path string) *protocol.DidCloseTextDocumentParams {
	return &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: pathToURI(path)},
	}
}

func TestDidCloseDiscardsUnsavedText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cvarinfo")
	if err := os.WriteFile(path, []byte("server int a;\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ls := &Server{ws: workspace.New(dir)}
	ls.ws.UpdateFile(path, "server int a")

	var rec recorder
	if err := ls.textDocumentDidClose(rec.context(), closeParams(path)); err != nil {
		t.Fatal(err)
	}

	f := ls.ws.GetFile(path)
	if f == nil || f.Content != "server int a;\n" {
		t.Fatalf("file after close = %+v", f)
	}
	if len(rec.published) != 1 || len(rec.published[0].Diagnostics) != 0 {
		t.Errorf("published = %+v", rec.published)
	}
}

func TestDidCloseForgetsDeletedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cvarinfo")

	ls := &Server{ws: workspace.New(dir)}
	ls.ws.UpdateFile(path, "server int a")

	var rec recorder
	if err := ls.textDocumentDidClose(rec.context(), closeParams(path)); err != nil {
		t.Fatal(err)
	}

	if f := ls.ws.GetFile(path); f != nil {
		t.Errorf("deleted file still in workspace: %q", f.Content)
	}
	if len(rec.published) != 1 || len(rec.published[0].Diagnostics) != 0 {
		t.Errorf("published = %+v", rec.published)
	}
}
