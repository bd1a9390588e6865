package frontend

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
)

func TestIndexHandler(t *testing.T) {
	fsys := fstest.MapFS{
		"index.html": &fstest.MapFile{Data: []byte("<h1>Command Center</h1>")},
	}

	rec := httptest.NewRecorder()
	IndexHandler(fsys).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html" {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
	if rec.Body.String() != "<h1>Command Center</h1>" {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestIndexHandlerMissingFile(t *testing.T) {
	rec := httptest.NewRecorder()
	IndexHandler(fstest.MapFS{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if rec.Body.String() != "File not found" {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestSourceFallsBackToDirectory(t *testing.T) {
	if Embedded() != nil {
		t.Skip("built with the embed tag")
	}
	if _, err := Source("static").Open("index.html"); err != nil {
		t.Errorf("Source(static) cannot open index.html: %v", err)
	}
}
