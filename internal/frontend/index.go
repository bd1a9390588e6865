// Package frontend serves the dashboard's static index page.
package frontend

import (
	"io/fs"
	"log"
	"net/http"
	"os"
)

const indexFile = "index.html"

// Source picks the embedded page when present, otherwise dir on disk.
func Source(dir string) fs.FS {
	if embedded := Embedded(); embedded != nil {
		return embedded
	}
	return os.DirFS(dir)
}

// IndexHandler serves index.html from fsys, re-reading it on every request
// so edits show up without a restart.
func IndexHandler(fsys fs.FS) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		content, err := fs.ReadFile(fsys, indexFile)
		if err != nil {
			log.Printf("frontend: %v", err)
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte("File not found"))
			return
		}
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
		w.Write(content)
	}
}
