//go:build embed

package frontend

import (
	"embed"
	"io/fs"
)

//go:embed static/*
var staticFiles embed.FS

// Embedded returns the page compiled into the binary.
func Embedded() fs.FS {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
