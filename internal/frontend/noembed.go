//go:build !embed

package frontend

import "io/fs"

// Embedded returns nil when the binary is built without -tags embed; the
// page is then read from the configured static directory.
func Embedded() fs.FS {
	return nil
}
