// Package mime resolves the content type of directory entries.
//
// Regular files are sniffed by content; directories, symlinks and other
// special files get well-known freedesktop type names. The resolved string
// is what the listing filter compares against.
package mime

import (
	"io/fs"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const (
	// Directory is the type reported for directories.
	Directory = "inode/directory"

	// Symlink is the type reported for symbolic links.
	Symlink = "inode/symlink"

	// Fallback is the type reported when the content cannot be inspected.
	Fallback = "application/octet-stream"
)

// sniffLimit caps how many bytes are read from a file for detection.
const sniffLimit = 3072

func init() {
	mimetype.SetLimit(sniffLimit)
}

// Resolve returns the MIME type for the entry at path. It never fails: an
// unreadable file resolves to Fallback so that filtering stays total.
func Resolve(path string, mode fs.FileMode) string {
	switch {
	case mode.IsDir():
		return Directory
	case mode&fs.ModeSymlink != 0:
		return Symlink
	case !mode.IsRegular():
		return Fallback
	}

	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return Fallback
	}
	return bare(mtype.String())
}

// bare strips media-type parameters, e.g. "text/plain; charset=utf-8"
// becomes "text/plain". Filter lists are written without parameters.
func bare(s string) string {
	if i := strings.IndexByte(s, ';'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
