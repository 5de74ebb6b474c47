// Package archive builds Walk abstraction on top of "archive/zip".
package archive

import (
	"archive/zip"
	"fmt"
	"path"
	"strings"

	"golang.org/x/text/encoding"
)

// WalkFunc is called for each file in archive visited by Walk. The archive
// argument is the path passed to Walk, name is the entry name, decoded when
// code page was requested and the entry is not marked as UTF-8. If an error is
// returned, processing stops.
type WalkFunc func(archive, name string, file *zip.File) error

// Walk calls walkFn for every file entry whose name starts with pattern.
// Zip does not define file name encoding, old archives often use local code
// page, cp (when not nil) is used to decode such names before matching.
// Archives with absolute entry names or names containing ".." are rejected.
func Walk(archive, pattern string, cp encoding.Encoding, walkFn WalkFunc) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		name := f.FileHeader.Name
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if f.FileInfo().IsDir() {
			continue
		}
		if cp != nil && f.FileHeader.NonUTF8 {
			decoded, err := cp.NewDecoder().String(name)
			if err != nil {
				return fmt.Errorf("zip entry %q: unable to decode name: %w", name, err)
			}
			name = decoded
		}
		if !strings.HasPrefix(name, pattern) {
			continue
		}
		if err := walkFn(archive, name, f); err != nil {
			return err
		}
	}
	return nil
}

// isSafePath returns false for paths that could escape the extraction
// directory: absolute paths and those containing ".." components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, `\`) {
		return false
	}
	for part := range strings.SplitSeq(strings.ReplaceAll(name, `\`, "/"), "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
