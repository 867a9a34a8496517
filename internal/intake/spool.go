// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package intake

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/docread/pkg/types"
)

// Spool materializes document bytes to scoped temporary files. Extraction
// libraries want a filesystem path, not an in-memory stream, so each
// conversion borrows a temp file for its duration. The release func removes
// the file; callers defer it so the file is gone on every exit path.
type Spool struct {
	dir string
}

// NewSpool creates a Spool rooted at dir, or at the system temp directory
// when dir is empty.
func NewSpool(dir string) *Spool {
	return &Spool{dir: dir}
}

// Materialize writes doc's bytes to a temporary file that keeps the
// original extension (extraction engines dispatch on it). It returns the
// file path and a release func that removes the file.
func (s *Spool) Materialize(doc types.Document) (path string, release func(), err error) {
	pattern := "docread-*" + doc.Ext
	f, err := os.CreateTemp(s.dir, pattern)
	if err != nil {
		return "", nil, fmt.Errorf("spooling %s: %w", doc.Name, err)
	}

	path = f.Name()
	release = func() { os.Remove(path) }

	if _, err := f.Write(doc.Bytes); err != nil {
		f.Close()
		release()
		return "", nil, fmt.Errorf("spooling %s: %w", doc.Name, err)
	}
	if err := f.Close(); err != nil {
		release()
		return "", nil, fmt.Errorf("spooling %s: %w", doc.Name, err)
	}

	return path, release, nil
}

// Dir returns the spool directory, resolving the empty default.
func (s *Spool) Dir() string {
	if s.dir == "" {
		return filepath.Clean(os.TempDir())
	}
	return s.dir
}
