// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package intake validates and loads input documents. It is the boundary
// between raw file handles and the conversion pipeline: every document that
// reaches the orchestrator has passed the supported-extension check here.
package intake

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/docread/pkg/types"
)

// ErrUnsupportedFormat is returned for extensions outside the supported set.
// The document is rejected at the boundary; no conversion is attempted.
var ErrUnsupportedFormat = fmt.Errorf("unsupported document format")

// supportedExts is the set of extensions the pipeline accepts.
var supportedExts = map[string]bool{
	".docx": true,
	".xlsx": true,
	".pptx": true,
	".pdf":  true,
	".html": true,
	".htm":  true,
}

// Supported reports whether ext (lowercase, with leading dot) is convertible.
func Supported(ext string) bool {
	return supportedExts[strings.ToLower(ext)]
}

// SupportedExtensions returns the supported extension set in stable order.
func SupportedExtensions() []string {
	return []string{".docx", ".xlsx", ".pptx", ".pdf", ".html", ".htm"}
}

// Load reads the file at path into a Document, rejecting unsupported
// extensions with ErrUnsupportedFormat.
func Load(path string) (types.Document, error) {
	return FromBytes(filepath.Base(path), func() ([]byte, error) {
		return os.ReadFile(path)
	})
}

// FromBytes builds a Document named name from the bytes produced by read.
// The extension check runs before read, so unsupported inputs are rejected
// without touching their payload.
func FromBytes(name string, read func() ([]byte, error)) (types.Document, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if !supportedExts[ext] {
		return types.Document{}, fmt.Errorf("%w: %q (%s)", ErrUnsupportedFormat, ext, name)
	}

	data, err := read()
	if err != nil {
		return types.Document{}, fmt.Errorf("reading %s: %w", name, err)
	}

	return types.Document{
		Name:  name,
		Ext:   ext,
		Bytes: data,
		Size:  int64(len(data)),
	}, nil
}
