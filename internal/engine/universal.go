// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/microcosm-cc/bluemonday"
)

// Universal is the primary format-general extraction engine. It dispatches
// on file extension: OOXML containers (docx, xlsx, pptx) are read as
// zip+xml, PDFs go through pdfcpu, and HTML is sanitized then converted to
// markdown.
type Universal struct {
	md        *converter.Converter
	sanitizer *bluemonday.Policy
}

// NewUniversal creates the built-in universal engine.
func NewUniversal() *Universal {
	return &Universal{
		md: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
		sanitizer: bluemonday.UGCPolicy(),
	}
}

// Name returns the strategy identifier.
func (u *Universal) Name() string { return "universal" }

// Extract converts the document at path to markdown text.
func (u *Universal) Extract(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".docx":
		return extractDocx(path)
	case ".xlsx":
		return extractXlsx(path)
	case ".pptx":
		return extractPptx(path)
	case ".pdf":
		return u.extractPDF(path)
	case ".html", ".htm":
		return u.extractHTML(path)
	default:
		return "", fmt.Errorf("no extractor for %q", ext)
	}
}
