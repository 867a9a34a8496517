// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"strings"
)

// extractDocx reads word/document.xml from the .docx ZIP container and
// renders paragraphs as markdown, mapping heading styles to # levels.
func extractDocx(path string) (string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("open docx container: %w", err)
	}
	defer r.Close()

	doc := findZipEntry(&r.Reader, "word/document.xml")
	if doc == nil {
		return "", fmt.Errorf("word/document.xml not found in archive")
	}

	rc, err := doc.Open()
	if err != nil {
		return "", fmt.Errorf("open document.xml: %w", err)
	}
	defer rc.Close()

	decoder := xml.NewDecoder(rc)
	var out strings.Builder
	var para strings.Builder
	var inParagraph bool
	var style string

	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case t.Name.Local == "p":
				inParagraph = true
				para.Reset()
				style = ""
			case t.Name.Local == "pStyle" && inParagraph:
				for _, attr := range t.Attr {
					if attr.Name.Local == "val" {
						style = attr.Value
					}
				}
			case t.Name.Local == "tab" && inParagraph:
				para.WriteByte('\t')
			case t.Name.Local == "br" && inParagraph:
				para.WriteByte('\n')
			}

		case xml.CharData:
			if inParagraph {
				para.Write(t)
			}

		case xml.EndElement:
			if t.Name.Local == "p" && inParagraph {
				inParagraph = false
				text := strings.TrimSpace(para.String())
				if text == "" {
					continue
				}
				if out.Len() > 0 {
					out.WriteString("\n\n")
				}
				if level := docxHeadingLevel(style); level > 0 {
					out.WriteString(strings.Repeat("#", level))
					out.WriteByte(' ')
				}
				out.WriteString(text)
			}
		}
	}

	if out.Len() == 0 {
		return "", fmt.Errorf("no text content found in docx")
	}
	return out.String(), nil
}

// docxHeadingLevel maps a paragraph style name to a heading level.
// "Heading1" → 1, "Title" → 1, "Subtitle" → 2; body styles → 0.
func docxHeadingLevel(style string) int {
	lower := strings.ToLower(style)

	if lower == "title" {
		return 1
	}
	if lower == "subtitle" {
		return 2
	}

	// Localized style prefixes: "Heading1", "Titre2", "Überschrift3".
	for _, prefix := range []string{"heading", "titre", "überschrift"} {
		if strings.HasPrefix(lower, prefix) {
			rest := lower[len(prefix):]
			if len(rest) == 1 && rest[0] >= '1' && rest[0] <= '6' {
				return int(rest[0] - '0')
			}
		}
	}
	return 0
}

// findZipEntry returns the archive entry with the given name, or nil.
func findZipEntry(r *zip.Reader, name string) *zip.File {
	for _, f := range r.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}
