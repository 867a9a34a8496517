// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// extractPptx reads the slides of a .pptx container in slide order and
// renders each as a markdown section. DrawingML text runs (<a:t>) inside
// one paragraph (<a:p>) are joined; paragraphs become separate lines.
func extractPptx(path string) (string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("open pptx container: %w", err)
	}
	defer r.Close()

	var slides []*zip.File
	for _, f := range r.File {
		if strings.HasPrefix(f.Name, "ppt/slides/slide") && strings.HasSuffix(f.Name, ".xml") {
			slides = append(slides, f)
		}
	}
	sort.Slice(slides, func(i, j int) bool {
		return slideNumber(slides[i].Name) < slideNumber(slides[j].Name)
	})
	if len(slides) == 0 {
		return "", fmt.Errorf("no slides found in pptx")
	}

	var out strings.Builder
	for i, f := range slides {
		paragraphs, err := readSlideParagraphs(f)
		if err != nil {
			return "", err
		}
		if len(paragraphs) == 0 {
			continue
		}

		if out.Len() > 0 {
			out.WriteString("\n\n")
		}
		fmt.Fprintf(&out, "## Slide %d\n", i+1)
		for _, p := range paragraphs {
			out.WriteByte('\n')
			out.WriteString(p)
		}
	}

	if out.Len() == 0 {
		return "", fmt.Errorf("no text content found in pptx")
	}
	return out.String(), nil
}

// slideNumber extracts N from "ppt/slides/slideN.xml" for ordering.
func slideNumber(name string) int {
	digits := strings.TrimSuffix(strings.TrimPrefix(name, "ppt/slides/slide"), ".xml")
	n, _ := strconv.Atoi(digits)
	return n
}

// readSlideParagraphs parses one slide's XML into paragraph strings.
func readSlideParagraphs(f *zip.File) ([]string, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer rc.Close()

	decoder := xml.NewDecoder(rc)
	var paragraphs []string
	var para strings.Builder
	var inParagraph, inRun bool

	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				inParagraph = true
				para.Reset()
			case "t":
				inRun = inParagraph
			}
		case xml.CharData:
			if inRun {
				para.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inRun = false
			case "p":
				if inParagraph {
					inParagraph = false
					if text := strings.TrimSpace(para.String()); text != "" {
						paragraphs = append(paragraphs, text)
					}
				}
			}
		}
	}
	return paragraphs, nil
}
