// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// extractXlsx reads the worksheets of an .xlsx container and renders each
// sheet as a markdown section with one pipe-separated line per row. Shared
// strings are resolved through xl/sharedStrings.xml.
func extractXlsx(path string) (string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("open xlsx container: %w", err)
	}
	defer r.Close()

	shared, err := readSharedStrings(&r.Reader)
	if err != nil {
		return "", err
	}
	names := readSheetNames(&r.Reader)

	var sheetFiles []*zip.File
	for _, f := range r.File {
		if strings.HasPrefix(f.Name, "xl/worksheets/sheet") && strings.HasSuffix(f.Name, ".xml") {
			sheetFiles = append(sheetFiles, f)
		}
	}
	sort.Slice(sheetFiles, func(i, j int) bool {
		return sheetNumber(sheetFiles[i].Name) < sheetNumber(sheetFiles[j].Name)
	})

	var out strings.Builder
	for i, f := range sheetFiles {
		rows, err := readSheetRows(f, shared)
		if err != nil {
			return "", err
		}
		if len(rows) == 0 {
			continue
		}

		name := fmt.Sprintf("Sheet%d", i+1)
		if i < len(names) {
			name = names[i]
		}

		if out.Len() > 0 {
			out.WriteString("\n\n")
		}
		fmt.Fprintf(&out, "## %s\n", name)
		for _, row := range rows {
			out.WriteByte('\n')
			out.WriteString(strings.Join(row, " | "))
		}
	}

	if out.Len() == 0 {
		return "", fmt.Errorf("no cell content found in xlsx")
	}
	return out.String(), nil
}

// sheetNumber extracts N from "xl/worksheets/sheetN.xml" for ordering.
func sheetNumber(name string) int {
	digits := strings.TrimSuffix(strings.TrimPrefix(name, "xl/worksheets/sheet"), ".xml")
	n, _ := strconv.Atoi(digits)
	return n
}

// readSharedStrings loads xl/sharedStrings.xml, a flat list of string
// items referenced by index from cells with type "s".
func readSharedStrings(r *zip.Reader) ([]string, error) {
	f := findZipEntry(r, "xl/sharedStrings.xml")
	if f == nil {
		return nil, nil
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open sharedStrings.xml: %w", err)
	}
	defer rc.Close()

	decoder := xml.NewDecoder(rc)
	var shared []string
	var item strings.Builder
	var inItem, inText bool

	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "si":
				inItem = true
				item.Reset()
			case "t":
				inText = inItem
			}
		case xml.CharData:
			if inText {
				item.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "si":
				inItem = false
				shared = append(shared, item.String())
			}
		}
	}
	return shared, nil
}

// readSheetNames returns the workbook's sheet names in declaration order.
func readSheetNames(r *zip.Reader) []string {
	f := findZipEntry(r, "xl/workbook.xml")
	if f == nil {
		return nil
	}
	rc, err := f.Open()
	if err != nil {
		return nil
	}
	defer rc.Close()

	decoder := xml.NewDecoder(rc)
	var names []string
	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}
		if t, ok := tok.(xml.StartElement); ok && t.Name.Local == "sheet" {
			for _, attr := range t.Attr {
				if attr.Name.Local == "name" {
					names = append(names, attr.Value)
				}
			}
		}
	}
	return names
}

// readSheetRows parses one worksheet into rows of rendered cell values.
func readSheetRows(f *zip.File, shared []string) ([][]string, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer rc.Close()

	decoder := xml.NewDecoder(rc)
	var rows [][]string
	var row []string
	var value strings.Builder
	var cellType string
	var inValue bool

	flushCell := func() {
		text := value.String()
		if cellType == "s" {
			if idx, err := strconv.Atoi(strings.TrimSpace(text)); err == nil && idx >= 0 && idx < len(shared) {
				text = shared[idx]
			}
		}
		row = append(row, text)
		value.Reset()
	}

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", f.Name, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "row":
				row = nil
			case "c":
				cellType = ""
				value.Reset()
				for _, attr := range t.Attr {
					if attr.Name.Local == "t" {
						cellType = attr.Value
					}
				}
			case "v", "t":
				inValue = true
			}
		case xml.CharData:
			if inValue {
				value.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "v", "t":
				inValue = false
			case "c":
				flushCell()
			case "row":
				if hasContent(row) {
					rows = append(rows, row)
				}
			}
		}
	}
	return rows, nil
}

// hasContent reports whether any cell in the row is non-empty.
func hasContent(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return true
		}
	}
	return false
}
