// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"bytes"
	"compress/flate"
	"compress/zlib"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"unicode"
)

// PDFText is the lightweight PDF fallback strategy. It skips PDF structure
// validation entirely: it locates stream objects in the raw file, inflates
// the compressed ones, and scans whatever decodes for text operators. That
// recovers text from files whose cross-reference table the primary engine
// rejects.
type PDFText struct{}

// NewPDFText creates the raw text-scan fallback.
func NewPDFText() *PDFText { return &PDFText{} }

// Name returns the strategy identifier.
func (p *PDFText) Name() string { return "pdftext" }

var (
	streamStartRe = regexp.MustCompile(`stream\r?\n`)
	streamEnd     = []byte("endstream")
)

// Extract scans the file at path for content streams carrying text.
func (p *PDFText) Extract(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return "", fmt.Errorf("not a PDF file")
	}

	var out strings.Builder
	for _, s := range splitStreams(data) {
		payload := s.data
		if s.deflated {
			payload = inflateStream(payload)
		}
		text := scanContentStream(payload)
		if text == "" {
			continue
		}
		if out.Len() > 0 {
			out.WriteString("\n\n")
		}
		out.WriteString(text)
	}

	if out.Len() == 0 {
		return "", fmt.Errorf("no recoverable text in PDF")
	}
	return out.String(), nil
}

// pdfStream is one stream object's payload plus its declared compression.
type pdfStream struct {
	deflated bool
	data     []byte
}

// splitStreams returns the payload of every stream...endstream object.
// The dict between the previous object marker and the stream keyword is
// checked for a FlateDecode filter so uncompressed streams are not run
// through the decompressor.
func splitStreams(data []byte) []pdfStream {
	var streams []pdfStream
	rest := data
	for {
		loc := streamStartRe.FindIndex(rest)
		if loc == nil {
			break
		}

		dictStart := loc[0] - 512
		if dictStart < 0 {
			dictStart = 0
		}
		deflated := bytes.Contains(rest[dictStart:loc[0]], []byte("FlateDecode"))

		body := rest[loc[1]:]
		end := bytes.Index(body, streamEnd)
		if end < 0 {
			break
		}
		streams = append(streams, pdfStream{deflated: deflated, data: body[:end]})
		rest = body[end+len(streamEnd):]
	}
	return streams
}

// inflateStream attempts zlib then raw-flate decompression, falling back to
// the stream bytes themselves when neither decodes.
func inflateStream(raw []byte) []byte {
	if zr, err := zlib.NewReader(bytes.NewReader(raw)); err == nil {
		if data, err := io.ReadAll(zr); err == nil && len(data) > 0 {
			zr.Close()
			return data
		}
		zr.Close()
	}
	fr := flate.NewReader(bytes.NewReader(raw))
	if data, err := io.ReadAll(fr); err == nil && len(data) > 0 {
		fr.Close()
		return data
	}
	fr.Close()
	return raw
}

// pdfStringRe matches PDF string literals: (text here)
var pdfStringRe = regexp.MustCompile(`\(((?:\\.|[^\\)])*)\)`)

// scanContentStream walks a content stream line by line and collects the
// arguments of the text-showing operators Tj, TJ and '. Positioning
// operators (Td, TD, T*) contribute spacing so words don't run together.
func scanContentStream(data []byte) string {
	var sb strings.Builder

	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		switch {
		case bytes.HasSuffix(line, []byte("Tj")), bytes.HasSuffix(line, []byte("TJ")):
			for _, m := range pdfStringRe.FindAllSubmatch(line, -1) {
				sb.WriteString(decodePDFString(m[1]))
			}

		case bytes.HasSuffix(line, []byte("'")) && bytes.Contains(line, []byte("(")):
			for _, m := range pdfStringRe.FindAllSubmatch(line, -1) {
				if text := decodePDFString(m[1]); text != "" {
					sb.WriteByte('\n')
					sb.WriteString(text)
				}
			}

		case bytes.HasSuffix(line, []byte("Td")), bytes.HasSuffix(line, []byte("TD")):
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}

		case bytes.Equal(line, []byte("T*")):
			sb.WriteByte('\n')
		}
	}

	return cleanPDFText(sb.String())
}

// decodePDFString resolves backslash escapes, including octal byte values.
func decodePDFString(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			sb.WriteByte(raw[i])
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '\\', '(', ')':
			sb.WriteByte(raw[i])
		default:
			if raw[i] >= '0' && raw[i] <= '7' {
				val := int(raw[i] - '0')
				for n := 0; n < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; n++ {
					i++
					val = val*8 + int(raw[i]-'0')
				}
				sb.WriteByte(byte(val))
			} else {
				sb.WriteByte(raw[i])
			}
		}
	}
	return sb.String()
}

// cleanPDFText collapses whitespace runs and drops non-printable runes.
func cleanPDFText(text string) string {
	var sb strings.Builder
	prevSpace := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			if !prevSpace && sb.Len() > 0 {
				sb.WriteByte(' ')
				prevSpace = true
			}
		} else if unicode.IsPrint(r) {
			sb.WriteRune(r)
			prevSpace = false
		}
	}
	return strings.TrimSpace(sb.String())
}
