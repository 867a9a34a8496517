// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// extractHTML converts an HTML file to markdown. The document is sanitized
// first so scripts, styles and event handlers never reach the markdown
// converter. When conversion produces nothing usable the visible text is
// collected from the DOM instead.
func (u *Universal) extractHTML(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	clean := u.sanitizer.SanitizeBytes(data)
	md, err := u.md.ConvertString(string(clean))
	if err == nil && strings.TrimSpace(md) != "" {
		return strings.TrimSpace(md), nil
	}

	doc, perr := html.Parse(bytes.NewReader(data))
	if perr != nil {
		if err != nil {
			return "", fmt.Errorf("html to markdown: %w", err)
		}
		return "", fmt.Errorf("parse html: %w", perr)
	}
	text := collectText(doc)
	if text == "" {
		return "", fmt.Errorf("no text content found in html")
	}
	return text, nil
}

// collectText gathers all visible text from a parsed DOM subtree.
func collectText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				if sb.Len() > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(text)
			}
		}
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Noscript:
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
