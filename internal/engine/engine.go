// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package engine implements the extraction strategies and the format-aware
// registry that orders them. A strategy is one black-box capability: give
// it a file path, get markdown text or an error. The registry decides which
// strategies apply to an extension and in what order they are tried.
package engine

import "strings"

// Strategy attempts to turn one document file into text. Implementations
// are stateless from the caller's viewpoint; a strategy fails by returning
// an error or empty output.
type Strategy interface {
	// Name returns the strategy identifier recorded in conversion results.
	Name() string

	// Extract reads the document at path and returns its text content.
	Extract(path string) (string, error)
}

// Registry maps file extensions to ordered strategy chains.
type Registry struct {
	primary     Strategy
	pdfFallback Strategy
}

// NewRegistry builds a Registry around the given primary engine. Every
// supported extension gets the primary; .pdf additionally gets the raw
// text-scan fallback, because the format-general primary is the one engine
// that is brittle on malformed or unusual PDFs.
func NewRegistry(primary Strategy) *Registry {
	return &Registry{
		primary:     primary,
		pdfFallback: NewPDFText(),
	}
}

// ChainFor returns the ordered strategy chain for ext. The chain is never
// empty for a supported extension; callers try entries in order and stop at
// the first success.
func (r *Registry) ChainFor(ext string) []Strategy {
	chain := []Strategy{r.primary}
	if strings.ToLower(ext) == ".pdf" {
		chain = append(chain, r.pdfFallback)
	}
	return chain
}
