// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert runs documents through their extraction strategy chains.
// It owns the only branching logic in the pipeline: strategy selection,
// graceful degradation when a strategy fails, and the placeholder emitted
// when every strategy is exhausted. A conversion never propagates an error
// to its caller; one broken document must not take the batch down with it.
package convert

import (
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/docread/internal/engine"
	"github.com/pdiddy/docread/pkg/types"
)

// Spooler materializes a document's bytes to a path extraction strategies
// can open. The release func must be safe to call on every exit path.
type Spooler interface {
	Materialize(doc types.Document) (path string, release func(), err error)
}

// Chains resolves the ordered strategy chain for a file extension.
// *engine.Registry is the production implementation.
type Chains interface {
	ChainFor(ext string) []engine.Strategy
}

// BatchResult summarizes a batch conversion run.
type BatchResult struct {
	Converted int
	Failed    int
	FellBack  int
}

// Total returns the number of documents processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Failed
}

// HasFailures reports whether any document exhausted its strategy chain.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Convert runs one document through its strategy chain and always returns
// a ConversionResult. The bytes are spooled to a temp file first and the
// file is removed before returning, success or not. Strategies are tried
// in chain order, each at most once; the first one that produces usable
// text wins. When the chain is exhausted the result carries a placeholder
// content block naming the source file.
func Convert(spool Spooler, reg Chains, doc types.Document) types.ConversionResult {
	path, release, err := spool.Materialize(doc)
	if err != nil {
		return failedResult(doc, fmt.Sprintf("storage: %v", err))
	}
	defer release()

	var lastErr string
	for _, strat := range reg.ChainFor(doc.Ext) {
		content, err := strat.Extract(path)
		if err != nil {
			lastErr = err.Error()
			continue
		}
		if strings.TrimSpace(content) == "" {
			lastErr = fmt.Sprintf("%s produced no usable output", strat.Name())
			continue
		}
		return types.ConversionResult{
			SourceName:   doc.Name,
			Content:      content,
			Succeeded:    true,
			StrategyUsed: strat.Name(),
		}
	}

	return failedResult(doc, lastErr)
}

// failedResult builds the deterministic exhausted-fallback result.
func failedResult(doc types.Document, detail string) types.ConversionResult {
	return types.ConversionResult{
		SourceName:  doc.Name,
		Content:     Placeholder(doc.Name),
		Succeeded:   false,
		ErrorDetail: detail,
	}
}

// Placeholder returns the content block recorded for a document whose
// strategy chain was exhausted. It is a pure function of the source name so
// failed sections are reproducible.
func Placeholder(sourceName string) string {
	return fmt.Sprintf("*Could not extract text from %s. The file may be corrupted or empty.*", sourceName)
}

// ConvertBatch converts documents sequentially in input order, writing a
// per-file status line to w, and returns the ordered results plus a
// summary. Duplicate names are converted independently; nothing is
// deduplicated.
func ConvertBatch(spool Spooler, reg Chains, docs []types.Document, w io.Writer) ([]types.ConversionResult, BatchResult) {
	results := make([]types.ConversionResult, 0, len(docs))
	var summary BatchResult

	primary := reg.ChainFor("")[0].Name()

	for _, doc := range docs {
		res := Convert(spool, reg, doc)
		results = append(results, res)

		switch {
		case res.Succeeded && res.StrategyUsed != primary:
			summary.Converted++
			summary.FellBack++
			fmt.Fprintf(w, "converted: %s (via %s fallback)\n", doc.Name, res.StrategyUsed)
		case res.Succeeded:
			summary.Converted++
			fmt.Fprintf(w, "converted: %s\n", doc.Name)
		default:
			summary.Failed++
			fmt.Fprintf(w, "failed:  %s (%s)\n", doc.Name, res.ErrorDetail)
		}
	}

	fmt.Fprintf(w, "\nBatch summary: %d converted (%d via fallback), %d failed (total: %d)\n",
		summary.Converted, summary.FellBack, summary.Failed, summary.Total())
	return results, summary
}
