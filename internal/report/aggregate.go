// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report assembles per-document conversion results into the final
// deliverables: the combined text report, the size-efficiency metrics, and
// the named export artifacts.
package report

import (
	"fmt"
	"strings"

	"github.com/pdiddy/docread/pkg/types"
)

// Aggregate concatenates results into one report in input order. The
// combined text is a pure function of the sections: each section emits a
// source header, the content verbatim, and a separator. No trimming or
// normalization is applied, so aggregating the same sequence twice yields
// byte-identical output.
func Aggregate(results []types.ConversionResult) types.AggregateReport {
	var sb strings.Builder
	for _, r := range results {
		fmt.Fprintf(&sb, "## Source: %s\n\n%s\n\n---\n\n", r.SourceName, r.Content)
	}
	return types.AggregateReport{
		Sections:     results,
		CombinedText: sb.String(),
	}
}
