// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the value types shared across pipeline stages.
package types

import "strings"

// Document holds one intake record: the raw bytes of an uploaded file
// together with its original name and size. It is immutable after intake;
// conversion reads it and discards it.
type Document struct {
	// Name is the original file name, including extension.
	Name string `json:"name" yaml:"name"`

	// Ext is the lowercase file extension with its leading dot (".pdf").
	Ext string `json:"ext" yaml:"ext"`

	// Bytes is the raw document payload.
	Bytes []byte `json:"-" yaml:"-"`

	// Size is the original payload size in bytes.
	Size int64 `json:"size" yaml:"size"`
}

// BaseName returns the document name with its extension stripped. The
// match is case-insensitive so "Report.DOCX" yields "Report".
func (d Document) BaseName() string {
	if n := len(d.Name) - len(d.Ext); n >= 0 && strings.EqualFold(d.Name[n:], d.Ext) {
		return d.Name[:n]
	}
	return d.Name
}

// ConversionResult is the outcome of converting a single document. Content
// is never empty: it holds either the extracted text or a deterministic
// placeholder describing the failure.
type ConversionResult struct {
	// SourceName is the original file name of the converted document.
	SourceName string `json:"source_name" yaml:"source_name"`

	// Content is the extracted markdown text, or a failure placeholder.
	Content string `json:"content" yaml:"content"`

	// Succeeded reports whether any extraction strategy produced output.
	Succeeded bool `json:"succeeded" yaml:"succeeded"`

	// StrategyUsed names the strategy that produced Content, when one did.
	StrategyUsed string `json:"strategy_used,omitempty" yaml:"strategy_used,omitempty"`

	// ErrorDetail holds the last strategy failure message, when all failed.
	ErrorDetail string `json:"error_detail,omitempty" yaml:"error_detail,omitempty"`
}

// AggregateReport is the ordered collection of per-document results plus
// the combined report text. CombinedText is a projection of Sections:
// re-deriving it from the same sections yields byte-identical output.
type AggregateReport struct {
	Sections     []ConversionResult `json:"sections" yaml:"sections"`
	CombinedText string             `json:"combined_text" yaml:"combined_text"`
}

// EfficiencyMetrics compares the total original payload size against the
// byte length of the combined converted text. ReductionPercent carries the
// raw signed value; a negative percentage means conversion expanded the
// payload and is a valid outcome. Display clamping happens in Progress.
type EfficiencyMetrics struct {
	// OriginalBytes is the sum of original file sizes across the batch.
	OriginalBytes int64 `json:"original_bytes" yaml:"original_bytes"`

	// ConvertedBytes is the UTF-8 byte length of the combined text.
	ConvertedBytes int64 `json:"converted_bytes" yaml:"converted_bytes"`

	// ReductionPercent is 100*(original-converted)/original, or 0 when
	// the batch had no original bytes.
	ReductionPercent float64 `json:"reduction_percent" yaml:"reduction_percent"`

	// DisplayOriginal is OriginalBytes rendered in megabytes.
	DisplayOriginal string `json:"display_original" yaml:"display_original"`

	// DisplayConverted is ConvertedBytes rendered in megabytes.
	DisplayConverted string `json:"display_converted" yaml:"display_converted"`
}

// Progress returns ReductionPercent bounded to [0, 100] for use as a
// progress indicator. The raw metric stays unclamped.
func (m EfficiencyMetrics) Progress() float64 {
	switch {
	case m.ReductionPercent < 0:
		return 0
	case m.ReductionPercent > 100:
		return 100
	default:
		return m.ReductionPercent
	}
}
