// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/docread/pkg/types"
)

func sampleResults() []types.ConversionResult {
	return []types.ConversionResult{
		{SourceName: "report.docx", Content: "# Quarterly Report\n\nRevenue grew.", Succeeded: true, StrategyUsed: "universal"},
		{SourceName: "broken.pdf", Content: "salvaged pdf text", Succeeded: true, StrategyUsed: "pdftext"},
		{SourceName: "notes.html", Content: "*Could not extract text from notes.html. The file may be corrupted or empty.*", Succeeded: false},
	}
}

func TestAggregate_Format(t *testing.T) {
	rep := Aggregate([]types.ConversionResult{
		{SourceName: "a.docx", Content: "hello", Succeeded: true},
	})

	assert.Equal(t, "## Source: a.docx\n\nhello\n\n---\n\n", rep.CombinedText)
}

func TestAggregate_OrderAndIdempotence(t *testing.T) {
	results := sampleResults()

	first := Aggregate(results)
	second := Aggregate(results)

	require.Len(t, first.Sections, 3)
	for i, r := range results {
		assert.Equal(t, r.SourceName, first.Sections[i].SourceName, "section order must match input order")
	}
	assert.Equal(t, first.CombinedText, second.CombinedText, "aggregation must be byte-identical on re-run")

	// Headers appear in input order.
	iDocx := strings.Index(first.CombinedText, "## Source: report.docx")
	iPDF := strings.Index(first.CombinedText, "## Source: broken.pdf")
	iHTML := strings.Index(first.CombinedText, "## Source: notes.html")
	assert.True(t, iDocx >= 0 && iDocx < iPDF && iPDF < iHTML)
}

func TestAggregate_Empty(t *testing.T) {
	rep := Aggregate(nil)
	assert.Empty(t, rep.CombinedText)
	assert.Empty(t, rep.Sections)
}

func TestComputeMetrics(t *testing.T) {
	tests := []struct {
		name          string
		original      int64
		combined      string
		wantReduction float64
	}{
		{
			name:          "half the size",
			original:      1048576,
			combined:      strings.Repeat("x", 524288),
			wantReduction: 50.0,
		},
		{
			name:          "zero originals, no division",
			original:      0,
			combined:      "some text",
			wantReduction: 0,
		},
		{
			name:          "expansion yields negative reduction",
			original:      100,
			combined:      strings.Repeat("x", 300),
			wantReduction: -200,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ComputeMetrics(tt.original, tt.combined)
			assert.InDelta(t, tt.wantReduction, m.ReductionPercent, 1e-9)
			assert.Equal(t, tt.original, m.OriginalBytes)
			assert.Equal(t, int64(len(tt.combined)), m.ConvertedBytes)
		})
	}
}

func TestComputeMetrics_Displays(t *testing.T) {
	m := ComputeMetrics(1048576, strings.Repeat("x", 524288))
	assert.Equal(t, "1.00 MB", m.DisplayOriginal)
	assert.Equal(t, "0.50 MB", m.DisplayConverted)
}

func TestEfficiencyMetrics_ProgressClamping(t *testing.T) {
	negative := ComputeMetrics(100, strings.Repeat("x", 300))
	assert.Less(t, negative.ReductionPercent, 0.0, "raw metric keeps its sign")
	assert.Equal(t, 0.0, negative.Progress(), "display value is clamped at 0")

	full := ComputeMetrics(100, "")
	assert.Equal(t, 100.0, full.ReductionPercent)
	assert.Equal(t, 100.0, full.Progress())
}

func TestFormatMB(t *testing.T) {
	assert.Equal(t, "1.00 MB", FormatMB(1048576))
	assert.Equal(t, "0.50 MB", FormatMB(524288))
	assert.Equal(t, "0.00 MB", FormatMB(0))
	assert.Equal(t, "< 0.01 MB", FormatMB(120), "tiny non-zero sizes get the marker, not a bare zero")
}

func TestSummary(t *testing.T) {
	m := ComputeMetrics(1048576, strings.Repeat("x", 524288))
	s := Summary(m)

	assert.Contains(t, s, "Original File(s) Size: 1.00 MB")
	assert.Contains(t, s, "Converted Text Size:   0.50 MB")
	assert.Contains(t, s, "Text version is 50.0% smaller than the original.")
}

func TestArtifacts(t *testing.T) {
	artifacts := Artifacts("report", "## Source: report.docx\n\nhello\n\n---\n\n")

	require.Len(t, artifacts, 2)
	assert.Equal(t, "report_converted.md", artifacts[0].Name)
	assert.Equal(t, "text/markdown", artifacts[0].MediaType)
	assert.Equal(t, "report_converted.txt", artifacts[1].Name)
	assert.Equal(t, "text/plain", artifacts[1].MediaType)
	assert.Equal(t, artifacts[0].Data, artifacts[1].Data, "artifacts differ only in metadata")
}

func TestWriteArtifacts(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	artifacts := Artifacts("notes", "content")

	require.NoError(t, WriteArtifacts(dir, artifacts))

	md, err := os.ReadFile(filepath.Join(dir, "notes_converted.md"))
	require.NoError(t, err)
	txt, err := os.ReadFile(filepath.Join(dir, "notes_converted.txt"))
	require.NoError(t, err)
	assert.Equal(t, md, txt)
	assert.Equal(t, "content", string(md))
}

func TestBaseName(t *testing.T) {
	docs := []types.Document{
		{Name: "first.pdf", Ext: ".pdf"},
		{Name: "second.docx", Ext: ".docx"},
	}
	assert.Equal(t, "first", BaseName(docs))
	assert.Equal(t, "batch", BaseName(nil))
}

func TestWriteSummary(t *testing.T) {
	rep := Aggregate(sampleResults())
	m := ComputeMetrics(2048, rep.CombinedText)
	s := NewRunSummary(rep, m)

	t.Run("yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "run_summary.yaml")
		require.NoError(t, WriteSummary(path, types.SummaryYAML, s))

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		var decoded RunSummary
		require.NoError(t, yaml.Unmarshal(data, &decoded))
		assert.Len(t, decoded.Sections, 3)
		assert.Equal(t, m.OriginalBytes, decoded.Metrics.OriginalBytes)
	})

	t.Run("json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "run_summary.json")
		require.NoError(t, WriteSummary(path, types.SummaryJSON, s))

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		var decoded RunSummary
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, "broken.pdf", decoded.Sections[1].SourceName)
	})

	t.Run("unknown format", func(t *testing.T) {
		err := WriteSummary(filepath.Join(t.TempDir(), "x"), types.SummaryFormat("toml"), s)
		assert.Error(t, err)
	})
}
