// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"encoding/json"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/docread/pkg/types"
)

// RunSummary is the machine-readable record of one conversion run.
type RunSummary struct {
	Sections []types.ConversionResult `json:"sections" yaml:"sections"`
	Metrics  types.EfficiencyMetrics  `json:"metrics" yaml:"metrics"`
	Progress float64                  `json:"progress" yaml:"progress"`
}

// NewRunSummary builds the summary for a finished run.
func NewRunSummary(rep types.AggregateReport, m types.EfficiencyMetrics) RunSummary {
	return RunSummary{
		Sections: rep.Sections,
		Metrics:  m,
		Progress: m.Progress(),
	}
}

// WriteSummary serializes the run summary to path in the given format.
func WriteSummary(path string, format types.SummaryFormat, s RunSummary) error {
	var data []byte
	var err error

	switch format {
	case types.SummaryYAML:
		data, err = yaml.Marshal(s)
	case types.SummaryJSON:
		data, err = json.MarshalIndent(s, "", "  ")
	default:
		return fmt.Errorf("unknown summary format %q", format)
	}
	if err != nil {
		return fmt.Errorf("marshaling run summary: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}
