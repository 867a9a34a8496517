// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that fetch remote inputs.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "docread/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// EngineBackend identifies the primary extraction engine.
type EngineBackend string

const (
	// EngineNative is the built-in pure-Go extraction engine.
	EngineNative EngineBackend = "native"

	// EngineMarkitdown pipes documents through the markitdown container image.
	EngineMarkitdown EngineBackend = "markitdown"
)

// SummaryFormat selects the machine-readable run summary encoding.
type SummaryFormat string

const (
	SummaryNone SummaryFormat = ""
	SummaryYAML SummaryFormat = "yaml"
	SummaryJSON SummaryFormat = "json"
)

// FetchConfig holds settings for downloading remote documents.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxRetries is the number of retry attempts on HTTP 429 (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// ConvertConfig holds settings for the conversion pipeline.
type ConvertConfig struct {
	// Engine selects the primary extraction engine: native or markitdown.
	Engine EngineBackend `json:"engine" yaml:"engine"`

	// OutDir is the directory that receives the export artifacts.
	OutDir string `json:"out_dir" yaml:"out_dir"`

	// Summary selects an optional machine-readable run summary: yaml or json.
	Summary SummaryFormat `json:"summary,omitempty" yaml:"summary,omitempty"`
}
