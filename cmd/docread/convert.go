package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docread/internal/container"
	"github.com/pdiddy/docread/internal/convert"
	"github.com/pdiddy/docread/internal/engine"
	"github.com/pdiddy/docread/internal/fetch"
	"github.com/pdiddy/docread/internal/intake"
	"github.com/pdiddy/docread/internal/report"
	"github.com/pdiddy/docread/pkg/types"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "docread/0.1"
)

var convertCmd = &cobra.Command{
	Use:   "convert [files-or-urls...]",
	Short: "Convert documents into one combined markdown report",
	Long: `Convert reads the given documents (local paths or http(s) URLs), extracts
each one to markdown, and aggregates the results into a single report with
per-source sections. A failed document is recorded as a placeholder section;
it never aborts the rest of the batch.

The report is written twice with identical content: <base>_converted.md and
<base>_converted.txt, where <base> is the first document's name without its
extension.`,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("engine", "", "primary extraction engine: native or markitdown (default native)")
	convertCmd.Flags().String("out-dir", ".", "directory for export artifacts")
	convertCmd.Flags().String("summary", "", "also write a machine-readable run summary: yaml or json")
	convertCmd.Flags().Duration("timeout", 0, "HTTP timeout for URL inputs (default 60s)")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more documents (.docx, .xlsx, .pptx, .pdf, .html, .htm) or URLs")
	}

	cfg, err := convertConfig(cmd)
	if err != nil {
		return err
	}

	primary, err := buildEngine(cfg.Engine)
	if err != nil {
		return err
	}
	reg := engine.NewRegistry(primary)

	docs, err := resolveInputs(cmd, args)
	if err != nil {
		return err
	}

	spool := intake.NewSpool("")
	results, summary := convert.ConvertBatch(spool, reg, docs, os.Stdout)

	rep := report.Aggregate(results)

	var originalTotal int64
	for _, d := range docs {
		originalTotal += d.Size
	}
	metrics := report.ComputeMetrics(originalTotal, rep.CombinedText)

	fmt.Fprintln(os.Stdout)
	fmt.Fprint(os.Stdout, report.Summary(metrics))

	base := report.BaseName(docs)
	artifacts := report.Artifacts(base, rep.CombinedText)
	if err := report.WriteArtifacts(cfg.OutDir, artifacts); err != nil {
		return err
	}
	for _, a := range artifacts {
		fmt.Fprintf(os.Stdout, "wrote %s (%s)\n", filepath.Join(cfg.OutDir, a.Name), a.MediaType)
	}

	if cfg.Summary != types.SummaryNone {
		path := filepath.Join(cfg.OutDir, base+"_summary."+string(cfg.Summary))
		if err := report.WriteSummary(path, cfg.Summary, report.NewRunSummary(rep, metrics)); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "wrote %s\n", path)
	}

	if summary.Total() > 0 && summary.Converted == 0 {
		return fmt.Errorf("all %d document(s) failed conversion", summary.Failed)
	}
	return nil
}

// convertConfig merges flags with config-file values, flags winning.
func convertConfig(cmd *cobra.Command) (types.ConvertConfig, error) {
	eng, _ := cmd.Flags().GetString("engine")
	if eng == "" {
		eng = viper.GetString("convert.engine")
	}
	if eng == "" {
		eng = string(types.EngineNative)
	}
	if eng != string(types.EngineNative) && eng != string(types.EngineMarkitdown) {
		return types.ConvertConfig{}, fmt.Errorf("unknown engine %q: use native or markitdown", eng)
	}

	outDir, _ := cmd.Flags().GetString("out-dir")

	summary, _ := cmd.Flags().GetString("summary")
	switch summary {
	case "", "yaml", "json":
	default:
		return types.ConvertConfig{}, fmt.Errorf("unknown summary format %q: use yaml or json", summary)
	}

	return types.ConvertConfig{
		Engine:  types.EngineBackend(eng),
		OutDir:  outDir,
		Summary: types.SummaryFormat(summary),
	}, nil
}

// buildEngine constructs the selected primary extraction strategy.
func buildEngine(backend types.EngineBackend) (engine.Strategy, error) {
	switch backend {
	case types.EngineMarkitdown:
		rt, err := container.DetectRuntime()
		if err != nil {
			return nil, err
		}
		return engine.NewMarkitdown(rt)
	default:
		return engine.NewUniversal(), nil
	}
}

// resolveInputs turns command arguments into intake documents, downloading
// URL arguments first. Unsupported extensions fail fast here, before any
// conversion work starts.
func resolveInputs(cmd *cobra.Command, args []string) ([]types.Document, error) {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}
	fetchCfg := types.FetchConfig{
		HTTPConfig: types.HTTPConfig{Timeout: timeout, UserAgent: defaultUserAgent},
	}
	client := &http.Client{Timeout: timeout}

	docs := make([]types.Document, 0, len(args))
	for _, arg := range args {
		var doc types.Document
		var err error

		if fetch.IsURL(arg) {
			var name string
			var data []byte
			name, data, err = fetch.Fetch(context.Background(), client, arg, fetchCfg)
			if err == nil {
				doc, err = intake.FromBytes(name, func() ([]byte, error) { return data, nil })
			}
		} else {
			doc, err = intake.Load(arg)
		}
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
