// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/pdiddy/docread/internal/engine"
	"github.com/pdiddy/docread/pkg/types"
)

// fakeStrategy implements engine.Strategy with canned output or an error.
type fakeStrategy struct {
	name   string
	output string
	err    error
	calls  int
}

func (f *fakeStrategy) Name() string { return f.name }

func (f *fakeStrategy) Extract(path string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.output, nil
}

// fakeChains returns a fixed chain regardless of extension.
type fakeChains struct {
	chain []engine.Strategy
}

func (f *fakeChains) ChainFor(ext string) []engine.Strategy { return f.chain }

// fakeSpool implements Spooler against t.TempDir, tracking releases.
type fakeSpool struct {
	t        *testing.T
	failWith error
	released int
	paths    []string
}

func (s *fakeSpool) Materialize(doc types.Document) (string, func(), error) {
	if s.failWith != nil {
		return "", nil, s.failWith
	}
	f, err := os.CreateTemp(s.t.TempDir(), "spool-*"+doc.Ext)
	if err != nil {
		s.t.Fatal(err)
	}
	if _, err := f.Write(doc.Bytes); err != nil {
		s.t.Fatal(err)
	}
	f.Close()
	path := f.Name()
	s.paths = append(s.paths, path)
	return path, func() {
		s.released++
		os.Remove(path)
	}, nil
}

func doc(name string, payload string) types.Document {
	ext := name[strings.LastIndex(name, "."):]
	return types.Document{
		Name:  name,
		Ext:   strings.ToLower(ext),
		Bytes: []byte(payload),
		Size:  int64(len(payload)),
	}
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name         string
		chain        []engine.Strategy
		wantOK       bool
		wantStrategy string
		wantDetail   string
	}{
		{
			name:         "primary succeeds",
			chain:        []engine.Strategy{&fakeStrategy{name: "universal", output: "# Doc"}},
			wantOK:       true,
			wantStrategy: "universal",
		},
		{
			name: "primary fails, fallback recovers",
			chain: []engine.Strategy{
				&fakeStrategy{name: "universal", err: errors.New("pdfcpu read: broken xref")},
				&fakeStrategy{name: "pdftext", output: "recovered text"},
			},
			wantOK:       true,
			wantStrategy: "pdftext",
		},
		{
			name: "empty output counts as failure",
			chain: []engine.Strategy{
				&fakeStrategy{name: "universal", output: "   \n\t"},
				&fakeStrategy{name: "pdftext", output: "real text"},
			},
			wantOK:       true,
			wantStrategy: "pdftext",
		},
		{
			name: "chain exhausted",
			chain: []engine.Strategy{
				&fakeStrategy{name: "universal", err: errors.New("first failure")},
				&fakeStrategy{name: "pdftext", err: errors.New("last failure")},
			},
			wantOK:     false,
			wantDetail: "last failure",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spool := &fakeSpool{t: t}
			res := Convert(spool, &fakeChains{chain: tt.chain}, doc("report.pdf", "%PDF-1.4"))

			if res.Succeeded != tt.wantOK {
				t.Errorf("Succeeded = %v, want %v", res.Succeeded, tt.wantOK)
			}
			if res.StrategyUsed != tt.wantStrategy {
				t.Errorf("StrategyUsed = %q, want %q", res.StrategyUsed, tt.wantStrategy)
			}
			if tt.wantDetail != "" && res.ErrorDetail != tt.wantDetail {
				t.Errorf("ErrorDetail = %q, want %q", res.ErrorDetail, tt.wantDetail)
			}
			if res.Content == "" {
				t.Error("Content must never be empty")
			}
			if spool.released != 1 {
				t.Errorf("spool released %d times, want 1", spool.released)
			}
		})
	}
}

func TestConvert_StrategiesTriedAtMostOnce(t *testing.T) {
	first := &fakeStrategy{name: "universal", err: errors.New("nope")}
	second := &fakeStrategy{name: "pdftext", err: errors.New("still nope")}
	spool := &fakeSpool{t: t}

	Convert(spool, &fakeChains{chain: []engine.Strategy{first, second}}, doc("bad.pdf", ""))

	if first.calls != 1 || second.calls != 1 {
		t.Errorf("calls = (%d, %d), want (1, 1)", first.calls, second.calls)
	}
}

func TestConvert_PlaceholderNamesSource(t *testing.T) {
	spool := &fakeSpool{t: t}
	chain := []engine.Strategy{&fakeStrategy{name: "universal", err: errors.New("boom")}}

	res := Convert(spool, &fakeChains{chain: chain}, doc("notes.html", "<html>"))

	if res.Succeeded {
		t.Fatal("expected failure")
	}
	if !strings.Contains(res.Content, "notes.html") {
		t.Errorf("placeholder %q should contain the source name", res.Content)
	}
	if res.Content != Placeholder("notes.html") {
		t.Error("placeholder should be deterministic for a given source name")
	}
}

func TestConvert_SpoolFailure(t *testing.T) {
	spool := &fakeSpool{t: t, failWith: errors.New("disk full")}
	chain := []engine.Strategy{&fakeStrategy{name: "universal", output: "unused"}}

	res := Convert(spool, &fakeChains{chain: chain}, doc("report.docx", "PK"))

	if res.Succeeded {
		t.Fatal("storage failure must yield a failed result")
	}
	if !strings.Contains(res.ErrorDetail, "disk full") {
		t.Errorf("ErrorDetail = %q, should mention the storage error", res.ErrorDetail)
	}
	if !strings.Contains(res.Content, "report.docx") {
		t.Errorf("placeholder %q should contain the source name", res.Content)
	}
}

// extChains dispatches to per-extension chains, mimicking the registry.
type extChains struct {
	byExt   map[string][]engine.Strategy
	primary engine.Strategy
}

func (e *extChains) ChainFor(ext string) []engine.Strategy {
	if c, ok := e.byExt[ext]; ok {
		return c
	}
	return []engine.Strategy{e.primary}
}

func TestConvertBatch_MixedOutcomes(t *testing.T) {
	// report.docx converts, broken.pdf needs the fallback, notes.html fails.
	primary := &fakeStrategy{name: "universal", output: "# Report"}
	chains := &extChains{
		primary: primary,
		byExt: map[string][]engine.Strategy{
			".pdf": {
				&fakeStrategy{name: "universal", err: errors.New("pdfcpu read: damaged")},
				&fakeStrategy{name: "pdftext", output: "salvaged pdf text"},
			},
			".html": {
				&fakeStrategy{name: "universal", err: errors.New("no text content found in html")},
			},
		},
	}

	docs := []types.Document{
		doc("report.docx", "PK..."),
		doc("broken.pdf", "%PDF-"),
		doc("notes.html", "<div>"),
	}

	spool := &fakeSpool{t: t}
	var log bytes.Buffer
	results, summary := ConvertBatch(spool, chains, docs, &log)

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	// Order must match input order regardless of outcome.
	for i, want := range []string{"report.docx", "broken.pdf", "notes.html"} {
		if results[i].SourceName != want {
			t.Errorf("results[%d].SourceName = %q, want %q", i, results[i].SourceName, want)
		}
	}

	if summary.Converted != 2 || summary.Failed != 1 || summary.FellBack != 1 {
		t.Errorf("summary = %+v, want 2 converted / 1 failed / 1 fallback", summary)
	}
	if !summary.HasFailures() {
		t.Error("HasFailures should be true")
	}
	if summary.Total() != 3 {
		t.Errorf("Total() = %d, want 3", summary.Total())
	}

	if results[1].StrategyUsed != "pdftext" {
		t.Errorf("broken.pdf StrategyUsed = %q, want pdftext", results[1].StrategyUsed)
	}
	if results[2].Succeeded {
		t.Error("notes.html should have failed")
	}
	if !strings.Contains(results[2].Content, "notes.html") {
		t.Error("failure placeholder should reference notes.html")
	}

	out := log.String()
	for _, want := range []string{"converted: report.docx", "via pdftext fallback", "failed:  notes.html", "Batch summary:"} {
		if !strings.Contains(out, want) {
			t.Errorf("log %q should contain %q", out, want)
		}
	}
}

func TestConvertBatch_DuplicateNames(t *testing.T) {
	chains := &fakeChains{chain: []engine.Strategy{&fakeStrategy{name: "universal", output: "text"}}}
	docs := []types.Document{
		doc("same.docx", "one"),
		doc("same.docx", "two"),
	}

	spool := &fakeSpool{t: t}
	results, summary := ConvertBatch(spool, chains, docs, &bytes.Buffer{})

	if len(results) != 2 || summary.Converted != 2 {
		t.Fatalf("duplicates must both convert: results=%d summary=%+v", len(results), summary)
	}
	if results[0].SourceName != results[1].SourceName {
		t.Error("duplicate names are preserved as-is")
	}
}

func TestConvertBatch_ReleasesEverySpool(t *testing.T) {
	chains := &extChains{
		primary: &fakeStrategy{name: "universal", output: "ok"},
		byExt: map[string][]engine.Strategy{
			".html": {&fakeStrategy{name: "universal", err: errors.New("bad html")}},
		},
	}

	var docs []types.Document
	for i := 0; i < 3; i++ {
		docs = append(docs, doc(fmt.Sprintf("d%d.docx", i), "x"))
	}
	docs = append(docs, doc("broken.html", "y"))

	spool := &fakeSpool{t: t}
	ConvertBatch(spool, chains, docs, &bytes.Buffer{})

	if spool.released != len(docs) {
		t.Errorf("released %d spool files, want %d", spool.released, len(docs))
	}
	for _, p := range spool.paths {
		if _, err := os.Stat(p); !os.IsNotExist(err) {
			t.Errorf("spool file %s should have been removed", p)
		}
	}
}
