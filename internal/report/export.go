// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/docread/pkg/types"
)

// Artifact is one named export file with its advertised media type.
type Artifact struct {
	Name      string `json:"name" yaml:"name"`
	MediaType string `json:"media_type" yaml:"media_type"`
	Data      []byte `json:"-" yaml:"-"`
}

// Artifacts packages the combined text into the two delivery formats:
// markdown and plain text. The payloads are byte-identical; only the name
// and media type differ. baseName comes from the first document in the
// batch with its extension stripped.
func Artifacts(baseName, combinedText string) []Artifact {
	data := []byte(combinedText)
	return []Artifact{
		{
			Name:      baseName + "_converted.md",
			MediaType: "text/markdown",
			Data:      data,
		},
		{
			Name:      baseName + "_converted.txt",
			MediaType: "text/plain",
			Data:      data,
		},
	}
}

// WriteArtifacts writes each artifact into dir, creating dir if needed.
func WriteArtifacts(dir string, artifacts []Artifact) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	for _, a := range artifacts {
		path := filepath.Join(dir, a.Name)
		if err := os.WriteFile(path, a.Data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", a.Name, err)
		}
	}
	return nil
}

// BaseName derives the artifact base name from the first document of the
// batch. An empty batch falls back to "batch".
func BaseName(docs []types.Document) string {
	if len(docs) == 0 {
		return "batch"
	}
	return docs[0].BaseName()
}
