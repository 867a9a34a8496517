// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pdiddy/docread/internal/container"
)

const imageMarkitdown = "markitdown:latest"

// Markitdown is an alternate primary engine that pipes documents through
// the markitdown container image. It depends on a container.Runtime (docker
// or podman) injected at construction time.
type Markitdown struct {
	runtime container.Runtime
}

// NewMarkitdown creates the container-backed engine. It verifies that the
// markitdown image exists locally before returning.
func NewMarkitdown(rt container.Runtime) (*Markitdown, error) {
	if err := rt.ImageExists(imageMarkitdown); err != nil {
		return nil, fmt.Errorf("markitdown image not available in %s: %w", rt.Name(), err)
	}
	return &Markitdown{runtime: rt}, nil
}

// Name returns the strategy identifier.
func (m *Markitdown) Name() string { return "markitdown" }

// Extract pipes the file at path through the markitdown container and
// returns the resulting markdown text.
func (m *Markitdown) Extract(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var out bytes.Buffer
	if err := m.runtime.Run(imageMarkitdown, f, &out); err != nil {
		return "", fmt.Errorf("converting %s with markitdown: %w", path, err)
	}

	if out.Len() == 0 {
		return "", fmt.Errorf("markitdown produced empty output for %s", path)
	}

	return out.String(), nil
}
