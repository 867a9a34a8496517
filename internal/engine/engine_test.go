// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import "testing"

func TestChainFor(t *testing.T) {
	reg := NewRegistry(NewUniversal())

	tests := []struct {
		ext       string
		wantLen   int
		wantNames []string
	}{
		{".docx", 1, []string{"universal"}},
		{".xlsx", 1, []string{"universal"}},
		{".pptx", 1, []string{"universal"}},
		{".html", 1, []string{"universal"}},
		{".htm", 1, []string{"universal"}},
		{".pdf", 2, []string{"universal", "pdftext"}},
		{".PDF", 2, []string{"universal", "pdftext"}},
	}

	for _, tt := range tests {
		chain := reg.ChainFor(tt.ext)
		if len(chain) != tt.wantLen {
			t.Errorf("ChainFor(%q) has %d strategies, want %d", tt.ext, len(chain), tt.wantLen)
			continue
		}
		for i, name := range tt.wantNames {
			if chain[i].Name() != name {
				t.Errorf("ChainFor(%q)[%d] = %q, want %q", tt.ext, i, chain[i].Name(), name)
			}
		}
	}
}

func TestChainFor_FallbackIsSecond(t *testing.T) {
	reg := NewRegistry(NewUniversal())
	chain := reg.ChainFor(".pdf")
	if len(chain) != 2 {
		t.Fatalf("pdf chain length = %d, want 2", len(chain))
	}
	if chain[0].Name() != "universal" || chain[1].Name() != "pdftext" {
		t.Errorf("pdf chain = [%s, %s], want [universal, pdftext]", chain[0].Name(), chain[1].Name())
	}
}
