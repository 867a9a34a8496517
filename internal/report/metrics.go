// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"strings"

	"github.com/pdiddy/docread/pkg/types"
)

const bytesPerMB = 1024 * 1024

// ComputeMetrics derives size-efficiency figures from the total original
// payload size and the combined converted text. The reduction percentage
// keeps its sign: a negative value means the text is larger than the
// originals, which is a reportable outcome, not an error. A zero-byte
// batch yields a zero reduction instead of dividing by zero.
func ComputeMetrics(originalTotal int64, combinedText string) types.EfficiencyMetrics {
	converted := int64(len(combinedText))

	var reduction float64
	if originalTotal > 0 {
		reduction = 100 * float64(originalTotal-converted) / float64(originalTotal)
	}

	return types.EfficiencyMetrics{
		OriginalBytes:    originalTotal,
		ConvertedBytes:   converted,
		ReductionPercent: reduction,
		DisplayOriginal:  FormatMB(originalTotal),
		DisplayConverted: FormatMB(converted),
	}
}

// FormatMB renders a byte count in megabytes with two decimal places.
// Values that round to zero are shown as "< 0.01 MB" so a tiny output is
// not mistaken for no output.
func FormatMB(n int64) string {
	mb := float64(n) / bytesPerMB
	if n > 0 && mb < 0.005 {
		return "< 0.01 MB"
	}
	return fmt.Sprintf("%.2f MB", mb)
}

// Summary renders the human-readable metrics block: the two-row size table
// and the reduction sentence, with the percentage to one decimal place.
func Summary(m types.EfficiencyMetrics) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Original File(s) Size: %s\n", m.DisplayOriginal)
	fmt.Fprintf(&sb, "Converted Text Size:   %s\n", m.DisplayConverted)
	fmt.Fprintf(&sb, "Text version is %.1f%% smaller than the original.\n", m.ReductionPercent)
	return sb.String()
}
