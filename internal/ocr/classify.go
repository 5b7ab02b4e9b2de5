package ocr

import (
	"regexp"
	"strings"
)

// markerLinePattern matches whole lines consisting of a lone "x"/"X" followed
// by digits, an artifact scanner markers leave in OCR output.
var markerLinePattern = regexp.MustCompile(`^\s*[xX]\s*\d+\s*$`)

// IsSkippableLine reports whether a normalized line is a known non-item line:
// totals/subtotals or a scanner-marker artifact. The policy is deliberately
// allow-by-default; anything not matching a known skip pattern proceeds to
// extraction, which is the final arbiter of usability.
//
// A line containing "total" is skipped even when it is a legitimate product
// name (e.g. "Total Cereal"). That false positive is an accepted trade-off;
// word-boundary matching would trade it for missed total lines instead.
func IsSkippableLine(line string) bool {
	lower := strings.ToLower(line)
	if strings.Contains(lower, "total") || strings.Contains(lower, "subtotal") {
		return true
	}
	return markerLinePattern.MatchString(line)
}
