package ocr

import (
	"strings"
)

// SplitLines splits raw OCR output into trimmed candidate lines. Blank and
// whitespace-only lines are dropped so later stages only ever see usable
// text. Normalization never fails; worst case is an empty slice, which the
// rest of the pipeline treats as a receipt with zero extractable items.
func SplitLines(raw string) []string {
	if raw == "" {
		return nil
	}

	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")

	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
