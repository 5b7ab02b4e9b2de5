package ocr

import (
	"github.com/ridwanfathin/pantry-receipt-service/internal/domain"
)

// ExtractItems runs the full raw-text pipeline: normalize, classify, extract.
// Items come back in receipt order. Lines that fail classification or
// extraction are silently dropped; an empty result is a valid outcome, not
// an error.
func ExtractItems(rawText string) []domain.ReceiptLineItem {
	var items []domain.ReceiptLineItem
	for _, line := range SplitLines(rawText) {
		if IsSkippableLine(line) {
			continue
		}
		item, ok := ExtractItem(line)
		if !ok {
			continue
		}
		items = append(items, item)
	}
	return items
}
