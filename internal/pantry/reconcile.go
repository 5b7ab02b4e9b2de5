package pantry

import (
	"strings"

	"github.com/ridwanfathin/pantry-receipt-service/internal/domain"
)

// Reconcile matches receipt items against an existing pantry snapshot. An
// item whose name equals a record name, compared case-insensitively, is
// annotated with that record's ID; unmatched items keep an empty InventoryID
// and are destined to become new pantry entries downstream.
//
// Matching is first-match in snapshot order, so callers wanting stable
// results across calls must supply a deterministically ordered snapshot.
// Reconcile is a pure function: it copies items and never mutates either
// input, every input item yields exactly one output item, and re-running it
// over its own output produces identical annotations.
func Reconcile(items []domain.ReceiptLineItem, records []domain.PantryRecord) []domain.ReceiptLineItem {
	if len(items) == 0 {
		return nil
	}

	reconciled := make([]domain.ReceiptLineItem, 0, len(items))
	for _, item := range items {
		item.InventoryID = ""
		for _, record := range records {
			if strings.EqualFold(item.Name, record.Name) {
				item.InventoryID = record.ID
				break
			}
		}
		reconciled = append(reconciled, item)
	}
	return reconciled
}
